package weather

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/akarpovich/weather-lookup/internal/geocode"
	"github.com/akarpovich/weather-lookup/internal/location"
)

// Orchestrator composes validation, geocoding, the gateway, and aggregation
// into one request/response cycle. Every invocation ends in exactly one of
// two outcomes: a usable report, or a report plus a user-facing error. No
// failure escapes this boundary as a raw error.
type Orchestrator struct {
	gateway  *Gateway
	geocoder geocode.Geocoder
	debug    bool
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(gateway *Gateway, geocoder geocode.Geocoder, debug bool) *Orchestrator {
	return &Orchestrator{
		gateway:  gateway,
		geocoder: geocoder,
		debug:    debug,
	}
}

// Lookup runs the full pipeline for one user request. The returned report is
// never nil; err carries the user-facing message on failure paths and is nil
// exactly when the report itself is error-free.
func (o *Orchestrator) Lookup(ctx context.Context, in location.Input) (rep *Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: weather lookup panicked: %v", r)
			if rep == nil {
				rep = &Report{}
			}
			err = ErrServiceUnavailable
		}
	}()

	in.Address = location.Sanitize(in.Address)
	in.ZipCode = strings.TrimSpace(in.ZipCode)

	rep = &Report{Address: in.Address, ZipCode: in.ZipCode}

	if verrs := location.Validate(in); len(verrs) > 0 {
		return rep, errors.New(joinMessages(verrs))
	}

	// A plain address needs geocoding before we know where to look.
	if in.Address != "" && in.ZipCode == "" && !in.HasCoordinates() {
		coords, gerr := o.resolveAddress(ctx, in.Address)
		if gerr != nil {
			rep.GeocodeErr = gerr.Error()
			return rep, gerr
		}
		in.Lat, in.Lon = &coords.Latitude, &coords.Longitude
	}

	switch {
	case in.ZipCode != "":
		result := o.gateway.GetByZip(ctx, in.ZipCode)
		rep.Result = &result

	case in.HasCoordinates():
		coords := location.Coordinates{Latitude: *in.Lat, Longitude: *in.Lon}

		// Probe before fetching so a fully cached pair is reported as a
		// replay. Current is always fetched before forecast to keep cache
		// population order deterministic.
		fromCache := o.gateway.Cached(coords)

		current, ferr := o.gateway.GetCurrent(ctx, coords)
		if ferr != nil {
			return rep, o.failure(ferr)
		}
		forecast, ferr := o.gateway.GetForecast(ctx, coords)
		if ferr != nil {
			return rep, o.failure(ferr)
		}

		rep.Result = &WeatherResult{
			Current:   current,
			Forecast:  forecast,
			Coords:    &coords,
			FromCache: fromCache,
		}

	default:
		return rep, errors.New("No valid location provided")
	}

	if rep.HasError() {
		return rep, errors.New(rep.ErrorMessage())
	}
	return rep, nil
}

// resolveAddress geocodes a free-text address to its best-match coordinates.
func (o *Orchestrator) resolveAddress(ctx context.Context, address string) (location.Coordinates, error) {
	matches, err := o.geocoder.Search(ctx, address)
	if err != nil {
		log.Printf("geocoding failed for %q: %v", address, err)
		return location.Coordinates{}, ErrServiceUnavailable
	}
	if len(matches) == 0 {
		return location.Coordinates{}, errors.New("location not found")
	}
	if o.debug {
		log.Printf("DEBUG: geocoded %q to %v,%v", address, matches[0].Latitude, matches[0].Longitude)
	}
	return matches[0], nil
}

// failure converts gateway errors from the coordinate path into the generic
// user-facing message, logging the real cause. Transport and API failures
// alike stop here rather than reaching the user.
func (o *Orchestrator) failure(err error) error {
	if errors.Is(err, ErrInvalidLocation) {
		return err
	}
	log.Printf("ERROR: weather fetch failed: %v", err)
	return ErrServiceUnavailable
}

func joinMessages(errs []location.ValidationError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
