package geocode

import (
	"context"
	"strings"

	"github.com/kelvins/geocoder"

	"github.com/akarpovich/weather-lookup/internal/location"
)

// GoogleGeocoder resolves queries through the Google Maps geocoding API via
// the kelvins/geocoder package. The library is synchronous and returns a
// single best match, which fits the at-most-one-result contract.
type GoogleGeocoder struct{}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

func (g *GoogleGeocoder) Search(ctx context.Context, query string) ([]location.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	addr := geocoder.Address{Street: query}
	if location.ValidZip(strings.TrimSpace(query)) {
		addr = geocoder.Address{PostalCode: strings.TrimSpace(query)}
	}

	loc, err := geocoder.Geocoding(addr)
	if err != nil {
		// The library surfaces a ZERO_RESULTS status as an error; to
		// callers that is "no match", not a provider failure.
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return nil, nil
		}
		return nil, err
	}

	coords := location.Coordinates{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}

	// Reverse lookup fills in city metadata when available; failures here
	// are not fatal, the coordinates alone are enough.
	if addresses, err := geocoder.GeocodingReverse(loc); err == nil && len(addresses) > 0 {
		coords.City = addresses[0].City
		coords.State = addresses[0].State
		coords.Country = addresses[0].Country
	}

	return []location.Coordinates{coords}, nil
}
