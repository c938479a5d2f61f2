package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/akarpovich/weather-lookup/internal/geocode"
	"github.com/akarpovich/weather-lookup/internal/location"
)

const (
	defaultCurrentURL  = "https://api.openweathermap.org/data/2.5/weather"
	defaultForecastURL = "https://api.openweathermap.org/data/2.5/forecast"
)

// Cache is the key/value contract the gateway needs from its cache store.
// The store owns eviction and expiry; the gateway only supplies a TTL hint.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Exists(key string) bool
}

// GatewayOptions tunes a Gateway beyond its required collaborators.
type GatewayOptions struct {
	// BaseURL overrides the OpenWeatherMap API root, mainly for tests.
	CurrentURL  string
	ForecastURL string

	CacheTTL   time.Duration
	MaxRetries int
	Debug      bool
}

// Gateway performs cached fetches of current-conditions and forecast
// payloads, owns cache-key construction, and classifies upstream outcomes.
type Gateway struct {
	apiKey      string
	currentURL  string
	forecastURL string
	cache       Cache
	geocoder    geocode.Geocoder
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
	ttl         time.Duration
	debug       bool
}

// NewGateway creates a Gateway. The API key is injected here rather than read
// from process-global state.
func NewGateway(client *http.Client, apiKey string, cache Cache, geocoder geocode.Geocoder, opts GatewayOptions) *Gateway {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	currentURL := opts.CurrentURL
	if currentURL == "" {
		currentURL = defaultCurrentURL
	}
	forecastURL := opts.ForecastURL
	if forecastURL == "" {
		forecastURL = defaultForecastURL
	}

	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &Gateway{
		apiKey:      apiKey,
		currentURL:  currentURL,
		forecastURL: forecastURL,
		cache:       cache,
		geocoder:    geocoder,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      opts.MaxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
		ttl:     ttl,
		debug:   opts.Debug,
	}
}

// CurrentKey returns the cache key for current conditions at coords.
func CurrentKey(coords location.Coordinates) string {
	return "current:" + coordKey(coords)
}

// ForecastKey returns the cache key for the forecast at coords.
func ForecastKey(coords location.Coordinates) string {
	return "forecast:" + coordKey(coords)
}

// ZipKey returns the combined cache key for a zip-code lookup.
func ZipKey(zip string) string {
	return "zip:" + zip
}

func coordKey(coords location.Coordinates) string {
	return formatCoord(coords.Latitude) + ":" + formatCoord(coords.Longitude)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// GetCurrent returns current conditions for coords, from cache when possible.
func (g *Gateway) GetCurrent(ctx context.Context, coords location.Coordinates) (CurrentPayload, error) {
	if !coords.Valid() {
		return CurrentPayload{}, fmt.Errorf("%w: coordinates out of range", ErrInvalidLocation)
	}

	key := CurrentKey(coords)
	if v, ok := g.cache.Get(key); ok {
		if payload, ok := v.(CurrentPayload); ok {
			g.debugf("cache hit for %s", key)
			return payload, nil
		}
	}

	var data CurrentConditions
	if err := g.fetch(ctx, g.currentURL, coords, &data); err != nil {
		return CurrentPayload{}, err
	}

	payload := CurrentPayload{Data: &data}
	g.cache.Set(key, payload, g.ttl)
	return payload, nil
}

// GetForecast returns the multi-day forecast series for coords, from cache
// when possible.
func (g *Gateway) GetForecast(ctx context.Context, coords location.Coordinates) (ForecastPayload, error) {
	if !coords.Valid() {
		return ForecastPayload{}, fmt.Errorf("%w: coordinates out of range", ErrInvalidLocation)
	}

	key := ForecastKey(coords)
	if v, ok := g.cache.Get(key); ok {
		if payload, ok := v.(ForecastPayload); ok {
			g.debugf("cache hit for %s", key)
			return payload, nil
		}
	}

	var data ForecastSeries
	if err := g.fetch(ctx, g.forecastURL, coords, &data); err != nil {
		return ForecastPayload{}, err
	}

	payload := ForecastPayload{Data: &data}
	g.cache.Set(key, payload, g.ttl)
	return payload, nil
}

// Cached reports whether both payloads for coords are already cached. The
// orchestrator uses this to mark coordinate lookups served from cache.
func (g *Gateway) Cached(coords location.Coordinates) bool {
	return g.cache.Exists(CurrentKey(coords)) && g.cache.Exists(ForecastKey(coords))
}

// GetByZip resolves a zip code and fetches current conditions plus forecast,
// replaying the whole combined result from cache when available. Every
// failure along the way is folded into the result's error field, so callers
// always receive a value.
func (g *Gateway) GetByZip(ctx context.Context, zip string) WeatherResult {
	zip = strings.TrimSpace(zip)

	key := ZipKey(zip)
	if v, ok := g.cache.Get(key); ok {
		if res, ok := v.(WeatherResult); ok {
			// res is a shallow copy; the cached value stays untouched.
			res.FromCache = true
			g.debugf("cache hit for %s", key)
			return res
		}
	}

	if zip == "" {
		return WeatherResult{Err: ErrInvalidLocation.Error() + ": empty zip code"}
	}

	matches, err := g.geocoder.Search(ctx, zip)
	if err != nil {
		log.Printf("geocoding failed for zip %s: %v", zip, err)
		return WeatherResult{Err: resultError(err)}
	}
	if len(matches) == 0 {
		return WeatherResult{Err: fmt.Sprintf("no location found for zip code %s", zip)}
	}
	coords := matches[0]

	current, err := g.GetCurrent(ctx, coords)
	if err != nil {
		log.Printf("current fetch failed for zip %s: %v", zip, err)
		return WeatherResult{Coords: &coords, Err: resultError(err)}
	}

	forecast, err := g.GetForecast(ctx, coords)
	if err != nil {
		log.Printf("forecast fetch failed for zip %s: %v", zip, err)
		return WeatherResult{Current: current, Coords: &coords, Err: resultError(err)}
	}

	result := WeatherResult{
		Current:  current,
		Forecast: forecast,
		Coords:   &coords,
	}
	g.cache.Set(key, result, g.ttl)
	return result
}

// resultError reduces a fetch failure to the message embedded in a
// WeatherResult. Classified API errors keep their message; transport and
// other unclassified failures are replaced with the generic one, since their
// raw text can carry the request URL and credential. Callers log the cause.
func resultError(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrInvalidLocation) {
		return err.Error()
	}
	return ErrServiceUnavailable.Error()
}

// fetch performs one upstream GET with units fixed to metric and decodes the
// body into out.
func (g *Gateway) fetch(ctx context.Context, baseURL string, coords location.Coordinates, out any) error {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", formatCoord(coords.Latitude))
		values.Set("lon", formatCoord(coords.Longitude))
		values.Set("appid", g.apiKey)
		values.Set("units", "metric")

		u := fmt.Sprintf("%s?%s", baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}

func (g *Gateway) debugf(format string, args ...any) {
	if g.debug {
		log.Printf("DEBUG: "+format, args...)
	}
}
