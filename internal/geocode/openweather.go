package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/akarpovich/weather-lookup/internal/location"
)

const defaultGeoBaseURL = "https://api.openweathermap.org/geo/1.0/direct"

// OpenWeatherGeocoder resolves queries through the OpenWeatherMap direct
// geocoding endpoint.
type OpenWeatherGeocoder struct {
	client  *http.Client
	apiKey  string
	baseURL string
	limit   int
}

func NewOpenWeatherGeocoder(client *http.Client, apiKey string) *OpenWeatherGeocoder {
	return &OpenWeatherGeocoder{
		client:  client,
		apiKey:  apiKey,
		baseURL: defaultGeoBaseURL,
		limit:   5,
	}
}

func (g *OpenWeatherGeocoder) Search(ctx context.Context, query string) ([]location.Coordinates, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", fmt.Sprintf("%d", g.limit))
	values.Set("appid", g.apiKey)

	u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned status %d", resp.StatusCode)
	}

	var results []struct {
		Name    string  `json:"name"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		State   string  `json:"state"`
		Country string  `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}

	coords := make([]location.Coordinates, 0, len(results))
	for _, r := range results {
		coords = append(coords, location.Coordinates{
			Latitude:  r.Lat,
			Longitude: r.Lon,
			City:      r.Name,
			State:     r.State,
			Country:   r.Country,
		})
	}
	return coords, nil
}
