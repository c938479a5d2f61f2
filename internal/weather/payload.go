package weather

import (
	"github.com/akarpovich/weather-lookup/internal/location"
)

// CurrentConditions is the decoded shape of an OpenWeatherMap current-weather
// response, reduced to the fields the presentation layer reads.
type CurrentConditions struct {
	Name string `json:"name"`
	Dt   int64  `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Weather []ConditionInfo `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// ConditionInfo is a single weather-condition record within a payload.
type ConditionInfo struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
}

// ForecastEntry is one time-series sample of a forecast payload.
type ForecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp    float64 `json:"temp"`
		TempMin float64 `json:"temp_min"`
		TempMax float64 `json:"temp_max"`
	} `json:"main"`
	Weather []ConditionInfo `json:"weather"`
}

// ForecastSeries is the decoded shape of an OpenWeatherMap 5-day forecast
// response.
type ForecastSeries struct {
	List []ForecastEntry `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}

// CurrentPayload is a tagged result: either decoded current conditions or an
// error message, never both. Decoding happens once at the gateway boundary so
// downstream readers never probe raw maps.
type CurrentPayload struct {
	Data *CurrentConditions `json:"data,omitempty"`
	Err  string             `json:"error,omitempty"`
}

// OK reports whether the payload carries usable data.
func (p CurrentPayload) OK() bool {
	return p.Err == "" && p.Data != nil
}

// ForecastPayload is the forecast counterpart of CurrentPayload.
type ForecastPayload struct {
	Data *ForecastSeries `json:"data,omitempty"`
	Err  string          `json:"error,omitempty"`
}

// OK reports whether the payload carries usable data.
func (p ForecastPayload) OK() bool {
	return p.Err == "" && p.Data != nil
}

// WeatherResult is the unified bag handed from the gateway and orchestrator
// to the presentation entity. It is built once per request, either freshly
// fetched or replayed whole from cache, and never partially updated.
type WeatherResult struct {
	Current   CurrentPayload        `json:"current"`
	Forecast  ForecastPayload       `json:"forecast"`
	Coords    *location.Coordinates `json:"coordinates,omitempty"`
	FromCache bool                  `json:"fromCache"`
	Err       string                `json:"error,omitempty"`
}

// ForecastDay is a per-calendar-day summary produced by the aggregator.
type ForecastDay struct {
	Date        string `json:"date"`
	High        int    `json:"high"`
	Low         int    `json:"low"`
	Description string `json:"description"`
}
