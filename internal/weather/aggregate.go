package weather

import (
	"math"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxForecastDays bounds the aggregated forecast length.
const maxForecastDays = 5

// dayLabel is the calendar-day format shown to users, e.g. "Monday, July 26".
const dayLabel = "Monday, January 2"

// titleCase capitalizes each word. cases.Caser carries internal transform
// state and is not safe for concurrent use, so a fresh one is built per call
// instead of sharing a package-level instance across requests.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// AggregateForecast groups a forecast time series into per-calendar-day
// summaries, at most five, in first-seen chronological order. Each day's high
// and low are the rounded max/min of its samples and the description comes
// from the day's first sample, title-cased. An absent or failed payload
// yields an empty slice.
func AggregateForecast(payload ForecastPayload) []ForecastDay {
	if !payload.OK() || len(payload.Data.List) == 0 {
		return []ForecastDay{}
	}

	type group struct {
		temps       []float64
		description string
	}

	var order []string
	groups := make(map[string]*group)

	for _, entry := range payload.Data.List {
		label := time.Unix(entry.Dt, 0).UTC().Format(dayLabel)

		g, ok := groups[label]
		if !ok {
			g = &group{}
			if len(entry.Weather) > 0 {
				g.description = entry.Weather[0].Description
			}
			groups[label] = g
			order = append(order, label)
		}
		g.temps = append(g.temps, entry.Main.Temp)
	}

	if len(order) > maxForecastDays {
		order = order[:maxForecastDays]
	}

	days := make([]ForecastDay, 0, len(order))
	for _, label := range order {
		g := groups[label]

		high, low := g.temps[0], g.temps[0]
		for _, t := range g.temps[1:] {
			if t > high {
				high = t
			}
			if t < low {
				low = t
			}
		}

		days = append(days, ForecastDay{
			Date:        label,
			High:        roundTemp(high),
			Low:         roundTemp(low),
			Description: titleCase(g.description),
		})
	}

	return days
}

// roundTemp rounds half away from zero, matching how temperatures are shown.
func roundTemp(v float64) int {
	return int(math.Round(v))
}
