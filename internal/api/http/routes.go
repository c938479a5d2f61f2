package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/akarpovich/weather-lookup/internal/location"
	"github.com/akarpovich/weather-lookup/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, orch *weather.Orchestrator) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		in, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rep, err := orch.Lookup(c.UserContext(), in)
		if err != nil {
			if errors.Is(err, weather.ErrServiceUnavailable) {
				return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
			}
			return c.Status(fiber.StatusBadRequest).JSON(renderReport(rep, err.Error()))
		}

		return c.JSON(renderReport(rep, ""))
	})
}

// weatherQuery holds the raw query parameters of a lookup request. Exactly
// one of address / zip / lat+lon is expected; the orchestrator enforces the
// detailed rules, this struct only checks shape.
type weatherQuery struct {
	Address string   `validate:"omitempty"`
	Zip     string   `validate:"omitempty"`
	Lat     *float64 `validate:"omitempty,min=-90,max=90"`
	Lon     *float64 `validate:"omitempty,min=-180,max=180"`
}

func parseWeatherQuery(c *fiber.Ctx) (location.Input, error) {
	var q weatherQuery
	q.Address = c.Query("address")
	q.Zip = c.Query("zip")

	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr != "" || lonStr != "" {
		if latStr == "" || lonStr == "" {
			return location.Input{}, errors.New("lat and lon must be provided together")
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return location.Input{}, errors.New("lat must be a number")
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return location.Input{}, errors.New("lon must be a number")
		}
		q.Lat, q.Lon = &lat, &lon
	}

	if err := validate.Struct(q); err != nil {
		return location.Input{}, err
	}

	return location.Input{
		Address: q.Address,
		ZipCode: q.Zip,
		Lat:     q.Lat,
		Lon:     q.Lon,
	}, nil
}

// weatherView is the JSON representation handed to clients.
type weatherView struct {
	Location    string                `json:"location"`
	Temperature *float64              `json:"temperature,omitempty"`
	HighLow     *weather.HighLow      `json:"highLow,omitempty"`
	Description string                `json:"description,omitempty"`
	Forecast    []weather.ForecastDay `json:"forecast"`
	FromCache   bool                  `json:"fromCache"`
	Error       string                `json:"error,omitempty"`
}

func renderReport(rep *weather.Report, errMsg string) weatherView {
	view := weatherView{
		Location:  rep.LocationName(),
		Forecast:  rep.ExtendedForecast(),
		FromCache: rep.FromCache(),
		Error:     errMsg,
	}

	if view.Error == "" {
		view.Error = rep.ErrorMessage()
	}

	if temp, ok := rep.CurrentTemperature(); ok {
		view.Temperature = &temp
	}
	if hl, ok := rep.CurrentHighLow(); ok {
		view.HighLow = &hl
	}
	if desc, ok := rep.Description(); ok {
		view.Description = desc
	}

	return view
}
