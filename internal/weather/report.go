package weather

// Report is the value object handed to the view layer. All accessors are
// defensive against partial or failed data: they return ok=false (or a
// fallback) instead of panicking on an empty bag.
//
// The struct serializes losslessly through encoding/json: scalar fields plus
// the entire result bag round-trip verbatim.
type Report struct {
	Address    string         `json:"address,omitempty"`
	ZipCode    string         `json:"zipCode,omitempty"`
	GeocodeErr string         `json:"geocodeError,omitempty"`
	Result     *WeatherResult `json:"result,omitempty"`
}

// HighLow is the single-point temperature bounds of the current conditions,
// distinct from the aggregator's per-day bounds.
type HighLow struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

// CurrentTemperature returns the current temperature when a usable current
// payload exists.
func (r *Report) CurrentTemperature() (float64, bool) {
	if r.Result == nil || !r.Result.Current.OK() {
		return 0, false
	}
	return r.Result.Current.Data.Main.Temp, true
}

// CurrentHighLow returns the current payload's max/min temperature bounds.
func (r *Report) CurrentHighLow() (HighLow, bool) {
	if r.Result == nil || !r.Result.Current.OK() {
		return HighLow{}, false
	}
	return HighLow{
		High: r.Result.Current.Data.Main.TempMax,
		Low:  r.Result.Current.Data.Main.TempMin,
	}, true
}

// Description returns the title-cased first weather-condition description of
// the current payload.
func (r *Report) Description() (string, bool) {
	if r.Result == nil || !r.Result.Current.OK() {
		return "", false
	}
	conditions := r.Result.Current.Data.Weather
	if len(conditions) == 0 {
		return "", false
	}
	return titleCase(conditions[0].Description), true
}

// LocationName picks the best available display name: the geocoded city when
// the lookup was by zip code, then the upstream payload's own name, then the
// raw address the user typed.
func (r *Report) LocationName() string {
	if r.ZipCode != "" && r.Result != nil && r.Result.Coords != nil && r.Result.Coords.City != "" {
		return r.Result.Coords.City
	}
	if r.Result != nil && r.Result.Current.OK() && r.Result.Current.Data.Name != "" {
		return r.Result.Current.Data.Name
	}
	return r.Address
}

// FromCache reports whether the underlying bag was replayed from cache.
func (r *Report) FromCache() bool {
	return r.Result != nil && r.Result.FromCache
}

// HasError reports whether the report carries any failure: a recorded
// geocoding error, a missing bag, or a bag whose top-level error is not
// compensated by a usable current payload.
func (r *Report) HasError() bool {
	if r.GeocodeErr != "" {
		return true
	}
	if r.Result == nil {
		return true
	}
	return !(r.Result.Err == "" || r.Result.Current.OK())
}

// ErrorMessage returns the first recorded failure: geocoding, then the bag's
// top-level error, then the per-payload errors. Empty when nothing failed.
func (r *Report) ErrorMessage() string {
	if r.GeocodeErr != "" {
		return r.GeocodeErr
	}
	if r.Result == nil {
		return ""
	}
	for _, msg := range []string{r.Result.Err, r.Result.Current.Err, r.Result.Forecast.Err} {
		if msg != "" {
			return msg
		}
	}
	return ""
}

// ExtendedForecast returns the per-day forecast summary.
func (r *Report) ExtendedForecast() []ForecastDay {
	if r.Result == nil {
		return []ForecastDay{}
	}
	return AggregateForecast(r.Result.Forecast)
}
