package location

// Input carries one user-supplied location in one of three forms:
// a free-text address, a US zip code, or a coordinate pair.
type Input struct {
	Address string
	ZipCode string
	Lat     *float64
	Lon     *float64
}

// HasCoordinates reports whether both latitude and longitude are set.
func (in Input) HasCoordinates() bool {
	return in.Lat != nil && in.Lon != nil
}

// Coordinates is a resolved geographic position. City/State/Country are
// filled in when the coordinates came out of a geocoding lookup.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Country   string  `json:"country,omitempty"`
}

// Valid reports whether the pair is within geographic range.
func (c Coordinates) Valid() bool {
	return InRange(c.Latitude, c.Longitude)
}

// InRange reports whether lat is within [-90,90] and lon within [-180,180].
func InRange(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
