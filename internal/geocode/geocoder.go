package geocode

import (
	"context"

	"github.com/akarpovich/weather-lookup/internal/location"
)

// Geocoder resolves free-text location queries (addresses or zip codes) to
// coordinates. The first element of the returned slice is the best match; an
// empty slice means the provider found nothing. Errors are reserved for
// transport or provider failures.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]location.Coordinates, error)
}
