package weather

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akarpovich/weather-lookup/internal/location"
)

func newTestOrchestrator(t *testing.T, geocoder *fakeGeocoder) (*Orchestrator, func()) {
	t.Helper()

	var currentHits, forecastHits int32
	srv := weatherServer(t, &currentHits, &forecastHits)
	g := newTestGateway(srv, geocoder)
	return NewOrchestrator(g, geocoder, false), srv.Close
}

func TestLookupValidationFailure(t *testing.T) {
	orch, done := newTestOrchestrator(t, &fakeGeocoder{})
	defer done()

	rep, err := orch.Lookup(context.Background(), location.Input{})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if rep == nil {
		t.Fatal("report must never be nil")
	}
	if !strings.Contains(err.Error(), "location is required") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestLookupJoinsAllValidationMessages(t *testing.T) {
	orch, done := newTestOrchestrator(t, &fakeGeocoder{})
	defer done()

	lat, lon := 200.0, 0.0
	_, err := orch.Lookup(context.Background(), location.Input{
		Address: "12",
		ZipCode: "bad",
		Lat:     &lat,
		Lon:     &lon,
	})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"address", "zip code", "latitude"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in joined message %q", want, err.Error())
		}
	}
}

func TestLookupByCoordinates(t *testing.T) {
	orch, done := newTestOrchestrator(t, &fakeGeocoder{})
	defer done()

	lat, lon := portland.Latitude, portland.Longitude
	rep, err := orch.Lookup(context.Background(), location.Input{Lat: &lat, Lon: &lon})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.HasError() {
		t.Fatalf("unexpected report error: %s", rep.ErrorMessage())
	}
	if rep.FromCache() {
		t.Fatal("first lookup must not be cached")
	}
	if temp, ok := rep.CurrentTemperature(); !ok || temp != 22.5 {
		t.Fatalf("unexpected temperature: %v ok=%v", temp, ok)
	}
	if len(rep.ExtendedForecast()) == 0 {
		t.Fatal("expected forecast days")
	}

	// Second lookup for the same coordinates is served from cache.
	rep, err = orch.Lookup(context.Background(), location.Input{Lat: &lat, Lon: &lon})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rep.FromCache() {
		t.Fatal("second lookup should be marked as a cache replay")
	}
}

func TestLookupByAddressGeocodes(t *testing.T) {
	geocoder := &fakeGeocoder{coords: []location.Coordinates{portland}}
	orch, done := newTestOrchestrator(t, geocoder)
	defer done()

	rep, err := orch.Lookup(context.Background(), location.Input{Address: "Portland OR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.HasError() {
		t.Fatalf("unexpected report error: %s", rep.ErrorMessage())
	}
	if rep.LocationName() != "Portland" {
		t.Errorf("unexpected location name %q", rep.LocationName())
	}
}

func TestLookupAddressNotFound(t *testing.T) {
	orch, done := newTestOrchestrator(t, &fakeGeocoder{})
	defer done()

	rep, err := orch.Lookup(context.Background(), location.Input{Address: "no such place"})
	if err == nil {
		t.Fatal("expected an error for an unresolvable address")
	}
	if rep.GeocodeErr == "" {
		t.Fatal("expected the geocoding error to be recorded on the report")
	}
	if !rep.HasError() {
		t.Fatal("report must flag the geocoding failure")
	}
}

func TestLookupGeocoderFailureIsGeneric(t *testing.T) {
	orch, done := newTestOrchestrator(t, &fakeGeocoder{err: errors.New("connection refused")})
	defer done()

	rep, err := orch.Lookup(context.Background(), location.Input{Address: "Portland OR"})
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected the generic message, got %v", err)
	}
	if strings.Contains(rep.GeocodeErr, "connection refused") {
		t.Error("underlying cause must not surface to the user")
	}
}

func TestLookupByZip(t *testing.T) {
	geocoder := &fakeGeocoder{coords: []location.Coordinates{portland}}
	orch, done := newTestOrchestrator(t, geocoder)
	defer done()

	rep, err := orch.Lookup(context.Background(), location.Input{ZipCode: "97201"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.LocationName() != "Portland" {
		t.Errorf("unexpected location name %q", rep.LocationName())
	}
}

func TestLookupSanitizesAddress(t *testing.T) {
	geocoder := &fakeGeocoder{coords: []location.Coordinates{portland}}
	orch, done := newTestOrchestrator(t, geocoder)
	defer done()

	rep, err := orch.Lookup(context.Background(), location.Input{
		Address: `Portland <script>alert(1)</script> OR`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(rep.Address, "<") || strings.Contains(rep.Address, "script") {
		t.Fatalf("address was not sanitized: %q", rep.Address)
	}
}

func TestLookupUpstreamFailureIsGeneric(t *testing.T) {
	orch, done := newTestOrchestrator(t, &fakeGeocoder{})
	done() // kill the upstream before the call

	lat, lon := portland.Latitude, portland.Longitude
	_, err := orch.Lookup(context.Background(), location.Input{Lat: &lat, Lon: &lon})
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected the generic message, got %v", err)
	}
}
