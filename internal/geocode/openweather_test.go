package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenWeatherGeocoderSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Portland" {
			t.Errorf("expected q=Portland, got %q", got)
		}
		if r.URL.Query().Get("appid") == "" {
			t.Error("expected appid to be set")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name":"Portland","lat":45.5202,"lon":-122.6742,"state":"Oregon","country":"US"},
			{"name":"Portland","lat":43.6591,"lon":-70.2568,"state":"Maine","country":"US"}
		]`))
	}))
	defer srv.Close()

	g := NewOpenWeatherGeocoder(srv.Client(), "test-key")
	g.baseURL = srv.URL

	coords, err := g.Search(context.Background(), "Portland")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coords) != 2 {
		t.Fatalf("expected 2 results, got %d", len(coords))
	}

	best := coords[0]
	if best.Latitude != 45.5202 || best.Longitude != -122.6742 {
		t.Fatalf("unexpected best match: %+v", best)
	}
	if best.City != "Portland" || best.State != "Oregon" || best.Country != "US" {
		t.Fatalf("unexpected metadata: %+v", best)
	}
}

func TestOpenWeatherGeocoderNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewOpenWeatherGeocoder(srv.Client(), "test-key")
	g.baseURL = srv.URL

	coords, err := g.Search(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coords) != 0 {
		t.Fatalf("expected no results, got %d", len(coords))
	}
}

func TestOpenWeatherGeocoderUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewOpenWeatherGeocoder(srv.Client(), "test-key")
	g.baseURL = srv.URL

	if _, err := g.Search(context.Background(), "Portland"); err == nil {
		t.Fatal("expected an error on upstream failure")
	}
}

func TestOpenWeatherGeocoderMissingKey(t *testing.T) {
	g := NewOpenWeatherGeocoder(http.DefaultClient, "")
	if _, err := g.Search(context.Background(), "Portland"); err == nil {
		t.Fatal("expected an error when the api key is missing")
	}
}
