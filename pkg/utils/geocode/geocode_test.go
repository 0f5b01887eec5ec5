package geocode

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"ridepool_backend/pkg/utils/geo"
)

func TestForward(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "Saddar, Karachi" {
			t.Errorf("unexpected query %q", r.URL.Query().Get("q"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat": "24.8607", "lon": "67.0011", "display_name": "Saddar, Karachi, Pakistan"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "ridepool-test/1.0")
	point, name, err := client.Forward(context.Background(), "Saddar, Karachi")
	if err != nil {
		t.Fatalf("Forward() error = %v", err)
	}

	if gotUserAgent != "ridepool-test/1.0" {
		t.Errorf("User-Agent = %q, want %q", gotUserAgent, "ridepool-test/1.0")
	}
	if math.Abs(point.Lat-24.8607) > 1e-9 || math.Abs(point.Lng-67.0011) > 1e-9 {
		t.Errorf("Forward() point = %v", point)
	}
	if name != "Saddar, Karachi, Pakistan" {
		t.Errorf("Forward() name = %q", name)
	}
}

func TestForwardNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "ridepool-test/1.0")
	if _, _, err := client.Forward(context.Background(), "nowhere at all"); err == nil {
		t.Error("Forward() with empty result set should return an error")
	}
}

func TestForwardServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "ridepool-test/1.0")
	if _, _, err := client.Forward(context.Background(), "Saddar"); err == nil {
		t.Error("Forward() should surface non-200 responses as errors")
	}
}

func TestReverse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name": "Clifton, Karachi, Pakistan"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "ridepool-test/1.0")
	name, err := client.Reverse(context.Background(), geo.Point{Lat: 24.8138, Lng: 67.0300})
	if err != nil {
		t.Fatalf("Reverse() error = %v", err)
	}
	if name != "Clifton, Karachi, Pakistan" {
		t.Errorf("Reverse() = %q", name)
	}
}
