package geo

import (
	"math"
	"testing"
)

// kmToLatDegrees converts a north-south distance to degrees of latitude,
// which the haversine formula measures exactly.
func kmToLatDegrees(km float64) float64 {
	return km * 180 / (math.Pi * 6371)
}

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lng1 float64
		lat2, lng2 float64
		want       float64
		tolerance  float64
	}{
		{
			name: "same point is zero",
			lat1: 24.8607, lng1: 67.0011,
			lat2: 24.8607, lng2: 67.0011,
			want: 0, tolerance: 1e-9,
		},
		{
			name: "karachi saddar to clifton",
			lat1: 24.8607, lng1: 67.0011,
			lat2: 24.8138, lng2: 67.0300,
			want: 5.95, tolerance: 0.1,
		},
		{
			name: "one degree of latitude",
			lat1: 0, lng1: 0,
			lat2: 1, lng2: 0,
			want: 111.19, tolerance: 0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("HaversineDistance() = %v, want %v ± %v", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestHaversineSymmetry(t *testing.T) {
	points := []Point{
		{24.8607, 67.0011},
		{40.7128, -74.0060},
		{-33.8688, 151.2093},
	}

	for i := range points {
		for j := range points {
			ab := Distance(points[i], points[j])
			ba := Distance(points[j], points[i])
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("Distance(%v, %v) = %v but reversed = %v", points[i], points[j], ab, ba)
			}
		}
	}
}

func TestMatchRadiusBoundary(t *testing.T) {
	if MatchRadiusKm != 3.0 {
		t.Fatalf("MatchRadiusKm = %v, want 3.0", MatchRadiusKm)
	}

	center := Point{Lat: 24.8607, Lng: 67.0011}

	inside := Point{Lat: center.Lat + kmToLatDegrees(2.999), Lng: center.Lng}
	if !IsWithinRadius(center, inside, MatchRadiusKm) {
		t.Errorf("point %.3f km away should be within the %v km radius", 2.999, MatchRadiusKm)
	}

	outside := Point{Lat: center.Lat + kmToLatDegrees(3.001), Lng: center.Lng}
	if IsWithinRadius(center, outside, MatchRadiusKm) {
		t.Errorf("point %.3f km away should be outside the %v km radius", 3.001, MatchRadiusKm)
	}
}

func TestMatchesEndpoints(t *testing.T) {
	routePickup := Point{Lat: 24.8607, Lng: 67.0011}
	routeDropoff := Point{Lat: 24.8500, Lng: 67.0300}

	tests := []struct {
		name         string
		riderPickup  Point
		riderDropoff Point
		want         bool
	}{
		{
			name:         "both endpoints close",
			riderPickup:  Point{Lat: 24.8620, Lng: 67.0020},
			riderDropoff: Point{Lat: 24.8510, Lng: 67.0310},
			want:         true,
		},
		{
			name:         "pickup close but dropoff too far",
			riderPickup:  Point{Lat: 24.8620, Lng: 67.0020},
			riderDropoff: Point{Lat: 24.8700, Lng: 67.0600},
			want:         false,
		},
		{
			name:         "dropoff close but pickup too far",
			riderPickup:  Point{Lat: 24.9200, Lng: 67.0011},
			riderDropoff: Point{Lat: 24.8500, Lng: 67.0300},
			want:         false,
		},
		{
			name:         "both far",
			riderPickup:  Point{Lat: 25.0000, Lng: 67.2000},
			riderDropoff: Point{Lat: 25.1000, Lng: 67.3000},
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchesEndpoints(tt.riderPickup, tt.riderDropoff, routePickup, routeDropoff)
			if got != tt.want {
				t.Errorf("MatchesEndpoints() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidCoordinates(t *testing.T) {
	valid := []Point{{0, 0}, {90, 180}, {-90, -180}, {24.8607, 67.0011}}
	for _, p := range valid {
		if !ValidCoordinates(p) {
			t.Errorf("ValidCoordinates(%v) = false, want true", p)
		}
	}

	invalid := []Point{{91, 0}, {-91, 0}, {0, 181}, {0, -181}}
	for _, p := range invalid {
		if ValidCoordinates(p) {
			t.Errorf("ValidCoordinates(%v) = true, want false", p)
		}
	}
}
