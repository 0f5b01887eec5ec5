package geo

import "math"

// MatchRadiusKm is how far a route endpoint may be from the rider's point
// and still count as a match. The bound is inclusive.
const MatchRadiusKm = 3.0

// Point represents a geographical point
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ValidCoordinates reports whether the point is a real lat/lng pair.
func ValidCoordinates(p Point) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// HaversineDistance calculates the distance between two points on Earth
// using the Haversine formula. Returns distance in kilometers.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadius = 6371 // Earth's radius in kilometers

	lat1Rad := lat1 * math.Pi / 180
	lng1Rad := lng1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lng2Rad := lng2 * math.Pi / 180

	dlat := lat2Rad - lat1Rad
	dlng := lng2Rad - lng1Rad

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dlng/2)*math.Sin(dlng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// Distance is HaversineDistance over Points.
func Distance(a, b Point) float64 {
	return HaversineDistance(a.Lat, a.Lng, b.Lat, b.Lng)
}

// IsWithinRadius checks if a point is within a specified radius of another point
func IsWithinRadius(center, point Point, radiusKm float64) bool {
	return Distance(center, point) <= radiusKm
}

// MatchesEndpoints reports whether a route with the given pickup and dropoff
// matches a rider search: both the rider's pickup and dropoff must lie within
// MatchRadiusKm of the corresponding route endpoint.
func MatchesEndpoints(riderPickup, riderDropoff, routePickup, routeDropoff Point) bool {
	return IsWithinRadius(riderPickup, routePickup, MatchRadiusKm) &&
		IsWithinRadius(riderDropoff, routeDropoff, MatchRadiusKm)
}
