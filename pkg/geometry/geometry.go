package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Mean earth radius in meters used by the haversine distance
const EarthRadius = 6371000.0

// LatLng is a geodesic position as delivered by location services.
// The json field names follow the mobile map layer.
type LatLng struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

func NewLatLng(lat, lng float64) *LatLng {
	return &LatLng{Latitude: lat, Longitude: lng}
}

func MakeLatLng(lat, lng float64) LatLng {
	return LatLng{Latitude: lat, Longitude: lng}
}

func (p LatLng) Lat() float64 { return p.Latitude }
func (p LatLng) Lon() float64 { return p.Longitude }

// Point returns the position as orb point (x = longitude, y = latitude)
func (p LatLng) Point() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

func (p LatLng) String() string {
	return fmt.Sprintf("(%v, %v)", p.Latitude, p.Longitude)
}

// Valid reports whether the coordinates lie in the usual WGS84 ranges
func (p LatLng) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// DistanceTo returns the great-circle distance in meters to the other position
func (p LatLng) DistanceTo(other LatLng) float64 {
	return Haversine(p.Point(), other.Point())
}

// Haversine calculates the great-circle distance in meters between two orb points
// holding (longitude, latitude).
func Haversine(a, b orb.Point) float64 {
	lat1 := deg2rad(a.Lat())
	lat2 := deg2rad(b.Lat())
	deltaLat := deg2rad(b.Lat() - a.Lat())
	deltaLon := deg2rad(b.Lon() - a.Lon())

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadius * c
}

// EuclideanDistance returns the straight line distance of two points in a
// floor plan coordinate space.
func EuclideanDistance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180
}
