package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// Point is a WGS84 coordinate stored as {lon, lat} in degrees.
type Point = orb.Point

func NewPoint(lat, lon float64) *Point {
	p := MakePoint(lat, lon)
	return &p
}

func MakePoint(lat, lon float64) Point {
	return Point{lon, lat}
}

// IsFinite reports whether both coordinates are real numbers.
func IsFinite(p Point) bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Valid reports whether p is finite and inside the WGS84 coordinate range.
func Valid(p Point) bool {
	return IsFinite(p) && p.Lat() >= -90 && p.Lat() <= 90 && p.Lon() >= -180 && p.Lon() <= 180
}

// Interpolate returns the point at fraction t of the straight segment a-b,
// linear in degrees.
func Interpolate(a, b Point, t float64) Point {
	return Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
}
