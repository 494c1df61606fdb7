package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

const EarthRadiusKm = 6371.0

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

// Haversine returns the great-circle distance between p and q in kilometers.
func Haversine(p, q Point) float64 {
	lat1, lat2 := degreeToRadians(p.Lat()), degreeToRadians(q.Lat())
	dLat := lat2 - lat1
	dLon := degreeToRadians(q.Lon() - p.Lon())

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Sqrt(math.Min(1, a)))
	return EarthRadiusKm * c
}

// LineLength sums the great-circle length of every segment of ls.
func LineLength(ls orb.LineString) float64 {
	length := 0.0
	for i := 1; i < len(ls); i++ {
		length += Haversine(ls[i-1], ls[i])
	}
	return length
}

// Densify inserts evenly spaced points between consecutive vertices that are
// more than maxKm apart, so that no resulting piece is longer than maxKm.
// The input line is not modified.
func Densify(ls orb.LineString, maxKm float64) orb.LineString {
	if len(ls) == 0 {
		return orb.LineString{}
	}
	result := make(orb.LineString, 0, len(ls))
	result = append(result, ls[0])
	for i := 1; i < len(ls); i++ {
		a, b := ls[i-1], ls[i]
		if d := Haversine(a, b); maxKm > 0 && d > maxKm {
			n := piecesFor(a, b, d, maxKm)
			for j := 1; j < n; j++ {
				result = append(result, Interpolate(a, b, float64(j)/float64(n)))
			}
		}
		result = append(result, b)
	}
	return result
}

// piecesFor starts at int(d/maxKm)+1 and grows until every linear piece is
// short enough; pieces of a segment crossing latitudes are not equally long.
func piecesFor(a, b Point, d, maxKm float64) int {
	n := int(d/maxKm) + 1
	for limit := 4 * n; n < limit; n++ {
		fits := true
		prev := a
		for j := 1; j <= n; j++ {
			next := Interpolate(a, b, float64(j)/float64(n))
			if Haversine(prev, next) > maxKm {
				fits = false
				break
			}
			prev = next
		}
		if fits {
			break
		}
	}
	return n
}
