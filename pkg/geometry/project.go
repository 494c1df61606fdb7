package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// planarLength is the length of ls in degree space.
func planarLength(ls orb.LineString) float64 {
	length := 0.0
	for i := 1; i < len(ls); i++ {
		length += math.Hypot(ls[i][0]-ls[i-1][0], ls[i][1]-ls[i-1][1])
	}
	return length
}

// ProjectOnLine projects p onto ls in degree space. It returns the position of
// the closest point as a fraction of the line length, clamped to [0,1], and
// the closest point itself. The first of several equally close segments wins.
// Lines without length project onto their first vertex.
func ProjectOnLine(ls orb.LineString, p Point) (float64, Point) {
	if len(ls) == 0 {
		return 0, p
	}
	total := planarLength(ls)
	if len(ls) == 1 || total == 0 {
		return 0, ls[0]
	}

	best := math.Inf(1)
	bestAlong := 0.0
	bestPoint := ls[0]
	walked := 0.0
	for i := 1; i < len(ls); i++ {
		a, b := ls[i-1], ls[i]
		dx, dy := b[0]-a[0], b[1]-a[1]
		segLen := math.Hypot(dx, dy)

		t := 0.0
		if segLen > 0 {
			t = ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / (segLen * segLen)
			t = math.Max(0, math.Min(1, t))
		}
		c := Point{a[0] + t*dx, a[1] + t*dy}
		if d := math.Hypot(p[0]-c[0], p[1]-c[1]); d < best {
			best = d
			bestAlong = walked + t*segLen
			bestPoint = c
		}
		walked += segLen
	}

	fraction := math.Max(0, math.Min(1, bestAlong/total))
	return fraction, bestPoint
}

// PointAlong returns the point at fraction t of the planar length of ls.
func PointAlong(ls orb.LineString, t float64) Point {
	if len(ls) == 0 {
		return Point{}
	}
	t = math.Max(0, math.Min(1, t))
	target := t * planarLength(ls)
	walked := 0.0
	for i := 1; i < len(ls); i++ {
		a, b := ls[i-1], ls[i]
		segLen := math.Hypot(b[0]-a[0], b[1]-a[1])
		if segLen > 0 && walked+segLen >= target {
			return Interpolate(a, b, (target-walked)/segLen)
		}
		walked += segLen
	}
	return ls[len(ls)-1]
}

// Midpoint is the point halfway along ls.
func Midpoint(ls orb.LineString) Point {
	return PointAlong(ls, 0.5)
}
