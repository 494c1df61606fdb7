package geometry

import "math"

const collinearEps = 1e-12

func orientation(a, b, c Point) int {
	v := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
	switch {
	case math.Abs(v) <= collinearEps:
		return 0
	case v > 0:
		return 1
	default:
		return -1
	}
}

func onSegment(a, b, p Point) bool {
	return math.Min(a[0], b[0])-collinearEps <= p[0] && p[0] <= math.Max(a[0], b[0])+collinearEps &&
		math.Min(a[1], b[1])-collinearEps <= p[1] && p[1] <= math.Max(a[1], b[1])+collinearEps
}

// SegmentsIntersect reports whether the closed segments p1-p2 and p3-p4
// share at least one point, touching and collinear overlap included.
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	o1 := orientation(p1, p2, p3)
	o2 := orientation(p1, p2, p4)
	o3 := orientation(p3, p4, p1)
	o4 := orientation(p3, p4, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if o2 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	if o3 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	return o4 == 0 && onSegment(p3, p4, p2)
}
