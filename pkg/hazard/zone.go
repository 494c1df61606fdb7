package hazard

import (
	"math"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/domain"
	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Zone is a validated hazard area. Tests are planar in degree space.
type Zone struct {
	ID       string
	Polygons orb.MultiPolygon
	bound    orb.Bound
}

// NewZone validates a polygon or multipolygon. Unclosed rings are closed.
// Geometries that cannot serve as a hazard area fail with
// domain.ErrDegenerateGeometry.
func NewZone(id string, geometry orb.Geometry) (*Zone, error) {
	var polygons orb.MultiPolygon
	switch g := geometry.(type) {
	case orb.Polygon:
		polygons = orb.MultiPolygon{g}
	case orb.MultiPolygon:
		polygons = g
	case nil:
		return nil, domain.NewErrorf(domain.ErrDegenerateGeometry, "zone %s: no geometry", id)
	default:
		return nil, domain.NewErrorf(domain.ErrDegenerateGeometry, "zone %s: unsupported geometry %s", id, geometry.GeoJSONType())
	}
	if len(polygons) == 0 {
		return nil, domain.NewErrorf(domain.ErrDegenerateGeometry, "zone %s: empty", id)
	}

	valid := make(orb.MultiPolygon, 0, len(polygons))
	for i, polygon := range polygons {
		p, err := validPolygon(polygon)
		if err != nil {
			return nil, domain.WrapErrorf(err, domain.ErrDegenerateGeometry, "zone %s: polygon %d", id, i)
		}
		valid = append(valid, p)
	}
	return &Zone{ID: id, Polygons: valid, bound: valid.Bound()}, nil
}

func validPolygon(polygon orb.Polygon) (orb.Polygon, error) {
	if len(polygon) == 0 {
		return nil, domain.NewErrorf(domain.ErrDegenerateGeometry, "no rings")
	}
	rings := make(orb.Polygon, 0, len(polygon))
	for i, ring := range polygon {
		for _, p := range ring {
			if !geo.IsFinite(p) {
				return nil, domain.NewErrorf(domain.ErrDegenerateGeometry, "ring %d: invalid coordinate %v", i, p)
			}
		}
		if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
			closed := make(orb.Ring, len(ring), len(ring)+1)
			copy(closed, ring)
			ring = append(closed, ring[0])
		}
		if len(ring) < 4 {
			return nil, domain.NewErrorf(domain.ErrDegenerateGeometry, "ring %d: %d vertices", i, len(ring))
		}
		if selfIntersects(ring) {
			return nil, domain.NewErrorf(domain.ErrDegenerateGeometry, "ring %d: self-intersection", i)
		}
		rings = append(rings, ring)
	}
	if math.Abs(planar.Area(orb.Polygon{rings[0]})) == 0 {
		return nil, domain.NewErrorf(domain.ErrDegenerateGeometry, "outer ring without area")
	}
	return rings, nil
}

// selfIntersects reports whether two non-adjacent segments of a closed ring
// touch. Repeated consecutive vertices are ignored.
func selfIntersects(ring orb.Ring) bool {
	points := make([]orb.Point, 0, len(ring))
	for _, p := range ring {
		if len(points) == 0 || points[len(points)-1] != p {
			points = append(points, p)
		}
	}
	n := len(points) - 1
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if geo.SegmentsIntersect(points[i], points[i+1], points[j], points[j+1]) {
				return true
			}
		}
	}
	return false
}

func (z *Zone) Bound() orb.Bound {
	return z.bound
}

// Contains reports whether p lies inside the zone, holes excluded.
func (z *Zone) Contains(p orb.Point) bool {
	return z.bound.Contains(p) && planar.MultiPolygonContains(z.Polygons, p)
}

// IntersectsLine reports whether ls has a vertex inside the zone or touches
// any of its rings.
func (z *Zone) IntersectsLine(ls orb.LineString) bool {
	if len(ls) == 0 || !z.bound.Intersects(ls.Bound()) {
		return false
	}
	for _, p := range ls {
		if z.Contains(p) {
			return true
		}
	}
	for _, polygon := range z.Polygons {
		for _, ring := range polygon {
			for i := 1; i < len(ring); i++ {
				for j := 1; j < len(ls); j++ {
					if geo.SegmentsIntersect(ring[i-1], ring[i], ls[j-1], ls[j]) {
						return true
					}
				}
			}
		}
	}
	return false
}

// EdgeIntersects reports whether an edge geometry is affected by any zone:
// its midpoint lies inside a zone or the line intersects one.
func EdgeIntersects(ls orb.LineString, zones []*Zone) bool {
	if len(ls) == 0 {
		return false
	}
	mid := geo.Midpoint(ls)
	for _, z := range zones {
		if z.Contains(mid) || z.IntersectsLine(ls) {
			return true
		}
	}
	return false
}

// RouteIntersects reports whether a route line intersects any zone.
func RouteIntersects(route orb.LineString, zones []*Zone) bool {
	if len(route) < 2 {
		return false
	}
	for _, z := range zones {
		if z.IntersectsLine(route) {
			return true
		}
	}
	return false
}
