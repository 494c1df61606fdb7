package spatial

import (
	"math"
	"slices"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/paulmach/orb"
)

// tol pads degenerate bounds, rtreego rejects rectangles without extent
const tol = 1e-9

// relative padding of search radii against rounding in the bound computation
const radiusPadding = 1e-9

type entry struct {
	id   int
	rect rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect {
	return e.rect
}

// Index is an R-tree over integer ids with lon/lat bounds.
type Index struct {
	tree *rtreego.Rtree
}

func NewIndex() *Index {
	return &Index{tree: rtreego.NewTree(2, 25, 50)} // 2 dimensions, 25 min entries and 50 max entries
}

func toRect(b orb.Bound) rtreego.Rect {
	rect, err := rtreego.NewRect(
		rtreego.Point{b.Min.Lon() - tol, b.Min.Lat() - tol},
		[]float64{b.Max.Lon() - b.Min.Lon() + 2*tol, b.Max.Lat() - b.Min.Lat() + 2*tol},
	)
	if err != nil {
		// lengths are positive for every finite bound
		panic(err)
	}
	return rect
}

func (ix *Index) InsertBound(id int, b orb.Bound) {
	ix.tree.Insert(&entry{id: id, rect: toRect(b)})
}

func (ix *Index) InsertPoint(id int, p orb.Point) {
	ix.InsertBound(id, orb.Bound{Min: p, Max: p})
}

func (ix *Index) Size() int {
	return ix.tree.Size()
}

// Nearest returns the id whose bounds are closest to p in degree space.
// This is a seed for exact searches, not a great-circle nearest neighbour.
func (ix *Index) Nearest(p orb.Point) (int, bool) {
	if ix.tree.Size() == 0 {
		return 0, false
	}
	nearest := ix.tree.NearestNeighbor(rtreego.Point{p.Lon(), p.Lat()})
	if nearest == nil {
		return 0, false
	}
	return nearest.(*entry).id, true
}

// Intersecting returns the ids whose bounds intersect b, ascending.
func (ix *Index) Intersecting(b orb.Bound) []int {
	found := ix.tree.SearchIntersect(toRect(b))
	ids := make([]int, 0, len(found))
	for _, s := range found {
		ids = append(ids, s.(*entry).id)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// WithinKm returns, ascending, every id whose bounds may contain a point no
// farther than km from p along a great circle. The result is a superset.
func (ix *Index) WithinKm(p orb.Point, km float64) []int {
	ids := make([]int, 0)
	for _, b := range SearchBounds(p, km) {
		ids = append(ids, ix.Intersecting(b)...)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// SearchBounds returns lon/lat boxes covering the spherical cap of radius km
// around p. Caps crossing the antimeridian are split into two boxes.
func SearchBounds(p orb.Point, km float64) []orb.Bound {
	angle := s1.Angle(km/geo.EarthRadiusKm*(1+radiusPadding) + tol)
	if angle >= math.Pi {
		return []orb.Bound{world()}
	}
	center := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat(), p.Lon()))
	rect := s2.CapFromCenterAngle(center, angle).RectBound()
	if rect.IsFull() {
		return []orb.Bound{world()}
	}

	minLat := rect.Lat.Lo * 180 / math.Pi
	maxLat := rect.Lat.Hi * 180 / math.Pi
	if rect.Lng.IsFull() {
		return []orb.Bound{{Min: orb.Point{-180, minLat}, Max: orb.Point{180, maxLat}}}
	}
	lo := rect.Lng.Lo * 180 / math.Pi
	hi := rect.Lng.Hi * 180 / math.Pi
	if rect.Lng.IsInverted() {
		return []orb.Bound{
			{Min: orb.Point{lo, minLat}, Max: orb.Point{180, maxLat}},
			{Min: orb.Point{-180, minLat}, Max: orb.Point{hi, maxLat}},
		}
	}
	return []orb.Bound{{Min: orb.Point{lo, minLat}, Max: orb.Point{hi, maxLat}}}
}

func world() orb.Bound {
	return orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}
}
