package network

import (
	"math"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/domain"
	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/spatial"
	"github.com/paulmach/orb"
)

// Projection is the closest point of the network to a query point.
type Projection struct {
	Point    geo.Point // projected coordinate on the edge geometry
	Distance float64   // great-circle distance from the query point in km
	Fraction float64   // position along the edge geometry in [0,1]
	Edge     int       // owning edge
}

// EdgeIndex is an R-tree over the edge geometries of a graph. It stays valid
// for clones of that graph: edges appended after the index was built are
// scanned linearly.
type EdgeIndex struct {
	index     *spatial.Index
	edgeCount int
}

func NewEdgeIndex(g graph.Graph) *EdgeIndex {
	ix := &EdgeIndex{index: spatial.NewIndex(), edgeCount: g.EdgeCount()}
	for e := 0; e < g.EdgeCount(); e++ {
		if geometry := g.GetEdge(e).Geometry; len(geometry) >= 2 {
			ix.index.InsertBound(e, geometry.Bound())
		}
	}
	return ix
}

func (ix *EdgeIndex) EdgeCount() int {
	return ix.edgeCount
}

// Snapper projects points onto the network and attaches them.
type Snapper struct {
	index *EdgeIndex
}

func NewSnapper(options ...func(*Snapper)) *Snapper {
	snapper := &Snapper{}
	for _, option := range options {
		option(snapper)
	}
	return snapper
}

// WithEdgeIndex limits the edges inspected per query to those the index
// cannot rule out. Results are identical to the exhaustive search.
func WithEdgeIndex(ix *EdgeIndex) func(*Snapper) {
	return func(snapper *Snapper) {
		snapper.index = ix
	}
}

func project(g graph.Graph, e int, p geo.Point) (Projection, bool) {
	geometry := g.GetEdge(e).Geometry
	if len(geometry) < 2 {
		return Projection{}, false
	}
	fraction, point := geo.ProjectOnLine(geometry, p)
	return Projection{Point: point, Distance: geo.Haversine(p, point), Fraction: fraction, Edge: e}, true
}

// candidates returns the edges to inspect in ascending order.
func (s *Snapper) candidates(g graph.Graph, p geo.Point) []int {
	if s.index == nil || s.index.edgeCount > g.EdgeCount() {
		return nil
	}
	seed, ok := s.index.index.Nearest(p)
	if !ok {
		return nil
	}
	first, ok := project(g, seed, p)
	if !ok {
		return nil
	}
	edges := s.index.index.WithinKm(p, first.Distance)
	for e := s.index.edgeCount; e < g.EdgeCount(); e++ {
		edges = append(edges, e)
	}
	return edges
}

// NearestPointOnNetwork returns the projection of p onto the closest edge
// geometry. Among equally close edges the one added first wins. It fails
// with domain.ErrNoNetworkCoverage when g has no edge geometry.
func (s *Snapper) NearestPointOnNetwork(g graph.Graph, p geo.Point) (Projection, error) {
	if !geo.Valid(p) {
		return Projection{}, domain.NewErrorf(domain.ErrMalformedInput, "invalid coordinate %v", p)
	}

	best := Projection{Edge: -1, Distance: math.Inf(1)}
	consider := func(e int) {
		if candidate, ok := project(g, e, p); ok && candidate.Distance < best.Distance {
			best = candidate
		}
	}
	if edges := s.candidates(g, p); edges != nil {
		for _, e := range edges {
			consider(e)
		}
	} else {
		for e := 0; e < g.EdgeCount(); e++ {
			consider(e)
		}
	}

	if best.Edge < 0 {
		return best, domain.NewErrorf(domain.ErrNoNetworkCoverage, "no segment found for %v", p)
	}
	return best, nil
}

// split returns the network node at the projected coordinate. A node created
// here is connected to both endpoints of the owning edge, which itself stays.
func split(g graph.DynamicGraph, projection Projection) graph.NodeId {
	edge := *g.GetEdge(projection.Edge)
	n, created := g.AddNetworkNode(g.KeyOf(projection.Point))
	if created {
		for _, end := range []graph.NodeId{edge.From, edge.To} {
			q := g.GetNode(end).Point
			g.AddEdge(n, end, geo.Haversine(projection.Point, q), graph.SnapEdge, orb.LineString{projection.Point, q})
		}
	}
	return n
}

// SnapToNetwork returns the network node closest to p, splitting the nearest
// edge when the projection is not one of its endpoints. The distance is the
// great-circle distance from p to the projection, or 0 when the projection
// rounds to an endpoint, in which case g is not modified.
func (s *Snapper) SnapToNetwork(g graph.DynamicGraph, p geo.Point) (graph.NodeId, float64, error) {
	projection, err := s.NearestPointOnNetwork(g, p)
	if err != nil {
		return -1, 0, err
	}
	edge := g.GetEdge(projection.Edge)
	key := graph.Network(g.KeyOf(projection.Point))
	for _, end := range []graph.NodeId{edge.From, edge.To} {
		if g.GetNode(end).ID == key {
			return end, 0, nil
		}
	}
	return split(g, projection), projection.Distance, nil
}

// AddOffNetworkPoint snaps p like SnapToNetwork and adds an external node
// labelled label at the raw coordinate, linked to the snapped node by one
// edge. It returns the snapped and the external node.
func (s *Snapper) AddOffNetworkPoint(g graph.DynamicGraph, p geo.Point, label string) (graph.NodeId, graph.NodeId, error) {
	projection, err := s.NearestPointOnNetwork(g, p)
	if err != nil {
		return -1, -1, err
	}
	snapped := split(g, projection)
	external := g.AddExternalNode(label, p)
	g.AddEdge(external, snapped, geo.Haversine(p, projection.Point), graph.AttachEdge, orb.LineString{p, projection.Point})
	return snapped, external, nil
}
