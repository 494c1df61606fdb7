package network

import (
	"cmp"
	"math"
	"slices"

	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/spatial"
	"github.com/paulmach/orb"
)

// Bridge is an edge added to join two components.
type Bridge struct {
	From graph.NodeId
	To   graph.NodeId
	Km   float64
}

// Repairer joins all components of a graph into one. Components are merged
// into the largest one in order of decreasing size, each through the
// closest pair of nodes between it and everything merged so far.
type Repairer struct {
	useIndex bool
}

func NewRepairer(options ...func(*Repairer)) *Repairer {
	repairer := &Repairer{}
	for _, option := range options {
		option(repairer)
	}
	return repairer
}

// WithIndex finds closest pairs through an R-tree instead of comparing all
// pairs. The distances are the same, the chosen pair may differ on ties.
func WithIndex() func(*Repairer) {
	return func(repairer *Repairer) {
		repairer.useIndex = true
	}
}

// Repair adds bridge edges to g until it is connected and returns them.
func (r *Repairer) Repair(g graph.DynamicGraph) []Bridge {
	components := graph.ConnectedComponents(g)
	if len(components) <= 1 {
		return nil
	}
	slices.SortStableFunc(components, func(a, b []graph.NodeId) int {
		return cmp.Compare(len(b), len(a))
	})

	main := slices.Clone(components[0])
	var ix *spatial.Index
	if r.useIndex {
		ix = spatial.NewIndex()
		for _, n := range main {
			ix.InsertPoint(n, g.GetNode(n).Point)
		}
	}

	bridges := make([]Bridge, 0, len(components)-1)
	for _, component := range components[1:] {
		var bridge Bridge
		if ix != nil {
			bridge = closestPairIndexed(g, ix, component)
		} else {
			bridge = closestPair(g, main, component)
		}

		p, q := g.GetNode(bridge.From).Point, g.GetNode(bridge.To).Point
		g.AddEdge(bridge.From, bridge.To, bridge.Km, graph.BridgeEdge, orb.LineString{p, q})
		bridges = append(bridges, bridge)

		main = append(main, component...)
		if ix != nil {
			for _, n := range component {
				ix.InsertPoint(n, g.GetNode(n).Point)
			}
		}
	}
	return bridges
}

// closestPair compares every node of main with every node of component.
// The first pair with the smallest distance wins.
func closestPair(g graph.Graph, main, component []graph.NodeId) Bridge {
	best := Bridge{Km: math.Inf(1)}
	for _, n1 := range main {
		p := g.GetNode(n1).Point
		for _, n2 := range component {
			if d := geo.Haversine(p, g.GetNode(n2).Point); d < best.Km {
				best = Bridge{From: n1, To: n2, Km: d}
			}
		}
	}
	return best
}

func closestPairIndexed(g graph.Graph, ix *spatial.Index, component []graph.NodeId) Bridge {
	best := Bridge{Km: math.Inf(1)}
	for _, n2 := range component {
		q := g.GetNode(n2).Point
		seed, ok := ix.Nearest(q)
		if !ok {
			continue
		}
		radius := math.Min(best.Km, geo.Haversine(g.GetNode(seed).Point, q))
		for _, n1 := range append(ix.WithinKm(q, radius), seed) {
			if d := geo.Haversine(g.GetNode(n1).Point, q); d < best.Km {
				best = Bridge{From: n1, To: n2, Km: d}
			}
		}
	}
	return best
}
