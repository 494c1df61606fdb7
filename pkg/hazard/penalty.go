package hazard

import (
	"fmt"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/paulmach/orb"
)

// DefaultPenaltyFactor multiplies the weight of edges affected by a zone.
// Penalised edges stay in the graph, so connectivity is never lost.
const DefaultPenaltyFactor = 100.0

type PenaltyStats struct {
	Edges     int
	Penalized int
}

func (s PenaltyStats) String() string {
	return fmt.Sprintf("edges=%d penalized=%d", s.Edges, s.Penalized)
}

type Penalizer struct {
	zones  []*Zone
	factor float64
}

func NewPenalizer(zones []*Zone, options ...func(*Penalizer)) *Penalizer {
	penalizer := &Penalizer{zones: zones, factor: DefaultPenaltyFactor}
	for _, option := range options {
		option(penalizer)
	}
	return penalizer
}

func WithFactor(factor float64) func(*Penalizer) {
	return func(penalizer *Penalizer) {
		penalizer.factor = factor
	}
}

func (p *Penalizer) Zones() []*Zone {
	return p.zones
}

// Apply returns a working copy of g in which every edge affected by a zone
// weighs factor times more. g itself is not modified.
func (p *Penalizer) Apply(g graph.DynamicGraph) (*graph.AdjacencyListGraph, PenaltyStats) {
	work := g.Clone()
	stats := PenaltyStats{Edges: work.EdgeCount()}
	if len(p.zones) == 0 {
		return work, stats
	}

	bound := p.zones[0].Bound()
	for _, z := range p.zones[1:] {
		bound = bound.Union(z.Bound())
	}

	for e := 0; e < work.EdgeCount(); e++ {
		edge := work.GetEdge(e)
		geometry := edge.Geometry
		if len(geometry) < 2 {
			geometry = orb.LineString{work.GetNode(edge.From).Point, work.GetNode(edge.To).Point}
		}
		if !bound.Intersects(geometry.Bound()) {
			continue
		}
		if EdgeIntersects(geometry, p.zones) {
			work.SetWeight(e, edge.Weight*p.factor)
			stats.Penalized++
		}
	}
	return work, stats
}
