package network

import (
	"fmt"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/domain"
	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/paulmach/orb"
)

// DefaultMaxSegmentKm is the longest edge the builder creates. Longer lane
// segments are split so that snapping and hazard tests stay local.
const DefaultMaxSegmentKm = 80.0

type BuildStats struct {
	Lines        int // lines passed to the builder
	OutsideBound int // lines without a vertex inside the bound
	Malformed    int // lines with fewer than two vertices or invalid coordinates
	Edges        int // edges added
	Duplicates   int // edges dropped because the node pair was already connected
	Degenerate   int // sub-segments whose endpoints share a node key
}

func (s BuildStats) String() string {
	return fmt.Sprintf("lines=%d outside=%d malformed=%d edges=%d duplicates=%d degenerate=%d",
		s.Lines, s.OutsideBound, s.Malformed, s.Edges, s.Duplicates, s.Degenerate)
}

// Builder turns lane lines into a weighted undirected graph.
type Builder struct {
	bound        *orb.Bound
	maxSegmentKm float64
	graphOptions []graph.Option
	stats        BuildStats
}

func NewBuilder(options ...func(*Builder)) *Builder {
	builder := &Builder{maxSegmentKm: DefaultMaxSegmentKm}
	for _, option := range options {
		option(builder)
	}
	return builder
}

// WithBound skips lines that have no vertex inside bound.
func WithBound(bound orb.Bound) func(*Builder) {
	return func(builder *Builder) {
		builder.bound = &bound
	}
}

func WithMaxSegmentKm(km float64) func(*Builder) {
	return func(builder *Builder) {
		builder.maxSegmentKm = km
	}
}

func WithGraphOptions(options ...graph.Option) func(*Builder) {
	return func(builder *Builder) {
		builder.graphOptions = options
	}
}

func (builder *Builder) Stats() BuildStats {
	return builder.stats
}

// Build creates a new graph from lines.
func (builder *Builder) Build(lines []orb.LineString) *graph.AdjacencyListGraph {
	g := graph.NewAdjacencyListGraph(builder.graphOptions...)
	for _, line := range lines {
		builder.AddLine(g, line)
	}
	return g
}

func (builder *Builder) inBound(line orb.LineString) bool {
	if builder.bound == nil {
		return true
	}
	for _, p := range line {
		if builder.bound.Contains(p) {
			return true
		}
	}
	return false
}

// AddLine adds the edges of one lane line to g. Malformed lines are skipped
// and reported as domain.ErrMalformedInput, lines outside the bound are
// skipped silently.
func (builder *Builder) AddLine(g graph.DynamicGraph, line orb.LineString) error {
	builder.stats.Lines++
	if len(line) < 2 {
		builder.stats.Malformed++
		return domain.NewErrorf(domain.ErrMalformedInput, "line with %d vertices", len(line))
	}
	for _, p := range line {
		if !geo.Valid(p) {
			builder.stats.Malformed++
			return domain.NewErrorf(domain.ErrMalformedInput, "invalid coordinate %v", p)
		}
	}
	if !builder.inBound(line) {
		builder.stats.OutsideBound++
		return nil
	}

	dense := geo.Densify(line, builder.maxSegmentKm)
	for i := 1; i < len(dense); i++ {
		p, q := dense[i-1], dense[i]
		u, _ := g.AddNetworkNode(g.KeyOf(p))
		v, _ := g.AddNetworkNode(g.KeyOf(q))
		if u == v {
			builder.stats.Degenerate++
			continue
		}
		if g.AddEdge(u, v, geo.Haversine(p, q), graph.LaneEdge, orb.LineString{p, q}) {
			builder.stats.Edges++
		} else {
			builder.stats.Duplicates++
		}
	}
	return nil
}
