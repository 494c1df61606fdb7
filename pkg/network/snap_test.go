package network

import (
	"math/rand"
	"testing"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/domain"
	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleLane(t *testing.T) *graph.AdjacencyListGraph {
	t.Helper()
	g := NewBuilder().Build([]orb.LineString{{{0, 0}, {1, 0}}})
	require.Equal(t, 1, g.EdgeCount())
	return g
}

func TestSnapCoincidentNode(t *testing.T) {
	for _, p := range []geo.Point{{1, 0}, {1.0000001, 0.5}} {
		g := singleLane(t)
		before := g.AsString()

		n, d, err := NewSnapper().SnapToNetwork(g, p)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 0.0, d)
		assert.Equal(t, before, g.AsString(), "graph must not change")
	}
}

func TestSnapSplitsEdge(t *testing.T) {
	g := singleLane(t)
	p := geo.Point{0.5, 0.2}

	n, d, err := NewSnapper().SnapToNetwork(g, p)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.InDelta(t, geo.Haversine(p, geo.Point{0.5, 0}), d, 1e-9)

	require.Equal(t, 3, g.EdgeCount(), "long edge stays next to the two halves")
	assert.Equal(t, graph.LaneEdge, g.GetEdge(0).Kind)
	for _, e := range []int{1, 2} {
		edge := g.GetEdge(e)
		assert.Equal(t, graph.SnapEdge, edge.Kind)
		assert.Equal(t, n, edge.From)
		assert.InDelta(t, geo.Haversine(geo.Point{0.5, 0}, g.GetNode(edge.To).Point), edge.Weight, 1e-9)
	}

	again, _, err := NewSnapper().SnapToNetwork(g, geo.Point{0.5, -0.3})
	require.NoError(t, err)
	assert.Equal(t, n, again)
	assert.Equal(t, 3, g.EdgeCount(), "existing split node is reused")
}

func TestAddOffNetworkPoint(t *testing.T) {
	g := singleLane(t)
	p := geo.Point{0.25, -0.1}

	snapped, external, err := NewSnapper().AddOffNetworkPoint(g, p, "ship_alt_Nordic_Star")
	require.NoError(t, err)

	assert.Equal(t, graph.External("ship_alt_Nordic_Star"), g.GetNode(external).ID)
	assert.Equal(t, p, g.GetNode(external).Point)
	assert.Equal(t, graph.Network(g.KeyOf(geo.Point{0.25, 0})), g.GetNode(snapped).ID)

	e, ok := g.FindEdge(external, snapped)
	require.True(t, ok)
	attach := g.GetEdge(e)
	assert.Equal(t, graph.AttachEdge, attach.Kind)
	assert.InDelta(t, geo.Haversine(p, geo.Point{0.25, 0}), attach.Weight, 1e-9)
	assert.Equal(t, orb.LineString{p, {0.25, 0}}, attach.Geometry)
	assert.Equal(t, 4, g.EdgeCount())
}

func TestSnapEmptyNetwork(t *testing.T) {
	g := graph.NewAdjacencyListGraph()
	s := NewSnapper()

	_, err := s.NearestPointOnNetwork(g, geo.Point{1, 1})
	assert.ErrorIs(t, err, domain.ErrNoNetworkCoverage)
	_, _, err = s.SnapToNetwork(g, geo.Point{1, 1})
	assert.ErrorIs(t, err, domain.ErrNoNetworkCoverage)
	_, _, err = s.AddOffNetworkPoint(g, geo.Point{1, 1}, "ship_1")
	assert.ErrorIs(t, err, domain.ErrNoNetworkCoverage)
	assert.Equal(t, 0, g.NodeCount())
}

func TestNearestPointPicksClosestEdge(t *testing.T) {
	g := NewBuilder().Build([]orb.LineString{
		{{0, 0}, {2, 0}},
		{{0, 1}, {2, 1}},
		{{3, 0}, {3, 2}},
	})
	projection, err := NewSnapper().NearestPointOnNetwork(g, geo.Point{1.5, 0.8})
	require.NoError(t, err)
	assert.Equal(t, 1, projection.Edge)
	assert.InDelta(t, 1.5, projection.Point[0], 1e-12)
	assert.InDelta(t, 1.0, projection.Point[1], 1e-12)
	assert.InDelta(t, 0.75, projection.Fraction, 1e-12)
}

func TestIndexedSnappingMatchesExhaustive(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	base := NewBuilder().Build(randomIslands(rng, 60))
	NewRepairer().Repair(base)

	ix := NewEdgeIndex(base)
	work := base.Clone()
	_, _, err := NewSnapper().AddOffNetworkPoint(work, geo.Point{0, 50}, "dest")
	require.NoError(t, err)
	require.Greater(t, work.EdgeCount(), ix.EdgeCount())

	exhaustive := NewSnapper()
	indexed := NewSnapper(WithEdgeIndex(ix))
	for i := 0; i < 300; i++ {
		p := geo.Point{rng.Float64()*30 - 15, rng.Float64()*16 + 42}
		want, err := exhaustive.NearestPointOnNetwork(work, p)
		require.NoError(t, err)
		got, err := indexed.NearestPointOnNetwork(work, p)
		require.NoError(t, err)
		assert.Equal(t, want, got, "query %v", p)
	}
}
