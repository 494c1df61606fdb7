package network

import (
	"testing"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/domain"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	g := graph.NewAdjacencyListGraph()
	a, _ := g.AddNetworkNode(g.KeyOf(orb.Point{0, 0}))
	b, _ := g.AddNetworkNode(g.KeyOf(orb.Point{2, 0}))
	c, _ := g.AddNetworkNode(g.KeyOf(orb.Point{4, 0}))
	d, _ := g.AddNetworkNode(g.KeyOf(orb.Point{6, 0}))
	g.AddEdge(a, b, 222, graph.LaneEdge, orb.LineString{{0, 0}, {1, 0.5}, {2, 0}})
	// stored against the direction of travel
	g.AddEdge(c, b, 222, graph.LaneEdge, orb.LineString{{4, 0}, {3, -0.5}, {2, 0}})
	g.AddEdge(c, d, 222, graph.LaneEdge, nil)

	t.Run("drops shared vertices", func(t *testing.T) {
		line, err := ExpandPath(g, []graph.NodeId{a, b, c})
		require.NoError(t, err)
		assert.Equal(t, orb.LineString{{0, 0}, {1, 0.5}, {2, 0}, {3, -0.5}, {4, 0}}, line)
	})
	t.Run("straight fallback", func(t *testing.T) {
		line, err := ExpandPath(g, []graph.NodeId{b, c, d})
		require.NoError(t, err)
		assert.Equal(t, orb.LineString{{2, 0}, {3, -0.5}, {4, 0}, {6, 0}}, line)
	})
	t.Run("too short", func(t *testing.T) {
		_, err := ExpandPath(g, []graph.NodeId{a})
		assert.ErrorIs(t, err, domain.ErrNoGeometry)
		_, err = ExpandPath(g, nil)
		assert.ErrorIs(t, err, domain.ErrNoGeometry)
	})
}

func TestUsesSynthetic(t *testing.T) {
	g := NewBuilder().Build([]orb.LineString{{{0, 0}, {1, 0}}, {{1.5, 0}, {2, 0}}})
	NewRepairer().Repair(g)

	assert.False(t, UsesSynthetic(g, []graph.NodeId{0, 1}))
	assert.True(t, UsesSynthetic(g, []graph.NodeId{0, 1, 2, 3}))

	_, ext, err := NewSnapper().AddOffNetworkPoint(g, orb.Point{0.5, 0.5}, "ship_1")
	require.NoError(t, err)
	assert.True(t, UsesSynthetic(g, []graph.NodeId{ext}))
}
