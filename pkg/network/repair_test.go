package network

import (
	"math"
	"math/rand"
	"testing"

	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// degrees of longitude along the equator that span km
func equatorDegrees(km float64) float64 {
	return km / geo.EarthRadiusKm * 180 / math.Pi
}

func TestRepairBridgesTwoSegments(t *testing.T) {
	gap := equatorDegrees(50)
	g := NewBuilder().Build([]orb.LineString{
		{{0, 0}, {0.1, 0}},
		{{0.1 + gap, 0}, {0.2 + gap, 0}},
	})
	require.Len(t, graph.ConnectedComponents(g), 2)

	bridges := NewRepairer().Repair(g)

	require.Len(t, bridges, 1)
	assert.Len(t, graph.ConnectedComponents(g), 1)
	assert.Equal(t, 3, g.EdgeCount())
	assert.InDelta(t, 50, bridges[0].Km, 1e-3)

	bridge := g.GetEdge(2)
	assert.Equal(t, graph.BridgeEdge, bridge.Kind)
	assert.Len(t, bridge.Geometry, 2)
	assert.Equal(t, bridges[0].Km, bridge.Weight)
}

func TestRepairSingleComponentIsNoop(t *testing.T) {
	g := NewBuilder().Build([]orb.LineString{{{0, 0}, {1, 0}, {1, 1}}})
	assert.Empty(t, NewRepairer().Repair(g))
	assert.Equal(t, 2, g.EdgeCount())
}

func randomIslands(rng *rand.Rand, n int) []orb.LineString {
	lines := make([]orb.LineString, 0, n)
	for i := 0; i < n; i++ {
		start := orb.Point{rng.Float64()*20 - 10, rng.Float64()*10 + 45}
		line := orb.LineString{start}
		for j := 0; j < 1+rng.Intn(4); j++ {
			last := line[len(line)-1]
			line = append(line, orb.Point{last[0] + rng.Float64()*0.4 - 0.2, last[1] + rng.Float64()*0.4 - 0.2})
		}
		lines = append(lines, line)
	}
	return lines
}

func TestRepairIndexedConnectsLikeExhaustive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	lines := randomIslands(rng, 40)

	exhaustive := NewBuilder().Build(lines)
	indexed := NewBuilder().Build(lines)
	components := len(graph.ConnectedComponents(exhaustive))
	require.Greater(t, components, 1)

	want := NewRepairer().Repair(exhaustive)
	got := NewRepairer(WithIndex()).Repair(indexed)

	assert.Len(t, graph.ConnectedComponents(exhaustive), 1)
	assert.Len(t, graph.ConnectedComponents(indexed), 1)
	require.Len(t, got, components-1)
	require.Len(t, want, components-1)
	for i := range want {
		assert.InDelta(t, want[i].Km, got[i].Km, 1e-9, "bridge %d", i)
	}
}
