package path

import (
	"context"
	"testing"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/domain"
	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ladder builds two parallel lanes along the equator joined by rungs.
//
//	0 - 1 - 2 - 3
//	|       |   |
//	4 - 5 - 6 - 7   8 (isolated)
func ladder(t *testing.T) *graph.AdjacencyListGraph {
	t.Helper()
	g := graph.NewAdjacencyListGraph()
	points := []geo.Point{
		{0, 1}, {1, 1}, {2, 1}, {3, 1},
		{0, 0}, {1, 0}, {2, 0}, {3, 0},
		{10, 10},
	}
	for _, p := range points {
		g.AddNetworkNode(g.KeyOf(p))
	}
	connect := func(u, v int) {
		p, q := points[u], points[v]
		require.True(t, g.AddEdge(u, v, geo.Haversine(p, q), graph.LaneEdge, orb.LineString{p, q}))
	}
	connect(0, 1)
	connect(1, 2)
	connect(2, 3)
	connect(4, 5)
	connect(5, 6)
	connect(6, 7)
	connect(0, 4)
	connect(2, 6)
	connect(3, 7)
	return g
}

func TestDijkstra(t *testing.T) {
	g := ladder(t)
	d := NewDijkstra(g)

	length, err := d.ComputeShortestPath(context.Background(), 4, 3)
	require.NoError(t, err)
	path := d.GetPath(4, 3)
	assert.Equal(t, []int{4, 0, 1, 2, 3}, path)

	expected := 0.0
	for i := 1; i < len(path); i++ {
		e, _ := g.FindEdge(path[i-1], path[i])
		expected += g.GetEdge(e).Weight
	}
	assert.InDelta(t, expected, length, 1e-9)
	assert.Greater(t, d.GetPqPops(), 0)
	assert.NotEmpty(t, d.GetSearchSpace())
}

func TestDijkstraSameNode(t *testing.T) {
	d := NewDijkstra(ladder(t))
	length, err := d.ComputeShortestPath(context.Background(), 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, length)
	assert.Equal(t, []int{5}, d.GetPath(5, 5))
}

func TestAStarMatchesDijkstra(t *testing.T) {
	g := ladder(t)
	plain := NewDijkstra(g)
	astar, err := NewNavigator("astar", g)
	require.NoError(t, err)

	for origin := 0; origin < 8; origin++ {
		for destination := 0; destination < 8; destination++ {
			want, err := plain.ComputeShortestPath(context.Background(), origin, destination)
			require.NoError(t, err)
			got, err := astar.ComputeShortestPath(context.Background(), origin, destination)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-6, "%d -> %d", origin, destination)
		}
	}
}

func TestDijkstraFailures(t *testing.T) {
	g := ladder(t)
	d := NewDijkstra(g)

	t.Run("unreachable", func(t *testing.T) {
		_, err := d.ComputeShortestPath(context.Background(), 0, 8)
		assert.ErrorIs(t, err, domain.ErrNoPath)
		assert.Empty(t, d.GetPath(0, 8))
	})
	t.Run("unknown node", func(t *testing.T) {
		_, err := d.ComputeShortestPath(context.Background(), 0, 42)
		assert.ErrorIs(t, err, domain.ErrNodeNotFound)
		_, err = d.ComputeShortestPath(context.Background(), -1, 3)
		assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	})
	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := d.ComputeShortestPath(ctx, 0, 3)
		assert.ErrorIs(t, err, context.Canceled)
	})
	t.Run("unknown navigator", func(t *testing.T) {
		_, err := NewNavigator("ch", g)
		assert.Error(t, err)
	})
}
