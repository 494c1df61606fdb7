package routing

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"testing"

	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/hazard"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/network"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(minX, minY, maxX, maxY float64) orb.Polygon {
	return orb.Polygon{{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY}}}
}

// squareNetwork is the ring A(0,0) B(1,0) C(1,1) D(0,1).
func squareNetwork(t *testing.T) *graph.AdjacencyListGraph {
	t.Helper()
	g := graph.NewAdjacencyListGraph()
	corners := []geo.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, p := range corners {
		g.AddNetworkNode(g.KeyOf(p))
	}
	for i := range corners {
		p, q := corners[i], corners[(i+1)%len(corners)]
		require.True(t, g.AddEdge(i, (i+1)%len(corners), geo.Haversine(p, q), graph.LaneEdge, orb.LineString{p, q}))
	}
	return g
}

func testConfig() Config {
	config := DefaultConfig()
	config.Workers = 2
	return config
}

var nearB = Destination{Name: "Harbour", Position: geo.Point{1, -0.01}}

func TestRouteVessel(t *testing.T) {
	base := squareNetwork(t)
	router := NewRouter(base, nearB, testConfig())
	dest, err := router.DestinationNode()
	require.NoError(t, err)
	assert.Equal(t, 1, dest, "destination projects onto B")
	before := base.AsString()

	route, err := router.RouteVessel(context.Background(), Vessel{Name: "Ever Given", Position: geo.Point{-0.05, 0.02}})
	require.NoError(t, err)

	assert.Equal(t, ShippingLane, route.Kind)
	assert.Equal(t, "Harbour", route.Destination)
	assert.InDelta(t, 0, route.Geometry[0].Lon(), 1e-12)
	assert.InDelta(t, 0.02, route.Geometry[0].Lat(), 1e-12)
	assert.Equal(t, geo.Point{1, 0}, route.Geometry[len(route.Geometry)-1])
	assert.InDelta(t, geo.LineLength(route.Geometry), route.LengthKm, 1e-9)
	assert.InDelta(t, 1.02*geo.Haversine(geo.Point{0, 0}, geo.Point{0, 1}), route.Cost, 1)
	assert.Equal(t, before, base.AsString(), "vessels are routed on clones")
}

func TestRouteVesselAStar(t *testing.T) {
	config := testConfig()
	config.Navigator = "astar"
	vessel := Vessel{Name: "a", Position: geo.Point{0.5, 1.1}}

	astar, err := NewRouter(squareNetwork(t), nearB, config).RouteVessel(context.Background(), vessel)
	require.NoError(t, err)
	dijkstra, err := NewRouter(squareNetwork(t), nearB, testConfig()).RouteVessel(context.Background(), vessel)
	require.NoError(t, err)

	assert.InDelta(t, dijkstra.Cost, astar.Cost, 1e-9)
	assert.Equal(t, dijkstra.Geometry, astar.Geometry)
}

func TestRouteBridgedNetworkIsMixed(t *testing.T) {
	g := network.NewBuilder().Build([]orb.LineString{
		{{0, 0}, {1, 0}},
		{{2, 0}, {3, 0}},
	})
	bridges := network.NewRepairer().Repair(g)
	require.Len(t, bridges, 1)

	router := NewRouter(g, Destination{Name: "East", Position: geo.Point{3, 0.01}}, testConfig())
	route, err := router.RouteVessel(context.Background(), Vessel{Name: "west", Position: geo.Point{0, 0.01}})
	require.NoError(t, err)
	assert.Equal(t, Mixed, route.Kind)
	assert.Equal(t, geo.Point{0, 0}, route.Geometry[0])
	assert.Equal(t, geo.Point{3, 0}, route.Geometry[len(route.Geometry)-1])
}

func TestRouteAll(t *testing.T) {
	t.Run("keeps input order", func(t *testing.T) {
		config := testConfig()
		config.Workers = 4
		var progress atomic.Int32
		config.Progress = func() { progress.Add(1) }
		router := NewRouter(squareNetwork(t), nearB, config)

		vessels := make([]Vessel, 20)
		for i := range vessels {
			vessels[i] = Vessel{Name: fmt.Sprintf("Ship_%d", i), Position: geo.Point{0.05 * float64(i), 1.01}}
		}
		vessels[7].Position = geo.Point{math.NaN(), 0}

		report := router.RouteAll(context.Background(), vessels)
		require.Len(t, report.Routes, 19)
		require.Len(t, report.Skipped, 1)
		assert.Equal(t, Skip{Vessel: "Ship_7", Reason: "malformed_input", Err: report.Skipped[0].Err}, report.Skipped[0])
		assert.EqualValues(t, 20, progress.Load())

		j := 0
		for i, v := range vessels {
			if i == 7 {
				continue
			}
			assert.Equal(t, v.Name, report.Routes[j].Vessel.Name)
			j++
		}
		assert.Equal(t, "produced=19 skipped=1 malformed_input=1", report.String())
	})

	t.Run("empty network", func(t *testing.T) {
		router := NewRouter(graph.NewAdjacencyListGraph(), nearB, testConfig())
		_, err := router.DestinationNode()
		require.Error(t, err)

		report := router.RouteAll(context.Background(), []Vessel{
			{Name: "a", Position: geo.Point{0, 0}},
			{Name: "b", Position: geo.Point{1, 1}},
		})
		assert.Empty(t, report.Routes)
		require.Len(t, report.Skipped, 2)
		for _, s := range report.Skipped {
			assert.Equal(t, "no_network_coverage", s.Reason)
		}
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		report := NewRouter(squareNetwork(t), nearB, testConfig()).RouteAll(ctx, []Vessel{{Name: "a", Position: geo.Point{0.5, 0.5}}})
		require.Len(t, report.Skipped, 1)
		assert.Equal(t, "timeout", report.Skipped[0].Reason)
	})

	t.Run("disconnected", func(t *testing.T) {
		g := network.NewBuilder().Build([]orb.LineString{
			{{0, 0}, {0.5, 0}},
			{{5, 5}, {5.5, 5}},
		})
		report := NewRouter(g, Destination{Name: "d", Position: geo.Point{5.5, 5}}, testConfig()).
			RouteAll(context.Background(), []Vessel{{Name: "a", Position: geo.Point{0, 0.1}}})
		require.Len(t, report.Skipped, 1)
		assert.Equal(t, "no_path", report.Skipped[0].Reason)
	})

	t.Run("vessel at destination", func(t *testing.T) {
		report := NewRouter(squareNetwork(t), nearB, testConfig()).
			RouteAll(context.Background(), []Vessel{{Name: "a", Position: geo.Point{1.01, 0}}})
		require.Len(t, report.Skipped, 1)
		assert.Equal(t, "no_geometry", report.Skipped[0].Reason)
	})
}

func TestRouteAllIndexed(t *testing.T) {
	vessels := []Vessel{
		{Name: "a", Position: geo.Point{-0.05, 0.02}},
		{Name: "b", Position: geo.Point{0.4, 1.2}},
		{Name: "c", Position: geo.Point{0.7, 0.6}},
	}
	config := testConfig()
	config.UseIndex = true

	indexed := NewRouter(squareNetwork(t), nearB, config).RouteAll(context.Background(), vessels)
	plain := NewRouter(squareNetwork(t), nearB, testConfig()).RouteAll(context.Background(), vessels)

	require.Len(t, indexed.Routes, 3)
	for i := range plain.Routes {
		assert.Equal(t, plain.Routes[i].Geometry, indexed.Routes[i].Geometry)
	}
}

func TestAlternatives(t *testing.T) {
	// covers the interior of AB, so AD and BC stay clear
	zone, err := hazard.NewZone("inc-1", box(0.05, -0.1, 0.95, 0.1))
	require.NoError(t, err)
	zones := []*hazard.Zone{zone}

	base := squareNetwork(t)
	config := testConfig()
	var progress atomic.Int32
	config.Progress = func() { progress.Add(1) }
	router := NewRouter(base, nearB, config)
	direct := router.RouteAll(context.Background(), []Vessel{
		{Name: "Ever Given", Position: geo.Point{-0.05, 0.02}},
		{Name: "north", Position: geo.Point{1.1, 0.5}},
	})
	require.Len(t, direct.Routes, 2)
	require.True(t, hazard.RouteIntersects(direct.Routes[0].Geometry, zones))
	require.False(t, hazard.RouteIntersects(direct.Routes[1].Geometry, zones))
	before := base.AsString()
	progress.Store(0)

	report := router.Alternatives(context.Background(), direct.Routes, zones)

	assert.Equal(t, int32(2), progress.Load(), "unaffected vessels count as done")
	assert.Equal(t, 1, report.Unaffected)
	assert.Empty(t, report.Skipped)
	require.Len(t, report.Routes, 1)
	alt := report.Routes[0]
	assert.Equal(t, "Ever Given", alt.Vessel.Name)
	assert.Equal(t, Alternative, alt.Kind)
	assert.Equal(t, ReasonIncidentAvoidance, alt.Reason)
	assert.Equal(t, geo.Point{-0.05, 0.02}, alt.Geometry[0], "starts at the raw position")
	assert.Equal(t, geo.Point{1, 0}, alt.Geometry[len(alt.Geometry)-1])
	assert.Contains(t, alt.Geometry, geo.Point{0, 1})
	assert.Contains(t, alt.Geometry, geo.Point{1, 1})
	assert.False(t, hazard.RouteIntersects(alt.Geometry, zones))
	assert.Equal(t, before, base.AsString())
}

func TestAlternativesWithoutZones(t *testing.T) {
	router := NewRouter(squareNetwork(t), nearB, testConfig())
	direct := router.RouteAll(context.Background(), []Vessel{{Name: "a", Position: geo.Point{-0.05, 0.02}}})
	assert.Equal(t, Report{}, router.Alternatives(context.Background(), direct.Routes, nil))
}

func TestAlternativeLabel(t *testing.T) {
	assert.Equal(t, "ship_alt_Ever_Given", AlternativeLabel("Ever Given"))
	assert.Equal(t, "ship_alt_x", AlternativeLabel("x"))
}

func TestSearchBound(t *testing.T) {
	vessels := []Vessel{{Position: geo.Point{10, 50}}, {Position: geo.Point{-5, 40}}}
	bound := SearchBound(vessels, Destination{Position: geo.Point{9.99, 53.55}}, DefaultSearchPadDeg)
	assert.Equal(t, orb.Point{-20, 25}, bound.Min)
	assert.InDelta(t, 25, bound.Max.Lon(), 1e-9)
	assert.InDelta(t, 68.55, bound.Max.Lat(), 1e-9)
}

func TestWorkerPool(t *testing.T) {
	pool := NewWorkerPool[int, int](3, 10)
	pool.Start(func(job int) int { return job * job })
	go func() {
		for i := 1; i <= 10; i++ {
			pool.AddJob(i)
		}
		pool.Close()
		pool.Wait()
	}()

	sum := 0
	for r := range pool.CollectResults() {
		sum += r
	}
	assert.Equal(t, 385, sum)
}
