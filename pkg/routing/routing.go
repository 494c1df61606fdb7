package routing

import (
	"context"
	"runtime"
	"time"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/domain"
	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph/path"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/hazard"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/network"
	"github.com/pkg/errors"
)

type Config struct {
	Workers       int           // concurrent vessel computations
	VesselTimeout time.Duration // upper bound per vessel, 0 disables it
	Navigator     string        // see path.Navigators
	UseIndex      bool          // R-tree accelerated snapping
	PenaltyFactor float64       // weight multiplier for hazard edges
	Progress      func()        // called once per vessel, from any goroutine
}

func DefaultConfig() Config {
	return Config{
		Workers:       runtime.NumCPU(),
		VesselTimeout: 30 * time.Second,
		Navigator:     "dijkstra",
		PenaltyFactor: hazard.DefaultPenaltyFactor,
	}
}

// Router computes routes from vessels to one destination. The base graph is
// only modified once, when the destination is attached in NewRouter. Every
// vessel is routed on its own clone, so calls may run concurrently.
type Router struct {
	base        *graph.AdjacencyListGraph
	destination Destination
	destNode    graph.NodeId
	destErr     error
	snapper     *network.Snapper
	config      Config
}

// NewRouter attaches the destination to g. If that fails, the router stays
// usable and skips every vessel with the attachment error.
func NewRouter(g *graph.AdjacencyListGraph, destination Destination, config Config) *Router {
	if config.Navigator == "" {
		config.Navigator = "dijkstra"
	}
	if config.PenaltyFactor == 0 {
		config.PenaltyFactor = hazard.DefaultPenaltyFactor
	}
	r := &Router{base: g, destination: destination, destNode: -1, config: config, snapper: network.NewSnapper()}

	r.destNode, _, r.destErr = r.snapper.SnapToNetwork(g, destination.Position)
	if r.destErr != nil {
		r.destErr = errors.Wrapf(r.destErr, "attach destination %s", destination.Name)
	}
	if config.UseIndex {
		r.snapper = network.NewSnapper(network.WithEdgeIndex(network.NewEdgeIndex(g)))
	}
	return r
}

func (r *Router) Graph() graph.Graph {
	return r.base
}

func (r *Router) Destination() Destination {
	return r.destination
}

// DestinationNode returns the node the destination was snapped to.
func (r *Router) DestinationNode() (graph.NodeId, error) {
	return r.destNode, r.destErr
}

func (r *Router) Snapper() *network.Snapper {
	return r.snapper
}

// RouteVessel computes the direct route of v on a clone of the base graph.
func (r *Router) RouteVessel(ctx context.Context, v Vessel) (Route, error) {
	if r.destErr != nil {
		return Route{}, r.destErr
	}
	if !geo.Valid(v.Position) {
		return Route{}, domain.NewErrorf(domain.ErrMalformedInput, "vessel %s: invalid position %v", v.Name, v.Position)
	}

	work := r.base.Clone()
	origin, _, err := r.snapper.SnapToNetwork(work, v.Position)
	if err != nil {
		return Route{}, errors.Wrapf(err, "snap vessel %s", v.Name)
	}
	route, err := r.route(ctx, work, origin, v)
	if err != nil {
		return Route{}, err
	}
	return route, nil
}

// route runs the navigator from origin to the destination on work and turns
// the path into a route.
func (r *Router) route(ctx context.Context, work *graph.AdjacencyListGraph, origin graph.NodeId, v Vessel) (Route, error) {
	navigator, err := path.NewNavigator(r.config.Navigator, work)
	if err != nil {
		return Route{}, err
	}
	cost, err := navigator.ComputeShortestPath(ctx, origin, r.destNode)
	if err != nil {
		return Route{}, errors.Wrapf(err, "route vessel %s", v.Name)
	}
	nodes := navigator.GetPath(origin, r.destNode)
	line, err := network.ExpandPath(work, nodes)
	if err != nil {
		return Route{}, errors.Wrapf(err, "expand route of vessel %s", v.Name)
	}

	kind := ShippingLane
	if network.UsesSynthetic(work, nodes) {
		kind = Mixed
	}
	return Route{
		Vessel:      v,
		Destination: r.destination.Name,
		Kind:        kind,
		Geometry:    line,
		LengthKm:    geo.LineLength(line),
		Cost:        cost,
	}, nil
}

// RouteAll routes every vessel. Vessels without a route are listed in the
// report, the batch itself never fails.
func (r *Router) RouteAll(ctx context.Context, vessels []Vessel) Report {
	return r.run(ctx, len(vessels), func(ctx context.Context, i int) (Route, error) {
		return r.RouteVessel(ctx, vessels[i])
	}, func(i int) string {
		return vessels[i].Name
	})
}

// Alternatives recomputes the routes that cross a hazard zone on a penalised
// copy of the base graph. Each affected vessel is attached at its position
// as an external node. Without zones the report is empty.
func (r *Router) Alternatives(ctx context.Context, direct []Route, zones []*hazard.Zone) Report {
	if len(zones) == 0 {
		return Report{}
	}
	if r.destErr != nil {
		report := Report{}
		for _, route := range direct {
			report.Skipped = append(report.Skipped, Skip{Vessel: route.Vessel.Name, Reason: domain.Reason(r.destErr), Err: r.destErr})
			r.progress()
		}
		return report
	}

	affected := make([]Route, 0, len(direct))
	for _, route := range direct {
		if hazard.RouteIntersects(route.Geometry, zones) {
			affected = append(affected, route)
		} else {
			r.progress()
		}
	}
	if len(affected) == 0 {
		return Report{Unaffected: len(direct)}
	}

	penalized, _ := hazard.NewPenalizer(zones, hazard.WithFactor(r.config.PenaltyFactor)).Apply(r.base)
	report := r.run(ctx, len(affected), func(ctx context.Context, i int) (Route, error) {
		return r.alternative(ctx, penalized, affected[i].Vessel)
	}, func(i int) string {
		return affected[i].Vessel.Name
	})
	report.Unaffected = len(direct) - len(affected)
	return report
}

func (r *Router) alternative(ctx context.Context, penalized *graph.AdjacencyListGraph, v Vessel) (Route, error) {
	if !geo.Valid(v.Position) {
		return Route{}, domain.NewErrorf(domain.ErrMalformedInput, "vessel %s: invalid position %v", v.Name, v.Position)
	}
	work := penalized.Clone()
	_, origin, err := r.snapper.AddOffNetworkPoint(work, v.Position, AlternativeLabel(v.Name))
	if err != nil {
		return Route{}, errors.Wrapf(err, "attach vessel %s", v.Name)
	}
	route, err := r.route(ctx, work, origin, v)
	if err != nil {
		return Route{}, err
	}
	route.Kind = Alternative
	route.Reason = ReasonIncidentAvoidance
	return route, nil
}

func (r *Router) progress() {
	if r.config.Progress != nil {
		r.config.Progress()
	}
}

type result struct {
	index int
	route Route
	err   error
}

func (r *Router) run(ctx context.Context, n int, job func(ctx context.Context, i int) (Route, error), name func(i int) string) Report {
	pool := NewWorkerPool[int, result](r.config.Workers, n)
	pool.Start(func(i int) result {
		vesselCtx, cancel := ctx, context.CancelFunc(func() {})
		if r.config.VesselTimeout > 0 {
			vesselCtx, cancel = context.WithTimeout(ctx, r.config.VesselTimeout)
		}
		defer cancel()

		res := result{index: i}
		if err := vesselCtx.Err(); err != nil {
			res.err = err
		} else {
			res.route, res.err = job(vesselCtx, i)
		}
		r.progress()
		return res
	})
	go func() {
		for i := 0; i < n; i++ {
			pool.AddJob(i)
		}
		pool.Close()
		pool.Wait()
	}()

	results := make([]result, n)
	for res := range pool.CollectResults() {
		results[res.index] = res
	}

	report := Report{Routes: make([]Route, 0, n)}
	for i, res := range results {
		if res.err != nil {
			report.Skipped = append(report.Skipped, Skip{Vessel: name(i), Reason: domain.Reason(res.err), Err: res.err})
			continue
		}
		report.Routes = append(report.Routes, res.route)
	}
	return report
}
