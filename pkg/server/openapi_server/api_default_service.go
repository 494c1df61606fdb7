package openapi_server

import (
	"context"
	"net/http"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/feature"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/routing"
	"github.com/twpayne/go-polyline"
)

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
// Include any external packages or services that will be required by this service.
type DefaultApiService struct {
	router     *routing.Router
	components int
	config     NavigatorConfig
	metrics    *Metrics
}

// NewDefaultApiService prepares a router on g with the destination
// attached. The graph must not be modified afterwards.
func NewDefaultApiService(g *graph.AdjacencyListGraph, destination routing.Destination, config NavigatorConfig, metrics *Metrics) DefaultApiServicer {
	routingConfig := routing.DefaultConfig()
	if config.Navigator != "" {
		routingConfig.Navigator = config.Navigator
	}
	if config.Workers > 0 {
		routingConfig.Workers = config.Workers
	}
	if config.VesselTimeout > 0 {
		routingConfig.VesselTimeout = config.VesselTimeout
	}
	if config.PenaltyFactor > 0 {
		routingConfig.PenaltyFactor = config.PenaltyFactor
	}
	routingConfig.UseIndex = config.UseIndex

	return &DefaultApiService{
		router:     routing.NewRouter(g, destination, routingConfig),
		components: len(graph.ConnectedComponents(g)),
		config:     config,
		metrics:    metrics,
	}
}

func vessels(req []Vessel) []routing.Vessel {
	vessels := make([]routing.Vessel, len(req))
	for i, v := range req {
		vessels[i] = routing.Vessel{Name: v.Name, Position: v.Position.Geo()}
		if v.Origin != "" {
			vessels[i].Origin = &req[i].Origin
		}
		if vessels[i].Name == "" {
			vessels[i].Name = feature.DefaultVesselName(i)
		}
	}
	return vessels
}

func newRoutesResponse(reports ...routing.Report) RoutesResponse {
	resp := RoutesResponse{Routes: make([]RouteResult, 0), Skipped: make([]SkippedVessel, 0)}
	for _, report := range reports {
		for _, r := range report.Routes {
			coords := make([][]float64, len(r.Geometry))
			waypoints := make([]Point, len(r.Geometry))
			for i, p := range r.Geometry {
				coords[i] = []float64{p.Lat(), p.Lon()}
				waypoints[i] = fromGeo(p)
			}
			var origin string
			if r.Vessel.Origin != nil {
				origin = *r.Vessel.Origin
			}
			resp.Routes = append(resp.Routes, RouteResult{
				VesselName:  r.Vessel.Name,
				Origin:      origin,
				Destination: r.Destination,
				RouteType:   string(r.Kind),
				Reason:      r.Reason,
				LengthKm:    r.LengthKm,
				Polyline:    string(polyline.EncodeCoords(coords)),
				Waypoints:   waypoints,
			})
		}
		for _, s := range report.Skipped {
			resp.Skipped = append(resp.Skipped, SkippedVessel{VesselName: s.Vessel, Reason: s.Reason, Error: s.Err.Error()})
		}
		resp.Unaffected += report.Unaffected
	}
	return resp
}

// ComputeRoutes - Compute the direct route of every vessel
func (s *DefaultApiService) ComputeRoutes(ctx context.Context, req RoutesRequest) (ImplResponse, error) {
	report := s.router.RouteAll(ctx, vessels(req.Vessels))
	resp := newRoutesResponse(report)
	s.metrics.observe(resp)
	return Response(http.StatusOK, resp), nil
}

// ComputeAlternatives - Compute hazard avoiding routes. Vessels without a
// direct route are reported as skipped.
func (s *DefaultApiService) ComputeAlternatives(ctx context.Context, req AlternativesRequest) (ImplResponse, error) {
	zones, dropped := feature.Zones(req.Hazards)

	direct := s.router.RouteAll(ctx, vessels(req.Vessels))
	alternatives := s.router.Alternatives(ctx, direct.Routes, zones)
	alternatives.Skipped = append(direct.Skipped, alternatives.Skipped...)

	resp := newRoutesResponse(alternatives)
	for _, err := range dropped {
		resp.Dropped = append(resp.Dropped, err.Error())
	}
	s.metrics.observe(resp)
	return Response(http.StatusOK, resp), nil
}

func (s *DefaultApiService) GetNetwork(ctx context.Context) (ImplResponse, error) {
	g := s.router.Graph()
	dest := s.router.Destination()
	info := NetworkInfo{
		Nodes:           g.NodeCount(),
		Edges:           g.EdgeCount(),
		Components:      s.components,
		Destination:     fromGeo(dest.Position),
		DestinationName: dest.Name,
	}
	if _, err := s.router.DestinationNode(); err != nil {
		info.Error = err.Error()
	}
	return Response(http.StatusOK, info), nil
}

func (s *DefaultApiService) GetNearest(ctx context.Context, p Point) (ImplResponse, error) {
	g := s.router.Graph()
	projection, err := s.router.Snapper().NearestPointOnNetwork(g, p.Geo())
	if err != nil {
		return ImplResponse{}, err
	}
	return Response(http.StatusOK, NearestResult{
		Point:      fromGeo(projection.Point),
		DistanceKm: projection.Distance,
		Edge:       projection.Edge,
		EdgeKind:   g.GetEdge(projection.Edge).Kind.String(),
	}), nil
}
