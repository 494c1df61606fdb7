// SPDX-License-Identifier: MIT

package openapi_server

import (
	"context"
	"net/http"
	"time"
)

// DefaultApiRouter defines the required methods for binding the api requests to a responses for the DefaultApi
// The DefaultApiRouter implementation should parse necessary information from the http request,
// pass the data to a DefaultApiServicer to perform the required actions, then write the service results to the http response.
type DefaultApiRouter interface {
	ComputeRoutes(http.ResponseWriter, *http.Request)
	ComputeAlternatives(http.ResponseWriter, *http.Request)
	GetNetwork(http.ResponseWriter, *http.Request)
	GetNearest(http.ResponseWriter, *http.Request)
}

// DefaultApiServicer defines the api actions for the DefaultApi service
// This interface intended to stay up to date with the openapi yaml used to generate it,
// while the service implementation can ignored with the .openapi-generator-ignore file
// and updated with the logic required for the API.
type DefaultApiServicer interface {
	ComputeRoutes(context.Context, RoutesRequest) (ImplResponse, error)
	ComputeAlternatives(context.Context, AlternativesRequest) (ImplResponse, error)
	GetNetwork(context.Context) (ImplResponse, error)
	GetNearest(context.Context, Point) (ImplResponse, error)
}

// NavigatorConfig defines how the service computes routes
type NavigatorConfig struct {
	Navigator     string
	Workers       int
	VesselTimeout time.Duration
	UseIndex      bool
	PenaltyFactor float64
}
