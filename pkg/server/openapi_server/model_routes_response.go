// SPDX-License-Identifier: MIT

package openapi_server

type RouteResult struct {
	VesselName  string  `json:"vessel_name"`
	Origin      string  `json:"origin,omitempty"`
	Destination string  `json:"destination"`
	RouteType   string  `json:"route_type"`
	Reason      string  `json:"reason,omitempty"`
	LengthKm    float64 `json:"length_km"`
	Polyline    string  `json:"polyline"`
	Waypoints   []Point `json:"waypoints"`
}

type SkippedVessel struct {
	VesselName string `json:"vessel_name"`
	Reason     string `json:"reason"`
	Error      string `json:"error"`
}

type RoutesResponse struct {
	Routes     []RouteResult   `json:"routes"`
	Skipped    []SkippedVessel `json:"skipped"`
	Unaffected int             `json:"unaffected,omitempty"`
	Dropped    []string        `json:"dropped_hazards,omitempty"`
}

type NetworkInfo struct {
	Nodes           int    `json:"nodes"`
	Edges           int    `json:"edges"`
	Components      int    `json:"components"`
	Destination     Point  `json:"destination"`
	DestinationName string `json:"destination_name"`
	Error           string `json:"error,omitempty"`
}

type NearestResult struct {
	Point      Point   `json:"point"`
	DistanceKm float64 `json:"distance_km"`
	Edge       int     `json:"edge"`
	EdgeKind   string  `json:"edge_kind"`
}
