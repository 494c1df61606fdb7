// SPDX-License-Identifier: MIT

package openapi_server

import (
	"github.com/paulmach/orb/geojson"
)

type Vessel struct {
	Name     string `json:"vessel_name,omitempty" validate:"max=128"`
	Origin   string `json:"origin,omitempty"`
	Position Point  `json:"position"`
}

type RoutesRequest struct {
	Vessels []Vessel `json:"vessels" validate:"required,min=1,max=10000,dive"`
}

// AlternativesRequest carries hazard zones as a GeoJSON feature collection of
// polygons.
type AlternativesRequest struct {
	Vessels []Vessel                   `json:"vessels" validate:"required,min=1,max=10000,dive"`
	Hazards *geojson.FeatureCollection `json:"hazards" validate:"required"`
}
