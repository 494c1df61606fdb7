// SPDX-License-Identifier: MIT

package openapi_server

import (
	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
)

type Point struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

func (p Point) Geo() geo.Point {
	return geo.MakePoint(p.Lat, p.Lon)
}

func fromGeo(p geo.Point) Point {
	return Point{Lat: p.Lat(), Lon: p.Lon()}
}
