package routing

import (
	"fmt"
	"sort"
	"strings"

	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/paulmach/orb"
)

type Kind string

const (
	ShippingLane Kind = "shipping_lane" // lane, snap and split edges only
	Mixed        Kind = "mixed"         // uses a bridge or an off-network attachment
	Alternative  Kind = "alternative"   // recomputed around hazard zones
)

const ReasonIncidentAvoidance = "incident_avoidance"

// DefaultSearchPadDeg pads the box around vessels and destination that
// limits which lanes are loaded.
const DefaultSearchPadDeg = 15.0

type Vessel struct {
	Name     string
	Origin   *string // nil when the input names no origin
	Position geo.Point
}

type Destination struct {
	Name     string
	Position geo.Point
}

type Route struct {
	Vessel      Vessel
	Destination string
	Kind        Kind
	Reason      string
	Geometry    orb.LineString
	LengthKm    float64 // great-circle length of the geometry
	Cost        float64 // path weight, penalised for alternatives
}

// Skip records a vessel for which no route was produced.
type Skip struct {
	Vessel string
	Reason string
	Err    error
}

type Report struct {
	Routes     []Route
	Skipped    []Skip
	Unaffected int // vessels whose direct route avoids every hazard zone
}

func (r Report) Produced() int {
	return len(r.Routes)
}

func (r Report) String() string {
	reasons := make(map[string]int)
	for _, s := range r.Skipped {
		reasons[s.Reason]++
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("produced=%d skipped=%d", len(r.Routes), len(r.Skipped)))
	keys := make([]string, 0, len(reasons))
	for reason := range reasons {
		keys = append(keys, reason)
	}
	sort.Strings(keys)
	for _, reason := range keys {
		sb.WriteString(fmt.Sprintf(" %s=%d", reason, reasons[reason]))
	}
	if r.Unaffected > 0 {
		sb.WriteString(fmt.Sprintf(" unaffected=%d", r.Unaffected))
	}
	return sb.String()
}

// AlternativeLabel is the external node label of a vessel in the
// alternative-route workflow.
func AlternativeLabel(vesselName string) string {
	return "ship_alt_" + strings.ReplaceAll(vesselName, " ", "_")
}

// SearchBound returns the bounding box of all vessel positions and the
// destination, padded by padDeg on every side.
func SearchBound(vessels []Vessel, destination Destination, padDeg float64) orb.Bound {
	bound := orb.Bound{Min: destination.Position, Max: destination.Position}
	for _, v := range vessels {
		bound = bound.Extend(v.Position)
	}
	return orb.Bound{
		Min: orb.Point{bound.Min.Lon() - padDeg, bound.Min.Lat() - padDeg},
		Max: orb.Point{bound.Max.Lon() + padDeg, bound.Max.Lat() + padDeg},
	}
}
