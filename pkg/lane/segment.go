package lane

import (
	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/paulmach/orb"
)

type LaneType int

const (
	Unknown LaneType = iota
	SeparationLane
	RecommendedTrack
	NavigationLine
	Fairway
	FerryRoute
)

func (t LaneType) String() string {
	return []string{"unknown", "separation_lane", "recommended_track", "navigation_line", "fairway", "ferry_route"}[t]
}

// Classify derives the lane type of an OSM way from its seamark and route tags.
func Classify(tags map[string]string) LaneType {
	switch tags["seamark:type"] {
	case "separation_lane", "separation_line":
		return SeparationLane
	case "recommended_track":
		return RecommendedTrack
	case "navigation_line":
		return NavigationLine
	case "fairway":
		return Fairway
	}
	if tags["route"] == "ferry" {
		return FerryRoute
	}
	return Unknown
}

type Segment struct {
	ID     int64
	Type   LaneType
	Name   string
	Points []geo.Point
	Tags   map[string]string
}

func NewSegment(id int64, tags map[string]string) *Segment {
	name := tags["seamark:name"]
	if name == "" {
		name = tags["name"]
	}
	return &Segment{ID: id, Type: Classify(tags), Name: name, Tags: tags}
}

func (s *Segment) LineString() orb.LineString {
	return orb.LineString(s.Points)
}
