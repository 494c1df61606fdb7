package graph

import (
	"github.com/paulmach/orb"
)

// EdgeKind records why an edge exists.
type EdgeKind uint8

const (
	LaneEdge   EdgeKind = iota // consecutive vertices of a lane feature
	BridgeEdge                 // added to join two disconnected components
	SnapEdge                   // split of a lane edge at a projected point
	AttachEdge                 // links an external node to its projection
)

var edgeKindNames = [...]string{"lane", "bridge", "snap", "attach"}

func (k EdgeKind) String() string {
	if int(k) < len(edgeKindNames) {
		return edgeKindNames[k]
	}
	return "unknown"
}

func ParseEdgeKind(s string) (EdgeKind, bool) {
	for i, name := range edgeKindNames {
		if name == s {
			return EdgeKind(i), true
		}
	}
	return LaneEdge, false
}

// Synthetic reports whether the edge was not part of the lane input.
func (k EdgeKind) Synthetic() bool {
	return k == BridgeEdge || k == AttachEdge
}

// Edge is an undirected edge. Geometry runs from From to To and is shared
// between clones, so it must never be modified in place.
type Edge struct {
	From     NodeId
	To       NodeId
	Weight   float64
	Kind     EdgeKind
	Geometry orb.LineString
}

func (e Edge) Other(n NodeId) NodeId {
	if e.From == n {
		return e.To
	}
	return e.From
}

// Arc is one direction of an edge as seen from its tail node.
type Arc struct {
	To   NodeId
	Edge int
}

func (a Arc) Destination() NodeId {
	return a.To
}
