package graph

import (
	"fmt"
	"math"

	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/paulmach/orb"
)

// NodeId is the dense index of a node inside one graph value.
type NodeId = int

// DefaultKeyPrecision is the number of decimal degrees kept in a node key.
// Rounding is lossy: lane vertices closer than about 0.11 m at this
// precision collapse into a single node.
const DefaultKeyPrecision = 6

type NodeKind uint8

const (
	NetworkNode  NodeKind = iota // identified by a rounded coordinate key
	ExternalNode                 // identified by a label, never merged with network nodes
)

func (k NodeKind) String() string {
	if k == ExternalNode {
		return "external"
	}
	return "network"
}

// Key is a coordinate rounded to the key precision of its graph, held as
// scaled integers so that it can be compared exactly.
type Key struct {
	Lon int64
	Lat int64
}

// NodeID is the tagged identity of a node.
type NodeID struct {
	Kind  NodeKind
	Key   Key
	Label string
}

func Network(k Key) NodeID {
	return NodeID{Kind: NetworkNode, Key: k}
}

func External(label string) NodeID {
	return NodeID{Kind: ExternalNode, Label: label}
}

func (id NodeID) String() string {
	if id.Kind == ExternalNode {
		return id.Label
	}
	return fmt.Sprintf("(%d,%d)", id.Key.Lon, id.Key.Lat)
}

// Node is a graph node. Network nodes sit on their key coordinate, external
// nodes keep the raw coordinate they were attached with.
type Node struct {
	ID    NodeID
	Point geo.Point
}

func (n *Node) Lat() float64 { return n.Point.Lat() }
func (n *Node) Lon() float64 { return n.Point.Lon() }

type Graph interface {
	GetNode(id NodeId) *Node
	GetArcsFrom(id NodeId) []Arc
	GetEdge(e int) *Edge
	Lookup(id NodeID) (NodeId, bool)
	EdgeGeometry(from, to NodeId) (orb.LineString, bool)
	NodeCount() int
	EdgeCount() int
	ArcCount() int
	AsString() string
}

type DynamicGraph interface {
	Graph
	KeyOf(p geo.Point) Key
	KeyPoint(k Key) geo.Point
	AddNetworkNode(k Key) (NodeId, bool)
	AddExternalNode(label string, p geo.Point) NodeId
	AddEdge(from, to NodeId, weight float64, kind EdgeKind, geometry orb.LineString) bool
	SetWeight(e int, weight float64)
	Clone() *AdjacencyListGraph
}

type Option func(*AdjacencyListGraph)

// WithKeyPrecision sets the number of decimal degrees kept in node keys.
func WithKeyPrecision(precision int) Option {
	return func(alg *AdjacencyListGraph) {
		alg.precision = precision
		alg.scale = math.Pow10(precision)
	}
}
