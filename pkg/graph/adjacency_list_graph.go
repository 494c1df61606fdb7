package graph

import (
	"fmt"
	"maps"
	"math"
	"slices"

	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/slice"
	"github.com/paulmach/orb"
)

// Implementation for dynamic graphs
type AdjacencyListGraph struct {
	Nodes     []Node         // The nodes of the graph
	Arcs      [][]Arc        // The Arcs of the graph. The first slice specifies to which node the arc belongs
	Edges     []Edge         // Every undirected edge once, referenced by the arcs
	index     map[NodeID]int // node identity to dense index
	precision int
	scale     float64
}

func NewAdjacencyListGraph(options ...Option) *AdjacencyListGraph {
	alg := &AdjacencyListGraph{
		Nodes: make([]Node, 0),
		Arcs:  make([][]Arc, 0),
		Edges: make([]Edge, 0),
		index: make(map[NodeID]int),
	}
	WithKeyPrecision(DefaultKeyPrecision)(alg)
	for _, option := range options {
		option(alg)
	}
	return alg
}

// Return the number of decimal degrees kept in node keys
func (alg *AdjacencyListGraph) Precision() int {
	return alg.precision
}

// Round a coordinate to a node key
func (alg *AdjacencyListGraph) KeyOf(p geo.Point) Key {
	return Key{
		Lon: int64(math.Round(p.Lon() * alg.scale)),
		Lat: int64(math.Round(p.Lat() * alg.scale)),
	}
}

// Return the coordinate of a node key
func (alg *AdjacencyListGraph) KeyPoint(k Key) geo.Point {
	return geo.MakePoint(float64(k.Lat)/alg.scale, float64(k.Lon)/alg.scale)
}

// Return the node for the given id
func (alg *AdjacencyListGraph) GetNode(id NodeId) *Node {
	if id < 0 || id >= alg.NodeCount() {
		panic(fmt.Sprintf("NodeId %d is not contained in the graph.", id))
	}
	return &alg.Nodes[id]
}

// Get the arcs for the given node
func (alg *AdjacencyListGraph) GetArcsFrom(id NodeId) []Arc {
	if id < 0 || id >= alg.NodeCount() {
		panic(fmt.Sprintf("NodeId %d is not contained in the graph.", id))
	}
	return alg.Arcs[id]
}

// Return the edge with the given index
func (alg *AdjacencyListGraph) GetEdge(e int) *Edge {
	return &alg.Edges[e]
}

// Return the dense index of a node identity
func (alg *AdjacencyListGraph) Lookup(id NodeID) (NodeId, bool) {
	n, ok := alg.index[id]
	return n, ok
}

// Return the number of total nodes
func (alg *AdjacencyListGraph) NodeCount() int {
	return len(alg.Nodes)
}

// Return the number of undirected edges
func (alg *AdjacencyListGraph) EdgeCount() int {
	return len(alg.Edges)
}

// Return the number of total arcs, two per edge
func (alg *AdjacencyListGraph) ArcCount() int {
	return 2 * len(alg.Edges)
}

// Return a human readable string of the graph
func (alg *AdjacencyListGraph) AsString() string {
	return GraphAsString(alg)
}

func (alg *AdjacencyListGraph) addNode(n Node) NodeId {
	id := len(alg.Nodes)
	alg.Nodes = append(alg.Nodes, n)
	alg.Arcs = append(alg.Arcs, make([]Arc, 0))
	alg.index[n.ID] = id
	return id
}

// Add the network node for a key. Returns the node and whether it was created.
func (alg *AdjacencyListGraph) AddNetworkNode(k Key) (NodeId, bool) {
	id := Network(k)
	if n, ok := alg.index[id]; ok {
		return n, false
	}
	return alg.addNode(Node{ID: id, Point: alg.KeyPoint(k)}), true
}

// Add an external node with its raw coordinate. An existing node with the
// same label is moved to the new coordinate.
func (alg *AdjacencyListGraph) AddExternalNode(label string, p geo.Point) NodeId {
	id := External(label)
	if n, ok := alg.index[id]; ok {
		alg.Nodes[n].Point = p
		return n
	}
	return alg.addNode(Node{ID: id, Point: p})
}

// Find the edge between two nodes in either direction
func (alg *AdjacencyListGraph) FindEdge(from, to NodeId) (int, bool) {
	arcs := alg.Arcs[from]
	if len(alg.Arcs[to]) < len(arcs) {
		arcs, from, to = alg.Arcs[to], to, from
	}
	for _, arc := range arcs {
		if arc.To == to {
			return arc.Edge, true
		}
	}
	return -1, false
}

func (alg *AdjacencyListGraph) HasEdge(from, to NodeId) bool {
	_, ok := alg.FindEdge(from, to)
	return ok
}

// Add an undirected edge. Self-loops and pairs that are already connected are
// rejected, so the first edge between two nodes wins.
func (alg *AdjacencyListGraph) AddEdge(from, to NodeId, weight float64, kind EdgeKind, geometry orb.LineString) bool {
	if from < 0 || to < 0 || from >= alg.NodeCount() || to >= alg.NodeCount() {
		panic(fmt.Sprintf("Edge out of range %v -> %v", from, to))
	}
	if from == to || alg.HasEdge(from, to) {
		return false
	}
	e := len(alg.Edges)
	alg.Edges = append(alg.Edges, Edge{From: from, To: to, Weight: weight, Kind: kind, Geometry: geometry})
	alg.Arcs[from] = append(alg.Arcs[from], Arc{To: to, Edge: e})
	alg.Arcs[to] = append(alg.Arcs[to], Arc{To: from, Edge: e})
	return true
}

// Set the weight of an edge, both directions at once
func (alg *AdjacencyListGraph) SetWeight(e int, weight float64) {
	alg.Edges[e].Weight = weight
}

// Return the geometry of the edge between from and to, oriented from -> to.
// The returned line must not be modified when it is the stored orientation.
func (alg *AdjacencyListGraph) EdgeGeometry(from, to NodeId) (orb.LineString, bool) {
	e, ok := alg.FindEdge(from, to)
	if !ok || len(alg.Edges[e].Geometry) == 0 {
		return nil, false
	}
	edge := alg.Edges[e]
	if edge.From == from {
		return edge.Geometry, true
	}
	reversed := slices.Clone(edge.Geometry)
	slice.ReverseInPlace(reversed)
	return reversed, true
}

// Clone returns a working copy. Nodes, adjacency and edges are copied, edge
// geometries are shared. Adjacency rows are clipped so that appending to a
// row of the copy reallocates instead of writing into the original.
func (alg *AdjacencyListGraph) Clone() *AdjacencyListGraph {
	arcs := make([][]Arc, len(alg.Arcs))
	for i, row := range alg.Arcs {
		arcs[i] = slices.Clip(row)
	}
	return &AdjacencyListGraph{
		Nodes:     slices.Clone(alg.Nodes),
		Arcs:      arcs,
		Edges:     slices.Clone(alg.Edges),
		index:     maps.Clone(alg.index),
		precision: alg.precision,
		scale:     alg.scale,
	}
}
