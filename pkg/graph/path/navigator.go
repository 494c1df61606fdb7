package path

import (
	"context"
	"fmt"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
)

type Navigator interface {
	ComputeShortestPath(ctx context.Context, origin, destination int) (float64, error) // Compute the shortest path from the origin to the destination
	GetPath(origin, destination int) []int                                             // Get the path of a previous computation. This contains the nodeIds which lie on the path from source to destination
	GetSearchSpace() []*DijkstraItem                                                   // Returns the search space of a previous computation. This contains all items which were settled.
	GetPqPops() int                                                                    // Returns the amount of priority queue/heap pops which were performed during the search
	GetPqUpdates() int                                                                 // Get the number of pq updates
	GetEdgeRelaxations() int                                                           // Get the number of relaxed edges
	GetRelaxationAttempts() int                                                        // Get the number of attempted edge relaxations (some may early terminated)
	GetGraph() graph.Graph                                                             // Get the used graph
}

var Navigators = []string{"dijkstra", "astar"}

// NewNavigator returns the navigator registered under name.
func NewNavigator(name string, g graph.Graph) (Navigator, error) {
	switch name {
	case "dijkstra":
		return NewDijkstra(g), nil
	case "astar":
		d := NewDijkstra(g)
		d.SetUseHeuristic(true)
		return d, nil
	}
	return nil, fmt.Errorf("unknown navigator %q, use one of %v", name, Navigators)
}
