package path

import (
	"fmt"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
)

// implements queue.Priorizable
type DijkstraItem struct {
	nodeId      graph.NodeId // node id of this item in the graph
	distance    float64      // distance to origin of this node
	heuristic   float64      // estimated distance from node to destination
	predecessor graph.NodeId // node id of the predecessor
	index       int          // internal usage
	settled     bool         // the distance is final
}

func NewDijkstraItem(nodeId graph.NodeId, distance float64, predecessor graph.NodeId, heuristic float64) *DijkstraItem {
	return &DijkstraItem{nodeId: nodeId, distance: distance, predecessor: predecessor, index: -1, heuristic: heuristic}
}

func (item *DijkstraItem) NodeId() graph.NodeId      { return item.nodeId }
func (item *DijkstraItem) Distance() float64         { return item.distance }
func (item *DijkstraItem) Predecessor() graph.NodeId { return item.predecessor }
func (item *DijkstraItem) Priority() float64         { return item.distance + item.heuristic }
func (item *DijkstraItem) Key() int                  { return item.nodeId }
func (item *DijkstraItem) Index() int                { return item.index }
func (item *DijkstraItem) SetIndex(index int)        { item.index = index }
func (item *DijkstraItem) String() string {
	return fmt.Sprintf("%v: %v, %v\n", item.index, item.nodeId, item.Priority())
}
