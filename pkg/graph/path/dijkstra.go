package path

import (
	"context"
	"math"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/domain"
	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/queue"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/slice"
)

// node keys are rounded, so straight-line estimates may exceed an edge
// weight by a fraction of a meter
const heuristicSlackKm = 0.001

// check the context every this many pq pops
const cancelCheckInterval = 256

type SearchKPIs struct {
	pqPops             int // store the amount of Pops which were performed on the priority queue for the computed search
	pqUpdates          int // store each update or push to the priority queue
	relaxationAttempts int // store the attempt for relaxed edges
	relaxedEdges       int // number of relaxed edges
	numSettledNodes    int // number of settled nodes
}

// Dijkstra computes shortest paths on non-negative edge weights. With the
// heuristic enabled it runs as A* using the great-circle distance to the
// destination. Implements the Navigator interface.
type Dijkstra struct {
	g                  graph.Graph
	items              []*DijkstraItem // indexed by node id, nil if never reached
	origin             graph.NodeId
	destination        graph.NodeId
	useHeuristic       bool
	maxNumSettledNodes int
	searchKPIs         SearchKPIs
}

func NewDijkstra(g graph.Graph) *Dijkstra {
	return &Dijkstra{g: g, origin: -1, destination: -1, maxNumSettledNodes: math.MaxInt}
}

func (d *Dijkstra) SetUseHeuristic(useHeuristic bool) {
	d.useHeuristic = useHeuristic
}

// SetMaxNumSettledNodes aborts searches which settle more nodes than given
func (d *Dijkstra) SetMaxNumSettledNodes(maxNumSettledNodes int) {
	if maxNumSettledNodes <= 0 {
		maxNumSettledNodes = math.MaxInt
	}
	d.maxNumSettledNodes = maxNumSettledNodes
}

func (d *Dijkstra) heuristic(n graph.NodeId) float64 {
	if !d.useHeuristic {
		return 0
	}
	h := geo.Haversine(d.g.GetNode(n).Point, d.g.GetNode(d.destination).Point) - heuristicSlackKm
	return math.Max(0, h)
}

// ComputeShortestPath returns the length of the shortest path from origin to
// destination. It fails with domain.ErrNodeNotFound for ids outside the
// graph and with domain.ErrNoPath if the destination is not reachable.
func (d *Dijkstra) ComputeShortestPath(ctx context.Context, origin, destination graph.NodeId) (float64, error) {
	d.origin, d.destination = origin, destination
	d.items = nil
	d.searchKPIs = SearchKPIs{}
	if origin < 0 || origin >= d.g.NodeCount() {
		return -1, domain.NewErrorf(domain.ErrNodeNotFound, "origin %d", origin)
	}
	if destination < 0 || destination >= d.g.NodeCount() {
		return -1, domain.NewErrorf(domain.ErrNodeNotFound, "destination %d", destination)
	}

	d.items = make([]*DijkstraItem, d.g.NodeCount())
	d.items[origin] = NewDijkstraItem(origin, 0, -1, d.heuristic(origin))
	pq := queue.NewMinHeap([]*DijkstraItem{d.items[origin]})

	for pq.Len() > 0 {
		if d.searchKPIs.pqPops%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return -1, err
			}
		}
		current := pq.Pop()
		current.settled = true
		d.searchKPIs.pqPops++
		d.searchKPIs.numSettledNodes++

		if current.nodeId == destination {
			return current.distance, nil
		}
		if d.searchKPIs.numSettledNodes >= d.maxNumSettledNodes {
			break
		}

		for _, arc := range d.g.GetArcsFrom(current.nodeId) {
			d.searchKPIs.relaxationAttempts++
			successor := arc.Destination()
			if d.items[successor] != nil && d.items[successor].settled {
				continue
			}
			newDistance := current.distance + d.g.GetEdge(arc.Edge).Weight

			if d.items[successor] == nil {
				d.items[successor] = NewDijkstraItem(successor, newDistance, current.nodeId, d.heuristic(successor))
				pq.Push(d.items[successor])
				d.searchKPIs.pqUpdates++
			} else if newDistance < d.items[successor].distance {
				d.items[successor].distance = newDistance
				d.items[successor].predecessor = current.nodeId
				pq.Update(d.items[successor])
				d.searchKPIs.pqUpdates++
			}
			d.searchKPIs.relaxedEdges++
		}
	}

	return -1, domain.NewErrorf(domain.ErrNoPath, "%v -> %v", d.g.GetNode(origin).ID, d.g.GetNode(destination).ID)
}

// GetPath returns the node ids of the last computed path, or an empty slice
func (d *Dijkstra) GetPath(origin, destination graph.NodeId) []graph.NodeId {
	path := make([]graph.NodeId, 0) // by default, a non-existing path is an empty slice
	if origin != d.origin || destination != d.destination || d.items == nil {
		return path
	}
	if item := d.items[destination]; item == nil || !item.settled {
		return path
	}
	for nodeId := destination; nodeId != -1; nodeId = d.items[nodeId].predecessor {
		path = append(path, nodeId)
	}
	slice.ReverseInPlace(path)
	return path
}

// GetSearchSpace returns every settled item of the last search
func (d *Dijkstra) GetSearchSpace() []*DijkstraItem {
	searchSpace := make([]*DijkstraItem, 0, d.searchKPIs.numSettledNodes)
	for _, item := range d.items {
		if item != nil && item.settled {
			searchSpace = append(searchSpace, item)
		}
	}
	return searchSpace
}

func (d *Dijkstra) GetPqPops() int             { return d.searchKPIs.pqPops }
func (d *Dijkstra) GetPqUpdates() int          { return d.searchKPIs.pqUpdates }
func (d *Dijkstra) GetEdgeRelaxations() int    { return d.searchKPIs.relaxedEdges }
func (d *Dijkstra) GetRelaxationAttempts() int { return d.searchKPIs.relaxationAttempts }
func (d *Dijkstra) GetGraph() graph.Graph      { return d.g }
