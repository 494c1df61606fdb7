package graph

import "github.com/guohuasdesign/shipping-lane-routing/pkg/slice"

// ConnectedComponents returns the node sets of all connected components in
// discovery order, scanning start nodes by ascending index.
func ConnectedComponents(g Graph) [][]NodeId {
	visited := slice.MakeFixedSizeSlice(g.NodeCount())
	seen := visited.Get()
	components := make([][]NodeId, 0)

	for start := 0; start < g.NodeCount(); start++ {
		if seen[start] {
			continue
		}
		component := []NodeId{start}
		visited.Add(start)
		for i := 0; i < len(component); i++ {
			for _, arc := range g.GetArcsFrom(component[i]) {
				if !seen[arc.To] {
					visited.Add(arc.To)
					component = append(component, arc.To)
				}
			}
		}
		components = append(components, component)
	}
	return components
}
