package network

import (
	"github.com/guohuasdesign/shipping-lane-routing/pkg/domain"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/paulmach/orb"
)

// ExpandPath concatenates the edge geometries along path into one line.
// The shared vertex between consecutive edges appears once. Pairs without
// stored geometry are joined by a straight segment.
func ExpandPath(g graph.Graph, path []graph.NodeId) (orb.LineString, error) {
	if len(path) < 2 {
		return nil, domain.NewErrorf(domain.ErrNoGeometry, "path with %d nodes", len(path))
	}

	line := make(orb.LineString, 0, len(path))
	for i := 1; i < len(path); i++ {
		u, v := path[i-1], path[i]
		geometry, ok := g.EdgeGeometry(u, v)
		if !ok || len(geometry) < 2 {
			geometry = orb.LineString{g.GetNode(u).Point, g.GetNode(v).Point}
		}
		if i > 1 {
			geometry = geometry[1:]
		}
		line = append(line, geometry...)
	}

	if len(line) < 2 {
		return nil, domain.NewErrorf(domain.ErrNoGeometry, "path with %d coordinates", len(line))
	}
	return line, nil
}

// UsesSynthetic reports whether path traverses a bridge or attach edge or
// visits an external node.
func UsesSynthetic(g graph.Graph, path []graph.NodeId) bool {
	for i, n := range path {
		if g.GetNode(n).ID.Kind == graph.ExternalNode {
			return true
		}
		if i == 0 {
			continue
		}
		for _, arc := range g.GetArcsFrom(path[i-1]) {
			if arc.To == n && g.GetEdge(arc.Edge).Kind.Synthetic() {
				return true
			}
		}
	}
	return false
}
