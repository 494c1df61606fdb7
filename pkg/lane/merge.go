package lane

import (
	"slices"

	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
)

// Merger joins segments of the same type and name that share an endpoint.
type Merger struct {
	lanes           []*Segment
	mergeCount      int
	unmergableCount int
}

func NewMerger(lanes []*Segment) *Merger {
	return &Merger{
		lanes: lanes,
	}
}

func (m *Merger) Merge() {
	endpoints := make(map[geo.Point][]*Segment)
	for _, seg := range m.lanes {
		if len(seg.Points) < 2 {
			m.unmergableCount++
			continue
		}
		start, end := seg.Points[0], seg.Points[len(seg.Points)-1]
		endpoints[start] = append(endpoints[start], seg)
		if end != start {
			endpoints[end] = append(endpoints[end], seg)
		}
	}

	merged := make(map[int64]bool)
	lanes := make([]*Segment, 0, len(m.lanes))
	for _, seg := range m.lanes {
		if merged[seg.ID] || len(seg.Points) < 2 {
			continue
		}
		merged[seg.ID] = true

		current := seg
		for {
			next, ok := m.successor(current, endpoints, merged)
			if !ok {
				break
			}
			current = mergeTwoSegments(current, next)
			merged[next.ID] = true
			m.mergeCount++
		}
		lanes = append(lanes, current)
	}
	m.lanes = lanes
}

// successor returns an unmerged segment touching the end of current,
// oriented to continue it.
func (m *Merger) successor(current *Segment, endpoints map[geo.Point][]*Segment, merged map[int64]bool) (*Segment, bool) {
	end := current.Points[len(current.Points)-1]
	if end == current.Points[0] {
		return nil, false // closed ring
	}
	for _, next := range endpoints[end] {
		if merged[next.ID] || !canMerge(current, next) {
			continue
		}
		if next.Points[0] == end {
			return next, true
		}
		reversed := *next
		reversed.Points = slices.Clone(next.Points)
		slices.Reverse(reversed.Points)
		return &reversed, true
	}
	return nil, false
}

func canMerge(s1, s2 *Segment) bool {
	return s1.Type == s2.Type && s1.Name == s2.Name
}

func mergeTwoSegments(s1, s2 *Segment) *Segment {
	merged := &Segment{
		ID:   s1.ID,
		Type: s1.Type,
		Name: s1.Name,
		Tags: s1.Tags,
	}
	merged.Points = make([]geo.Point, 0, len(s1.Points)+len(s2.Points)-1)
	merged.Points = append(merged.Points, s1.Points...)
	merged.Points = append(merged.Points, s2.Points[1:]...) // s2 starts where s1 ends
	return merged
}

func (m *Merger) Lanes() []*Segment {
	return m.lanes
}

func (m *Merger) MergeCount() int {
	return m.mergeCount
}

func (m *Merger) UnmergableLaneCount() int {
	return m.unmergableCount
}
