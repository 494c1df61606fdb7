package pbf

import (
	"github.com/guohuasdesign/shipping-lane-routing/pkg/feature"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/lane"
)

// ExportLanes writes the segments as a GeoJSON feature collection.
func ExportLanes(lanes []*lane.Segment, filename string) error {
	return feature.WriteCollectionFile(filename, feature.Lanes(lanes))
}
