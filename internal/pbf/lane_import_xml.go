package pbf

import (
	"context"
	"os"

	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/lane"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

// XmlLaneImporter reads seamark lanes from an OSM XML file in one pass.
type XmlLaneImporter struct {
	filename string
	lanes    []*lane.Segment
	ways     []*osm.Way
	nodes    map[osm.NodeID]geo.Point
}

func NewXmlLaneImporter(filename string) *XmlLaneImporter {
	return &XmlLaneImporter{
		filename: filename,
		lanes:    make([]*lane.Segment, 0),
		nodes:    make(map[osm.NodeID]geo.Point),
	}
}

func (xi *XmlLaneImporter) Import() error {
	file, err := os.Open(xi.filename)
	if err != nil {
		return errors.Wrapf(err, "open %s", xi.filename)
	}
	defer file.Close()

	scanner := osmxml.New(context.Background(), file)
	defer scanner.Close()
	for scanner.Scan() {
		switch obj := scanner.Object().(type) {
		case *osm.Node:
			xi.nodes[obj.ID] = geo.MakePoint(obj.Lat, obj.Lon)
		case *osm.Way:
			if lane.Classify(obj.Tags.Map()) != lane.Unknown {
				xi.ways = append(xi.ways, obj)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", xi.filename)
	}

	for _, way := range xi.ways {
		segment := lane.NewSegment(int64(way.ID), way.Tags.Map())
		segment.Points = make([]geo.Point, 0, len(way.Nodes))
		for _, n := range way.Nodes {
			if p, ok := xi.nodes[n.ID]; ok {
				segment.Points = append(segment.Points, p)
			}
		}
		xi.lanes = append(xi.lanes, segment)
	}
	xi.ways = nil
	return nil
}

func (xi *XmlLaneImporter) Lanes() []*lane.Segment {
	return xi.lanes
}
