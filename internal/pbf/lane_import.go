package pbf

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/lane"
	"github.com/pkg/errors"
	"github.com/qedus/osmpbf"
)

type Importer interface {
	Import() error
	Lanes() []*lane.Segment
}

// NewImporter picks the reader from the file extension: .osm and .xml are
// read as OSM XML, everything else as PBF.
func NewImporter(filename string) Importer {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".osm", ".xml":
		return NewXmlLaneImporter(filename)
	}
	return NewLaneImporter(filename)
}

// LaneImporter reads seamark lanes from an .osm.pbf file in two passes: ways
// first, then the coordinates of the nodes they reference.
type LaneImporter struct {
	filename string
	lanes    []*lane.Segment
	nodeIDs  [][]int64
	needed   map[int64]struct{}
	nodes    map[int64]geo.Point
}

func NewLaneImporter(filename string) *LaneImporter {
	return &LaneImporter{
		filename: filename,
		lanes:    make([]*lane.Segment, 0),
		needed:   make(map[int64]struct{}),
		nodes:    make(map[int64]geo.Point),
	}
}

func (li *LaneImporter) decode(handle func(v interface{})) error {
	file, err := os.Open(li.filename)
	if err != nil {
		return errors.Wrapf(err, "open %s", li.filename)
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return errors.Wrap(err, "start pbf decoder")
	}
	for {
		v, err := decoder.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "decode %s", li.filename)
		}
		handle(v)
	}
}

func (li *LaneImporter) Import() error {
	err := li.decode(func(v interface{}) {
		if way, ok := v.(*osmpbf.Way); ok {
			li.addWay(way.ID, way.Tags, way.NodeIDs)
		}
	})
	if err != nil {
		return err
	}
	if len(li.lanes) == 0 {
		return nil
	}

	err = li.decode(func(v interface{}) {
		if node, ok := v.(*osmpbf.Node); ok {
			if _, needed := li.needed[node.ID]; needed {
				li.nodes[node.ID] = geo.MakePoint(node.Lat, node.Lon)
			}
		}
	})
	if err != nil {
		return err
	}
	li.resolve()
	return nil
}

func (li *LaneImporter) addWay(id int64, tags map[string]string, nodeIDs []int64) {
	segment := lane.NewSegment(id, tags)
	if segment.Type == lane.Unknown {
		return
	}
	for _, n := range nodeIDs {
		li.needed[n] = struct{}{}
	}
	li.lanes = append(li.lanes, segment)
	li.nodeIDs = append(li.nodeIDs, nodeIDs)
}

// resolve fills in the lane points. Nodes missing from the file are skipped.
func (li *LaneImporter) resolve() {
	for i, segment := range li.lanes {
		segment.Points = make([]geo.Point, 0, len(li.nodeIDs[i]))
		for _, n := range li.nodeIDs[i] {
			if p, ok := li.nodes[n]; ok {
				segment.Points = append(segment.Points, p)
			}
		}
	}
	li.nodeIDs, li.needed = nil, nil
}

func (li *LaneImporter) Lanes() []*lane.Segment {
	return li.lanes
}
