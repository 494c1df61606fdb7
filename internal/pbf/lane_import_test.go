package pbf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/feature"
	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/lane"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const channelXml = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="51.0" lon="1.0"/>
  <node id="2" lat="51.0" lon="1.5"/>
  <node id="3" lat="51.0" lon="2.0"/>
  <node id="4" lat="50.0" lon="0.0"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <tag k="seamark:type" v="separation_lane"/>
    <tag k="seamark:name" v="Dover Strait"/>
  </way>
  <way id="11">
    <nd ref="2"/>
    <nd ref="3"/>
    <nd ref="99"/>
    <tag k="seamark:type" v="separation_lane"/>
    <tag k="seamark:name" v="Dover Strait"/>
  </way>
  <way id="12">
    <nd ref="4"/>
    <nd ref="1"/>
    <tag k="highway" v="primary"/>
  </way>
</osm>`

func writeFixture(t *testing.T) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "channel.osm")
	require.NoError(t, os.WriteFile(filename, []byte(channelXml), 0o644))
	return filename
}

func TestXmlLaneImporter(t *testing.T) {
	importer := NewImporter(writeFixture(t))
	require.IsType(t, &XmlLaneImporter{}, importer)
	require.NoError(t, importer.Import())

	lanes := importer.Lanes()
	require.Len(t, lanes, 2)
	assert.Equal(t, int64(10), lanes[0].ID)
	assert.Equal(t, lane.SeparationLane, lanes[0].Type)
	assert.Equal(t, "Dover Strait", lanes[0].Name)
	assert.Equal(t, []geo.Point{{1, 51}, {1.5, 51}}, lanes[0].Points)
	assert.Equal(t, []geo.Point{{1.5, 51}, {2, 51}}, lanes[1].Points, "unknown node refs are dropped")
}

func TestExportMergedLanes(t *testing.T) {
	importer := NewImporter(writeFixture(t))
	require.NoError(t, importer.Import())
	merger := lane.NewMerger(importer.Lanes())
	merger.Merge()

	out := filepath.Join(t.TempDir(), "lanes.geojson")
	require.NoError(t, ExportLanes(merger.Lanes(), out))

	fc, err := feature.ReadCollectionFile(out)
	require.NoError(t, err)
	lines, _ := feature.Lines(fc)
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], 3)
}

func TestImporterByExtension(t *testing.T) {
	assert.IsType(t, &LaneImporter{}, NewImporter("north-sea.osm.pbf"))
	assert.IsType(t, &XmlLaneImporter{}, NewImporter("north-sea.OSM"))
	assert.Error(t, NewImporter(filepath.Join(t.TempDir(), "missing.osm.pbf")).Import())
}
