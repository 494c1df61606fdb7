package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/guohuasdesign/shipping-lane-routing/internal/pbf"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/lane"
)

var flagOsmFile = flag.String("f", "seamarks.osm.pbf", "OSM file (.osm.pbf or .osm)")
var flagOutputFile = flag.String("o", "shipping_lanes.geojson", "output GeoJSON file with the merged lanes")

func main() {
	flag.Parse()

	start := time.Now()

	importer := pbf.NewImporter(*flagOsmFile)
	if err := importer.Import(); err != nil {
		log.Fatal(err)
	}

	elapsed := time.Since(start)
	fmt.Printf("[TIME] Import: %s\n", elapsed)

	start = time.Now()

	merger := lane.NewMerger(importer.Lanes())
	merger.Merge()

	elapsed = time.Since(start)
	fmt.Printf("[TIME] Merge: %s\n", elapsed)
	fmt.Printf("Lanes: %d\n", len(merger.Lanes()))
	fmt.Printf("Merges: %d\n", merger.MergeCount())
	fmt.Printf("Unmergable lanes: %d\n", merger.UnmergableLaneCount())

	start = time.Now()

	if err := pbf.ExportLanes(merger.Lanes(), *flagOutputFile); err != nil {
		log.Fatal(err)
	}

	elapsed = time.Since(start)
	fmt.Printf("[TIME] Export: %s\n", elapsed)
	fmt.Printf("Exported lanes to %s\n", *flagOutputFile)
}
