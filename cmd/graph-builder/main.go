package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/feature"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/network"
	"github.com/paulmach/orb"
)

func main() {
	lanesFile := flag.String("lanes", "shipping_lanes.geojson", "GeoJSON file with the lane lines")
	outFile := flag.String("o", "lanes.fmi", "output graph file")
	maxSegment := flag.Float64("max-segment", network.DefaultMaxSegmentKm, "lane segments longer than this are densified (km)")
	precision := flag.Int("precision", graph.DefaultKeyPrecision, "decimal places of node coordinates")
	useIndex := flag.Bool("index", true, "use an R-tree to find bridges")
	minLon := flag.Float64("min-lon", -180, "bounding box")
	minLat := flag.Float64("min-lat", -90, "bounding box")
	maxLon := flag.Float64("max-lon", 180, "bounding box")
	maxLat := flag.Float64("max-lat", 90, "bounding box")
	flag.Parse()

	start := time.Now()
	lanesFc, err := feature.ReadCollectionFile(*lanesFile)
	if err != nil {
		log.Fatal(err)
	}
	lines, malformed := feature.Lines(lanesFc)
	fmt.Printf("[TIME] Read lanes: %s\n", time.Since(start))
	log.Printf("%d lines, %d features without line geometry", len(lines), malformed)

	start = time.Now()
	builder := network.NewBuilder(
		network.WithBound(orb.Bound{Min: orb.Point{*minLon, *minLat}, Max: orb.Point{*maxLon, *maxLat}}),
		network.WithMaxSegmentKm(*maxSegment),
		network.WithGraphOptions(graph.WithKeyPrecision(*precision)),
	)
	g := builder.Build(lines)
	fmt.Printf("[TIME] Build graph: %s\n", time.Since(start))
	log.Printf("Build: %s", builder.Stats())
	log.Printf("Components before repair: %d", len(graph.ConnectedComponents(g)))

	start = time.Now()
	var options []func(*network.Repairer)
	if *useIndex {
		options = append(options, network.WithIndex())
	}
	bridges := network.NewRepairer(options...).Repair(g)
	fmt.Printf("[TIME] Repair graph: %s\n", time.Since(start))
	longest := 0.0
	for _, b := range bridges {
		longest = max(longest, b.Km)
	}
	log.Printf("Bridges: %d, longest %.1f km", len(bridges), longest)
	log.Printf("Nodes: %d, edges: %d", g.NodeCount(), g.EdgeCount())

	start = time.Now()
	if err := graph.WriteFmi(g, *outFile); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("[TIME] Export graph: %s\n", time.Since(start))
	log.Printf("Wrote graph to %s", *outFile)
}
