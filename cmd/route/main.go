package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/feature"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph/path"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/hazard"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/network"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/routing"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/slice"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

func main() {
	lanesFile := flag.String("lanes", "shipping_lanes.geojson", "GeoJSON file with the lane lines")
	vesselsFile := flag.String("vessels", "ships.geojson", "GeoJSON file with one point per vessel")
	destinationFile := flag.String("destination", "destination.geojson", "GeoJSON file whose first point is the destination")
	hazardsFile := flag.String("hazards", "", "GeoJSON file with hazard polygons, enables alternative routes")
	outFile := flag.String("out", "ship_routes.geojson", "output file for the direct routes")
	altOutFile := flag.String("alt-out", "alternative_routes.geojson", "output file for the alternative routes")

	workers := flag.Int("workers", runtime.NumCPU(), "number of vessels routed in parallel")
	timeout := flag.Duration("timeout", 30*time.Second, "time limit per vessel")
	pad := flag.Float64("pad", routing.DefaultSearchPadDeg, "degrees added around vessels and destination when loading lanes")
	maxSegment := flag.Float64("max-segment", network.DefaultMaxSegmentKm, "lane segments longer than this are densified (km)")
	navigator := flag.String("navigator", "dijkstra", fmt.Sprintf("shortest path search, one of %v", path.Navigators))
	useIndex := flag.Bool("index", false, "use an R-tree for snapping and bridging")
	penalty := flag.Float64("penalty", hazard.DefaultPenaltyFactor, "weight factor for edges crossing a hazard")
	flag.Parse()

	if !slice.Contains(path.Navigators, *navigator) {
		log.Fatalf("unknown navigator %q", *navigator)
	}

	start := time.Now()
	vesselsFc, err := feature.ReadCollectionFile(*vesselsFile)
	if err != nil {
		log.Fatal(err)
	}
	vessels, malformed := feature.Vessels(vesselsFc)
	destinationFc, err := feature.ReadCollectionFile(*destinationFile)
	if err != nil {
		log.Fatal(err)
	}
	destination, err := feature.Destination(destinationFc)
	if err != nil {
		log.Fatal(err)
	}
	lanesFc, err := feature.ReadCollectionFile(*lanesFile)
	if err != nil {
		log.Fatal(err)
	}
	lines, _ := feature.Lines(lanesFc)
	fmt.Printf("[TIME] Read input: %s\n", time.Since(start))
	log.Printf("%d vessels (%d malformed), destination %s, %d lane lines", len(vessels), len(malformed), destination.Name, len(lines))

	start = time.Now()
	builder := network.NewBuilder(
		network.WithBound(routing.SearchBound(vessels, destination, *pad)),
		network.WithMaxSegmentKm(*maxSegment),
	)
	g := builder.Build(lines)
	fmt.Printf("[TIME] Build graph: %s\n", time.Since(start))
	log.Printf("Build: %s", builder.Stats())

	start = time.Now()
	repairOptions := []func(*network.Repairer){}
	if *useIndex {
		repairOptions = append(repairOptions, network.WithIndex())
	}
	bridges := network.NewRepairer(repairOptions...).Repair(g)
	fmt.Printf("[TIME] Repair graph: %s\n", time.Since(start))
	log.Printf("Graph: %d nodes, %d edges, %d bridges", g.NodeCount(), g.EdgeCount(), len(bridges))

	config := routing.Config{
		Workers:       *workers,
		VesselTimeout: *timeout,
		Navigator:     *navigator,
		UseIndex:      *useIndex,
		PenaltyFactor: *penalty,
	}
	ctx := context.Background()

	start = time.Now()
	bar := newProgressBar(len(vessels), "[cyan][1/2][reset] Routing vessels...")
	config.Progress = func() { bar.Add(1) }
	router := routing.NewRouter(g, destination, config)
	direct := router.RouteAll(ctx, vessels)
	direct.Skipped = append(malformed, direct.Skipped...)
	bar.Finish()
	fmt.Printf("\n[TIME] Route vessels: %s\n", time.Since(start))
	logReport("Direct routes", direct)

	if err := feature.WriteCollectionFile(*outFile, feature.Routes(direct.Routes)); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %d routes to %s", len(direct.Routes), *outFile)

	if *hazardsFile == "" {
		return
	}
	hazardsFc, err := feature.ReadCollectionFile(*hazardsFile)
	if err != nil {
		log.Fatal(err)
	}
	zones, dropped := feature.Zones(hazardsFc)
	for _, err := range dropped {
		log.Printf("Dropped hazard: %v", err)
	}

	var alternatives routing.Report
	if len(zones) > 0 {
		start = time.Now()
		// the progress callback reads bar, so it now drives the second bar;
		// vessels clear of every zone tick it too
		bar = newProgressBar(len(direct.Routes), "[cyan][2/2][reset] Avoiding hazards...")
		alternatives = router.Alternatives(ctx, direct.Routes, zones)
		bar.Finish()
		fmt.Printf("\n[TIME] Alternative routes: %s\n", time.Since(start))
		logReport("Alternative routes", alternatives)
	}

	if err := feature.WriteCollectionFile(*altOutFile, feature.Routes(alternatives.Routes)); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %d alternative routes to %s", len(alternatives.Routes), *altOutFile)
}

func newProgressBar(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func logReport(title string, report routing.Report) {
	log.Printf("%s: %s", title, report)
	for _, s := range report.Skipped {
		log.Printf("  skipped %s (%s): %v", s.Vessel, s.Reason, s.Err)
	}
}
