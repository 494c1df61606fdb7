package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/feature"
	geo "github.com/guohuasdesign/shipping-lane-routing/pkg/geometry"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	p "github.com/guohuasdesign/shipping-lane-routing/pkg/graph/path"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/network"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/slice"
	"github.com/paulmach/orb"
)

func main() {
	graphFile := flag.String("graph", "", "graph file written by graph-builder")
	lanesFile := flag.String("lanes", "shipping_lanes.geojson", "GeoJSON lane lines, used when no graph file is given")
	amountTargets := flag.Int("n", 100, "How many random targets should get created")
	targetFile := flag.String("targets", "", "read targets from this file, or store new ones when -store is set")
	storeTargets := flag.Bool("store", false, "Store newly generated targets")
	algorithm := flag.String("search", "astar", fmt.Sprintf("Select the search algorithm, one of %v", p.Navigators))
	snapping := flag.Bool("snap", true, "compare exhaustive and indexed snapping")
	cpuProfile := flag.String("cpu", "", "write cpu profile to file")
	flag.Parse()

	if !slice.Contains(p.Navigators, *algorithm) {
		log.Fatal("Navigator not supported")
	}

	start := time.Now()
	g := loadGraph(*graphFile, *lanesFile)
	fmt.Printf("[TIME-Import] = %s\n", time.Since(start))
	fmt.Printf("Graph: %d nodes, %d edges\n", g.NodeCount(), g.EdgeCount())
	if g.NodeCount() == 0 {
		log.Fatal("Graph is empty")
	}

	var targets [][2]graph.NodeId
	if *targetFile != "" && !*storeTargets {
		targets = readTargets(*targetFile)
		if *amountTargets < len(targets) {
			targets = targets[0:*amountTargets]
		}
	} else {
		targets = createTargets(*amountTargets, g)
		if *storeTargets && *targetFile != "" {
			writeTargets(targets, *targetFile)
		}
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *snapping {
		benchmarkSnapping(g, *amountTargets)
	}
	navigator, err := p.NewNavigator(*algorithm, g)
	if err != nil {
		log.Fatal(err)
	}
	benchmark(navigator, targets, p.NewDijkstra(g))
}

func loadGraph(graphFile, lanesFile string) *graph.AdjacencyListGraph {
	if graphFile != "" {
		g, err := graph.NewAdjacencyListFromFmiFile(graphFile)
		if err != nil {
			log.Fatal(err)
		}
		return g
	}
	fc, err := feature.ReadCollectionFile(lanesFile)
	if err != nil {
		log.Fatal(err)
	}
	lines, _ := feature.Lines(fc)
	g := network.NewBuilder().Build(lines)
	network.NewRepairer(network.WithIndex()).Repair(g)
	return g
}

func readTargets(filename string) [][2]graph.NodeId {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	targets := make([][2]graph.NodeId, 0)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 1 || line[0] == '#' {
			continue
		}
		var origin, destination graph.NodeId
		fmt.Sscanf(line, "%d %d", &origin, &destination)
		targets = append(targets, [2]graph.NodeId{origin, destination})
	}
	return targets
}

func createTargets(n int, g graph.Graph) [][2]graph.NodeId {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	targets := make([][2]graph.NodeId, n)
	for i := range targets {
		targets[i] = [2]graph.NodeId{rng.Intn(g.NodeCount()), rng.Intn(g.NodeCount())}
	}
	return targets
}

func writeTargets(targets [][2]graph.NodeId, targetFile string) {
	var sb strings.Builder
	for _, target := range targets {
		sb.WriteString(fmt.Sprintf("%v %v\n", target[0], target[1]))
	}

	file, err := os.Create(targetFile)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	writer.WriteString(sb.String())
	writer.Flush()
}

func graphBound(g graph.Graph) orb.Bound {
	bound := orb.Bound{Min: g.GetNode(0).Point, Max: g.GetNode(0).Point}
	for i := 1; i < g.NodeCount(); i++ {
		bound = bound.Extend(g.GetNode(i).Point)
	}
	return bound
}

// benchmarkSnapping projects random points with and without the edge index
// and reports any disagreement.
func benchmarkSnapping(g *graph.AdjacencyListGraph, n int) {
	if n < 1 {
		return
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	bound := graphBound(g)
	points := make([]geo.Point, n)
	for i := range points {
		points[i] = geo.Point{
			bound.Min.Lon() + rng.Float64()*(bound.Max.Lon()-bound.Min.Lon()),
			bound.Min.Lat() + rng.Float64()*(bound.Max.Lat()-bound.Min.Lat()),
		}
	}

	start := time.Now()
	indexed := network.NewSnapper(network.WithEdgeIndex(network.NewEdgeIndex(g)))
	fmt.Printf("[TIME-Index] = %s\n", time.Since(start))
	exhaustive := network.NewSnapper()

	var exhaustiveTime, indexedTime time.Duration
	mismatches := 0
	for _, point := range points {
		start = time.Now()
		want, err := exhaustive.NearestPointOnNetwork(g, point)
		exhaustiveTime += time.Since(start)
		if err != nil {
			log.Fatal(err)
		}

		start = time.Now()
		got, err := indexed.NearestPointOnNetwork(g, point)
		indexedTime += time.Since(start)
		if err != nil {
			log.Fatal(err)
		}
		if got.Edge != want.Edge || got.Distance != want.Distance {
			mismatches++
			fmt.Printf("Snapping mismatch at %v: edge %d (%.6f km) vs %d (%.6f km)\n", point, got.Edge, got.Distance, want.Edge, want.Distance)
		}
	}
	fmt.Printf("Average snapping runtime: exhaustive %s, indexed %s\n", exhaustiveTime/time.Duration(n), indexedTime/time.Duration(n))
	fmt.Printf("%v/%v snapping mismatches.\n", mismatches, n)
}

// Run benchmarks on the provided graph and targets
func benchmark(navigator p.Navigator, targets [][2]graph.NodeId, referenceDijkstra *p.Dijkstra) {
	var runtime time.Duration = 0
	var runtimeWithPathExtraction time.Duration = 0
	completed := 0

	pqPops := 0
	pqUpdates := 0
	edgeRelaxations := 0
	relaxationAttempts := 0

	invalidLengths := make([]int, 0)
	invalidPaths := make([]int, 0)
	unreachable := 0

	showResults := func() {
		if completed == 0 {
			return
		}
		fmt.Printf("Average runtime: %.3fms, %.3fms\n", float64(int(runtime.Nanoseconds())/completed)/1000000, float64(int(runtimeWithPathExtraction.Nanoseconds())/completed)/1000000)
		fmt.Printf("Average pq pops: %d\n", pqPops/completed)
		fmt.Printf("Average pq updates: %d\n", pqUpdates/completed)
		fmt.Printf("Average relaxations attempts: %d\n", relaxationAttempts/completed)
		fmt.Printf("Average edge relaxations: %d\n", edgeRelaxations/completed)
		fmt.Printf("%v/%v unreachable targets.\n", unreachable, completed)
		fmt.Printf("%v/%v invalid path lengths: %v\n", len(invalidLengths), completed, invalidLengths)
		fmt.Printf("%v/%v paths differing from the reference: %v\n", len(invalidPaths), completed, invalidPaths)
	}

	// catch interrupt to still show already calculated results
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		showResults()
		os.Exit(0)
	}()

	ctx := context.Background()
	for i, target := range targets {
		origin, destination := target[0], target[1]

		start := time.Now()
		length, err := navigator.ComputeShortestPath(ctx, origin, destination)
		elapsed := time.Since(start)

		pqPops += navigator.GetPqPops()
		pqUpdates += navigator.GetPqUpdates()
		edgeRelaxations += navigator.GetEdgeRelaxations()
		relaxationAttempts += navigator.GetRelaxationAttempts()

		path := navigator.GetPath(origin, destination)
		elapsedPath := time.Since(start)

		fmt.Printf("[%3v TIME-Navigate, TIME-Path, PQ Pops, PQ Updates, relaxed Edges, relax attempts] = %12s, %12s, %7d, %7d, %7d, %7d\n", i, elapsed, elapsedPath, navigator.GetPqPops(), navigator.GetPqUpdates(), navigator.GetEdgeRelaxations(), navigator.GetRelaxationAttempts())

		referenceLength, referenceErr := referenceDijkstra.ComputeShortestPath(ctx, origin, destination)
		switch {
		case err != nil || referenceErr != nil:
			if (err == nil) != (referenceErr == nil) {
				invalidLengths = append(invalidLengths, i)
			}
			unreachable++
		case length-referenceLength > 1e-6 || referenceLength-length > 1e-6:
			invalidLengths = append(invalidLengths, i)
		case slice.Compare(path, referenceDijkstra.GetPath(origin, destination)) != 0:
			invalidPaths = append(invalidPaths, i)
		}

		runtime += elapsed
		runtimeWithPathExtraction += elapsedPath
		completed++
	}
	// normal termination, show results
	showResults()
}
