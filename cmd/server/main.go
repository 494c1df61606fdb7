package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/feature"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/graph"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/network"
	"github.com/guohuasdesign/shipping-lane-routing/pkg/server/openapi_server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	graphFile := flag.String("graph", "", "graph file written by graph-builder")
	lanesFile := flag.String("lanes", "shipping_lanes.geojson", "GeoJSON lane lines, used when no graph file is given")
	destinationFile := flag.String("destination", "destination.geojson", "GeoJSON file whose first point is the destination")
	addr := flag.String("addr", ":8081", "listen address")
	navigator := flag.String("navigator", "dijkstra", "shortest path search")
	workers := flag.Int("workers", 0, "vessels routed in parallel per request, 0 uses all CPUs")
	timeout := flag.Duration("timeout", 30*time.Second, "time limit per vessel")
	useIndex := flag.Bool("index", true, "use an R-tree for snapping")
	flag.Parse()

	start := time.Now()
	var g *graph.AdjacencyListGraph
	var err error
	if *graphFile != "" {
		g, err = graph.NewAdjacencyListFromFmiFile(*graphFile)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		lanesFc, err := feature.ReadCollectionFile(*lanesFile)
		if err != nil {
			log.Fatal(err)
		}
		lines, _ := feature.Lines(lanesFc)
		g = network.NewBuilder().Build(lines)
		network.NewRepairer(network.WithIndex()).Repair(g)
	}
	fmt.Printf("[TIME] Load graph: %s\n", time.Since(start))
	log.Printf("Graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	destinationFc, err := feature.ReadCollectionFile(*destinationFile)
	if err != nil {
		log.Fatal(err)
	}
	destination, err := feature.Destination(destinationFc)
	if err != nil {
		log.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := openapi_server.NewMetrics(reg)

	config := openapi_server.NavigatorConfig{
		Navigator:     *navigator,
		Workers:       *workers,
		VesselTimeout: *timeout,
		UseIndex:      *useIndex,
	}
	service := openapi_server.NewDefaultApiService(g, destination, config, metrics)
	router := openapi_server.NewRouter(openapi_server.NewDefaultApiController(service))
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	router.Use(openapi_server.PromeHttpMiddleware(metrics))

	log.Printf("Listening on %s, destination %s", *addr, destination.Name)
	log.Fatal(http.ListenAndServe(*addr, router))
}
