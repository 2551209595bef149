package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/building"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/indoor"
)

// Builds the graph of a building config, reports its size and exports it for
// inspection: a plain text dump of nodes and arcs and a GeoJSON file per floor.
func main() {
	buildingFile := flag.String("building", "configs/buildings/hall.yaml", "building config to build the graph from")
	dumpFile := flag.String("dump", "", "write the node and arc dump of the graph to this file")
	geojsonDirectory := flag.String("geojson", "", "write one GeoJSON file per floor into this directory")
	convert := flag.String("convert", "", "write the (validated) config to this file, format by extension")
	flag.Parse()

	start := time.Now()
	cfg, err := building.LoadFile(*buildingFile)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid building config:\n%v", err)
	}
	elapsed := time.Since(start)
	fmt.Printf("[TIME] Load config: %s\n", elapsed)

	start = time.Now()
	maps := indoor.NewMapService()
	if err := maps.LoadBuilding(cfg); err != nil {
		log.Fatal(err)
	}
	g := maps.Graph()
	elapsed = time.Since(start)
	fmt.Printf("[TIME] Build graph: %s\n", elapsed)
	fmt.Printf("Building: %v\n", maps.BuildingID())
	fmt.Printf("Floors: %d\n", len(cfg.Floors))
	fmt.Printf("Nodes: %d\n", g.NodeCount())
	fmt.Printf("Arcs: %d\n", g.ArcCount())
	fmt.Printf("Entrances: %d\n", len(g.EntranceNodes()))

	if *dumpFile != "" {
		if err := os.WriteFile(*dumpFile, []byte(g.AsString()), 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote graph dump to %s\n", *dumpFile)
	}

	if *geojsonDirectory != "" {
		if err := os.MkdirAll(*geojsonDirectory, 0o755); err != nil {
			log.Fatal(err)
		}
		for _, floor := range cfg.Floors {
			fc, err := building.FloorFeatures(cfg, floor.FloorID)
			if err != nil {
				log.Fatal(err)
			}
			data, err := json.MarshalIndent(fc, "", "  ")
			if err != nil {
				log.Fatal(err)
			}
			file := filepath.Join(*geojsonDirectory, floor.FloorID+".geojson")
			if err := os.WriteFile(file, data, 0o644); err != nil {
				log.Fatal(err)
			}
			bound := building.Bounds(floor)
			fmt.Printf("Wrote %s (bounds %v - %v)\n", file, bound.Min, bound.Max)
		}
	}

	if *convert != "" {
		if err := building.WriteFile(cfg, *convert); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote config to %s\n", *convert)
	}
}
