package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/internal/config"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/internal/osmindoor"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/building"
)

var flagConfigFile = flag.String("config", "", "config file with import options")
var flagInputFile = flag.String("f", "building.osm", "OSM file (.osm or .osm.pbf) with indoor data")
var flagOutputFile = flag.String("o", "", "output building config (.yaml or .json), defaults to <building>.yaml")
var flagBuilding = flag.String("building", "", "building id, overrides the config")
var flagScale = flag.Float64("scale", 0, "floor plan units per meter, overrides the config")

func main() {
	flag.Parse()

	cfg := config.Default()
	if *flagConfigFile != "" {
		var err error
		if cfg, err = config.Read(*flagConfigFile); err != nil {
			log.Fatal(err)
		}
	}
	options := osmindoor.Options{BuildingID: cfg.Import.BuildingID, Scale: cfg.Import.Scale}
	if *flagBuilding != "" {
		options.BuildingID = *flagBuilding
	}
	if *flagScale != 0 {
		options.Scale = *flagScale
	}

	start := time.Now()

	data, err := osmindoor.ReadFile(*flagInputFile)
	if err != nil {
		log.Fatal(err)
	}

	elapsed := time.Since(start)
	fmt.Printf("[TIME] Import: %s\n", elapsed)
	fmt.Printf("Nodes: %d, ways: %d\n", len(data.Nodes), len(data.Ways))

	start = time.Now()

	navConfig, err := osmindoor.Convert(data, options)
	if err != nil {
		log.Fatal(err)
	}

	elapsed = time.Since(start)
	fmt.Printf("[TIME] Convert: %s\n", elapsed)
	for _, floor := range navConfig.Floors {
		fmt.Printf("Floor %v: %d nodes, %d edges\n", floor.FloorID, len(floor.Nodes), len(floor.Edges))
	}
	fmt.Printf("Inter-floor edges: %d\n", len(navConfig.InterFloorEdges))

	start = time.Now()

	outputFile := *flagOutputFile
	if outputFile == "" {
		outputFile = navConfig.BuildingID + ".yaml"
	}
	if err := building.WriteFile(navConfig, outputFile); err != nil {
		log.Fatal(err)
	}

	elapsed = time.Since(start)
	fmt.Printf("[TIME] Export: %s\n", elapsed)
	fmt.Printf("Exported building %v to %s\n", navConfig.BuildingID, outputFile)
}
