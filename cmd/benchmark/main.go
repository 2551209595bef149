package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/building"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph"
	p "github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph/path"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/indoor"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/slice"
)

// target of a benchmark run, length and hops are computed by the reference Dijkstra
type target struct {
	origin      graph.NodeId
	destination graph.NodeId
	length      float64
	hops        int
}

func main() {
	buildingFile := flag.String("building", "configs/buildings/hall.yaml", "Building config to work with")
	targetFile := flag.String("targets", "", "Read targets from (or store them to) this file")
	useRandomTargets := flag.Bool("random", false, "Create (new) random targets")
	amountTargets := flag.Int("n", 100, "How many new targets should get created")
	storeTargets := flag.Bool("store", false, "Store targets (when newly generated)")
	algorithm := flag.String("search", "astar", "Select the search algorithm (astar, dijkstra, reference)")
	accessibleOnly := flag.Bool("accessible", false, "Skip inaccessible edges")
	cpuProfile := flag.String("cpu", "", "write cpu profile to file")
	flag.Parse()

	start := time.Now()

	cfg, err := building.LoadFile(*buildingFile)
	if err != nil {
		log.Fatal(err)
	}
	maps := indoor.NewMapService()
	if err := maps.LoadBuilding(cfg); err != nil {
		log.Fatal(err)
	}
	g := maps.Graph()

	elapsed := time.Since(start)
	fmt.Printf("[TIME-Import] = %s\n", elapsed)
	fmt.Printf("Building %v: %v nodes, %v arcs\n", maps.BuildingID(), g.NodeCount(), g.ArcCount())

	referenceDijkstra := p.NewDijkstra(g)
	referenceDijkstra.SetAccessibleOnly(*accessibleOnly)

	navigator := getNavigator(*algorithm, g, *accessibleOnly)
	if navigator == nil {
		log.Fatal("Navigator not supported")
	}

	var targets []target
	if *useRandomTargets || *targetFile == "" {
		targets = createTargets(*amountTargets, referenceDijkstra)
		if *storeTargets && *targetFile != "" {
			writeTargets(targets, *targetFile)
		}
	} else {
		targets = readTargets(*targetFile)
		if *amountTargets < len(targets) {
			targets = targets[0:*amountTargets]
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
	benchmark(navigator, targets)
}

func getNavigator(algorithm string, g *graph.Graph, accessibleOnly bool) p.Navigator {
	if slice.Contains([]string{"astar", "default"}, algorithm) {
		astar := p.NewPathFinder(g)
		astar.SetAccessibleOnly(accessibleOnly)
		return astar
	} else if algorithm == "dijkstra" {
		dijkstra := p.NewPathFinder(g)
		dijkstra.SetUseHeuristic(false)
		dijkstra.SetAccessibleOnly(accessibleOnly)
		return dijkstra
	} else if algorithm == "reference" {
		reference := p.NewDijkstra(g)
		reference.SetAccessibleOnly(accessibleOnly)
		return reference
	}
	return nil
}

func readTargets(filename string) []target {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	targets := make([]target, 0)

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}
		var t target
		fmt.Sscanf(line, "%s %s %g %d", &t.origin, &t.destination, &t.length, &t.hops)
		targets = append(targets, t)
	}
	return targets
}

func createTargets(n int, referenceNavigator *p.Dijkstra) []target {
	nodes := referenceNavigator.GetGraph().Nodes()
	targets := make([]target, n)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	// reference algorithm to compute path
	for i := 0; i < n; i++ {
		origin := nodes[rng.Intn(len(nodes))].ID
		destination := nodes[rng.Intn(len(nodes))].ID
		length := referenceNavigator.ComputeShortestPath(origin, destination)
		hops := len(referenceNavigator.GetPath(origin, destination))
		targets[i] = target{origin, destination, length, hops}
	}
	return targets
}

func writeTargets(targets []target, targetFile string) {
	var sb strings.Builder
	sb.WriteString("# origin destination length hops\n")
	for _, t := range targets {
		sb.WriteString(fmt.Sprintf("%v %v %v %v\n", t.origin, t.destination, t.length, t.hops))
	}

	if err := os.WriteFile(targetFile, []byte(sb.String()), 0o644); err != nil {
		log.Fatal(err)
	}
}

// Run benchmarks on the provided graph and targets
func benchmark(navigator p.Navigator, targets []target) {
	var runtime time.Duration = 0
	var runtimeWithPathExtraction time.Duration = 0
	completed := 0

	pqPops := 0
	pqUpdates := 0
	edgeRelaxations := 0
	relaxationAttempts := 0
	searchSpace := 0

	invalidLengths := make([]int, 0)
	invalidResults := make([]int, 0)
	invalidHops := make([]int, 0)

	showResults := func() {
		if completed == 0 {
			fmt.Println("No targets completed")
			return
		}
		fmt.Printf("Average runtime: %.3fms, %.3fms\n", float64(runtime.Nanoseconds())/float64(completed)/1000000, float64(runtimeWithPathExtraction.Nanoseconds())/float64(completed)/1000000)
		fmt.Printf("Average pq pops: %d\n", pqPops/completed)
		fmt.Printf("Average pq updates: %d\n", pqUpdates/completed)
		fmt.Printf("Average relaxations attempts: %d\n", relaxationAttempts/completed)
		fmt.Printf("Average edge relaxations: %d\n", edgeRelaxations/completed)
		fmt.Printf("Average search space: %d\n", searchSpace/completed)

		fmt.Printf("%v/%v invalid Result (source/target).\n", len(invalidResults), completed)
		for i, testcase := range invalidResults {
			fmt.Printf("%v: Case %v (%v -> %v) has invalid result\n", i, testcase, targets[testcase].origin, targets[testcase].destination)
		}

		fmt.Printf("%v/%v invalid path lengths.\n", len(invalidLengths), completed)
		for i, testcase := range invalidLengths {
			fmt.Printf("%v: Case %v (%v -> %v) has invalid length. Reference: %v\n", i, testcase, targets[testcase].origin, targets[testcase].destination, targets[testcase].length)
		}

		fmt.Printf("%v/%v invalid hops number.\n", len(invalidHops), completed)
		for i, testcase := range invalidHops {
			fmt.Printf("%v: Case %v (%v -> %v) has invalid #hops. Reference: %v\n", i, testcase, targets[testcase].origin, targets[testcase].destination, targets[testcase].hops)
		}
	}

	// catch interrupt to still show already calculated results
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		showResults()
		os.Exit(0)
	}()

	for i, t := range targets {
		start := time.Now()
		length := navigator.ComputeShortestPath(t.origin, t.destination)
		elapsed := time.Since(start)

		pqPops += navigator.GetPqPops()
		pqUpdates += navigator.GetPqUpdates()
		edgeRelaxations += navigator.GetEdgeRelaxations()
		relaxationAttempts += navigator.GetRelaxationAttempts()
		searchSpace += len(navigator.GetSearchSpace())

		path := navigator.GetPath(t.origin, t.destination)
		elapsedPath := time.Since(start)

		fmt.Printf("[%3v TIME-Navigate, TIME-Path, PQ Pops, PQ Updates, relaxed Edges, relax attempts] = %12s, %12s, %7d, %7d, %7d, %7d\n", i, elapsed, elapsedPath, navigator.GetPqPops(), navigator.GetPqUpdates(), navigator.GetEdgeRelaxations(), navigator.GetRelaxationAttempts())

		if math.Abs(length-t.length) > 1e-6 {
			invalidLengths = append(invalidLengths, i)
		}
		if length > -1 && (path[0] != t.origin || path[len(path)-1] != t.destination) {
			invalidResults = append(invalidResults, i)
		}
		if t.hops != len(path) {
			invalidHops = append(invalidHops, i)
		}

		runtime += elapsed
		runtimeWithPathExtraction += elapsedPath
		completed++
	}
	// normal termination, show results
	showResults()
}
