package path

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/geometry"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/queue"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/slice"
)

var (
	// ErrNodeNotFound is returned if the origin or the destination is not part of the graph.
	// It is the same value as graph.ErrNodeNotFound.
	ErrNodeNotFound = graph.ErrNodeNotFound

	// ErrNoPath is returned if origin and destination lie in disconnected parts of the graph.
	// This is an expected outcome, e.g. for two floors without elevator or stairs between them.
	ErrNoPath = errors.New("path: no path found")
)

type SearchKPIs struct {
	pqPops             int // store the amount of Pops which were performed on the priority queue for the computed search
	pqUpdates          int // store each update or push to the priority queue
	relaxationAttempts int // store the attempt for relaxed edges
	relaxedEdges       int // number of relaxed edges
}

func (kpi *SearchKPIs) Reset() {
	*kpi = SearchKPIs{}
}

type SearchOptions struct {
	useHeuristic   bool // flag indicating if heuristic (remaining distance) should be used (AStar implementation)
	accessibleOnly bool // flag indicating if inaccessible edges (e.g. stairs) are skipped
}

// PathFinder computes shortest paths with A* on a building graph.
//
// The open set is a min heap ordered by f score. Equal f scores are resolved
// by the lexicographically smallest node id, so repeated searches on the same
// graph always yield the same route.
//
// A PathFinder keeps the state of its last search and must not be used by
// multiple goroutines at the same time.
type PathFinder struct {
	g       *graph.Graph
	openSet queue.MinHeap[*SearchItem]

	origin      graph.NodeId
	destination graph.NodeId
	found       bool

	searchSpace map[graph.NodeId]*SearchItem // every node which was reached (open or closed)
	closedSet   map[graph.NodeId]bool        // settled nodes

	searchOptions SearchOptions
	searchKPIs    SearchKPIs

	debugLevel int // debug level for logging purpose
}

// Create a new A* instance with the given graph g
func NewPathFinder(g *graph.Graph) *PathFinder {
	return &PathFinder{g: g, searchOptions: SearchOptions{useHeuristic: true}}
}

// Find the shortest route between the two nodes.
// The error wraps ErrNodeNotFound if one of the ids is unknown and ErrNoPath if
// the destination can't be reached.
func (pf *PathFinder) FindShortestPath(origin, destination graph.NodeId) (Route, error) {
	if err := pf.search(origin, destination); err != nil {
		return Route{}, err
	}
	if !pf.found {
		return Route{}, fmt.Errorf("%w between %v and %v", ErrNoPath, origin, destination)
	}

	ids := pf.GetPath(origin, destination)
	nodes := make([]graph.Node, 0, len(ids))
	for _, id := range ids {
		node, _ := pf.g.Node(id)
		nodes = append(nodes, node)
	}

	return Route{
		Nodes:         nodes,
		TotalDistance: pf.searchSpace[destination].distance,
		Instructions:  BuildInstructions(nodes),
	}, nil
}

// Compute the shortest path from the origin to the destination.
// It returns the length of the found path, or -1 if no path was found.
func (pf *PathFinder) ComputeShortestPath(origin, destination graph.NodeId) float64 {
	if err := pf.search(origin, destination); err != nil || !pf.found {
		return -1
	}
	return pf.searchSpace[destination].distance
}

func (pf *PathFinder) search(origin, destination graph.NodeId) error {
	originNode, ok := pf.g.Node(origin)
	if !ok {
		return fmt.Errorf("%w: origin %q", ErrNodeNotFound, origin)
	}
	destinationNode, ok := pf.g.Node(destination)
	if !ok {
		return fmt.Errorf("%w: destination %q", ErrNodeNotFound, destination)
	}

	if pf.debugLevel >= 1 {
		log.Printf("New search: %v -> %v\n", origin, destination)
	}

	pf.initializeSearch(originNode, destinationNode)

	for pf.openSet.Len() > 0 {
		if pf.debugLevel >= 4 {
			log.Printf("Open set:\n%v", pf.openSet.String())
		}
		current := pf.openSet.Pop()
		pf.searchKPIs.pqPops++
		if pf.debugLevel >= 2 {
			log.Printf("Settling node %v, distance %v, priority %v\n", current.nodeId, current.distance, current.Priority())
		}

		if current.nodeId == destination {
			pf.found = true
			if pf.debugLevel >= 1 {
				log.Printf("Found path %v -> %v with distance %v\n", origin, destination, current.distance)
			}
			return nil
		}

		pf.closedSet[current.nodeId] = true

		if err := pf.relaxEdges(current, destinationNode); err != nil {
			return err
		}
	}

	if pf.debugLevel >= 1 {
		log.Printf("Finished search, no path found\n")
	}
	return nil
}

// Initialize a new search
// This resets the search space and all other leftovers of a previous search
func (pf *PathFinder) initializeSearch(origin, destination graph.Node) {
	pf.origin = origin.ID
	pf.destination = destination.ID
	pf.found = false
	pf.searchSpace = make(map[graph.NodeId]*SearchItem)
	pf.closedSet = make(map[graph.NodeId]bool)
	pf.searchKPIs.Reset()

	originItem := NewSearchItem(origin.ID, 0, "", pf.heuristicValue(origin, destination))
	pf.openSet = *queue.NewMinHeap[*SearchItem](nil)
	pf.openSet.Push(originItem)
	pf.searchSpace[origin.ID] = originItem
}

// Relax the arcs of the given node item and add newly reached nodes to the open set.
// Every arc is relaxed on its own, so of two parallel edges the accessible one
// still counts when inaccessible edges are skipped.
func (pf *PathFinder) relaxEdges(node *SearchItem, destination graph.Node) error {
	// fails on arcs pointing at nodes which are not in the graph
	if _, err := pf.g.Neighbors(node.nodeId); err != nil {
		return err
	}

	for _, arc := range pf.g.ArcsFrom(node.nodeId) {
		pf.searchKPIs.relaxationAttempts++
		successor := arc.Destination()

		if pf.closedSet[successor] {
			continue
		}

		if pf.searchOptions.accessibleOnly && !arc.Accessible {
			if pf.debugLevel >= 3 {
				log.Printf("Ignore inaccessible edge %v -> %v\n", node.nodeId, successor)
			}
			continue
		}

		if pf.debugLevel >= 3 {
			log.Printf("Relax Edge %v -> %v\n", node.nodeId, successor)
		}

		tentativeDistance := node.distance + arc.Cost()

		if known := pf.searchSpace[successor]; known == nil {
			neighbor, _ := pf.g.Node(successor)
			nextNode := NewSearchItem(successor, tentativeDistance, node.nodeId, pf.heuristicValue(neighbor, destination))
			pf.searchSpace[successor] = nextNode
			pf.openSet.Push(nextNode)
			pf.searchKPIs.pqUpdates++
		} else if tentativeDistance < known.distance {
			known.distance = tentativeDistance
			known.predecessor = node.nodeId
			pf.openSet.Update(known)
			pf.searchKPIs.pqUpdates++
		}
		pf.searchKPIs.relaxedEdges++
	}
	return nil
}

// Get the path of the previous computation. Empty if no path was found.
func (pf *PathFinder) GetPath(origin, destination graph.NodeId) []graph.NodeId {
	path := make([]graph.NodeId, 0)
	if !pf.found || pf.origin != origin || pf.destination != destination {
		return path
	}
	for nodeId := destination; nodeId != ""; nodeId = pf.searchSpace[nodeId].predecessor {
		path = append(path, nodeId)
	}
	// reverse path (to create the correct direction)
	slice.ReverseInPlace(path)
	return path
}

// Returns the settled nodes of the previous computation, sorted by id
func (pf *PathFinder) GetSearchSpace() []graph.NodeId {
	settled := make([]graph.NodeId, 0, len(pf.closedSet))
	for id := range pf.closedSet {
		settled = append(settled, id)
	}
	sort.Strings(settled)
	return settled
}

// helper function to calculate the heuristic value from a node to the destination.
// Returns 0 if the heuristic is disabled
func (pf *PathFinder) heuristicValue(from, destination graph.Node) float64 {
	if pf.searchOptions.useHeuristic {
		return geometry.EuclideanDistance(from.Point(), destination.Point())
	}
	return 0
}

// Specify whether a heuristic for path finding (AStar) should be used.
// Without heuristic the search degrades to Dijkstra.
func (pf *PathFinder) SetUseHeuristic(useHeuristic bool) {
	pf.searchOptions.useHeuristic = useHeuristic
}

// Skip edges which are not marked accessible (e.g. stairs)
func (pf *PathFinder) SetAccessibleOnly(accessibleOnly bool) {
	pf.searchOptions.accessibleOnly = accessibleOnly
}

// Set the debug level to show different debug messages.
// If it is 0, no debug messages are printed
func (pf *PathFinder) SetDebugLevel(level int) {
	pf.debugLevel = level
}

func (pf *PathFinder) GetPqPops() int             { return pf.searchKPIs.pqPops }
func (pf *PathFinder) GetPqUpdates() int          { return pf.searchKPIs.pqUpdates }
func (pf *PathFinder) GetEdgeRelaxations() int    { return pf.searchKPIs.relaxedEdges }
func (pf *PathFinder) GetRelaxationAttempts() int { return pf.searchKPIs.relaxationAttempts }
func (pf *PathFinder) GetGraph() *graph.Graph     { return pf.g }
