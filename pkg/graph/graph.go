package graph

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/geometry"
)

type NodeId = string

var (
	// ErrNodeNotFound is returned for queries with an id that is not part of the graph
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrEmptyNodeId is returned when a node without id is inserted
	ErrEmptyNodeId = errors.New("graph: empty node id")

	// ErrInvalidPosition is returned for nodes with NaN or infinite coordinates
	ErrInvalidPosition = errors.New("graph: node position not finite")

	// ErrDuplicateNode is returned when a node id is inserted a second time
	ErrDuplicateNode = errors.New("graph: duplicate node id")

	// ErrMissingNodeReference is returned by AddEdge if one of the endpoints is not in the graph
	ErrMissingNodeReference = errors.New("graph: edge references missing node")

	// ErrDanglingReference signals an arc pointing at a node which is not in the graph
	ErrDanglingReference = errors.New("graph: arc references unknown node")
)

// Graph holds the nodes of a building keyed by id and an adjacency list of
// weighted arcs per node. Every edge is stored as two arcs, so the graph is
// undirected.
//
// A Graph is built once and not mutated afterwards except by adding nodes and
// edges. It is not safe for concurrent mutation.
type Graph struct {
	nodes     map[NodeId]Node  // all nodes of the graph
	arcs      map[NodeId][]Arc // outgoing arcs per node
	entrances []Node           // entrance nodes in insertion order
	arcCount  int              // the number of arcs in the graph
}

func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[NodeId]Node),
		arcs:      make(map[NodeId][]Arc),
		entrances: make([]Node, 0),
	}
}

// Add a node to the graph.
// Nodes without id, with a non-finite position or with an already used id are
// rejected, the graph stays unchanged.
// The empty id is reserved, searches use it to mark the origin.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrEmptyNodeId
	}
	if !finite(n.X) || !finite(n.Y) {
		return fmt.Errorf("%w: %q at (%v, %v)", ErrInvalidPosition, n.ID, n.X, n.Y)
	}
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
	}
	g.nodes[n.ID] = n
	if n.IsEntrance {
		g.entrances = append(g.entrances, n)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Add an undirected edge. Both endpoints have to exist already.
// The weight is the planar distance of the endpoints and is returned with the edge.
func (g *Graph) AddEdge(e Edge) (Edge, error) {
	nodeA, okA := g.nodes[e.NodeAID]
	nodeB, okB := g.nodes[e.NodeBID]
	if !okA || !okB {
		return Edge{}, fmt.Errorf("%w: %v -> %v", ErrMissingNodeReference, e.NodeAID, e.NodeBID)
	}

	e.weight = geometry.EuclideanDistance(nodeA.Point(), nodeB.Point())

	g.arcs[e.NodeAID] = append(g.arcs[e.NodeAID], MakeArc(e.NodeBID, e.weight, e.Accessible))
	g.arcs[e.NodeBID] = append(g.arcs[e.NodeBID], MakeArc(e.NodeAID, e.weight, e.Accessible))
	g.arcCount += 2
	return e, nil
}

// Return the node for the given id
func (g *Graph) Node(id NodeId) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Check whether the graph contains a node with the given id
func (g *Graph) HasNode(id NodeId) bool {
	_, ok := g.nodes[id]
	return ok
}

// Get the arcs for the given node
func (g *Graph) ArcsFrom(id NodeId) []Arc {
	return g.arcs[id]
}

// Return the nodes which are reachable with one hop, in arc order.
func (g *Graph) Neighbors(id NodeId) ([]Node, error) {
	if !g.HasNode(id) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	arcs := g.arcs[id]
	neighbors := make([]Node, 0, len(arcs))
	for _, arc := range arcs {
		n, ok := g.nodes[arc.To]
		if !ok {
			return nil, fmt.Errorf("%w: %q referenced from %q", ErrDanglingReference, arc.To, id)
		}
		neighbors = append(neighbors, n)
	}
	return neighbors, nil
}

// Return the edge from a to b. The second value is false if there is no such edge.
func (g *Graph) Edge(a, b NodeId) (Edge, bool) {
	for _, arc := range g.arcs[a] {
		if arc.To == b {
			return Edge{NodeAID: a, NodeBID: b, Accessible: arc.Accessible, weight: arc.Weight}, true
		}
	}
	return Edge{}, false
}

// Return all nodes of the graph, sorted by id
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// Return the entrance nodes in insertion order
func (g *Graph) EntranceNodes() []Node {
	entrances := make([]Node, len(g.entrances))
	copy(entrances, g.entrances)
	return entrances
}

// Return the number of total nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Return the number of total arcs (two per edge)
func (g *Graph) ArcCount() int {
	return g.arcCount
}

// Return a human readable string of the graph
func (g *Graph) AsString() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%v\n", g.NodeCount()))
	sb.WriteString(fmt.Sprintf("%v\n", g.ArcCount()))

	nodes := g.Nodes()

	sb.WriteString("#Nodes\n")
	// "id floor x y"
	for _, n := range nodes {
		sb.WriteString(fmt.Sprintf("%v %v %v %v\n", n.ID, n.FloorID, n.X, n.Y))
	}

	sb.WriteString("#Edges\n")
	// "fromId targetId weight"
	for _, n := range nodes {
		for _, arc := range g.arcs[n.ID] {
			sb.WriteString(fmt.Sprintf("%v %v %.3f\n", n.ID, arc.Destination(), arc.Cost()))
		}
	}
	return sb.String()
}
