package path

import (
	"fmt"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/slice"
)

// Route is the result of a single path query
type Route struct {
	Nodes         []graph.Node `json:"nodes"`         // from origin to destination, both inclusive
	TotalDistance float64      `json:"totalDistance"` // sum of the traversed edge weights
	Instructions  []string     `json:"instructions"`
}

// Return the ids of the route's nodes
func (r Route) NodeIds() []graph.NodeId {
	ids := make([]graph.NodeId, 0, len(r.Nodes))
	for _, n := range r.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

// Return the floors the route passes, in order of traversal.
// A floor is listed again if the route returns to it.
func (r Route) Floors() []string {
	floors := make([]string, 0, len(r.Nodes))
	for _, n := range r.Nodes {
		floors = append(floors, n.FloorID)
	}
	return slice.Distinct(floors)
}

// Build the human readable instructions for the node sequence.
// The first and last node always get a line, interior nodes only if they carry a label.
func BuildInstructions(nodes []graph.Node) []string {
	instructions := make([]string, 0)

	for i, node := range nodes {
		switch {
		case i == 0:
			instructions = append(instructions, fmt.Sprintf("Start at %v", labelOr(node, "your location")))
		case i == len(nodes)-1:
			instructions = append(instructions, fmt.Sprintf("Arrive at %v", labelOr(node, "your destination")))
		case node.Label != "":
			instructions = append(instructions, fmt.Sprintf("Continue towards %v", node.Label))
		}
	}

	return instructions
}

func labelOr(n graph.Node, fallback string) string {
	if n.Label == "" {
		return fallback
	}
	return n.Label
}
