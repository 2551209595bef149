package graph

import (
	"fmt"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/geometry"
	"github.com/paulmach/orb"
)

type NodeType string

const (
	Room      NodeType = "room"
	Hallway   NodeType = "hallway"
	Elevator  NodeType = "elevator"
	Stairs    NodeType = "stairs"
	Entrance  NodeType = "entrance"
	Bathroom  NodeType = "bathroom"
	Escalator NodeType = "escalator"
)

var nodeTypes = []NodeType{Room, Hallway, Elevator, Stairs, Entrance, Bathroom, Escalator}

func (t NodeType) Valid() bool {
	for _, known := range nodeTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t NodeType) String() string {
	return string(t)
}

// Node is a point of interest or junction on a floor.
// X and Y are given in the floor plan's own unit space (e.g. pixels).
type Node struct {
	ID               NodeId           `json:"id" yaml:"id"`
	FloorID          string           `json:"floorId" yaml:"floorId"`
	X                float64          `json:"x" yaml:"x"`
	Y                float64          `json:"y" yaml:"y"`
	Type             NodeType         `json:"type" yaml:"type"`
	Label            string           `json:"label,omitempty" yaml:"label,omitempty"`
	IsEntrance       bool             `json:"isEntrance,omitempty" yaml:"isEntrance,omitempty"`
	EntranceLocation *geometry.LatLng `json:"entranceLocation,omitempty" yaml:"entranceLocation,omitempty"`
}

// Point returns the planar position of the node
func (n Node) Point() orb.Point {
	return orb.Point{n.X, n.Y}
}

func (n Node) String() string {
	return fmt.Sprintf("%v[%v] (%v, %v)", n.ID, n.FloorID, n.X, n.Y)
}

// Edge connects two nodes. The config lists each connection once, the graph
// stores it in both directions.
// The weight is computed by Graph.AddEdge and can't be set by callers.
type Edge struct {
	NodeAID    NodeId `json:"nodeAId" yaml:"nodeAId"`
	NodeBID    NodeId `json:"nodeBId" yaml:"nodeBId"`
	Accessible bool   `json:"accessible" yaml:"accessible"`
	weight     float64
}

func MakeEdge(a, b NodeId, accessible bool) Edge {
	return Edge{NodeAID: a, NodeBID: b, Accessible: accessible}
}

func (e Edge) Weight() float64 {
	return e.weight
}
