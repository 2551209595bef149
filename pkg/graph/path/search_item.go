package path

import (
	"fmt"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph"
)

// implements queue.Priorizable
type SearchItem struct {
	nodeId      graph.NodeId // node id of this item in the graph
	distance    float64      // distance to origin of this node (g score)
	heuristic   float64      // estimated distance from node to destination
	predecessor graph.NodeId // node id of the predecessor, empty for the origin
	index       int          // internal usage
}

func NewSearchItem(nodeId graph.NodeId, distance float64, predecessor graph.NodeId, heuristic float64) *SearchItem {
	return &SearchItem{nodeId: nodeId, distance: distance, predecessor: predecessor, heuristic: heuristic, index: -1}
}

func (item *SearchItem) NodeId() graph.NodeId      { return item.nodeId }
func (item *SearchItem) Distance() float64         { return item.distance }
func (item *SearchItem) Predecessor() graph.NodeId { return item.predecessor }
func (item *SearchItem) Priority() float64         { return item.distance + item.heuristic }
func (item *SearchItem) Key() string               { return item.nodeId }
func (item *SearchItem) Index() int                { return item.index }
func (item *SearchItem) SetIndex(index int)        { item.index = index }
func (item *SearchItem) String() string {
	return fmt.Sprintf("%v: %v, %v\n", item.index, item.nodeId, item.Priority())
}
