package path

import (
	"sort"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/queue"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/slice"
)

// Dijkstra is a plain reference implementation without heuristic.
// It works directly on the arcs of the graph and is used to verify the results of the PathFinder.
type Dijkstra struct {
	g                  *graph.Graph
	dijkstraItems      map[graph.NodeId]*queue.Item
	settled            map[graph.NodeId]bool
	accessibleOnly     bool
	pqPops             int
	pqUpdates          int
	relaxationAttempts int
	relaxedEdges       int
}

func NewDijkstra(g *graph.Graph) *Dijkstra {
	return &Dijkstra{g: g}
}

func (d *Dijkstra) SetAccessibleOnly(accessibleOnly bool) {
	d.accessibleOnly = accessibleOnly
}

func (d *Dijkstra) ComputeShortestPath(origin, destination graph.NodeId) float64 {
	d.dijkstraItems = make(map[graph.NodeId]*queue.Item)
	d.settled = make(map[graph.NodeId]bool)
	d.pqPops = 0
	d.pqUpdates = 0
	d.relaxationAttempts = 0
	d.relaxedEdges = 0

	if !d.g.HasNode(origin) || !d.g.HasNode(destination) {
		return -1
	}

	originItem := queue.NewQueueItem(origin, 0, "")
	d.dijkstraItems[origin] = originItem
	pq := queue.NewQueue(originItem)

	for pq.Len() > 0 {
		currentPqItem := pq.Pop()
		currentNodeId := currentPqItem.ItemId
		d.pqPops++
		d.settled[currentNodeId] = true

		if currentNodeId == destination {
			break
		}

		for _, arc := range d.g.ArcsFrom(currentNodeId) {
			d.relaxationAttempts++
			successor := arc.Destination()

			if d.settled[successor] || (d.accessibleOnly && !arc.Accessible) {
				continue
			}

			newDistance := currentPqItem.Distance + arc.Cost()
			if item, ok := d.dijkstraItems[successor]; !ok {
				pqItem := queue.NewQueueItem(successor, newDistance, currentNodeId)
				d.dijkstraItems[successor] = pqItem
				pq.Push(pqItem)
				d.pqUpdates++
			} else if newDistance < item.Distance {
				pq.Update(item, newDistance)
				item.Predecessor = currentNodeId
				d.pqUpdates++
			}
			d.relaxedEdges++
		}
	}

	if !d.settled[destination] {
		// by default a non-existing path has length -1
		return -1
	}
	return d.dijkstraItems[destination].Distance
}

func (d *Dijkstra) GetPath(origin, destination graph.NodeId) []graph.NodeId {
	path := make([]graph.NodeId, 0) // by default, a non-existing path is an empty slice
	if !d.settled[destination] || d.dijkstraItems[origin] == nil {
		return path
	}
	for nodeId := destination; nodeId != ""; nodeId = d.dijkstraItems[nodeId].Predecessor {
		path = append(path, nodeId)
	}
	slice.ReverseInPlace(path)
	return path
}

func (d *Dijkstra) GetSearchSpace() []graph.NodeId {
	settled := make([]graph.NodeId, 0, len(d.settled))
	for id := range d.settled {
		settled = append(settled, id)
	}
	sort.Strings(settled)
	return settled
}

func (d *Dijkstra) GetPqPops() int             { return d.pqPops }
func (d *Dijkstra) GetPqUpdates() int          { return d.pqUpdates }
func (d *Dijkstra) GetEdgeRelaxations() int    { return d.relaxedEdges }
func (d *Dijkstra) GetRelaxationAttempts() int { return d.relaxationAttempts }
func (d *Dijkstra) GetGraph() *graph.Graph     { return d.g }
