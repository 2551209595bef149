package graph

// Arc is one direction of an edge, stored in the adjacency list of its source node
type Arc struct {
	To         NodeId
	Weight     float64
	Accessible bool
}

func MakeArc(to NodeId, weight float64, accessible bool) Arc {
	return Arc{To: to, Weight: weight, Accessible: accessible}
}

func (a Arc) Destination() NodeId {
	return a.To
}

func (a Arc) Cost() float64 {
	return a.Weight
}
