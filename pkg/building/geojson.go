package building

import (
	"fmt"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FloorFeatures exports the nodes and edges of one floor as GeoJSON in the
// floor plan's planar coordinates. Nodes become points, edges line strings.
func FloorFeatures(cfg NavConfig, floorID string) (*geojson.FeatureCollection, error) {
	floor, ok := cfg.Floor(floorID)
	if !ok {
		return nil, fmt.Errorf("building: floor %q not in %v", floorID, cfg.BuildingID)
	}

	fc := geojson.NewFeatureCollection()
	positions := make(map[graph.NodeId]orb.Point)
	for _, n := range floor.Nodes {
		positions[n.ID] = n.Point()
		fc.Append(NodeFeature(n))
	}

	for _, e := range floor.Edges {
		a, okA := positions[e.NodeAID]
		b, okB := positions[e.NodeBID]
		if !okA || !okB {
			continue
		}
		f := geojson.NewFeature(orb.LineString{a, b})
		f.Properties["nodeAId"] = e.NodeAID
		f.Properties["nodeBId"] = e.NodeBID
		f.Properties["accessible"] = e.Accessible
		fc.Append(f)
	}
	return fc, nil
}

// NodeFeature returns the node as GeoJSON point with its attributes as properties
func NodeFeature(n graph.Node) *geojson.Feature {
	f := geojson.NewFeature(n.Point())
	f.ID = n.ID
	f.Properties["floorId"] = n.FloorID
	f.Properties["type"] = n.Type.String()
	if n.Label != "" {
		f.Properties["label"] = n.Label
	}
	if n.IsEntrance {
		f.Properties["isEntrance"] = true
	}
	return f
}

// Bounds returns the planar bounding box of a floor's nodes
func Bounds(floor FloorNavData) orb.Bound {
	if len(floor.Nodes) == 0 {
		return orb.Bound{}
	}
	bound := floor.Nodes[0].Point().Bound()
	for _, n := range floor.Nodes[1:] {
		bound = bound.Extend(n.Point())
	}
	return bound
}
