// SPDX-License-Identifier: MIT

package navapi

import (
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/building"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph/path"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// RouteFeatures returns the route as one line string per floor followed by
// the route's nodes as points. Floors the route only touches in a single
// node get no line.
func RouteFeatures(route path.Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	var line orb.LineString
	floor := ""
	flush := func() {
		if len(line) > 1 {
			f := geojson.NewFeature(line)
			f.Properties["floorId"] = floor
			f.Properties["length"] = planar.Length(line)
			fc.Append(f)
		}
		line = nil
	}
	for _, n := range route.Nodes {
		if n.FloorID != floor {
			flush()
			floor = n.FloorID
		}
		line = append(line, n.Point())
	}
	flush()

	for i, n := range route.Nodes {
		f := building.NodeFeature(n)
		f.Properties["step"] = i
		fc.Append(f)
	}
	return fc
}
