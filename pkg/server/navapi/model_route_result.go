// SPDX-License-Identifier: MIT

package navapi

import (
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph/path"
)

type RouteResult struct {
	BuildingID    string       `json:"buildingId"`
	Nodes         []graph.Node `json:"nodes"`
	TotalDistance float64      `json:"totalDistance"`
	Instructions  []string     `json:"instructions"`
	Floors        []string     `json:"floors"`
}

func newRouteResult(buildingID string, route path.Route) RouteResult {
	return RouteResult{
		BuildingID:    buildingID,
		Nodes:         route.Nodes,
		TotalDistance: route.TotalDistance,
		Instructions:  route.Instructions,
		Floors:        route.Floors(),
	}
}
