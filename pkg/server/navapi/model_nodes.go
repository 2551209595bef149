// SPDX-License-Identifier: MIT

package navapi

import (
	"fmt"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/geometry"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph"
)

type Nodes struct {
	Nodes []graph.Node `json:"nodes"`
}

type BuildingInfo struct {
	BuildingID string   `json:"buildingId"`
	Floors     []string `json:"floors"`
	NodeCount  int      `json:"nodeCount"`
	ArcCount   int      `json:"arcCount"`
	Entrances  int      `json:"entrances"`
}

type Buildings struct {
	Current   string   `json:"current,omitempty"`
	Available []string `json:"available"`
}

type ClosestEntrance struct {
	Entrance graph.Node `json:"entrance"`
	Distance float64    `json:"distance"` // meters
}

type ErrorMessage struct {
	Message string `json:"message"`
}

func errInvalidPosition(p geometry.LatLng) error {
	return fmt.Errorf("position %v out of range", p)
}
