// SPDX-License-Identifier: MIT

package navapi

import (
	"context"
	"net/http"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/building"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/geometry"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/indoor"
)

// NavigationApiRouter defines the required methods for binding the api requests to a responses for the NavigationApi
// The NavigationApiRouter implementation should parse necessary information from the http request,
// pass the data to a NavigationApiServicer to perform the required actions, then write the service results to the http response.
type NavigationApiRouter interface {
	ListBuildings(http.ResponseWriter, *http.Request)
	ActivateBuilding(http.ResponseWriter, *http.Request)
	LoadBuilding(http.ResponseWriter, *http.Request)
	GetCurrentBuilding(http.ResponseWriter, *http.Request)
	GetFloorGeoJSON(http.ResponseWriter, *http.Request)
	GetNodes(http.ResponseWriter, *http.Request)
	ComputeRoute(http.ResponseWriter, *http.Request)
	ComputeRouteGeoJSON(http.ResponseWriter, *http.Request)
	SetLocation(http.ResponseWriter, *http.Request)
	GetLocation(http.ResponseWriter, *http.Request)
	RouteFromLocation(http.ResponseWriter, *http.Request)
	GetClosestEntrance(http.ResponseWriter, *http.Request)
	RouteFromOutdoor(http.ResponseWriter, *http.Request)
}

// NavigationApiServicer defines the api actions for the NavigationApi service
type NavigationApiServicer interface {
	ListBuildings(context.Context) (ImplResponse, error)
	ActivateBuilding(context.Context, string) (ImplResponse, error)
	LoadBuilding(context.Context, string, building.NavConfig) (ImplResponse, error)
	GetCurrentBuilding(context.Context) (ImplResponse, error)
	GetFloorGeoJSON(context.Context, string) (ImplResponse, error)
	GetNodes(context.Context, string) (ImplResponse, error)
	ComputeRoute(context.Context, RouteRequest) (ImplResponse, error)
	ComputeRouteGeoJSON(context.Context, RouteRequest) (ImplResponse, error)
	SetLocation(context.Context, indoor.UserLocation) (ImplResponse, error)
	GetLocation(context.Context) (ImplResponse, error)
	RouteFromLocation(context.Context, LocationRouteRequest) (ImplResponse, error)
	GetClosestEntrance(context.Context, geometry.LatLng) (ImplResponse, error)
	RouteFromOutdoor(context.Context, OutdoorRouteRequest) (ImplResponse, error)
}
