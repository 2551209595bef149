// SPDX-License-Identifier: MIT

package navapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/building"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/geometry"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/indoor"
	"github.com/gorilla/mux"
)

// NavigationApiController binds http requests to an api service and writes the service results to the http response
type NavigationApiController struct {
	service      NavigationApiServicer
	errorHandler ErrorHandler
}

// NavigationApiOption for how the controller is set up.
type NavigationApiOption func(*NavigationApiController)

// WithNavigationApiErrorHandler inject ErrorHandler into controller
func WithNavigationApiErrorHandler(h ErrorHandler) NavigationApiOption {
	return func(c *NavigationApiController) {
		c.errorHandler = h
	}
}

// NewNavigationApiController creates a navigation api controller
func NewNavigationApiController(s NavigationApiServicer, opts ...NavigationApiOption) *NavigationApiController {
	controller := &NavigationApiController{
		service:      s,
		errorHandler: DefaultErrorHandler,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// Routes returns all of the api route for the NavigationApiController
func (c *NavigationApiController) Routes() Routes {
	return Routes{
		{"ListBuildings", strings.ToUpper("Get"), "/buildings", c.ListBuildings},
		{"GetCurrentBuilding", strings.ToUpper("Get"), "/buildings/current", c.GetCurrentBuilding},
		{"GetFloorGeoJSON", strings.ToUpper("Get"), "/buildings/current/floors/{floorId}", c.GetFloorGeoJSON},
		{"LoadBuilding", strings.ToUpper("Put"), "/buildings/{buildingId}", c.LoadBuilding},
		{"ActivateBuilding", strings.ToUpper("Post"), "/buildings/{buildingId}/activate", c.ActivateBuilding},
		{"GetNodes", strings.ToUpper("Get"), "/nodes", c.GetNodes},
		{"ComputeRoute", strings.ToUpper("Post"), "/routes", c.ComputeRoute},
		{"ComputeRouteGeoJSON", strings.ToUpper("Post"), "/routes/geojson", c.ComputeRouteGeoJSON},
		{"RouteFromLocation", strings.ToUpper("Post"), "/routes/from-location", c.RouteFromLocation},
		{"RouteFromOutdoor", strings.ToUpper("Post"), "/routes/from-outdoor", c.RouteFromOutdoor},
		{"SetLocation", strings.ToUpper("Put"), "/location", c.SetLocation},
		{"GetLocation", strings.ToUpper("Get"), "/location", c.GetLocation},
		{"GetClosestEntrance", strings.ToUpper("Get"), "/entrances/closest", c.GetClosestEntrance},
	}
}

// decodeBody decodes the json request body into v, unknown fields are an error
func decodeBody(r io.Reader, v interface{}) error {
	d := json.NewDecoder(r)
	d.DisallowUnknownFields()
	if err := d.Decode(v); err != nil {
		return &ParsingError{Err: err}
	}
	return nil
}

func (c *NavigationApiController) respond(w http.ResponseWriter, r *http.Request, result ImplResponse, err error) {
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// ListBuildings - ids of the known buildings and the loaded one
func (c *NavigationApiController) ListBuildings(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.ListBuildings(r.Context())
	c.respond(w, r, result, err)
}

// ActivateBuilding - load one of the known buildings
func (c *NavigationApiController) ActivateBuilding(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.ActivateBuilding(r.Context(), mux.Vars(r)["buildingId"])
	c.respond(w, r, result, err)
}

// LoadBuilding - load the building given in the body
func (c *NavigationApiController) LoadBuilding(w http.ResponseWriter, r *http.Request) {
	cfg := building.NavConfig{}
	if err := decodeBody(r.Body, &cfg); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.LoadBuilding(r.Context(), mux.Vars(r)["buildingId"], cfg)
	c.respond(w, r, result, err)
}

func (c *NavigationApiController) GetCurrentBuilding(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetCurrentBuilding(r.Context())
	c.respond(w, r, result, err)
}

// GetFloorGeoJSON - nodes and edges of a floor of the loaded building
func (c *NavigationApiController) GetFloorGeoJSON(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetFloorGeoJSON(r.Context(), mux.Vars(r)["floorId"])
	c.respond(w, r, result, err)
}

// GetNodes - all nodes, or the nodes of the floor given as query parameter
func (c *NavigationApiController) GetNodes(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetNodes(r.Context(), r.URL.Query().Get("floor"))
	c.respond(w, r, result, err)
}

// ComputeRoute - Compute a new route
func (c *NavigationApiController) ComputeRoute(w http.ResponseWriter, r *http.Request) {
	routeRequestParam := RouteRequest{}
	if err := decodeBody(r.Body, &routeRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	if err := AssertRouteRequestRequired(routeRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.ComputeRoute(r.Context(), routeRequestParam)
	c.respond(w, r, result, err)
}

// ComputeRouteGeoJSON - Compute a new route as GeoJSON
func (c *NavigationApiController) ComputeRouteGeoJSON(w http.ResponseWriter, r *http.Request) {
	routeRequestParam := RouteRequest{}
	if err := decodeBody(r.Body, &routeRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	if err := AssertRouteRequestRequired(routeRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.ComputeRouteGeoJSON(r.Context(), routeRequestParam)
	c.respond(w, r, result, err)
}

func (c *NavigationApiController) SetLocation(w http.ResponseWriter, r *http.Request) {
	location := indoor.UserLocation{}
	if err := decodeBody(r.Body, &location); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	if IsZeroValue(location.NodeID) {
		c.errorHandler(w, r, &RequiredError{Field: "nodeId"}, nil)
		return
	}
	result, err := c.service.SetLocation(r.Context(), location)
	c.respond(w, r, result, err)
}

func (c *NavigationApiController) GetLocation(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetLocation(r.Context())
	c.respond(w, r, result, err)
}

// RouteFromLocation - route from the stored user location
func (c *NavigationApiController) RouteFromLocation(w http.ResponseWriter, r *http.Request) {
	request := LocationRouteRequest{}
	if err := decodeBody(r.Body, &request); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	if err := AssertLocationRouteRequestRequired(request); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.RouteFromLocation(r.Context(), request)
	c.respond(w, r, result, err)
}

// GetClosestEntrance - entrance closest to the lat and lng query parameters
func (c *NavigationApiController) GetClosestEntrance(w http.ResponseWriter, r *http.Request) {
	lat, err := parseFloatParameter(r, "lat")
	if err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	lng, err := parseFloatParameter(r, "lng")
	if err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	position := geometry.MakeLatLng(lat, lng)
	if !position.Valid() {
		c.errorHandler(w, r, &ParsingError{Err: errInvalidPosition(position)}, nil)
		return
	}
	result, err := c.service.GetClosestEntrance(r.Context(), position)
	c.respond(w, r, result, err)
}

// RouteFromOutdoor - route from the entrance closest to a GPS position
func (c *NavigationApiController) RouteFromOutdoor(w http.ResponseWriter, r *http.Request) {
	request := OutdoorRouteRequest{}
	if err := decodeBody(r.Body, &request); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	if err := AssertOutdoorRouteRequestRequired(request); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.RouteFromOutdoor(r.Context(), request)
	c.respond(w, r, result, err)
}
