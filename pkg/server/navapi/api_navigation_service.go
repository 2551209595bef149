// SPDX-License-Identifier: MIT

package navapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/building"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/geometry"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph/path"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/indoor"
)

var (
	errNoBuilding      = errors.New("no building loaded")
	errUnknownBuilding = errors.New("unknown building")
)

// NavigationApiService implements the NavigationApiServicer on top of a MapService.
// The MapService is not safe for concurrent use, every request holds the mutex.
type NavigationApiService struct {
	mu        sync.Mutex
	maps      *indoor.MapService
	catalogue map[string]building.NavConfig // buildings which can be activated by id
	current   building.NavConfig
}

// NewNavigationApiService creates a navigation api service.
// The catalogue may be nil.
func NewNavigationApiService(maps *indoor.MapService, catalogue map[string]building.NavConfig) *NavigationApiService {
	if catalogue == nil {
		catalogue = make(map[string]building.NavConfig)
	}
	return &NavigationApiService{maps: maps, catalogue: catalogue}
}

func (s *NavigationApiService) ListBuildings(ctx context.Context) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Response(http.StatusOK, Buildings{Current: s.current.BuildingID, Available: building.Ids(s.catalogue)}), nil
}

func (s *NavigationApiService) ActivateBuilding(ctx context.Context, buildingID string) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.catalogue[buildingID]
	if !ok {
		return Response(http.StatusNotFound, nil), fmt.Errorf("%w: %q", errUnknownBuilding, buildingID)
	}
	return s.load(cfg)
}

func (s *NavigationApiService) LoadBuilding(ctx context.Context, buildingID string, cfg building.NavConfig) (ImplResponse, error) {
	if cfg.BuildingID == "" {
		cfg.BuildingID = buildingID
	}
	if cfg.BuildingID != buildingID {
		return Response(http.StatusBadRequest, nil), fmt.Errorf("building id %q in body does not match %q", cfg.BuildingID, buildingID)
	}
	if err := cfg.Validate(); err != nil {
		return Response(http.StatusBadRequest, nil), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.load(cfg)
	if err == nil {
		s.catalogue[cfg.BuildingID] = cfg
	}
	return result, err
}

// load the config into the map service, the caller holds the lock
func (s *NavigationApiService) load(cfg building.NavConfig) (ImplResponse, error) {
	if err := s.maps.LoadBuilding(cfg); err != nil {
		return Response(http.StatusBadRequest, nil), err
	}
	s.current = cfg
	return Response(http.StatusOK, s.info()), nil
}

func (s *NavigationApiService) info() BuildingInfo {
	g := s.maps.Graph()
	floors := make([]string, 0, len(s.current.Floors))
	for _, f := range s.current.Floors {
		floors = append(floors, f.FloorID)
	}
	return BuildingInfo{
		BuildingID: s.maps.BuildingID(),
		Floors:     floors,
		NodeCount:  g.NodeCount(),
		ArcCount:   g.ArcCount(),
		Entrances:  len(g.EntranceNodes()),
	}
}

func (s *NavigationApiService) GetCurrentBuilding(ctx context.Context) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.BuildingID == "" {
		return Response(http.StatusNotFound, nil), errNoBuilding
	}
	return Response(http.StatusOK, s.info()), nil
}

func (s *NavigationApiService) GetFloorGeoJSON(ctx context.Context, floorID string) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.BuildingID == "" {
		return Response(http.StatusNotFound, nil), errNoBuilding
	}
	fc, err := building.FloorFeatures(s.current, floorID)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	return Response(http.StatusOK, fc), nil
}

func (s *NavigationApiService) GetNodes(ctx context.Context, floorID string) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := make([]graph.Node, 0)
	for _, n := range s.maps.Graph().Nodes() {
		if floorID == "" || n.FloorID == floorID {
			nodes = append(nodes, n)
		}
	}
	return Response(http.StatusOK, Nodes{Nodes: nodes}), nil
}

func (s *NavigationApiService) route(from, to string, accessible bool) (path.Route, error) {
	if accessible {
		return s.maps.AccessibleRoute(from, to)
	}
	return s.maps.Route(from, to)
}

// ComputeRoute - Compute a new route
func (s *NavigationApiService) ComputeRoute(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	route, err := s.route(routeRequest.From, routeRequest.To, routeRequest.Accessible)
	if err != nil {
		return errorResponse(err)
	}
	return Response(http.StatusOK, newRouteResult(s.maps.BuildingID(), route)), nil
}

func (s *NavigationApiService) ComputeRouteGeoJSON(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	route, err := s.route(routeRequest.From, routeRequest.To, routeRequest.Accessible)
	if err != nil {
		return errorResponse(err)
	}
	return Response(http.StatusOK, RouteFeatures(route)), nil
}

// SetLocation stores the user location. Unlike the map service the api
// rejects nodes which are not part of the loaded building.
func (s *NavigationApiService) SetLocation(ctx context.Context, location indoor.UserLocation) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.maps.Graph().Node(location.NodeID)
	if !ok {
		return Response(http.StatusNotFound, nil), fmt.Errorf("%w: %q", graph.ErrNodeNotFound, location.NodeID)
	}
	if location.FloorID == "" {
		location.FloorID = node.FloorID
	}
	if location.FloorID != node.FloorID {
		return Response(http.StatusBadRequest, nil), fmt.Errorf("node %v is on floor %v, not %v", node.ID, node.FloorID, location.FloorID)
	}
	s.maps.SetUserLocation(location)
	return Response(http.StatusOK, location), nil
}

func (s *NavigationApiService) GetLocation(ctx context.Context) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	location, ok := s.maps.UserLocation()
	if !ok {
		return Response(http.StatusNotFound, nil), indoor.ErrUserLocationNotSet
	}
	return Response(http.StatusOK, location), nil
}

func (s *NavigationApiService) RouteFromLocation(ctx context.Context, request LocationRouteRequest) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var route path.Route
	var err error
	if location, ok := s.maps.UserLocation(); ok && request.Accessible {
		route, err = s.maps.AccessibleRoute(location.NodeID, request.To)
	} else {
		route, err = s.maps.RouteFromCurrentLocation(request.To)
	}
	if err != nil {
		return errorResponse(err)
	}
	return Response(http.StatusOK, newRouteResult(s.maps.BuildingID(), route)), nil
}

func (s *NavigationApiService) GetClosestEntrance(ctx context.Context, position geometry.LatLng) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entrance, ok := s.maps.FindClosestEntrance(position)
	if !ok {
		return errorResponse(indoor.ErrNoEntrance)
	}
	return Response(http.StatusOK, ClosestEntrance{
		Entrance: entrance,
		Distance: position.DistanceTo(*entrance.EntranceLocation),
	}), nil
}

func (s *NavigationApiService) RouteFromOutdoor(ctx context.Context, request OutdoorRouteRequest) (ImplResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	route, err := s.maps.RouteFromOutdoor(request.Position, request.To)
	if err != nil {
		return errorResponse(err)
	}
	return Response(http.StatusOK, newRouteResult(s.maps.BuildingID(), route)), nil
}

// errorResponse maps the errors of the map service to status codes
func errorResponse(err error) (ImplResponse, error) {
	switch {
	case errors.Is(err, path.ErrNodeNotFound), errors.Is(err, indoor.ErrNoEntrance):
		return Response(http.StatusNotFound, nil), err
	case errors.Is(err, path.ErrNoPath):
		return Response(http.StatusUnprocessableEntity, nil), err
	case errors.Is(err, indoor.ErrUserLocationNotSet):
		return Response(http.StatusConflict, nil), err
	default:
		return Response(http.StatusInternalServerError, nil), err
	}
}
