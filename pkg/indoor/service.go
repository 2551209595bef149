// Package indoor is the entry point for indoor navigation: it owns the graph
// of the loaded building, routes between its nodes and bridges outdoor
// positions to the building's entrances.
package indoor

import (
	"errors"
	"fmt"
	"math"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/internal/logging"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/building"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/geometry"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph/path"
	"golang.org/x/exp/slog"
)

var (
	// ErrUserLocationNotSet is returned when routing from the current location before it was set
	ErrUserLocationNotSet = errors.New("indoor: user location not set")

	// ErrNoEntrance is returned when the loaded building has no entrance with a known position
	ErrNoEntrance = errors.New("indoor: no entrance with location")
)

// UserLocation is the node the user is standing at
type UserLocation struct {
	NodeID  graph.NodeId `json:"nodeId" yaml:"nodeId"`
	FloorID string       `json:"floorId" yaml:"floorId"`
}

type Option func(*MapService)

// WithLogger sets the logger for building loads and failed routes
func WithLogger(logger *slog.Logger) Option {
	return func(s *MapService) {
		s.logger = logger
	}
}

// MapService holds one building at a time.
// It is meant to be used by a single owner, callers sharing it between
// goroutines have to serialize access.
type MapService struct {
	buildingID string
	graph      *graph.Graph
	finder     *path.PathFinder
	accessible *path.PathFinder // same graph, inaccessible edges skipped

	location    UserLocation
	hasLocation bool

	logger *slog.Logger
}

func NewMapService(opts ...Option) *MapService {
	s := &MapService{
		graph:  graph.NewGraph(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.finder = path.NewPathFinder(s.graph)
	s.accessible = newAccessibleFinder(s.graph)
	return s
}

func newAccessibleFinder(g *graph.Graph) *path.PathFinder {
	pf := path.NewPathFinder(g)
	pf.SetAccessibleOnly(true)
	return pf
}

// LoadBuilding replaces the current building with the given one.
// Nodes of all floors are added first, then the edges of each floor and
// finally the inter-floor edges, so the latter may reference any floor.
// If the config is inconsistent the error is returned and the previously
// loaded building stays active.
func (s *MapService) LoadBuilding(cfg building.NavConfig) error {
	g := graph.NewGraph()

	for _, floor := range cfg.Floors {
		for _, n := range floor.Nodes {
			if err := g.AddNode(n); err != nil {
				return s.loadFailed(cfg.BuildingID, err)
			}
		}
	}
	for _, floor := range cfg.Floors {
		for _, e := range floor.Edges {
			if _, err := g.AddEdge(e); err != nil {
				return s.loadFailed(cfg.BuildingID, fmt.Errorf("floor %v: %w", floor.FloorID, err))
			}
		}
	}
	for _, e := range cfg.InterFloorEdges {
		if _, err := g.AddEdge(e); err != nil {
			return s.loadFailed(cfg.BuildingID, fmt.Errorf("inter-floor: %w", err))
		}
	}

	s.buildingID = cfg.BuildingID
	s.graph = g
	s.finder = path.NewPathFinder(g)
	s.accessible = newAccessibleFinder(g)
	s.logger.Info("building loaded", "building", cfg.BuildingID, "nodes", g.NodeCount(), "arcs", g.ArcCount())
	return nil
}

func (s *MapService) loadFailed(buildingID string, err error) error {
	s.logger.Warn("building rejected", "building", buildingID, "error", err)
	return fmt.Errorf("indoor: load building %v: %w", buildingID, err)
}

// Route returns the shortest route between two nodes of the loaded building.
// Errors of the path finder are returned unchanged.
func (s *MapService) Route(start, end graph.NodeId) (path.Route, error) {
	return s.route(s.finder, start, end)
}

// AccessibleRoute is like Route but avoids edges which are not accessible
func (s *MapService) AccessibleRoute(start, end graph.NodeId) (path.Route, error) {
	return s.route(s.accessible, start, end)
}

func (s *MapService) route(pf *path.PathFinder, start, end graph.NodeId) (path.Route, error) {
	route, err := pf.FindShortestPath(start, end)
	if err != nil {
		s.logger.Debug("no route", "building", s.buildingID, "from", start, "to", end, "error", err)
		return path.Route{}, err
	}
	s.logger.Debug("route", "building", s.buildingID, "from", start, "to", end, "distance", route.TotalDistance)
	return route, nil
}

// SetUserLocation stores the node the user is at. The node is not checked
// against the graph, an unknown node fails on the next route.
func (s *MapService) SetUserLocation(location UserLocation) {
	s.location = location
	s.hasLocation = true
}

func (s *MapService) UserLocation() (UserLocation, bool) {
	return s.location, s.hasLocation
}

// ClearUserLocation forgets the stored user location
func (s *MapService) ClearUserLocation() {
	s.location = UserLocation{}
	s.hasLocation = false
}

// FindClosestEntrance returns the entrance with the smallest great-circle
// distance to the given position. Entrances without a location are ignored;
// on equal distance the entrance added first wins.
func (s *MapService) FindClosestEntrance(position geometry.LatLng) (graph.Node, bool) {
	closest := graph.Node{}
	found := false
	minDist := math.MaxFloat64
	for _, entrance := range s.graph.EntranceNodes() {
		if entrance.EntranceLocation == nil {
			continue
		}
		dist := position.DistanceTo(*entrance.EntranceLocation)
		if dist < minDist {
			minDist = dist
			closest = entrance
			found = true
		}
	}
	return closest, found
}

// RouteFromCurrentLocation routes from the stored user location
func (s *MapService) RouteFromCurrentLocation(end graph.NodeId) (path.Route, error) {
	if !s.hasLocation {
		return path.Route{}, ErrUserLocationNotSet
	}
	return s.Route(s.location.NodeID, end)
}

// RouteFromOutdoor routes from the entrance closest to an outdoor position
func (s *MapService) RouteFromOutdoor(position geometry.LatLng, end graph.NodeId) (path.Route, error) {
	entrance, ok := s.FindClosestEntrance(position)
	if !ok {
		return path.Route{}, fmt.Errorf("%w in building %q", ErrNoEntrance, s.buildingID)
	}
	return s.Route(entrance.ID, end)
}

func (s *MapService) BuildingID() string {
	return s.buildingID
}

func (s *MapService) Graph() *graph.Graph {
	return s.graph
}
