package indoor

import (
	"bytes"
	"testing"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/internal/logging"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/building"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/geometry"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func hallConfig(t *testing.T) building.NavConfig {
	cfg, err := building.LoadFile("../../configs/buildings/hall.yaml")
	require.NoError(t, err)
	return cfg
}

func hallService(t *testing.T) *MapService {
	s := NewMapService()
	require.NoError(t, s.LoadBuilding(hallConfig(t)))
	return s
}

func entranceNode(id string, lat, lng float64) graph.Node {
	return graph.Node{ID: id, FloorID: "F1", Type: graph.Entrance, IsEntrance: true, EntranceLocation: geometry.NewLatLng(lat, lng)}
}

func TestLoadBuilding(t *testing.T) {
	s := hallService(t)
	assert.Equal(t, "H", s.BuildingID())
	assert.Equal(t, 18, s.Graph().NodeCount())
	assert.Equal(t, 2*(5+3+10+4), s.Graph().ArcCount())
}

func TestRouteAcrossFloors(t *testing.T) {
	s := hallService(t)

	route, err := s.Route("H_1_E1", "H_7_R1")
	require.NoError(t, err)
	assert.Equal(t, []graph.NodeId{"H_1_E1", "H_1_N1", "H_1_N2", "H_1_stairs", "H_7_stairs", "H_7_N1", "H_7_R1"}, route.NodeIds())
	assert.Equal(t, []string{"H_1", "H_7"}, route.Floors())
	assert.Equal(t, []string{
		"Start at Main entrance",
		"Continue towards Stairs",
		"Continue towards Stairs",
		"Arrive at H-720",
	}, route.Instructions)

	accessible, err := s.AccessibleRoute("H_1_E1", "H_7_R1")
	require.NoError(t, err)
	assert.Equal(t, []graph.NodeId{"H_1_E1", "H_1_N1", "H_1_N2", "H_1_elevator", "H_7_elevator", "H_7_N1", "H_7_R1"}, accessible.NodeIds())
	assert.Greater(t, accessible.TotalDistance, route.TotalDistance)

	// the accessible search must not change the default one
	again, err := s.Route("H_1_E1", "H_7_R1")
	require.NoError(t, err)
	assert.Equal(t, route, again)
}

func TestRouteErrors(t *testing.T) {
	s := NewMapService()
	_, err := s.Route("H_1_E1", "H_7_R1")
	assert.ErrorIs(t, err, path.ErrNodeNotFound)

	cfg := hallConfig(t)
	cfg.InterFloorEdges = nil
	require.NoError(t, s.LoadBuilding(cfg))

	_, err = s.Route("H_1_E1", "H_8_N5")
	assert.ErrorIs(t, err, path.ErrNoPath)
	assert.NotErrorIs(t, err, path.ErrNodeNotFound)

	_, err = s.Route("H_1_E1", "H_9_N1")
	assert.ErrorIs(t, err, path.ErrNodeNotFound)
}

func TestLoadBuildingIsIdempotent(t *testing.T) {
	s := hallService(t)
	first, err := s.Route("H_8_N5", "H_1_E2")
	require.NoError(t, err)

	require.NoError(t, s.LoadBuilding(hallConfig(t)))
	second, err := s.Route("H_8_N5", "H_1_E2")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLoadBuildingReplacesGraph(t *testing.T) {
	s := hallService(t)

	other := building.NavConfig{
		BuildingID: "MB",
		Floors: []building.FloorNavData{{
			FloorID: "F1",
			Nodes: []graph.Node{
				entranceNode("MB_E", 45.4955, -73.5790),
				{ID: "MB_R", FloorID: "F1", X: 3, Y: 4, Type: graph.Room},
			},
			Edges: []graph.Edge{graph.MakeEdge("MB_E", "MB_R", true)},
		}},
	}
	require.NoError(t, s.LoadBuilding(other))

	assert.Equal(t, "MB", s.BuildingID())
	assert.Equal(t, 2, s.Graph().NodeCount())
	_, err := s.Route("H_1_E1", "H_7_R1")
	assert.ErrorIs(t, err, path.ErrNodeNotFound)

	route, err := s.Route("MB_E", "MB_R")
	require.NoError(t, err)
	assert.Equal(t, 5.0, route.TotalDistance)
}

func TestFailedLoadKeepsBuilding(t *testing.T) {
	s := hallService(t)

	dangling := hallConfig(t)
	dangling.BuildingID = "H2"
	dangling.InterFloorEdges = append(dangling.InterFloorEdges, graph.MakeEdge("H_8_elevator", "H_9_elevator", true))
	err := s.LoadBuilding(dangling)
	require.ErrorIs(t, err, graph.ErrMissingNodeReference)
	assert.Contains(t, err.Error(), "H_9_elevator")

	duplicate := hallConfig(t)
	duplicate.BuildingID = "H3"
	duplicate.Floors[1].Nodes = append(duplicate.Floors[1].Nodes, duplicate.Floors[0].Nodes[0])
	assert.ErrorIs(t, s.LoadBuilding(duplicate), graph.ErrDuplicateNode)

	assert.Equal(t, "H", s.BuildingID())
	_, err = s.Route("H_1_E1", "H_8_N6")
	assert.NoError(t, err)
}

func TestFindClosestEntrance(t *testing.T) {
	s := hallService(t)

	entrance, ok := s.FindClosestEntrance(geometry.MakeLatLng(45.497163, -73.578857))
	require.True(t, ok)
	assert.Equal(t, "H_1_E1", entrance.ID)

	entrance, ok = s.FindClosestEntrance(geometry.MakeLatLng(45.49745, -73.57960))
	require.True(t, ok)
	assert.Equal(t, "H_1_E2", entrance.ID)
}

func TestFindClosestEntranceTies(t *testing.T) {
	s := NewMapService()
	withoutLocation := entranceNode("A", 0, 0)
	withoutLocation.EntranceLocation = nil
	require.NoError(t, s.LoadBuilding(building.NavConfig{
		BuildingID: "T",
		Floors: []building.FloorNavData{{
			FloorID: "F1",
			Nodes: []graph.Node{
				withoutLocation,
				entranceNode("C", 45.5, -73.6),
				entranceNode("B", 45.5, -73.6),
			},
		}},
	}))

	entrance, ok := s.FindClosestEntrance(geometry.MakeLatLng(45.4, -73.5))
	require.True(t, ok)
	assert.Equal(t, "C", entrance.ID)
}

func TestNoEntrance(t *testing.T) {
	s := NewMapService()
	_, ok := s.FindClosestEntrance(geometry.MakeLatLng(45.5, -73.6))
	assert.False(t, ok)

	_, err := s.RouteFromOutdoor(geometry.MakeLatLng(45.5, -73.6), "X")
	assert.ErrorIs(t, err, ErrNoEntrance)
}

func TestRouteFromOutdoor(t *testing.T) {
	s := hallService(t)

	route, err := s.RouteFromOutdoor(geometry.MakeLatLng(45.49745, -73.57960), "H_8_N5")
	require.NoError(t, err)
	ids := route.NodeIds()
	assert.Equal(t, "H_1_E2", ids[0])
	assert.Equal(t, "H_8_N5", ids[len(ids)-1])
	assert.Equal(t, "Start at Mackay entrance", route.Instructions[0])
	assert.Equal(t, "Arrive at your destination", route.Instructions[len(route.Instructions)-1])
}

func TestUserLocation(t *testing.T) {
	s := hallService(t)

	_, ok := s.UserLocation()
	assert.False(t, ok)
	_, err := s.RouteFromCurrentLocation("H_8_N6")
	assert.ErrorIs(t, err, ErrUserLocationNotSet)

	s.SetUserLocation(UserLocation{NodeID: "H_1_E1", FloorID: "H_1"})
	s.SetUserLocation(UserLocation{NodeID: "H_7_R1", FloorID: "H_7"})
	location, ok := s.UserLocation()
	require.True(t, ok)
	assert.Equal(t, UserLocation{NodeID: "H_7_R1", FloorID: "H_7"}, location)

	route, err := s.RouteFromCurrentLocation("H_8_N6")
	require.NoError(t, err)
	assert.Equal(t, "H_7_R1", route.NodeIds()[0])
	assert.Equal(t, []string{"H_7", "H_8"}, route.Floors())

	direct, err := s.Route("H_7_R1", "H_8_N6")
	require.NoError(t, err)
	assert.Equal(t, direct, route)

	// the location survives a reload
	require.NoError(t, s.LoadBuilding(hallConfig(t)))
	_, ok = s.UserLocation()
	assert.True(t, ok)

	s.ClearUserLocation()
	_, err = s.RouteFromCurrentLocation("H_8_N6")
	assert.ErrorIs(t, err, ErrUserLocationNotSet)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	s := NewMapService(WithLogger(logging.NewLogger(&buf, slog.LevelDebug)))
	require.NoError(t, s.LoadBuilding(hallConfig(t)))
	_, err := s.Route("H_1_E1", "nowhere")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "building loaded building=H nodes=18 arcs=44")
	assert.Contains(t, out, "no route building=H from=H_1_E1 to=nowhere")
}
