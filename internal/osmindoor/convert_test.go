package osmindoor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/building"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/geometry"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/indoor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// two levels joined by steps and an elevator, plus an outline way which
// is not routable
const twoLevels = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="45.4972" lon="-73.5790">
    <tag k="entrance" v="main"/>
    <tag k="name" v="Main entrance"/>
    <tag k="level" v="0"/>
  </node>
  <node id="2" lat="45.4971" lon="-73.5790">
    <tag k="level" v="0"/>
  </node>
  <node id="3" lat="45.4971" lon="-73.5788">
    <tag k="highway" v="elevator"/>
    <tag k="level" v="0;1"/>
    <tag k="name" v="Elevator"/>
  </node>
  <node id="4" lat="45.4970" lon="-73.5790">
    <tag k="level" v="0"/>
  </node>
  <node id="5" lat="45.4970" lon="-73.5790">
    <tag k="level" v="1"/>
  </node>
  <node id="6" lat="45.4971" lon="-73.5789"/>
  <node id="7" lat="45.4969" lon="-73.5789">
    <tag k="indoor" v="room"/>
    <tag k="ref" v="120"/>
  </node>
  <way id="10">
    <nd ref="1"/><nd ref="2"/><nd ref="3"/>
    <tag k="highway" v="corridor"/>
    <tag k="level" v="0"/>
  </way>
  <way id="11">
    <nd ref="2"/><nd ref="4"/>
    <tag k="indoor" v="corridor"/>
    <tag k="level" v="0"/>
  </way>
  <way id="12">
    <nd ref="4"/><nd ref="5"/>
    <tag k="highway" v="steps"/>
  </way>
  <way id="13">
    <nd ref="5"/><nd ref="6"/><nd ref="7"/>
    <tag k="highway" v="corridor"/>
    <tag k="level" v="1"/>
  </way>
  <way id="14">
    <nd ref="6"/><nd ref="3"/>
    <tag k="highway" v="corridor"/>
    <tag k="level" v="1"/>
  </way>
  <way id="15">
    <nd ref="1"/><nd ref="2"/><nd ref="4"/><nd ref="1"/>
    <tag k="building" v="yes"/>
  </way>
</osm>`

func convertTwoLevels(t *testing.T, opts Options) building.NavConfig {
	data, err := ReadXML(strings.NewReader(twoLevels))
	require.NoError(t, err)
	cfg, err := Convert(data, opts)
	require.NoError(t, err)
	return cfg
}

func nodeIds(nodes []graph.Node) []graph.NodeId {
	ids := make([]graph.NodeId, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestReadXML(t *testing.T) {
	data, err := ReadXML(strings.NewReader(twoLevels))
	require.NoError(t, err)

	assert.Len(t, data.Nodes, 7)
	require.Len(t, data.Ways, 6)
	assert.Equal(t, []int64{1, 2, 3}, data.Ways[0].NodeIDs)
	assert.Equal(t, "corridor", data.Ways[0].Tags["highway"])
	assert.Equal(t, "0;1", data.Nodes[3].Tags["level"])
	assert.Equal(t, 45.4972, data.Nodes[1].Lat)
}

func TestConvert(t *testing.T) {
	cfg := convertTwoLevels(t, Options{BuildingID: "T"})

	assert.Equal(t, "T", cfg.BuildingID)
	require.Len(t, cfg.Floors, 2)

	ground := cfg.Floors[0]
	assert.Equal(t, "T_0", ground.FloorID)
	assert.Equal(t, []graph.NodeId{"T_0_1", "T_0_2", "T_0_3", "T_0_4"}, nodeIds(ground.Nodes))
	assert.Equal(t, []graph.Edge{
		graph.MakeEdge("T_0_1", "T_0_2", true),
		graph.MakeEdge("T_0_2", "T_0_3", true),
		graph.MakeEdge("T_0_2", "T_0_4", true),
	}, ground.Edges)

	first := cfg.Floors[1]
	assert.Equal(t, "T_1", first.FloorID)
	assert.Equal(t, []graph.NodeId{"T_1_5", "T_1_6", "T_1_7", "T_1_3"}, nodeIds(first.Nodes))
	assert.Len(t, first.Edges, 3)

	assert.Equal(t, []graph.Edge{
		graph.MakeEdge("T_0_4", "T_1_5", false),
		graph.MakeEdge("T_0_3", "T_1_3", true),
	}, cfg.InterFloorEdges)
}

func TestConvertNodes(t *testing.T) {
	cfg := convertTwoLevels(t, Options{BuildingID: "T"})
	ground, first := cfg.Floors[0], cfg.Floors[1]

	entrance := ground.Nodes[0]
	assert.Equal(t, graph.Entrance, entrance.Type)
	assert.True(t, entrance.IsEntrance)
	assert.Equal(t, "Main entrance", entrance.Label)
	require.NotNil(t, entrance.EntranceLocation)
	assert.Equal(t, 45.4972, entrance.EntranceLocation.Latitude)
	assert.Equal(t, -73.5790, entrance.EntranceLocation.Longitude)
	assert.InDelta(t, 0, entrance.X, 1e-9)
	assert.InDelta(t, 0, entrance.Y, 1e-9)

	hallway := ground.Nodes[1]
	assert.Equal(t, graph.Hallway, hallway.Type)
	assert.InDelta(t, 0, hallway.X, 1e-9)
	assert.InDelta(t, 11.12, hallway.Y, 0.01)

	elevator := ground.Nodes[2]
	assert.Equal(t, graph.Elevator, elevator.Type)
	assert.InDelta(t, 15.59, elevator.X, 0.01)
	assert.Equal(t, graph.Stairs, ground.Nodes[3].Type)

	assert.Equal(t, graph.Stairs, first.Nodes[0].Type)
	room := first.Nodes[2]
	assert.Equal(t, graph.Room, room.Type)
	assert.Equal(t, "120", room.Label)
	assert.Equal(t, graph.Elevator, first.Nodes[3].Type)
}

func TestConvertScale(t *testing.T) {
	meters := convertTwoLevels(t, Options{BuildingID: "T"})
	scaled := convertTwoLevels(t, Options{BuildingID: "T", Scale: 10})

	assert.InDelta(t, 10*meters.Floors[0].Nodes[1].Y, scaled.Floors[0].Nodes[1].Y, 1e-9)
	assert.InDelta(t, 10*meters.Floors[1].Nodes[2].X, scaled.Floors[1].Nodes[2].X, 1e-9)
}

func TestConvertedBuildingRoutes(t *testing.T) {
	s := indoor.NewMapService()
	require.NoError(t, s.LoadBuilding(convertTwoLevels(t, Options{BuildingID: "T"})))

	route, err := s.Route("T_0_1", "T_1_7")
	require.NoError(t, err)
	assert.Equal(t, "T_0_1", route.NodeIds()[0])
	assert.Equal(t, "Arrive at 120", route.Instructions[len(route.Instructions)-1])

	accessible, err := s.AccessibleRoute("T_0_1", "T_1_7")
	require.NoError(t, err)
	assert.Equal(t, []graph.NodeId{"T_0_1", "T_0_2", "T_0_3", "T_1_3", "T_1_6", "T_1_7"}, accessible.NodeIds())

	entrance, ok := s.FindClosestEntrance(geometry.MakeLatLng(45.4973, -73.5791))
	require.True(t, ok)
	assert.Equal(t, "T_0_1", entrance.ID)
}

func TestConvertErrors(t *testing.T) {
	data, err := ReadXML(strings.NewReader(twoLevels))
	require.NoError(t, err)

	_, err = Convert(data, Options{})
	assert.ErrorIs(t, err, building.ErrEmptyBuildingId)

	broken := &Data{Nodes: data.Nodes, Ways: []Way{{ID: 99, NodeIDs: []int64{1, 42}, Tags: map[string]string{"highway": "footway"}}}}
	_, err = Convert(broken, Options{BuildingID: "T"})
	assert.ErrorIs(t, err, ErrMissingNode)

	outline := &Data{Nodes: data.Nodes, Ways: data.Ways[5:]}
	_, err = Convert(outline, Options{BuildingID: "T"})
	assert.ErrorIs(t, err, ErrNoWays)
}

func TestEscalatorAndWheelchair(t *testing.T) {
	data := &Data{
		Nodes: map[int64]Node{
			1: {ID: 1, Lat: 45.5, Lon: -73.6, Tags: map[string]string{"level": "0"}},
			2: {ID: 2, Lat: 45.5001, Lon: -73.6, Tags: map[string]string{"level": "1"}},
			3: {ID: 3, Lat: 45.5001, Lon: -73.6001, Tags: map[string]string{"level": "1", "amenity": "toilets"}},
		},
		Ways: []Way{
			{ID: 1, NodeIDs: []int64{1, 2}, Tags: map[string]string{"highway": "steps", "conveying": "forward"}},
			{ID: 2, NodeIDs: []int64{2, 3}, Tags: map[string]string{"highway": "footway", "wheelchair": "no"}},
		},
	}
	cfg, err := Convert(data, Options{BuildingID: "E", DefaultLevel: "1"})
	require.NoError(t, err)

	assert.Equal(t, graph.Escalator, cfg.Floors[0].Nodes[0].Type)
	assert.Equal(t, graph.Escalator, cfg.Floors[1].Nodes[0].Type)
	assert.Equal(t, graph.Bathroom, cfg.Floors[1].Nodes[1].Type)
	assert.False(t, cfg.InterFloorEdges[0].Accessible)
	assert.False(t, cfg.Floors[1].Edges[0].Accessible)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "hall.osm")
	require.NoError(t, os.WriteFile(file, []byte(twoLevels), 0o644))

	data, err := ReadFile(file)
	require.NoError(t, err)
	assert.Len(t, data.Ways, 6)

	_, err = ReadFile(filepath.Join(dir, "hall.geojson"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = ReadFile(filepath.Join(dir, "missing.osm.pbf"))
	assert.Error(t, err)
}

func TestSortLevels(t *testing.T) {
	levels := []string{"10", "mezzanine", "-1", "2", "0.5"}
	sortLevels(levels)
	assert.Equal(t, []string{"-1", "0.5", "2", "10", "mezzanine"}, levels)
}
