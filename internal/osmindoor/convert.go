package osmindoor

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/building"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/geometry"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph"
	"github.com/paulmach/orb"
)

var (
	ErrMissingNode = errors.New("osmindoor: way references missing node")
	ErrNoWays      = errors.New("osmindoor: no routable ways")
)

const metersPerDegree = geometry.EarthRadius * math.Pi / 180

// Options control the conversion
type Options struct {
	BuildingID   string
	Scale        float64 // floor plan units per meter, 1 if zero
	DefaultLevel string  // level of untagged nodes, "0" if empty
}

var routableHighways = map[string]bool{
	"corridor": true,
	"footway":  true,
	"path":     true,
	"steps":    true,
}

func isRoutable(tags map[string]string) bool {
	return routableHighways[tags["highway"]] || tags["indoor"] == "corridor"
}

type converter struct {
	data   *Data
	opts   Options
	origin orb.Point // top left corner (lon, lat) of the routable nodes
	cosLat float64

	nodes  map[graph.NodeId]graph.Node
	order  []graph.NodeId
	levels map[int64][]string // levels each OSM node is used on

	floorEdges map[string][]graph.Edge
	interFloor []graph.Edge
	seen       map[[2]graph.NodeId]bool
}

// Convert builds the navigation config of a building from the routable ways
// of an extract. Every level becomes a floor "<building>_<level>"; nodes get
// the id "<floor>_<osm id>" and planar coordinates in meters (times the
// scale) from the top left corner of the data, y pointing south.
//
// Ways between nodes on different levels (steps) become inter-floor edges.
// Nodes tagged with several levels (elevators) are linked across their levels.
// Steps, escalators and ways tagged wheelchair=no are not accessible.
func Convert(data *Data, opts Options) (building.NavConfig, error) {
	if opts.BuildingID == "" {
		return building.NavConfig{}, building.ErrEmptyBuildingId
	}
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	if opts.DefaultLevel == "" {
		opts.DefaultLevel = "0"
	}

	ways := make([]Way, 0)
	for _, w := range data.Ways {
		if isRoutable(w.Tags) && len(w.NodeIDs) > 1 {
			ways = append(ways, w)
		}
	}
	if len(ways) == 0 {
		return building.NavConfig{}, ErrNoWays
	}

	c := &converter{
		data:       data,
		opts:       opts,
		nodes:      make(map[graph.NodeId]graph.Node),
		levels:     make(map[int64][]string),
		floorEdges: make(map[string][]graph.Edge),
		seen:       make(map[[2]graph.NodeId]bool),
	}
	if err := c.computeOrigin(ways); err != nil {
		return building.NavConfig{}, err
	}
	for _, w := range ways {
		c.addWay(w)
	}
	c.linkLevels()

	cfg := c.config()
	if err := cfg.Validate(); err != nil {
		return building.NavConfig{}, err
	}
	return cfg, nil
}

func (c *converter) computeOrigin(ways []Way) error {
	points := make(orb.MultiPoint, 0)
	for _, w := range ways {
		for _, ref := range w.NodeIDs {
			n, ok := c.data.Nodes[ref]
			if !ok {
				return fmt.Errorf("%w: way %d, node %d", ErrMissingNode, w.ID, ref)
			}
			points = append(points, orb.Point{n.Lon, n.Lat})
		}
	}
	bound := points.Bound()
	c.origin = orb.Point{bound.Min.Lon(), bound.Max.Lat()}
	c.cosLat = math.Cos(bound.Center().Lat() * math.Pi / 180)
	return nil
}

// project to planar coordinates relative to the origin
func (c *converter) project(n Node) (float64, float64) {
	x := (n.Lon - c.origin.Lon()) * metersPerDegree * c.cosLat
	y := (c.origin.Lat() - n.Lat) * metersPerDegree
	return x * c.opts.Scale, y * c.opts.Scale
}

func (c *converter) floorID(level string) string {
	return c.opts.BuildingID + "_" + level
}

func nodeID(floorID string, osmID int64) graph.NodeId {
	return floorID + "_" + strconv.FormatInt(osmID, 10)
}

func (c *converter) addWay(w Way) {
	wayLevel := singleLevel(w.Tags["level"])
	conveying := w.Tags["conveying"] != "" && w.Tags["conveying"] != "no"
	steps := w.Tags["highway"] == "steps"
	accessible := !steps && !conveying && w.Tags["wheelchair"] != "no"

	var prev graph.NodeId
	for i, ref := range w.NodeIDs {
		n := c.data.Nodes[ref]
		level := c.nodeLevel(n, wayLevel)
		id := c.addNode(n, level)

		// hallway nodes on steps are stair landings
		if node := c.nodes[id]; node.Type == graph.Hallway && (steps || conveying) {
			node.Type = graph.Stairs
			if conveying {
				node.Type = graph.Escalator
			}
			c.nodes[id] = node
		}

		if i > 0 {
			c.addEdge(prev, id, accessible)
		}
		prev = id
	}
}

// nodeLevel picks the level of a node on a way: its own level if it has
// exactly one, the way's level if the node is on several, the default
// otherwise.
func (c *converter) nodeLevel(n Node, wayLevel string) string {
	levels := splitLevels(n.Tags["level"])
	switch {
	case len(levels) == 1:
		return levels[0]
	case len(levels) > 1:
		for _, l := range levels {
			if l == wayLevel {
				return l
			}
		}
		return levels[0]
	case wayLevel != "":
		return wayLevel
	default:
		return c.opts.DefaultLevel
	}
}

func (c *converter) addNode(n Node, level string) graph.NodeId {
	floor := c.floorID(level)
	id := nodeID(floor, n.ID)
	if _, exists := c.nodes[id]; exists {
		return id
	}

	x, y := c.project(n)
	node := graph.Node{
		ID:      id,
		FloorID: floor,
		X:       x,
		Y:       y,
		Type:    nodeType(n.Tags),
		Label:   label(n.Tags),
	}
	if entrance, ok := n.Tags["entrance"]; ok && entrance != "no" {
		node.Type = graph.Entrance
		node.IsEntrance = true
		node.EntranceLocation = geometry.NewLatLng(n.Lat, n.Lon)
	}

	c.nodes[id] = node
	c.order = append(c.order, id)
	c.levels[n.ID] = append(c.levels[n.ID], level)
	return id
}

func (c *converter) addEdge(a, b graph.NodeId, accessible bool) {
	if a == b {
		return
	}
	key := [2]graph.NodeId{a, b}
	if b < a {
		key = [2]graph.NodeId{b, a}
	}
	if c.seen[key] {
		return
	}
	c.seen[key] = true

	e := graph.MakeEdge(a, b, accessible)
	floorA, floorB := c.nodes[a].FloorID, c.nodes[b].FloorID
	if floorA == floorB {
		c.floorEdges[floorA] = append(c.floorEdges[floorA], e)
	} else {
		c.interFloor = append(c.interFloor, e)
	}
}

// linkLevels connects the copies of nodes used on more than one level.
// Only elevators are accessible.
func (c *converter) linkLevels() {
	ids := make([]int64, 0)
	for id, levels := range c.levels {
		if len(levels) > 1 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		levels := append([]string(nil), c.levels[id]...)
		sortLevels(levels)
		for i := 1; i < len(levels); i++ {
			a := nodeID(c.floorID(levels[i-1]), id)
			b := nodeID(c.floorID(levels[i]), id)
			c.addEdge(a, b, c.nodes[a].Type == graph.Elevator)
		}
	}
}

func (c *converter) config() building.NavConfig {
	byFloor := make(map[string][]graph.Node)
	levels := make([]string, 0)
	for _, id := range c.order {
		n := c.nodes[id]
		if _, ok := byFloor[n.FloorID]; !ok {
			levels = append(levels, strings.TrimPrefix(n.FloorID, c.opts.BuildingID+"_"))
		}
		byFloor[n.FloorID] = append(byFloor[n.FloorID], n)
	}
	sortLevels(levels)

	cfg := building.NavConfig{
		BuildingID:      c.opts.BuildingID,
		Floors:          make([]building.FloorNavData, 0, len(levels)),
		InterFloorEdges: c.interFloor,
	}
	for _, level := range levels {
		floor := c.floorID(level)
		edges := c.floorEdges[floor]
		if edges == nil {
			edges = make([]graph.Edge, 0)
		}
		cfg.Floors = append(cfg.Floors, building.FloorNavData{FloorID: floor, Nodes: byFloor[floor], Edges: edges})
	}
	if cfg.InterFloorEdges == nil {
		cfg.InterFloorEdges = make([]graph.Edge, 0)
	}
	return cfg
}

func nodeType(tags map[string]string) graph.NodeType {
	switch {
	case tags["highway"] == "elevator":
		return graph.Elevator
	case tags["stairs"] == "yes":
		return graph.Stairs
	case tags["amenity"] == "toilets":
		return graph.Bathroom
	case tags["indoor"] == "room" || tags["room"] != "":
		return graph.Room
	default:
		return graph.Hallway
	}
}

func label(tags map[string]string) string {
	if name := tags["name"]; name != "" {
		return name
	}
	return tags["ref"]
}

// splitLevels splits a level tag like "0;1;2"
func splitLevels(tag string) []string {
	levels := make([]string, 0)
	for _, l := range strings.Split(tag, ";") {
		if l = strings.TrimSpace(l); l != "" {
			levels = append(levels, l)
		}
	}
	return levels
}

func singleLevel(tag string) string {
	levels := splitLevels(tag)
	if len(levels) != 1 {
		return ""
	}
	return levels[0]
}

// sortLevels orders numeric levels by value and puts the others after them
func sortLevels(levels []string) {
	sort.SliceStable(levels, func(i, j int) bool {
		a, errA := strconv.ParseFloat(levels[i], 64)
		b, errB := strconv.ParseFloat(levels[j], 64)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return levels[i] < levels[j]
		}
	})
}
