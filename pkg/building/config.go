// Package building holds the static navigation topology of a building as
// supplied by the data layer, and reads and writes it as YAML or JSON.
package building

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/graph"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyBuildingId = errors.New("building: building id is empty")
	ErrInvalidNode     = errors.New("building: invalid node")
	ErrInvalidEdge     = errors.New("building: invalid edge")
	ErrUnknownFormat   = errors.New("building: unknown file format")
)

// FloorNavData holds the nodes of one floor and the edges between them
type FloorNavData struct {
	FloorID string       `json:"floorId" yaml:"floorId"`
	Nodes   []graph.Node `json:"nodes" yaml:"nodes"`
	Edges   []graph.Edge `json:"edges" yaml:"edges"`
}

// NavConfig is the complete navigation topology of a building.
// InterFloorEdges connect nodes of different floors (elevators, stairs) and
// may only be resolved after the nodes of all floors are known.
type NavConfig struct {
	BuildingID      string         `json:"buildingId" yaml:"buildingId"`
	Floors          []FloorNavData `json:"floors" yaml:"floors"`
	InterFloorEdges []graph.Edge   `json:"interFloorEdges" yaml:"interFloorEdges"`
}

// Return the number of nodes over all floors
func (c NavConfig) NodeCount() int {
	count := 0
	for _, f := range c.Floors {
		count += len(f.Nodes)
	}
	return count
}

// Return the floor with the given id
func (c NavConfig) Floor(floorID string) (FloorNavData, bool) {
	for _, f := range c.Floors {
		if f.FloorID == floorID {
			return f, true
		}
	}
	return FloorNavData{}, false
}

// Validate checks the config without building a graph.
// It reports every problem found, joined into one error.
func (c NavConfig) Validate() error {
	var errs []error
	if c.BuildingID == "" {
		errs = append(errs, ErrEmptyBuildingId)
	}

	known := make(map[graph.NodeId]string)
	for _, floor := range c.Floors {
		for _, n := range floor.Nodes {
			switch {
			case n.ID == "":
				errs = append(errs, fmt.Errorf("%w: empty id on floor %v", ErrInvalidNode, floor.FloorID))
				continue
			case known[n.ID] != "":
				errs = append(errs, fmt.Errorf("%w: %v defined on %v and %v", graph.ErrDuplicateNode, n.ID, known[n.ID], floor.FloorID))
				continue
			}
			known[n.ID] = floor.FloorID

			if n.FloorID != floor.FloorID {
				errs = append(errs, fmt.Errorf("%w: %v has floor %q but is listed on %q", ErrInvalidNode, n.ID, n.FloorID, floor.FloorID))
			}
			if !finite(n.X) || !finite(n.Y) {
				errs = append(errs, fmt.Errorf("%w: %v at (%v, %v): %w", ErrInvalidNode, n.ID, n.X, n.Y, graph.ErrInvalidPosition))
			}
			if !n.Type.Valid() {
				errs = append(errs, fmt.Errorf("%w: %v has unknown type %q", ErrInvalidNode, n.ID, n.Type))
			}
			if n.EntranceLocation != nil && !n.EntranceLocation.Valid() {
				errs = append(errs, fmt.Errorf("%w: %v has entrance location %v out of range", ErrInvalidNode, n.ID, n.EntranceLocation))
			}
		}
	}

	checkEdge := func(e graph.Edge, context string) {
		for _, id := range []graph.NodeId{e.NodeAID, e.NodeBID} {
			if _, ok := known[id]; !ok {
				errs = append(errs, fmt.Errorf("%w: %v %v -> %v references %q", graph.ErrMissingNodeReference, context, e.NodeAID, e.NodeBID, id))
			}
		}
	}
	for _, floor := range c.Floors {
		for _, e := range floor.Edges {
			checkEdge(e, "edge on "+floor.FloorID)
			if known[e.NodeAID] != "" && known[e.NodeBID] != "" &&
				(known[e.NodeAID] != floor.FloorID || known[e.NodeBID] != floor.FloorID) {
				errs = append(errs, fmt.Errorf("%w: %v -> %v leaves floor %v, list it as inter-floor edge", ErrInvalidEdge, e.NodeAID, e.NodeBID, floor.FloorID))
			}
		}
	}
	for _, e := range c.InterFloorEdges {
		checkEdge(e, "inter-floor edge")
	}

	return errors.Join(errs...)
}

// Parse a config given as YAML or JSON. Unknown fields are rejected.
func Parse(data []byte) (NavConfig, error) {
	var cfg NavConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return NavConfig{}, fmt.Errorf("building: empty config")
		}
		return NavConfig{}, fmt.Errorf("building: parse config: %w", err)
	}
	return cfg, nil
}

func LoadFile(filename string) (NavConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return NavConfig{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return NavConfig{}, fmt.Errorf("%v: %w", filename, err)
	}
	return cfg, nil
}

// Load every .yaml, .yml and .json file of the directory, keyed by building id
func LoadDirectory(dir string) (map[string]NavConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	configs := make(map[string]NavConfig)
	for _, entry := range entries {
		if entry.IsDir() || !isConfigFile(entry.Name()) {
			continue
		}
		cfg, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if _, exists := configs[cfg.BuildingID]; exists {
			return nil, fmt.Errorf("building: %v defined twice in %v", cfg.BuildingID, dir)
		}
		configs[cfg.BuildingID] = cfg
	}
	return configs, nil
}

// Return the ids of the given configs, sorted
func Ids(configs map[string]NavConfig) []string {
	ids := make([]string, 0, len(configs))
	for id := range configs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Write the config in the format matching the file extension
func WriteFile(cfg NavConfig, filename string) error {
	if !isConfigFile(filename) {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(filename)) == ".json" {
		return WriteJSON(cfg, file)
	}
	return WriteYAML(cfg, file)
}

func WriteJSON(cfg NavConfig, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

func WriteYAML(cfg NavConfig, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return err
	}
	return encoder.Close()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isConfigFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
