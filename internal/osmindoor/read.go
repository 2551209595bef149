// Package osmindoor converts indoor data mapped in OpenStreetMap (corridors,
// steps, elevators and entrances tagged with their level) into a building
// navigation config.
package osmindoor

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/paulmach/osm"
	"github.com/qedus/osmpbf"
)

var ErrUnknownFormat = errors.New("osmindoor: unknown file format")

// Node is an OSM node with its tags
type Node struct {
	ID   int64
	Lat  float64
	Lon  float64
	Tags map[string]string
}

// Way is an OSM way referencing its nodes by id
type Way struct {
	ID      int64
	NodeIDs []int64
	Tags    map[string]string
}

// Data holds the nodes and ways of an extract, ways in file order
type Data struct {
	Nodes map[int64]Node
	Ways  []Way
}

func newData() *Data {
	return &Data{
		Nodes: make(map[int64]Node),
		Ways:  make([]Way, 0),
	}
}

// ReadFile reads an .osm XML or an .osm.pbf file
func ReadFile(filename string) (*Data, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pbf":
		return ReadPBF(filename)
	case ".osm", ".xml":
		file, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return ReadXML(file)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, filename)
	}
}

func ReadXML(r io.Reader) (*Data, error) {
	var o osm.OSM
	if err := xml.NewDecoder(r).Decode(&o); err != nil {
		return nil, fmt.Errorf("osmindoor: decode xml: %w", err)
	}

	data := newData()
	for _, n := range o.Nodes {
		data.Nodes[int64(n.ID)] = Node{ID: int64(n.ID), Lat: n.Lat, Lon: n.Lon, Tags: n.Tags.Map()}
	}
	for _, w := range o.Ways {
		ids := make([]int64, 0, len(w.Nodes))
		for _, wn := range w.Nodes {
			ids = append(ids, int64(wn.ID))
		}
		data.Ways = append(data.Ways, Way{ID: int64(w.ID), NodeIDs: ids, Tags: w.Tags.Map()})
	}
	return data, nil
}

// ReadPBF reads nodes and ways of a pbf file in one pass.
// Relations are skipped.
func ReadPBF(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	err = decoder.Start(runtime.GOMAXPROCS(-1))
	if err != nil {
		return nil, err
	}

	data := newData()
	for {
		v, err := decoder.Decode()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("osmindoor: decode pbf: %w", err)
		}
		switch v := v.(type) {
		case *osmpbf.Node:
			data.Nodes[v.ID] = Node{ID: v.ID, Lat: v.Lat, Lon: v.Lon, Tags: v.Tags}
		case *osmpbf.Way:
			data.Ways = append(data.Ways, Way{ID: v.ID, NodeIDs: v.NodeIDs, Tags: v.Tags})
		}
	}
	return data, nil
}
