// Package config reads the YAML configuration shared by the command line tools.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAddress   = ":8080"
	DefaultDirectory = "configs/buildings"
	DefaultScale     = 1.0
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Buildings struct {
		Directory string `yaml:"directory"`
		Default   string `yaml:"default"`
	} `yaml:"buildings"`
	Import ImportOptions `yaml:"import"`
}

// ImportOptions control the conversion of OSM indoor data
type ImportOptions struct {
	BuildingID string  `yaml:"building-id"`
	Scale      float64 `yaml:"scale"` // floor plan units per meter
}

// Default returns the configuration used without a config file
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Read the config file. Missing values are filled with defaults.
func Read(file string) (Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	c.applyDefaults()
	if c.Import.Scale < 0 {
		return Config{}, fmt.Errorf("config: import scale must be positive, got %v", c.Import.Scale)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Buildings.Directory == "" {
		c.Buildings.Directory = DefaultDirectory
	}
	if c.Import.Scale == 0 {
		c.Import.Scale = DefaultScale
	}
}
