// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Broad-phase modes
const (
	BroadPhaseBrute    = "brute"
	BroadPhaseQuadTree = "quadtree"
)

// Debug renderer names
const (
	RendererNone     = "none"
	RendererTerminal = "terminal"
	RendererPNG      = "png"
)

// Config contains configuration for a collision world
type Config struct {
	// WorldSize is the side of the square world centered on the origin.
	// It bounds the quadtree; entities outside it still collide.
	WorldSize float64 `json:"worldSize" yaml:"worldSize"`
	// UpdateRate is the number of engine ticks per second for Run
	UpdateRate int `json:"updateRate" yaml:"updateRate"`
	// Workers bounds the goroutines used for brute-force pair scans
	Workers int `json:"workers" yaml:"workers"`
	// Contacts enables contact details on circle collision events
	Contacts   bool             `json:"contacts" yaml:"contacts"`
	BroadPhase BroadPhaseConfig `json:"broadPhase" yaml:"broadPhase"`
	Debug      DebugConfig      `json:"debug" yaml:"debug"`
}

// BroadPhaseConfig selects the candidate pair strategy
type BroadPhaseConfig struct {
	Mode string `json:"mode" yaml:"mode"`
	// Capacity is the number of entries per quadtree node before it splits
	Capacity int `json:"capacity" yaml:"capacity"`
}

// DebugConfig controls the debug renderers
type DebugConfig struct {
	Renderer string `json:"renderer" yaml:"renderer"`
	// Width and Height are in terminal cells or pixels, depending on Renderer
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
	// Scale is screen units per world unit
	Scale  float64 `json:"scale" yaml:"scale"`
	Output string  `json:"output" yaml:"output"`
}

// ValidationError describes an invalid configuration field
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Message)
}

// LoadConfig loads a configuration file. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON. Fields missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration in the format implied by path
func SaveConfig(config *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		WorldSize:  2000,
		UpdateRate: 60,
		Workers:    4,
		Contacts:   true,
		BroadPhase: BroadPhaseConfig{
			Mode:     BroadPhaseQuadTree,
			Capacity: 8,
		},
		Debug: DebugConfig{
			Renderer: RendererNone,
			Width:    80,
			Height:   24,
			Scale:    1,
		},
	}
}

// Validate checks every field and returns the first problem as a *ValidationError
func (c *Config) Validate() error {
	if math.IsNaN(c.WorldSize) || c.WorldSize <= 0 || c.WorldSize > 1e9 {
		return &ValidationError{Field: "WorldSize", Value: c.WorldSize, Message: "must be in (0, 1e9]"}
	}
	if c.UpdateRate < 1 || c.UpdateRate > 1000 {
		return &ValidationError{Field: "UpdateRate", Value: c.UpdateRate, Message: "must be between 1 and 1000"}
	}
	if c.Workers < 1 || c.Workers > 256 {
		return &ValidationError{Field: "Workers", Value: c.Workers, Message: "must be between 1 and 256"}
	}
	switch c.BroadPhase.Mode {
	case BroadPhaseBrute, BroadPhaseQuadTree:
	default:
		return &ValidationError{Field: "BroadPhase.Mode", Value: c.BroadPhase.Mode, Message: "must be brute or quadtree"}
	}
	if c.BroadPhase.Capacity < 1 {
		return &ValidationError{Field: "BroadPhase.Capacity", Value: c.BroadPhase.Capacity, Message: "must be at least 1"}
	}
	switch c.Debug.Renderer {
	case RendererNone, RendererTerminal, RendererPNG:
	default:
		return &ValidationError{Field: "Debug.Renderer", Value: c.Debug.Renderer, Message: "must be none, terminal or png"}
	}
	if c.Debug.Width < 1 || c.Debug.Height < 1 {
		return &ValidationError{Field: "Debug.Size", Value: fmt.Sprintf("%dx%d", c.Debug.Width, c.Debug.Height), Message: "must be positive"}
	}
	if math.IsNaN(c.Debug.Scale) || math.IsInf(c.Debug.Scale, 0) || c.Debug.Scale <= 0 {
		return &ValidationError{Field: "Debug.Scale", Value: c.Debug.Scale, Message: "must be positive and finite"}
	}
	if c.Debug.Renderer == RendererPNG && c.Debug.Output == "" {
		return &ValidationError{Field: "Debug.Output", Value: c.Debug.Output, Message: "png renderer needs an output path"}
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
