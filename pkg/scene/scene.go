// Package scene loads collision worlds from YAML or JSON documents.
package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-canvas/pkg/engine"
	"github.com/opd-ai/go-canvas/pkg/entity"
	"github.com/opd-ai/go-canvas/pkg/physics"
	"github.com/opd-ai/go-canvas/pkg/validation"
)

// Format is a scene document encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Collider shapes
const (
	ShapeRect   = "rect"
	ShapeCircle = "circle"
)

var (
	// ErrUnknownFormat is returned for file extensions other than .yaml, .yml and .json
	ErrUnknownFormat = errors.New("unknown scene format")
	// ErrInvalidScene wraps every problem reported by Validate
	ErrInvalidScene = errors.New("invalid scene")
)

// Vec is a 2D value in a scene file
type Vec struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v Vec) vector() physics.Vector2D {
	return physics.Vector2D{X: v.X, Y: v.Y}
}

// Size is a width and height in a scene file
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Collider describes a rect or circle collider. Width and Height apply to
// rects, Radius to circles.
type Collider struct {
	Shape  string  `json:"shape" yaml:"shape"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Radius float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	Offset Vec     `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// Entity describes one entity. An empty name is replaced by a uuid on Build.
type Entity struct {
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Tags     []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Position Vec       `json:"position" yaml:"position"`
	Rotation float64   `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Size     Size      `json:"size,omitempty" yaml:"size,omitempty"`
	Collider *Collider `json:"collider,omitempty" yaml:"collider,omitempty"`
	Velocity Vec       `json:"velocity,omitempty" yaml:"velocity,omitempty"`
	Spin     float64   `json:"spin,omitempty" yaml:"spin,omitempty"`
}

// Document is a whole scene
type Document struct {
	Entities []Entity `json:"entities" yaml:"entities"`
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%q: %w", path, ErrUnknownFormat)
	}
}

// Load decodes and validates a document. Input larger than
// validation.MaxSceneSize is rejected.
func Load(r io.Reader, format Format) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, validation.MaxSceneSize+1))
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	if err := validation.ValidateSceneSize(int64(len(data))); err != nil {
		return nil, err
	}

	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	// an empty document is an empty scene
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s scene: %w", format, err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFile loads a scene file, choosing the format by extension
func LoadFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return Load(f, format)
}

// Validate checks names, tags, numbers and colliders of every entity
func (d *Document) Validate() error {
	seen := make(map[string]int, len(d.Entities))
	for i, def := range d.Entities {
		if err := def.validate(); err != nil {
			return fmt.Errorf("%w: entities[%d]: %w", ErrInvalidScene, i, err)
		}
		if def.Name == "" {
			continue
		}
		name, _ := validation.ValidateEntityName(def.Name)
		if first, dup := seen[name]; dup {
			return fmt.Errorf("%w: entities[%d]: name %q already used by entities[%d]", ErrInvalidScene, i, name, first)
		}
		seen[name] = i
	}
	return nil
}

func (s Entity) validate() error {
	if s.Name != "" {
		if _, err := validation.ValidateEntityName(s.Name); err != nil {
			return err
		}
	}
	if _, err := validation.ValidateTags(s.Tags); err != nil {
		return err
	}
	if err := validation.ValidateFinite("position", s.Position.X, s.Position.Y); err != nil {
		return err
	}
	if err := validation.ValidateFinite("rotation", s.Rotation); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("size", s.Size.Width, s.Size.Height); err != nil {
		return err
	}
	if err := validation.ValidateFinite("velocity", s.Velocity.X, s.Velocity.Y); err != nil {
		return err
	}
	if err := validation.ValidateFinite("spin", s.Spin); err != nil {
		return err
	}
	if s.Collider == nil {
		return nil
	}
	if err := validation.ValidateFinite("collider offset", s.Collider.Offset.X, s.Collider.Offset.Y); err != nil {
		return err
	}
	switch s.Collider.Shape {
	case ShapeRect:
		return validation.ValidateNonNegative("collider size", s.Collider.Width, s.Collider.Height)
	case ShapeCircle:
		return validation.ValidateNonNegative("collider radius", s.Collider.Radius)
	default:
		return fmt.Errorf("unknown collider shape %q", s.Collider.Shape)
	}
}

// NewEntity builds the runtime entity described by s
func (s Entity) NewEntity() (*entity.Entity, error) {
	name := s.Name
	if name == "" {
		name = uuid.NewString()
	}
	e := entity.New(name, s.Tags...)
	e.SetPosition(s.Position.vector())
	e.SetRotation(s.Rotation)
	e.Size = physics.RectSize{Width: s.Size.Width, Height: s.Size.Height}
	e.Motion = entity.Motion{Velocity: s.Velocity.vector(), Spin: s.Spin}

	if s.Collider == nil {
		return e, nil
	}
	var (
		c   *physics.Collider
		err error
	)
	offset := s.Collider.Offset.vector()
	switch s.Collider.Shape {
	case ShapeRect:
		c, err = physics.NewRectCollider(physics.RectSize{Width: s.Collider.Width, Height: s.Collider.Height}, offset)
	case ShapeCircle:
		c, err = physics.NewCircleCollider(s.Collider.Radius, offset)
	default:
		err = fmt.Errorf("unknown collider shape %q", s.Collider.Shape)
	}
	if err != nil {
		return nil, fmt.Errorf("entity %q: %w", name, err)
	}
	e.AttachCollider(c)
	return e, nil
}

// Build spawns every entity of the document into eng, in document order.
// It stops at the first entity that can not be spawned.
func (d *Document) Build(eng *engine.Engine) error {
	for i, def := range d.Entities {
		e, err := def.NewEntity()
		if err != nil {
			return fmt.Errorf("build entities[%d]: %w", i, err)
		}
		if err := eng.Spawn(e); err != nil {
			return fmt.Errorf("build entities[%d]: %w", i, err)
		}
	}
	return nil
}
