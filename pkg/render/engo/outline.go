// pkg/render/engo/outline.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-canvas/pkg/entity"
	"github.com/opd-ai/go-canvas/pkg/physics"
)

// Outline colors
var (
	backgroundColor = color.RGBA{R: 16, G: 16, B: 24, A: 255}
	rectColor       = color.RGBA{R: 80, G: 160, B: 255, A: 255}
	circleColor     = color.RGBA{R: 255, G: 170, B: 60, A: 255}
	highlightColor  = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	markerColor     = color.RGBA{R: 240, G: 240, B: 240, A: 255}
)

const (
	borderWidth = 2
	markerSize  = 4
)

// outline is the engo entity mirroring one collider
type outline struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// OutlineSystem implements entity.Renderer by keeping one engo outline per
// entity in a common.RenderSystem. Outlines for entities that were not
// rendered during a frame are removed on Present.
type OutlineSystem struct {
	render *common.RenderSystem
	camera *CameraSystem

	outlines  map[string]*outline
	markers   map[string]*outline
	seen      map[string]bool
	highlight map[string]bool
}

// NewOutlineSystem creates an outline renderer drawing into render through
// the given camera
func NewOutlineSystem(render *common.RenderSystem, camera *CameraSystem) *OutlineSystem {
	return &OutlineSystem{
		render:    render,
		camera:    camera,
		outlines:  make(map[string]*outline),
		markers:   make(map[string]*outline),
		seen:      make(map[string]bool),
		highlight: make(map[string]bool),
	}
}

// Highlight marks the named entities for the next frame
func (s *OutlineSystem) Highlight(names ...string) {
	s.highlight = make(map[string]bool, len(names))
	for _, name := range names {
		s.highlight[name] = true
	}
}

// Len returns the number of entities currently outlined
func (s *OutlineSystem) Len() int {
	return len(s.markers)
}

// Clear implements entity.Renderer
func (s *OutlineSystem) Clear() {
	s.seen = make(map[string]bool, len(s.seen))
}

// RenderEntity implements entity.Renderer
func (s *OutlineSystem) RenderEntity(e *entity.Entity) {
	if e == nil {
		return
	}
	s.seen[e.Name] = true

	marker := s.getOrCreate(s.markers, e.Name, common.Rectangle{})
	marker.SpaceComponent = markerSpace(s.camera.WorldToScreen(e.Position()))
	marker.RenderComponent.Color = markerColor

	shape, ok := e.Shape()
	if !ok {
		s.remove(s.outlines, e.Name)
		return
	}

	c := rectColor
	if _, isCircle := shape.(physics.ResolvedCircle); isCircle {
		c = circleColor
	}
	if s.highlight[e.Name] {
		c = highlightColor
	}
	drawable := outlineDrawable(shape, c)

	o := s.getOrCreate(s.outlines, e.Name, drawable)
	o.RenderComponent.Drawable = drawable
	o.RenderComponent.Color = color.Transparent
	o.SpaceComponent = outlineSpace(shape, s.camera)
}

// Present implements entity.Renderer
func (s *OutlineSystem) Present() error {
	for name := range s.markers {
		if !s.seen[name] {
			s.remove(s.markers, name)
			s.remove(s.outlines, name)
		}
	}
	return nil
}

func (s *OutlineSystem) getOrCreate(set map[string]*outline, name string, drawable common.Drawable) *outline {
	if o, exists := set[name]; exists {
		return o
	}
	o := &outline{BasicEntity: ecs.NewBasic()}
	o.RenderComponent.Drawable = drawable
	set[name] = o
	if s.render != nil {
		s.render.Add(&o.BasicEntity, &o.RenderComponent, &o.SpaceComponent)
	}
	return o
}

func (s *OutlineSystem) remove(set map[string]*outline, name string) {
	o, exists := set[name]
	if !exists {
		return
	}
	if s.render != nil {
		s.render.Remove(o.BasicEntity)
	}
	delete(set, name)
}

// outlineDrawable returns an unfilled engo shape bordered in c
func outlineDrawable(shape physics.ResolvedShape, c color.Color) common.Drawable {
	if _, ok := shape.(physics.ResolvedCircle); ok {
		return common.Circle{BorderWidth: borderWidth, BorderColor: c}
	}
	return common.Rectangle{BorderWidth: borderWidth, BorderColor: c}
}

// outlineSpace places a resolved shape on screen. engo rotates a space
// clockwise around its Position, which for a rect is the rotated top-left
// vertex.
func outlineSpace(shape physics.ResolvedShape, camera *CameraSystem) common.SpaceComponent {
	switch s := shape.(type) {
	case physics.ResolvedRect:
		tl := camera.WorldToScreen(s.Vertices[0])
		tr := camera.WorldToScreen(s.Vertices[1])
		bl := camera.WorldToScreen(s.Vertices[3])
		top := tr.Sub(tl)
		return common.SpaceComponent{
			Position: engo.Point{X: float32(tl.X), Y: float32(tl.Y)},
			Width:    float32(top.Length()),
			Height:   float32(bl.Sub(tl).Length()),
			Rotation: float32(normalizeDegrees(math.Atan2(top.Y, top.X) * 180 / math.Pi)),
		}
	case physics.ResolvedCircle:
		center := camera.WorldToScreen(s.Position)
		r := s.Radius * float64(camera.Zoom())
		return common.SpaceComponent{
			Position: engo.Point{X: float32(center.X - r), Y: float32(center.Y - r)},
			Width:    float32(2 * r),
			Height:   float32(2 * r),
		}
	}
	return common.SpaceComponent{}
}

func markerSpace(center physics.Vector2D) common.SpaceComponent {
	return common.SpaceComponent{
		Position: engo.Point{X: float32(center.X) - markerSize/2, Y: float32(center.Y) - markerSize/2},
		Width:    markerSize,
		Height:   markerSize,
	}
}

func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
