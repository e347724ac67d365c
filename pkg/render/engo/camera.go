// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-canvas/pkg/physics"
)

// Button names registered by RegisterControls
const (
	buttonPanLeft   = "panLeft"
	buttonPanRight  = "panRight"
	buttonPanUp     = "panUp"
	buttonPanDown   = "panDown"
	buttonZoomIn    = "zoomIn"
	buttonZoomOut   = "zoomOut"
	buttonResetView = "resetView"
	buttonPause     = "pause"
)

// CameraSystem maps world coordinates to the window. It pans with the
// arrow keys, zooms with the mouse wheel or E and Q and can follow a target.
type CameraSystem struct {
	width, height float32

	zoom    float32
	minZoom float32
	maxZoom float32

	// Pan speed in screen pixels per second
	panSpeed float32

	target    physics.Vector2D
	targetSet bool

	center physics.Vector2D
}

// NewCameraSystem creates a camera for a width x height viewport
func NewCameraSystem(width, height, zoom float32) *CameraSystem {
	cs := &CameraSystem{
		width:    width,
		height:   height,
		zoom:     1.0,
		minZoom:  0.05,
		maxZoom:  20.0,
		panSpeed: 400,
	}
	cs.SetZoom(zoom)
	return cs
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update applies input and follows the target
func (cs *CameraSystem) Update(dt float32) {
	cs.handleInput(dt)
	if cs.targetSet {
		cs.center = cs.target
	}
}

func (cs *CameraSystem) handleInput(dt float32) {
	if scrollY := engo.Input.Mouse.ScrollY; scrollY != 0 {
		cs.SetZoom(cs.zoom * (1 + scrollY*0.1))
	}
	if engo.Input.Button(buttonZoomIn).Down() {
		cs.SetZoom(cs.zoom * 1.02)
	}
	if engo.Input.Button(buttonZoomOut).Down() {
		cs.SetZoom(cs.zoom * 0.98)
	}
	if engo.Input.Button(buttonResetView).JustPressed() {
		cs.SetZoom(1)
		cs.center = physics.Vector2D{}
		cs.targetSet = false
	}

	var pan physics.Vector2D
	if engo.Input.Button(buttonPanLeft).Down() {
		pan.X--
	}
	if engo.Input.Button(buttonPanRight).Down() {
		pan.X++
	}
	if engo.Input.Button(buttonPanUp).Down() {
		pan.Y--
	}
	if engo.Input.Button(buttonPanDown).Down() {
		pan.Y++
	}
	if pan != (physics.Vector2D{}) {
		cs.targetSet = false
		cs.Pan(pan.Scale(float64(cs.panSpeed * dt)))
	}
}

// Pan moves the view by a screen-space offset
func (cs *CameraSystem) Pan(screen physics.Vector2D) {
	cs.center = cs.center.Add(screen.Scale(1 / float64(cs.zoom)))
}

// SetTarget makes the camera follow target
func (cs *CameraSystem) SetTarget(target physics.Vector2D) {
	cs.target = target
	cs.targetSet = true
	cs.center = target
}

// ClearTarget stops following
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetZoom sets the zoom level, clamped to the zoom limits
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// Zoom returns the current zoom level in pixels per world unit
func (cs *CameraSystem) Zoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// Center returns the world position at the middle of the window
func (cs *CameraSystem) Center() physics.Vector2D {
	return cs.center
}

// WorldToScreen converts world coordinates to window pixels
func (cs *CameraSystem) WorldToScreen(worldPos physics.Vector2D) physics.Vector2D {
	return physics.Vector2D{
		X: (worldPos.X-cs.center.X)*float64(cs.zoom) + float64(cs.width)/2,
		Y: (worldPos.Y-cs.center.Y)*float64(cs.zoom) + float64(cs.height)/2,
	}
}

// ScreenToWorld converts window pixels to world coordinates
func (cs *CameraSystem) ScreenToWorld(screenPos physics.Vector2D) physics.Vector2D {
	return physics.Vector2D{
		X: (screenPos.X-float64(cs.width)/2)/float64(cs.zoom) + cs.center.X,
		Y: (screenPos.Y-float64(cs.height)/2)/float64(cs.zoom) + cs.center.Y,
	}
}

// RegisterControls binds the viewer keys
func RegisterControls() {
	engo.Input.RegisterButton(buttonPanLeft, engo.KeyArrowLeft, engo.KeyA)
	engo.Input.RegisterButton(buttonPanRight, engo.KeyArrowRight, engo.KeyD)
	engo.Input.RegisterButton(buttonPanUp, engo.KeyArrowUp, engo.KeyW)
	engo.Input.RegisterButton(buttonPanDown, engo.KeyArrowDown, engo.KeyS)
	engo.Input.RegisterButton(buttonZoomIn, engo.KeyE)
	engo.Input.RegisterButton(buttonZoomOut, engo.KeyQ)
	engo.Input.RegisterButton(buttonResetView, engo.KeyR)
	engo.Input.RegisterButton(buttonPause, engo.KeySpace)
}
