// pkg/render/view.go
package render

import (
	"math"

	"github.com/opd-ai/go-canvas/pkg/physics"
)

// view maps world coordinates onto a width x height screen centered on
// center. Scale is screen units per world unit.
type view struct {
	width     int
	height    int
	scale     float64
	center    physics.Vector2D
	highlight map[string]bool
}

func newView(width, height int, scale float64) view {
	if scale <= 0 {
		scale = 1
	}
	return view{width: width, height: height, scale: scale}
}

// SetCenter sets the world position shown at the middle of the screen
func (v *view) SetCenter(pos physics.Vector2D) {
	v.center = pos
}

// Highlight marks the named entities, typically the ones colliding, so they
// are drawn differently. It replaces the previous set.
func (v *view) Highlight(names ...string) {
	v.highlight = make(map[string]bool, len(names))
	for _, name := range names {
		v.highlight[name] = true
	}
}

func (v *view) highlighted(name string) bool {
	return v.highlight[name]
}

// toScreen converts a world position to fractional screen coordinates
func (v *view) toScreen(pos physics.Vector2D) (float64, float64) {
	x := (pos.X-v.center.X)*v.scale + float64(v.width)/2
	y := (pos.Y-v.center.Y)*v.scale + float64(v.height)/2
	return x, y
}

// toCell converts a world position to the integer cell containing it
func (v *view) toCell(pos physics.Vector2D) (int, int) {
	x, y := v.toScreen(pos)
	return int(math.Floor(x)), int(math.Floor(y))
}

func (v *view) inside(x, y int) bool {
	return x >= 0 && x < v.width && y >= 0 && y < v.height
}

// clip limits a screen-space segment to the screen plus a one unit margin
// (Liang-Barsky). ok is false when no part of it is visible.
func (v *view) clip(x0, y0, x1, y1 float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	minX, minY := -1.0, -1.0
	maxX, maxY := float64(v.width)+1, float64(v.height)+1
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	}
	for _, edge := range edges {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// circleVisible reports whether a circle of world radius around the screen
// point (x, y) can touch the screen
func (v *view) circleVisible(x, y, radius float64) bool {
	r := radius * v.scale
	return x+r >= -1 && x-r <= float64(v.width)+1 && y+r >= -1 && y-r <= float64(v.height)+1
}
