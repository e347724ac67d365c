package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/opd-ai/go-canvas/pkg/entity"
	"github.com/opd-ai/go-canvas/pkg/physics"
)

// Raster palette
var (
	backgroundColor = color.RGBA{R: 16, G: 16, B: 24, A: 255}
	rectColor       = color.RGBA{R: 40, G: 110, B: 200, A: 160}
	circleColor     = color.RGBA{R: 220, G: 140, B: 40, A: 160}
	highlightColor  = color.RGBA{R: 230, G: 40, B: 40, A: 200}
	markerColor     = color.RGBA{R: 240, G: 240, B: 240, A: 255}
)

// kappa places cubic control points so four curves approximate a circle
const kappa = 0.5522847498

// RasterRenderer fills resolved colliders into an RGBA image. Present
// encodes the frame as PNG to its writer.
type RasterRenderer struct {
	view
	img *image.RGBA
	z   *vector.Rasterizer
	out io.Writer
}

// NewRasterRenderer creates a width x height pixel renderer
func NewRasterRenderer(out io.Writer, width, height int, scale float64) *RasterRenderer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	r := &RasterRenderer{
		view: newView(width, height, scale),
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		z:    vector.NewRasterizer(width, height),
		out:  out,
	}
	r.z.DrawOp = draw.Over
	r.Clear()
	return r
}

// Image returns the frame being drawn
func (r *RasterRenderer) Image() *image.RGBA {
	return r.img
}

// Clear implements entity.Renderer
func (r *RasterRenderer) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)
}

// RenderEntity implements entity.Renderer
func (r *RasterRenderer) RenderEntity(e *entity.Entity) {
	if e == nil {
		return
	}

	if shape, ok := e.Shape(); ok {
		switch s := shape.(type) {
		case physics.ResolvedRect:
			r.fillPolygon(s.Vertices[:], r.colorFor(e.Name, rectColor))
		case physics.ResolvedCircle:
			r.fillCircle(s, r.colorFor(e.Name, circleColor))
		}
	}

	// a 2x2 pixel marker on the entity center
	x, y := r.toCell(e.Position())
	marker := image.Rect(x-1, y-1, x+1, y+1).Intersect(r.img.Bounds())
	draw.Draw(r.img, marker, image.NewUniform(markerColor), image.Point{}, draw.Src)
}

func (r *RasterRenderer) colorFor(name string, base color.RGBA) color.RGBA {
	if r.highlighted(name) {
		return highlightColor
	}
	return base
}

func (r *RasterRenderer) fillPolygon(vertices []physics.Vector2D, c color.RGBA) {
	points := make([][2]float64, len(vertices))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, v := range vertices {
		x, y := r.toScreen(v)
		points[i] = [2]float64{x, y}
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	if maxX < 0 || maxY < 0 || minX > float64(r.width) || minY > float64(r.height) {
		return
	}

	r.z.Reset(r.width, r.height)
	r.z.DrawOp = draw.Over
	for i, p := range points {
		x, y := p[0], p[1]
		if i == 0 {
			r.z.MoveTo(float32(x), float32(y))
			continue
		}
		r.z.LineTo(float32(x), float32(y))
	}
	r.z.ClosePath()
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (r *RasterRenderer) fillCircle(circle physics.ResolvedCircle, c color.RGBA) {
	cx, cy := r.toScreen(circle.Position)
	if !r.circleVisible(cx, cy, circle.Radius) {
		return
	}
	rad := circle.Radius * r.scale
	k := rad * kappa

	f := func(v float64) float32 { return float32(v) }
	r.z.Reset(r.width, r.height)
	r.z.DrawOp = draw.Over
	r.z.MoveTo(f(cx+rad), f(cy))
	r.z.CubeTo(f(cx+rad), f(cy+k), f(cx+k), f(cy+rad), f(cx), f(cy+rad))
	r.z.CubeTo(f(cx-k), f(cy+rad), f(cx-rad), f(cy+k), f(cx-rad), f(cy))
	r.z.CubeTo(f(cx-rad), f(cy-k), f(cx-k), f(cy-rad), f(cx), f(cy-rad))
	r.z.CubeTo(f(cx+k), f(cy-rad), f(cx+rad), f(cy-k), f(cx+rad), f(cy))
	r.z.ClosePath()
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

// WritePNG encodes the current frame to w
func (r *RasterRenderer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Present implements entity.Renderer
func (r *RasterRenderer) Present() error {
	if r.out == nil {
		return nil
	}
	return r.WritePNG(r.out)
}
