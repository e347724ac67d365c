package render

import (
	"io"
	"math"
	"strings"

	"github.com/opd-ai/go-canvas/pkg/entity"
	"github.com/opd-ai/go-canvas/pkg/physics"
)

// Cell symbols
const (
	symbolEdge      = '#'
	symbolCircle    = 'o'
	symbolHighlight = '@'
	symbolCenter    = '+'
)

// TerminalRenderer draws collider outlines as ASCII art
type TerminalRenderer struct {
	view
	buffer [][]rune
	out    io.Writer

	// ClearScreen prefixes every frame with the ANSI clear sequence
	ClearScreen bool
}

// NewTerminalRenderer creates a new terminal renderer with the specified dimensions
func NewTerminalRenderer(out io.Writer, width, height int, scale float64) *TerminalRenderer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	r := &TerminalRenderer{
		view:   newView(width, height, scale),
		buffer: buffer,
		out:    out,
	}
	r.Clear()
	return r
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// RenderEntity implements entity.Renderer. Rect colliders are drawn edge by
// edge, circles by sampling their perimeter; the entity center is marked.
func (r *TerminalRenderer) RenderEntity(e *entity.Entity) {
	if e == nil {
		return
	}

	symbol := symbolEdge
	if r.highlighted(e.Name) {
		symbol = symbolHighlight
	}

	if shape, ok := e.Shape(); ok {
		switch s := shape.(type) {
		case physics.ResolvedRect:
			r.drawPolygon(s.Vertices[:], symbol)
		case physics.ResolvedCircle:
			if symbol == symbolEdge {
				symbol = symbolCircle
			}
			r.drawCircle(s, symbol)
		}
	}

	x, y := r.toCell(e.Position())
	r.set(x, y, symbolCenter)
}

func (r *TerminalRenderer) drawPolygon(vertices []physics.Vector2D, symbol rune) {
	for i := range vertices {
		x0, y0 := r.toScreen(vertices[i])
		x1, y1 := r.toScreen(vertices[(i+1)%len(vertices)])
		x0, y0, x1, y1, ok := r.clip(x0, y0, x1, y1)
		if !ok {
			continue
		}
		cells := line(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Floor(x1)), int(math.Floor(y1)))
		for _, p := range cells {
			r.set(p[0], p[1], symbol)
		}
	}
}

// maxCircleSteps bounds the samples taken for huge circles
const maxCircleSteps = 4096

func (r *TerminalRenderer) drawCircle(c physics.ResolvedCircle, symbol rune) {
	cx, cy := r.toScreen(c.Position)
	if !r.circleVisible(cx, cy, c.Radius) {
		return
	}
	// enough samples that neighbouring points land in adjacent cells
	steps := int(math.Ceil(2*math.Pi*c.Radius*r.scale)) * 2
	steps = min(max(steps, 16), maxCircleSteps)
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		p := physics.Vector2D{
			X: c.Position.X + c.Radius*math.Cos(theta),
			Y: c.Position.Y + c.Radius*math.Sin(theta),
		}
		x, y := r.toCell(p)
		r.set(x, y, symbol)
	}
}

func (r *TerminalRenderer) set(x, y int, symbol rune) {
	if r.inside(x, y) {
		r.buffer[y][x] = symbol
	}
}

// String returns the current frame with its border
func (r *TerminalRenderer) String() string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", r.width) + "+\n"
	sb.WriteString(border)
	for y := range r.buffer {
		sb.WriteByte('|')
		sb.WriteString(string(r.buffer[y]))
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() error {
	frame := r.String()
	if r.ClearScreen {
		frame = "\033[H\033[2J" + frame
	}
	_, err := io.WriteString(r.out, frame)
	return err
}

// line returns the cells of a Bresenham line from (x0,y0) to (x1,y1), both
// ends included
func line(x0, y0, x1, y1 int) [][2]int {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	points := make([][2]int, 0, max(dx, -dy)+1)
	err := dx + dy
	for {
		points = append(points, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return points
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
