package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/opd-ai/go-canvas/pkg/entity"
	"github.com/opd-ai/go-canvas/pkg/physics"
)

func rectEntity(t *testing.T, name string, x, y, w, h float64) *entity.Entity {
	t.Helper()
	c, err := physics.NewRectCollider(physics.RectSize{Width: w, Height: h})
	if err != nil {
		t.Fatalf("NewRectCollider: %v", err)
	}
	e := entity.New(name)
	e.SetPosition(physics.Vector2D{X: x, Y: y})
	e.AttachCollider(c)
	return e
}

func circleEntity(t *testing.T, name string, x, y, r float64) *entity.Entity {
	t.Helper()
	c, err := physics.NewCircleCollider(r)
	if err != nil {
		t.Fatalf("NewCircleCollider: %v", err)
	}
	e := entity.New(name)
	e.SetPosition(physics.Vector2D{X: x, Y: y})
	e.AttachCollider(c)
	return e
}

func TestNewTerminalRenderer_CreatesValidRenderer_WithCorrectDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		scale  float64
	}{
		{"small renderer", 10, 5, 1.0},
		{"medium renderer", 80, 24, 10.0},
		{"large renderer", 120, 40, 5.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewTerminalRenderer(&bytes.Buffer{}, tt.width, tt.height, tt.scale)

			if renderer.width != tt.width || renderer.height != tt.height {
				t.Errorf("expected %dx%d, got %dx%d", tt.width, tt.height, renderer.width, renderer.height)
			}
			if renderer.scale != tt.scale {
				t.Errorf("expected scale %f, got %f", tt.scale, renderer.scale)
			}
			if len(renderer.buffer) != tt.height {
				t.Errorf("expected buffer height %d, got %d", tt.height, len(renderer.buffer))
			}
			for y, row := range renderer.buffer {
				if len(row) != tt.width {
					t.Fatalf("row %d has width %d, expected %d", y, len(row), tt.width)
				}
				for x, cell := range row {
					if cell != ' ' {
						t.Fatalf("cell (%d,%d) = %q, expected blank", x, y, cell)
					}
				}
			}
		})
	}
}

func TestNewTerminalRenderer_ClampsSize(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, 0, -3, 1)
	if r.width != 1 || r.height != 1 {
		t.Errorf("expected 1x1, got %dx%d", r.width, r.height)
	}
}

func TestTerminalRenderer_RenderEntity_Rect(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, 20, 10, 1)
	r.RenderEntity(rectEntity(t, "box", 0, 0, 6, 4))

	// corners span cells (7,3) to (13,7); the center is (10,5)
	for _, p := range [][2]int{{7, 3}, {13, 3}, {13, 7}, {7, 7}, {10, 3}, {7, 5}} {
		if got := r.buffer[p[1]][p[0]]; got != symbolEdge {
			t.Errorf("cell %v = %q, expected edge", p, got)
		}
	}
	if got := r.buffer[5][10]; got != symbolCenter {
		t.Errorf("center = %q, expected %q", got, symbolCenter)
	}
	if got := r.buffer[5][9]; got != ' ' {
		t.Errorf("interior cell = %q, expected blank", got)
	}
	if got := r.buffer[0][0]; got != ' ' {
		t.Errorf("outside cell = %q, expected blank", got)
	}
}

func TestTerminalRenderer_RenderEntity_Circle(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, 20, 10, 1)
	r.RenderEntity(circleEntity(t, "ball", 0, 0, 3))

	if got := r.buffer[5][13]; got != symbolCircle {
		t.Errorf("rightmost perimeter cell = %q, expected %q", got, symbolCircle)
	}
	if got := r.buffer[5][10]; got != symbolCenter {
		t.Errorf("center = %q, expected %q", got, symbolCenter)
	}
}

func TestTerminalRenderer_Highlight(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, 20, 10, 1)
	r.Highlight("ball")
	r.RenderEntity(circleEntity(t, "ball", 0, 0, 3))
	if got := r.buffer[5][13]; got != symbolHighlight {
		t.Errorf("highlighted perimeter = %q, expected %q", got, symbolHighlight)
	}
}

func TestTerminalRenderer_RenderEntity_WithoutCollider(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, 20, 10, 1)
	e := entity.New("marker")
	e.SetPosition(physics.Vector2D{X: 2, Y: -1})
	r.RenderEntity(e)
	r.RenderEntity(nil)

	if got := r.buffer[4][12]; got != symbolCenter {
		t.Errorf("marker cell = %q, expected %q", got, symbolCenter)
	}
}

func TestTerminalRenderer_OffscreenEntitiesAreClipped(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, 20, 10, 1)
	r.RenderEntity(rectEntity(t, "far", 1e9, 1e9, 10, 10))
	r.RenderEntity(circleEntity(t, "huge", 1e7, 0, 1e6))
	// a long wall crossing the whole view
	r.RenderEntity(rectEntity(t, "wall", 0, 0, 1e8, 2))

	for y, row := range r.buffer {
		for x, cell := range row {
			if y != 4 && y != 6 && y != 5 && cell != ' ' {
				t.Fatalf("unexpected cell (%d,%d) = %q", x, y, cell)
			}
		}
	}
	if got := r.buffer[4][0]; got != symbolEdge {
		t.Errorf("wall edge missing at left border, got %q", got)
	}
}

func TestTerminalRenderer_Present(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, 3, 2, 1)
	r.buffer[0][1] = 'x'

	if err := r.Present(); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	expected := "+---+\n| x |\n|   |\n+---+\n"
	if out.String() != expected {
		t.Errorf("frame = %q, expected %q", out.String(), expected)
	}

	out.Reset()
	r.ClearScreen = true
	if err := r.Present(); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "\033[H\033[2J+---+") {
		t.Errorf("expected ANSI clear prefix, got %q", out.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTerminalRenderer_PresentReportsWriteErrors(t *testing.T) {
	r := NewTerminalRenderer(failingWriter{}, 3, 2, 1)
	if err := r.Present(); err == nil {
		t.Error("expected write error")
	}
}

func TestTerminalRenderer_Clear(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, 20, 10, 1)
	if err := entity.RenderFrame(r, []*entity.Entity{rectEntity(t, "box", 0, 0, 6, 4)}); err != nil {
		t.Fatal(err)
	}
	r.Clear()
	for y, row := range r.buffer {
		for x, cell := range row {
			if cell != ' ' {
				t.Fatalf("cell (%d,%d) = %q after Clear", x, y, cell)
			}
		}
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		expected       [][2]int
	}{
		{"point", 2, 2, 2, 2, [][2]int{{2, 2}}},
		{"horizontal", 0, 0, 3, 0, [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"vertical up", 1, 2, 1, 0, [][2]int{{1, 2}, {1, 1}, {1, 0}}},
		{"diagonal", 0, 0, 2, 2, [][2]int{{0, 0}, {1, 1}, {2, 2}}},
		{"shallow", 0, 0, 4, 2, [][2]int{{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := line(tt.x0, tt.y0, tt.x1, tt.y1)
			if len(got) != len(tt.expected) {
				t.Fatalf("line = %v, expected %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Fatalf("line = %v, expected %v", got, tt.expected)
				}
			}
		})
	}
}
