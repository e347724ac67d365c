// pkg/render/engo/scene_test.go
package engo

import (
	"testing"

	"github.com/opd-ai/go-canvas/pkg/engine"
	"github.com/opd-ai/go-canvas/pkg/entity"
	"github.com/opd-ai/go-canvas/pkg/event"
	"github.com/opd-ai/go-canvas/pkg/logging"
	"github.com/opd-ai/go-canvas/pkg/physics"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(nil, logging.Discard())
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	return eng
}

func TestNewDebugScene(t *testing.T) {
	eng := newTestEngine(t)
	scene := NewDebugScene(eng, nil)

	if scene.Type() != "DebugScene" {
		t.Errorf("Expected Type() to return %q, got %q", "DebugScene", scene.Type())
	}
	if scene.logger == nil {
		t.Error("Expected a default logger")
	}
	if scene.Zoom != 1 {
		t.Errorf("Expected default zoom 1, got %f", scene.Zoom)
	}
	if scene.engine != eng {
		t.Error("Expected engine to be set correctly")
	}
}

func TestDebugScene_SubscriptionsEndOnExit(t *testing.T) {
	eng := newTestEngine(t)
	scene := NewDebugScene(eng, logging.Discard())

	scene.subscribeToEvents()
	for _, typ := range []event.Type{event.CollisionStarted, event.CollisionEnded} {
		if n := eng.EventBus.HandlerCount(typ); n != 1 {
			t.Errorf("Expected 1 %s handler, got %d", typ, n)
		}
	}

	eng.Start()
	scene.Exit()
	for _, typ := range []event.Type{event.CollisionStarted, event.CollisionEnded} {
		if n := eng.EventBus.HandlerCount(typ); n != 0 {
			t.Errorf("Expected no %s handlers after Exit, got %d", typ, n)
		}
	}
	if eng.Running() {
		t.Error("Expected Exit to stop the engine")
	}
}

func TestDebugScene_DrawHighlightsCollisions(t *testing.T) {
	eng := newTestEngine(t)
	for _, def := range []struct {
		name string
		x    float64
	}{{"a", 0}, {"b", 4}, {"far", 100}} {
		c, err := physics.NewCircleCollider(3)
		if err != nil {
			t.Fatal(err)
		}
		e := entity.New(def.name)
		e.SetPosition(physics.Vector2D{X: def.x})
		e.AttachCollider(c)
		if err := eng.Spawn(e); err != nil {
			t.Fatalf("Spawn(%s) failed: %v", def.name, err)
		}
	}
	eng.Update(0.01)

	scene := NewDebugScene(eng, logging.Discard())
	scene.Follow = "far"
	scene.camera = NewCameraSystem(200, 200, 1)
	scene.outlines = NewOutlineSystem(nil, scene.camera)
	scene.draw()

	if scene.outlines.Len() != 3 {
		t.Errorf("Expected 3 outlined entities, got %d", scene.outlines.Len())
	}
	for name, want := range map[string]bool{"a": true, "b": true, "far": false} {
		if got := scene.outlines.highlight[name]; got != want {
			t.Errorf("highlight[%s] = %v, want %v", name, got, want)
		}
	}
	if scene.camera.Center() != (physics.Vector2D{X: 100}) {
		t.Errorf("Expected camera to follow far, centered on %v", scene.camera.Center())
	}
}

func TestHighlightNames(t *testing.T) {
	a, b, c := entity.New("a"), entity.New("b"), entity.New("c")
	names := highlightNames([]entity.Pair{entity.NewPair(b, a), entity.NewPair(a, c)})

	expected := []string{"a", "b", "a", "c"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Fatalf("Expected %v, got %v", expected, names)
		}
	}
	if got := highlightNames(nil); len(got) != 0 {
		t.Errorf("Expected no names, got %v", got)
	}
}
