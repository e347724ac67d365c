// pkg/render/renderer.go
package render

import (
	"context"
	"fmt"
	"io"

	"github.com/opd-ai/go-canvas/pkg/config"
	"github.com/opd-ai/go-canvas/pkg/entity"
	"github.com/opd-ai/go-canvas/pkg/logging"
)

// NullRenderer is an entity.Renderer that only logs at debug level
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a NullRenderer. A nil logger uses logging.NewLogger.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullRenderer{logger: logger}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() error {
	d.logger.Debug(context.Background(), "Present called")
	return nil
}

// RenderEntity implements entity.Renderer.
func (d *NullRenderer) RenderEntity(e *entity.Entity) {
	ctx := context.Background()
	if e == nil {
		d.logger.Debug(ctx, "RenderEntity called with nil entity")
		return
	}
	pos := e.Position()
	args := []any{
		"entity_id", e.ID(),
		"name", e.Name,
		"x", pos.X,
		"y", pos.Y,
		"rotation", e.Rotation(),
	}
	if c := e.Collider(); c != nil {
		args = append(args, "collider", c.Kind().String())
	}
	d.logger.Debug(ctx, "RenderEntity called", args...)
}

// New creates the renderer selected by cfg.Renderer. Terminal frames and
// PNG images are written to w.
func New(cfg config.DebugConfig, w io.Writer, logger *logging.Logger) (entity.Renderer, error) {
	switch cfg.Renderer {
	case config.RendererNone, "":
		return NewNullRenderer(logger), nil
	case config.RendererTerminal:
		return NewTerminalRenderer(w, cfg.Width, cfg.Height, cfg.Scale), nil
	case config.RendererPNG:
		return NewRasterRenderer(w, cfg.Width, cfg.Height, cfg.Scale), nil
	default:
		return nil, fmt.Errorf("unknown renderer %q", cfg.Renderer)
	}
}
