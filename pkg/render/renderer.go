// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-outpost/pkg/engine"
	"github.com/opd-ai/go-outpost/pkg/logging"
)

// Renderer presents one frame snapshot per tick. Implementations must not
// mutate the snapshot.
type Renderer interface {
	Render(snap *engine.FrameSnapshot)
	Close()
}

// NullRenderer discards frames, logging at debug level. Used by the
// headless runner and as a safe default.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Render implements Renderer.
func (r *NullRenderer) Render(snap *engine.FrameSnapshot) {
	r.logger.Debug(context.Background(), "frame",
		"tick", snap.Tick,
		"phase", snap.Phase.String(),
		"ships", len(snap.Ships),
		"ordnance", len(snap.Ordnance),
	)
}

// Close implements Renderer.
func (r *NullRenderer) Close() {}
