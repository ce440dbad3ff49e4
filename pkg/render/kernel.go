package render

import (
	"fmt"

	"github.com/taigrr/lumen/pkg/camera"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/scene"
)

// DefaultMaxDepth is the number of bounces a ray may take after the
// primary hit.
const DefaultMaxDepth = 2

// Settings are the per-frame switches of the shading loop.
type Settings struct {
	MaxDepth   int
	Shadows    bool
	Textures   bool
	CullMeshes bool // Skip mesh triangles whose group bounds the ray misses
}

// DefaultSettings returns the stock settings: two bounces, shadows and
// textures on, mesh culling on.
func DefaultSettings() Settings {
	return Settings{
		MaxDepth:   DefaultMaxDepth,
		Shadows:    true,
		Textures:   true,
		CullMeshes: true,
	}
}

// Frame is everything RenderPixel reads. It is immutable while a frame is
// being rendered, so any number of goroutines may share one.
type Frame struct {
	View     camera.View
	Snapshot *scene.Snapshot
	Settings Settings
}

// NewFrame snapshots the world and captures the camera for one frame.
func NewFrame(cam *camera.Camera, w *scene.World, settings Settings) (*Frame, error) {
	if cam == nil {
		return nil, fmt.Errorf("new frame: no camera")
	}
	snap, err := w.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("new frame: %w", err)
	}
	return &Frame{View: cam.View(), Snapshot: snap, Settings: settings}, nil
}

// RenderPixel returns the color of pixel (x, y), with y growing upward
// from the bottom row. It has no side effects.
func RenderPixel(f *Frame, x, y int) math3d.Vec3 {
	dir := f.View.RayDirection(float64(x), float64(y))
	return Trace(f, f.View.Eye, dir)
}
