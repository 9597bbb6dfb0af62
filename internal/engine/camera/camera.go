// Package camera provides the fixed look-at camera of the viewer.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltfview/internal/config"
)

// LookAtCamera looks from Position at Target with a right-handed, Y-up
// perspective projection.
type LookAtCamera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	FovY float32 // degrees
	Near float32
	Far  float32
}

// New creates a camera from configuration.
func New(cfg config.CameraConfig) *LookAtCamera {
	return &LookAtCamera{
		Position: mgl32.Vec3(cfg.Position),
		Target:   mgl32.Vec3(cfg.Target),
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     cfg.FovY,
		Near:     cfg.Near,
		Far:      cfg.Far,
	}
}

// ViewMatrix returns the world-to-view transform.
func (c *LookAtCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection for the given aspect.
func (c *LookAtCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view for a framebuffer of the given
// size. A zero width or height, as reported for a minimized window, is
// treated as one pixel.
func (c *LookAtCamera) ViewProjection(width, height int) mgl32.Mat4 {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	aspect := float32(width) / float32(height)
	return c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix())
}
