package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/gltfview/internal/config"
)

func TestNew(t *testing.T) {
	c := New(config.Default().Camera)

	assert.Equal(t, mgl32.Vec3{0, 50, 50}, c.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, c.Target)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up)
	assert.Equal(t, float32(60), c.FovY)
}

func TestViewMatrix(t *testing.T) {
	c := New(config.Default().Camera)
	view := c.ViewMatrix()

	// The target lands on the -Z axis in view space.
	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, p.X(), 1e-4)
	assert.InDelta(t, 0, p.Y(), 1e-4)
	assert.InDelta(t, -50*1.41421356, p.Z(), 1e-3)

	// The eye maps to the origin.
	e := view.Mul4x1(mgl32.Vec4{0, 50, 50, 1})
	assert.InDelta(t, 0, e.Vec3().Len(), 1e-3)
}

func TestViewProjection(t *testing.T) {
	c := New(config.Default().Camera)

	vp := c.ViewProjection(800, 600)
	clip := vp.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())

	// The target is centered and inside the depth range.
	assert.InDelta(t, 0, ndc.X(), 1e-4)
	assert.InDelta(t, 0, ndc.Y(), 1e-4)
	assert.True(t, ndc.Z() > -1 && ndc.Z() < 1, "depth %f", ndc.Z())

	want := c.ProjectionMatrix(800.0 / 600.0).Mul4(c.ViewMatrix())
	assert.True(t, vp.ApproxEqual(want))
}

func TestViewProjection_DegenerateSize(t *testing.T) {
	c := New(config.Default().Camera)

	tests := []struct {
		name          string
		width, height int
		aspect        float32
	}{
		{"zero height", 800, 0, 800},
		{"zero width", 0, 600, 1.0 / 600},
		{"minimized", 0, 0, 1},
		{"negative", -5, -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := c.ViewProjection(tt.width, tt.height)
			for i, v := range vp {
				assert.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0), "element %d is %v", i, v)
			}
			assert.True(t, vp.ApproxEqual(c.ProjectionMatrix(tt.aspect).Mul4(c.ViewMatrix())))
		})
	}
}
