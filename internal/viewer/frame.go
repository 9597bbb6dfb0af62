// Package viewer drives frames over the resource tables: it applies input
// to the controlled entity and submits one draw per submesh of every
// entity through a gpu.Device.
package viewer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfview/internal/config"
	"github.com/Faultbox/gltfview/internal/engine/camera"
	"github.com/Faultbox/gltfview/internal/engine/gpu"
	"github.com/Faultbox/gltfview/internal/engine/input"
	"github.com/Faultbox/gltfview/internal/engine/scene"
	"github.com/Faultbox/gltfview/internal/logger"
)

// Driver renders the scene once per call to Frame.
type Driver struct {
	dev    gpu.Device
	res    *scene.Resources
	camera *camera.LookAtCamera
	render config.RenderConfig
	input  config.InputConfig

	frames int
	log    *zap.Logger
}

// NewDriver creates a frame driver. The resource tables are only read,
// apart from the controlled entity's transform.
func NewDriver(dev gpu.Device, res *scene.Resources, cfg *config.Config) *Driver {
	return &Driver{
		dev:    dev,
		res:    res,
		camera: camera.New(cfg.Camera),
		render: cfg.Render,
		input:  cfg.Input,
		log:    logger.Named("frame"),
	}
}

// Frames returns the number of frames rendered so far.
func (d *Driver) Frames() int {
	return d.frames
}

// Frame applies input and renders one frame at the given framebuffer size.
func (d *Driver) Frame(state *input.State, width, height int) error {
	d.frames++

	if idx := d.input.ControlledEntity; idx >= 0 && idx < d.res.EntityCount() {
		ApplyInput(state, d.res.Entity(scene.EntityIndex(idx)), d.input)
	}

	viewProj := d.camera.ViewProjection(width, height)

	var trace *zap.Logger
	if d.frames == 1 {
		trace = d.log
	}

	d.dev.BeginFrame(width, height, d.render.ClearColor)
	err := DrawScene(d.dev, d.res, viewProj, trace)
	d.dev.EndFrame()
	return err
}

// DrawScene issues one draw call per submesh of every entity, in entity
// order. If trace is non-nil the traversal is logged to it at debug level.
func DrawScene(dev gpu.Device, res *scene.Resources, viewProj mgl32.Mat4, trace *zap.Logger) error {
	for i := 0; i < res.EntityCount(); i++ {
		e := res.Entity(scene.EntityIndex(i))
		mesh := res.Mesh(e.Mesh)
		mvp := viewProj.Mul4(ModelMatrix(*e))

		if trace != nil {
			trace.Debug("entity", zap.Int("entity", i), zap.Int("mesh", int(e.Mesh)))
		}

		for j := mesh.SubmeshStart; j < mesh.SubmeshEnd; j++ {
			sm := res.Submesh(j)
			call := drawCall(res, sm, mvp)

			if trace != nil {
				trace.Debug("submesh",
					zap.Int("submesh", int(j)),
					zap.Int("pipeline", int(sm.Pipeline)),
					zap.Any("buffers", sm.Buffers),
				)
			}

			if err := dev.Draw(call); err != nil {
				return fmt.Errorf("entity %d submesh %d: %w", i, j, err)
			}
		}
	}
	return nil
}

func drawCall(res *scene.Resources, sm scene.Submesh, mvp mgl32.Mat4) gpu.DrawCall {
	call := gpu.DrawCall{
		Pipeline:     res.Pipeline(sm.Pipeline).GPU,
		IndexBuffer:  res.Buffer(sm.Buffers[scene.SlotIndex]).GPU,
		IndexOffset:  sm.Offsets[scene.SlotIndex],
		ElementCount: sm.ElementCount,
		MVP:          mvp,
	}
	for s := 0; s < gpu.StreamCount; s++ {
		call.VertexBuffers[s] = res.Buffer(sm.Buffers[s]).GPU
		call.VertexOffsets[s] = sm.Offsets[s]
	}
	return call
}
