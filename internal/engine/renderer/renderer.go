// Package renderer is the OpenGL 4.1 implementation of gpu.Device.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfview/internal/engine/gpu"
	"github.com/Faultbox/gltfview/internal/engine/shader"
	"github.com/Faultbox/gltfview/internal/engine/shader/shaders"
	"github.com/Faultbox/gltfview/internal/logger"
)

type program struct {
	id  uint32
	mvp int32
}

type pipeline struct {
	desc    gpu.PipelineDesc
	program program
	vao     uint32
}

// Renderer owns every GL object created through it. Handles returned to
// callers are 1-based indices into its tables.
type Renderer struct {
	log *zap.Logger

	programs  []program
	buffers   []uint32
	pipelines []pipeline
}

var _ gpu.Device = (*Renderer)(nil)

// New loads the GL function pointers and sets the default state.
// It must be called after the OpenGL context is current.
func New() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{log: logger.Named("renderer")}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.FrontFace(gl.CCW)

	return r, nil
}

func (r *Renderer) CreateShader(vertexSrc, fragmentSrc string) (gpu.Shader, error) {
	id, err := shader.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return 0, err
	}
	p := program{id: id, mvp: shader.Uniform(id, shaders.MVPUniform)}
	if p.mvp < 0 {
		r.log.Warn("shader has no MVP uniform", zap.String("uniform", shaders.MVPUniform))
	}
	r.programs = append(r.programs, p)
	r.log.Debug("shader program created", zap.Uint32("program", id))
	return gpu.Shader(len(r.programs)), nil
}

// CreateBuffer uploads data into an immutable-usage buffer. Index data goes
// through the ARRAY_BUFFER target too; the element binding is made at draw
// time, when a vertex array is bound.
func (r *Renderer) CreateBuffer(kind gpu.BufferKind, data []byte) (gpu.Buffer, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("glGenBuffers returned no %s buffer", kind)
	}

	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	gl.BufferData(gl.ARRAY_BUFFER, len(data), ptr, gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.buffers = append(r.buffers, id)
	return gpu.Buffer(len(r.buffers)), nil
}

// CreatePipeline builds a vertex array with the three streams enabled.
// Stream pointers are set per draw because buffers and offsets vary.
func (r *Renderer) CreatePipeline(desc gpu.PipelineDesc) (gpu.Pipeline, error) {
	prog, err := r.program(desc.Shader)
	if err != nil {
		return 0, err
	}
	if _, err := indexType(desc.IndexType); err != nil {
		return 0, err
	}
	for i, s := range desc.Layout.Streams {
		if _, _, _, err := attribFormat(s.Format); err != nil {
			return 0, fmt.Errorf("stream %d: %w", i, err)
		}
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	for i := range desc.Layout.Streams {
		gl.EnableVertexAttribArray(uint32(i))
	}
	gl.BindVertexArray(0)

	r.pipelines = append(r.pipelines, pipeline{desc: desc, program: prog, vao: vao})
	return gpu.Pipeline(len(r.pipelines)), nil
}

func (r *Renderer) BeginFrame(width, height int, clear [4]float32) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.DepthMask(true)
	gl.ClearColor(clear[0], clear[1], clear[2], clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) Draw(call gpu.DrawCall) error {
	if call.Pipeline == 0 || int(call.Pipeline) > len(r.pipelines) {
		return fmt.Errorf("pipeline %d: %w", call.Pipeline, gpu.ErrUnknownHandle)
	}
	p := &r.pipelines[call.Pipeline-1]

	ib, err := r.buffer(call.IndexBuffer)
	if err != nil {
		return fmt.Errorf("index buffer: %w", err)
	}
	elemType, _ := indexType(p.desc.IndexType)

	gl.UseProgram(p.program.id)
	gl.BindVertexArray(p.vao)
	applyDepth(p.desc.Depth)
	applyCull(p.desc.Cull)
	if p.desc.SampleCount > 1 {
		gl.Enable(gl.MULTISAMPLE)
	} else {
		gl.Disable(gl.MULTISAMPLE)
	}

	for i, s := range p.desc.Layout.Streams {
		vb, err := r.buffer(call.VertexBuffers[i])
		if err != nil {
			return fmt.Errorf("vertex stream %d: %w", i, err)
		}
		size, xtype, normalized, _ := attribFormat(s.Format)
		gl.BindBuffer(gl.ARRAY_BUFFER, vb)
		gl.VertexAttribPointerWithOffset(uint32(i), size, xtype, normalized, int32(s.Stride), uintptr(call.VertexOffsets[i]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib)

	if p.program.mvp >= 0 {
		gl.UniformMatrix4fv(p.program.mvp, 1, false, &call.MVP[0])
	}
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(call.ElementCount), elemType, uintptr(call.IndexOffset))

	gl.BindVertexArray(0)
	return nil
}

func (r *Renderer) EndFrame() {
	gl.UseProgram(0)
}

// Release deletes every pipeline, buffer and program.
func (r *Renderer) Release() {
	r.log.Info("releasing GPU objects",
		zap.Int("pipelines", len(r.pipelines)),
		zap.Int("buffers", len(r.buffers)),
		zap.Int("programs", len(r.programs)),
	)
	for i := range r.pipelines {
		gl.DeleteVertexArrays(1, &r.pipelines[i].vao)
	}
	if len(r.buffers) > 0 {
		gl.DeleteBuffers(int32(len(r.buffers)), &r.buffers[0])
	}
	for _, p := range r.programs {
		gl.DeleteProgram(p.id)
	}
	r.pipelines, r.buffers, r.programs = nil, nil, nil
}

func (r *Renderer) program(s gpu.Shader) (program, error) {
	if s == 0 || int(s) > len(r.programs) {
		return program{}, fmt.Errorf("shader %d: %w", s, gpu.ErrUnknownHandle)
	}
	return r.programs[s-1], nil
}

func (r *Renderer) buffer(b gpu.Buffer) (uint32, error) {
	if b == 0 || int(b) > len(r.buffers) {
		return 0, fmt.Errorf("buffer %d: %w", b, gpu.ErrUnknownHandle)
	}
	return r.buffers[b-1], nil
}

func applyDepth(d gpu.DepthState) {
	switch d.Compare {
	case gpu.CompareLess:
		gl.DepthFunc(gl.LESS)
	case gpu.CompareAlways:
		gl.DepthFunc(gl.ALWAYS)
	default:
		gl.DepthFunc(gl.LEQUAL)
	}
	gl.DepthMask(d.WriteEnabled)
}

func applyCull(c gpu.CullMode) {
	switch c {
	case gpu.CullBack:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case gpu.CullFront:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Disable(gl.CULL_FACE)
	}
}

func indexType(t gpu.IndexType) (uint32, error) {
	switch t {
	case gpu.IndexUint8:
		return gl.UNSIGNED_BYTE, nil
	case gpu.IndexUint16:
		return gl.UNSIGNED_SHORT, nil
	case gpu.IndexUint32:
		return gl.UNSIGNED_INT, nil
	default:
		return 0, fmt.Errorf("index type %s is not drawable", t)
	}
}

// attribFormat maps a vertex format to glVertexAttribPointer arguments.
func attribFormat(f gpu.VertexFormat) (size int32, xtype uint32, normalized bool, err error) {
	switch f {
	case gpu.Float:
		return 1, gl.FLOAT, false, nil
	case gpu.Float2:
		return 2, gl.FLOAT, false, nil
	case gpu.Float3:
		return 3, gl.FLOAT, false, nil
	case gpu.Float4:
		return 4, gl.FLOAT, false, nil
	case gpu.Byte4:
		return 4, gl.BYTE, false, nil
	case gpu.Byte4N:
		return 4, gl.BYTE, true, nil
	case gpu.UByte4:
		return 4, gl.UNSIGNED_BYTE, false, nil
	case gpu.UByte4N:
		return 4, gl.UNSIGNED_BYTE, true, nil
	case gpu.Short2:
		return 2, gl.SHORT, false, nil
	case gpu.Short2N:
		return 2, gl.SHORT, true, nil
	case gpu.Short4:
		return 4, gl.SHORT, false, nil
	case gpu.Short4N:
		return 4, gl.SHORT, true, nil
	default:
		return 0, 0, false, fmt.Errorf("unsupported vertex format %s", f)
	}
}
