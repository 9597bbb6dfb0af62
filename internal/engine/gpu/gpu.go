// Package gpu defines the graphics device contract used by asset ingestion
// and the frame driver. It holds no GPU state itself; renderer.Renderer is
// the OpenGL implementation and Recorder is an in-memory one.
package gpu

import "fmt"

// Buffer is a device buffer handle. Zero is never a valid handle.
type Buffer uint32

// Pipeline is a device pipeline handle. Zero is never a valid handle.
type Pipeline uint32

// Shader is a device shader program handle. Zero is never a valid handle.
type Shader uint32

// BufferKind says how a buffer is bound at draw time.
type BufferKind int

const (
	VertexBuffer BufferKind = iota
	IndexBuffer
)

func (k BufferKind) String() string {
	switch k {
	case VertexBuffer:
		return "vertex"
	case IndexBuffer:
		return "index"
	default:
		return fmt.Sprintf("BufferKind(%d)", int(k))
	}
}

// IndexType is the element type of an index buffer.
type IndexType int

const (
	IndexNone IndexType = iota
	IndexUint8
	IndexUint16
	IndexUint32
)

// Size returns the size of one index in bytes.
func (t IndexType) Size() int {
	switch t {
	case IndexUint8:
		return 1
	case IndexUint16:
		return 2
	case IndexUint32:
		return 4
	default:
		return 0
	}
}

func (t IndexType) String() string {
	switch t {
	case IndexNone:
		return "none"
	case IndexUint8:
		return "uint8"
	case IndexUint16:
		return "uint16"
	case IndexUint32:
		return "uint32"
	default:
		return fmt.Sprintf("IndexType(%d)", int(t))
	}
}

// CompareFunc is a depth comparison function.
type CompareFunc int

const (
	CompareLess CompareFunc = iota
	CompareLessEqual
	CompareAlways
)

// DepthState is the depth test configuration of a pipeline.
type DepthState struct {
	Compare      CompareFunc
	WriteEnabled bool
}

// DefaultDepthState returns less-equal testing with depth writes on.
func DefaultDepthState() DepthState {
	return DepthState{Compare: CompareLessEqual, WriteEnabled: true}
}

// CullMode selects which triangle faces a pipeline discards.
type CullMode int

const (
	CullNone CullMode = iota
	CullBack
	CullFront
)

// Vertex stream slots. Each stream is a separate, non-interleaved buffer.
const (
	StreamPosition = iota
	StreamNormal
	StreamTexcoord
	StreamCount
)

// StreamLayout describes one vertex stream: a single attribute read from its
// own buffer at the given stride.
type StreamLayout struct {
	Format VertexFormat
	Stride int
}

// VertexLayout is the fixed three-stream layout every pipeline uses.
type VertexLayout struct {
	Streams [StreamCount]StreamLayout
}

// DefaultVertexLayout returns position float3/12, normal float3/12,
// texcoord float2/8.
func DefaultVertexLayout() VertexLayout {
	return VertexLayout{
		Streams: [StreamCount]StreamLayout{
			StreamPosition: {Format: Float3, Stride: 12},
			StreamNormal:   {Format: Float3, Stride: 12},
			StreamTexcoord: {Format: Float2, Stride: 8},
		},
	}
}

// PipelineDesc is everything needed to build a pipeline state object.
type PipelineDesc struct {
	Layout      VertexLayout
	Depth       DepthState
	Cull        CullMode // zero value draws both faces
	SampleCount int
	IndexType   IndexType
	Shader      Shader
}

// DrawCall binds a pipeline, three vertex streams and an index buffer and
// draws ElementCount indexed triangles.
type DrawCall struct {
	Pipeline      Pipeline
	VertexBuffers [StreamCount]Buffer
	VertexOffsets [StreamCount]int
	IndexBuffer   Buffer
	IndexOffset   int
	ElementCount  int
	MVP           [16]float32
}

// Device is the graphics device consumed by ingestion and the frame driver.
// All methods must be called from the thread that owns the device.
type Device interface {
	CreateShader(vertexSrc, fragmentSrc string) (Shader, error)
	CreateBuffer(kind BufferKind, data []byte) (Buffer, error)
	CreatePipeline(desc PipelineDesc) (Pipeline, error)

	BeginFrame(width, height int, clear [4]float32)
	Draw(call DrawCall) error
	EndFrame()

	// Release frees every object the device created.
	Release()
}
