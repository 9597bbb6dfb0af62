package gpu

import (
	"errors"
	"fmt"
)

// ErrUnknownHandle is returned when a draw references a handle the device
// never created.
var ErrUnknownHandle = errors.New("unknown device handle")

// RecordedBuffer is a buffer created on a Recorder.
type RecordedBuffer struct {
	Kind BufferKind
	Data []byte
}

// Recorder is an in-memory Device. It keeps every created object and every
// draw call so ingestion and frame driving can run without a GPU.
type Recorder struct {
	Shaders   [][2]string
	Buffers   []RecordedBuffer
	Pipelines []PipelineDesc
	Draws     []DrawCall

	Frames   int
	Released bool

	// BufferErr, when set, is returned by CreateBuffer.
	BufferErr error
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) CreateShader(vertexSrc, fragmentSrc string) (Shader, error) {
	r.Shaders = append(r.Shaders, [2]string{vertexSrc, fragmentSrc})
	return Shader(len(r.Shaders)), nil
}

// CreateBuffer copies data, as a real device would upload it.
func (r *Recorder) CreateBuffer(kind BufferKind, data []byte) (Buffer, error) {
	if r.BufferErr != nil {
		return 0, r.BufferErr
	}
	r.Buffers = append(r.Buffers, RecordedBuffer{Kind: kind, Data: append([]byte(nil), data...)})
	return Buffer(len(r.Buffers)), nil
}

func (r *Recorder) CreatePipeline(desc PipelineDesc) (Pipeline, error) {
	if desc.Shader == 0 || int(desc.Shader) > len(r.Shaders) {
		return 0, fmt.Errorf("pipeline shader %d: %w", desc.Shader, ErrUnknownHandle)
	}
	r.Pipelines = append(r.Pipelines, desc)
	return Pipeline(len(r.Pipelines)), nil
}

func (r *Recorder) BeginFrame(width, height int, clear [4]float32) {}

// Draw validates every handle in the call before recording it.
func (r *Recorder) Draw(call DrawCall) error {
	if call.Pipeline == 0 || int(call.Pipeline) > len(r.Pipelines) {
		return fmt.Errorf("pipeline %d: %w", call.Pipeline, ErrUnknownHandle)
	}
	for i, b := range call.VertexBuffers {
		if b == 0 || int(b) > len(r.Buffers) {
			return fmt.Errorf("vertex stream %d buffer %d: %w", i, b, ErrUnknownHandle)
		}
	}
	if call.IndexBuffer == 0 || int(call.IndexBuffer) > len(r.Buffers) {
		return fmt.Errorf("index buffer %d: %w", call.IndexBuffer, ErrUnknownHandle)
	}
	r.Draws = append(r.Draws, call)
	return nil
}

func (r *Recorder) EndFrame() {
	r.Frames++
}

func (r *Recorder) Release() {
	r.Released = true
}

// Buffer returns the recorded buffer behind a handle.
func (r *Recorder) Buffer(b Buffer) RecordedBuffer {
	return r.Buffers[b-1]
}

// Pipeline returns the recorded description behind a handle.
func (r *Recorder) Pipeline(p Pipeline) PipelineDesc {
	return r.Pipelines[p-1]
}
