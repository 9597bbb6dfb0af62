package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfview/internal/engine/gpu"
	"github.com/Faultbox/gltfview/internal/logger"
)

// glTF attribute semantics that map to a vertex stream. Other attributes
// (tangents, colours, joints, extra texcoord sets) are ignored.
const (
	AttrPosition = "POSITION"
	AttrNormal   = "NORMAL"
	AttrTexcoord = "TEXCOORD_0"
)

var streamAttributes = [gpu.StreamCount]string{
	SlotPosition: AttrPosition,
	SlotNormal:   AttrNormal,
	SlotTexcoord: AttrTexcoord,
}

// Loader ingests parsed glTF documents into a Resources table set, creating
// GPU objects on Device as it goes.
type Loader struct {
	Device      gpu.Device
	Resources   *Resources
	Shader      gpu.Shader
	SampleCount int

	log *zap.Logger
}

// NewLoader creates a loader. Every pipeline it creates uses shader and
// sampleCount with the default vertex layout and depth state.
func NewLoader(dev gpu.Device, res *Resources, shader gpu.Shader, sampleCount int) *Loader {
	return &Loader{
		Device:      dev,
		Resources:   res,
		Shader:      shader,
		SampleCount: sampleCount,
		log:         logger.Named("ingest"),
	}
}

// IngestBuffers uploads every buffer view of doc, in order, as one GPU
// buffer and returns the table handle of the first one. Local buffer view i
// of doc ends up at base+i.
func (l *Loader) IngestBuffers(doc *gltf.Document) (BufferHandle, error) {
	if err := checkBuffers(doc); err != nil {
		return 0, err
	}
	if err := l.Resources.checkRoom(Capacity{Buffers: len(doc.BufferViews)}); err != nil {
		return 0, err
	}

	base := BufferHandle(l.Resources.BufferCount())
	for i, view := range doc.BufferViews {
		kind := gpu.VertexBuffer
		if view.Target == gltf.TargetElementArrayBuffer {
			kind = gpu.IndexBuffer
		}
		data := doc.Buffers[view.Buffer].Data[view.ByteOffset : view.ByteOffset+view.ByteLength]

		buf, err := l.Device.CreateBuffer(kind, data)
		if err != nil {
			return 0, fmt.Errorf("creating buffer for view %d: %w", i, err)
		}
		h, err := l.Resources.AddBuffer(BufferRecord{GPU: buf, Kind: kind, Size: len(data)})
		if err != nil {
			return 0, err
		}

		l.log.Debug("buffer view ingested",
			zap.Int("slot", int(h)),
			zap.Int("view", i),
			zap.Uint32("buffer", view.Buffer),
			zap.Stringer("kind", kind),
			zap.Int("size", len(data)),
		)
	}
	return base, nil
}

// IngestMeshes appends one submesh and pipeline per primitive and one mesh
// per glTF mesh, in document order, and returns the index of the first new
// mesh. The buffer views of doc must already be ingested at base.
//
// Every primitive is validated before anything is created, so an error
// leaves the tables as they were.
func (l *Loader) IngestMeshes(doc *gltf.Document, base BufferHandle) (MeshIndex, error) {
	pending, err := resolveMeshes(doc, base)
	if err != nil {
		return 0, err
	}
	if int(base)+len(doc.BufferViews) > l.Resources.BufferCount() {
		return 0, fmt.Errorf("%w: buffer views [%d, %d) not ingested (have %d)",
			ErrDanglingReference, base, int(base)+len(doc.BufferViews), l.Resources.BufferCount())
	}
	if err := l.Resources.checkRoom(pending.need()); err != nil {
		return 0, err
	}
	return l.commitMeshes(pending)
}

// pendingMeshes holds resolved submeshes, grouped per glTF mesh, that have
// no pipeline yet.
type pendingMeshes [][]Submesh

func (p pendingMeshes) need() Capacity {
	n := 0
	for _, m := range p {
		n += len(m)
	}
	return Capacity{Pipelines: n, Submeshes: n, Meshes: len(p)}
}

func (l *Loader) commitMeshes(pending pendingMeshes) (MeshIndex, error) {
	first := MeshIndex(l.Resources.MeshCount())
	for i, prims := range pending {
		start := SubmeshIndex(l.Resources.SubmeshCount())

		for j, sm := range prims {
			pipe, err := l.Device.CreatePipeline(gpu.PipelineDesc{
				Layout:      gpu.DefaultVertexLayout(),
				Depth:       gpu.DefaultDepthState(),
				Cull:        gpu.CullNone,
				SampleCount: l.SampleCount,
				IndexType:   sm.IndexType,
				Shader:      l.Shader,
			})
			if err != nil {
				return 0, fmt.Errorf("creating pipeline for mesh %d primitive %d: %w", i, j, err)
			}
			sm.Pipeline, err = l.Resources.AddPipeline(PipelineRecord{GPU: pipe, IndexType: sm.IndexType})
			if err != nil {
				return 0, err
			}
			idx, err := l.Resources.AddSubmesh(sm)
			if err != nil {
				return 0, err
			}

			l.log.Debug("primitive ingested",
				zap.Int("submesh", int(idx)),
				zap.Int("mesh", i),
				zap.Int("primitive", j),
				zap.Int("pipeline", int(sm.Pipeline)),
				zap.Ints("buffers", []int{int(sm.Buffers[0]), int(sm.Buffers[1]), int(sm.Buffers[2]), int(sm.Buffers[3])}),
				zap.Int("elements", sm.ElementCount),
				zap.Stringer("index_type", sm.IndexType),
			)
		}

		m, err := l.Resources.AddMesh(Mesh{SubmeshStart: start, SubmeshEnd: SubmeshIndex(l.Resources.SubmeshCount())})
		if err != nil {
			return 0, err
		}
		l.log.Debug("mesh ingested",
			zap.Int("mesh", int(m)),
			zap.Int("gltf_mesh", i),
			zap.Int("submesh_start", int(start)),
			zap.Int("submesh_end", l.Resources.SubmeshCount()),
		)
	}
	return first, nil
}

// checkBuffers verifies every buffer view points at resolved buffer data.
func checkBuffers(doc *gltf.Document) error {
	if len(doc.Buffers) == 0 {
		return fmt.Errorf("%w: no buffers", ErrMalformedAsset)
	}
	if len(doc.BufferViews) == 0 {
		return fmt.Errorf("%w: no buffer views", ErrMalformedAsset)
	}
	for i, view := range doc.BufferViews {
		if view == nil || int(view.Buffer) >= len(doc.Buffers) || doc.Buffers[view.Buffer] == nil {
			return fmt.Errorf("%w: buffer view %d references a missing buffer", ErrMalformedAsset, i)
		}
		data := doc.Buffers[view.Buffer].Data
		end := uint64(view.ByteOffset) + uint64(view.ByteLength)
		if end > uint64(len(data)) {
			return fmt.Errorf("%w: buffer view %d spans [%d, %d) of buffer %d, which has %d bytes",
				ErrBufferResolution, i, view.ByteOffset, end, view.Buffer, len(data))
		}
	}
	return nil
}

// resolveMeshes turns every primitive of doc into a Submesh whose buffer
// slots are global handles (base + local buffer view index).
func resolveMeshes(doc *gltf.Document, base BufferHandle) (pendingMeshes, error) {
	if len(doc.Meshes) == 0 {
		return nil, fmt.Errorf("%w: no meshes", ErrMalformedAsset)
	}
	if len(doc.Accessors) == 0 {
		return nil, fmt.Errorf("%w: no accessors", ErrMalformedAsset)
	}

	pending := make(pendingMeshes, len(doc.Meshes))
	for i, mesh := range doc.Meshes {
		if mesh == nil {
			return nil, fmt.Errorf("%w: mesh %d is null", ErrMalformedAsset, i)
		}
		prims := make([]Submesh, 0, len(mesh.Primitives))
		for j, prim := range mesh.Primitives {
			sm, err := resolvePrimitive(doc, base, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d (%q) primitive %d: %w", i, mesh.Name, j, err)
			}
			prims = append(prims, sm)
		}
		pending[i] = prims
	}
	return pending, nil
}

func resolvePrimitive(doc *gltf.Document, base BufferHandle, prim *gltf.Primitive) (Submesh, error) {
	var sm Submesh
	if prim == nil {
		return sm, fmt.Errorf("%w: null primitive", ErrMalformedAsset)
	}
	if prim.Mode != gltf.PrimitiveTriangles {
		return sm, fmt.Errorf("%w: mode %v, only triangles are drawn", ErrUnsupportedPrimitive, prim.Mode)
	}
	if prim.Indices == nil {
		return sm, fmt.Errorf("%w: no index accessor", ErrUnsupportedPrimitive)
	}

	layout := gpu.DefaultVertexLayout()
	for slot, name := range streamAttributes {
		accIdx, ok := prim.Attributes[name]
		if !ok {
			return sm, fmt.Errorf("%w: missing %s attribute", ErrUnsupportedPrimitive, name)
		}
		buf, acc, view, err := resolveAccessor(doc, base, accIdx)
		if err != nil {
			return sm, fmt.Errorf("%s: %w", name, err)
		}

		want := layout.Streams[slot]
		if got := VertexFormatOf(acc); got != want.Format {
			return sm, fmt.Errorf("%w: %s is %v, want %v", ErrUnsupportedPrimitive, name, got, want.Format)
		}
		if view.ByteStride != 0 && int(view.ByteStride) != want.Stride {
			return sm, fmt.Errorf("%w: %s has byte stride %d, want %d", ErrUnsupportedPrimitive, name, view.ByteStride, want.Stride)
		}

		sm.Buffers[slot] = buf
		sm.Offsets[slot] = int(acc.ByteOffset)
	}

	buf, acc, _, err := resolveAccessor(doc, base, *prim.Indices)
	if err != nil {
		return sm, fmt.Errorf("indices: %w", err)
	}
	sm.IndexType = IndexTypeOf(acc)
	if sm.IndexType == gpu.IndexNone || acc.Type != gltf.AccessorScalar {
		return sm, fmt.Errorf("%w: index accessor is %v %v", ErrUnsupportedPrimitive, acc.Type, acc.ComponentType)
	}
	sm.Buffers[SlotIndex] = buf
	sm.Offsets[SlotIndex] = int(acc.ByteOffset)
	sm.ElementCount = int(acc.Count)

	return sm, nil
}

// resolveAccessor maps an accessor to the global handle of its buffer view.
func resolveAccessor(doc *gltf.Document, base BufferHandle, idx uint32) (BufferHandle, *gltf.Accessor, *gltf.BufferView, error) {
	if int(idx) >= len(doc.Accessors) || doc.Accessors[idx] == nil {
		return 0, nil, nil, fmt.Errorf("%w: accessor %d does not exist", ErrMalformedAsset, idx)
	}
	acc := doc.Accessors[idx]
	if acc.BufferView == nil {
		// Sparse or zero-initialised accessors have no backing view to bind.
		return 0, nil, nil, fmt.Errorf("%w: accessor %d has no buffer view", ErrUnsupportedPrimitive, idx)
	}
	viewIdx := *acc.BufferView
	if int(viewIdx) >= len(doc.BufferViews) {
		return 0, nil, nil, fmt.Errorf("%w: accessor %d references buffer view %d", ErrMalformedAsset, idx, viewIdx)
	}
	return base + BufferHandle(viewIdx), acc, doc.BufferViews[viewIdx], nil
}

// VertexFormatOf returns the vertex format an accessor's data can be read as,
// or gpu.FormatInvalid if the device has no matching format.
func VertexFormatOf(acc *gltf.Accessor) gpu.VertexFormat {
	switch acc.ComponentType {
	case gltf.ComponentByte:
		if acc.Type == gltf.AccessorVec4 {
			if acc.Normalized {
				return gpu.Byte4N
			}
			return gpu.Byte4
		}
	case gltf.ComponentUbyte:
		if acc.Type == gltf.AccessorVec4 {
			if acc.Normalized {
				return gpu.UByte4N
			}
			return gpu.UByte4
		}
	case gltf.ComponentShort:
		switch acc.Type {
		case gltf.AccessorVec2:
			if acc.Normalized {
				return gpu.Short2N
			}
			return gpu.Short2
		case gltf.AccessorVec4:
			if acc.Normalized {
				return gpu.Short4N
			}
			return gpu.Short4
		}
	case gltf.ComponentFloat:
		switch acc.Type {
		case gltf.AccessorScalar:
			return gpu.Float
		case gltf.AccessorVec2:
			return gpu.Float2
		case gltf.AccessorVec3:
			return gpu.Float3
		case gltf.AccessorVec4:
			return gpu.Float4
		}
	}
	return gpu.FormatInvalid
}

// IndexTypeOf returns the index type of an index accessor, or gpu.IndexNone
// if its component type cannot index.
func IndexTypeOf(acc *gltf.Accessor) gpu.IndexType {
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		return gpu.IndexUint8
	case gltf.ComponentUshort:
		return gpu.IndexUint16
	case gltf.ComponentUint:
		return gpu.IndexUint32
	default:
		return gpu.IndexNone
	}
}
