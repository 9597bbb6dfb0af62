// Package scene holds the resource tables of the viewer and fills them from
// glTF assets: one GPU buffer per buffer view, one pipeline and submesh per
// primitive, one mesh per glTF mesh, one entity per placed mesh.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltfview/internal/engine/gpu"
)

// Table handles. Each indexes exactly one table, so a submesh index can't be
// used to look up a buffer by mistake.
type (
	BufferHandle   int
	PipelineHandle int
	SubmeshIndex   int
	MeshIndex      int
	EntityIndex    int
)

// Submesh buffer slots.
const (
	SlotPosition = gpu.StreamPosition
	SlotNormal   = gpu.StreamNormal
	SlotTexcoord = gpu.StreamTexcoord
	SlotIndex    = gpu.StreamCount
	SlotCount    = SlotIndex + 1
)

// BufferRecord is one uploaded buffer view.
type BufferRecord struct {
	GPU  gpu.Buffer
	Kind gpu.BufferKind
	Size int
}

// PipelineRecord is one pipeline state object.
type PipelineRecord struct {
	GPU       gpu.Pipeline
	IndexType gpu.IndexType
}

// Submesh is one drawable glTF primitive.
type Submesh struct {
	Buffers      [SlotCount]BufferHandle
	Offsets      [SlotCount]int
	ElementCount int
	IndexType    gpu.IndexType
	Pipeline     PipelineHandle
}

// Mesh is the half-open submesh range [SubmeshStart, SubmeshEnd) of one glTF mesh.
type Mesh struct {
	SubmeshStart SubmeshIndex
	SubmeshEnd   SubmeshIndex
}

// Len returns the number of submeshes in the mesh.
func (m Mesh) Len() int {
	return int(m.SubmeshEnd - m.SubmeshStart)
}

// Entity is a placed instance of a mesh. Rotation is in degrees, applied X then Y then Z.
type Entity struct {
	Mesh     MeshIndex
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// Capacity is the fixed size of every table.
type Capacity struct {
	Buffers   int
	Pipelines int
	Submeshes int
	Meshes    int
	Entities  int
}

// DefaultCapacity returns the demo's table sizes.
func DefaultCapacity() Capacity {
	return Capacity{
		Buffers:   64,
		Pipelines: 32,
		Submeshes: 32,
		Meshes:    16,
		Entities:  16,
	}
}

// Resources owns the five append-only tables. Entries are never removed and
// handles are never reused; only entity transforms change after ingestion.
type Resources struct {
	capacity Capacity

	buffers   []BufferRecord
	pipelines []PipelineRecord
	submeshes []Submesh
	meshes    []Mesh
	entities  []Entity
}

// NewResources creates empty tables with the given capacity.
func NewResources(c Capacity) *Resources {
	return &Resources{
		capacity:  c,
		buffers:   make([]BufferRecord, 0, c.Buffers),
		pipelines: make([]PipelineRecord, 0, c.Pipelines),
		submeshes: make([]Submesh, 0, c.Submeshes),
		meshes:    make([]Mesh, 0, c.Meshes),
		entities:  make([]Entity, 0, c.Entities),
	}
}

// Capacity returns the table sizes.
func (r *Resources) Capacity() Capacity {
	return r.capacity
}

func (r *Resources) BufferCount() int   { return len(r.buffers) }
func (r *Resources) PipelineCount() int { return len(r.pipelines) }
func (r *Resources) SubmeshCount() int  { return len(r.submeshes) }
func (r *Resources) MeshCount() int     { return len(r.meshes) }
func (r *Resources) EntityCount() int   { return len(r.entities) }

// Buffer returns a buffer record. h must be a handle returned by AddBuffer.
func (r *Resources) Buffer(h BufferHandle) BufferRecord {
	return r.buffers[h]
}

// Pipeline returns a pipeline record.
func (r *Resources) Pipeline(h PipelineHandle) PipelineRecord {
	return r.pipelines[h]
}

// Submesh returns a submesh record.
func (r *Resources) Submesh(i SubmeshIndex) Submesh {
	return r.submeshes[i]
}

// Mesh returns a mesh record.
func (r *Resources) Mesh(i MeshIndex) Mesh {
	return r.meshes[i]
}

// Entity returns a pointer to an entity so its transform can be updated.
func (r *Resources) Entity(i EntityIndex) *Entity {
	return &r.entities[i]
}

// checkRoom fails with a CapacityError for the first table that cannot take
// the given number of new entries.
func (r *Resources) checkRoom(need Capacity) error {
	checks := []struct {
		table Table
		have  int
		need  int
		cap   int
	}{
		{TableBuffers, len(r.buffers), need.Buffers, r.capacity.Buffers},
		{TablePipelines, len(r.pipelines), need.Pipelines, r.capacity.Pipelines},
		{TableSubmeshes, len(r.submeshes), need.Submeshes, r.capacity.Submeshes},
		{TableMeshes, len(r.meshes), need.Meshes, r.capacity.Meshes},
		{TableEntities, len(r.entities), need.Entities, r.capacity.Entities},
	}
	for _, c := range checks {
		if c.have+c.need > c.cap {
			return &CapacityError{Table: c.table, Capacity: c.cap, Needed: c.need}
		}
	}
	return nil
}

// AddBuffer appends a buffer record.
func (r *Resources) AddBuffer(rec BufferRecord) (BufferHandle, error) {
	if err := r.checkRoom(Capacity{Buffers: 1}); err != nil {
		return 0, err
	}
	r.buffers = append(r.buffers, rec)
	return BufferHandle(len(r.buffers) - 1), nil
}

// AddPipeline appends a pipeline record.
func (r *Resources) AddPipeline(rec PipelineRecord) (PipelineHandle, error) {
	if err := r.checkRoom(Capacity{Pipelines: 1}); err != nil {
		return 0, err
	}
	r.pipelines = append(r.pipelines, rec)
	return PipelineHandle(len(r.pipelines) - 1), nil
}

// AddSubmesh appends a submesh. Every buffer slot and the pipeline must
// already be in their tables.
func (r *Resources) AddSubmesh(s Submesh) (SubmeshIndex, error) {
	for slot, b := range s.Buffers {
		if b < 0 || int(b) >= len(r.buffers) {
			return 0, fmt.Errorf("%w: submesh slot %d buffer %d (have %d)", ErrDanglingReference, slot, b, len(r.buffers))
		}
	}
	if s.Pipeline < 0 || int(s.Pipeline) >= len(r.pipelines) {
		return 0, fmt.Errorf("%w: submesh pipeline %d (have %d)", ErrDanglingReference, s.Pipeline, len(r.pipelines))
	}
	if err := r.checkRoom(Capacity{Submeshes: 1}); err != nil {
		return 0, err
	}
	r.submeshes = append(r.submeshes, s)
	return SubmeshIndex(len(r.submeshes) - 1), nil
}

// AddMesh appends a mesh whose range must lie within the submesh table.
func (r *Resources) AddMesh(m Mesh) (MeshIndex, error) {
	if m.SubmeshStart < 0 || m.SubmeshStart > m.SubmeshEnd || int(m.SubmeshEnd) > len(r.submeshes) {
		return 0, fmt.Errorf("%w: mesh range [%d, %d) (have %d submeshes)", ErrDanglingReference, m.SubmeshStart, m.SubmeshEnd, len(r.submeshes))
	}
	if err := r.checkRoom(Capacity{Meshes: 1}); err != nil {
		return 0, err
	}
	r.meshes = append(r.meshes, m)
	return MeshIndex(len(r.meshes) - 1), nil
}

// AddEntity appends an entity referencing an existing mesh.
func (r *Resources) AddEntity(e Entity) (EntityIndex, error) {
	if e.Mesh < 0 || int(e.Mesh) >= len(r.meshes) {
		return 0, fmt.Errorf("%w: entity mesh %d (have %d)", ErrDanglingReference, e.Mesh, len(r.meshes))
	}
	if err := r.checkRoom(Capacity{Entities: 1}); err != nil {
		return 0, err
	}
	r.entities = append(r.entities, e)
	return EntityIndex(len(r.entities) - 1), nil
}

// TableStats is the occupancy of one table.
type TableStats struct {
	Table    Table
	Len      int
	Capacity int
}

// Stats returns the occupancy of every table in a fixed order.
func (r *Resources) Stats() []TableStats {
	return []TableStats{
		{TableBuffers, len(r.buffers), r.capacity.Buffers},
		{TablePipelines, len(r.pipelines), r.capacity.Pipelines},
		{TableSubmeshes, len(r.submeshes), r.capacity.Submeshes},
		{TableMeshes, len(r.meshes), r.capacity.Meshes},
		{TableEntities, len(r.entities), r.capacity.Entities},
	}
}
