package scene

import (
	"errors"
	"fmt"
)

// Asset loading and resource table errors.
var (
	ErrFileNotFound         = errors.New("asset file not found")
	ErrIO                   = errors.New("asset file unreadable")
	ErrParse                = errors.New("malformed asset")
	ErrBufferResolution     = errors.New("asset buffer data unavailable")
	ErrMalformedAsset       = errors.New("unsupported asset structure")
	ErrUnsupportedPrimitive = errors.New("unsupported primitive")
	ErrCapacityExceeded     = errors.New("resource table full")
	ErrDanglingReference    = errors.New("reference to missing table entry")
)

// Table names a resource table.
type Table string

const (
	TableBuffers   Table = "buffers"
	TablePipelines Table = "pipelines"
	TableSubmeshes Table = "submeshes"
	TableMeshes    Table = "meshes"
	TableEntities  Table = "entities"
)

// CapacityError reports which table could not take more entries.
// It matches ErrCapacityExceeded with errors.Is.
type CapacityError struct {
	Table    Table
	Capacity int
	Needed   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s table full: need %d more, capacity %d", e.Table, e.Needed, e.Capacity)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
