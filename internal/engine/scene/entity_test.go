package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlacement(t *testing.T) {
	tests := []struct {
		i, n  int
		x     float32
		scale float32
	}{
		{0, 4, -15, 0.5},
		{1, 4, -5, 1.0},
		{2, 4, 5, 1.5},
		{3, 4, 15, 2.0},
		{0, 1, 0, 0.5},
	}

	for _, tt := range tests {
		e := Placement(tt.i, tt.n)
		assert.Equal(t, MeshIndex(tt.i), e.Mesh)
		assert.Equal(t, mgl32.Vec3{tt.x, 0, 0}, e.Position, "entity %d of %d", tt.i, tt.n)
		assert.Equal(t, mgl32.Vec3{tt.scale, tt.scale, tt.scale}, e.Scale)
		assert.Equal(t, mgl32.Vec3{-90, 0, 0}, e.Rotation)
	}
}

func TestPlaceEntities(t *testing.T) {
	l, _ := newTestLoader(t, DefaultCapacity())
	ingest(t, l, buildDoc(1, 2, 1))

	require.NoError(t, PlaceEntities(l.Resources))
	require.Equal(t, 3, l.Resources.EntityCount())
	for i := 0; i < 3; i++ {
		assert.Equal(t, MeshIndex(i), l.Resources.Entity(EntityIndex(i)).Mesh)
	}
}

func TestPlaceEntities_Capacity(t *testing.T) {
	c := DefaultCapacity()
	c.Entities = 2

	l, _ := newTestLoader(t, c)
	ingest(t, l, buildDoc(1, 1, 1))

	err := PlaceEntities(l.Resources)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Zero(t, l.Resources.EntityCount())
}
