package scene

import "github.com/go-gl/mathgl/mgl32"

// Entity layout constants.
const (
	EntitySpacing = 10.0
	EntityTilt    = -90.0 // degrees around X, glTF Y-up models lie flat otherwise
)

// Placement returns the entity for mesh i of n: spaced EntitySpacing apart
// along X and centred on the origin, tilted by EntityTilt and scaled by
// (i+1)/2.
func Placement(i, n int) Entity {
	scale := float32(i+1) * 0.5
	return Entity{
		Mesh: MeshIndex(i),
		Position: mgl32.Vec3{
			-float32(n)*EntitySpacing/2 + float32(i)*EntitySpacing + EntitySpacing/2,
			0,
			0,
		},
		Rotation: mgl32.Vec3{EntityTilt, 0, 0},
		Scale:    mgl32.Vec3{scale, scale, scale},
	}
}

// PlaceEntities appends one entity per mesh, in mesh order. Either all
// entities fit or none are added.
func PlaceEntities(res *Resources) error {
	n := res.MeshCount()
	if err := res.checkRoom(Capacity{Entities: n}); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if _, err := res.AddEntity(Placement(i, n)); err != nil {
			return err
		}
	}
	return nil
}
