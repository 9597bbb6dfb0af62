package viewer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltfview/internal/config"
	"github.com/Faultbox/gltfview/internal/engine/input"
	"github.com/Faultbox/gltfview/internal/engine/scene"
)

// ModelMatrix returns T * Rx * Ry * Rz * S for an entity. Rotation is in
// degrees.
func ModelMatrix(e scene.Entity) mgl32.Mat4 {
	t := mgl32.Translate3D(e.Position.X(), e.Position.Y(), e.Position.Z())
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(e.Rotation.X()))
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(e.Rotation.Y()))
	rz := mgl32.HomogRotate3DZ(mgl32.DegToRad(e.Rotation.Z()))
	s := mgl32.Scale3D(e.Scale.X(), e.Scale.Y(), e.Scale.Z())
	return t.Mul4(rx).Mul4(ry).Mul4(rz).Mul4(s)
}

// ApplyInput turns the entity around Z with left/right and moves it along
// its heading on the XZ plane with up/down. Opposing buttons held together
// resolve to right and up, respectively.
func ApplyInput(state *input.State, e *scene.Entity, cfg config.InputConfig) {
	if state.Left.IsDown || state.Right.IsDown {
		dir := float32(1)
		if state.Right.IsDown {
			dir = -1
		}
		e.Rotation[2] += cfg.TurnStep * dir
	}

	if state.Up.IsDown || state.Down.IsDown {
		dir := -cfg.MoveStep
		if state.Up.IsDown {
			dir = cfg.MoveStep
		}
		heading := mgl32.DegToRad(e.Rotation.Z())
		e.Position[0] += math32.Sin(heading) * dir
		e.Position[2] += math32.Cos(heading) * dir
	}
}
