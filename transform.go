package arbor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// eulerTransform builds the model matrix for an entity at position with
// the given euler angles in degrees.
//
// Composition order, for a column vector v:
//
//	Translate(position) * Rz * Ry * Rx * v
//
// so the x rotation is applied first and the translation last.
func eulerTransform(position, eulers mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(eulers.Z())))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(eulers.Y())))
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(eulers.X())))
	return m
}

// wrapDegrees maps an angle onto [0, 360).
func wrapDegrees(deg float32) float32 {
	deg = math32.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// clampDegrees limits an angle to [lo, hi].
func clampDegrees(deg, lo, hi float32) float32 {
	return math32.Min(hi, math32.Max(lo, deg))
}
