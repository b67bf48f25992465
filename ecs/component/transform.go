package component

import "github.com/go-gl/mathgl/mgl64"

// Transform places an entity in world space. Rotation is Euler angles in
// radians applied in XYZ order.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

// NewTransform returns an identity transform at pos.
func NewTransform(pos mgl64.Vec3) Transform {
	return Transform{Position: pos, Scale: mgl64.Vec3{1, 1, 1}}
}

// Matrix returns the model matrix T * Rx * Ry * Rz * S. A zero scale axis is
// treated as 1.
func (t Transform) Matrix() mgl64.Mat4 {
	sx, sy, sz := t.Scale.X(), t.Scale.Y(), t.Scale.Z()
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.RotationMatrix()).
		Mul4(mgl64.Scale3D(sx, sy, sz))
}

// RotationMatrix returns Rx * Ry * Rz.
func (t Transform) RotationMatrix() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(t.Rotation.X()).
		Mul4(mgl64.HomogRotate3DY(t.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(t.Rotation.Z()))
}

var TransformComponent = NewComponent[Transform]()
