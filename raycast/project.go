// Package raycast maps pointer positions to world-space rays and intersects
// rays with primitive shapes.
package raycast

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/portfolio3d/ecs/component"
)

// NDC is a point in normalized device coordinates. Values inside the viewport
// lie in [-1, 1]; Y points up.
type NDC struct {
	X float64
	Y float64
}

// ToNDC maps a pixel position to normalized device coordinates. Positions
// outside the viewport extrapolate past [-1, 1].
func ToNDC(clientX, clientY, width, height float64) NDC {
	if width == 0 || height == 0 {
		return NDC{}
	}
	return NDC{
		X: (clientX/width)*2 - 1,
		Y: -(clientY/height)*2 + 1,
	}
}

// ToScreen is the inverse of ToNDC.
func ToScreen(n NDC, width, height float64) (float64, float64) {
	return (n.X + 1) / 2 * width, (1 - n.Y) / 2 * height
}

// Projector holds the matrices of one camera for one viewport.
type Projector struct {
	Position   mgl64.Vec3
	View       mgl64.Mat4
	Projection mgl64.Mat4
	Near       float64

	viewProj    mgl64.Mat4
	invViewProj mgl64.Mat4
}

// NewProjector builds the view and projection matrices for cam placed at t.
// Scale on the camera transform is ignored.
func NewProjector(t component.Transform, cam component.Camera, aspect float64) Projector {
	fov, near, far := cam.FOV, cam.Near, cam.Far
	if fov <= 0 {
		fov = 75
	}
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = near + 1000
	}
	if aspect <= 0 {
		aspect = 1
	}

	pose := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).Mul4(t.RotationMatrix())
	p := Projector{
		Position:   t.Position,
		View:       pose.Inv(),
		Projection: mgl64.Perspective(mgl64.DegToRad(fov), aspect, near, far),
		Near:       near,
	}
	p.viewProj = p.Projection.Mul4(p.View)
	p.invViewProj = p.viewProj.Inv()
	return p
}

// Unproject maps an NDC point at normalized depth z (-1 near, 1 far) back to
// world space.
func (p Projector) Unproject(n NDC, z float64) mgl64.Vec3 {
	v := p.invViewProj.Mul4x1(mgl64.Vec4{n.X, n.Y, z, 1})
	if v.W() == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v.W())
}

// Ray returns the world-space ray from the camera through n.
func (p Projector) Ray(n NDC) Ray {
	target := p.Unproject(n, 0.5)
	dir := target.Sub(p.Position)
	if dir.Len() == 0 {
		dir = mgl64.Vec3{0, 0, -1}
	}
	return Ray{Origin: p.Position, Direction: dir.Normalize()}
}

// ToView transforms a world point into camera space. The camera looks down -Z.
func (p Projector) ToView(world mgl64.Vec3) mgl64.Vec3 {
	return p.View.Mul4x1(world.Vec4(1)).Vec3()
}

// Project maps a world point to NDC. ok is false for points at or behind the
// near plane.
func (p Projector) Project(world mgl64.Vec3) (NDC, float64, bool) {
	clip := p.viewProj.Mul4x1(world.Vec4(1))
	if clip.W() < p.Near {
		return NDC{}, 0, false
	}
	inv := 1 / clip.W()
	return NDC{X: clip.X() * inv, Y: clip.Y() * inv}, clip.Z() * inv, true
}
