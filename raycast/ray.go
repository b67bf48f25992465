package raycast

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line. Direction need not be normalized; hit parameters are in
// units of Direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns Origin + t*Direction.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform maps r through m. The direction is not renormalized, so a hit
// parameter found against the transformed ray is valid for r as well.
func (r Ray) Transform(m mgl64.Mat4) Ray {
	return Ray{
		Origin:    m.Mul4x1(r.Origin.Vec4(1)).Vec3(),
		Direction: m.Mul4x1(r.Direction.Vec4(0)).Vec3(),
	}
}

const epsilon = 1e-9

// Sphere intersects r with a sphere and returns the nearest non-negative hit
// parameter.
func Sphere(r Ray, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	a := r.Direction.Dot(r.Direction)
	if a < epsilon {
		return 0, false
	}
	b := 2 * oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)

	if t1 >= 0 {
		return t1, true
	}
	if t2 >= 0 {
		// origin inside the sphere
		return t2, true
	}
	return 0, false
}

// Box intersects r with the axis-aligned box [min, max] using the slab method.
func Box(r Ray, min, max mgl64.Vec3) (float64, bool) {
	tmin := 0.0
	tmax := math.Inf(1)

	for i := 0; i < 3; i++ {
		o, d := r.Origin[i], r.Direction[i]
		if math.Abs(d) < epsilon {
			if o < min[i] || o > max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (min[i] - o) * inv
		t2 := (max[i] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmax < tmin {
			return 0, false
		}
	}
	return tmin, true
}

// Triangle intersects r with triangle abc (Möller–Trumbore). Both faces count.
func Triangle(r Ray, a, b, c mgl64.Vec3) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < epsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
