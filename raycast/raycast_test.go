package raycast

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/portfolio3d/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNDC(t *testing.T) {
	cases := []struct {
		name   string
		x, y   float64
		w, h   float64
		expect NDC
	}{
		{"top_left", 0, 0, 800, 600, NDC{-1, 1}},
		{"bottom_right", 800, 600, 800, 600, NDC{1, -1}},
		{"center", 400, 300, 800, 600, NDC{0, 0}},
		{"quarter", 200, 450, 800, 600, NDC{-0.5, -0.5}},
		{"empty_viewport", 10, 10, 0, 600, NDC{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ToNDC(c.x, c.y, c.w, c.h)
			assert.InDelta(t, c.expect.X, got.X, 1e-12)
			assert.InDelta(t, c.expect.Y, got.Y, 1e-12)
		})
	}
}

func TestToNDCRange(t *testing.T) {
	const w, h = 1024.0, 768.0
	for x := 0.0; x <= w; x += 64 {
		for y := 0.0; y <= h; y += 48 {
			n := ToNDC(x, y, w, h)
			require.True(t, n.X >= -1 && n.X <= 1 && n.Y >= -1 && n.Y <= 1, "(%v,%v) -> %+v", x, y, n)
			sx, sy := ToScreen(n, w, h)
			assert.InDelta(t, x, sx, 1e-9)
			assert.InDelta(t, y, sy, 1e-9)
		}
	}
}

func newTestProjector(pos mgl64.Vec3) Projector {
	return NewProjector(component.NewTransform(pos), component.Camera{FOV: 75, Near: 0.1, Far: 1000}, 800.0/600.0)
}

func TestProjectorRay(t *testing.T) {
	p := newTestProjector(mgl64.Vec3{1, 2, 3})

	r := p.Ray(NDC{})
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, r.Origin)
	assert.InDelta(t, 1, r.Direction.Len(), 1e-9)
	assert.InDelta(t, -1, r.Direction.Z(), 1e-9)

	// rays through the right and top edges lean that way
	assert.Greater(t, p.Ray(NDC{X: 1}).Direction.X(), 0.0)
	assert.Greater(t, p.Ray(NDC{Y: 1}).Direction.Y(), 0.0)
}

func TestProjectorRoundTrip(t *testing.T) {
	p := newTestProjector(mgl64.Vec3{})
	for _, world := range []mgl64.Vec3{{0, 0, -10}, {3, -2, -25}, {-5, 5, -50}} {
		n, _, ok := p.Project(world)
		require.True(t, ok)
		r := p.Ray(n)
		// the ray through the projected point passes through it
		d := world.Sub(r.Origin)
		assert.InDelta(t, 0, d.Cross(r.Direction).Len(), 1e-6)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	p := newTestProjector(mgl64.Vec3{})
	_, _, ok := p.Project(mgl64.Vec3{0, 0, 5})
	assert.False(t, ok)
	_, depth, ok := p.Project(mgl64.Vec3{0, 0, -5})
	assert.True(t, ok)
	assert.True(t, depth > -1 && depth < 1)
	assert.InDelta(t, -5, p.ToView(mgl64.Vec3{0, 0, -5}).Z(), 1e-9)
}

func TestSphere(t *testing.T) {
	r := Ray{Direction: mgl64.Vec3{0, 0, -1}}
	cases := []struct {
		name   string
		ray    Ray
		center mgl64.Vec3
		hit    bool
		t      float64
	}{
		{"ahead", r, mgl64.Vec3{0, 0, -10}, true, 9},
		{"behind", r, mgl64.Vec3{0, 0, 10}, false, 0},
		{"miss", r, mgl64.Vec3{3, 0, -10}, false, 0},
		{"inside", r, mgl64.Vec3{0, 0, -0.5}, true, 1.5},
		{"scaled_direction", Ray{Direction: mgl64.Vec3{0, 0, -2}}, mgl64.Vec3{0, 0, -10}, true, 4.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := Sphere(c.ray, c.center, 1)
			assert.Equal(t, c.hit, ok)
			if c.hit {
				assert.InDelta(t, c.t, got, 1e-9)
			}
		})
	}
}

func TestBox(t *testing.T) {
	min, max := mgl64.Vec3{-1, -1, -11}, mgl64.Vec3{1, 1, -9}

	got, ok := Box(Ray{Direction: mgl64.Vec3{0, 0, -1}}, min, max)
	require.True(t, ok)
	assert.InDelta(t, 9, got, 1e-9)

	_, ok = Box(Ray{Origin: mgl64.Vec3{2, 0, 0}, Direction: mgl64.Vec3{0, 0, -1}}, min, max)
	assert.False(t, ok)

	_, ok = Box(Ray{Direction: mgl64.Vec3{0, 0, 1}}, min, max)
	assert.False(t, ok, "box behind the origin")

	got, ok = Box(Ray{Origin: mgl64.Vec3{0, 0, -10}, Direction: mgl64.Vec3{0, 0, -1}}, min, max)
	require.True(t, ok)
	assert.Zero(t, got, "origin inside")

	diag := mgl64.Vec3{1, 0, -1}.Normalize()
	got, ok = Box(Ray{Origin: mgl64.Vec3{-9, 0, 0}, Direction: diag}, min, max)
	require.True(t, ok)
	assert.InDelta(t, 9*math.Sqrt2, got, 1e-9)
}

func TestTriangle(t *testing.T) {
	a, b, c := mgl64.Vec3{-1, -1, -5}, mgl64.Vec3{1, -1, -5}, mgl64.Vec3{0, 1, -5}

	got, ok := Triangle(Ray{Direction: mgl64.Vec3{0, 0, -1}}, a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 5, got, 1e-9)

	// back face counts too
	got, ok = Triangle(Ray{Origin: mgl64.Vec3{0, 0, -10}, Direction: mgl64.Vec3{0, 0, 1}}, a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 5, got, 1e-9)

	_, ok = Triangle(Ray{Origin: mgl64.Vec3{2, 2, 0}, Direction: mgl64.Vec3{0, 0, -1}}, a, b, c)
	assert.False(t, ok)

	_, ok = Triangle(Ray{Direction: mgl64.Vec3{1, 0, 0}}, a, b, c)
	assert.False(t, ok, "parallel")
}

func TestRayTransform(t *testing.T) {
	m := mgl64.Translate3D(0, 0, -10).Mul4(mgl64.Scale3D(2, 2, 2))
	r := Ray{Direction: mgl64.Vec3{0, 0, -1}}
	local := r.Transform(m.Inv())

	got, ok := Sphere(local, mgl64.Vec3{}, 1)
	require.True(t, ok)
	assert.InDelta(t, 8, got, 1e-9, "hit parameter is the world distance")
	assert.InDelta(t, -8, r.At(got).Z(), 1e-9)
}
