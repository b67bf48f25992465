package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/portfolio3d/ecs/component"
)

// Vertex is an object-space position with texture coordinates in [0, 1].
type Vertex struct {
	Pos  mgl64.Vec3
	U, V float64
}

// MeshData is a triangle list. Every triangle is wound counter-clockwise when
// seen from outside the surface.
type MeshData struct {
	Vertices []Vertex
	Indices  []int
	// Radius bounds every vertex around the object-space origin.
	Radius float64
}

// Triangle returns the object-space corners of triangle i.
func (m *MeshData) Triangle(i int) (a, b, c mgl64.Vec3) {
	return m.Vertices[m.Indices[3*i]].Pos, m.Vertices[m.Indices[3*i+1]].Pos, m.Vertices[m.Indices[3*i+2]].Pos
}

// TriangleCount returns len(Indices)/3.
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

var meshes = map[component.Mesh]*MeshData{}

// MeshFor returns the cached triangle mesh for a geometry descriptor,
// building it on first use.
func MeshFor(desc component.Mesh) *MeshData {
	if m, ok := meshes[desc]; ok {
		return m
	}
	var m *MeshData
	switch desc.Geometry {
	case component.GeometryBox:
		m = buildBox(desc)
	case component.GeometryTorus:
		m = buildTorus(desc)
	case component.GeometryTorusKnot:
		m = buildTorusKnot(desc)
	default:
		m = buildSphere(desc)
	}
	for _, v := range m.Vertices {
		m.Radius = math.Max(m.Radius, v.Pos.Len())
	}
	meshes[desc] = m
	return m
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type meshBuilder struct {
	m *MeshData
}

func (b *meshBuilder) vertex(pos mgl64.Vec3, u, v float64) int {
	b.m.Vertices = append(b.m.Vertices, Vertex{Pos: pos, U: u, V: v})
	return len(b.m.Vertices) - 1
}

// tri appends a triangle, flipping it if needed so its normal agrees with
// outward. Degenerate triangles are dropped.
func (b *meshBuilder) tri(i0, i1, i2 int, outward mgl64.Vec3) {
	p0, p1, p2 := b.m.Vertices[i0].Pos, b.m.Vertices[i1].Pos, b.m.Vertices[i2].Pos
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if n.Len() < 1e-12 {
		return
	}
	if n.Dot(outward) < 0 {
		i1, i2 = i2, i1
	}
	b.m.Indices = append(b.m.Indices, i0, i1, i2)
}

// grid connects a (cols+1) x (rows+1) vertex grid starting at base.
func (b *meshBuilder) grid(base, cols, rows int, outward func(a, c, d int) mgl64.Vec3) {
	stride := cols + 1
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			a := base + j*stride + i
			c := a + 1
			d := a + stride
			e := d + 1
			out := outward(a, c, d)
			b.tri(a, d, c, out)
			b.tri(c, d, e, out)
		}
	}
}

func buildSphere(desc component.Mesh) *MeshData {
	r := desc.Radius
	if r <= 0 {
		r = 1
	}
	w := orDefault(desc.Segments, 24)
	h := orDefault(desc.Rings, 16)

	b := &meshBuilder{m: &MeshData{}}
	for j := 0; j <= h; j++ {
		v := float64(j) / float64(h)
		theta := v * math.Pi
		for i := 0; i <= w; i++ {
			u := float64(i) / float64(w)
			phi := u * 2 * math.Pi
			pos := mgl64.Vec3{
				-r * math.Cos(phi) * math.Sin(theta),
				r * math.Cos(theta),
				r * math.Sin(phi) * math.Sin(theta),
			}
			b.vertex(pos, u, v)
		}
	}
	b.grid(0, w, h, func(a, c, d int) mgl64.Vec3 {
		return b.m.Vertices[a].Pos.Add(b.m.Vertices[c].Pos).Add(b.m.Vertices[d].Pos)
	})
	return b.m
}

func buildBox(desc component.Mesh) *MeshData {
	size := desc.Size
	for i := range size {
		if size[i] <= 0 {
			size[i] = 1
		}
	}
	hx, hy, hz := size[0]/2, size[1]/2, size[2]/2

	faces := []struct {
		normal, u, v mgl64.Vec3
	}{
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}},
		{mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}},
		{mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 0, -1}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 1, 0}},
	}
	half := mgl64.Vec3{hx, hy, hz}
	scale := func(v mgl64.Vec3) mgl64.Vec3 {
		return mgl64.Vec3{v[0] * half[0], v[1] * half[1], v[2] * half[2]}
	}

	b := &meshBuilder{m: &MeshData{}}
	for _, f := range faces {
		center := scale(f.normal)
		du := scale(f.u)
		dv := scale(f.v)
		base := len(b.m.Vertices)
		for j := 0; j <= 1; j++ {
			for i := 0; i <= 1; i++ {
				su := float64(i)*2 - 1
				sv := float64(j)*2 - 1
				pos := center.Add(du.Mul(su)).Add(dv.Mul(sv))
				b.vertex(pos, float64(i), 1-float64(j))
			}
		}
		n := f.normal
		b.grid(base, 1, 1, func(int, int, int) mgl64.Vec3 { return n })
	}
	return b.m
}

func buildTorus(desc component.Mesh) *MeshData {
	radius := desc.Radius
	if radius <= 0 {
		radius = 1
	}
	tube := desc.Tube
	if tube <= 0 {
		tube = radius / 3
	}
	tubular := orDefault(desc.Segments, 48)
	radial := orDefault(desc.Rings, 12)

	b := &meshBuilder{m: &MeshData{}}
	centers := make([]mgl64.Vec3, 0, (tubular+1)*(radial+1))
	for j := 0; j <= radial; j++ {
		v := float64(j) / float64(radial) * 2 * math.Pi
		for i := 0; i <= tubular; i++ {
			u := float64(i) / float64(tubular) * 2 * math.Pi
			center := mgl64.Vec3{radius * math.Cos(u), radius * math.Sin(u), 0}
			pos := mgl64.Vec3{
				(radius + tube*math.Cos(v)) * math.Cos(u),
				(radius + tube*math.Cos(v)) * math.Sin(u),
				tube * math.Sin(v),
			}
			b.vertex(pos, float64(i)/float64(tubular), float64(j)/float64(radial))
			centers = append(centers, center)
		}
	}
	b.grid(0, tubular, radial, func(a, _, _ int) mgl64.Vec3 {
		return b.m.Vertices[a].Pos.Sub(centers[a])
	})
	return b.m
}

func knotPoint(u float64, p, q int, radius float64) mgl64.Vec3 {
	quOverP := float64(q) / float64(p) * u
	cs := math.Cos(quOverP)
	return mgl64.Vec3{
		radius * (2 + cs) * 0.5 * math.Cos(u),
		radius * (2 + cs) * 0.5 * math.Sin(u),
		radius * math.Sin(quOverP) * 0.5,
	}
}

func buildTorusKnot(desc component.Mesh) *MeshData {
	radius := desc.Radius
	if radius <= 0 {
		radius = 1
	}
	tube := desc.Tube
	if tube <= 0 {
		tube = radius * 0.4
	}
	p := desc.P
	if p <= 0 {
		p = 2
	}
	q := desc.Q
	if q <= 0 {
		q = 3
	}
	tubular := orDefault(desc.Segments, 96)
	radial := orDefault(desc.Rings, 10)

	b := &meshBuilder{m: &MeshData{}}
	centers := make([]mgl64.Vec3, 0, (tubular+1)*(radial+1))
	for j := 0; j <= radial; j++ {
		v := float64(j) / float64(radial) * 2 * math.Pi
		for i := 0; i <= tubular; i++ {
			u := float64(i) / float64(tubular) * float64(p) * 2 * math.Pi
			p1 := knotPoint(u, p, q, radius)
			p2 := knotPoint(u+0.01, p, q, radius)

			t := p2.Sub(p1)
			n := p2.Add(p1)
			bn := t.Cross(n).Normalize()
			n = bn.Cross(t).Normalize()

			cx := -tube * math.Cos(v)
			cy := tube * math.Sin(v)
			pos := p1.Add(n.Mul(cx)).Add(bn.Mul(cy))
			b.vertex(pos, float64(i)/float64(tubular), float64(j)/float64(radial))
			centers = append(centers, p1)
		}
	}
	b.grid(0, tubular, radial, func(a, _, _ int) mgl64.Vec3 {
		return b.m.Vertices[a].Pos.Sub(centers[a])
	})
	return b.m
}
