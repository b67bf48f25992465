package system

import (
	"log/slog"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/portfolio3d/ecs"
	"github.com/milk9111/portfolio3d/ecs/component"
	"github.com/milk9111/portfolio3d/ecs/render"
	"github.com/milk9111/portfolio3d/raycast"
)

// maxBatchVertices keeps one DrawTriangles call inside uint16 indices.
const maxBatchVertices = 65535 - 3

type sceneLight struct {
	kind      component.LightKind
	position  mgl64.Vec3
	color     mgl64.Vec3
	intensity float64
}

type drawTri struct {
	depth    float64
	screen   [3][2]float64
	uv       [3][2]float64
	rgba     [4]float32
	tex      *ebiten.Image
	additive bool
}

// RenderStats describes the last drawn frame.
type RenderStats struct {
	Objects   int
	Triangles int
	Culled    int
}

// RenderSystem draws the scene through the camera: a stretched background,
// then every mesh as flat-shaded triangles sorted far to near.
type RenderSystem struct {
	logger *slog.Logger

	tris     []drawTri
	vertices []ebiten.Vertex
	indices  []uint16
	stats    RenderStats
}

func NewRenderSystem(logger *slog.Logger) *RenderSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &RenderSystem{logger: logger}
}

func (r *RenderSystem) Stats() RenderStats {
	return r.stats
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	bounds := screen.Bounds()
	width, height := float64(bounds.Dx()), float64(bounds.Dy())
	if width == 0 || height == 0 {
		return
	}

	r.drawBackground(w, screen, width, height)

	proj, ok := CameraProjector(w, width, height)
	if !ok {
		return
	}

	lights := collectLights(w)
	r.tris = r.tris[:0]
	r.stats = RenderStats{}

	for _, e := range w.Query(component.TransformComponent.Kind(), component.MeshComponent.Kind(), component.MaterialComponent.Kind()) {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		mesh, _ := ecs.Get(w, e, component.MeshComponent.Kind())
		mat, _ := ecs.Get(w, e, component.MaterialComponent.Kind())
		r.stats.Objects++
		r.collect(proj, width, height, t, mesh, mat, lights)
	}

	sort.SliceStable(r.tris, func(i, j int) bool {
		return r.tris[i].depth > r.tris[j].depth
	})
	r.stats.Triangles = len(r.tris)
	r.flushAll(screen)
}

func (r *RenderSystem) drawBackground(w *ecs.World, screen *ebiten.Image, width, height float64) {
	key := w.Background()
	if key == "" {
		return
	}
	bg := render.Texture(key, r.logger)
	b := bg.Bounds()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(width/float64(b.Dx()), height/float64(b.Dy()))
	screen.DrawImage(bg, op)
}

func collectLights(w *ecs.World) []sceneLight {
	var lights []sceneLight
	ecs.ForEach(w, component.LightComponent.Kind(), func(e ecs.Entity, l *component.Light) {
		sl := sceneLight{
			kind:      l.Kind,
			color:     mgl64.Vec3{float64(l.Color.R) / 255, float64(l.Color.G) / 255, float64(l.Color.B) / 255},
			intensity: l.Intensity,
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			sl.position = t.Position
		}
		lights = append(lights, sl)
	})
	return lights
}

// shade returns the light reaching a face with normal n at point p.
func shade(lights []sceneLight, p, n mgl64.Vec3) mgl64.Vec3 {
	if len(lights) == 0 {
		return mgl64.Vec3{1, 1, 1}
	}
	var out mgl64.Vec3
	for _, l := range lights {
		switch l.kind {
		case component.LightAmbient:
			out = out.Add(l.color.Mul(l.intensity))
		case component.LightPoint:
			dir := l.position.Sub(p)
			if dir.Len() == 0 {
				continue
			}
			lambert := n.Dot(dir.Normalize())
			if lambert > 0 {
				out = out.Add(l.color.Mul(l.intensity * lambert))
			}
		}
	}
	for i := range out {
		if out[i] > 1 {
			out[i] = 1
		}
	}
	return out
}

func (r *RenderSystem) collect(proj raycast.Projector, width, height float64, t *component.Transform, mesh *component.Mesh, mat *component.Material, lights []sceneLight) {
	data := render.MeshFor(*mesh)
	model := t.Matrix()
	tex := render.Texture(mat.Texture, r.logger)
	tb := tex.Bounds()
	tw, th := float64(tb.Dx()), float64(tb.Dy())
	base := mgl64.Vec3{float64(mat.Color.R) / 255, float64(mat.Color.G) / 255, float64(mat.Color.B) / 255}
	alpha := float32(mat.Alpha())

	for i := 0; i < data.TriangleCount(); i++ {
		idx := data.Indices[i*3 : i*3+3]
		var world [3]mgl64.Vec3
		for k, vi := range idx {
			world[k] = model.Mul4x1(data.Vertices[vi].Pos.Vec4(1)).Vec3()
		}

		normal := world[1].Sub(world[0]).Cross(world[2].Sub(world[0]))
		if normal.Len() == 0 {
			continue
		}
		normal = normal.Normalize()
		if normal.Dot(proj.Position.Sub(world[0])) <= 0 {
			r.stats.Culled++
			continue
		}

		tri := drawTri{tex: tex, additive: mat.Additive}
		visible := true
		for k := range world {
			ndc, _, ok := proj.Project(world[k])
			if !ok {
				visible = false
				break
			}
			x, y := raycast.ToScreen(ndc, width, height)
			tri.screen[k] = [2]float64{x, y}
			v := data.Vertices[idx[k]]
			tri.uv[k] = [2]float64{v.U * tw, (1 - v.V) * th}
		}
		if !visible {
			r.stats.Culled++
			continue
		}

		centroid := world[0].Add(world[1]).Add(world[2]).Mul(1.0 / 3)
		tri.depth = -proj.ToView(centroid).Z()

		light := mgl64.Vec3{1, 1, 1}
		if !mat.Unlit {
			light = shade(lights, centroid, normal)
		}
		tri.rgba = [4]float32{
			float32(base[0] * light[0]),
			float32(base[1] * light[1]),
			float32(base[2] * light[2]),
			alpha,
		}
		r.tris = append(r.tris, tri)
	}
}

// flushAll draws the sorted triangles, batching runs that share a source
// image and blend mode.
func (r *RenderSystem) flushAll(screen *ebiten.Image) {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	var (
		tex      *ebiten.Image
		additive bool
	)
	for _, tri := range r.tris {
		if len(r.vertices) > 0 && (tri.tex != tex || tri.additive != additive || len(r.vertices) >= maxBatchVertices) {
			r.flush(screen, tex, additive)
		}
		tex, additive = tri.tex, tri.additive
		base := uint16(len(r.vertices))
		for k := 0; k < 3; k++ {
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   float32(tri.screen[k][0]),
				DstY:   float32(tri.screen[k][1]),
				SrcX:   float32(tri.uv[k][0]),
				SrcY:   float32(tri.uv[k][1]),
				ColorR: tri.rgba[0],
				ColorG: tri.rgba[1],
				ColorB: tri.rgba[2],
				ColorA: tri.rgba[3],
			})
		}
		r.indices = append(r.indices, base, base+1, base+2)
	}
	if len(r.vertices) > 0 {
		r.flush(screen, tex, additive)
	}
}

func (r *RenderSystem) flush(screen, tex *ebiten.Image, additive bool) {
	op := &ebiten.DrawTrianglesOptions{
		Filter:         ebiten.FilterLinear,
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
	}
	if additive {
		op.Blend = ebiten.BlendLighter
	}
	screen.DrawTriangles(r.vertices, r.indices, tex, op)
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}
