package system

import (
	"log/slog"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/portfolio3d/ecs"
	"github.com/milk9111/portfolio3d/ecs/component"
	"github.com/milk9111/portfolio3d/ecs/render"
	"github.com/milk9111/portfolio3d/raycast"
)

// Hit is one ray intersection. Distance is measured along the normalized
// ray from its origin.
type Hit struct {
	Entity   ecs.Entity
	Distance float64
	Point    mgl64.Vec3
}

// Pick intersects ray with every entity that has a Transform and a Mesh and
// returns the hits nearest first. No hits is an empty result.
func Pick(w *ecs.World, ray raycast.Ray) []Hit {
	if w == nil || ray.Direction.Len() == 0 {
		return nil
	}
	ray.Direction = ray.Direction.Normalize()

	var hits []Hit
	ecs.ForEach2(w, component.MeshComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, mesh *component.Mesh, t *component.Transform) {
		d, ok := intersect(ray, mesh, t)
		if !ok {
			return
		}
		hits = append(hits, Hit{Entity: e, Distance: d, Point: ray.At(d)})
	})

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// intersect tests ray against one entity in its object space. The returned
// parameter is valid for the world ray because the local ray keeps the
// transformed, unnormalized direction.
func intersect(ray raycast.Ray, mesh *component.Mesh, t *component.Transform) (float64, bool) {
	model := t.Matrix()
	if math.Abs(model.Det()) < 1e-12 {
		return 0, false
	}
	local := ray.Transform(model.Inv())

	switch mesh.Geometry {
	case component.GeometrySphere:
		r := mesh.Radius
		if r <= 0 {
			r = 1
		}
		return raycast.Sphere(local, mgl64.Vec3{}, r)
	case component.GeometryBox:
		half := mgl64.Vec3{1, 1, 1}
		for i, s := range mesh.Size {
			if s > 0 {
				half[i] = s / 2
			} else {
				half[i] = 0.5
			}
		}
		return raycast.Box(local, half.Mul(-1), half)
	}

	data := render.MeshFor(*mesh)
	if _, ok := raycast.Sphere(local, mgl64.Vec3{}, data.Radius); !ok {
		return 0, false
	}
	best, found := math.Inf(1), false
	for i := 0; i < data.TriangleCount(); i++ {
		a, b, c := data.Triangle(i)
		if d, ok := raycast.Triangle(local, a, b, c); ok && d < best {
			best, found = d, true
		}
	}
	return best, found
}

// ClickCommands turns the hits of one click into navigate commands. Every
// navigable hit navigates, in hit order, unless nearestOnly limits it to the
// first one.
func ClickCommands(w *ecs.World, hits []Hit, nearestOnly bool) []ecs.Command {
	var cmds []ecs.Command
	for _, h := range hits {
		in, ok := ecs.Get(w, h.Entity, component.InteractionComponent.Kind())
		if !ok || in.Kind != component.InteractionNavigable || in.URL == "" {
			continue
		}
		cmds = append(cmds, ecs.Command{Kind: ecs.CommandNavigate, URL: in.URL, Entity: h.Entity})
		if nearestOnly {
			break
		}
	}
	return cmds
}

// PickingSystem handles clicks: primary clicks navigate through link cubes,
// secondary clicks copy the nearest link's URL.
type PickingSystem struct {
	nearestOnly bool
	logger      *slog.Logger

	last []Hit
}

func NewPickingSystem(nearestOnly bool, logger *slog.Logger) *PickingSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &PickingSystem{nearestOnly: nearestOnly, logger: logger}
}

// LastHits returns the hits of the most recent click.
func (p *PickingSystem) LastHits() []Hit {
	return p.last
}

func (p *PickingSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	w.Events().Each(ecs.EventPointerClick, func(evt ecs.Event) {
		hits, ok := p.pick(w, evt)
		if !ok {
			return
		}
		for _, cmd := range ClickCommands(w, hits, p.nearestOnly) {
			p.logger.Debug("link clicked", "entity", cmd.Entity, "url", cmd.URL)
			w.Commands().Push(cmd)
		}
	})
	w.Events().Each(ecs.EventPointerAltClick, func(evt ecs.Event) {
		hits, ok := p.pick(w, evt)
		if !ok {
			return
		}
		if cmds := ClickCommands(w, hits, true); len(cmds) > 0 {
			w.Commands().Push(ecs.Command{Kind: ecs.CommandCopyURL, URL: cmds[0].URL, Entity: cmds[0].Entity})
		}
	})
}

func (p *PickingSystem) pick(w *ecs.World, evt ecs.Event) ([]Hit, bool) {
	pe, ok := evt.Data.(ecs.PointerEvent)
	if !ok {
		return nil, false
	}
	ray, ok := PointerRay(w, pe)
	if !ok {
		return nil, false
	}
	p.last = Pick(w, ray)
	return p.last, true
}
