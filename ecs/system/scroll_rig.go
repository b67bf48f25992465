package system

import (
	"github.com/milk9111/portfolio3d/ecs"
	"github.com/milk9111/portfolio3d/ecs/component"
)

// RigFactors maps the page offset to a camera pose.
type RigFactors struct {
	CameraZ    float64
	CameraX    float64
	CameraRotY float64
}

// DefaultRigFactors are the factors of the portfolio page.
var DefaultRigFactors = RigFactors{CameraZ: -0.01, CameraX: -0.0002, CameraRotY: -0.0002}

// ScrollRigSystem ties the camera pose to the page scroll offset. It keeps
// only the previous offset between invocations.
type ScrollRigSystem struct {
	factors  RigFactors
	previous float64
}

func NewScrollRigSystem(factors RigFactors) *ScrollRigSystem {
	return &ScrollRigSystem{factors: factors}
}

func (r *ScrollRigSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	w.Events().Each(ecs.EventScroll, func(evt ecs.Event) {
		if s, ok := evt.Data.(ecs.ScrollEvent); ok {
			r.Apply(w, s.Offset)
		}
	})
}

// Previous returns the offset recorded by the last Apply.
func (r *ScrollRigSystem) Previous() float64 {
	return r.previous
}

// Apply handles one scroll to offset: per-scroll spins, horizontal drift by
// the offset delta, and the camera pose.
func (r *ScrollRigSystem) Apply(w *ecs.World, offset float64) {
	ecs.ForEach2(w, component.ScrollSpinComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, spin *component.ScrollSpin, t *component.Transform) {
		t.Rotation = t.Rotation.Add(spin.Delta)
	})

	delta := offset - r.previous
	ecs.ForEach2(w, component.ScrollDriftComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, drift *component.ScrollDrift, t *component.Transform) {
		t.Position[0] += delta * drift.Factor
	})

	if cam, ok := cameraEntity(w); ok {
		t, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
		t.Position[2] = offset * r.factors.CameraZ
		t.Position[0] = offset * r.factors.CameraX
		t.Rotation[1] = offset * r.factors.CameraRotY
	}

	r.previous = offset
}
