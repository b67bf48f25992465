package system

import (
	"github.com/milk9111/portfolio3d/ecs"
	"github.com/milk9111/portfolio3d/ecs/component"
)

// SpinSystem advances every spinning entity by its per-frame rotation.
type SpinSystem struct{}

func NewSpinSystem() *SpinSystem {
	return &SpinSystem{}
}

func (s *SpinSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.SpinComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, spin *component.Spin, t *component.Transform) {
		t.Rotation = t.Rotation.Add(spin.Delta)
	})
}
