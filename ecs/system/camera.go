package system

import (
	"github.com/milk9111/portfolio3d/ecs"
	"github.com/milk9111/portfolio3d/ecs/component"
	"github.com/milk9111/portfolio3d/raycast"
)

// cameraEntity returns the first entity with a Camera and a Transform.
func cameraEntity(w *ecs.World) (ecs.Entity, bool) {
	ents := w.Query(component.CameraComponent.Kind(), component.TransformComponent.Kind())
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// CameraProjector builds the projector of the scene camera for a viewport.
func CameraProjector(w *ecs.World, width, height float64) (raycast.Projector, bool) {
	cam, ok := cameraEntity(w)
	if !ok {
		return raycast.Projector{}, false
	}
	c, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	t, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	aspect := 1.0
	if height > 0 {
		aspect = width / height
	}
	return raycast.NewProjector(*t, *c, aspect), true
}

// PointerRay projects a pointer event into a world-space ray through the
// scene camera.
func PointerRay(w *ecs.World, p ecs.PointerEvent) (raycast.Ray, bool) {
	proj, ok := CameraProjector(w, p.Width, p.Height)
	if !ok {
		return raycast.Ray{}, false
	}
	return proj.Ray(raycast.ToNDC(p.ClientX, p.ClientY, p.Width, p.Height)), true
}
