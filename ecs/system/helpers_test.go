package system

import (
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/portfolio3d/ecs"
	"github.com/milk9111/portfolio3d/ecs/component"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCameraWorld(t *testing.T) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	cam := w.CreateEntity()
	tr := component.NewTransform(mgl64.Vec3{})
	require.NoError(t, ecs.Add(w, cam, component.TransformComponent.Kind(), &tr))
	require.NoError(t, ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{FOV: 75, Near: 0.1, Far: 1000}))
	return w, cam
}

func addMesh(t *testing.T, w *ecs.World, pos mgl64.Vec3, mesh component.Mesh) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	tr := component.NewTransform(pos)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &tr))
	require.NoError(t, ecs.Add(w, e, component.MeshComponent.Kind(), &mesh))
	require.NoError(t, ecs.Add(w, e, component.MaterialComponent.Kind(), &component.Material{}))
	return e
}

func addLink(t *testing.T, w *ecs.World, pos mgl64.Vec3, url string) ecs.Entity {
	t.Helper()
	e := addMesh(t, w, pos, component.Mesh{Geometry: component.GeometryBox, Size: [3]float64{3, 3, 3}})
	require.NoError(t, ecs.Add(w, e, component.InteractionComponent.Kind(), &component.Interaction{
		Kind: component.InteractionNavigable,
		URL:  url,
	}))
	return e
}

type fakeInput struct {
	x, y          float64
	width, height float64
	primary       bool
	secondary     bool
	wheel         float64
}

func (f *fakeInput) CursorPosition() (float64, float64) { return f.x, f.y }
func (f *fakeInput) PrimaryJustPressed() bool           { return f.primary }
func (f *fakeInput) SecondaryJustPressed() bool         { return f.secondary }
func (f *fakeInput) Wheel() float64                     { return f.wheel }
func (f *fakeInput) Viewport() (float64, float64)       { return f.width, f.height }

func center() ecs.PointerEvent {
	return ecs.PointerEvent{ClientX: 400, ClientY: 300, Width: 800, Height: 600}
}
