package entity

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/portfolio3d/common"
	"github.com/milk9111/portfolio3d/ecs"
	"github.com/milk9111/portfolio3d/ecs/component"
	"github.com/milk9111/portfolio3d/prefabs"
)

// Scene lists the entities created by BuildScene.
type Scene struct {
	Camera ecs.Entity
	Stars  []ecs.Entity
	Lights []ecs.Entity
	Links  []ecs.Entity
	// Named holds every named object and link.
	Named map[string]ecs.Entity
}

// BuildScene populates w with the camera, starfield, decorative objects, link
// cubes, and lights described by spec. rng drives star placement.
func BuildScene(w *ecs.World, spec *prefabs.SceneSpec, rng *rand.Rand) (*Scene, error) {
	if spec == nil {
		return nil, fmt.Errorf("scene: nil spec")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	scene := &Scene{Named: make(map[string]ecs.Entity)}
	w.SetBackground(spec.Background)

	camera, err := NewCamera(w, spec.Camera)
	if err != nil {
		return nil, err
	}
	scene.Camera = camera

	for i := 0; i < spec.Stars.Count; i++ {
		star, err := NewStar(w, spec.Stars, rng)
		if err != nil {
			return nil, fmt.Errorf("scene: star %d: %w", i, err)
		}
		scene.Stars = append(scene.Stars, star)
	}

	accent := spec.Accent.NRGBA(common.White)
	for _, obj := range spec.Objects {
		e, err := NewObject(w, obj, accent)
		if err != nil {
			return nil, err
		}
		if obj.Name != "" {
			scene.Named[obj.Name] = e
		}
	}

	for _, link := range spec.Links {
		e, err := NewLink(w, link, accent)
		if err != nil {
			return nil, err
		}
		scene.Links = append(scene.Links, e)
		if link.Name != "" {
			scene.Named[link.Name] = e
		}
	}

	for _, l := range spec.Lights {
		e, err := NewLight(w, l)
		if err != nil {
			return nil, err
		}
		scene.Lights = append(scene.Lights, e)
	}

	return scene, nil
}

func NewCamera(w *ecs.World, spec prefabs.CameraSpec) (ecs.Entity, error) {
	camera := w.CreateEntity()
	transform := component.NewTransform(spec.Position.Or(mgl64.Vec3{}))
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &transform); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	fov := spec.FOV
	if fov == 0 {
		fov = 75
	}
	near := spec.Near
	if near == 0 {
		near = 0.1
	}
	far := spec.Far
	if far == 0 {
		far = 1000
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		FOV:  fov,
		Near: near,
		Far:  far,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}

// NewStar adds one small sphere at a uniform random position in the cube
// [-spread, spread]^3.
func NewStar(w *ecs.World, spec prefabs.StarsSpec, rng *rand.Rand) (ecs.Entity, error) {
	spread := spec.Spread
	pos := mgl64.Vec3{
		(rng.Float64()*2 - 1) * spread,
		(rng.Float64()*2 - 1) * spread,
		(rng.Float64()*2 - 1) * spread,
	}
	radius := spec.Radius
	if radius <= 0 {
		radius = 0.25
	}

	star := w.CreateEntity()
	transform := component.NewTransform(pos)
	if err := ecs.Add(w, star, component.TransformComponent.Kind(), &transform); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, star, component.MeshComponent.Kind(), &component.Mesh{
		Geometry: component.GeometrySphere,
		Radius:   radius,
		Segments: spec.Segments,
		Rings:    spec.Segments,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, star, component.MaterialComponent.Kind(), &component.Material{
		Color: spec.Color.NRGBA(common.White),
		Unlit: true,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, star, component.StarTagComponent.Kind(), &component.StarTag{}); err != nil {
		return 0, err
	}
	return star, nil
}

// NewObject adds a decorative entity.
func NewObject(w *ecs.World, spec prefabs.ObjectSpec, accent color.NRGBA) (ecs.Entity, error) {
	e := w.CreateEntity()

	transform := component.Transform{
		Position: spec.Transform.Position.Or(mgl64.Vec3{}),
		Rotation: spec.Transform.Rotation.Or(mgl64.Vec3{}),
		Scale:    spec.Transform.Scale.Or(mgl64.Vec3{1, 1, 1}),
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &transform); err != nil {
		return 0, fmt.Errorf("%s: add transform: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.MeshComponent.Kind(), meshFromSpec(spec.Geometry)); err != nil {
		return 0, fmt.Errorf("%s: add mesh: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.MaterialComponent.Kind(), materialFromSpec(spec.Material, accent)); err != nil {
		return 0, fmt.Errorf("%s: add material: %w", spec.Name, err)
	}
	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			return 0, fmt.Errorf("%s: add name: %w", spec.Name, err)
		}
	}
	if spec.Spin.Set {
		if err := ecs.Add(w, e, component.SpinComponent.Kind(), &component.Spin{Delta: spec.Spin.Vec3}); err != nil {
			return 0, fmt.Errorf("%s: add spin: %w", spec.Name, err)
		}
	}
	if spec.ScrollSpin.Set {
		if err := ecs.Add(w, e, component.ScrollSpinComponent.Kind(), &component.ScrollSpin{Delta: spec.ScrollSpin.Vec3}); err != nil {
			return 0, fmt.Errorf("%s: add scroll spin: %w", spec.Name, err)
		}
	}
	if spec.ScrollDrift != 0 {
		if err := ecs.Add(w, e, component.ScrollDriftComponent.Kind(), &component.ScrollDrift{Factor: spec.ScrollDrift}); err != nil {
			return 0, fmt.Errorf("%s: add scroll drift: %w", spec.Name, err)
		}
	}
	if spec.Script != "" {
		if err := ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{
			Path: spec.Script,
			Base: transform.Position,
		}); err != nil {
			return 0, fmt.Errorf("%s: add script: %w", spec.Name, err)
		}
	}
	return e, nil
}

// NewLink adds a link cube: a decorative entity that navigates to its URL
// when clicked.
func NewLink(w *ecs.World, spec prefabs.LinkSpec, accent color.NRGBA) (ecs.Entity, error) {
	e, err := NewObject(w, spec.ObjectSpec, accent)
	if err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.InteractionComponent.Kind(), &component.Interaction{
		Kind: component.InteractionNavigable,
		URL:  spec.URL,
	}); err != nil {
		return 0, fmt.Errorf("%s: add interaction: %w", spec.Name, err)
	}
	return e, nil
}

func NewLight(w *ecs.World, spec prefabs.LightSpec) (ecs.Entity, error) {
	e := w.CreateEntity()
	transform := component.NewTransform(spec.Position.Or(mgl64.Vec3{}))
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &transform); err != nil {
		return 0, fmt.Errorf("light: add transform: %w", err)
	}
	intensity := spec.Intensity
	if intensity == 0 {
		intensity = 1
	}
	if err := ecs.Add(w, e, component.LightComponent.Kind(), &component.Light{
		Kind:      component.LightKind(spec.Kind),
		Color:     spec.Color.NRGBA(common.White),
		Intensity: intensity,
	}); err != nil {
		return 0, fmt.Errorf("light: add light: %w", err)
	}
	return e, nil
}

func meshFromSpec(g prefabs.GeometrySpec) *component.Mesh {
	m := &component.Mesh{
		Geometry: component.Geometry(g.Kind),
		Radius:   g.Radius,
		Tube:     g.Tube,
		P:        g.P,
		Q:        g.Q,
		Segments: g.Segments,
		Rings:    g.Rings,
	}
	if g.Size.Set {
		m.Size = [3]float64{g.Size.X(), g.Size.Y(), g.Size.Z()}
	}
	return m
}

func materialFromSpec(m prefabs.MaterialSpec, accent color.NRGBA) *component.Material {
	c := m.Color.NRGBA(common.White)
	if m.Accent {
		c = accent
	}
	return &component.Material{
		Color:     c,
		Texture:   m.Texture,
		NormalMap: m.NormalMap,
		Opacity:   m.Opacity,
		Additive:  m.Additive,
		Unlit:     m.Unlit,
	}
}
