package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/portfolio3d/ecs"
	"github.com/milk9111/portfolio3d/ecs/component"
)

// TrailMarkerStyle is the look shared by every trail marker.
type TrailMarkerStyle struct {
	Radius  float64
	Color   color.NRGBA
	Opacity float64
}

// NewTrailMarker adds a small additive, translucent sphere at pos.
func NewTrailMarker(w *ecs.World, pos mgl64.Vec3, style TrailMarkerStyle, seq int) (ecs.Entity, error) {
	radius := style.Radius
	if radius <= 0 {
		radius = 0.3
	}

	marker := w.CreateEntity()
	transform := component.NewTransform(pos)
	if err := ecs.Add(w, marker, component.TransformComponent.Kind(), &transform); err != nil {
		return 0, fmt.Errorf("trail: add transform: %w", err)
	}
	if err := ecs.Add(w, marker, component.MeshComponent.Kind(), &component.Mesh{
		Geometry: component.GeometrySphere,
		Radius:   radius,
		Segments: 8,
		Rings:    6,
	}); err != nil {
		return 0, fmt.Errorf("trail: add mesh: %w", err)
	}
	if err := ecs.Add(w, marker, component.MaterialComponent.Kind(), &component.Material{
		Color:    style.Color,
		Opacity:  style.Opacity,
		Additive: true,
		Unlit:    true,
	}); err != nil {
		return 0, fmt.Errorf("trail: add material: %w", err)
	}
	if err := ecs.Add(w, marker, component.TrailMarkerComponent.Kind(), &component.TrailMarker{Seq: seq}); err != nil {
		return 0, fmt.Errorf("trail: add marker tag: %w", err)
	}
	return marker, nil
}
