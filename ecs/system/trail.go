package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/portfolio3d/common"
	"github.com/milk9111/portfolio3d/ecs"
	"github.com/milk9111/portfolio3d/ecs/component"
	"github.com/milk9111/portfolio3d/ecs/entity"
)

const DefaultTrailCapacity = 10

// TrailManager keeps a bounded queue of marker entities. Every marker in the
// queue is alive in the world, and evicted markers are destroyed.
type TrailManager struct {
	capacity   int
	style      entity.TrailMarkerStyle
	minOpacity float64
	maxOpacity float64

	// Depth is the world z of new markers.
	Depth float64

	seq   int
	queue []ecs.Entity
}

func NewTrailManager(capacity int, style entity.TrailMarkerStyle, minOpacity, maxOpacity float64) *TrailManager {
	if capacity < 1 {
		capacity = DefaultTrailCapacity
	}
	if maxOpacity <= 0 {
		maxOpacity = 1
	}
	return &TrailManager{
		capacity:   capacity,
		style:      style,
		minOpacity: common.Clamp(minOpacity, 0, 1),
		maxOpacity: common.Clamp(maxOpacity, 0, 1),
		queue:      make([]ecs.Entity, 0, capacity+1),
	}
}

func (t *TrailManager) Capacity() int {
	return t.capacity
}

// Markers returns the queued markers, oldest first.
func (t *TrailManager) Markers() []ecs.Entity {
	out := make([]ecs.Entity, len(t.queue))
	copy(out, t.queue)
	return out
}

func (t *TrailManager) Len() int {
	return len(t.queue)
}

// AddMarker places a marker at (x, y, Depth) and appends it. When the queue
// grows past capacity the oldest marker is evicted, at most one per call.
func (t *TrailManager) AddMarker(w *ecs.World, x, y float64) error {
	t.seq++
	marker, err := entity.NewTrailMarker(w, mgl64.Vec3{x, y, t.Depth}, t.style, t.seq)
	if err != nil {
		return err
	}
	t.queue = append(t.queue, marker)

	if len(t.queue) > t.capacity {
		oldest := t.queue[0]
		t.queue = t.queue[1:]
		w.DestroyEntity(oldest)
	}

	t.fade(w)
	return nil
}

// Clear destroys every queued marker.
func (t *TrailManager) Clear(w *ecs.World) {
	for _, e := range t.queue {
		w.DestroyEntity(e)
	}
	t.queue = t.queue[:0]
}

// fade ramps opacity from the oldest marker to the newest.
func (t *TrailManager) fade(w *ecs.World) {
	n := len(t.queue)
	for i, e := range t.queue {
		mat, ok := ecs.Get(w, e, component.MaterialComponent.Kind())
		if !ok {
			continue
		}
		mat.Opacity = common.Lerp(t.minOpacity, t.maxOpacity, float64(i+1)/float64(n))
	}
}

// HoverTrailSystem drops a trail marker on every pointer move. The pointer
// is projected onto its ray at a fixed distance from the camera whether or
// not anything is under it.
type HoverTrailSystem struct {
	trail    *TrailManager
	distance float64
	logger   *slog.Logger
}

func NewHoverTrailSystem(trail *TrailManager, distance float64, logger *slog.Logger) *HoverTrailSystem {
	if distance <= 0 {
		distance = 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HoverTrailSystem{trail: trail, distance: distance, logger: logger}
}

func (h *HoverTrailSystem) Update(w *ecs.World) {
	if w == nil || h.trail == nil {
		return
	}
	w.Events().Each(ecs.EventPointerMove, func(evt ecs.Event) {
		pe, ok := evt.Data.(ecs.PointerEvent)
		if !ok {
			return
		}
		ray, ok := PointerRay(w, pe)
		if !ok {
			return
		}
		p := ray.At(h.distance)
		h.trail.Depth = p.Z()
		if err := h.trail.AddMarker(w, p.X(), p.Y()); err != nil {
			h.logger.Warn("trail marker", "err", err)
		}
	})
}
