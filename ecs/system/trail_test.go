package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/portfolio3d/ecs"
	"github.com/milk9111/portfolio3d/ecs/component"
	"github.com/milk9111/portfolio3d/ecs/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrail() *TrailManager {
	return NewTrailManager(DefaultTrailCapacity, entity.TrailMarkerStyle{Radius: 0.3}, 0.1, 0.8)
}

func TestTrailEvictsOldest(t *testing.T) {
	w := ecs.NewWorld()
	trail := newTrail()

	var created []ecs.Entity
	for i := 1; i <= 11; i++ {
		require.NoError(t, trail.AddMarker(w, float64(i), float64(-i)))
		markers := trail.Markers()
		created = append(created, markers[len(markers)-1])
	}

	markers := trail.Markers()
	require.Len(t, markers, 10)
	assert.False(t, w.IsAlive(created[0]), "first marker evicted")
	assert.Equal(t, created[1:], markers, "calls 2-11 remain in insertion order")

	for i, e := range markers {
		tag, ok := ecs.Get(w, e, component.TrailMarkerComponent.Kind())
		require.True(t, ok)
		assert.Equal(t, i+2, tag.Seq)
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		assert.Equal(t, mgl64.Vec3{float64(i + 2), float64(-(i + 2)), 0}, tr.Position)
	}
}

func TestTrailQueueMatchesWorld(t *testing.T) {
	for _, calls := range []int{0, 1, 9, 10, 11, 25} {
		w := ecs.NewWorld()
		trail := newTrail()
		for i := 0; i < calls; i++ {
			require.NoError(t, trail.AddMarker(w, float64(i), 0))
		}

		want := calls
		if want > 10 {
			want = 10
		}
		assert.Equal(t, want, trail.Len())
		assert.ElementsMatch(t, trail.Markers(), w.Query(component.TrailMarkerComponent.Kind()))
	}
}

func TestTrailFadesOldestToNewest(t *testing.T) {
	w := ecs.NewWorld()
	trail := newTrail()
	for i := 0; i < 5; i++ {
		require.NoError(t, trail.AddMarker(w, 0, 0))
	}

	prev := -1.0
	for _, e := range trail.Markers() {
		mat, ok := ecs.Get(w, e, component.MaterialComponent.Kind())
		require.True(t, ok)
		assert.True(t, mat.Additive)
		assert.Greater(t, mat.Opacity, prev)
		prev = mat.Opacity
	}
	assert.InDelta(t, 0.8, prev, 1e-9)
}

func TestTrailClear(t *testing.T) {
	w := ecs.NewWorld()
	trail := newTrail()
	for i := 0; i < 3; i++ {
		require.NoError(t, trail.AddMarker(w, 0, 0))
	}
	trail.Clear(w)
	assert.Zero(t, trail.Len())
	assert.Zero(t, w.Count(component.TrailMarkerComponent.Kind()))
}

func TestHoverTrailProjectsAtFixedDistance(t *testing.T) {
	w, _ := newCameraWorld(t)
	trail := newTrail()
	h := NewHoverTrailSystem(trail, 20, quietLogger())

	w.Events().Push(ecs.Event{Type: ecs.EventPointerMove, Data: center()})
	h.Update(w)

	require.Equal(t, 1, trail.Len())
	tr, ok := ecs.Get(w, trail.Markers()[0], component.TransformComponent.Kind())
	require.True(t, ok)
	assert.InDelta(t, 0, tr.Position.X(), 1e-6)
	assert.InDelta(t, 0, tr.Position.Y(), 1e-6)
	assert.InDelta(t, -20, tr.Position.Z(), 1e-6)
	assert.InDelta(t, -20, trail.Depth, 1e-6)
}
