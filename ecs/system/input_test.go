package system

import (
	"testing"

	"github.com/milk9111/portfolio3d/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventTypes(w *ecs.World) []ecs.EventType {
	var out []ecs.EventType
	for _, evt := range w.Events().Drain() {
		out = append(out, evt.Type)
	}
	return out
}

func TestInputSystemEvents(t *testing.T) {
	w := ecs.NewWorld()
	src := &fakeInput{x: 10, y: 20, width: 800, height: 600}
	in := NewInputSystem(src, 40, 1000)

	in.Update(w)
	assert.Equal(t, []ecs.EventType{ecs.EventViewportResized, ecs.EventPointerMove}, eventTypes(w))

	// still cursor, no input
	in.Update(w)
	assert.Empty(t, eventTypes(w))

	src.x, src.primary, src.secondary = 11, true, true
	in.Update(w)
	evts := w.Events().Drain()
	require.Len(t, evts, 3)
	assert.Equal(t, ecs.EventPointerMove, evts[0].Type)
	assert.Equal(t, ecs.EventPointerClick, evts[1].Type)
	assert.Equal(t, ecs.EventPointerAltClick, evts[2].Type)
	assert.Equal(t, ecs.PointerEvent{ClientX: 11, ClientY: 20, Width: 800, Height: 600}, evts[1].Data)
}

func TestInputSystemScrollOffset(t *testing.T) {
	w := ecs.NewWorld()
	src := &fakeInput{width: 800, height: 600}
	in := NewInputSystem(src, 40, 100)
	in.Update(w)
	w.Events().Drain()

	cases := []struct {
		wheel float64
		want  float64
		event bool
	}{
		{wheel: 1, want: 0, event: false},  // already at the top
		{wheel: -2, want: 80, event: true}, // scroll down two notches
		{wheel: -2, want: 100, event: true},
		{wheel: -1, want: 100, event: false}, // clamped at max
		{wheel: 0.5, want: 80, event: true},
	}
	for _, c := range cases {
		src.wheel = c.wheel
		in.Update(w)
		evts := w.Events().Drain()
		assert.Equal(t, c.want, in.Offset())
		if !c.event {
			assert.Empty(t, evts)
			continue
		}
		require.Len(t, evts, 1)
		assert.Equal(t, ecs.ScrollEvent{Offset: c.want}, evts[0].Data)
	}
}

func TestInputSystemNilSource(t *testing.T) {
	w := ecs.NewWorld()
	NewInputSystem(nil, 0, 0).Update(w)
	assert.Zero(t, w.Events().Len())
}
