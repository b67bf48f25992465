package ecs

import (
	"testing"

	"github.com/milk9111/portfolio3d/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			require.Len(t, w.Entities(), c.create)
			for _, e := range ents {
				assert.True(t, e.Valid())
			}
			if c.destroyIndex >= 0 {
				require.True(t, w.DestroyEntity(ents[c.destroyIndex]), "DestroyEntity should return true for alive entity")
				assert.False(t, w.IsAlive(ents[c.destroyIndex]))
				assert.False(t, w.DestroyEntity(ents[c.destroyIndex]), "second destroy is a no-op")
				assert.Len(t, w.Entities(), c.create-1)
			}
		})
	}
}

func TestRecycledIDGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponentKind[int]()

	old := w.CreateEntity()
	v := 1
	require.NoError(t, Add(w, old, h, &v))
	require.True(t, w.DestroyEntity(old))

	fresh := w.CreateEntity()
	assert.Equal(t, old.id(), fresh.id())
	assert.NotEqual(t, old, fresh)
	assert.False(t, w.IsAlive(old))
	assert.False(t, Has(w, fresh, h), "components must not survive recycling")
	assert.ErrorIs(t, Add(w, old, h, &v), component.ErrEntityNotAlive)
}

func TestComponents(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponentKind[int]()
	h2 := component.NewComponentKind[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	i := 10
	require.NoError(t, Add(w, e1, h1, &i))
	got, ok := Get(w, e1, h1)
	require.True(t, ok)
	assert.Equal(t, 10, *got)

	*got = 11
	again, _ := Get(w, e1, h1)
	assert.Equal(t, 11, *again, "Get returns the stored pointer")

	a, b := "a", "b"
	require.NoError(t, Add(w, e1, h2, &a))
	require.NoError(t, Add(w, e2, h2, &b))
	assert.True(t, Has(w, e1, h2))
	assert.True(t, Has(w, e2, h2))
	assert.False(t, Has(w, e2, h1))

	assert.True(t, Remove(w, e1, h2))
	assert.False(t, Remove(w, e1, h2))
	assert.False(t, Has(w, e1, h2))

	assert.ErrorIs(t, Add[int](w, e1, h1, nil), component.ErrNilComponent)
	assert.ErrorIs(t, Add(w, e1, component.ComponentKind[int]{}, &i), component.ErrInvalidComponentKind)
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponentKind[int]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	one, three := 1, 3
	require.NoError(t, Add(w, e1, h, &one))
	require.NoError(t, Add(w, e3, h, &three))

	seen := map[Entity]int{}
	ForEach(w, h, func(e Entity, v *int) { seen[e] = *v })

	assert.Equal(t, map[Entity]int{e1: 1, e3: 3}, seen)
	assert.NotContains(t, seen, e2)
}

func TestForEachAllowsDestroy(t *testing.T) {
	w := NewWorld()
	h := component.NewComponentKind[int]()
	for i := 0; i < 5; i++ {
		v := i
		require.NoError(t, Add(w, w.CreateEntity(), h, &v))
	}

	visited := 0
	ForEach(w, h, func(e Entity, _ *int) {
		visited++
		w.DestroyEntity(e)
	})
	assert.Equal(t, 5, visited)
	assert.Zero(t, w.Count(h))
	assert.Empty(t, w.Entities())
}

func TestQueryAndForEach2(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	n1, n2 := 1, 2
	s2, s3 := "two", "three"
	require.NoError(t, Add(w, e1, ka, &n1))
	require.NoError(t, Add(w, e2, ka, &n2))
	require.NoError(t, Add(w, e2, kb, &s2))
	require.NoError(t, Add(w, e3, kb, &s3))

	assert.Equal(t, []Entity{e2}, w.Query(ka, kb))
	assert.Equal(t, []Entity{e1, e2}, w.Query(ka))
	assert.Nil(t, w.Query(component.NewComponentKind[float64]()))

	first, ok := w.First(kb)
	require.True(t, ok)
	assert.Equal(t, e2, first)

	var got []string
	ForEach2(w, ka, kb, func(_ Entity, n *int, s *string) {
		got = append(got, *s)
		assert.Equal(t, 2, *n)
	})
	assert.Equal(t, []string{"two"}, got)
}

type countingSystem struct {
	updates int
	seen    int
}

func (s *countingSystem) Update(w *World) {
	s.updates++
	w.Events().Each(EventScroll, func(Event) { s.seen++ })
}

type pushSystem struct{}

func (pushSystem) Update(w *World) {
	w.Events().Push(Event{Type: EventScroll, Data: ScrollEvent{Offset: 1}})
	w.Events().Push(Event{Type: EventPointerMove})
}

func TestUpdateRunsSystemsAndFlushesEvents(t *testing.T) {
	w := NewWorld()
	counter := &countingSystem{}
	stage := NewStage("input", pushSystem{}, nil, counter)
	assert.Equal(t, "input", stage.Name())
	assert.Equal(t, 2, stage.Len())
	w.AddSystem(stage)
	w.AddSystem(nil)

	w.Update()
	assert.Equal(t, 1, counter.updates)
	assert.Equal(t, 1, counter.seen)
	assert.Zero(t, w.Events().Len(), "events are flushed after update")
	assert.Equal(t, uint64(1), w.Frame())

	w.Update()
	assert.Equal(t, 2, counter.seen)
}

func TestCommandQueue(t *testing.T) {
	w := NewWorld()
	assert.Nil(t, w.Commands().Drain())
	w.Commands().Push(Command{Kind: CommandNavigate, URL: "https://a"})
	w.Commands().Push(Command{Kind: CommandCopyURL, URL: "https://b"})

	cmds := w.Commands().Drain()
	require.Len(t, cmds, 2)
	assert.Equal(t, CommandNavigate, cmds[0].Kind)
	assert.Nil(t, w.Commands().Drain())
}

func TestNilWorld(t *testing.T) {
	var w *World
	assert.False(t, w.IsAlive(1))
	assert.Nil(t, w.Entities())
	assert.Nil(t, w.Events())
	assert.Equal(t, "", w.Background())
	w.Update()
}

func TestEntityString(t *testing.T) {
	assert.Equal(t, "7.0", makeEntity(7, 0).String())
	assert.Equal(t, "3.2", makeEntity(3, 2).String())
	assert.False(t, Entity(0).Valid())
	assert.False(t, makeEntity(0, 5).Valid())
}
