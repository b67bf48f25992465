package system

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/portfolio3d/ecs"
	"github.com/milk9111/portfolio3d/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptWorld(t *testing.T, path string) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	e := w.CreateEntity()
	pos := mgl64.Vec3{1, 2, 3}
	tr := component.NewTransform(pos)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &tr))
	require.NoError(t, ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: path, Base: pos}))
	return w, e
}

func sources(m map[string]string) LoadScriptFunc {
	return func(path string) ([]byte, error) {
		src, ok := m[path]
		if !ok {
			return nil, errors.New("not found")
		}
		return []byte(src), nil
	}
}

func TestScriptMovesEntity(t *testing.T) {
	w, e := scriptWorld(t, "walk.tengo")
	s := NewScriptSystem(sources(map[string]string{
		"walk.tengo": "x = base_x + frame\ny = base_y * 2",
	}), quietLogger())
	w.AddSystem(s)

	for i := 0; i < 3; i++ {
		w.Update()
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.InDelta(t, 3, tr.Position.X(), 1e-9) // frames 0, 1, 2
	assert.InDelta(t, 4, tr.Position.Y(), 1e-9)
	assert.InDelta(t, 3, tr.Position.Z(), 1e-9)
}

func TestScriptEmbeddedBob(t *testing.T) {
	w, e := scriptWorld(t, "bob.tengo")
	s := NewScriptSystem(nil, quietLogger())

	s.Update(w)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.InDelta(t, 2, tr.Position.Y(), 1e-9)
	assert.InDelta(t, 1, tr.Position.X(), 1e-9)
}

func TestScriptFailuresDisable(t *testing.T) {
	cases := []struct {
		name string
		src  map[string]string
	}{
		{"missing", map[string]string{}},
		{"compile_error", map[string]string{"bad.tengo": "x = = 1"}},
		{"runtime_error", map[string]string{"bad.tengo": "f := 1\nx = f()"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, e := scriptWorld(t, "bad.tengo")
			s := NewScriptSystem(sources(c.src), quietLogger())
			s.Update(w)
			s.Update(w)

			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			assert.Equal(t, mgl64.Vec3{1, 2, 3}, tr.Position)
			require.Contains(t, s.cache, e)
			assert.True(t, s.cache[e].failed)
		})
	}
}

func TestScriptInvalidateReloads(t *testing.T) {
	src := map[string]string{"move.tengo": "x = 5"}
	w, e := scriptWorld(t, "move.tengo")
	s := NewScriptSystem(sources(src), quietLogger())

	s.Update(w)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, 5.0, tr.Position.X())

	src["move.tengo"] = "x = 7"
	s.Update(w)
	assert.Equal(t, 5.0, tr.Position.X(), "compiled script is cached")

	s.Invalidate()
	s.Update(w)
	assert.Equal(t, 7.0, tr.Position.X())
}

func TestScriptCacheDropsDestroyed(t *testing.T) {
	w, e := scriptWorld(t, "move.tengo")
	s := NewScriptSystem(sources(map[string]string{"move.tengo": "x = 5"}), quietLogger())
	s.Update(w)
	require.Contains(t, s.cache, e)

	w.DestroyEntity(e)
	s.Update(w)
	assert.NotContains(t, s.cache, e)
}
