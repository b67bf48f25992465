package system

import (
	"fmt"
	"log/slog"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/portfolio3d/ecs"
	"github.com/milk9111/portfolio3d/ecs/component"
	"github.com/milk9111/portfolio3d/prefabs"
)

// LoadScriptFunc resolves a script path to its source.
type LoadScriptFunc func(path string) ([]byte, error)

type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	failed   bool
}

// ScriptSystem runs per-entity tengo behaviour scripts once per frame. A
// script reads frame, base_x, base_y, base_z and the current x, y, z, and
// may assign new values to x, y, z. A script that fails to compile or run is
// logged once and disabled for that entity.
type ScriptSystem struct {
	load   LoadScriptFunc
	logger *slog.Logger
	cache  map[ecs.Entity]*scriptRuntime
}

func NewScriptSystem(load LoadScriptFunc, logger *slog.Logger) *ScriptSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScriptSystem{load: load, logger: logger, cache: map[ecs.Entity]*scriptRuntime{}}
}

// Invalidate drops the compiled scripts so they are reloaded next frame.
func (s *ScriptSystem) Invalidate() {
	s.cache = map[ecs.Entity]*scriptRuntime{}
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	frame := int64(w.Frame())
	ecs.ForEach2(w, component.ScriptComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sc *component.Script, t *component.Transform) {
		rt := s.runtime(e, sc.Path)
		if rt.failed {
			return
		}
		if err := rt.step(frame, sc.Base, t); err != nil {
			rt.failed = true
			s.logger.Error("script disabled", "entity", e, "path", sc.Path, "err", err)
		}
	})

	for e := range s.cache {
		if !w.IsAlive(e) {
			delete(s.cache, e)
		}
	}
}

func (s *ScriptSystem) runtime(e ecs.Entity, path string) *scriptRuntime {
	if rt, ok := s.cache[e]; ok && rt.path == path {
		return rt
	}
	rt := &scriptRuntime{path: path}
	compiled, err := s.compile(path)
	if err != nil {
		rt.failed = true
		s.logger.Error("script disabled", "entity", e, "path", path, "err", err)
	}
	rt.compiled = compiled
	s.cache[e] = rt
	return rt
}

func (s *ScriptSystem) compile(path string) (*tengo.Compiled, error) {
	src, err := s.load(path)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript(src)
	for _, name := range []string{"base_x", "base_y", "base_z", "x", "y", "z"} {
		if err := script.Add(name, 0.0); err != nil {
			return nil, err
		}
	}
	if err := script.Add("frame", int64(0)); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return compiled, nil
}

func (rt *scriptRuntime) step(frame int64, base mgl64.Vec3, t *component.Transform) error {
	c := rt.compiled
	inputs := map[string]any{
		"frame":  frame,
		"base_x": base[0],
		"base_y": base[1],
		"base_z": base[2],
		"x":      t.Position[0],
		"y":      t.Position[1],
		"z":      t.Position[2],
	}
	for name, v := range inputs {
		if err := c.Set(name, v); err != nil {
			return err
		}
	}
	if err := c.Run(); err != nil {
		return err
	}
	t.Position[0] = c.Get("x").Float()
	t.Position[1] = c.Get("y").Float()
	t.Position[2] = c.Get("z").Float()
	return nil
}
