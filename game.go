package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/portfolio3d/common"
	"github.com/milk9111/portfolio3d/ecs"
	"github.com/milk9111/portfolio3d/ecs/entity"
	"github.com/milk9111/portfolio3d/ecs/system"
	"github.com/milk9111/portfolio3d/navigate"
	"github.com/milk9111/portfolio3d/prefabs"
)

// Options are the command line settings of a run.
type Options struct {
	// ScenePath is a scene file on disk. Empty means the prefab scene.
	ScenePath string
	Seed      int64
	Debug     bool
}

type viewportSetter interface {
	SetViewport(width, height float64)
}

type Game struct {
	frames int
	opts   Options
	logger *slog.Logger

	source system.InputSource
	nav    navigate.Navigator

	spec     *prefabs.SceneSpec
	world    *ecs.World
	scene    *entity.Scene
	input    *system.InputSystem
	rig      *system.ScrollRigSystem
	picking  *system.PickingSystem
	trail    *system.TrailManager
	scripts  *system.ScriptSystem
	renderer *system.RenderSystem

	watcher *prefabs.Watcher
	overlay *DebugOverlay
}

func NewGame(opts Options, source system.InputSource, nav navigate.Navigator, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.Default()
	}
	spec, err := loadScene(opts.ScenePath)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:     opts,
		logger:   logger,
		source:   source,
		nav:      nav,
		renderer: system.NewRenderSystem(logger),
	}
	if err := g.load(spec); err != nil {
		return nil, err
	}

	if opts.Debug {
		g.watcher = newSceneWatcher(opts.ScenePath, logger)
		g.overlay = NewDebugOverlay()
	}
	return g, nil
}

func loadScene(path string) (*prefabs.SceneSpec, error) {
	if path == "" {
		return prefabs.LoadSceneSpec(prefabs.DefaultScene)
	}
	return prefabs.LoadSceneFile(path)
}

func newSceneWatcher(scenePath string, logger *slog.Logger) *prefabs.Watcher {
	dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
	if scenePath != "" {
		dirs = append(dirs, filepath.Dir(scenePath))
	}

	var existing []string
	seen := map[string]bool{}
	for _, dir := range dirs {
		clean := filepath.Clean(dir)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		if info, err := os.Stat(clean); err == nil && info.IsDir() {
			existing = append(existing, clean)
		}
	}
	if len(existing) == 0 {
		logger.Info("hot reload disabled, no scene directories on disk")
		return nil
	}

	w, err := prefabs.NewWatcher(existing...)
	if err != nil {
		logger.Warn("hot reload disabled", "err", err)
		return nil
	}
	logger.Info("watching for scene changes", "dirs", existing)
	return w
}

func rigFactors(spec prefabs.RigSpec) system.RigFactors {
	f := system.RigFactors{
		CameraZ:    spec.CameraZFactor,
		CameraX:    spec.CameraXFactor,
		CameraRotY: spec.CameraRotYFactor,
	}
	if f == (system.RigFactors{}) {
		return system.DefaultRigFactors
	}
	return f
}

// load builds a fresh world and its systems from spec. The scroll offset
// survives reloads.
func (g *Game) load(spec *prefabs.SceneSpec) error {
	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, spec, rand.New(rand.NewSource(g.opts.Seed)))
	if err != nil {
		return fmt.Errorf("build scene %q: %w", spec.Name, err)
	}

	offset := 0.0
	if g.input != nil {
		offset = g.input.Offset()
	}
	input := system.NewInputSystem(g.source, spec.Rig.ScrollStep, spec.Rig.MaxOffset)
	input.SetOffset(offset)

	rig := system.NewScrollRigSystem(rigFactors(spec.Rig))
	rig.Apply(w, input.Offset())

	accent := spec.Accent.NRGBA(common.White)
	trail := system.NewTrailManager(spec.Trail.Capacity, entity.TrailMarkerStyle{
		Radius: spec.Trail.Radius,
		Color:  spec.Trail.Color.NRGBA(accent),
	}, spec.Trail.MinOpacity, spec.Trail.MaxOpacity)

	picking := system.NewPickingSystem(spec.Picking.NearestOnly, g.logger)
	scripts := system.NewScriptSystem(nil, g.logger)

	w.AddSystem(input)
	w.AddSystem(rig)
	w.AddSystem(ecs.NewStage("pointer", picking, system.NewHoverTrailSystem(trail, spec.Trail.Distance, g.logger)))
	w.AddSystem(system.NewSpinSystem())
	w.AddSystem(scripts)

	g.spec = spec
	g.world = w
	g.scene = scene
	g.input = input
	g.rig = rig
	g.picking = picking
	g.trail = trail
	g.scripts = scripts

	g.logger.Info("scene loaded",
		"scene", spec.Name,
		"entities", len(w.Entities()),
		"stars", len(scene.Stars),
		"links", len(scene.Links),
	)
	return nil
}

func (g *Game) Update() error {
	g.frames++
	g.pollReload()

	g.world.Update()
	navigate.Execute(g.nav, g.world.Commands().Drain(), g.logger)

	if g.overlay != nil {
		g.overlay.Update(g)
	}
	return nil
}

func (g *Game) pollReload() {
	changed, err := g.watcher.Poll()
	if err != nil {
		g.logger.Warn("watch scene files", "err", err)
	}
	if len(changed) == 0 {
		return
	}

	reloadScene := false
	for _, path := range changed {
		g.logger.Debug("scene file changed", "path", path)
		if filepath.Ext(path) == ".tengo" {
			g.scripts.Invalidate()
			continue
		}
		reloadScene = true
	}
	if !reloadScene {
		return
	}

	spec, err := loadScene(g.opts.ScenePath)
	if err != nil {
		g.logger.Warn("scene reload failed, keeping current scene", "err", err)
		return
	}
	if err := g.load(spec); err != nil {
		g.logger.Warn("scene reload failed, keeping current scene", "err", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		outsideWidth, outsideHeight = common.BaseWidth, common.BaseHeight
	}
	if vs, ok := g.source.(viewportSetter); ok {
		vs.SetViewport(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

// Close releases the file watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
