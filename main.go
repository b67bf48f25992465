package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/portfolio3d/common"
	"github.com/milk9111/portfolio3d/ecs/system"
	"github.com/milk9111/portfolio3d/navigate"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay, debug logging, and scene hot reload")
	scenePath := flag.String("scene", "", "scene YAML file on disk (default: built-in prefabs/scene.yaml)")
	seed := flag.Int64("seed", 1, "starfield random seed")
	title := flag.String("title", "portfolio", "window title")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle(*title)

	opts := Options{ScenePath: *scenePath, Seed: *seed, Debug: *debug}
	if err := run(opts, logger); err != nil {
		logger.Error("portfolio exited", "err", err)
		os.Exit(1)
	}
}

func run(opts Options, logger *slog.Logger) error {
	game, err := NewGame(opts, system.NewEbitenInput(common.BaseWidth, common.BaseHeight), navigate.NewSystem(), logger)
	if err != nil {
		return err
	}
	defer game.Close()

	return ebiten.RunGame(game)
}
