package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/marblemaze/config"
	"github.com/milk9111/marblemaze/prefabs"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "marblemaze.toml", "path to the TOML config file")
	level := flag.Int("level", 0, "level number to start on (overrides config)")
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *level > 0 {
		cfg.Game.StartLevel = *level
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Game.PrefabsDir != "" {
		prefabs.Dir = cfg.Game.PrefabsDir
	}

	game, err := NewGame(cfg, logger, *debug)
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		logger.Fatal("game stopped", zap.Error(err))
	}
}
