package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/marblemaze/common"
	"github.com/milk9111/marblemaze/config"
	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/ecs/component"
	"github.com/milk9111/marblemaze/ecs/entity"
	"github.com/milk9111/marblemaze/ecs/render"
	"github.com/milk9111/marblemaze/ecs/system"
	"github.com/milk9111/marblemaze/input"
	"github.com/milk9111/marblemaze/levels"
	"github.com/milk9111/marblemaze/maze"
	"github.com/milk9111/marblemaze/prefabs"
	"go.uber.org/zap"
)

type Game struct {
	session  *maze.Session
	renderer *render.Renderer
	watcher  *prefabs.Watcher
	log      *zap.Logger
	debug    bool
}

func NewGame(cfg *config.Config, log *zap.Logger, debug bool) (*Game, error) {
	g := &Game{
		renderer: render.NewRenderer(),
		log:      log,
		debug:    debug,
	}

	g.session = maze.NewSession(maze.Options{
		Source:         levels.Default(cfg.Game.LevelsDir),
		Logger:         log,
		StartLevel:     cfg.Game.StartLevel,
		GravityScale:   cfg.Physics.GravityScale,
		PointsPerMeter: cfg.Physics.PointsPerMeter,
	})
	g.session.SetTiltProvider(g.tiltProvider(cfg.Input))

	if err := g.session.Start(); err != nil {
		return nil, err
	}

	if cfg.Game.HotReload {
		w, err := prefabs.NewWatcher(existingDirs(cfg.Game.LevelsDir, cfg.Game.PrefabsDir)...)
		if err != nil {
			log.Warn("hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func existingDirs(dirs ...string) []string {
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			out = append(out, dir)
		}
	}
	return out
}

func (g *Game) tiltProvider(cfg config.InputConfig) system.TiltProvider {
	if cfg.Source == config.InputKeys {
		return input.NewKeyTilt(cfg.MaxTilt)
	}
	return input.NewPointerTilt(cfg.PointerSpan, cfg.MaxTilt, g.playerPosition, render.ScreenToWorld)
}

func (g *Game) playerPosition() (common.Vec, bool) {
	w := g.session.World()
	p, ok := entity.Player(w)
	if !ok {
		return common.Vec{}, false
	}
	t, ok := ecs.Get(w, p, component.TransformComponent.Kind())
	if !ok {
		return common.Vec{}, false
	}
	return t.Position(), true
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload("restart requested")
	}
	g.pollWatcher()

	return g.session.Update()
}

// pollWatcher applies file changes picked up since the last tick. Prefab
// edits and edits to the level being played trigger a reload. A level or
// prefab that fails to load is logged and the running level is kept.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if prefabs.IsSpecFile(name) {
				render.ForgetImages()
			} else if !g.session.ShowsLevelFile(name) {
				g.log.Debug("ignoring edit to another level", zap.String("file", name))
				continue
			}
			g.reload("file changed: " + name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("watch error", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) reload(reason string) {
	if err := g.session.Reload(); err != nil {
		level := zap.Int("level", g.session.State().Level)
		if errors.Is(err, levels.ErrMalformedLevel) {
			g.log.Error("level rejected, keeping current one", level, zap.Error(err))
			return
		}
		g.log.Error("reload failed", level, zap.Error(err))
		return
	}
	g.log.Info("level reloaded", zap.String("reason", reason))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.session.World(), screen)

	if g.debug {
		st := g.session.State()
		grav := g.session.Physics().Gravity()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.1f  phase %s  gravity (%.0f, %.0f)  cooldown %v",
			ebiten.ActualFPS(), st.Phase, grav.X, grav.Y, st.TeleporterCooldown), 8, render.WorldHeight-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return render.WorldWidth, render.WorldHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
