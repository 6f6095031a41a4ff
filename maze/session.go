// Package maze wires the world, the physics space and the gameplay systems
// into one steppable game session.
package maze

import (
	"fmt"

	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/ecs/component"
	"github.com/milk9111/marblemaze/ecs/system"
	"github.com/milk9111/marblemaze/levels"
	"go.uber.org/zap"
)

type Options struct {
	Source levels.Source
	Tilt   system.TiltProvider
	Logger *zap.Logger

	// StartLevel defaults to 1.
	StartLevel int

	GravityScale   float64
	PointsPerMeter float64
}

type Session struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	state     *component.GameState

	physics  *system.PhysicsSystem
	tilt     *system.TiltSystem
	gameplay *system.GameplaySystem

	startLevel int
	log        *zap.Logger
}

func NewSession(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	source := opts.Source
	if source == nil {
		source = levels.Embedded()
	}
	start := opts.StartLevel
	if start < 1 {
		start = 1
	}

	state := component.NewGameState()
	physics := system.NewPhysicsSystem()
	tilt := system.NewTiltSystem(opts.Tilt, physics, state)
	tilt.SetScale(opts.GravityScale, opts.PointsPerMeter)
	gameplay := system.NewGameplaySystem(state, source, log)

	return &Session{
		world: ecs.NewWorld(),
		scheduler: ecs.NewScheduler(
			tilt,
			system.NewActionSystem(),
			physics,
			gameplay,
			system.NewSpinSystem(),
		),
		state:      state,
		physics:    physics,
		tilt:       tilt,
		gameplay:   gameplay,
		startLevel: start,
		log:        log.Named("session"),
	}
}

// Start loads the configured first level.
func (s *Session) Start() error {
	return s.LoadLevel(s.startLevel)
}

// Update advances the simulation by one tick.
func (s *Session) Update() error {
	s.scheduler.Update(s.world)
	if err := s.gameplay.Err(); err != nil {
		return fmt.Errorf("maze: update: %w", err)
	}
	return nil
}

func (s *Session) LoadLevel(index int) error {
	if err := s.gameplay.LoadLevel(s.world, index); err != nil {
		return fmt.Errorf("maze: %w", err)
	}
	return nil
}

// Reload rebuilds the current level from its source, for example after the
// file changed on disk. It is skipped while a transition is running since the
// transition will load a level on its own.
func (s *Session) Reload() error {
	if s.state.Busy() {
		s.log.Debug("reload skipped during transition")
		return nil
	}
	return s.LoadLevel(s.state.Level)
}

// ShowsLevelFile reports whether path is the file of the level being played.
func (s *Session) ShowsLevelFile(path string) bool {
	index, ok := levels.Index(path)
	return ok && index == s.state.Level
}

func (s *Session) SetTiltProvider(p system.TiltProvider) {
	s.tilt.SetProvider(p)
}

func (s *Session) World() *ecs.World {
	return s.world
}

func (s *Session) State() component.GameState {
	return *s.state
}

func (s *Session) Physics() *system.PhysicsSystem {
	return s.physics
}
