package system

import (
	"errors"
	"fmt"

	"github.com/milk9111/marblemaze/common"
	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/ecs/component"
	"github.com/milk9111/marblemaze/ecs/entity"
	"github.com/milk9111/marblemaze/levels"
	"go.uber.org/zap"
)

const (
	TransitionSeconds = 0.25
	// vanishScale is how small the player shrinks when swallowed by a vortex.
	vanishScale = 0.0001
)

// GameplaySystem reacts to contacts and finished action sequences. It owns
// the GameState and is the only place levels are loaded.
type GameplaySystem struct {
	state  *component.GameState
	source levels.Source
	log    *zap.Logger
	spawn  common.Vec

	// err holds a failure that leaves the world without a playable level.
	err error
}

func NewGameplaySystem(state *component.GameState, source levels.Source, log *zap.Logger) *GameplaySystem {
	if state == nil {
		state = component.NewGameState()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GameplaySystem{
		state:  state,
		source: source,
		log:    log.Named("gameplay"),
		spawn:  entity.DefaultSpawn,
	}
}

func (s *GameplaySystem) State() *component.GameState {
	return s.state
}

// Err returns the load failure that stopped the game, if any.
func (s *GameplaySystem) Err() error {
	return s.err
}

func (s *GameplaySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range ecs.Events(w).Drain() {
		switch evt.Kind {
		case ecs.EventContactBegin:
			if c, ok := evt.Data.(ecs.ContactEvent); ok {
				s.contactBegin(w, c)
			}
		case ecs.EventContactEnd:
			if c, ok := evt.Data.(ecs.ContactEvent); ok {
				s.contactEnd(w, c)
			}
		case ecs.EventActionComplete:
			if done, ok := evt.Data.(ActionComplete); ok {
				s.actionComplete(w, done)
			}
		}
	}
	s.syncScoreboard(w)
}

// playerContact splits a contact into the player and the other entity's
// category and position.
func playerContact(w *ecs.World, c ecs.ContactEvent) (player, other ecs.Entity, ok bool) {
	if !ecs.IsAlive(w, c.A) || !ecs.IsAlive(w, c.B) {
		return 0, 0, false
	}
	switch {
	case ecs.Has(w, c.A, component.PlayerTagComponent.Kind()):
		return c.A, c.B, true
	case ecs.Has(w, c.B, component.PlayerTagComponent.Kind()):
		return c.B, c.A, true
	}
	return 0, 0, false
}

func category(w *ecs.World, e ecs.Entity) component.Category {
	if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
		return layer.Category
	}
	return component.CategoryNone
}

func position(w *ecs.World, e ecs.Entity) common.Vec {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return t.Position()
	}
	return common.Vec{}
}

func (s *GameplaySystem) contactBegin(w *ecs.World, c ecs.ContactEvent) {
	if s.state.Busy() {
		return
	}
	player, other, ok := playerContact(w, c)
	if !ok {
		return
	}

	switch category(w, other) {
	case component.CategoryVortex:
		s.state.Phase = component.PhaseTransitioning
		s.state.AddScore(-1)
		pos := position(w, other)
		s.log.Debug("player fell into vortex", zap.Int("score", s.state.Score))
		s.startSequence(w, player, component.Continuation{Kind: component.ContinueRespawn, X: s.spawn.X, Y: s.spawn.Y},
			component.MoveTo(pos.X, pos.Y, TransitionSeconds),
			component.ScaleTo(vanishScale, TransitionSeconds),
			component.RemoveSelf(),
		)

	case component.CategoryStar:
		ecs.DestroyEntity(w, other)
		s.state.AddScore(1)
		s.log.Debug("star collected", zap.Int("score", s.state.Score))

	case component.CategoryFinish:
		s.state.Phase = component.PhaseTransitioning
		s.state.Level++
		pos := position(w, other)
		s.log.Info("level finished", zap.Int("next_level", s.state.Level))
		s.startSequence(w, player, component.Continuation{Kind: component.ContinueLoadLevel, Level: s.state.Level},
			component.MoveTo(pos.X, pos.Y, TransitionSeconds),
			component.RemoveSelf(),
		)

	case component.CategoryTeleporter:
		if s.state.TeleporterCooldown {
			return
		}
		pos := position(w, other)
		entered, exit, ok := s.state.Teleporters.Entry(pos.Y)
		if !ok {
			s.log.Debug("teleporter has no partner", zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
			return
		}
		s.state.Phase = component.PhaseTransitioning
		s.startSequence(w, player, component.Continuation{Kind: component.ContinueTeleport, X: exit.X, Y: exit.Y},
			component.MoveTo(entered.X, entered.Y, TransitionSeconds),
			component.RemoveSelf(),
		)
	}
}

func (s *GameplaySystem) contactEnd(w *ecs.World, c ecs.ContactEvent) {
	_, other, ok := playerContact(w, c)
	if !ok {
		return
	}
	if category(w, other) == component.CategoryTeleporter {
		s.state.TeleporterCooldown = false
	}
}

// startSequence freezes the player and hands it to the action system.
func (s *GameplaySystem) startSequence(w *ecs.World, player ecs.Entity, then component.Continuation, steps ...component.Action) {
	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok {
		body.Frozen = true
	}
	_ = ecs.Add(w, player, component.ActionSequenceComponent.Kind(), &component.ActionSequence{
		Steps:      steps,
		OnComplete: then,
	})
}

func (s *GameplaySystem) actionComplete(w *ecs.World, done ActionComplete) {
	c := done.Continuation
	switch c.Kind {
	case component.ContinueRespawn:
		if _, err := entity.NewPlayerAt(w, c.X, c.Y); err != nil {
			s.fail(fmt.Errorf("gameplay: respawn: %w", err))
			return
		}
		s.state.Phase = component.PhaseIdle

	case component.ContinueTeleport:
		if _, err := entity.NewPlayerAt(w, c.X, c.Y); err != nil {
			s.fail(fmt.Errorf("gameplay: teleport: %w", err))
			return
		}
		s.state.Phase = component.PhaseIdle
		s.state.TeleporterCooldown = true

	case component.ContinueLoadLevel:
		err := s.LoadLevel(w, c.Level)
		if errors.Is(err, levels.ErrLevelNotFound) && c.Level > 1 {
			s.log.Info("no next level, replaying", zap.Int("level", c.Level-1))
			err = s.LoadLevel(w, c.Level-1)
		}
		if err != nil {
			s.fail(err)
		}
	}
}

func (s *GameplaySystem) fail(err error) {
	s.log.Error("gameplay stopped", zap.Error(err))
	if s.err == nil {
		s.err = err
	}
}

// LoadLevel replaces the current level with level index. The text is parsed
// and every prefab it needs is built once in a scratch world before anything
// in the live world changes, so a bad level or prefab leaves the old one in
// place.
func (s *GameplaySystem) LoadLevel(w *ecs.World, index int) error {
	if s.source == nil {
		return fmt.Errorf("gameplay: load level %d: %w", index, levels.ErrLevelNotFound)
	}
	text, err := s.source.Load(index)
	if err != nil {
		return fmt.Errorf("gameplay: load level %d: %w", index, err)
	}
	placements, err := levels.Parse(text)
	if err != nil {
		return fmt.Errorf("gameplay: parse %s: %w", levels.Name(index), err)
	}

	if err := entity.CheckLevelPrefabs(placements); err != nil {
		return fmt.Errorf("gameplay: load level %d: %w", index, err)
	}

	entity.ClearLevel(w)
	s.state.Teleporters = component.TeleporterPair{}

	if _, err := entity.NewPlayerAt(w, s.spawn.X, s.spawn.Y); err != nil {
		return s.abandonLevel(w, index, err)
	}
	res, err := entity.LoadLevelToWorld(w, placements, &s.state.Teleporters)
	if err != nil {
		return s.abandonLevel(w, index, err)
	}
	for _, p := range res.Unpaired {
		s.log.Warn("extra teleporter is not linked",
			zap.Int("level", index), zap.Int("row", p.Row), zap.Int("column", p.Column))
	}

	s.state.Score = 0
	s.state.TeleporterCooldown = false
	s.state.Phase = component.PhaseIdle
	s.state.Level = index

	s.log.Info("level loaded",
		zap.Int("level", index),
		zap.Int("walls", res.Walls),
		zap.Int("objects", res.Objects),
		zap.Bool("teleporters_paired", s.state.Teleporters.Complete()),
	)
	s.syncScoreboard(w)
	return nil
}

// abandonLevel handles a build failure after the old level was cleared. The
// partial level is removed and the session stopped rather than left running.
func (s *GameplaySystem) abandonLevel(w *ecs.World, index int, err error) error {
	entity.ClearLevel(w)
	s.state.Teleporters = component.TeleporterPair{}
	err = fmt.Errorf("gameplay: load level %d: %w", index, err)
	s.fail(err)
	return err
}

func (s *GameplaySystem) syncScoreboard(w *ecs.World) {
	e, ok := ecs.First(w, component.ScoreboardComponent.Kind())
	if !ok {
		e = ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.ScoreboardComponent.Kind(), &component.Scoreboard{}); err != nil {
			return
		}
	}
	board, _ := ecs.Get(w, e, component.ScoreboardComponent.Kind())
	if board.Score == s.state.Score && board.Level == s.state.Level && board.RenderedText != "" {
		return
	}
	board.Score = s.state.Score
	board.Level = s.state.Level
	board.RenderedText = fmt.Sprintf("Score: %d   Level: %d", board.Score, board.Level)
}
