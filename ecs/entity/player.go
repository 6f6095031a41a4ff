package entity

import (
	"fmt"

	"github.com/milk9111/marblemaze/common"
	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/ecs/component"
)

// DefaultSpawn is where the player starts every level and respawns after
// dying.
var DefaultSpawn = common.Vec{X: 96, Y: 672}

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return NewPlayerAt(w, DefaultSpawn.X, DefaultSpawn.Y)
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, "player.yaml")
	if err != nil {
		return 0, fmt.Errorf("entity: new player: %w", err)
	}
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("entity: new player: %w", err)
	}
	return e, nil
}

// Player returns the live player entity, if any.
func Player(w *ecs.World) (ecs.Entity, bool) {
	return ecs.First(w, component.PlayerTagComponent.Kind())
}
