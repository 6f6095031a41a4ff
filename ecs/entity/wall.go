package entity

import (
	"fmt"

	"github.com/milk9111/marblemaze/ecs"
)

func NewWallAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, "wall.yaml")
	if err != nil {
		return 0, fmt.Errorf("entity: new wall: %w", err)
	}
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("entity: new wall: %w", err)
	}
	return e, nil
}
