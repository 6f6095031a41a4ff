package entity

import (
	"fmt"

	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/levels"
)

var objectPrefabs = map[levels.TileKind]string{
	levels.TileVortex:     "vortex.yaml",
	levels.TileStar:       "star.yaml",
	levels.TileFinish:     "finish.yaml",
	levels.TileTeleporter: "teleporter.yaml",
}

// NewObjectAt creates a sensor object (vortex, star, finish or teleporter).
// Walls have their own constructor.
func NewObjectAt(w *ecs.World, x, y float64, kind levels.TileKind) (ecs.Entity, error) {
	prefab, ok := objectPrefabs[kind]
	if !ok {
		return 0, fmt.Errorf("entity: new object: no prefab for tile %q", kind)
	}
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, fmt.Errorf("entity: new %s: %w", kind, err)
	}
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("entity: new %s: %w", kind, err)
	}
	return e, nil
}
