package entity

import (
	"fmt"

	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/ecs/component"
	"github.com/milk9111/marblemaze/levels"
)

// LoadResult summarises what LoadLevelToWorld created.
type LoadResult struct {
	Walls   int
	Objects int
	// Unpaired lists teleporters beyond the first two. They exist in the
	// world but nothing links to them.
	Unpaired []levels.Placement
}

// ClearLevel destroys every map node and the player.
func ClearLevel(w *ecs.World) int {
	var doomed []ecs.Entity
	ecs.ForEach(w, component.MapNodeComponent.Kind(), func(e ecs.Entity, _ *component.MapNode) {
		doomed = append(doomed, e)
	})
	ecs.ForEach(w, component.PlayerTagComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag) {
		doomed = append(doomed, e)
	})
	removed := 0
	for _, e := range doomed {
		if ecs.DestroyEntity(w, e) {
			removed++
		}
	}
	return removed
}

// CheckLevelPrefabs builds the player and one entity of every tile kind used
// by placements into a scratch world. A prefab that fails to load or decode
// is reported here, before the live level is torn down.
func CheckLevelPrefabs(placements []levels.Placement) error {
	scratch := ecs.NewWorld()
	if _, err := NewPlayer(scratch); err != nil {
		return err
	}
	seen := make(map[levels.TileKind]bool)
	for _, p := range placements {
		if seen[p.Kind] {
			continue
		}
		seen[p.Kind] = true
		var err error
		if p.Kind == levels.TileWall {
			_, err = NewWallAt(scratch, 0, 0)
		} else {
			_, err = NewObjectAt(scratch, 0, 0, p.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadLevelToWorld instantiates every placement in order. Teleporters are
// registered into pair as they are met, so the first one in the list fills
// slot A.
func LoadLevelToWorld(w *ecs.World, placements []levels.Placement, pair *component.TeleporterPair) (LoadResult, error) {
	var res LoadResult
	for _, p := range placements {
		pos := p.Position()

		var (
			e   ecs.Entity
			err error
		)
		if p.Kind == levels.TileWall {
			e, err = NewWallAt(w, pos.X, pos.Y)
			res.Walls++
		} else {
			e, err = NewObjectAt(w, pos.X, pos.Y, p.Kind)
			res.Objects++
		}
		if err != nil {
			return res, fmt.Errorf("entity: load level at row %d column %d: %w", p.Row, p.Column, err)
		}

		if node, ok := ecs.Get(w, e, component.MapNodeComponent.Kind()); ok {
			node.Row, node.Column = p.Row, p.Column
		} else {
			_ = ecs.Add(w, e, component.MapNodeComponent.Kind(), &component.MapNode{Row: p.Row, Column: p.Column})
		}

		if p.Kind == levels.TileTeleporter && pair != nil {
			if !pair.Register(pos) {
				res.Unpaired = append(res.Unpaired, p)
			}
		}
	}
	return res, nil
}
