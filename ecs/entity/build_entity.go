package entity

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/ecs/component"
	"github.com/milk9111/marblemaze/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":      addPlayerTag,
	"map_node":        addMapNode,
	"transform":       addTransform,
	"sprite":          addSprite,
	"render_layer":    addRenderLayer,
	"collision_layer": addCollisionLayer,
	"physics_body":    addPhysicsBody,
	"spin":            addSpin,
}

// physics_body reads the sprite size, so sprite must come first.
var componentBuildOrder = []string{
	"player_tag",
	"map_node",
	"transform",
	"sprite",
	"render_layer",
	"collision_layer",
	"physics_body",
	"spin",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addMapNode(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.MapNodeComponent.Kind(), &component.MapNode{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

var spriteShapes = map[string]component.SpriteShape{
	"":       component.SpriteCircle,
	"circle": component.SpriteCircle,
	"rect":   component.SpriteRect,
	"star":   component.SpriteStar,
	"swirl":  component.SpriteSwirl,
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	shape, ok := spriteShapes[strings.ToLower(spec.Shape)]
	if !ok {
		return fmt.Errorf("unknown sprite shape %q", spec.Shape)
	}
	if spec.Width <= 0 {
		spec.Width = 64
	}
	if spec.Height <= 0 {
		spec.Height = spec.Width
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Key:     ctx.PrefabPath,
		Shape:   shape,
		Width:   spec.Width,
		Height:  spec.Height,
		Color:   spec.Color.NRGBA,
		Accent:  spec.Accent.NRGBA,
		OriginX: spec.Width / 2,
		OriginY: spec.Height / 2,
	})
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type collisionLayerSpec = prefabs.CollisionLayerComponentSpec

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collisionLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision layer spec: %w", err)
	}
	cat, ok := component.ParseCategory(spec.Category)
	if !ok {
		return fmt.Errorf("unknown category %q", spec.Category)
	}
	contact, err := parseMask(spec.ContactMask)
	if err != nil {
		return fmt.Errorf("contact mask: %w", err)
	}
	collision, err := parseMask(spec.CollisionMask)
	if err != nil {
		return fmt.Errorf("collision mask: %w", err)
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category:      cat,
		ContactMask:   contact,
		CollisionMask: collision,
	})
}

func parseMask(names []string) (component.Category, error) {
	var mask component.Category
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			mask |= component.AllCategories
			continue
		}
		c, ok := component.ParseCategory(name)
		if !ok {
			return 0, fmt.Errorf("unknown category %q", name)
		}
		mask |= c
	}
	return mask, nil
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}

	// Colliders default to the sprite's footprint.
	spriteW, spriteH := 64.0, 64.0
	if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		spriteW, spriteH = s.Width, s.Height
	}

	body := &component.PhysicsBody{
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		Elasticity:    spec.Elasticity,
		LinearDamping: spec.LinearDamping,
		FixedRotation: spec.FixedRotation,
		Static:        spec.Static,
	}
	switch strings.ToLower(spec.Shape) {
	case "", "circle":
		body.Radius = spec.Radius
		if body.Radius <= 0 {
			body.Radius = spriteW / 2
		}
	case "box":
		body.Width, body.Height = spec.Width, spec.Height
		if body.Width <= 0 {
			body.Width = spriteW
		}
		if body.Height <= 0 {
			body.Height = spriteH
		}
	default:
		return fmt.Errorf("unknown body shape %q", spec.Shape)
	}
	if !body.Static && body.Mass <= 0 {
		body.Mass = 1
	}
	if body.LinearDamping < 0 || math.IsNaN(body.LinearDamping) {
		body.LinearDamping = 0
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
}

type spinSpec = prefabs.SpinComponentSpec

func addSpin(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spinSpec](raw)
	if err != nil {
		return fmt.Errorf("decode spin spec: %w", err)
	}
	return ecs.Add(w, e, component.SpinComponent.Kind(), &component.Spin{
		Speed: spec.DegreesPerSecond * math.Pi / 180,
	})
}
