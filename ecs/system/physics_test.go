package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/marblemaze/common"
	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/ecs/component"
	"github.com/milk9111/marblemaze/ecs/entity"
	"github.com/milk9111/marblemaze/levels"
)

type contactLog struct {
	begins []ecs.ContactEvent
	ends   []ecs.ContactEvent
}

func (l *contactLog) collect(w *ecs.World) {
	for _, evt := range ecs.Events(w).Drain() {
		c, ok := evt.Data.(ecs.ContactEvent)
		if !ok {
			continue
		}
		switch evt.Kind {
		case ecs.EventContactBegin:
			l.begins = append(l.begins, c)
		case ecs.EventContactEnd:
			l.ends = append(l.ends, c)
		}
	}
}

func involves(list []ecs.ContactEvent, a, b ecs.Entity) bool {
	for _, c := range list {
		if (c.A == a && c.B == b) || (c.A == b && c.B == a) {
			return true
		}
	}
	return false
}

func mustPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewPlayerAt(w, x, y)
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	return e
}

func TestPhysicsPlayerRestsOnWall(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := entity.NewWallAt(w, 96, 32); err != nil {
		t.Fatalf("wall: %v", err)
	}
	player := mustPlayer(t, w, 96, 200)

	ps := NewPhysicsSystem()
	ps.SetGravity(common.Vec{Y: -1000})
	var log contactLog
	for i := 0; i < 240; i++ {
		ps.Update(w)
		log.collect(w)
	}

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	// Wall top at 64 plus the player's radius.
	if math.Abs(tr.Y-88) > 2 || math.Abs(tr.X-96) > 1 {
		t.Fatalf("player at (%v, %v), want resting near (96, 88)", tr.X, tr.Y)
	}
	if len(log.begins) != 0 || len(log.ends) != 0 {
		t.Fatalf("walls should not report gameplay contacts: %+v", log)
	}
	if ps.BodyCount() != 2 {
		t.Fatalf("bodies = %d, want 2", ps.BodyCount())
	}
}

func TestPhysicsSensorContacts(t *testing.T) {
	w := ecs.NewWorld()
	star, err := entity.NewObjectAt(w, 96, 32, levels.TileStar)
	if err != nil {
		t.Fatalf("star: %v", err)
	}
	player := mustPlayer(t, w, 96, 120)

	ps := NewPhysicsSystem()
	ps.SetGravity(common.Vec{Y: -1000})
	var log contactLog
	for i := 0; i < 120; i++ {
		ps.Update(w)
		log.collect(w)
	}

	if !involves(log.begins, player, star) {
		t.Fatalf("expected begin contact between player and star")
	}
	if !involves(log.ends, player, star) {
		t.Fatalf("player fell through the sensor, expected an end contact")
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.Y > 0 {
		t.Fatalf("sensor should not stop the player, y = %v", tr.Y)
	}
}

func TestPhysicsRemovalIsNotAContactEnd(t *testing.T) {
	w := ecs.NewWorld()
	pad, err := entity.NewObjectAt(w, 96, 96, levels.TileTeleporter)
	if err != nil {
		t.Fatalf("teleporter: %v", err)
	}
	player := mustPlayer(t, w, 96, 96)

	ps := NewPhysicsSystem()
	var log contactLog
	for i := 0; i < 3; i++ {
		ps.Update(w)
		log.collect(w)
	}
	if !involves(log.begins, player, pad) {
		t.Fatalf("expected begin contact")
	}

	ecs.DestroyEntity(w, player)
	for i := 0; i < 3; i++ {
		ps.Update(w)
		log.collect(w)
	}
	if len(log.ends) != 0 {
		t.Fatalf("removal reported as contact end: %+v", log.ends)
	}
	if ps.BodyCount() != 1 {
		t.Fatalf("bodies = %d, want 1", ps.BodyCount())
	}
}

func TestPhysicsFrozenBodyIgnoresGravity(t *testing.T) {
	w := ecs.NewWorld()
	player := mustPlayer(t, w, 96, 300)
	ps := NewPhysicsSystem()
	ps.SetGravity(common.Vec{Y: -1000})
	ps.Update(w)

	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	body.Frozen = true
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	tr.X, tr.Y = 50, 50

	for i := 0; i < 30; i++ {
		ps.Update(w)
	}
	if tr.X != 50 || tr.Y != 50 {
		t.Fatalf("frozen player moved to (%v, %v)", tr.X, tr.Y)
	}
	if body.Body.GetType() != cp.BODY_KINEMATIC {
		t.Fatalf("frozen body should be kinematic")
	}
	pos := body.Body.Position()
	if pos.X != 50 || pos.Y != 50 {
		t.Fatalf("body position = %+v, want transform position", pos)
	}
}

func TestPhysicsLinearDamping(t *testing.T) {
	w := ecs.NewWorld()
	player := mustPlayer(t, w, 0, 0)
	ps := NewPhysicsSystem()
	ps.Update(w)

	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	body.Body.SetVelocity(100, 0)
	for i := 0; i < common.TicksPerSecond; i++ {
		ps.Update(w)
	}

	// (1 - 0.5/60)^60 is about e^-0.5.
	v := body.Body.Velocity()
	if v.X < 55 || v.X > 66 || math.Abs(v.Y) > 1e-9 {
		t.Fatalf("velocity after one second = %+v, want about 60.6", v)
	}
}

func TestPhysicsGravityRoundTrip(t *testing.T) {
	ps := NewPhysicsSystem()
	g := common.Vec{X: 12, Y: -34}
	ps.SetGravity(g)
	if ps.Gravity() != g {
		t.Fatalf("gravity = %+v, want %+v", ps.Gravity(), g)
	}
}

func TestShapeFilter(t *testing.T) {
	layer := component.CollisionLayer{
		Category:      component.CategoryPlayer,
		ContactMask:   component.PlayerContactMask,
		CollisionMask: component.CategoryWall,
	}
	f := shapeFilter(layer)
	if f.Categories != uint(component.CategoryPlayer) {
		t.Fatalf("categories = %b", f.Categories)
	}
	if f.Mask != uint(component.PlayerContactMask|component.CategoryWall) {
		t.Fatalf("mask = %b", f.Mask)
	}

	star := component.CollisionLayer{Category: component.CategoryStar, ContactMask: component.CategoryPlayer}
	wall := component.CollisionLayer{Category: component.CategoryWall, CollisionMask: component.AllCategories}
	if !reportsContact(layer, star) || !reportsContact(star, layer) {
		t.Fatalf("player and star should report contacts")
	}
	if reportsContact(layer, wall) {
		t.Fatalf("player and wall should not report contacts")
	}
}
