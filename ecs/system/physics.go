package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/marblemaze/common"
	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/ecs/component"
)

const collisionTypeBody cp.CollisionType = 1

const defaultIterations = 20

type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	dt            float64

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity

	// removing is set while shapes leave the space so that the separate
	// callbacks Chipmunk fires during removal are not reported as contact
	// ends.
	removing bool
	pending  []ecs.Event
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
	frozen bool
	mass   float64
	moment float64
	layer  component.CollisionLayer
}

func NewPhysicsSystem() *PhysicsSystem {
	ps := &PhysicsSystem{
		dt:       common.TickSeconds,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
	ps.space = newSpace()
	return ps
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = defaultIterations
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// SetGravity sets the space gravity in world units per second squared.
func (ps *PhysicsSystem) SetGravity(g common.Vec) {
	if ps == nil || ps.space == nil {
		return
	}
	ps.space.SetGravity(cp.Vector{X: g.X, Y: g.Y})
}

func (ps *PhysicsSystem) Gravity() common.Vec {
	if ps == nil || ps.space == nil {
		return common.Vec{}
	}
	g := ps.space.Gravity()
	return common.Vec{X: g.X, Y: g.Y}
}

// BodyCount reports how many entities currently own a body in the space.
func (ps *PhysicsSystem) BodyCount() int {
	if ps == nil {
		return 0
	}
	return len(ps.entities)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.syncKinematics(w)

	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypeBody, collisionTypeBody)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*PhysicsSystem); ok && sys != nil {
			sys.queueContact(ecs.EventContactBegin, arb)
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil || sys.removing {
			return
		}
		sys.queueContact(ecs.EventContactEnd, arb)
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) queueContact(kind ecs.EventKind, arb *cp.Arbiter) {
	shapeA, shapeB := arb.Shapes()
	a, okA := ps.shapes[shapeA]
	b, okB := ps.shapes[shapeB]
	if !okA || !okB {
		return
	}
	infoA, infoB := ps.entities[a], ps.entities[b]
	if infoA == nil || infoB == nil || !reportsContact(infoA.layer, infoB.layer) {
		return
	}
	ps.pending = append(ps.pending, ecs.Event{Kind: kind, Data: ecs.ContactEvent{A: a, B: b}})
}

// reportsContact is true when either side asked to hear about the other.
func reportsContact(a, b component.CollisionLayer) bool {
	return a.ContactMask.Has(b.Category) || b.ContactMask.Has(a.Category)
}

// shapeFilter folds the contact mask into Chipmunk's mask so sensor pairs are
// still tested. Whether the pair collides physically is decided by the
// sensor flag.
func shapeFilter(layer component.CollisionLayer) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(layer.Category), uint(layer.CollisionMask|layer.ContactMask))
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			if bodyComp.Body == nil || bodyComp.Shape == nil {
				bodyComp.Body = info.body
				bodyComp.Shape = info.shape
			}
			return
		}

		var layer component.CollisionLayer
		if l, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
			layer = *l
		} else {
			layer = component.CollisionLayer{CollisionMask: component.AllCategories}
		}

		info := ps.createBodyInfo(transform, bodyComp, layer)
		if info == nil {
			return
		}
		ps.entities[e] = info
		ps.shapes[info.shape] = e
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
	})
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, layer component.CollisionLayer) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width = 64
		height = 64
	}

	info := &bodyInfo{static: bodyComp.Static, layer: layer}

	var shape *cp.Shape
	if bodyComp.Static {
		center := cp.Vector{X: transform.X, Y: transform.Y}
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, center)
		} else {
			bb := cp.BB{L: center.X - width/2, B: center.Y - height/2, R: center.X + width/2, T: center.Y + height/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		info.body = ps.space.StaticBody
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		moment := math.Inf(1)
		if !bodyComp.FixedRotation {
			if radius > 0 {
				moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
			} else {
				moment = cp.MomentForBox(mass, width, height)
			}
		}

		body := cp.NewBody(mass, moment)
		body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
		body.SetAngle(transform.Rotation)

		damping := bodyComp.LinearDamping
		if damping > 0 {
			body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, _ float64, dt float64) {
				cp.BodyUpdateVelocity(body, gravity, math.Max(0, 1-damping*dt), dt)
			})
		}

		if radius > 0 {
			shape = cp.NewCircle(body, radius, cp.Vector{})
		} else {
			shape = cp.NewBox(body, width, height, 0)
		}
		ps.space.AddBody(body)
		info.body = body
		info.mass = mass
		info.moment = moment
	}

	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeBody)
	shape.SetFilter(shapeFilter(layer))
	if layer.CollisionMask == component.CategoryNone {
		shape.SetSensor(true)
	}
	ps.space.AddShape(shape)
	info.shape = shape
	return info
}

// syncKinematics applies Frozen and pushes hand-driven transforms of frozen
// bodies into the space.
func (ps *PhysicsSystem) syncKinematics(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		info := ps.entities[e]
		if info == nil || info.static || info.body == nil {
			return
		}
		if bodyComp.Frozen != info.frozen {
			if bodyComp.Frozen {
				info.body.SetType(cp.BODY_KINEMATIC)
			} else {
				// Chipmunk recomputes mass from the shapes when a body turns
				// dynamic again; ours carry none.
				info.body.SetType(cp.BODY_DYNAMIC)
				info.body.SetMass(info.mass)
				info.body.SetMoment(info.moment)
			}
			info.body.SetVelocity(0, 0)
			info.body.SetAngularVelocity(0)
			info.frozen = bodyComp.Frozen
		}
		if info.frozen {
			info.body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
		}
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Static || bodyComp.Frozen || bodyComp.Body == nil {
			return
		}
		pos := bodyComp.Body.Position()
		transform.SetPosition(common.Vec{X: pos.X, Y: pos.Y})
		if !bodyComp.FixedRotation {
			transform.Rotation = bodyComp.Body.Angle()
		}
	})
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	if len(ps.pending) == 0 {
		return
	}
	q := ecs.Events(w)
	for _, evt := range ps.pending {
		c := evt.Data.(ecs.ContactEvent)
		if !ecs.IsAlive(w, c.A) || !ecs.IsAlive(w, c.B) {
			continue
		}
		q.Push(evt)
	}
	ps.pending = ps.pending[:0]
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	ps.removing = true
	defer func() { ps.removing = false }()

	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapes, info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
