package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/marblemaze/common"
	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/ecs/component"
)

// ActionComplete is the payload of EventActionComplete.
type ActionComplete struct {
	Entity       ecs.Entity
	Continuation component.Continuation
}

// ActionSystem plays ActionSequence components one fixed tick at a time.
type ActionSystem struct {
	dt float64
}

func NewActionSystem() *ActionSystem {
	return &ActionSystem{dt: common.TickSeconds}
}

func (s *ActionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.ActionSequenceComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, seq *component.ActionSequence, t *component.Transform) {
		s.advance(w, e, seq, t)
	})
}

func (s *ActionSystem) advance(w *ecs.World, e ecs.Entity, seq *component.ActionSequence, t *component.Transform) {
	remaining := s.dt
	for seq.Index < len(seq.Steps) {
		step := seq.Steps[seq.Index]
		if step.Kind == component.ActionRemove {
			ecs.DestroyEntity(w, e)
			complete(w, e, seq.OnComplete)
			return
		}

		if !seq.Started {
			seq.Started = true
			seq.Elapsed = 0
			seq.FromX, seq.FromY = t.X, t.Y
			seq.FromS = t.ScaleX
		}

		need := step.Duration - seq.Elapsed
		if remaining < need {
			seq.Elapsed += remaining
			applyStep(t, seq, step, seq.Elapsed/step.Duration)
			syncKinematic(w, e, t)
			return
		}

		if need > 0 {
			remaining -= need
		}
		applyStep(t, seq, step, 1)
		syncKinematic(w, e, t)
		seq.Index++
		seq.Started = false
		seq.Elapsed = 0
	}

	_ = ecs.Remove(w, e, component.ActionSequenceComponent.Kind())
	complete(w, e, seq.OnComplete)
}

func applyStep(t *component.Transform, seq *component.ActionSequence, step component.Action, frac float64) {
	frac = common.Clamp01(frac)
	switch step.Kind {
	case component.ActionMove:
		t.X = common.Lerp(seq.FromX, step.X, frac)
		t.Y = common.Lerp(seq.FromY, step.Y, frac)
	case component.ActionScale:
		s := common.Lerp(seq.FromS, step.Scale, frac)
		t.ScaleX, t.ScaleY = s, s
	}
}

// syncKinematic keeps a frozen body on its transform so the space sees the
// same position the renderer draws.
func syncKinematic(w *ecs.World, e ecs.Entity, t *component.Transform) {
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil || !body.Frozen {
		return
	}
	body.Body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
}

func complete(w *ecs.World, e ecs.Entity, c component.Continuation) {
	ecs.Events(w).Push(ecs.Event{
		Kind: ecs.EventActionComplete,
		Data: ActionComplete{Entity: e, Continuation: c},
	})
}
