package system

import (
	"math"
	"testing"

	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/ecs/component"
)

func TestSpinSystem(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(w, e, component.SpinComponent.Kind(), &component.Spin{Speed: math.Pi})

	still := ecs.CreateEntity(w)
	_ = ecs.Add(w, still, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1})

	sys := NewSpinSystem()
	for i := 0; i < 30; i++ {
		sys.Update(w)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if math.Abs(tr.Rotation-math.Pi/2) > 1e-9 {
		t.Fatalf("rotation after half a second = %v, want pi/2", tr.Rotation)
	}

	for i := 0; i < 90; i++ {
		sys.Update(w)
	}
	if tr.Rotation < 0 || tr.Rotation >= 2*math.Pi {
		t.Fatalf("rotation should wrap into [0, 2pi), got %v", tr.Rotation)
	}

	if other, _ := ecs.Get(w, still, component.TransformComponent.Kind()); other.Rotation != 0 {
		t.Fatalf("entity without spin rotated")
	}
}
