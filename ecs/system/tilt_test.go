package system

import (
	"testing"

	"github.com/milk9111/marblemaze/common"
	"github.com/milk9111/marblemaze/ecs/component"
)

type fixedTilt struct {
	v  common.Vec
	ok bool
}

func (f fixedTilt) Tilt() (common.Vec, bool) { return f.v, f.ok }

type gravityRecorder struct {
	g     common.Vec
	calls int
}

func (r *gravityRecorder) SetGravity(g common.Vec) {
	r.g = g
	r.calls++
}

func TestTiltSystemGravity(t *testing.T) {
	tests := []struct {
		name string
		tilt common.Vec
		want common.Vec
	}{
		{"flat", common.Vec{}, common.Vec{}},
		{"tilt x", common.Vec{X: 1}, common.Vec{X: 0, Y: 50 * 150}},
		{"tilt y", common.Vec{Y: 1}, common.Vec{X: -50 * 150, Y: 0}},
		{"both", common.Vec{X: 0.2, Y: -0.4}, common.Vec{X: 0.4 * 50 * 150, Y: 0.2 * 50 * 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &gravityRecorder{}
			sys := NewTiltSystem(fixedTilt{v: tt.tilt, ok: true}, rec, component.NewGameState())
			sys.Update(nil)
			if rec.calls != 1 {
				t.Fatalf("SetGravity calls = %d, want 1", rec.calls)
			}
			if !nearVec(rec.g, tt.want, 1e-6) {
				t.Fatalf("gravity = %+v, want %+v", rec.g, tt.want)
			}
		})
	}
}

func TestTiltSystemSkipsWhileBusy(t *testing.T) {
	rec := &gravityRecorder{}
	state := component.NewGameState()
	state.Phase = component.PhaseTransitioning
	sys := NewTiltSystem(fixedTilt{v: common.Vec{X: 1}, ok: true}, rec, state)
	sys.Update(nil)
	if rec.calls != 0 {
		t.Fatalf("gravity changed while transitioning")
	}

	state.Phase = component.PhaseIdle
	sys.Update(nil)
	if rec.calls != 1 {
		t.Fatalf("gravity not applied after returning to idle")
	}
}

func TestTiltSystemNoReading(t *testing.T) {
	rec := &gravityRecorder{}
	sys := NewTiltSystem(fixedTilt{ok: false}, rec, component.NewGameState())
	sys.Update(nil)

	sys.SetProvider(nil)
	sys.Update(nil)
	if rec.calls != 0 {
		t.Fatalf("gravity changed without a reading")
	}
}

func TestTiltSystemSetScale(t *testing.T) {
	rec := &gravityRecorder{}
	sys := NewTiltSystem(fixedTilt{v: common.Vec{X: 1}, ok: true}, rec, component.NewGameState())
	sys.SetScale(10, 0)
	sys.Update(nil)
	if want := (common.Vec{Y: 10 * DefaultPointsPerMeter}); !nearVec(rec.g, want, 1e-9) {
		t.Fatalf("gravity = %+v, want %+v", rec.g, want)
	}
}

func nearVec(a, b common.Vec, eps float64) bool {
	return a.Sub(b).Len() <= eps
}

func TestTiltForDirection(t *testing.T) {
	sys := NewTiltSystem(nil, nil, nil)
	for _, dir := range []common.Vec{{X: 1}, {X: -1}, {Y: 1}, {X: 0.3, Y: -0.7}} {
		g := sys.GravityFor(TiltForDirection(dir))
		want := dir.Scale(DefaultGravityScale * DefaultPointsPerMeter)
		if !nearVec(g, want, 1e-6) {
			t.Fatalf("direction %+v gives gravity %+v, want %+v", dir, g, want)
		}
	}
}
