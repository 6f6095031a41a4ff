package system

import (
	"github.com/milk9111/marblemaze/common"
	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/ecs/component"
)

const (
	DefaultGravityScale   = 50.0
	DefaultPointsPerMeter = 150.0
)

// TiltProvider reports the device tilt for the current tick. ok is false when
// no reading is available.
type TiltProvider interface {
	Tilt() (tilt common.Vec, ok bool)
}

type gravitySetter interface {
	SetGravity(g common.Vec)
}

// TiltSystem turns the tilt reading into world gravity. Gravity is left alone
// while a transition is running.
type TiltSystem struct {
	provider TiltProvider
	physics  gravitySetter
	state    *component.GameState

	gravityScale   float64
	pointsPerMeter float64
}

func NewTiltSystem(provider TiltProvider, physics gravitySetter, state *component.GameState) *TiltSystem {
	return &TiltSystem{
		provider:       provider,
		physics:        physics,
		state:          state,
		gravityScale:   DefaultGravityScale,
		pointsPerMeter: DefaultPointsPerMeter,
	}
}

// SetScale overrides the tilt multiplier and the world units per meter.
// Non-positive values keep the current setting.
func (s *TiltSystem) SetScale(gravityScale, pointsPerMeter float64) {
	if gravityScale > 0 {
		s.gravityScale = gravityScale
	}
	if pointsPerMeter > 0 {
		s.pointsPerMeter = pointsPerMeter
	}
}

// SetProvider swaps the tilt source. A nil provider leaves gravity unchanged.
func (s *TiltSystem) SetProvider(p TiltProvider) {
	s.provider = p
}

// GravityFor maps a tilt reading to world gravity.
func (s *TiltSystem) GravityFor(tilt common.Vec) common.Vec {
	return common.Vec{X: -tilt.Y * s.gravityScale, Y: tilt.X * s.gravityScale}.Scale(s.pointsPerMeter)
}

// TiltForDirection is the tilt reading that pulls the marble along dir in
// world space. It is the inverse of GravityFor up to scale.
func TiltForDirection(dir common.Vec) common.Vec {
	return common.Vec{X: dir.Y, Y: -dir.X}
}

func (s *TiltSystem) Update(_ *ecs.World) {
	if s == nil || s.physics == nil || s.provider == nil {
		return
	}
	if s.state.Busy() {
		return
	}
	tilt, ok := s.provider.Tilt()
	if !ok {
		return
	}
	s.physics.SetGravity(s.GravityFor(tilt))
}
