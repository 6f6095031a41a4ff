package component

import (
	"math"

	"github.com/milk9111/marblemaze/common"
)

// Phase is the gameplay state.
type Phase int

const (
	PhaseIdle Phase = iota
	// PhaseTransitioning covers death, teleport and finish sequences. Gravity
	// updates and new contacts are ignored while it lasts.
	PhaseTransitioning
)

func (p Phase) String() string {
	if p == PhaseTransitioning {
		return "transitioning"
	}
	return "idle"
}

// TeleporterMatchTolerance is how close, vertically, a contacted teleporter
// must be to a registered slot.
const TeleporterMatchTolerance = 1.0

// TeleporterPair links the first two teleporters of a level.
type TeleporterPair struct {
	A    common.Vec
	B    common.Vec
	HasA bool
	HasB bool
}

// Register records a teleporter position in level order. It reports false
// when both slots are already taken.
func (p *TeleporterPair) Register(pos common.Vec) bool {
	switch {
	case !p.HasA:
		p.A, p.HasA = pos, true
	case !p.HasB:
		p.B, p.HasB = pos, true
	default:
		return false
	}
	return true
}

// Complete reports whether both slots are set.
func (p TeleporterPair) Complete() bool {
	return p.HasA && p.HasB
}

// Entry matches a contacted teleporter's y coordinate against the stored
// slots and returns where the entered pad is and where the player should
// come out. ok is false for an incomplete pair or when nothing matches.
func (p TeleporterPair) Entry(y float64) (entered, exit common.Vec, ok bool) {
	if !p.Complete() {
		return common.Vec{}, common.Vec{}, false
	}
	if math.Abs(y-p.A.Y) < TeleporterMatchTolerance {
		return p.A, p.B, true
	}
	if math.Abs(y-p.B.Y) < TeleporterMatchTolerance {
		return p.B, p.A, true
	}
	return common.Vec{}, common.Vec{}, false
}

// GameState is the single mutable gameplay state. The gameplay system owns
// it; the tilt system only reads the phase.
type GameState struct {
	Score              int
	Level              int
	Phase              Phase
	TeleporterCooldown bool
	Teleporters        TeleporterPair
}

func NewGameState() *GameState {
	return &GameState{Level: 1}
}

// Busy reports whether a transition is in flight.
func (s *GameState) Busy() bool {
	return s != nil && s.Phase == PhaseTransitioning
}

// AddScore applies delta and clamps the result at zero.
func (s *GameState) AddScore(delta int) {
	s.Score += delta
	if s.Score < 0 {
		s.Score = 0
	}
}
