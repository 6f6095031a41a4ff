package component

// ActionKind selects what a step of an ActionSequence does.
type ActionKind int

const (
	ActionMove ActionKind = iota + 1
	ActionScale
	ActionRemove
)

// Action is one timed step. Move tweens the transform to (X, Y), Scale tweens
// both scale axes to Scale, Remove destroys the entity.
type Action struct {
	Kind     ActionKind
	X        float64
	Y        float64
	Scale    float64
	Duration float64
}

func MoveTo(x, y, duration float64) Action {
	return Action{Kind: ActionMove, X: x, Y: y, Duration: duration}
}

func ScaleTo(scale, duration float64) Action {
	return Action{Kind: ActionScale, Scale: scale, Duration: duration}
}

func RemoveSelf() Action {
	return Action{Kind: ActionRemove}
}

// ContinuationKind names what gameplay should do once a sequence finishes.
type ContinuationKind int

const (
	ContinueNone ContinuationKind = iota
	ContinueRespawn
	ContinueTeleport
	ContinueLoadLevel
)

func (k ContinuationKind) String() string {
	switch k {
	case ContinueRespawn:
		return "respawn"
	case ContinueTeleport:
		return "teleport"
	case ContinueLoadLevel:
		return "load_level"
	default:
		return "none"
	}
}

// Continuation is the opaque token handed back to gameplay when a sequence
// completes.
type Continuation struct {
	Kind  ContinuationKind
	X     float64
	Y     float64
	Level int
}

// ActionSequence plays Steps in order. The runtime fields are owned by the
// action system.
type ActionSequence struct {
	Steps      []Action
	OnComplete Continuation

	Index   int
	Elapsed float64
	Started bool
	FromX   float64
	FromY   float64
	FromS   float64
}

var ActionSequenceComponent = NewComponent[ActionSequence]()
