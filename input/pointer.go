package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/marblemaze/common"
	"github.com/milk9111/marblemaze/ecs/system"
)

// PointerTilt tilts the board toward the mouse or first touch while it is
// held. The pull grows with the distance from the anchor, usually the
// marble, and saturates at Span world units.
type PointerTilt struct {
	Span float64
	Max  float64

	// Anchor reports the point the pull is measured from.
	Anchor func() (common.Vec, bool)
	// ScreenToWorld converts window pixels to world units.
	ScreenToWorld func(x, y int) common.Vec

	touches []ebiten.TouchID
}

func NewPointerTilt(span, maxTilt float64, anchor func() (common.Vec, bool), toWorld func(x, y int) common.Vec) *PointerTilt {
	if span <= 0 {
		span = 256
	}
	if maxTilt <= 0 {
		maxTilt = 1
	}
	return &PointerTilt{Span: span, Max: maxTilt, Anchor: anchor, ScreenToWorld: toWorld}
}

func (p *PointerTilt) Tilt() (common.Vec, bool) {
	x, y, held := p.pointer()
	if !held {
		return common.Vec{}, true
	}
	if p.Anchor == nil || p.ScreenToWorld == nil {
		return common.Vec{}, false
	}
	anchor, ok := p.Anchor()
	if !ok {
		return common.Vec{}, false
	}
	dir := p.ScreenToWorld(x, y).Sub(anchor).Scale(1 / p.Span).ClampLen(1)
	return system.TiltForDirection(dir.Scale(p.Max)), true
}

func (p *PointerTilt) pointer() (int, int, bool) {
	p.touches = ebiten.AppendTouchIDs(p.touches[:0])
	if len(p.touches) > 0 {
		x, y := ebiten.TouchPosition(p.touches[0])
		return x, y, true
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return x, y, true
	}
	return 0, 0, false
}
