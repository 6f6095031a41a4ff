package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/marblemaze/common"
	"github.com/milk9111/marblemaze/ecs/system"
)

const stickDeadzone = 0.2

// KeyTilt tilts the board with the arrow keys, WASD or the first gamepad's
// left stick. With nothing held the board is level.
type KeyTilt struct {
	Max float64
}

func NewKeyTilt(maxTilt float64) *KeyTilt {
	if maxTilt <= 0 {
		maxTilt = 1
	}
	return &KeyTilt{Max: maxTilt}
}

func (k *KeyTilt) Tilt() (common.Vec, bool) {
	var dir common.Vec
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Y += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Y -= 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			// Stick y grows downward.
			dir = common.Vec{X: lx, Y: -ly}
		}
	}

	return system.TiltForDirection(dir.ClampLen(1).Scale(k.Max)), true
}
