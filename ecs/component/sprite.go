package component

import "image/color"

type SpriteShape int

const (
	SpriteCircle SpriteShape = iota
	SpriteRect
	SpriteStar
	SpriteSwirl
)

// Sprite describes how the renderer should draw an entity. Images are
// generated by the renderer from this description and cached by Key.
type Sprite struct {
	Key     string
	Shape   SpriteShape
	Width   float64
	Height  float64
	Color   color.NRGBA
	Accent  color.NRGBA
	OriginX float64
	OriginY float64
}

var SpriteComponent = NewComponent[Sprite]()
