package component

import "github.com/milk9111/marblemaze/common"

// Transform is the world-space placement of an entity. Y grows upward; row 0
// of a level sits at the bottom of the playfield.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()

func (t *Transform) Position() common.Vec {
	return common.Vec{X: t.X, Y: t.Y}
}

func (t *Transform) SetPosition(p common.Vec) {
	t.X = p.X
	t.Y = p.Y
}
