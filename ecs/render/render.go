package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/marblemaze/common"
	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/ecs/component"
)

// The maze is 16 by 12 tiles of 64 world units.
const (
	WorldWidth  = 1024
	WorldHeight = 768
)

var background = color.NRGBA{R: 0x1b, G: 0x1d, B: 0x2a, A: 0xff}

type drawItem struct {
	e      ecs.Entity
	layer  int
	t      *component.Transform
	sprite *component.Sprite
}

// Renderer draws sprite entities. World y grows upward, so every position is
// flipped against WorldHeight on the way to the screen.
type Renderer struct {
	hud   *HUD
	items []drawItem
}

func NewRenderer() *Renderer {
	return &Renderer{hud: NewHUD()}
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(background)

	r.items = r.items[:0]
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		layer := 0
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer = l.Index
		}
		r.items = append(r.items, drawItem{e: e, layer: layer, t: t, sprite: s})
	})
	sort.SliceStable(r.items, func(i, j int) bool {
		if r.items[i].layer != r.items[j].layer {
			return r.items[i].layer < r.items[j].layer
		}
		return uint64(r.items[i].e) < uint64(r.items[j].e)
	})

	for _, it := range r.items {
		img := SpriteImage(it.sprite)

		sx := it.t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := it.t.ScaleY
		if sy == 0 {
			sy = 1
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-it.sprite.OriginX, -it.sprite.OriginY)
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(-it.t.Rotation)
		x, y := WorldToScreen(common.Vec{X: it.t.X, Y: it.t.Y})
		op.GeoM.Translate(x, y)
		op.Filter = ebiten.FilterLinear

		screen.DrawImage(img, op)
	}

	r.hud.Draw(w, screen)
}

func WorldToScreen(p common.Vec) (float64, float64) {
	return p.X, WorldHeight - p.Y
}

// ScreenToWorld maps logical screen pixels, as reported by ebiten's cursor
// and touch positions, back into world space.
func ScreenToWorld(x, y int) common.Vec {
	return common.Vec{X: float64(x), Y: WorldHeight - float64(y)}
}
