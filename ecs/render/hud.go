package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/ecs/component"
	"golang.org/x/image/font/basicfont"
)

const hudPadding = 8

// HUD prints the scoreboard in the top left corner.
type HUD struct {
	face text.Face
}

func NewHUD() *HUD {
	return &HUD{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) Draw(w *ecs.World, screen *ebiten.Image) {
	e, ok := ecs.First(w, component.ScoreboardComponent.Kind())
	if !ok {
		return
	}
	board, ok := ecs.Get(w, e, component.ScoreboardComponent.Kind())
	if !ok || board.RenderedText == "" {
		return
	}

	tw, th := text.Measure(board.RenderedText, h.face, 0)
	vector.DrawFilledRect(screen, 0, 0, float32(tw+2*hudPadding), float32(th+2*hudPadding), color.NRGBA{A: 0xa0}, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(hudPadding, hudPadding)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, board.RenderedText, h.face, op)
}
