package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/marblemaze/ecs/component"
)

var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// SpriteImage returns the image for s, drawing and caching it on first use.
func SpriteImage(s *component.Sprite) *ebiten.Image {
	key := imageKey{name: s.Key, width: int(math.Ceil(s.Width)), height: int(math.Ceil(s.Height))}
	if img := cachedImage(key); img != nil {
		return img
	}
	img := drawSprite(s)
	registerImage(key, img)
	return img
}

func drawSprite(s *component.Sprite) *ebiten.Image {
	w := int(math.Ceil(s.Width))
	h := int(math.Ceil(s.Height))
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	img := ebiten.NewImage(w, h)
	cx, cy := float32(w)/2, float32(h)/2
	r := float32(math.Min(float64(w), float64(h))) / 2

	switch s.Shape {
	case component.SpriteRect:
		img.Fill(s.Color)
		vector.StrokeRect(img, 1, 1, float32(w)-2, float32(h)-2, 2, s.Accent, false)
	case component.SpriteStar:
		drawStar(img, cx, cy, r, r*0.45, s.Color)
	case component.SpriteSwirl:
		vector.DrawFilledCircle(img, cx, cy, r, s.Color, true)
		drawSpiral(img, cx, cy, r*0.9, s.Accent)
	default:
		vector.DrawFilledCircle(img, cx, cy, r, s.Color, true)
		vector.StrokeCircle(img, cx, cy, r-1.5, 3, s.Accent, true)
	}
	return img
}

// drawStar fills a five pointed star as a pentagon plus five tip triangles.
func drawStar(dst *ebiten.Image, cx, cy, outer, inner float32, clr color.NRGBA) {
	const points = 5
	tip := func(i int, radius float32) (float32, float32) {
		a := -math.Pi/2 + float64(i)*math.Pi/points
		return cx + radius*float32(math.Cos(a)), cy + radius*float32(math.Sin(a))
	}

	var vs []ebiten.Vertex
	var is []uint16
	add := func(x, y float32) uint16 {
		vs = append(vs, vertex(x, y, clr))
		return uint16(len(vs) - 1)
	}

	center := add(cx, cy)
	var ring [points]uint16
	for i := 0; i < points; i++ {
		x, y := tip(2*i+1, inner)
		ring[i] = add(x, y)
	}
	for i := 0; i < points; i++ {
		is = append(is, center, ring[i], ring[(i+1)%points])
	}
	for i := 0; i < points; i++ {
		x, y := tip(2*i+2, outer)
		is = append(is, ring[i], add(x, y), ring[(i+1)%points])
	}

	dst.DrawTriangles(vs, is, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func drawSpiral(dst *ebiten.Image, cx, cy, r float32, clr color.NRGBA) {
	const (
		arms  = 3
		steps = 24
		turns = 0.75
	)
	for arm := 0; arm < arms; arm++ {
		base := float64(arm) * 2 * math.Pi / arms
		px, py := cx, cy
		for i := 1; i <= steps; i++ {
			f := float64(i) / steps
			a := base + f*turns*2*math.Pi
			x := cx + r*float32(f*math.Cos(a))
			y := cy + r*float32(f*math.Sin(a))
			vector.StrokeLine(dst, px, py, x, y, 3, clr, true)
			px, py = x, y
		}
	}
}

func vertex(x, y float32, clr color.NRGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(clr.R) / 255,
		ColorG: float32(clr.G) / 255,
		ColorB: float32(clr.B) / 255,
		ColorA: float32(clr.A) / 255,
	}
}
