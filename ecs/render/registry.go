package render

import "github.com/hajimehoshi/ebiten/v2"

// imageKey separates sprites that share a prefab key but were resized.
type imageKey struct {
	name   string
	width  int
	height int
}

var images = map[imageKey]*ebiten.Image{}

func registerImage(key imageKey, img *ebiten.Image) {
	if key.name == "" || img == nil {
		return
	}
	images[key] = img
}

func cachedImage(key imageKey) *ebiten.Image {
	if key.name == "" {
		return nil
	}
	return images[key]
}

// ForgetImages drops every cached sprite image so they are rebuilt from the
// current prefabs on the next draw.
func ForgetImages() {
	for key, img := range images {
		img.Deallocate()
		delete(images, key)
	}
}
