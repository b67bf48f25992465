package render

import (
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

var images = map[string]*ebiten.Image{}

// RegisterImage stores an image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
}

// GetImage returns a cached image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return images[key]
}

var (
	white   *ebiten.Image
	missing = map[string]bool{}
)

// White returns a 1x1 white image used as the source of untextured triangles.
func White() *ebiten.Image {
	if white == nil {
		white = ebiten.NewImage(1, 1)
		white.Fill(color.White)
	}
	return white
}

// Texture returns the image for key, or the white placeholder if it cannot be
// loaded. Each failing key is logged once.
func Texture(key string, logger *slog.Logger) *ebiten.Image {
	if key == "" {
		return White()
	}
	if missing[key] {
		return White()
	}
	img, err := LoadImage(key)
	if err != nil {
		missing[key] = true
		if logger != nil {
			logger.Warn("texture unavailable, using placeholder", "texture", key, "err", err)
		}
		return White()
	}
	return img
}
