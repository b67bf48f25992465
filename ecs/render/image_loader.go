package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/portfolio3d/assets"
)

var ErrEmptyTextureKey = errors.New("render: empty texture key")

// LoadImage returns the texture for key, decoding and caching it on first use.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, ErrEmptyTextureKey
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	decoded, err := DecodeTexture(key)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(decoded)
	RegisterImage(key, img)
	return img, nil
}

// DecodeTexture prefers a file under assets/ on disk, so textures can be
// swapped without rebuilding, then falls back to the embedded copy.
func DecodeTexture(key string) (image.Image, error) {
	for _, p := range []string{filepath.Join("assets", key), key} {
		f, err := os.Open(p)
		if err != nil {
			continue
		}
		im, _, err := image.Decode(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("render: decode %s: %w", p, err)
		}
		return im, nil
	}
	im, err := assets.DecodeImage(key)
	if err != nil {
		return nil, fmt.Errorf("render: load texture %s: %w", key, err)
	}
	return im, nil
}
