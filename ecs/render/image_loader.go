package render

import (
	"fmt"
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/animsheet/assets"
)

// LoadImage loads a sheet image and caches it by key.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	src, err := DecodeImage(key)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(src)
	RegisterImage(key, img)
	return img, nil
}

// DecodeImage decodes a sheet image without uploading it, which is enough
// to size a grid. Paths outside assets/ are read as given.
func DecodeImage(path string) (image.Image, error) {
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		if im, _, err := image.Decode(f); err == nil {
			return im, nil
		}
	}
	im, err := assets.DecodeImage(path)
	if err != nil {
		return nil, fmt.Errorf("render: load image %s: %w", path, err)
	}
	return im, nil
}
