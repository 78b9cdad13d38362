package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is the drawable side of an animated entity. The animation system
// copies the current frame region into Source and Angle.
type Sprite struct {
	Image      *ebiten.Image
	Source     image.Rectangle
	Angle      float64
	OriginX    float64
	OriginY    float64
	FacingLeft bool
	Hidden     bool
}

var SpriteComponent = NewComponent[Sprite]()
