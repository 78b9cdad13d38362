package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	animation "github.com/milk9111/animsheet/component"
	"github.com/milk9111/animsheet/ecs"
	"github.com/milk9111/animsheet/ecs/component"
	"github.com/milk9111/animsheet/ecs/render"
)

// RenderSystem draws every visible sprite in render layer order. It only
// reads the frame region the animation system left on the Sprite.
type RenderSystem struct {
	// Debug marks each sprite's origin.
	Debug bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(*ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	if r == nil || w == nil || screen == nil {
		return
	}

	var entities []ecs.Entity
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, _ *component.Transform, s *component.Sprite) {
		if s.Image != nil && !s.Hidden {
			entities = append(entities, e)
		}
	})
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layerOf(w, entities[i]), layerOf(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		f := SpriteFrame(s)
		p := render.Placement{
			X:          t.X,
			Y:          t.Y,
			ScaleX:     t.ScaleX,
			ScaleY:     t.ScaleY,
			Rotation:   t.Rotation,
			OriginX:    s.OriginX,
			OriginY:    s.OriginY,
			FacingLeft: s.FacingLeft,
			Zoom:       zoom,
			CamX:       camX,
			CamY:       camY,
		}
		render.DrawFrame(screen, s.Image, f, p)

		if r.Debug {
			z := zoom
			if z == 0 {
				z = 1
			}
			x := float32((t.X - camX) * z)
			y := float32((t.Y - camY) * z)
			red := color.RGBA{R: 255, A: 255}
			vector.StrokeLine(screen, x-4, y, x+4, y, 1, red, false)
			vector.StrokeLine(screen, x, y-4, x, y+4, 1, red, false)
		}
	}
}

// SpriteFrame describes the region a sprite currently shows. Sprites without
// a source region show their whole image.
func SpriteFrame(s *component.Sprite) animation.Frame {
	src := s.Source
	if src.Empty() && s.Image != nil {
		src = s.Image.Bounds()
	}
	return animation.Frame{
		Offset: src.Min,
		Width:  src.Dx(),
		Height: src.Dy(),
		Angle:  s.Angle,
	}
}

func layerOf(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}
