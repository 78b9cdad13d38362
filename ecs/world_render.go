package ecs

import "github.com/hajimehoshi/ebiten/v2"

// Drawer is a system that also draws. Drawers only read component state;
// animation timing advances in Update, never in Draw.
type Drawer interface {
	System
	Draw(w *World, screen *ebiten.Image, camX, camY, zoom float64)
}

// Draw runs every Drawer in system order.
func (w *World) Draw(screen *ebiten.Image, camX, camY, zoom float64) {
	if w == nil || screen == nil {
		return
	}
	for _, d := range w.drawers() {
		d.Draw(w, screen, camX, camY, zoom)
	}
}

func (w *World) drawers() []Drawer {
	var out []Drawer
	for _, s := range w.systems {
		if d, ok := s.(Drawer); ok {
			out = append(out, d)
		}
	}
	return out
}
