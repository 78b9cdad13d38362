package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	animation "github.com/milk9111/animsheet/component"
)

// Placement positions a frame on screen.
type Placement struct {
	X, Y       float64
	ScaleX     float64
	ScaleY     float64
	Rotation   float64
	OriginX    float64
	OriginY    float64
	FacingLeft bool
	// Zoom and camera offset are applied last.
	Zoom       float64
	CamX, CamY float64
}

// UprightSize returns the size of a frame once its packing rotation is undone.
func UprightSize(f animation.Frame) (float64, float64) {
	w, h := float64(f.Width), float64(f.Height)
	if f.Angle == 0 {
		return w, h
	}
	sin, cos := math.Sincos(f.Angle)
	sin, cos = math.Abs(sin), math.Abs(cos)
	return w*cos + h*sin, w*sin + h*cos
}

// FrameGeoM builds the transform that draws the frame's sub-image upright at
// the given placement.
func FrameGeoM(f animation.Frame, p Placement) ebiten.GeoM {
	var m ebiten.GeoM

	w, h := float64(f.Width), float64(f.Height)
	uw, uh := UprightSize(f)
	if f.Angle != 0 {
		m.Translate(-w/2, -h/2)
		m.Rotate(f.Angle)
		m.Translate(uw/2, uh/2)
	}

	m.Translate(-p.OriginX, -p.OriginY)

	sx := p.ScaleX
	if sx == 0 {
		sx = 1
	}
	sy := p.ScaleY
	if sy == 0 {
		sy = 1
	}
	if p.FacingLeft {
		sx = -sx
		m.Translate(-uw+2*p.OriginX, 0)
	}

	m.Scale(sx, sy)
	m.Rotate(p.Rotation)

	zoom := p.Zoom
	if zoom == 0 {
		zoom = 1
	}
	m.Scale(zoom, zoom)
	m.Translate((p.X-p.CamX)*zoom, (p.Y-p.CamY)*zoom)
	return m
}

// DrawFrame draws the frame region of sheet onto dst.
func DrawFrame(dst, sheet *ebiten.Image, f animation.Frame, p Placement) {
	if dst == nil || sheet == nil || f.Width <= 0 || f.Height <= 0 {
		return
	}
	sub, ok := sheet.SubImage(f.Rect()).(*ebiten.Image)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = FrameGeoM(f, p)
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(sub, op)
}
