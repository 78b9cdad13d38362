// Package atlas provides frame sources for animation sheets: fixed-grid
// spritesheets and packed texture atlases.
package atlas

import (
	"fmt"
	"image"

	"github.com/milk9111/animsheet/component"
)

// GridOptions tunes how a spritesheet is sliced.
type GridOptions struct {
	// Margin is the border around the whole sheet, in pixels.
	Margin int
	// Spacing is the gap between adjacent frames, in pixels.
	Spacing int
	// Count caps the number of frames read (0 reads the whole sheet).
	Count int
}

// Grid is a fixed-grid spritesheet. Frames are laid out left-to-right,
// top-to-bottom and can only be addressed by ordinal.
type Grid struct {
	bounds image.Rectangle
	frameW int
	frameH int
	cols   int
	count  int
	opts   GridOptions
}

// NewGrid slices bounds (usually the sheet image bounds) into frameW x frameH
// cells.
func NewGrid(bounds image.Rectangle, frameW, frameH int, opts GridOptions) (*Grid, error) {
	if frameW <= 0 || frameH <= 0 {
		return nil, fmt.Errorf("atlas: invalid frame size %dx%d", frameW, frameH)
	}
	if opts.Margin < 0 || opts.Spacing < 0 {
		return nil, fmt.Errorf("atlas: negative margin %d or spacing %d", opts.Margin, opts.Spacing)
	}
	innerW := bounds.Dx() - 2*opts.Margin
	innerH := bounds.Dy() - 2*opts.Margin
	if innerW < frameW || innerH < frameH {
		return nil, fmt.Errorf("atlas: sheet %v too small for %dx%d frames", bounds, frameW, frameH)
	}
	// the last cell in a row or column has no trailing gap
	cols := (innerW + opts.Spacing) / (frameW + opts.Spacing)
	rows := (innerH + opts.Spacing) / (frameH + opts.Spacing)
	maxFrames := cols * rows
	count := opts.Count
	if count <= 0 || count > maxFrames {
		count = maxFrames
	}
	return &Grid{
		bounds: bounds,
		frameW: frameW,
		frameH: frameH,
		cols:   cols,
		count:  count,
		opts:   opts,
	}, nil
}

// Len returns the number of frames in the grid.
func (g *Grid) Len() int { return g.count }

// Cols returns the number of columns per row.
func (g *Grid) Cols() int { return g.cols }

// FrameAt returns the cell at ordinal i.
func (g *Grid) FrameAt(i int) (component.Frame, error) {
	if i < 0 || i >= g.count {
		return component.Frame{}, fmt.Errorf("atlas: grid frame %d of %d: %w", i, g.count, component.ErrFrameOutOfRange)
	}
	col := i % g.cols
	row := i / g.cols
	x := g.bounds.Min.X + g.opts.Margin + col*(g.frameW+g.opts.Spacing)
	y := g.bounds.Min.Y + g.opts.Margin + row*(g.frameH+g.opts.Spacing)
	return component.Frame{
		Offset: image.Pt(x, y),
		Width:  g.frameW,
		Height: g.frameH,
	}, nil
}
