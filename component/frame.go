package component

import "image"

// Frame describes the sub-region of a texture used to draw one animation step.
type Frame struct {
	Name   string
	Offset image.Point
	Width  int
	Height int
	// Angle is the rotation in radians needed to draw the region upright.
	// Packed atlases store rotated regions at -pi/2.
	Angle float64
}

// Rect returns the frame region in sheet coordinates.
func (f Frame) Rect() image.Rectangle {
	return image.Rect(f.Offset.X, f.Offset.Y, f.Offset.X+f.Width, f.Offset.Y+f.Height)
}

// FrameSource resolves frames by ordinal position.
type FrameSource interface {
	Len() int
	FrameAt(i int) (Frame, error)
}

// NamedFrameSource is a FrameSource that can also resolve frames by name.
// Plain fixed-grid spritesheets do not implement it.
type NamedFrameSource interface {
	FrameSource
	FrameByName(name string) (Frame, error)
}

// FrameRef points at a frame by ordinal or by name, with an optional
// per-frame delay that overrides the sequence duration.
type FrameRef struct {
	Index   int
	Name    string
	DelayMs float64
	named   bool
}

// FrameIndex references a frame by ordinal.
func FrameIndex(i int) FrameRef {
	return FrameRef{Index: i}
}

// FrameName references a frame by name.
func FrameName(name string) FrameRef {
	return FrameRef{Name: name, named: true}
}

// Named reports whether the ref resolves by name.
func (r FrameRef) Named() bool { return r.named }

// WithDelay returns a copy of r displayed for ms milliseconds.
func (r FrameRef) WithDelay(ms float64) FrameRef {
	r.DelayMs = ms
	return r
}

// Frames builds ordinal refs.
func Frames(indices ...int) []FrameRef {
	refs := make([]FrameRef, 0, len(indices))
	for _, i := range indices {
		refs = append(refs, FrameIndex(i))
	}
	return refs
}

// FrameNames builds name refs.
func FrameNames(names ...string) []FrameRef {
	refs := make([]FrameRef, 0, len(names))
	for _, n := range names {
		refs = append(refs, FrameName(n))
	}
	return refs
}
