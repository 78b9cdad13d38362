package component

import "errors"

var (
	ErrUnknownSequence       = errors.New("animation: unknown sequence")
	ErrUnsupportedLookupKind = errors.New("animation: frame source cannot resolve names")
	ErrUnknownFrame          = errors.New("animation: unknown frame")
	ErrFrameOutOfRange       = errors.New("animation: frame index out of range")
	ErrEmptyName             = errors.New("animation: empty sequence name")
	ErrEmptySource           = errors.New("animation: frame source has no frames")
)
