package common

// Logical screen size of the viewer.
const (
	BaseWidth  = 960
	BaseHeight = 540
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
