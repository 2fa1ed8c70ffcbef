package vlass

import "math"

var nan = math.NaN()

// grayScale maps v linearly from [lo, hi] onto [0, 65535], clamping outside.
func grayScale(v, lo, hi float64) uint16 {
	if hi <= lo {
		return 0
	}
	g := (v - lo) / (hi - lo)
	if g < 0 {
		g = 0
	}
	if g > 1 {
		g = 1
	}
	return uint16(g*65535.0 + 0.5)
}
