package common

import "image/color"

var White = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
