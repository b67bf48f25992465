package component

import "image/color"

type Material struct {
	Color     color.NRGBA
	Texture   string
	NormalMap string
	// Opacity in [0, 1]. Zero is treated as opaque.
	Opacity  float64
	Additive bool
	// Unlit materials ignore lights, like a basic material.
	Unlit bool
}

// Alpha returns the effective opacity.
func (m Material) Alpha() float64 {
	if m.Opacity <= 0 || m.Opacity > 1 {
		return 1
	}
	return m.Opacity
}

var MaterialComponent = NewComponent[Material]()
