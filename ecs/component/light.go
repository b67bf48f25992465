package component

import "image/color"

type LightKind string

const (
	LightPoint   LightKind = "point"
	LightAmbient LightKind = "ambient"
)

// Light is positioned by the entity's Transform; ambient lights ignore it.
type Light struct {
	Kind      LightKind
	Color     color.NRGBA
	Intensity float64
}

var LightComponent = NewComponent[Light]()
