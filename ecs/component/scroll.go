package component

import "github.com/go-gl/mathgl/mgl64"

// ScrollSpin advances an entity's rotation by Delta once per scroll event.
type ScrollSpin struct {
	Delta mgl64.Vec3
}

var ScrollSpinComponent = NewComponent[ScrollSpin]()

// ScrollDrift moves an entity along X by Factor times the scroll delta.
type ScrollDrift struct {
	Factor float64
}

var ScrollDriftComponent = NewComponent[ScrollDrift]()
