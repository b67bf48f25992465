package component

import "github.com/go-gl/mathgl/mgl64"

// Spin advances an entity's rotation by Delta radians every frame.
type Spin struct {
	Delta mgl64.Vec3
}

var SpinComponent = NewComponent[Spin]()
