package component

import "github.com/go-gl/mathgl/mgl64"

// Script attaches a tengo behaviour script. Base is the entity's spawn
// position, exposed to the script as base_x, base_y, base_z.
type Script struct {
	Path string
	Base mgl64.Vec3
}

var ScriptComponent = NewComponent[Script]()
