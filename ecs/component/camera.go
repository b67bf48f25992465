package component

// Camera is a perspective projection. FOV is the vertical field of view in
// degrees. The pose comes from the entity's Transform.
type Camera struct {
	FOV  float64
	Near float64
	Far  float64
}

var CameraComponent = NewComponent[Camera]()
