package component

// Geometry names the primitive a Mesh describes.
type Geometry string

const (
	GeometrySphere    Geometry = "sphere"
	GeometryBox       Geometry = "box"
	GeometryTorus     Geometry = "torus"
	GeometryTorusKnot Geometry = "torus_knot"
)

// Mesh is a geometry descriptor. Which fields matter depends on Geometry:
// spheres use Radius, boxes use Size, tori use Radius and Tube, knots also
// use P and Q.
type Mesh struct {
	Geometry Geometry
	Radius   float64
	Tube     float64
	Size     [3]float64
	P, Q     int

	// Tessellation. Zero picks a default per geometry.
	Segments int
	Rings    int
}

var MeshComponent = NewComponent[Mesh]()
