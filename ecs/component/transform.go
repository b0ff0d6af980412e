package component

// Transform places an object. X and Y are the world position of its centre,
// Rotation is in degrees.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
