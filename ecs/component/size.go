package component

// Size is the unscaled footprint of an object's sprite in world units.
type Size struct {
	Width  float64
	Height float64
}

var SizeComponent = NewComponent[Size]()
