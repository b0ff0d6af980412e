package component

// Collider is the overlap box of an object, relative to its Transform centre
// and scaled with it.
type Collider struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

var ColliderComponent = NewComponent[Collider]()
