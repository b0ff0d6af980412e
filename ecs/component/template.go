package component

// Template records which palette entry an object was spawned from.
// Seq increases with every spawn and gives the registry a stable order.
type Template struct {
	Index int
	Name  string
	Kind  string
	Seq   uint64
}

var TemplateComponent = NewComponent[Template]()
