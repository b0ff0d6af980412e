package component

import "image/color"

// Appearance carries the material an object is drawn with. The editor swaps
// it for highlight materials and restores it afterwards.
type Appearance struct {
	Material string
	Tint     color.RGBA
}

var AppearanceComponent = NewComponent[Appearance]()
