package component

// Editing marks an object that is being moved by the editor. Gameplay
// behaviour should treat it as inert.
type Editing struct{}

var EditingComponent = NewComponent[Editing]()

// Interactable marks an object that can be toggled and grouped.
type Interactable struct {
	ToggleParam  string
	ToggleScript string
}

var InteractableComponent = NewComponent[Interactable]()
