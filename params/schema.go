package params

import (
	"fmt"
	"log"
	"sort"
)

// Schema is the ordered list of parameters an object kind exposes.
type Schema []Descriptor

func (s Schema) Lookup(name string) (Descriptor, bool) {
	for _, d := range s {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// WithDefaults returns a copy of s whose defaults are replaced by overrides.
// Overrides that fail validation are logged and ignored.
func (s Schema) WithDefaults(overrides map[string]string) Schema {
	out := make(Schema, len(s))
	copy(out, s)
	if len(overrides) == 0 {
		return out
	}
	for i, d := range out {
		raw, ok := overrides[d.Name]
		if !ok {
			continue
		}
		v, err := d.Normalize(raw)
		if err != nil {
			log.Printf("params: default override: %v", err)
			continue
		}
		out[i].Default = v
	}
	for name := range overrides {
		if _, ok := s.Lookup(name); !ok {
			log.Printf("params: default override %q is not a parameter", name)
		}
	}
	return out
}

const (
	KindStatic         = "static"
	KindDoor           = "door"
	KindHazard         = "hazard"
	KindBall           = "ball"
	KindEnemy          = "enemy"
	KindMover          = "mover"
	KindPressureSwitch = "pressure_switch"
	KindRigidRotator   = "rigid_rotator"
	KindSmoothRotator  = "smooth_rotator"
	KindSpring         = "spring"
	KindThrowable      = "throwable"
)

func scaleParam() Descriptor {
	return Descriptor{
		Name:        "scale",
		DisplayName: "Scale",
		Type:        TypeFloat,
		Default:     "1",
		Min:         bound(0.1),
		Tooltip:     "Uniform scale of the object.",
	}
}

var schemas = map[string]Schema{
	KindStatic: {},
	KindDoor: {
		{Name: "isOpen", DisplayName: "Open", Type: TypeBool, Default: "false", Tooltip: "Whether the door starts open."},
	},
	KindHazard: {scaleParam()},
	KindBall:   {scaleParam()},
	KindEnemy:  {scaleParam()},
	KindMover: {
		scaleParam(),
		{Name: "startPosition", DisplayName: "Start Position", Type: TypeVector2, Default: "0,0", Tooltip: "Position the mover returns to."},
		{Name: "returnSpeed", DisplayName: "Return Speed", Type: TypeFloat, Default: "5000", Min: bound(0), Tooltip: "Force used to move back to the start position."},
		{Name: "mass", DisplayName: "Mass", Type: TypeFloat, Default: "1", Min: bound(0.01), Tooltip: "Rigidbody mass."},
	},
	KindPressureSwitch: {
		{Name: "isActive", DisplayName: "Active", Type: TypeBool, Default: "false", Tooltip: "Whether the switch starts pressed."},
	},
	KindRigidRotator: {
		{Name: "rotationSpeed", DisplayName: "Rotation Speed", Type: TypeFloat, Default: "9000", Min: bound(0), Tooltip: "Torque applied while rotating."},
		{Name: "returnSpeed", DisplayName: "Return Speed", Type: TypeFloat, Default: "7000", Min: bound(0), Tooltip: "Torque applied when snapping back."},
		{Name: "reversed", DisplayName: "Reversed", Type: TypeBool, Default: "false", Tooltip: "Rotate counter clockwise."},
		{Name: "snapThreshold", DisplayName: "Snap Threshold", Type: TypeFloat, Default: "0.9", Min: bound(0.1), Max: bound(1.5), Tooltip: "Angular speed below which the rotator snaps to 90 degrees."},
	},
	KindSmoothRotator: {
		{Name: "rotationSpeed", DisplayName: "Rotation Speed", Type: TypeFloat, Default: "15", Min: bound(0), Tooltip: "Torque multiplier toward the pointer."},
		{Name: "returnSpeed", DisplayName: "Return Speed", Type: TypeFloat, Default: "10", Min: bound(0), Tooltip: "Torque multiplier toward the start angle."},
		{Name: "returnToStart", DisplayName: "Return To Start", Type: TypeBool, Default: "true", Tooltip: "Rotate back when released."},
		{Name: "closeEnough", DisplayName: "Close Enough", Type: TypeFloat, Default: "0.1", Min: bound(0), Tooltip: "Angle tolerance in degrees."},
		{Name: "decay", DisplayName: "Decay", Type: TypeFloat, Default: "0.9", Min: bound(0), Max: bound(1), Tooltip: "Angular velocity damping per step."},
	},
	KindSpring: {
		{Name: "normalBounceForce", DisplayName: "Bounce Force", Type: TypeFloat, Default: "300", Min: bound(0), Tooltip: "Impulse applied on contact."},
		{Name: "boostedBounceForce", DisplayName: "Boosted Force", Type: TypeFloat, Default: "600", Min: bound(0), Tooltip: "Impulse applied while boosted."},
		{Name: "boostDuration", DisplayName: "Boost Duration", Type: TypeFloat, Default: "0.5", Min: bound(0), Tooltip: "Seconds a boost lasts."},
	},
	KindThrowable: {
		{Name: "throwForceMultiplier", DisplayName: "Throw Force", Type: TypeFloat, Default: "500", Min: bound(0), Tooltip: "Multiplier applied to throws."},
	},
}

// SchemaFor returns the schema registered for kind.
func SchemaFor(kind string) (Schema, error) {
	s, ok := schemas[kind]
	if !ok {
		return nil, fmt.Errorf("params: unknown object kind %q", kind)
	}
	out := make(Schema, len(s))
	copy(out, s)
	return out, nil
}

// Kinds lists the registered object kinds in sorted order.
func Kinds() []string {
	out := make([]string, 0, len(schemas))
	for k := range schemas {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
