package params

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PvttJebus/OhMyGord/grid"
)

var (
	ErrUnknownParameter = errors.New("params: unknown parameter")
	ErrInvalidValue     = errors.New("params: invalid value")
)

// Version is written into every exported parameter.
const Version = 1

type Type string

const (
	TypeFloat   Type = "float"
	TypeBool    Type = "bool"
	TypeInt     Type = "int"
	TypeString  Type = "string"
	TypeVector2 Type = "vector2"
	TypeEnum    Type = "enum"
)

// Parameter is the persisted form of a single editable value.
type Parameter struct {
	Name    string `json:"name"`
	Type    Type   `json:"type"`
	Value   string `json:"value"`
	Version int    `json:"version"`
}

// Descriptor declares an editable parameter and how its values are validated.
type Descriptor struct {
	Name        string
	DisplayName string
	Type        Type
	Default     string
	Min         *float64
	Max         *float64
	Options     []string
	Tooltip     string
}

// Label returns the display name, falling back to the parameter name.
func (d Descriptor) Label() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Name
}

// Normalize parses value according to the descriptor and returns its
// canonical string form. Numbers are clamped to Min and Max.
func (d Descriptor) Normalize(value string) (string, error) {
	value = strings.TrimSpace(value)
	switch d.Type {
	case TypeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("%w: %s=%q is not a float", ErrInvalidValue, d.Name, value)
		}
		return FormatFloat(d.clamp(f)), nil
	case TypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return "", fmt.Errorf("%w: %s=%q is not an int", ErrInvalidValue, d.Name, value)
		}
		return strconv.Itoa(int(d.clamp(float64(i)))), nil
	case TypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", fmt.Errorf("%w: %s=%q is not a bool", ErrInvalidValue, d.Name, value)
		}
		return strconv.FormatBool(b), nil
	case TypeVector2:
		v, err := ParseVector2(value)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrInvalidValue, d.Name, err)
		}
		return FormatVector2(v), nil
	case TypeEnum:
		for _, opt := range d.Options {
			if strings.EqualFold(opt, value) {
				return opt, nil
			}
		}
		return "", fmt.Errorf("%w: %s=%q not one of %v", ErrInvalidValue, d.Name, value, d.Options)
	case TypeString:
		return value, nil
	default:
		return "", fmt.Errorf("%w: %s has unsupported type %q", ErrInvalidValue, d.Name, d.Type)
	}
}

func (d Descriptor) clamp(v float64) float64 {
	if d.Min != nil && v < *d.Min {
		v = *d.Min
	}
	if d.Max != nil && v > *d.Max {
		v = *d.Max
	}
	return v
}

func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatVector2 renders v as "x,y".
func FormatVector2(v grid.Vec2) string {
	return FormatFloat(v.X) + "," + FormatFloat(v.Y)
}

// ParseVector2 reads an "x,y" pair.
func ParseVector2(s string) (grid.Vec2, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return grid.Vec2{}, fmt.Errorf("vector2 %q: expected x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return grid.Vec2{}, fmt.Errorf("vector2 %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return grid.Vec2{}, fmt.Errorf("vector2 %q: %w", s, err)
	}
	return grid.Vec2{X: x, Y: y}, nil
}

func bound(v float64) *float64 {
	return &v
}
