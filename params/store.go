package params

import (
	"fmt"
	"strconv"

	"github.com/PvttJebus/OhMyGord/grid"
)

// Store holds the current values of one object's parameters in schema order.
type Store struct {
	schema Schema
	values []string
}

// NewStore returns a store populated with the schema defaults.
func NewStore(schema Schema) *Store {
	s := &Store{schema: schema, values: make([]string, len(schema))}
	for i, d := range schema {
		s.values[i] = d.Default
	}
	return s
}

func (s *Store) index(name string) int {
	if s == nil {
		return -1
	}
	for i, d := range s.schema {
		if d.Name == name {
			return i
		}
	}
	return -1
}

func (s *Store) Schema() Schema {
	if s == nil {
		return nil
	}
	return s.schema
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.schema)
}

// Get returns the parameter named name.
func (s *Store) Get(name string) (Parameter, bool) {
	i := s.index(name)
	if i < 0 {
		return Parameter{}, false
	}
	d := s.schema[i]
	return Parameter{Name: d.Name, Type: d.Type, Value: s.values[i], Version: Version}, true
}

// Set validates value against the descriptor and stores its normalized form.
func (s *Store) Set(name, value string) error {
	i := s.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	v, err := s.schema[i].Normalize(value)
	if err != nil {
		return err
	}
	s.values[i] = v
	return nil
}

func (s *Store) String(name string) (string, bool) {
	p, ok := s.Get(name)
	return p.Value, ok
}

func (s *Store) Float(name string) (float64, bool) {
	p, ok := s.Get(name)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(p.Value, 64)
	return f, err == nil
}

func (s *Store) Int(name string) (int, bool) {
	p, ok := s.Get(name)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(p.Value)
	return i, err == nil
}

func (s *Store) Bool(name string) (bool, bool) {
	p, ok := s.Get(name)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(p.Value)
	return b, err == nil
}

func (s *Store) Vector2(name string) (grid.Vec2, bool) {
	p, ok := s.Get(name)
	if !ok {
		return grid.Vec2{}, false
	}
	v, err := ParseVector2(p.Value)
	return v, err == nil
}

func (s *Store) SetFloat(name string, v float64) error {
	return s.Set(name, FormatFloat(v))
}

func (s *Store) SetBool(name string, v bool) error {
	return s.Set(name, strconv.FormatBool(v))
}

func (s *Store) SetVector2(name string, v grid.Vec2) error {
	return s.Set(name, FormatVector2(v))
}

// Export returns a copy of every parameter in schema order.
func (s *Store) Export() []Parameter {
	if s == nil {
		return nil
	}
	out := make([]Parameter, 0, len(s.schema))
	for i, d := range s.schema {
		out = append(out, Parameter{Name: d.Name, Type: d.Type, Value: s.values[i], Version: Version})
	}
	return out
}

// Import applies a persisted parameter list. Entries that name an unknown
// parameter or carry an unparseable value leave the current value untouched
// and are reported in the returned errors.
func (s *Store) Import(list []Parameter) []error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, p := range list {
		if err := s.Set(p.Name, p.Value); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (s *Store) Clone() *Store {
	if s == nil {
		return nil
	}
	out := &Store{schema: s.schema, values: make([]string, len(s.values))}
	copy(out.values, s.values)
	return out
}

// Map returns the parameter values keyed by name.
func (s *Store) Map() map[string]string {
	if s == nil {
		return nil
	}
	m := make(map[string]string, len(s.schema))
	for i, d := range s.schema {
		m[d.Name] = s.values[i]
	}
	return m
}
