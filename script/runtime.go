// Package script runs the toggle behaviour of interactable objects. A
// template either names a tengo script that rewrites its parameters or a
// boolean parameter that is flipped directly.
package script

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/PvttJebus/OhMyGord/objects"
	"github.com/PvttJebus/OhMyGord/prefabs"
)

var ErrNotInteractable = errors.New("script: object is not interactable")

// Runtime caches compiled toggle scripts by name.
type Runtime struct {
	objects *objects.Registry
	load    func(name string) ([]byte, error)
	cache   map[string]*tengo.Compiled
}

func NewRuntime(reg *objects.Registry) *Runtime {
	return &Runtime{
		objects: reg,
		load:    prefabs.LoadScript,
		cache:   map[string]*tengo.Compiled{},
	}
}

// SetLoader replaces the script source lookup and drops the cache.
func (r *Runtime) SetLoader(load func(name string) ([]byte, error)) {
	r.load = load
	r.Reset()
}

// Reset drops every compiled script so the next toggle recompiles from
// source.
func (r *Runtime) Reset() {
	r.cache = map[string]*tengo.Compiled{}
}

// ToggleSelf runs the toggle behaviour of id.
func (r *Runtime) ToggleSelf(id objects.ID) error {
	if r == nil || r.objects == nil {
		return fmt.Errorf("%w: %v", ErrNotInteractable, id)
	}
	in, ok := r.objects.Interactable(id)
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotInteractable, id)
	}
	switch {
	case in.ToggleScript != "":
		return r.runScript(id, in.ToggleScript)
	case in.ToggleParam != "":
		v, ok := r.objects.Parameters(id).Bool(in.ToggleParam)
		if !ok {
			return fmt.Errorf("script: %v has no bool parameter %q", id, in.ToggleParam)
		}
		return r.objects.SetParameter(id, in.ToggleParam, fmt.Sprint(!v))
	default:
		return fmt.Errorf("%w: %v has no toggle", ErrNotInteractable, id)
	}
}

func (r *Runtime) compiled(name string) (*tengo.Compiled, error) {
	if c, ok := r.cache[name]; ok {
		return c, nil
	}
	src, err := r.load(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	s := tengo.NewScript(src)
	_ = s.Add("params", map[string]any{})
	_ = s.Add("kind", "")
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	c, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	r.cache[name] = c
	return c, nil
}

func (r *Runtime) runScript(id objects.ID, name string) error {
	c, err := r.compiled(name)
	if err != nil {
		return err
	}
	before := r.objects.Parameters(id).Map()
	in := make(map[string]any, len(before))
	for k, v := range before {
		in[k] = v
	}
	kind := ""
	if tpl, ok := r.objects.Template(id); ok {
		kind = tpl.Kind
	}
	if err := c.Set("params", in); err != nil {
		return fmt.Errorf("script: %s: %w", name, err)
	}
	if err := c.Set("kind", kind); err != nil {
		return fmt.Errorf("script: %s: %w", name, err)
	}
	if err := c.Run(); err != nil {
		return fmt.Errorf("script: run %s: %w", name, err)
	}

	out := c.Get("params").Map()
	keys := make([]string, 0, len(out))
	for k := range out {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		v := fmt.Sprint(out[k])
		if old, ok := before[k]; ok && old == v {
			continue
		}
		if err := r.objects.SetParameter(id, k, v); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		log.Printf("script: %s on %v: %v", name, id, errors.Join(errs...))
	}
	return errors.Join(errs...)
}
