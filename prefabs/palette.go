package prefabs

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/PvttJebus/OhMyGord/params"
)

const PaletteFile = "palette.yaml"

// Palette is the validated, index-addressable set of templates and tiles.
type Palette struct {
	templates []TemplateSpec
	schemas   []params.Schema
	byName    map[string]int
	tiles     []TileSpec
	tileIndex map[string]int
}

// LoadPalette reads palette.yaml from disk, falling back to the embedded copy.
func LoadPalette() (*Palette, error) {
	spec, err := LoadSpec[PaletteSpec](PaletteFile)
	if err != nil {
		return nil, err
	}
	return NewPalette(spec)
}

// NewPalette validates spec and fills in defaults.
func NewPalette(spec PaletteSpec) (*Palette, error) {
	p := &Palette{
		byName:    make(map[string]int, len(spec.Templates)),
		tileIndex: make(map[string]int, len(spec.Tiles)),
	}
	for i, t := range spec.Templates {
		if t.Name == "" {
			return nil, fmt.Errorf("prefabs: template %d has no name", i)
		}
		if _, dup := p.byName[t.Name]; dup {
			return nil, fmt.Errorf("prefabs: duplicate template %q", t.Name)
		}
		if t.Kind == "" {
			t.Kind = params.KindStatic
		}
		schema, err := params.SchemaFor(t.Kind)
		if err != nil {
			return nil, fmt.Errorf("prefabs: template %q: %w", t.Name, err)
		}
		if t.Size.Width <= 0 {
			t.Size.Width = 1
		}
		if t.Size.Height <= 0 {
			t.Size.Height = 1
		}
		if t.Collider == nil {
			t.Collider = &ColliderSpec{Width: t.Size.Width, Height: t.Size.Height}
		}
		if t.Material == "" {
			t.Material = "default"
		}
		if t.Interactable && t.ToggleParam == "" && t.ToggleScript == "" {
			t.ToggleParam = defaultToggleParam(schema)
		}
		p.byName[t.Name] = i
		p.templates = append(p.templates, t)
		p.schemas = append(p.schemas, schema.WithDefaults(t.Params))
	}
	for i, tile := range spec.Tiles {
		if tile.Name == "" {
			return nil, fmt.Errorf("prefabs: tile %d has no name", i)
		}
		if _, dup := p.tileIndex[tile.Name]; dup {
			return nil, fmt.Errorf("prefabs: duplicate tile %q", tile.Name)
		}
		p.tileIndex[tile.Name] = i
		p.tiles = append(p.tiles, tile)
	}
	return p, nil
}

func defaultToggleParam(schema params.Schema) string {
	for _, name := range []string{"isOpen", "isActive"} {
		if d, ok := schema.Lookup(name); ok && d.Type == params.TypeBool {
			return name
		}
	}
	return ""
}

func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.templates)
}

// Template returns the template at index.
func (p *Palette) Template(index int) (TemplateSpec, bool) {
	if p == nil || index < 0 || index >= len(p.templates) {
		return TemplateSpec{}, false
	}
	return p.templates[index], true
}

// Schema returns the parameter schema of the template at index, with the
// template's default overrides applied.
func (p *Palette) Schema(index int) params.Schema {
	if p == nil || index < 0 || index >= len(p.schemas) {
		return nil
	}
	return p.schemas[index]
}

func (p *Palette) Templates() []TemplateSpec {
	if p == nil {
		return nil
	}
	out := make([]TemplateSpec, len(p.templates))
	copy(out, p.templates)
	return out
}

func (p *Palette) TemplateIndex(name string) (int, bool) {
	if p == nil {
		return 0, false
	}
	i, ok := p.byName[name]
	return i, ok
}

func (p *Palette) HasTile(name string) bool {
	if p == nil {
		return false
	}
	_, ok := p.tileIndex[name]
	return ok
}

// Tiles returns tile names in palette order.
func (p *Palette) Tiles() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.tiles))
	for _, t := range p.tiles {
		out = append(out, t.Name)
	}
	return out
}

// TileColor returns the swatch colour for a tile. Unknown tiles are magenta.
func (p *Palette) TileColor(name string) color.RGBA {
	if p == nil {
		return colornames.Magenta
	}
	i, ok := p.tileIndex[name]
	if !ok {
		return colornames.Magenta
	}
	return p.tiles[i].Color.RGBA8(colornames.Gray)
}

// TemplateColor returns the swatch colour for a template.
func (p *Palette) TemplateColor(index int) color.RGBA {
	t, ok := p.Template(index)
	if !ok {
		return colornames.Magenta
	}
	return t.Color.RGBA8(colornames.Steelblue)
}

// Describe renders a one line summary used by tooling.
func (t TemplateSpec) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) %gx%g", t.Name, t.Kind, t.Size.Width, t.Size.Height)
	if t.Interactable {
		b.WriteString(" interactable")
	}
	return b.String()
}
