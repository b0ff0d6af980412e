package levels

import (
	"errors"
	"log"

	"github.com/PvttJebus/OhMyGord/ecs/component"
	"github.com/PvttJebus/OhMyGord/grid"
	"github.com/PvttJebus/OhMyGord/groups"
	"github.com/PvttJebus/OhMyGord/objects"
	"github.com/PvttJebus/OhMyGord/tilemap"
)

// TileChecker reports whether a tile name exists in the palette.
type TileChecker interface {
	HasTile(name string) bool
}

// World is the editable state a Document is captured from and applied to.
// Groups and Palette may be nil.
type World struct {
	Tiles   *tilemap.Layer
	Objects *objects.Registry
	Groups  *groups.Registry
	Palette TileChecker
}

// Report counts what an Apply restored and what it had to skip.
type Report struct {
	Tiles           int
	Objects         int
	Groups          int
	SkippedTiles    int
	SkippedObjects  int
	ParameterErrors int
}

// Capture snapshots w. Tiles are written row by row and objects in spawn
// order. Objects whose template is no longer in the palette are skipped.
func Capture(w World) *Document {
	doc := &Document{Tiles: []TileRecord{}, Objects: []ObjectRecord{}}
	for _, c := range w.Tiles.Cells() {
		name, _ := w.Tiles.GetTile(c)
		doc.Tiles = append(doc.Tiles, TileRecord{Position: Vec3Int{X: c.X, Y: c.Y}, TileName: name})
	}

	index := make(map[objects.ID]int)
	for _, id := range w.Objects.IDs() {
		rec, ok := captureObject(w.Objects, id)
		if !ok {
			continue
		}
		index[id] = len(doc.Objects)
		doc.Objects = append(doc.Objects, rec)
	}

	if w.Groups != nil {
		for _, g := range w.Groups.All() {
			gr := GroupRecord{Name: g.Name, Members: []int{}}
			for _, m := range g.Members {
				if i, ok := index[m]; ok {
					gr.Members = append(gr.Members, i)
				}
			}
			doc.Groups = append(doc.Groups, gr)
		}
	}
	return doc
}

// CaptureSelection snapshots only the given cells and objects. Groups are
// not included.
func CaptureSelection(w World, cells []grid.Cell, ids []objects.ID) *Document {
	doc := &Document{Tiles: []TileRecord{}, Objects: []ObjectRecord{}}
	for _, c := range cells {
		name, ok := w.Tiles.GetTile(c)
		if !ok {
			continue
		}
		doc.Tiles = append(doc.Tiles, TileRecord{Position: Vec3Int{X: c.X, Y: c.Y}, TileName: name})
	}
	for _, id := range ids {
		if rec, ok := captureObject(w.Objects, id); ok {
			doc.Objects = append(doc.Objects, rec)
		}
	}
	return doc
}

func captureObject(reg *objects.Registry, id objects.ID) (ObjectRecord, bool) {
	tpl, ok := reg.Template(id)
	if !ok {
		return ObjectRecord{}, false
	}
	if reg.Templates() == nil {
		return ObjectRecord{}, false
	}
	if _, ok := reg.Templates().Template(tpl.Index); !ok {
		log.Printf("levels: object %v uses unknown template %d, skipping", id, tpl.Index)
		return ObjectRecord{}, false
	}
	t, _ := reg.Transform(id)
	size, _ := reg.Size(id)
	return ObjectRecord{
		PrefabIndex: tpl.Index,
		Position:    Vec3{X: t.X, Y: t.Y},
		Rotation:    t.Rotation,
		Size:        Vec2{X: size.Width, Y: size.Height},
		Scale:       Vec2{X: t.ScaleX, Y: t.ScaleY},
		Parameters:  reg.ExportParameters(id),
	}, true
}

// Apply replaces the contents of w with doc. Unknown tiles and templates
// are logged and skipped; bad parameter values keep their defaults.
func Apply(w World, doc *Document) Report {
	w.Tiles.Clear()
	w.Objects.Clear()
	if w.Groups != nil {
		w.Groups.Clear()
	}
	report, _, _ := Merge(w, doc, grid.Cell{}, grid.Vec2{})
	return report
}

// Merge adds doc to w without clearing it. Tiles are shifted by cellOffset
// and objects by worldOffset. It returns the cells painted and the objects
// spawned.
func Merge(w World, doc *Document, cellOffset grid.Cell, worldOffset grid.Vec2) (Report, []grid.Cell, []objects.ID) {
	var report Report
	if doc == nil {
		return report, nil, nil
	}

	var cells []grid.Cell
	for _, t := range doc.Tiles {
		if w.Palette != nil && !w.Palette.HasTile(t.TileName) {
			log.Printf("levels: unknown tile %q at %d,%d, skipping", t.TileName, t.Position.X, t.Position.Y)
			report.SkippedTiles++
			continue
		}
		c := grid.Cell{X: t.Position.X, Y: t.Position.Y}.Add(cellOffset)
		w.Tiles.SetTile(c, t.TileName)
		cells = append(cells, c)
		report.Tiles++
	}

	spawned := make([]objects.ID, len(doc.Objects))
	var ids []objects.ID
	for i, rec := range doc.Objects {
		pos := grid.Vec2{X: rec.Position.X, Y: rec.Position.Y}.Add(worldOffset)
		id, err := w.Objects.Spawn(rec.PrefabIndex, pos)
		if err != nil {
			log.Printf("levels: invalid prefab index %d, skipping: %v", rec.PrefabIndex, err)
			report.SkippedObjects++
			continue
		}
		restoreObject(w.Objects, id, rec, &report)
		spawned[i] = id
		ids = append(ids, id)
		report.Objects++
	}

	if w.Groups != nil {
		for _, g := range doc.Groups {
			gid := w.Groups.Create(g.Name)
			for _, m := range g.Members {
				if m < 0 || m >= len(spawned) || !spawned[m].Valid() {
					continue
				}
				_ = w.Groups.AddMember(gid, spawned[m])
			}
			report.Groups++
		}
	}
	return report, cells, ids
}

func restoreObject(reg *objects.Registry, id objects.ID, rec ObjectRecord, report *Report) {
	t, _ := reg.Transform(id)
	t.Rotation = rec.Rotation
	if rec.Scale.X != 0 {
		t.ScaleX = rec.Scale.X
	}
	if rec.Scale.Y != 0 {
		t.ScaleY = rec.Scale.Y
	}
	_ = reg.SetTransform(id, t)
	if rec.Size.X > 0 && rec.Size.Y > 0 {
		_ = reg.SetSize(id, component.Size{Width: rec.Size.X, Height: rec.Size.Y})
	}
	if errs := reg.ImportParameters(id, rec.Parameters); len(errs) > 0 {
		report.ParameterErrors += len(errs)
		log.Printf("levels: object %v parameters: %v", id, errors.Join(errs...))
	}
}

// Origin returns the smallest cell referenced by doc, used to anchor pastes.
func (doc *Document) Origin(g grid.Grid) (grid.Cell, bool) {
	found := false
	var min grid.Cell
	consider := func(c grid.Cell) {
		if !found {
			min, found = c, true
			return
		}
		if c.X < min.X {
			min.X = c.X
		}
		if c.Y < min.Y {
			min.Y = c.Y
		}
	}
	for _, t := range doc.Tiles {
		consider(grid.Cell{X: t.Position.X, Y: t.Position.Y})
	}
	for _, o := range doc.Objects {
		consider(g.WorldToCell(grid.Vec2{X: o.Position.X, Y: o.Position.Y}))
	}
	return min, found
}
