package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
)

type templateEntry struct {
	Index int
	Label string
}

func (u *editorUI) addPaletteSection(parent *widget.Container) {
	parent.AddChild(newLabel(u.face, "Templates"))
	u.templateList = newEntryList(func(e any) string {
		if t, ok := e.(templateEntry); ok {
			return t.Label
		}
		return ""
	}, func(e any) {
		if t, ok := e.(templateEntry); ok {
			u.spawn(t.Index)
		}
	}, 160)
	parent.AddChild(u.templateList)
	parent.AddChild(newButton(u.theme, u.face, "Spawn Again", func() {
		if t, ok := u.templateList.SelectedEntry().(templateEntry); ok {
			u.spawn(t.Index)
		}
	}))

	parent.AddChild(newLabel(u.face, "Tiles"))
	u.tileList = newEntryList(func(e any) string {
		name, _ := e.(string)
		return name
	}, func(e any) {
		if name, ok := e.(string); ok {
			report("Select tile failed", u.ed.SetCurrentTile(name))
		}
	}, 120)
	parent.AddChild(u.tileList)
}

func (u *editorUI) spawn(index int) {
	if _, err := u.ed.SpawnTemplate(index); err != nil {
		report("Spawn failed", err)
	}
}

// refreshPalette rebuilds the template and tile lists, e.g. after the
// palette was reloaded from disk.
func (u *editorUI) refreshPalette() {
	p := u.ed.Palette()
	templates := p.Templates()
	entries := make([]any, 0, len(templates))
	labels := make([]string, 0, len(templates))
	for i, t := range templates {
		label := t.Name
		if t.Interactable {
			label = fmt.Sprintf("%s *", t.Name)
		}
		entries = append(entries, templateEntry{Index: i, Label: label})
		labels = append(labels, label)
	}
	u.setEntries(u.templateList, entries, signature(labels))

	tiles := p.Tiles()
	tileEntries := make([]any, 0, len(tiles))
	for _, name := range tiles {
		tileEntries = append(tileEntries, name)
	}
	u.setEntries(u.tileList, tileEntries, signature(tiles))
}
