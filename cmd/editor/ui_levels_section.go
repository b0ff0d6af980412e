package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/PvttJebus/OhMyGord/levels"
)

func (u *editorUI) addLevelsSection(parent *widget.Container) {
	parent.AddChild(newLabel(u.face, "Level"))
	u.levelName = u.trackInput(newTextInput(u.face, func(name string) {
		u.save(name)
	}))
	parent.AddChild(u.levelName)

	row := newRow(4)
	row.AddChild(newButton(u.theme, u.face, "Save", func() {
		u.save(u.levelName.GetText())
	}))
	row.AddChild(newButton(u.theme, u.face, "Save New", func() {
		name, err := u.ed.SaveAsNew()
		if err != nil {
			report("Save failed", err)
			return
		}
		log.Printf("Saved level %s", name)
		u.levelsDirty = true
	}))
	row.AddChild(newButton(u.theme, u.face, "New", func() {
		u.ed.NewLevel()
	}))
	parent.AddChild(row)

	row = newRow(4)
	row.AddChild(newButton(u.theme, u.face, "Next", func() {
		name, err := u.ed.NextLevel()
		if err != nil {
			report("Next level failed", err)
			return
		}
		log.Printf("Loaded level %s", name)
	}))
	row.AddChild(newButton(u.theme, u.face, "Delete", func() {
		if u.selectedLevel == "" {
			return
		}
		report("Delete level failed", u.ed.DeleteLevel(u.selectedLevel))
		u.selectedLevel = ""
		u.levelsDirty = true
	}))
	parent.AddChild(row)

	parent.AddChild(newLabel(u.face, "Find"))
	u.levelFilter = u.trackInput(newTextInput(u.face, func(filter string) {
		u.filter = strings.TrimSpace(filter)
		u.levelsDirty = true
	}))
	parent.AddChild(u.levelFilter)

	u.levelList = newEntryList(func(e any) string {
		entry, ok := e.(levels.Entry)
		if !ok {
			return ""
		}
		if entry.Timestamp == 0 {
			return entry.Name
		}
		return fmt.Sprintf("%s  %s", entry.Name, time.Unix(entry.Timestamp, 0).Format("01-02 15:04"))
	}, func(e any) {
		entry, ok := e.(levels.Entry)
		if !ok {
			return
		}
		u.selectedLevel = entry.Name
		if err := u.ed.Load(entry.Name); err != nil {
			report("Load failed", err)
			return
		}
		if u.onLevelSelected != nil {
			u.onLevelSelected(entry.Name)
		}
	}, 140)
	parent.AddChild(u.levelList)
}

func (u *editorUI) save(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = u.ed.LevelName()
	}
	var err error
	if name == "" {
		name, err = u.ed.SaveAsNew()
	} else {
		err = u.ed.Save(name)
	}
	if err != nil {
		report("Save failed", err)
		return
	}
	log.Printf("Saved level %s", name)
	u.levelsDirty = true
}

// MarkLevelsDirty schedules a reload of the levels list.
func (u *editorUI) MarkLevelsDirty() {
	u.levelsDirty = true
}

func (u *editorUI) refreshLevels() {
	if current := u.ed.LevelName(); current != u.shownLevel {
		u.shownLevel = current
		u.levelName.SetText(current)
	}
	if !u.levelsDirty {
		return
	}
	u.levelsDirty = false

	entries, err := u.ed.Levels()
	if err != nil {
		report("List levels failed", err)
		return
	}
	if u.filter != "" {
		entries = levels.Find(entries, u.filter)
	}
	items := make([]any, 0, len(entries))
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		items = append(items, e)
		parts = append(parts, fmt.Sprint(e.Name, e.Timestamp))
	}
	u.setEntries(u.levelList, items, signature(parts))
}
