package editor

import (
	"bytes"
	"fmt"
	"image"
	"log"

	"github.com/PvttJebus/OhMyGord/levels"
)

// Save writes the level under name together with a preview image.
func (e *Editor) Save(name string) error {
	name, err := levels.CleanName(name)
	if err != nil {
		return err
	}
	e.settleInPlace()
	doc := levels.Capture(e.World())
	doc.Name = name
	doc.Timestamp = e.now().Unix()

	preview, err := levels.PreviewBytes(doc, e.grid, e.palette, e.cfg.Preview.Size, e.cfg.Preview.Format)
	if err != nil {
		log.Printf("editor: preview for %s: %v", name, err)
		preview = nil
	}
	if err := e.store.Save(name, doc, preview); err != nil {
		return fmt.Errorf("editor: save %s: %w", name, err)
	}
	e.levelName = name
	return nil
}

// SaveAsNew saves under the first unused L<n> name and returns it.
func (e *Editor) SaveAsNew() (string, error) {
	name, err := levels.NextName(e.store)
	if err != nil {
		return "", err
	}
	if err := e.Save(name); err != nil {
		return "", err
	}
	return name, nil
}

// Load replaces the current level. History and selection are reset.
func (e *Editor) Load(name string) error {
	doc, err := e.store.Load(name)
	if err != nil {
		return fmt.Errorf("editor: load %s: %w", name, err)
	}
	e.SetMode(ModeEdit)
	e.machine.ChangeState(StateIdle)
	e.clearSelection()
	report := levels.Apply(e.World(), doc)
	log.Printf("editor: loaded %s: %d tiles, %d objects, %d groups (skipped %d tiles, %d objects)",
		doc.Name, report.Tiles, report.Objects, report.Groups, report.SkippedTiles, report.SkippedObjects)
	e.highlighter.Forget()
	e.history.Clear()
	e.activeGroup = 0
	e.levelName = doc.Name
	if e.levelName == "" {
		e.levelName, _ = levels.CleanName(name)
	}
	e.machine.ChangeState(StateSelecting)
	return nil
}

// NewLevel clears everything and forgets the level name.
func (e *Editor) NewLevel() {
	e.SetMode(ModeEdit)
	e.machine.ChangeState(StateIdle)
	e.clearSelection()
	levels.Apply(e.World(), &levels.Document{})
	e.highlighter.Forget()
	e.history.Clear()
	e.activeGroup = 0
	e.levelName = ""
	e.machine.ChangeState(StateSelecting)
}

// NextLevel loads the saved level after the current one.
func (e *Editor) NextLevel() (string, error) {
	name, err := levels.Next(e.store, e.levelName)
	if err != nil {
		return "", err
	}
	return name, e.Load(name)
}

func (e *Editor) DeleteLevel(name string) error {
	if err := e.store.Delete(name); err != nil {
		return fmt.Errorf("editor: delete %s: %w", name, err)
	}
	if clean, _ := levels.CleanName(name); clean == e.levelName {
		e.levelName = ""
	}
	return nil
}

// Levels lists saved levels, oldest first.
func (e *Editor) Levels() ([]levels.Entry, error) {
	return e.store.List()
}

// LevelPreview decodes the preview image stored with a saved level.
func (e *Editor) LevelPreview(name string) (image.Image, error) {
	data, err := e.store.Preview(name)
	if err != nil {
		return nil, err
	}
	return levels.DecodePreview(bytes.NewReader(data), e.cfg.Preview.Format)
}

// settleInPlace commits an interaction in flight without leaving the
// current tool.
func (e *Editor) settleInPlace() {
	switch e.machine.Current() {
	case StateDraggingSelected, StateStickySpawning:
		e.machine.ChangeState(e.settle())
	}
}
