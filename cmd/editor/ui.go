package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/PvttJebus/OhMyGord/editor"
	"github.com/PvttJebus/OhMyGord/groups"
	"github.com/PvttJebus/OhMyGord/objects"
)

const (
	leftPanelWidth  = 200
	rightPanelWidth = 220
)

// editorUI is the widget tree around the canvas. Lists are refreshed from
// the editor every frame, but only rebuilt when their contents change.
type editorUI struct {
	ui    *ebitenui.UI
	ed    *editor.Editor
	theme *widget.Theme
	face  *text.Face

	toolGroup   *widget.RadioGroup
	toolButtons []*widget.Button
	syncing     bool
	brushLabel  *widget.Label
	snapBtn     *widget.Button
	playBtn     *widget.Button

	templateList *widget.List
	tileList     *widget.List

	groupList     *widget.List
	groupName     *widget.TextInput
	selectedGroup groups.ID
	hasGroup      bool

	levelList     *widget.List
	levelName     *widget.TextInput
	levelFilter   *widget.TextInput
	filter        string
	selectedLevel string
	levelsDirty   bool
	shownLevel    string

	paramTitle    *widget.Label
	paramList     *widget.List
	paramValue    *widget.TextInput
	paramTarget   objects.ID
	hasTarget     bool
	selectedParam string

	inputs     []*widget.TextInput
	signatures map[*widget.List]string

	// onLevelSelected is called with the level picked in the levels list.
	onLevelSelected func(name string)
}

func newEditorUI(ed *editor.Editor) *editorUI {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}

	u := &editorUI{
		ui:          &ebitenui.UI{},
		ed:          ed,
		face:        &fontFace,
		signatures:  make(map[*widget.List]string),
		levelsDirty: true,
	}
	u.theme = newEditorTheme(u.face)
	u.ui.PrimaryTheme = u.theme

	toolbar := u.buildToolBar()
	left := newColumn(leftPanelWidth)
	u.addPaletteSection(left)
	u.addGroupsSection(left)
	right := newColumn(rightPanelWidth)
	u.addLevelsSection(right)
	u.addParamsSection(right)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	left.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	right.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	toolbar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(left)
	root.AddChild(right)
	root.AddChild(toolbar)
	u.ui.Container = root

	u.refreshPalette()
	return u
}

// Typing reports whether a text field has keyboard focus.
func (u *editorUI) Typing() bool {
	for _, in := range u.inputs {
		if in.IsFocused() {
			return true
		}
	}
	return false
}

func (u *editorUI) trackInput(in *widget.TextInput) *widget.TextInput {
	u.inputs = append(u.inputs, in)
	return in
}

// setEntries replaces the entries of list when sig differs from the last
// call for that list.
func (u *editorUI) setEntries(list *widget.List, entries []any, sig string) {
	if u.signatures[list] == sig {
		return
	}
	u.signatures[list] = sig
	list.SetEntries(entries)
}

func setButtonLabel(b *widget.Button, label string) {
	if b == nil {
		return
	}
	if t := b.Text(); t != nil {
		t.Label = label
	}
}

// Refresh pulls editor state into the widgets. Call once per frame after
// the editor has been updated.
func (u *editorUI) Refresh() {
	u.refreshToolBar()
	u.refreshGroups()
	u.refreshLevels()
	u.refreshParams()
}

// report logs a failed UI command. Expected conditions are not logged.
func report(action string, err error) {
	if err == nil || errors.Is(err, editor.ErrEmptySelection) {
		return
	}
	log.Printf("%s: %v", action, err)
}

func signature(parts []string) string {
	return fmt.Sprint(len(parts), ":", strings.Join(parts, "\x00"))
}
