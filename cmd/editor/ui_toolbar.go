package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/PvttJebus/OhMyGord/editor"
)

var toolOrder = []editor.Tool{editor.ToolSelect, editor.ToolDraw, editor.ToolErase}

func (u *editorUI) buildToolBar() *widget.Container {
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 40),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 240, 255})),
	)

	for _, tool := range toolOrder {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(u.theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(tool.String(), u.face, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(56, 32),
			),
		)
		u.toolButtons = append(u.toolButtons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(u.toolButtons))
	for _, b := range u.toolButtons {
		elements = append(elements, b)
	}
	u.toolGroup = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if u.syncing {
				return
			}
			for idx, b := range u.toolButtons {
				if args.Active == b {
					u.ed.SelectTool(toolOrder[idx])
					return
				}
			}
		}),
	)

	u.brushLabel = widget.NewLabel(widget.LabelOpts.Text("Brush 1", u.face, &widget.LabelColor{Idle: color.Black}))
	toolbar.AddChild(newButton(u.theme, u.face, "-", u.ed.ShrinkBrush))
	toolbar.AddChild(u.brushLabel)
	toolbar.AddChild(newButton(u.theme, u.face, "+", u.ed.GrowBrush))

	u.snapBtn = newButton(u.theme, u.face, "Snap On", func() {
		u.ed.SetSnapping(!u.ed.Snapping())
	})
	toolbar.AddChild(u.snapBtn)

	toolbar.AddChild(newButton(u.theme, u.face, "Undo", func() {
		_, err := u.ed.Undo()
		report("Undo failed", err)
	}))
	toolbar.AddChild(newButton(u.theme, u.face, "Redo", func() {
		_, err := u.ed.Redo()
		report("Redo failed", err)
	}))
	toolbar.AddChild(newButton(u.theme, u.face, "Copy", func() {
		report("Copy failed", u.ed.CopyToClipboard())
	}))
	toolbar.AddChild(newButton(u.theme, u.face, "Paste", func() {
		report("Paste failed", u.ed.PasteFromClipboard())
	}))
	toolbar.AddChild(newButton(u.theme, u.face, "Delete", func() {
		report("Delete failed", u.ed.DeleteSelection())
	}))

	u.playBtn = newButton(u.theme, u.face, "Play", u.ed.ToggleMode)
	toolbar.AddChild(u.playBtn)
	return toolbar
}

func (u *editorUI) refreshToolBar() {
	tool := u.ed.Tool()
	for idx, t := range toolOrder {
		if t == tool && u.toolGroup.Active() != u.toolButtons[idx] {
			u.syncing = true
			u.toolGroup.SetActive(u.toolButtons[idx])
			u.syncing = false
		}
	}

	u.brushLabel.Label = fmt.Sprintf("Brush %d", u.ed.BrushSize())
	if u.ed.Snapping() {
		setButtonLabel(u.snapBtn, "Snap On")
	} else {
		setButtonLabel(u.snapBtn, "Snap Off")
	}
	if u.ed.Mode() == editor.ModePlay {
		setButtonLabel(u.playBtn, "Edit")
	} else {
		setButtonLabel(u.playBtn, "Play")
	}
}
