package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/PvttJebus/OhMyGord/objects"
)

type paramEntry struct {
	Name  string
	Label string
	Value string
}

func (u *editorUI) addParamsSection(parent *widget.Container) {
	u.paramTitle = newLabel(u.face, "Parameters")
	parent.AddChild(u.paramTitle)

	u.paramList = newEntryList(func(e any) string {
		if p, ok := e.(paramEntry); ok {
			return fmt.Sprintf("%s = %s", p.Label, p.Value)
		}
		return ""
	}, func(e any) {
		if p, ok := e.(paramEntry); ok {
			u.selectedParam = p.Name
			u.paramValue.SetText(p.Value)
		}
	}, 140)
	parent.AddChild(u.paramList)

	u.paramValue = u.trackInput(newTextInput(u.face, u.applyParam))
	parent.AddChild(u.paramValue)
	parent.AddChild(newButton(u.theme, u.face, "Apply", func() {
		u.applyParam(u.paramValue.GetText())
	}))
}

func (u *editorUI) applyParam(value string) {
	if !u.hasTarget || u.selectedParam == "" {
		return
	}
	report("Set parameter failed", u.ed.SetParameter(u.paramTarget, u.selectedParam, value))
}

// paramsTarget is the single object whose parameters the panel shows.
func (u *editorUI) paramsTarget() (objects.ID, bool) {
	if id, ok := u.ed.Sticky(); ok {
		return id, true
	}
	sel := u.ed.Selection()
	cells, objs := sel.Counts()
	if cells != 0 || objs != 1 {
		return 0, false
	}
	return sel.Objects()[0], true
}

func (u *editorUI) refreshParams() {
	id, ok := u.paramsTarget()
	if ok != u.hasTarget || id != u.paramTarget {
		u.paramTarget, u.hasTarget = id, ok
		u.selectedParam = ""
		u.paramValue.SetText("")
	}
	if !ok {
		u.paramTitle.Label = "Parameters"
		u.setEntries(u.paramList, nil, "")
		return
	}

	reg := u.ed.Objects()
	if tpl, found := reg.Template(id); found {
		u.paramTitle.Label = fmt.Sprintf("Parameters: %s", tpl.Name)
	}
	store := reg.Parameters(id)
	schema := store.Schema()
	entries := make([]any, 0, len(schema))
	parts := make([]string, 0, len(schema)+1)
	parts = append(parts, fmt.Sprint(id))
	for _, d := range schema {
		p, _ := store.Get(d.Name)
		entries = append(entries, paramEntry{Name: d.Name, Label: d.Label(), Value: p.Value})
		parts = append(parts, d.Name+"="+p.Value)
	}
	u.setEntries(u.paramList, entries, signature(parts))
}
