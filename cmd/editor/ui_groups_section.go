package main

import (
	"fmt"
	"strings"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/PvttJebus/OhMyGord/editor"
	"github.com/PvttJebus/OhMyGord/groups"
)

type groupEntry struct {
	ID    groups.ID
	Label string
}

func (u *editorUI) addGroupsSection(parent *widget.Container) {
	parent.AddChild(newLabel(u.face, "Groups"))
	u.groupName = u.trackInput(newTextInput(u.face, func(name string) {
		u.renameGroup(name)
	}))
	parent.AddChild(u.groupName)

	u.groupList = newEntryList(func(e any) string {
		if g, ok := e.(groupEntry); ok {
			return g.Label
		}
		return ""
	}, func(e any) {
		g, ok := e.(groupEntry)
		if !ok {
			return
		}
		u.selectedGroup, u.hasGroup = g.ID, true
		if group, ok := u.ed.Groups().Get(g.ID); ok {
			u.groupName.SetText(group.Name)
		}
	}, 100)
	parent.AddChild(u.groupList)

	row := newRow(4)
	row.AddChild(newButton(u.theme, u.face, "New", func() {
		name := strings.TrimSpace(u.groupName.GetText())
		if name == "" {
			name = fmt.Sprintf("Group %d", u.ed.Groups().Len()+1)
		}
		u.selectedGroup, u.hasGroup = u.ed.CreateGroup(name), true
	}))
	row.AddChild(newButton(u.theme, u.face, "Edit", func() {
		if u.hasGroup {
			report("Edit group failed", u.ed.EditGroup(u.selectedGroup))
		}
	}))
	row.AddChild(newButton(u.theme, u.face, "Rename", func() {
		u.renameGroup(u.groupName.GetText())
	}))
	row.AddChild(newButton(u.theme, u.face, "Del", func() {
		if !u.hasGroup {
			return
		}
		report("Delete group failed", u.ed.DeleteGroup(u.selectedGroup))
		u.hasGroup = false
	}))
	parent.AddChild(row)
}

func (u *editorUI) renameGroup(name string) {
	name = strings.TrimSpace(name)
	if !u.hasGroup || name == "" {
		return
	}
	report("Rename group failed", u.ed.RenameGroup(u.selectedGroup, name))
}

func (u *editorUI) refreshGroups() {
	all := u.ed.Groups().All()
	entries := make([]any, 0, len(all))
	labels := make([]string, 0, len(all))
	editing := u.ed.State() == editor.StateGroupEditing
	for _, g := range all {
		label := fmt.Sprintf("%s (%d)", g.Name, len(g.Members))
		if editing && g.ID == u.ed.ActiveGroup() {
			label = "> " + label
		}
		entries = append(entries, groupEntry{ID: g.ID, Label: label})
		labels = append(labels, label)
	}
	u.setEntries(u.groupList, entries, signature(labels))
	if u.hasGroup {
		if _, ok := u.ed.Groups().Get(u.selectedGroup); !ok {
			u.hasGroup = false
		}
	}
}
