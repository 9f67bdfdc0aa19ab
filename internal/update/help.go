package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/taskboard/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.cardBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	mode := "view"
	if m.s.editing() != nil {
		mode = "edit"
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     mode,
		Bindings: plain,
		HelpView: m.s.helpModel.View(helpKeyMap{
			short: m.helpBindings(),
			full:  [][]key.Binding{m.helpBindings()},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Down + "/" + m.Keys.Up, Action: "move focus"},
		{Key: m.Keys.Add, Action: "add task"},
		{Key: m.Keys.Delete, Action: "delete focused task"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) cardBindings() []KeyBinding {
	if m.s.editing() != nil {
		return []KeyBinding{
			{Key: "enter", Action: "save and close editor"},
			{Key: "esc", Action: "save and close editor"},
			{Key: "ctrl+j/alt+enter", Action: "insert line break"},
		}
	}
	return []KeyBinding{
		{Key: "enter/i/a", Action: "edit task"},
		{Key: "space/x", Action: "toggle completed"},
		{Key: "click", Action: "focus, click again to edit"},
		{Key: "double click", Action: "edit task"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, 8)
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
