package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/nukecore/internal/views"
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
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Overview, Action: "switch to Overview"},
		{Key: m.Keys.Tasks, Action: "switch to Tasks"},
		{Key: m.Keys.Goals, Action: "switch to Goals"},
		{Key: m.Keys.Reflections, Action: "switch to Reflections"},
		{Key: m.Keys.Sprint, Action: "switch to Sprint"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewOverview:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next day"},
			{Key: "t", Action: "jump to today"},
			{Key: "+/-", Action: "zoom in/out"},
			{Key: "j/k", Action: "move task cursor"},
		}
	case ViewTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space", Action: "toggle complete"},
			{Key: "a/e/d", Action: "add / edit / delete"},
			{Key: "J/K + tab", Action: "pick and toggle subtask"},
			{Key: "y", Action: "accept suggested plan"},
		}
	case ViewGoals:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "a/e/d", Action: "add / edit / delete"},
		}
	case ViewReflections:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "a/e/d", Action: "add / edit / delete"},
			{Key: "ctrl+s", Action: "save entry (in editor)"},
		}
	case ViewSprint:
		return []KeyBinding{
			{Key: "space", Action: "start/pause timer"},
			{Key: "r", Action: "reset timer"},
			{Key: "s", Action: "cycle ambient sound"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
