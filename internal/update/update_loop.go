package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/nukecore/internal/alerts"
	"github.com/sandeepkv93/nukecore/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{clockTickCmd()}
	if m.Alerts != nil {
		cmds = append(cmds, waitAlertCmd(m.Alerts.C()))
	}
	return tea.Batch(cmds...)
}

// Update applies the message and refreshes the bubble components on the
// model actually returned. A deferred refresh would run after the return
// value is copied out and the sync would be lost.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.applyMsg(msg)
	if synced, ok := next.(Model); ok {
		synced.syncBubbleData()
		return synced, cmd
	}
	return next, cmd
}

func (m Model) applyMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}
		if m.TaskForm.Active {
			return m.handleTaskFormKey(typed)
		}
		if m.GoalForm.Active {
			return m.handleGoalFormKey(typed)
		}
		if m.ReflectionForm.Active {
			return m.handleReflectionFormKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Overview:
			m.CurrentView = ViewOverview
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Goals:
			m.CurrentView = ViewGoals
			return m, nil
		case m.Keys.Reflections:
			m.CurrentView = ViewReflections
			return m, nil
		case m.Keys.Sprint:
			m.CurrentView = ViewSprint
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewOverview:
			return m.handleOverviewKey(typed), nil
		case ViewTasks:
			return m.handleTasksKey(typed), nil
		case ViewGoals:
			return m.handleGoalsKey(typed), nil
		case ViewReflections:
			return m.handleReflectionsKey(typed), nil
		case ViewSprint:
			next, cmd := m.handleSprintKey(typed)
			return next, cmd
		}
	case spinner.TickMsg:
		if m.Suggestions.Pending {
			var cmd tea.Cmd
			m.planSpinner, cmd = m.planSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case ClockTickMsg:
		// Redraw moves the now indicator; nothing else changes.
		return m, clockTickCmd()
	case SprintTickMsg:
		return m.onSprintTick()
	case AlertDueMsg:
		m.AlertLog = append(m.AlertLog, typed.Alert)
		if len(m.AlertLog) > 20 {
			m.AlertLog = m.AlertLog[len(m.AlertLog)-20:]
		}
		m.Status = StatusBar{Text: fmt.Sprintf("due now: %s", typed.Alert.Title), IsError: false}
		if m.Alerts != nil {
			return m, waitAlertCmd(m.Alerts.C())
		}
		return m, nil
	case SetTasksMsg:
		m.Tasks = typed.Tasks
		m.Planner.Cursor = 0
		m.syncSelectedTaskToCursor()
		return m, nil
	case SuggestionsReadyMsg:
		m.Suggestions.Pending = false
		if typed.Err != nil {
			m.Status = StatusBar{Text: "plan failed: " + typed.Err.Error(), IsError: true}
			return m, nil
		}
		m.Suggestions.Mood = typed.Mood
		m.Suggestions.Items = typed.Items
		m.Status = StatusBar{Text: fmt.Sprintf("plan ready: %d suggestion(s)", len(typed.Items)), IsError: false}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewOverview:
		leftPane = m.renderOverviewView()
		rightPane = m.renderTaskFormIfVisible() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderTaskFormIfVisible() + m.renderSuggestionsView() + m.renderHelpIfVisible()
	case ViewGoals:
		leftPane = m.renderGoalsView()
		rightPane = m.renderHelpIfVisible()
	case ViewReflections:
		leftPane = m.renderReflectionsView()
		rightPane = m.renderHelpIfVisible()
	case ViewSprint:
		leftPane = m.renderSprintView()
		rightPane = m.renderHelpIfVisible()
	}

	notificationView := ""
	if len(m.AlertLog) > 0 {
		last := m.AlertLog[len(m.AlertLog)-1]
		notificationView = fmt.Sprintf("last-alert: %s @ %s", last.Title, last.DueAt.Format("15:04:05"))
	}
	if m.Suggestions.Pending {
		notificationView = strings.TrimSpace(strings.Join([]string{notificationView, "plan: " + m.planSpinner.View() + " thinking"}, "\n"))
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("nukecore | view: %s | %s", m.CurrentView, m.Overview.SelectedDate),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notificationView,
		Footer: fmt.Sprintf("keys: %s overview | %s tasks | %s goals | %s journal | %s sprint | / cmd | %s help | %s quit",
			m.Keys.Overview, m.Keys.Tasks, m.Keys.Goals, m.Keys.Reflections, m.Keys.Sprint, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewOverview, ViewTasks, ViewGoals, ViewReflections, ViewSprint:
		return true
	default:
		return false
	}
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(time.Time) tea.Msg { return ClockTickMsg{} })
}

func sprintTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return SprintTickMsg{} })
}

func waitAlertCmd(ch <-chan alerts.Alert) tea.Cmd {
	return func() tea.Msg {
		a, ok := <-ch
		if !ok {
			return nil
		}
		return AlertDueMsg{Alert: a}
	}
}
