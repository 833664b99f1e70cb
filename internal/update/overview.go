package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/nukecore/internal/clock"
	"github.com/sandeepkv93/nukecore/internal/timeline"
)

func (m Model) handleOverviewKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		m.shiftSelectedDate(-1)
	case "l", "right":
		m.shiftSelectedDate(1)
	case "t":
		m.Overview.SelectedDate = clock.DateString(m.Clock)
		m.Overview.Cursor = 0
	case "+", "=":
		m.Overview.Scale = timeline.ClampScale(m.Overview.Scale + timeline.ZoomStep)
	case "-", "_":
		m.Overview.Scale = timeline.ClampScale(m.Overview.Scale - timeline.ZoomStep)
	case "up", "k":
		if m.Overview.Cursor > 0 {
			m.Overview.Cursor--
		}
		m.syncSelectedTaskToTimelineCursor()
	case "down", "j":
		if m.Overview.Cursor < len(m.positionedTasks())-1 {
			m.Overview.Cursor++
		}
		m.syncSelectedTaskToTimelineCursor()
	}
	return m
}

// dateStripDates is the horizontal day selector: today plus the next
// thirteen days.
func (m Model) dateStripDates() []string {
	out := make([]string, 0, dateStripDays)
	start := m.Clock.Now()
	for i := 0; i < dateStripDays; i++ {
		out = append(out, start.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return out
}

func (m *Model) shiftSelectedDate(delta int) {
	strip := m.dateStripDates()
	idx := 0
	for i, d := range strip {
		if d == m.Overview.SelectedDate {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx > len(strip)-1 {
		idx = len(strip) - 1
	}
	m.Overview.SelectedDate = strip[idx]
	m.Overview.Cursor = 0
	m.syncSelectedTaskToTimelineCursor()
}

func (m Model) positionedTasks() []timeline.PositionedTask {
	return timeline.Layout(m.Tasks, m.Overview.SelectedDate, m.Overview.Scale)
}

func (m *Model) syncSelectedTaskToTimelineCursor() {
	positioned := m.positionedTasks()
	if len(positioned) == 0 {
		return
	}
	if m.Overview.Cursor < 0 || m.Overview.Cursor >= len(positioned) {
		m.Overview.Cursor = 0
	}
	m.SelectedTaskID = positioned[m.Overview.Cursor].ID
}
