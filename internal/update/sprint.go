package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleSprintKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.Sprint.Running {
			m.Sprint.Running = false
			m.Status = StatusBar{Text: "sprint paused", IsError: false}
			return m, nil
		}
		if m.Sprint.RemainingSec <= 0 {
			m.Sprint.RemainingSec = m.Sprint.DurationSec
		}
		m.Sprint.Running = true
		m.Status = StatusBar{Text: "sprint running", IsError: false}
		return m, sprintTickCmd()
	case "r":
		m.Sprint.Running = false
		m.Sprint.RemainingSec = m.Sprint.DurationSec
		m.Status = StatusBar{Text: "sprint reset", IsError: false}
		return m, nil
	case "s":
		m.Sprint.SoundIndex = (m.Sprint.SoundIndex + 1) % len(ambientSounds)
		m.Status = StatusBar{Text: "ambience: " + m.Sprint.Sound(), IsError: false}
		return m, nil
	}
	return m, nil
}

func (m Model) onSprintTick() (tea.Model, tea.Cmd) {
	if !m.Sprint.Running {
		return m, nil
	}
	if m.Sprint.RemainingSec > 0 {
		m.Sprint.RemainingSec--
	}
	if m.Sprint.RemainingSec == 0 {
		m.Sprint.Running = false
		m.Stats.FocusMinutes += m.Sprint.DurationSec / 60
		m.persistStats()
		m.Status = StatusBar{Text: "sprint complete", IsError: false}
		return m, nil
	}
	return m, sprintTickCmd()
}
