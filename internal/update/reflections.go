package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sandeepkv93/nukecore/internal/clock"
	"github.com/sandeepkv93/nukecore/internal/model"
)

func (m Model) handleReflectionsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Journal.Cursor > 0 {
			m.Journal.Cursor--
		}
	case "down", "j":
		if m.Journal.Cursor < len(m.Reflections)-1 {
			m.Journal.Cursor++
		}
	case "a":
		m.ReflectionForm = ReflectionFormState{Active: true}
		m.reflectionArea.SetValue("")
		m.reflectionArea.Focus()
	case "e":
		if item, ok := m.currentReflection(); ok {
			m.ReflectionForm = ReflectionFormState{
				Active:     true,
				EditingID:  item.ID,
				Learning:   item.Learning,
				Preventive: item.PreventiveMeasure,
			}
			m.reflectionArea.SetValue(item.Content)
			m.reflectionArea.Focus()
		}
	case "d":
		m.deleteSelectedReflection()
	}
	return m
}

func (m Model) currentReflection() (model.Reflection, bool) {
	if len(m.Reflections) == 0 || m.Journal.Cursor < 0 || m.Journal.Cursor >= len(m.Reflections) {
		return model.Reflection{}, false
	}
	return m.Reflections[m.Journal.Cursor], true
}

func (m *Model) deleteSelectedReflection() {
	item, ok := m.currentReflection()
	if !ok {
		return
	}
	next := make([]model.Reflection, 0, len(m.Reflections))
	for _, r := range m.Reflections {
		if r.ID == item.ID {
			continue
		}
		next = append(next, r)
	}
	m.Reflections = next
	if m.Journal.Cursor >= len(m.Reflections) && m.Journal.Cursor > 0 {
		m.Journal.Cursor--
	}
	m.persistReflectionDelete(item.ID)
	m.Status = StatusBar{Text: "reflection deleted", IsError: false}
}

func (m Model) handleReflectionFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ReflectionForm = ReflectionFormState{}
		m.reflectionArea.SetValue("")
		m.reflectionArea.Blur()
		m.formInput.SetValue("")
		m.formInput.Blur()
		m.Status = StatusBar{Text: "reflection form closed", IsError: false}
	case "tab":
		m.commitReflectionFormField()
		m.ReflectionForm.Field = (m.ReflectionForm.Field + 1) % reflectionFormFieldCount
		if m.ReflectionForm.Field == reflectionFieldContent {
			m.reflectionArea.Focus()
			m.formInput.Blur()
		} else {
			m.reflectionArea.Blur()
			m.formInput.SetValue(m.reflectionFormFieldValue(m.ReflectionForm.Field))
			m.formInput.Focus()
		}
	case "ctrl+s":
		m.commitReflectionFormField()
		m.submitReflectionForm()
	default:
		if m.ReflectionForm.Field == reflectionFieldContent {
			var cmd tea.Cmd
			m.reflectionArea, cmd = m.reflectionArea.Update(msg)
			return m, cmd
		}
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeyBackspace || msg.Type == tea.KeySpace {
			var cmd tea.Cmd
			m.formInput, cmd = m.formInput.Update(msg)
			m.commitReflectionFormField()
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) commitReflectionFormField() {
	switch m.ReflectionForm.Field {
	case reflectionFieldLearning:
		m.ReflectionForm.Learning = m.formInput.Value()
	case reflectionFieldPreventive:
		m.ReflectionForm.Preventive = m.formInput.Value()
	}
}

func (m Model) reflectionFormFieldValue(field reflectionFormField) string {
	switch field {
	case reflectionFieldLearning:
		return m.ReflectionForm.Learning
	case reflectionFieldPreventive:
		return m.ReflectionForm.Preventive
	default:
		return ""
	}
}

func (m *Model) submitReflectionForm() {
	form := m.ReflectionForm
	item := model.Reflection{
		ID:                form.EditingID,
		Date:              clock.DateString(m.Clock),
		Content:           m.reflectionArea.Value(),
		Learning:          form.Learning,
		PreventiveMeasure: form.Preventive,
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if err := item.Validate(); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}

	if form.EditingID == "" {
		// Newest entries lead the journal.
		next := make([]model.Reflection, 0, len(m.Reflections)+1)
		next = append(next, item)
		m.Reflections = append(next, m.Reflections...)
		m.Journal.Cursor = 0
		m.Status = StatusBar{Text: "reflection saved", IsError: false}
	} else {
		next := make([]model.Reflection, 0, len(m.Reflections))
		for _, existing := range m.Reflections {
			if existing.ID == item.ID {
				item.Date = existing.Date
				next = append(next, item)
				continue
			}
			next = append(next, existing)
		}
		m.Reflections = next
		m.Status = StatusBar{Text: fmt.Sprintf("reflection updated (%s)", item.Date), IsError: false}
	}
	m.persistReflection(item)

	m.ReflectionForm = ReflectionFormState{}
	m.reflectionArea.SetValue("")
	m.reflectionArea.Blur()
	m.formInput.SetValue("")
	m.formInput.Blur()
}
