package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sandeepkv93/nukecore/internal/model"
)

func (m Model) handleGoalsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.GoalList.Cursor > 0 {
			m.GoalList.Cursor--
		}
	case "down", "j":
		if m.GoalList.Cursor < len(m.Goals)-1 {
			m.GoalList.Cursor++
		}
	case "a":
		m.GoalForm = GoalFormState{Active: true}
		m.formInput.SetValue("")
		m.formInput.Focus()
	case "e":
		if goal, ok := m.currentGoal(); ok {
			m.GoalForm = GoalFormState{
				Active:      true,
				EditingID:   goal.ID,
				Title:       goal.Title,
				Description: goal.Description,
				Deadline:    goal.Deadline,
			}
			m.formInput.SetValue(goal.Title)
			m.formInput.Focus()
		}
	case "d":
		m.deleteSelectedGoal()
	}
	return m
}

func (m Model) currentGoal() (model.Goal, bool) {
	if len(m.Goals) == 0 || m.GoalList.Cursor < 0 || m.GoalList.Cursor >= len(m.Goals) {
		return model.Goal{}, false
	}
	return m.Goals[m.GoalList.Cursor], true
}

// deleteSelectedGoal removes the goal but keeps its tasks; their goal
// link is cleared so they read as unlinked.
func (m *Model) deleteSelectedGoal() {
	goal, ok := m.currentGoal()
	if !ok {
		return
	}
	next := make([]model.Goal, 0, len(m.Goals))
	for _, g := range m.Goals {
		if g.ID == goal.ID {
			continue
		}
		next = append(next, g)
	}
	m.Goals = next
	m.Tasks = model.UnlinkGoal(goal.ID, m.Tasks)
	if m.GoalList.Cursor >= len(m.Goals) && m.GoalList.Cursor > 0 {
		m.GoalList.Cursor--
	}
	m.persistGoalDelete(goal.ID)
	m.Status = StatusBar{Text: fmt.Sprintf("deleted goal: %s (tasks kept)", goal.Title), IsError: false}
}

func (m Model) handleGoalFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.GoalForm = GoalFormState{}
		m.formInput.SetValue("")
		m.formInput.Blur()
		m.Status = StatusBar{Text: "goal form closed", IsError: false}
	case "tab":
		m.commitGoalFormField()
		m.GoalForm.Field = (m.GoalForm.Field + 1) % goalFormFieldCount
		m.formInput.SetValue(m.goalFormFieldValue(m.GoalForm.Field))
	case "shift+tab":
		m.commitGoalFormField()
		m.GoalForm.Field = (m.GoalForm.Field + goalFormFieldCount - 1) % goalFormFieldCount
		m.formInput.SetValue(m.goalFormFieldValue(m.GoalForm.Field))
	case "enter":
		m.commitGoalFormField()
		m.submitGoalForm()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeyBackspace || msg.Type == tea.KeySpace {
			var cmd tea.Cmd
			m.formInput, cmd = m.formInput.Update(msg)
			m.commitGoalFormField()
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) commitGoalFormField() {
	value := strings.TrimSpace(m.formInput.Value())
	switch m.GoalForm.Field {
	case goalFieldTitle:
		m.GoalForm.Title = value
	case goalFieldDescription:
		m.GoalForm.Description = value
	case goalFieldDeadline:
		m.GoalForm.Deadline = value
	}
}

func (m Model) goalFormFieldValue(field goalFormField) string {
	switch field {
	case goalFieldTitle:
		return m.GoalForm.Title
	case goalFieldDescription:
		return m.GoalForm.Description
	case goalFieldDeadline:
		return m.GoalForm.Deadline
	default:
		return ""
	}
}

func (m *Model) submitGoalForm() {
	form := m.GoalForm
	deadline := strings.TrimSpace(form.Deadline)
	if deadline == "" {
		deadline = model.NoDeadline
	}
	goal := model.Goal{
		ID:          form.EditingID,
		Title:       form.Title,
		Description: form.Description,
		Deadline:    deadline,
	}
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	if err := goal.Validate(); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}

	if form.EditingID == "" {
		next := make([]model.Goal, 0, len(m.Goals)+1)
		next = append(next, m.Goals...)
		m.Goals = append(next, goal)
		m.Status = StatusBar{Text: fmt.Sprintf("added goal: %s", goal.Title), IsError: false}
	} else {
		next := make([]model.Goal, 0, len(m.Goals))
		for _, existing := range m.Goals {
			if existing.ID == goal.ID {
				goal.Color = existing.Color
				next = append(next, goal)
				continue
			}
			next = append(next, existing)
		}
		m.Goals = next
		m.Status = StatusBar{Text: fmt.Sprintf("updated goal: %s", goal.Title), IsError: false}
	}
	m.persistGoal(goal)

	m.GoalForm = GoalFormState{}
	m.formInput.SetValue("")
	m.formInput.Blur()
}
