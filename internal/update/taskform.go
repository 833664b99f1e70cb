package update

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sandeepkv93/nukecore/internal/alerts"
	"github.com/sandeepkv93/nukecore/internal/model"
	"github.com/sandeepkv93/nukecore/internal/schedule"
)

func (m *Model) openTaskForm(task model.Task) {
	form := defaultTaskForm(m.Clock)
	if task.ID != "" {
		form = TaskFormState{
			EditingID:  task.ID,
			Title:      task.Title,
			Category:   task.Category,
			GoalID:     task.GoalID,
			Date:       task.Date,
			StartTime:  task.StartTime,
			Duration:   strconv.Itoa(task.Duration),
			Importance: task.Importance,
			Urgency:    task.Urgency,
		}
		for _, sub := range task.Subtasks {
			form.Subtasks = append(form.Subtasks, sub.Title)
		}
	}
	form.Active = true
	m.TaskForm = form
	m.formInput.SetValue(form.fieldValue(form.Field))
	m.formInput.Focus()
}

func (m Model) handleTaskFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.TaskForm = defaultTaskForm(m.Clock)
		m.formInput.SetValue("")
		m.formInput.Blur()
		m.Status = StatusBar{Text: "task form closed", IsError: false}
	case "tab":
		m.commitTaskFormField()
		m.TaskForm.Field = (m.TaskForm.Field + 1) % taskFormFieldCount
		m.formInput.SetValue(m.TaskForm.fieldValue(m.TaskForm.Field))
	case "shift+tab":
		m.commitTaskFormField()
		m.TaskForm.Field = (m.TaskForm.Field + taskFormFieldCount - 1) % taskFormFieldCount
		m.formInput.SetValue(m.TaskForm.fieldValue(m.TaskForm.Field))
	case "ctrl+d":
		if n := len(m.TaskForm.Subtasks); n > 0 {
			m.TaskForm.Subtasks = m.TaskForm.Subtasks[:n-1]
		}
	case "enter":
		m.commitTaskFormField()
		if m.TaskForm.Field == fieldSubtask {
			draft := strings.TrimSpace(m.formInput.Value())
			if draft != "" {
				m.TaskForm.Subtasks = append(m.TaskForm.Subtasks, draft)
				m.formInput.SetValue("")
			}
			return m, nil
		}
		m.submitTaskForm()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeyBackspace || msg.Type == tea.KeySpace {
			var cmd tea.Cmd
			m.formInput, cmd = m.formInput.Update(msg)
			m.commitTaskFormField()
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) commitTaskFormField() {
	value := strings.TrimSpace(m.formInput.Value())
	switch m.TaskForm.Field {
	case fieldTitle:
		m.TaskForm.Title = value
	case fieldCategory:
		m.TaskForm.Category = value
	case fieldGoal:
		m.TaskForm.GoalID = m.resolveGoalRef(value)
	case fieldDate:
		m.TaskForm.Date = value
	case fieldTime:
		m.TaskForm.StartTime = value
	case fieldDuration:
		m.TaskForm.Duration = value
	case fieldImportance:
		m.TaskForm.Importance = clampRating(value, m.TaskForm.Importance)
	case fieldUrgency:
		m.TaskForm.Urgency = clampRating(value, m.TaskForm.Urgency)
	}
}

// resolveGoalRef accepts either a goal ID or a goal title.
func (m Model) resolveGoalRef(ref string) string {
	if ref == "" {
		return ""
	}
	for _, goal := range m.Goals {
		if goal.ID == ref || strings.EqualFold(goal.Title, ref) {
			return goal.ID
		}
	}
	return ref
}

func (m Model) taskFormValidation() string {
	form := m.TaskForm
	if strings.TrimSpace(form.Title) == "" {
		return "Title is required"
	}
	if d, err := strconv.Atoi(strings.TrimSpace(form.Duration)); err != nil || d <= 0 {
		return "Duration must be a positive number of minutes"
	}
	if form.Date != "" {
		if err := model.ValidateDateString(form.Date); err != nil {
			return "Date must be YYYY-MM-DD"
		}
	}
	if form.StartTime != "" {
		if _, _, err := model.ParseClock(form.StartTime); err != nil {
			return "Time must be HH:MM"
		}
	}
	if res := schedule.Validate(form.Date, form.StartTime, m.Clock); !res.OK() {
		return res.Message()
	}
	return ""
}

func (m *Model) submitTaskForm() {
	if v := m.taskFormValidation(); v != "" {
		m.Status = StatusBar{Text: v, IsError: true}
		return
	}
	form := m.TaskForm
	duration, _ := strconv.Atoi(strings.TrimSpace(form.Duration))

	task := model.Task{
		ID:         form.EditingID,
		Title:      form.Title,
		Category:   form.Category,
		GoalID:     form.GoalID,
		Date:       form.Date,
		StartTime:  form.StartTime,
		Duration:   duration,
		Importance: form.Importance,
		Urgency:    form.Urgency,
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.Subtasks = m.rebuildSubtasks(form)
	task = task.WithPriority()
	if err := task.Validate(); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}

	if form.EditingID == "" {
		next := make([]model.Task, 0, len(m.Tasks)+1)
		next = append(next, m.Tasks...)
		m.Tasks = append(next, task)
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s", task.Title), IsError: false}
	} else {
		next := make([]model.Task, 0, len(m.Tasks))
		for _, existing := range m.Tasks {
			if existing.ID == task.ID {
				task.Completed = existing.Completed
				next = append(next, task)
				continue
			}
			next = append(next, existing)
		}
		m.Tasks = next
		m.Status = StatusBar{Text: fmt.Sprintf("updated: %s", task.Title), IsError: false}
	}
	m.persistTask(task)
	m.scheduleTaskAlert(task)

	m.TaskForm = defaultTaskForm(m.Clock)
	m.formInput.SetValue("")
	m.formInput.Blur()
	m.SelectedTaskID = task.ID
}

// rebuildSubtasks maps drafts back onto the task being edited so subtask
// completion survives a rename-free edit.
func (m Model) rebuildSubtasks(form TaskFormState) []model.Subtask {
	var existing []model.Subtask
	if form.EditingID != "" {
		for _, task := range m.Tasks {
			if task.ID == form.EditingID {
				existing = task.Subtasks
				break
			}
		}
	}
	out := make([]model.Subtask, 0, len(form.Subtasks))
	for i, title := range form.Subtasks {
		if i < len(existing) && existing[i].Title == title {
			out = append(out, existing[i])
			continue
		}
		out = append(out, model.Subtask{ID: uuid.NewString(), Title: title})
	}
	return out
}

func (m *Model) scheduleTaskAlert(task model.Task) {
	if m.Alerts == nil || !task.Scheduled() {
		return
	}
	hour, minute, err := model.ParseClock(task.StartTime)
	if err != nil {
		return
	}
	day, err := time.ParseInLocation("2006-01-02", task.Date, time.Local)
	if err != nil {
		return
	}
	due := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local)
	if !due.After(m.Clock.Now()) {
		return
	}
	a := alerts.Alert{
		ID:    uuid.NewString(),
		RefID: task.ID,
		Kind:  alerts.KindTaskStart,
		Title: task.Title,
		DueAt: due,
	}
	if err := m.Alerts.Schedule(a); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("alert schedule failed: %v", err), IsError: true}
	}
}

func (f TaskFormState) fieldValue(field taskFormField) string {
	switch field {
	case fieldTitle:
		return f.Title
	case fieldCategory:
		return f.Category
	case fieldGoal:
		return f.GoalID
	case fieldDate:
		return f.Date
	case fieldTime:
		return f.StartTime
	case fieldDuration:
		return f.Duration
	case fieldImportance:
		return strconv.Itoa(f.Importance)
	case fieldUrgency:
		return strconv.Itoa(f.Urgency)
	default:
		return ""
	}
}

func (f taskFormField) name() string {
	switch f {
	case fieldTitle:
		return "title"
	case fieldCategory:
		return "category"
	case fieldGoal:
		return "goal"
	case fieldDate:
		return "date"
	case fieldTime:
		return "time"
	case fieldDuration:
		return "duration"
	case fieldImportance:
		return "importance"
	case fieldUrgency:
		return "urgency"
	case fieldSubtask:
		return "subtask"
	default:
		return "?"
	}
}

func clampRating(value string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	if v < model.RatingMin {
		return model.RatingMin
	}
	if v > model.RatingMax {
		return model.RatingMax
	}
	return v
}
