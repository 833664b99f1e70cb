package update

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/nukecore/internal/model"
	"github.com/sandeepkv93/nukecore/internal/suggest"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Planner.Cursor > 0 {
			m.Planner.Cursor--
		}
		m.Planner.SubCursor = 0
		m.syncSelectedTaskToCursor()
	case "down", "j":
		if m.Planner.Cursor < len(m.Tasks)-1 {
			m.Planner.Cursor++
		}
		m.Planner.SubCursor = 0
		m.syncSelectedTaskToCursor()
	case "K":
		if m.Planner.SubCursor > 0 {
			m.Planner.SubCursor--
		}
	case "J":
		if task, ok := m.currentPlannerTask(); ok && m.Planner.SubCursor < len(task.Subtasks)-1 {
			m.Planner.SubCursor++
		}
	case " ":
		m.toggleSelectedTask()
	case "tab":
		m.toggleSelectedSubtask()
	case "a":
		m.openTaskForm(model.Task{})
	case "e":
		if task, ok := m.currentPlannerTask(); ok {
			m.openTaskForm(task)
		}
	case "d":
		m.deleteSelectedTask()
	case "y":
		m.acceptSuggestions()
	}
	return m
}

// sortedPlannerTasks is the planner ordering: highest priority first,
// ties kept in insertion order.
func (m Model) sortedPlannerTasks() []model.Task {
	out := make([]model.Task, len(m.Tasks))
	copy(out, m.Tasks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PriorityScore > out[j].PriorityScore })
	return out
}

func (m Model) currentPlannerTask() (model.Task, bool) {
	sorted := m.sortedPlannerTasks()
	if len(sorted) == 0 || m.Planner.Cursor < 0 || m.Planner.Cursor >= len(sorted) {
		return model.Task{}, false
	}
	return sorted[m.Planner.Cursor], true
}

func (m *Model) syncSelectedTaskToCursor() {
	if task, ok := m.currentPlannerTask(); ok {
		m.SelectedTaskID = task.ID
	}
}

func (m *Model) toggleSelectedTask() {
	selected, ok := m.currentPlannerTask()
	if !ok {
		return
	}
	next := make([]model.Task, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		if task.ID == selected.ID {
			task.Completed = !task.Completed
			if task.Completed {
				m.Stats.TasksCompleted++
				m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", task.Title), IsError: false}
			} else {
				if m.Stats.TasksCompleted > 0 {
					m.Stats.TasksCompleted--
				}
				m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", task.Title), IsError: false}
			}
			m.persistTask(task)
		}
		next = append(next, task)
	}
	m.Tasks = next
	m.persistStats()
}

func (m *Model) toggleSelectedSubtask() {
	selected, ok := m.currentPlannerTask()
	if !ok || len(selected.Subtasks) == 0 {
		return
	}
	subIdx := m.Planner.SubCursor
	if subIdx < 0 || subIdx >= len(selected.Subtasks) {
		subIdx = 0
	}
	next := make([]model.Task, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		if task.ID == selected.ID {
			subtasks := make([]model.Subtask, len(task.Subtasks))
			copy(subtasks, task.Subtasks)
			subtasks[subIdx].Completed = !subtasks[subIdx].Completed
			task.Subtasks = subtasks
			m.persistTask(task)
		}
		next = append(next, task)
	}
	m.Tasks = next
}

func (m *Model) deleteSelectedTask() {
	selected, ok := m.currentPlannerTask()
	if !ok {
		return
	}
	next := make([]model.Task, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		if task.ID == selected.ID {
			if selected.Completed && m.Stats.TasksCompleted > 0 {
				m.Stats.TasksCompleted--
			}
			continue
		}
		next = append(next, task)
	}
	m.Tasks = next
	if m.Planner.Cursor >= len(m.Tasks) && m.Planner.Cursor > 0 {
		m.Planner.Cursor--
	}
	m.persistTaskDelete(selected.ID)
	m.persistStats()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", selected.Title), IsError: false}
}

func (m *Model) acceptSuggestions() {
	if len(m.Suggestions.Items) == 0 {
		return
	}
	stubs := suggest.TaskStubs(m.Suggestions.Items)
	next := make([]model.Task, 0, len(m.Tasks)+len(stubs))
	next = append(next, m.Tasks...)
	next = append(next, stubs...)
	m.Tasks = next
	for _, task := range stubs {
		m.persistTask(task)
	}
	m.Status = StatusBar{Text: fmt.Sprintf("added %d suggested task(s)", len(stubs)), IsError: false}
	m.Suggestions = SuggestionState{}
}
