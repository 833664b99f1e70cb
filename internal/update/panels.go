package update

import (
	"fmt"

	"github.com/sandeepkv93/nukecore/internal/clock"
	"github.com/sandeepkv93/nukecore/internal/model"
	"github.com/sandeepkv93/nukecore/internal/timeline"
	"github.com/sandeepkv93/nukecore/internal/views"
)

func (m Model) renderOverviewView() string {
	today := clock.DateString(m.Clock)
	strip := make([]views.DateStripDayData, 0, dateStripDays)
	for _, date := range m.dateStripDates() {
		strip = append(strip, views.DateStripDayData{
			Date:     date,
			Label:    date[8:],
			Selected: date == m.Overview.SelectedDate,
			IsToday:  date == today,
		})
	}

	positioned := m.positionedTasks()
	tasks := make([]views.TimelineTaskData, 0, len(positioned))
	for i, task := range positioned {
		tasks = append(tasks, views.TimelineTaskData{
			ID:          task.ID,
			Title:       task.Title,
			StartTime:   task.StartTime,
			DurationMin: task.Duration,
			Lane:        task.Lane,
			TotalLanes:  task.TotalLanes,
			Category:    task.Category,
			Priority:    task.PriorityScore,
			Selected:    i == m.Overview.Cursor,
		})
	}

	_, nowVisible := timeline.NowOffset(m.Clock, m.Overview.SelectedDate, m.Overview.Scale)
	return views.RenderTimelinePanel(views.TimelinePanelData{
		SelectedDate: m.Overview.SelectedDate,
		DateStrip:    strip,
		Scale:        m.Overview.Scale,
		Tasks:        tasks,
		SleepLabel: fmt.Sprintf("sleep: %02d:00-%02d:00 restricted",
			timeline.SleepBlockHour, timeline.StartHour),
		NowLabel:   m.Clock.Now().Format("15:04"),
		NowVisible: nowVisible,
	})
}

func (m Model) renderTasksView() string {
	goalTitles := make(map[string]string, len(m.Goals))
	for _, goal := range m.Goals {
		goalTitles[goal.ID] = goal.Title
	}

	sorted := m.sortedPlannerTasks()
	rows := make([]views.TaskRowData, 0, len(sorted))
	for _, task := range sorted {
		row := views.TaskRowData{
			ID:        task.ID,
			Title:     task.Title,
			Completed: task.Completed,
			Priority:  task.PriorityScore,
			Category:  task.Category,
			GoalTitle: goalTitles[task.GoalID],
		}
		if task.Scheduled() {
			row.Scheduled = task.Date + " " + task.StartTime
		}
		for _, sub := range task.Subtasks {
			row.Subtasks = append(row.Subtasks, views.SubtaskRowData{Title: sub.Title, Completed: sub.Completed})
		}
		rows = append(rows, row)
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		ListView:   m.tasksList.View(),
		Tasks:      rows,
		SelectedID: m.SelectedTaskID,
	})
}

func (m Model) renderGoalsView() string {
	rows := make([]views.GoalRowData, 0, len(m.Goals))
	selectedID := ""
	if goal, ok := m.currentGoal(); ok {
		selectedID = goal.ID
	}
	for _, goal := range m.Goals {
		completed, total := model.LinkedTaskCounts(goal.ID, m.Tasks)
		progress := model.GoalProgress(goal.ID, m.Tasks)
		rows = append(rows, views.GoalRowData{
			ID:        goal.ID,
			Title:     goal.Title,
			Deadline:  goal.Deadline,
			Progress:  progress,
			Completed: completed,
			Linked:    total,
			Bar:       progressBar(float64(progress)/100, 20),
		})
	}
	formView := ""
	if m.GoalForm.Active {
		action := "new goal"
		if m.GoalForm.EditingID != "" {
			action = "edit goal"
		}
		formView = fmt.Sprintf("%s:\nkeys: [tab]field [enter]save [esc]cancel\n%s\ntitle: %s\ndescription: %s\ndeadline: %s",
			action, m.formInput.View(), m.GoalForm.Title, m.GoalForm.Description, m.GoalForm.Deadline)
	}
	return views.RenderGoalsPanel(views.GoalsPanelData{
		Goals:      rows,
		SelectedID: selectedID,
		FormView:   formView,
	}) + "\n" + m.goalsTable.View()
}

func (m Model) renderReflectionsView() string {
	items := make([]views.ReflectionRowData, 0, len(m.Reflections))
	selectedID := ""
	if item, ok := m.currentReflection(); ok {
		selectedID = item.ID
	}
	for _, item := range m.Reflections {
		items = append(items, views.ReflectionRowData{
			ID:      item.ID,
			Date:    item.Date,
			Content: item.Content,
		})
	}
	return views.RenderReflectionsPanel(views.ReflectionsPanelData{
		Items:        items,
		SelectedID:   selectedID,
		MarkdownView: m.previewViewport.View(),
		EditorView:   m.reflectionArea.View(),
		FormActive:   m.ReflectionForm.Active,
	})
}

func (m Model) renderSprintView() string {
	pct := 0
	if m.Sprint.DurationSec > 0 {
		pct = (m.Sprint.DurationSec - m.Sprint.RemainingSec) * 100 / m.Sprint.DurationSec
	}
	return views.RenderSprintPanel(views.SprintPanelData{
		Timer:          formatDuration(m.Sprint.RemainingSec),
		Running:        m.Sprint.Running,
		ProgressView:   m.sprintProgress.View(),
		ProgressPct:    pct,
		Sound:          m.Sprint.Sound(),
		DurationMin:    m.Sprint.DurationSec / 60,
		FocusMinutes:   m.Stats.FocusMinutes,
		TasksCompleted: m.Stats.TasksCompleted,
		Streak:         m.Stats.Streak,
		XP:             m.Stats.XP,
	})
}

func (m Model) renderTaskFormIfVisible() string {
	if !m.TaskForm.Active {
		return ""
	}
	goalTitle := m.TaskForm.GoalID
	for _, goal := range m.Goals {
		if goal.ID == m.TaskForm.GoalID {
			goalTitle = goal.Title
		}
	}
	return views.RenderTaskCreator(views.TaskFormData{
		Active:     true,
		EditingID:  m.TaskForm.EditingID,
		Title:      m.TaskForm.Title,
		Category:   m.TaskForm.Category,
		GoalTitle:  goalTitle,
		Date:       m.TaskForm.Date,
		StartTime:  m.TaskForm.StartTime,
		Duration:   m.TaskForm.Duration,
		Importance: m.TaskForm.Importance,
		Urgency:    m.TaskForm.Urgency,
		Priority:   model.ComputePriority(m.TaskForm.Importance, m.TaskForm.Urgency),
		Subtasks:   m.TaskForm.Subtasks,
		Field:      m.TaskForm.Field.name(),
		Validation: m.taskFormValidation(),
		CanSubmit:  m.taskFormValidation() == "",
		InputView:  m.formInput.View(),
	})
}

func (m Model) renderSuggestionsView() string {
	items := make([]views.SuggestionRowData, 0, len(m.Suggestions.Items))
	for _, item := range m.Suggestions.Items {
		items = append(items, views.SuggestionRowData{
			Title:    item.Title,
			Energy:   string(item.Energy),
			Category: item.Category,
		})
	}
	return views.RenderSuggestionsPanel(views.SuggestionsPanelData{
		Mood:        m.Suggestions.Mood,
		Items:       items,
		Pending:     m.Suggestions.Pending,
		SpinnerView: m.planSpinner.View(),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}
