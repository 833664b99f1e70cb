package update

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/nukecore/internal/model"
	"github.com/sandeepkv93/nukecore/internal/storage"
)

const repoTimeout = 3 * time.Second

// Persistence is best-effort: a storage failure surfaces on the status
// bar but never blocks the in-memory state change.

func (m *Model) loadFromRepository() error {
	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()

	storedTasks, err := m.repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	tasks := make([]model.Task, 0, len(storedTasks))
	for _, st := range storedTasks {
		tasks = append(tasks, taskFromStorage(st))
	}
	m.Tasks = tasks

	storedGoals, err := m.repo.ListGoals(ctx, storage.GoalListFilter{})
	if err != nil {
		return fmt.Errorf("list goals: %w", err)
	}
	goals := make([]model.Goal, 0, len(storedGoals))
	for _, sg := range storedGoals {
		goals = append(goals, model.Goal{
			ID:          sg.ID,
			Title:       sg.Title,
			Description: sg.Description,
			Deadline:    sg.Deadline,
			Color:       sg.Color,
		})
	}
	m.Goals = goals

	storedReflections, err := m.repo.ListReflections(ctx, storage.ReflectionListFilter{})
	if err != nil {
		return fmt.Errorf("list reflections: %w", err)
	}
	reflections := make([]model.Reflection, 0, len(storedReflections))
	for _, sr := range storedReflections {
		reflections = append(reflections, model.Reflection{
			ID:                sr.ID,
			Date:              sr.Date,
			Content:           sr.Content,
			Learning:          sr.Learning,
			PreventiveMeasure: sr.PreventiveMeasure,
		})
	}
	m.Reflections = reflections
	m.syncSelectedTaskToCursor()
	return nil
}

func (m *Model) persistTask(task model.Task) {
	if m.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()
	stored := taskToStorage(task)
	// Only the insert path reads CreatedAt; updates leave the stored
	// timestamp alone.
	stored.CreatedAt = m.Clock.Now()
	err := m.repo.UpdateTask(ctx, stored)
	if errors.Is(err, storage.ErrNotFound) {
		err = m.repo.CreateTask(ctx, stored)
	}
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("save task failed: %v", err), IsError: true}
	}
}

func (m *Model) persistTaskDelete(id string) {
	if m.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()
	if err := m.repo.DeleteTask(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		m.Status = StatusBar{Text: fmt.Sprintf("delete task failed: %v", err), IsError: true}
	}
}

func (m *Model) persistGoal(goal model.Goal) {
	if m.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()
	stored := storage.Goal{
		ID:          goal.ID,
		Title:       goal.Title,
		Description: goal.Description,
		Deadline:    goal.Deadline,
		Color:       goal.Color,
		CreatedAt:   m.Clock.Now(),
	}
	err := m.repo.UpdateGoal(ctx, stored)
	if errors.Is(err, storage.ErrNotFound) {
		err = m.repo.CreateGoal(ctx, stored)
	}
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("save goal failed: %v", err), IsError: true}
	}
}

func (m *Model) persistGoalDelete(id string) {
	if m.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()
	if err := m.repo.DeleteGoal(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		m.Status = StatusBar{Text: fmt.Sprintf("delete goal failed: %v", err), IsError: true}
	}
}

func (m *Model) persistReflection(item model.Reflection) {
	if m.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()
	stored := storage.Reflection{
		ID:                item.ID,
		Date:              item.Date,
		Content:           item.Content,
		Learning:          item.Learning,
		PreventiveMeasure: item.PreventiveMeasure,
		CreatedAt:         m.Clock.Now(),
	}
	err := m.repo.UpdateReflection(ctx, stored)
	if errors.Is(err, storage.ErrNotFound) {
		err = m.repo.CreateReflection(ctx, stored)
	}
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("save reflection failed: %v", err), IsError: true}
	}
}

func (m *Model) persistReflectionDelete(id string) {
	if m.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()
	if err := m.repo.DeleteReflection(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		m.Status = StatusBar{Text: fmt.Sprintf("delete reflection failed: %v", err), IsError: true}
	}
}

func taskToStorage(task model.Task) storage.Task {
	out := storage.Task{
		ID:            task.ID,
		Title:         task.Title,
		Completed:     task.Completed,
		Category:      task.Category,
		Importance:    task.Importance,
		Urgency:       task.Urgency,
		PriorityScore: task.PriorityScore,
		DurationMin:   task.Duration,
		GoalID:        task.GoalID,
		StartTime:     task.StartTime,
		Date:          task.Date,
	}
	for i, sub := range task.Subtasks {
		out.Subtasks = append(out.Subtasks, storage.Subtask{
			ID:        sub.ID,
			TaskID:    task.ID,
			Title:     sub.Title,
			Completed: sub.Completed,
			Position:  i,
		})
	}
	return out
}

func taskFromStorage(stored storage.Task) model.Task {
	out := model.Task{
		ID:            stored.ID,
		Title:         stored.Title,
		Completed:     stored.Completed,
		Category:      stored.Category,
		Importance:    stored.Importance,
		Urgency:       stored.Urgency,
		PriorityScore: stored.PriorityScore,
		Duration:      stored.DurationMin,
		GoalID:        stored.GoalID,
		StartTime:     stored.StartTime,
		Date:          stored.Date,
	}
	for _, sub := range stored.Subtasks {
		out.Subtasks = append(out.Subtasks, model.Subtask{
			ID:        sub.ID,
			Title:     sub.Title,
			Completed: sub.Completed,
		})
	}
	// Stored rows keep whatever score they were written with; the
	// derived value always wins.
	return out.WithPriority()
}
