package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sandeepkv93/nukecore/internal/clock"
	"github.com/sandeepkv93/nukecore/internal/commands"
	"github.com/sandeepkv93/nukecore/internal/model"
	"github.com/sandeepkv93/nukecore/internal/suggest"
	"github.com/sandeepkv93/nukecore/internal/timeline"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m, nil
	}

	var followUp tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task := model.Task{
				ID:         uuid.NewString(),
				Title:      a.Title,
				Importance: 5,
				Urgency:    5,
				Duration:   30,
			}.WithPriority()
			next := make([]model.Task, 0, len(m.Tasks)+1)
			next = append(next, m.Tasks...)
			m.Tasks = append(next, task)
			m.persistTask(task)
			m.CurrentView = ViewTasks
			return commands.Result{Message: fmt.Sprintf("added task: %s", a.Title)}, nil
		},
		Goal: func(g commands.GoalArgs) (commands.Result, error) {
			goal := model.Goal{
				ID:       uuid.NewString(),
				Title:    g.Title,
				Deadline: model.NoDeadline,
			}
			next := make([]model.Goal, 0, len(m.Goals)+1)
			next = append(next, m.Goals...)
			m.Goals = append(next, goal)
			m.persistGoal(goal)
			m.CurrentView = ViewGoals
			return commands.Result{Message: fmt.Sprintf("added goal: %s", g.Title)}, nil
		},
		Date: func(d commands.DateArgs) (commands.Result, error) {
			switch d.When {
			case "today":
				m.Overview.SelectedDate = clock.DateString(m.Clock)
			case "tomorrow":
				m.Overview.SelectedDate = m.Clock.Now().AddDate(0, 0, 1).Format("2006-01-02")
			default:
				if err := model.ValidateDateString(d.When); err != nil {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "date must be YYYY-MM-DD"}
				}
				m.Overview.SelectedDate = d.When
			}
			m.Overview.Cursor = 0
			m.CurrentView = ViewOverview
			return commands.Result{Message: fmt.Sprintf("timeline date: %s", m.Overview.SelectedDate)}, nil
		},
		Zoom: func(z commands.ZoomArgs) (commands.Result, error) {
			step := timeline.ZoomStep
			if z.Direction == "out" {
				step = -timeline.ZoomStep
			}
			m.Overview.Scale = timeline.ClampScale(m.Overview.Scale + step)
			return commands.Result{Message: fmt.Sprintf("zoom: %.1fx", m.Overview.Scale)}, nil
		},
		Reflect: func(r commands.ReflectArgs) (commands.Result, error) {
			item := model.Reflection{
				ID:      uuid.NewString(),
				Date:    clock.DateString(m.Clock),
				Content: r.Content,
			}
			next := make([]model.Reflection, 0, len(m.Reflections)+1)
			next = append(next, item)
			m.Reflections = append(next, m.Reflections...)
			m.Journal.Cursor = 0
			m.persistReflection(item)
			m.CurrentView = ViewReflections
			return commands.Result{Message: "reflection saved"}, nil
		},
		Plan: func(p commands.PlanArgs) (commands.Result, error) {
			m.Suggestions = SuggestionState{Mood: p.Mood, Pending: true}
			followUp = tea.Batch(m.planSpinner.Tick, planCmd(m.planner, m.planContext(), p.Mood))
			m.CurrentView = ViewTasks
			return commands.Result{Message: fmt.Sprintf("planning for mood: %s", p.Mood)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m, followUp
}

// planContext summarizes today's open work for the planner.
func (m Model) planContext() string {
	open := 0
	categories := make([]string, 0, 4)
	seen := make(map[string]bool)
	for _, task := range m.Tasks {
		if task.Completed {
			continue
		}
		open++
		if task.Category != "" && !seen[task.Category] {
			seen[task.Category] = true
			categories = append(categories, task.Category)
		}
	}
	return fmt.Sprintf("%d open tasks; categories: %s", open, strings.Join(categories, ", "))
}

func planCmd(planner suggest.Planner, userContext, mood string) tea.Cmd {
	return func() tea.Msg {
		items, err := planner.SuggestPlan(context.Background(), userContext, mood)
		return SuggestionsReadyMsg{Mood: mood, Items: items, Err: err}
	}
}
