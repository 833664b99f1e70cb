package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/nukecore/internal/model"
	"github.com/sandeepkv93/nukecore/internal/views"
)

func (m *Model) initBubbleComponents() {
	m.tasksList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.tasksList.Title = "Planner (list)"
	m.tasksList.SetShowHelp(false)
	m.tasksList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Goal", Width: 24},
		{Title: "Deadline", Width: 12},
		{Title: "Progress", Width: 9},
		{Title: "Tasks", Width: 7},
	}
	m.goalsTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.formInput = textinput.New()
	m.formInput.Prompt = "> "
	m.formInput.CharLimit = 256
	m.formInput.Width = 42

	m.reflectionArea = textarea.New()
	m.reflectionArea.SetWidth(54)
	m.reflectionArea.SetHeight(8)
	m.reflectionArea.ShowLineNumbers = false
	m.reflectionArea.Placeholder = "What went wrong and what did you learn? (markdown)"

	m.sprintProgress = progress.New(progress.WithDefaultGradient())

	m.planSpinner = spinner.New()
	m.planSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.previewViewport = viewport.New(54, 12)
}

func (m *Model) syncBubbleData() {
	sorted := m.sortedPlannerTasks()
	items := make([]list.Item, 0, len(sorted))
	for _, task := range sorted {
		desc := fmt.Sprintf("p%.1f", task.PriorityScore)
		if task.Category != "" {
			desc += " #" + task.Category
		}
		if task.Scheduled() {
			desc += " @" + task.Date + " " + task.StartTime
		}
		items = append(items, listItem{title: task.Title, description: desc})
	}
	m.tasksList.SetItems(items)
	if len(items) > 0 && m.Planner.Cursor < len(items) {
		m.tasksList.Select(m.Planner.Cursor)
	}

	rows := make([]table.Row, 0, len(m.Goals))
	for _, goal := range m.Goals {
		completed, total := model.LinkedTaskCounts(goal.ID, m.Tasks)
		rows = append(rows, table.Row{
			goal.Title,
			goal.Deadline,
			fmt.Sprintf("%d%%", model.GoalProgress(goal.ID, m.Tasks)),
			fmt.Sprintf("%d/%d", completed, total),
		})
	}
	m.goalsTable.SetRows(rows)
	if len(rows) > 0 && m.GoalList.Cursor < len(rows) {
		m.goalsTable.SetCursor(m.GoalList.Cursor)
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}

	if item, ok := m.currentReflection(); ok {
		md := item.Content
		if strings.TrimSpace(item.Learning) != "" {
			md += "\n\n**Learning:** " + item.Learning
		}
		if strings.TrimSpace(item.PreventiveMeasure) != "" {
			md += "\n\n**Preventive:** " + item.PreventiveMeasure
		}
		m.previewViewport.SetContent(views.RenderMarkdown(md))
	} else {
		m.previewViewport.SetContent("")
	}

	pct := 0.0
	if m.Sprint.DurationSec > 0 {
		pct = float64(m.Sprint.DurationSec-m.Sprint.RemainingSec) / float64(m.Sprint.DurationSec)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	_ = m.sprintProgress.SetPercent(pct)
}
