package views

import (
	"fmt"
	"strings"
)

type DateStripDayData struct {
	Date     string
	Label    string
	Selected bool
	IsToday  bool
}

type TimelineTaskData struct {
	ID          string
	Title       string
	StartTime   string
	DurationMin int
	Lane        int
	TotalLanes  int
	Category    string
	Priority    float64
	Selected    bool
}

type TimelinePanelData struct {
	SelectedDate string
	DateStrip    []DateStripDayData
	Scale        float64
	Tasks        []TimelineTaskData
	SleepLabel   string
	NowLabel     string
	NowVisible   bool
}

type SubtaskRowData struct {
	Title     string
	Completed bool
}

type TaskRowData struct {
	ID        string
	Title     string
	Completed bool
	Priority  float64
	Category  string
	GoalTitle string
	Scheduled string
	Subtasks  []SubtaskRowData
}

type TasksPanelData struct {
	ListView   string
	Tasks      []TaskRowData
	SelectedID string
}

type TaskFormData struct {
	Active     bool
	EditingID  string
	Title      string
	Category   string
	GoalTitle  string
	Date       string
	StartTime  string
	Duration   string
	Importance int
	Urgency    int
	Priority   float64
	Subtasks   []string
	Field      string
	Validation string
	CanSubmit  bool
	InputView  string
}

type GoalRowData struct {
	ID        string
	Title     string
	Deadline  string
	Progress  int
	Completed int
	Linked    int
	Bar       string
}

type GoalsPanelData struct {
	Goals      []GoalRowData
	SelectedID string
	FormView   string
}

type ReflectionRowData struct {
	ID      string
	Date    string
	Content string
}

type ReflectionsPanelData struct {
	Items        []ReflectionRowData
	SelectedID   string
	MarkdownView string
	EditorView   string
	FormActive   bool
}

type SprintPanelData struct {
	Timer          string
	Running        bool
	ProgressView   string
	ProgressPct    int
	Sound          string
	DurationMin    int
	FocusMinutes   int
	TasksCompleted int
	Streak         int
	XP             int
}

type SuggestionRowData struct {
	Title    string
	Energy   string
	Category string
}

type SuggestionsPanelData struct {
	Mood        string
	Items       []SuggestionRowData
	Pending     bool
	SpinnerView string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTimelinePanel(data TimelinePanelData) string {
	var b strings.Builder
	b.WriteString("overview:\n")
	b.WriteString(renderDateStrip(data.DateStrip) + "\n")
	b.WriteString(fmt.Sprintf("date: %s | zoom: %.1fx | grid: 06:00-24:00\n", data.SelectedDate, data.Scale))
	b.WriteString("actions: [h/l]day [t]today [+/-]zoom [j/k]task\n")
	if len(data.Tasks) == 0 {
		b.WriteString("(nothing scheduled)\n")
	}
	for _, task := range data.Tasks {
		cursor := " "
		if task.Selected {
			cursor = ">"
		}
		lane := ""
		if task.TotalLanes > 1 {
			lane = fmt.Sprintf(" lane %d/%d", task.Lane+1, task.TotalLanes)
		}
		b.WriteString(fmt.Sprintf("%s %s %s (%dm, p%.1f)%s\n", cursor, task.StartTime, task.Title, task.DurationMin, task.Priority, lane))
	}
	if data.NowVisible {
		b.WriteString(fmt.Sprintf("now: %s %s\n", data.NowLabel, strings.Repeat("-", 24)))
	}
	b.WriteString(data.SleepLabel)
	return strings.TrimSpace(b.String())
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("planner:\n")
	b.WriteString("actions: [j/k]move [space]done [a]new [e]edit [d]delete [tab]subtask\n")
	b.WriteString(data.ListView + "\n")
	if len(data.Tasks) == 0 {
		b.WriteString("(no tasks yet; press a to add one)")
		return strings.TrimSpace(b.String())
	}
	for _, task := range data.Tasks {
		cursor := " "
		if task.ID == data.SelectedID {
			cursor = ">"
		}
		check := "[ ]"
		if task.Completed {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %.1f %s", cursor, check, task.Priority, task.Title))
		if task.Category != "" {
			b.WriteString(" #" + task.Category)
		}
		if task.GoalTitle != "" {
			b.WriteString(" goal:" + task.GoalTitle)
		}
		if task.Scheduled != "" {
			b.WriteString(" @" + task.Scheduled)
		}
		b.WriteString("\n")
		for _, sub := range task.Subtasks {
			subCheck := "[ ]"
			if sub.Completed {
				subCheck = "[x]"
			}
			b.WriteString(fmt.Sprintf("    %s %s\n", subCheck, sub.Title))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskCreator(data TaskFormData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	if data.EditingID != "" {
		b.WriteString("edit task:\n")
	} else {
		b.WriteString("new task:\n")
	}
	b.WriteString("keys: [tab]field [enter]save [esc]cancel\n")
	b.WriteString(data.InputView + "\n")
	fields := []struct {
		name  string
		value string
	}{
		{"title", data.Title},
		{"category", data.Category},
		{"goal", data.GoalTitle},
		{"date", data.Date},
		{"time", data.StartTime},
		{"duration", data.Duration},
		{"importance", fmt.Sprintf("%d", data.Importance)},
		{"urgency", fmt.Sprintf("%d", data.Urgency)},
	}
	for _, f := range fields {
		marker := " "
		if f.name == data.Field {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", marker, f.name, f.value))
	}
	b.WriteString(fmt.Sprintf("priority: %.1f\n", data.Priority))
	if len(data.Subtasks) > 0 {
		b.WriteString("subtasks:\n")
		for _, sub := range data.Subtasks {
			b.WriteString("- " + sub + "\n")
		}
	}
	if data.Validation != "" {
		b.WriteString("error: " + data.Validation + "\n")
	}
	if data.CanSubmit {
		b.WriteString("ready to save")
	} else {
		b.WriteString("cannot save yet")
	}
	return strings.TrimSpace(b.String())
}

func RenderGoalsPanel(data GoalsPanelData) string {
	var b strings.Builder
	b.WriteString("big picture:\n")
	b.WriteString("actions: [j/k]move [a]new [e]edit [d]delete\n")
	if len(data.Goals) == 0 && data.FormView == "" {
		b.WriteString("(no goals yet)")
		return strings.TrimSpace(b.String())
	}
	for _, goal := range data.Goals {
		cursor := " "
		if goal.ID == data.SelectedID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s (%s)\n", cursor, goal.Title, goal.Deadline))
		b.WriteString(fmt.Sprintf("  %s %d%% (%d/%d tasks)\n", goal.Bar, goal.Progress, goal.Completed, goal.Linked))
	}
	if data.FormView != "" {
		b.WriteString("\n" + data.FormView)
	}
	return strings.TrimSpace(b.String())
}

func RenderReflectionsPanel(data ReflectionsPanelData) string {
	var b strings.Builder
	b.WriteString("reflections:\n")
	b.WriteString("actions: [j/k]move [a]new [e]edit [d]delete\n")
	if data.FormActive {
		b.WriteString("editor:\n" + data.EditorView + "\n")
		b.WriteString("keys: [ctrl+s]save [esc]cancel\n")
	}
	if len(data.Items) == 0 && !data.FormActive {
		b.WriteString("(journal is empty)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if item.ID == data.SelectedID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, item.Date, firstLine(item.Content)))
	}
	if data.MarkdownView != "" {
		b.WriteString("\npreview:\n" + data.MarkdownView)
	}
	return strings.TrimSpace(b.String())
}

func RenderSprintPanel(data SprintPanelData) string {
	var b strings.Builder
	b.WriteString("sprint:\n")
	state := "paused"
	if data.Running {
		state = "running"
	}
	b.WriteString(fmt.Sprintf("timer: %s (%s, %dm session)\n", data.Timer, state, data.DurationMin))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("ambience: %s\n", data.Sound))
	b.WriteString("actions: [space]start/pause [r]reset [s]sound\n")
	b.WriteString("stats:\n")
	b.WriteString(fmt.Sprintf("  tasks completed: %d\n", data.TasksCompleted))
	b.WriteString(fmt.Sprintf("  focus minutes: %d\n", data.FocusMinutes))
	b.WriteString(fmt.Sprintf("  streak: %d | xp: %d", data.Streak, data.XP))
	return strings.TrimSpace(b.String())
}

func RenderSuggestionsPanel(data SuggestionsPanelData) string {
	if !data.Pending && len(data.Items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nsuggested plan")
	if data.Mood != "" {
		b.WriteString(fmt.Sprintf(" (mood: %s)", data.Mood))
	}
	b.WriteString(":\n")
	if data.Pending {
		b.WriteString("thinking " + data.SpinnerView + "\n")
	}
	for _, item := range data.Items {
		b.WriteString(fmt.Sprintf("- %s [%s] #%s\n", item.Title, item.Energy, item.Category))
	}
	if len(data.Items) > 0 {
		b.WriteString("press [y] to add these as tasks")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func renderDateStrip(days []DateStripDayData) string {
	parts := make([]string, 0, len(days))
	for _, day := range days {
		label := day.Label
		if day.IsToday {
			label = label + "*"
		}
		if day.Selected {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	return "dates: " + strings.Join(parts, " ")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	if len(s) > 48 {
		s = s[:48] + "..."
	}
	return s
}
