package update

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/nukecore/internal/clock"
	"github.com/sandeepkv93/nukecore/internal/model"
	"github.com/sandeepkv93/nukecore/internal/storage"
	"github.com/sandeepkv93/nukecore/internal/suggest"
)

func fixedModel(t *testing.T, at time.Time) Model {
	t.Helper()
	m := NewModel()
	m.Clock = clock.Fixed{At: at}
	m.Overview.SelectedDate = at.Format("2006-01-02")
	return m
}

func noon() time.Time {
	return time.Date(2024, 5, 10, 12, 0, 0, 0, time.Local)
}

func plannerTask(id, title string, importance, urgency int) model.Task {
	return model.Task{
		ID:         id,
		Title:      title,
		Importance: importance,
		Urgency:    urgency,
		Duration:   30,
	}.WithPriority()
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel()
	if m.CurrentView != ViewOverview {
		t.Fatalf("expected default view %q, got %q", ViewOverview, m.CurrentView)
	}
	if m.Overview.Scale != 2.0 {
		t.Fatalf("expected default scale 2.0, got %v", m.Overview.Scale)
	}
	if m.Sprint.DurationSec != 25*60 {
		t.Fatalf("expected 25 minute sprint, got %d sec", m.Sprint.DurationSec)
	}
	if m.Sprint.Sound() != "Silence" {
		t.Fatalf("expected default ambience Silence, got %q", m.Sprint.Sound())
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := NewModel()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	next := updated.(Model)
	if next.CurrentView != ViewTasks {
		t.Fatalf("expected tasks view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}})
	next = updated.(Model)
	if next.CurrentView != ViewSprint {
		t.Fatalf("expected sprint view, got %q", next.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m := NewModel()
	updated, _ := m.Update(SwitchViewMsg{View: ViewGoals})
	next := updated.(Model)
	if next.CurrentView != ViewGoals {
		t.Fatalf("expected goals view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewGoals {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := NewModel()
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	errMsg := errors.New("boom")
	updated, _ = next.Update(AppErrorMsg{Err: errMsg})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m := NewModel()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m := fixedModel(t, noon())
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	if !strings.Contains(out, "view: Overview") {
		t.Fatalf("expected view text in output: %q", out)
	}
	if !strings.Contains(out, "2024-05-10") {
		t.Fatalf("expected selected date in output: %q", out)
	}
	if !strings.Contains(out, "status: all good") {
		t.Fatalf("expected status in output: %q", out)
	}
}

func TestDateStripHasFourteenDays(t *testing.T) {
	m := fixedModel(t, noon())
	strip := m.dateStripDates()
	if len(strip) != 14 {
		t.Fatalf("expected 14 strip days, got %d", len(strip))
	}
	if strip[0] != "2024-05-10" {
		t.Fatalf("expected strip to start today, got %q", strip[0])
	}
	if strip[13] != "2024-05-23" {
		t.Fatalf("expected strip to end 13 days out, got %q", strip[13])
	}
}

func TestOverviewDateNavigationClamps(t *testing.T) {
	m := fixedModel(t, noon())

	next := m.handleOverviewKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if next.Overview.SelectedDate != "2024-05-11" {
		t.Fatalf("expected next day selected, got %q", next.Overview.SelectedDate)
	}

	// Back past the strip start stays on today.
	next = next.handleOverviewKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	next = next.handleOverviewKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	if next.Overview.SelectedDate != "2024-05-10" {
		t.Fatalf("expected clamp at today, got %q", next.Overview.SelectedDate)
	}
}

func TestOverviewZoomClamps(t *testing.T) {
	m := fixedModel(t, noon())

	next := m.handleOverviewKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if next.Overview.Scale != 2.5 {
		t.Fatalf("expected scale 2.5 after zoom in, got %v", next.Overview.Scale)
	}
	for i := 0; i < 10; i++ {
		next = next.handleOverviewKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	}
	if next.Overview.Scale != 1.0 {
		t.Fatalf("expected scale clamped at 1.0, got %v", next.Overview.Scale)
	}
	for i := 0; i < 10; i++ {
		next = next.handleOverviewKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	}
	if next.Overview.Scale != 4.0 {
		t.Fatalf("expected scale clamped at 4.0, got %v", next.Overview.Scale)
	}
}

func TestToggleTaskUpdatesStatsAndKeepsOldSlice(t *testing.T) {
	m := fixedModel(t, noon())
	m.CurrentView = ViewTasks
	m.Tasks = []model.Task{plannerTask("t1", "Write report", 8, 8)}
	before := m.Tasks

	next := m.handleTasksKey(tea.KeyMsg{Type: tea.KeySpace})
	if !next.Tasks[0].Completed {
		t.Fatal("expected task completed after toggle")
	}
	if next.Stats.TasksCompleted != 1 {
		t.Fatalf("expected 1 completed, got %d", next.Stats.TasksCompleted)
	}
	if before[0].Completed {
		t.Fatal("toggle mutated the previous slice")
	}

	next = next.handleTasksKey(tea.KeyMsg{Type: tea.KeySpace})
	if next.Tasks[0].Completed {
		t.Fatal("expected task reopened after second toggle")
	}
	if next.Stats.TasksCompleted != 0 {
		t.Fatalf("expected completed count back to 0, got %d", next.Stats.TasksCompleted)
	}

	// Floor at zero even if the reopen count would go negative.
	next.Stats.TasksCompleted = 0
	next.Tasks = []model.Task{func() model.Task {
		task := plannerTask("t2", "Imported as done", 5, 5)
		task.Completed = true
		return task
	}()}
	next.Planner.Cursor = 0
	next = next.handleTasksKey(tea.KeyMsg{Type: tea.KeySpace})
	if next.Stats.TasksCompleted != 0 {
		t.Fatalf("expected floor-0 decrement, got %d", next.Stats.TasksCompleted)
	}
}

func TestPlannerSortsByPriorityDescending(t *testing.T) {
	m := NewModel()
	m.Tasks = []model.Task{
		plannerTask("low", "Low", 1, 1),
		plannerTask("high", "High", 10, 10),
		plannerTask("mid", "Mid", 5, 5),
	}
	sorted := m.sortedPlannerTasks()
	if sorted[0].ID != "high" || sorted[1].ID != "mid" || sorted[2].ID != "low" {
		t.Fatalf("unexpected planner order: %s %s %s", sorted[0].ID, sorted[1].ID, sorted[2].ID)
	}
}

func TestTaskFormValidationMessages(t *testing.T) {
	m := fixedModel(t, noon())

	m.TaskForm = defaultTaskForm(m.Clock)
	m.TaskForm.Title = ""
	if got := m.taskFormValidation(); got != "Title is required" {
		t.Fatalf("expected title validation, got %q", got)
	}

	m.TaskForm.Title = "Ship it"
	m.TaskForm.Date = "2024-05-09"
	if got := m.taskFormValidation(); got != "Cannot schedule in the past" {
		t.Fatalf("expected past-date validation, got %q", got)
	}

	m.TaskForm.Date = "2024-05-10"
	m.TaskForm.StartTime = "11:00"
	if got := m.taskFormValidation(); got != "Cannot schedule time in the past" {
		t.Fatalf("expected past-time validation, got %q", got)
	}

	m.TaskForm.Date = "2024-05-11"
	m.TaskForm.StartTime = "23:30"
	if got := m.taskFormValidation(); got != "Restricted: Sleep Cycle (23:00 - 06:00)" {
		t.Fatalf("expected sleep-window validation, got %q", got)
	}

	m.TaskForm.StartTime = "14:00"
	if got := m.taskFormValidation(); got != "" {
		t.Fatalf("expected valid form, got %q", got)
	}
}

func TestSubmitTaskFormAddsTaskWithDerivedPriority(t *testing.T) {
	m := fixedModel(t, noon())
	m.TaskForm = defaultTaskForm(m.Clock)
	m.TaskForm.Active = true
	m.TaskForm.Title = "Deep work"
	m.TaskForm.StartTime = "14:00"
	m.TaskForm.Importance = 10
	m.TaskForm.Urgency = 1
	m.TaskForm.Subtasks = []string{"outline", "draft"}

	m.submitTaskForm()

	if len(m.Tasks) != 1 {
		t.Fatalf("expected 1 task after submit, got %d", len(m.Tasks))
	}
	task := m.Tasks[0]
	if task.PriorityScore != 6.4 {
		t.Fatalf("expected derived priority 6.4, got %v", task.PriorityScore)
	}
	if len(task.Subtasks) != 2 || task.Subtasks[0].Title != "outline" {
		t.Fatalf("unexpected subtasks: %+v", task.Subtasks)
	}
	if m.TaskForm.Active {
		t.Fatal("expected form closed after submit")
	}
}

func TestSubmitTaskFormKeepsSubtaskCompletionOnEdit(t *testing.T) {
	m := fixedModel(t, noon())
	task := plannerTask("t1", "Refactor", 5, 5)
	task.Subtasks = []model.Subtask{
		{ID: "s1", Title: "tests", Completed: true},
		{ID: "s2", Title: "docs"},
	}
	m.Tasks = []model.Task{task}

	m.openTaskForm(task)
	m.TaskForm.Title = "Refactor storage"
	m.submitTaskForm()

	got := m.Tasks[0]
	if got.Title != "Refactor storage" {
		t.Fatalf("expected edited title, got %q", got.Title)
	}
	if !got.Subtasks[0].Completed || got.Subtasks[0].ID != "s1" {
		t.Fatalf("expected first subtask preserved, got %+v", got.Subtasks[0])
	}
}

func TestSprintTickCountsDownAndCredits(t *testing.T) {
	m := NewModel()
	m.Sprint.Running = true
	m.Sprint.RemainingSec = 2

	updated, cmd := m.Update(SprintTickMsg{})
	next := updated.(Model)
	if next.Sprint.RemainingSec != 1 || cmd == nil {
		t.Fatalf("expected countdown continue, remaining=%d", next.Sprint.RemainingSec)
	}

	updated, cmd = next.Update(SprintTickMsg{})
	next = updated.(Model)
	if next.Sprint.Running {
		t.Fatal("expected sprint stopped at zero")
	}
	if cmd != nil {
		t.Fatal("expected no further tick after completion")
	}
	if next.Stats.FocusMinutes != 25 {
		t.Fatalf("expected 25 focus minutes credited, got %d", next.Stats.FocusMinutes)
	}
}

func TestClockTickIsIndependentOfSprint(t *testing.T) {
	m := NewModel()
	m.Sprint.Running = true
	m.Sprint.RemainingSec = 10

	updated, cmd := m.Update(ClockTickMsg{})
	next := updated.(Model)
	if cmd == nil {
		t.Fatal("expected clock tick to re-arm")
	}
	if next.Sprint.RemainingSec != 10 {
		t.Fatalf("clock tick must not advance sprint, remaining=%d", next.Sprint.RemainingSec)
	}
}

func TestSprintSoundCycles(t *testing.T) {
	m := NewModel()
	next, _ := m.handleSprintKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if next.Sprint.Sound() != "Rain" {
		t.Fatalf("expected Rain after one cycle, got %q", next.Sprint.Sound())
	}
	for i := 0; i < 5; i++ {
		next, _ = next.handleSprintKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	}
	if next.Sprint.Sound() != "Silence" {
		t.Fatalf("expected wrap back to Silence, got %q", next.Sprint.Sound())
	}
}

func TestPaletteAddCommand(t *testing.T) {
	m := fixedModel(t, noon())
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	next := updated.(Model)
	if !next.Palette.Active {
		t.Fatal("expected palette active")
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("add Ship the release")})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Palette.Active {
		t.Fatal("expected palette closed after execute")
	}
	if len(next.Tasks) != 1 || next.Tasks[0].Title != "Ship the release" {
		t.Fatalf("expected added task, got %+v", next.Tasks)
	}
	if next.Tasks[0].PriorityScore != 5.0 {
		t.Fatalf("expected default priority 5.0, got %v", next.Tasks[0].PriorityScore)
	}
	if next.CurrentView != ViewTasks {
		t.Fatalf("expected jump to tasks view, got %q", next.CurrentView)
	}
}

func TestPaletteDateAndZoomCommands(t *testing.T) {
	m := fixedModel(t, noon())
	m.Palette.Active = true
	m.Palette.Input = "date tomorrow"
	next, _ := m.executePaletteCommand()
	if next.Overview.SelectedDate != "2024-05-11" {
		t.Fatalf("expected tomorrow selected, got %q", next.Overview.SelectedDate)
	}

	next.Palette.Active = true
	next.Palette.Input = "zoom out"
	next, _ = next.executePaletteCommand()
	if next.Overview.Scale != 1.5 {
		t.Fatalf("expected scale 1.5 after zoom out, got %v", next.Overview.Scale)
	}
}

func TestPaletteUnknownCommandSetsErrorStatus(t *testing.T) {
	m := NewModel()
	m.Palette.Active = true
	m.Palette.Input = "frobnicate now"
	next, _ := m.executePaletteCommand()
	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
}

func TestSuggestionsAcceptedAsTaskStubs(t *testing.T) {
	m := fixedModel(t, noon())
	m.CurrentView = ViewTasks

	updated, _ := m.Update(SuggestionsReadyMsg{
		Mood: "tired",
		Items: []suggest.Suggestion{
			{Title: "Clear your inbox", Energy: suggest.EnergyLow, Category: "admin"},
			{Title: "Tidy the desk", Energy: suggest.EnergyLow, Category: "environment"},
		},
	})
	next := updated.(Model)
	if next.Suggestions.Pending {
		t.Fatal("expected pending cleared")
	}
	if len(next.Suggestions.Items) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(next.Suggestions.Items))
	}

	next = next.handleTasksKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if len(next.Tasks) != 2 {
		t.Fatalf("expected 2 stub tasks, got %d", len(next.Tasks))
	}
	if next.Tasks[0].Completed || next.Tasks[0].PriorityScore != 5.0 {
		t.Fatalf("unexpected stub: %+v", next.Tasks[0])
	}
	if len(next.Suggestions.Items) != 0 {
		t.Fatal("expected suggestions cleared after accept")
	}
}

func TestGoalDeleteKeepsTasksUnlinked(t *testing.T) {
	m := fixedModel(t, noon())
	m.CurrentView = ViewGoals
	m.Goals = []model.Goal{{ID: "g1", Title: "Launch", Deadline: model.NoDeadline}}
	task := plannerTask("t1", "Build", 5, 5)
	task.GoalID = "g1"
	m.Tasks = []model.Task{task}

	next := m.handleGoalsKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if len(next.Goals) != 0 {
		t.Fatalf("expected goal removed, got %d", len(next.Goals))
	}
	if len(next.Tasks) != 1 {
		t.Fatal("expected task to survive goal deletion")
	}
	if next.Tasks[0].GoalID != "" {
		t.Fatalf("expected task unlinked, got goal %q", next.Tasks[0].GoalID)
	}
}

func TestReflectionsNewestFirst(t *testing.T) {
	m := fixedModel(t, noon())
	m.ReflectionForm = ReflectionFormState{Active: true}
	m.reflectionArea.SetValue("first entry")
	m.submitReflectionForm()

	m.ReflectionForm = ReflectionFormState{Active: true}
	m.reflectionArea.SetValue("second entry")
	m.submitReflectionForm()

	if m.Status.IsError {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}
	if len(m.Reflections) != 2 {
		t.Fatalf("expected 2 reflections, got %d", len(m.Reflections))
	}
	if m.Reflections[0].Content != "second entry" {
		t.Fatalf("expected newest first, got %q", m.Reflections[0].Content)
	}
	if m.Reflections[0].ID == "" {
		t.Fatal("expected generated id on form-created reflection")
	}
	if m.Reflections[0].Date != "2024-05-10" {
		t.Fatalf("expected entry dated today, got %q", m.Reflections[0].Date)
	}
}

func TestUpdateReturnsModelWithSyncedComponents(t *testing.T) {
	m := fixedModel(t, noon())
	updated, _ := m.Update(SetTasksMsg{Tasks: []model.Task{
		plannerTask("t1", "Write report", 5, 5),
	}})
	next := updated.(Model)
	if got := len(next.tasksList.Items()); got != 1 {
		t.Fatalf("expected 1 planner list item on the returned model, got %d", got)
	}
}

func TestTaskFormTypingReachesField(t *testing.T) {
	m := fixedModel(t, noon())
	m.openTaskForm(model.Task{})
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'W'}})
	next := updated.(Model)
	if next.TaskForm.Title != "W" {
		t.Fatalf("expected typed rune committed to title, got %q", next.TaskForm.Title)
	}
}

func TestPersistReflectionStampsCreationTime(t *testing.T) {
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	if _, err := storage.MigrateUp(repo.DB()); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	m := fixedModel(t, noon())
	m.repo = repo
	m.persistReflection(model.Reflection{ID: "r1", Date: "2024-05-10", Content: "first"})
	m.Clock = clock.Fixed{At: noon().Add(time.Minute)}
	m.persistReflection(model.Reflection{ID: "r2", Date: "2024-05-10", Content: "second"})
	if m.Status.IsError {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}

	listed, err := repo.ListReflections(context.Background(), storage.ReflectionListFilter{})
	if err != nil {
		t.Fatalf("list reflections: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 stored reflections, got %d", len(listed))
	}
	if listed[0].ID != "r2" {
		t.Fatalf("expected newest reflection first after reload, got %q", listed[0].ID)
	}
	for _, r := range listed {
		if r.CreatedAt.IsZero() {
			t.Fatalf("expected non-zero created_at on %q", r.ID)
		}
	}
}

func TestStatsRoundTrip(t *testing.T) {
	path := t.TempDir() + "/stats.json"
	want := UserStats{TasksCompleted: 3, FocusMinutes: 75, Streak: 2, XP: 140}
	if err := saveUserStats(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := loadUserStats(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got != want {
		t.Fatalf("stats round trip: expected %+v, got %+v", want, got)
	}
}
