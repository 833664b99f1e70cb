package update

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/nukecore/internal/alerts"
	"github.com/sandeepkv93/nukecore/internal/clock"
	"github.com/sandeepkv93/nukecore/internal/model"
	"github.com/sandeepkv93/nukecore/internal/storage"
	"github.com/sandeepkv93/nukecore/internal/suggest"
	"github.com/sandeepkv93/nukecore/internal/timeline"
)

type View string

const (
	ViewOverview    View = "Overview"
	ViewTasks       View = "Tasks"
	ViewGoals       View = "Goals"
	ViewReflections View = "Reflections"
	ViewSprint      View = "Sprint"
)

const dateStripDays = 14

var ambientSounds = []string{"Silence", "Rain", "Forest", "Space", "Cafe", "Ocean"}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Overview    string
	Tasks       string
	Goals       string
	Reflections string
	Sprint      string
	Help        string
	Quit        string
}

type OverviewState struct {
	SelectedDate string
	Scale        float64
	Cursor       int
}

type TasksState struct {
	Cursor    int
	SubCursor int
}

type taskFormField int

const (
	fieldTitle taskFormField = iota
	fieldCategory
	fieldGoal
	fieldDate
	fieldTime
	fieldDuration
	fieldImportance
	fieldUrgency
	fieldSubtask
	taskFormFieldCount
)

type TaskFormState struct {
	Active     bool
	EditingID  string
	Title      string
	Category   string
	GoalID     string
	Date       string
	StartTime  string
	Duration   string
	Importance int
	Urgency    int
	Subtasks   []string
	Field      taskFormField
}

type GoalsState struct {
	Cursor int
}

type goalFormField int

const (
	goalFieldTitle goalFormField = iota
	goalFieldDescription
	goalFieldDeadline
	goalFormFieldCount
)

type GoalFormState struct {
	Active      bool
	EditingID   string
	Title       string
	Description string
	Deadline    string
	Field       goalFormField
}

type ReflectionsState struct {
	Cursor int
}

type reflectionFormField int

const (
	reflectionFieldContent reflectionFormField = iota
	reflectionFieldLearning
	reflectionFieldPreventive
	reflectionFormFieldCount
)

type ReflectionFormState struct {
	Active     bool
	EditingID  string
	Learning   string
	Preventive string
	Field      reflectionFormField
}

type SprintState struct {
	DurationSec  int
	RemainingSec int
	Running      bool
	SoundIndex   int
}

func (s SprintState) Sound() string {
	if s.SoundIndex < 0 || s.SoundIndex >= len(ambientSounds) {
		return ambientSounds[0]
	}
	return ambientSounds[s.SoundIndex]
}

type UserStats struct {
	TasksCompleted int
	FocusMinutes   int
	Streak         int
	XP             int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type SuggestionState struct {
	Mood    string
	Items   []suggest.Suggestion
	Pending bool
}

type Model struct {
	CurrentView    View
	SelectedTaskID string
	Tasks          []model.Task
	Goals          []model.Goal
	Reflections    []model.Reflection
	Overview       OverviewState
	Planner        TasksState
	TaskForm       TaskFormState
	GoalList       GoalsState
	GoalForm       GoalFormState
	Journal        ReflectionsState
	ReflectionForm ReflectionFormState
	Sprint         SprintState
	Stats          UserStats
	Suggestions    SuggestionState
	Alerts         *alerts.Engine
	AlertLog       []alerts.Alert
	Palette        CommandPaletteState
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	Clock          clock.Clock
	repo           storage.Repository
	planner        suggest.Planner
	statsFilePath  string
	// Bubble components used for rich TUI controls
	tasksList       list.Model
	goalsTable      table.Model
	commandInput    textinput.Model
	formInput       textinput.Model
	reflectionArea  textarea.Model
	sprintProgress  progress.Model
	planSpinner     spinner.Model
	helpModel       help.Model
	previewViewport viewport.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type ClockTickMsg struct{}

type SprintTickMsg struct{}

type AlertDueMsg struct {
	Alert alerts.Alert
}

type SetTasksMsg struct {
	Tasks []model.Task
}

type SuggestionsReadyMsg struct {
	Mood  string
	Items []suggest.Suggestion
	Err   error
}

func NewModel() Model {
	clk := clock.System{}
	m := Model{
		CurrentView: ViewOverview,
		Clock:       clk,
		Overview: OverviewState{
			SelectedDate: clock.DateString(clk),
			Scale:        timeline.ClampScale(2.0),
		},
		TaskForm: defaultTaskForm(clk),
		Sprint: SprintState{
			DurationSec:  25 * 60,
			RemainingSec: 25 * 60,
		},
		planner: suggest.HeuristicPlanner{},
		Keys: GlobalKeyMap{
			Overview:    "1",
			Tasks:       "2",
			Goals:       "3",
			Reflections: "4",
			Sprint:      "5",
			Help:        "?",
			Quit:        "q",
		},
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func NewModelWithConfig(repo storage.Repository, engine *alerts.Engine, clk clock.Clock, cfg RuntimeConfig) Model {
	m := NewModel()
	m.repo = repo
	m.Alerts = engine
	if clk != nil {
		m.Clock = clk
		m.Overview.SelectedDate = clock.DateString(clk)
		m.TaskForm = defaultTaskForm(clk)
	}
	if cfg.SprintMinutes > 0 {
		m.Sprint.DurationSec = cfg.SprintMinutes * 60
		m.Sprint.RemainingSec = m.Sprint.DurationSec
	}
	if cfg.TimelineScale > 0 {
		m.Overview.Scale = timeline.ClampScale(cfg.TimelineScale)
	}
	m.statsFilePath = strings.TrimSpace(cfg.StatsPath)
	if m.statsFilePath != "" {
		if stats, err := loadUserStats(m.statsFilePath); err == nil {
			m.Stats = stats
		}
	}
	if repo != nil {
		if err := m.loadFromRepository(); err != nil {
			m.Status = StatusBar{Text: "load failed: " + err.Error(), IsError: true}
		}
	}
	m.syncBubbleData()
	return m
}

func defaultTaskForm(clk clock.Clock) TaskFormState {
	return TaskFormState{
		Date:       clock.DateString(clk),
		Duration:   "30",
		Importance: 5,
		Urgency:    5,
	}
}
