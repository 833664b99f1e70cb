package storage

import "time"

type Task struct {
	ID            string
	Title         string
	Completed     bool
	Category      string
	Importance    int
	Urgency       int
	PriorityScore float64
	DurationMin   int
	GoalID        string
	StartTime     string
	Date          string
	Subtasks      []Subtask
	CreatedAt     time.Time
}

type Subtask struct {
	ID        string
	TaskID    string
	Title     string
	Completed bool
	Position  int
}

type Goal struct {
	ID          string
	Title       string
	Description string
	Deadline    string
	Color       string
	CreatedAt   time.Time
}

type Reflection struct {
	ID                string
	Date              string
	Content           string
	Learning          string
	PreventiveMeasure string
	CreatedAt         time.Time
}

type TaskListFilter struct {
	Date      string
	GoalID    string
	Completed *bool
	Limit     int
	Offset    int
}

type GoalListFilter struct {
	Limit  int
	Offset int
}

type ReflectionListFilter struct {
	Limit  int
	Offset int
}
