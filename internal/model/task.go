package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidImportance = errors.New("model: importance out of range")
	ErrInvalidUrgency    = errors.New("model: urgency out of range")
	ErrInvalidDuration   = errors.New("model: duration must be positive")
	ErrInvalidStartTime  = errors.New("model: invalid start time")
	ErrInvalidDate       = errors.New("model: invalid date")
)

const (
	// ImportanceWeight and UrgencyWeight define the priority split:
	// importance carries 60% of the score, urgency the remaining 40%.
	ImportanceWeight = 0.6
	UrgencyWeight    = 0.4

	RatingMin = 1
	RatingMax = 10
)

// ComputePriority maps an (importance, urgency) pair to a weighted score
// rounded to one decimal place. It is pure; the stored PriorityScore on a
// task must always be overwritten from it, never hand-set.
func ComputePriority(importance, urgency int) float64 {
	raw := float64(importance)*ImportanceWeight + float64(urgency)*UrgencyWeight
	return math.Round(raw*10) / 10
}

type Subtask struct {
	ID        string
	Title     string
	Completed bool
}

type Task struct {
	ID            string
	Title         string
	Completed     bool
	Category      string
	Importance    int
	Urgency       int
	PriorityScore float64
	Duration      int
	GoalID        string
	StartTime     string
	Date          string
	Subtasks      []Subtask
}

// Scheduled reports whether the task carries both a date and a start time
// and so is eligible for timeline placement.
func (t Task) Scheduled() bool {
	return t.Date != "" && t.StartTime != ""
}

// WithPriority returns a copy of the task with PriorityScore recomputed
// from its importance and urgency.
func (t Task) WithPriority() Task {
	t.PriorityScore = ComputePriority(t.Importance, t.Urgency)
	return t
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if t.Importance < RatingMin || t.Importance > RatingMax {
		return fmt.Errorf("%w: %d", ErrInvalidImportance, t.Importance)
	}
	if t.Urgency < RatingMin || t.Urgency > RatingMax {
		return fmt.Errorf("%w: %d", ErrInvalidUrgency, t.Urgency)
	}
	if t.Duration <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, t.Duration)
	}
	if t.StartTime != "" {
		if _, _, err := ParseClock(t.StartTime); err != nil {
			return err
		}
	}
	if t.Date != "" {
		if err := ValidateDateString(t.Date); err != nil {
			return err
		}
	}
	for _, sub := range t.Subtasks {
		if strings.TrimSpace(sub.ID) == "" {
			return errors.New("model: subtask id is required")
		}
		if strings.TrimSpace(sub.Title) == "" {
			return errors.New("model: subtask title is required")
		}
	}
	return nil
}

// ParseClock splits an "HH:MM" 24-hour string into hour and minute.
func ParseClock(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, value)
	}
	return hour, minute, nil
}

// ValidateDateString checks the fixed-width "YYYY-MM-DD" form. The
// zero-padded layout is what makes lexicographic date comparison valid
// across the scheduling code.
func ValidateDateString(value string) error {
	parts := strings.Split(value, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	for _, part := range parts {
		if _, err := strconv.Atoi(part); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, value)
		}
	}
	return nil
}
