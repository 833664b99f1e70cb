package model

import (
	"errors"
	"math"
	"strings"
)

// NoDeadline is the sentinel stored when a goal has no target date.
const NoDeadline = "No Deadline"

type Goal struct {
	ID          string
	Title       string
	Description string
	Deadline    string
	Color       string
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return errors.New("model: goal id is required")
	}
	if strings.TrimSpace(g.Title) == "" {
		return errors.New("model: goal title is required")
	}
	if g.Deadline != "" && g.Deadline != NoDeadline {
		if err := ValidateDateString(g.Deadline); err != nil {
			return err
		}
	}
	return nil
}

// GoalProgress is the derived completion percentage for a goal: the share
// of its linked tasks that are completed, rounded to the nearest whole
// percent. A goal with no linked tasks is at 0. The value is never stored;
// callers recompute it from the current task collection on every read.
func GoalProgress(goalID string, tasks []Task) int {
	linked := 0
	completed := 0
	for _, t := range tasks {
		if t.GoalID != goalID || goalID == "" {
			continue
		}
		linked++
		if t.Completed {
			completed++
		}
	}
	if linked == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(linked) * 100))
}

// LinkedTaskCounts returns (completed, total) linked tasks for a goal.
func LinkedTaskCounts(goalID string, tasks []Task) (completed, total int) {
	for _, t := range tasks {
		if t.GoalID != goalID || goalID == "" {
			continue
		}
		total++
		if t.Completed {
			completed++
		}
	}
	return completed, total
}

// UnlinkGoal returns a new task slice with every reference to the goal
// cleared. Deleting a goal never deletes its tasks; consumers treat a
// dangling goal id as unlinked, and this keeps the working set tidy.
func UnlinkGoal(goalID string, tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.GoalID == goalID {
			t.GoalID = ""
		}
		out = append(out, t)
	}
	return out
}
