package model

import (
	"errors"
	"testing"
)

func TestComputePriorityKnownValues(t *testing.T) {
	cases := []struct {
		importance int
		urgency    int
		want       float64
	}{
		{5, 5, 5.0},
		{10, 1, 6.4},
		{1, 10, 4.6},
		{10, 10, 10.0},
		{1, 1, 1.0},
		{7, 3, 5.4},
	}
	for _, tc := range cases {
		got := ComputePriority(tc.importance, tc.urgency)
		if got != tc.want {
			t.Fatalf("ComputePriority(%d, %d) = %v, want %v", tc.importance, tc.urgency, got, tc.want)
		}
	}
}

func TestComputePriorityMonotonic(t *testing.T) {
	for urgency := RatingMin; urgency <= RatingMax; urgency++ {
		prev := ComputePriority(RatingMin, urgency)
		for importance := RatingMin + 1; importance <= RatingMax; importance++ {
			next := ComputePriority(importance, urgency)
			if next < prev {
				t.Fatalf("priority decreased raising importance %d->%d at urgency %d: %v -> %v", importance-1, importance, urgency, prev, next)
			}
			prev = next
		}
	}
	for importance := RatingMin; importance <= RatingMax; importance++ {
		prev := ComputePriority(importance, RatingMin)
		for urgency := RatingMin + 1; urgency <= RatingMax; urgency++ {
			next := ComputePriority(importance, urgency)
			if next < prev {
				t.Fatalf("priority decreased raising urgency %d->%d at importance %d: %v -> %v", urgency-1, urgency, importance, prev, next)
			}
			prev = next
		}
	}
}

func TestTaskWithPriorityOverwritesStaleScore(t *testing.T) {
	task := Task{ID: "task-1", Title: "Plan sprint", Importance: 8, Urgency: 4, PriorityScore: 1.0, Duration: 30}
	got := task.WithPriority()
	if got.PriorityScore != 6.4 {
		t.Fatalf("expected recomputed score 6.4, got %v", got.PriorityScore)
	}
	if task.PriorityScore != 1.0 {
		t.Fatalf("WithPriority must not mutate the receiver, got %v", task.PriorityScore)
	}
}

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{
		ID:         "task-1",
		Title:      "Draft strategy",
		Category:   "Work",
		Importance: 7,
		Urgency:    5,
		Duration:   45,
		StartTime:  "09:30",
		Date:       "2026-03-02",
		Subtasks:   []Subtask{{ID: "sub-1", Title: "Outline"}},
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRanges(t *testing.T) {
	base := Task{ID: "task-1", Title: "Check", Importance: 5, Urgency: 5, Duration: 30}

	task := base
	task.Importance = 11
	if err := task.Validate(); !errors.Is(err, ErrInvalidImportance) {
		t.Fatalf("expected ErrInvalidImportance, got: %v", err)
	}

	task = base
	task.Urgency = 0
	if err := task.Validate(); !errors.Is(err, ErrInvalidUrgency) {
		t.Fatalf("expected ErrInvalidUrgency, got: %v", err)
	}

	task = base
	task.Duration = 0
	if err := task.Validate(); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got: %v", err)
	}

	task = base
	task.StartTime = "25:00"
	if err := task.Validate(); !errors.Is(err, ErrInvalidStartTime) {
		t.Fatalf("expected ErrInvalidStartTime, got: %v", err)
	}

	task = base
	task.Date = "2026-3-2"
	if err := task.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got: %v", err)
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("23:59")
	if err != nil || h != 23 || m != 59 {
		t.Fatalf("ParseClock(23:59) = %d,%d,%v", h, m, err)
	}
	if _, _, err := ParseClock("9:xx"); !errors.Is(err, ErrInvalidStartTime) {
		t.Fatalf("expected ErrInvalidStartTime, got: %v", err)
	}
	if _, _, err := ParseClock("0930"); !errors.Is(err, ErrInvalidStartTime) {
		t.Fatalf("expected ErrInvalidStartTime, got: %v", err)
	}
}
