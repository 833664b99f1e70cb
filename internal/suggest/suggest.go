// Package suggest defines the boundary to the daily-plan suggestion
// collaborator. The app only cares about the suggestion shape; network
// backed planners live outside this repository and plug in through the
// Planner interface.
package suggest

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/sandeepkv93/nukecore/internal/model"
)

var ErrInvalidEnergy = errors.New("suggest: invalid energy")

type Energy string

const (
	EnergyHigh   Energy = "High"
	EnergyMedium Energy = "Medium"
	EnergyLow    Energy = "Low"
)

func (e Energy) IsValid() bool {
	switch e {
	case EnergyHigh, EnergyMedium, EnergyLow:
		return true
	default:
		return false
	}
}

// Suggestion is one candidate task proposed for the user's day.
type Suggestion struct {
	Title    string
	Energy   Energy
	Category string
}

// Planner produces suggestions from the user's free-text context and a
// mood label.
type Planner interface {
	SuggestPlan(ctx context.Context, userContext, mood string) ([]Suggestion, error)
}

// TaskStubs converts suggestions into candidate tasks. Importance,
// urgency, and duration are left at their neutral defaults for the user
// to tune; the stub is never scheduled until the user fills those in.
func TaskStubs(suggestions []Suggestion) []model.Task {
	out := make([]model.Task, 0, len(suggestions))
	for _, s := range suggestions {
		title := strings.TrimSpace(s.Title)
		if title == "" {
			continue
		}
		out = append(out, model.Task{
			ID:         uuid.NewString(),
			Title:      title,
			Completed:  false,
			Category:   s.Category,
			Importance: 5,
			Urgency:    5,
			Duration:   30,
		}.WithPriority())
	}
	return out
}

// HeuristicPlanner is the offline in-repo Planner: a small keyword
// heuristic over the mood label, good enough to exercise the flow
// without a network collaborator.
type HeuristicPlanner struct{}

func (HeuristicPlanner) SuggestPlan(_ context.Context, userContext, mood string) ([]Suggestion, error) {
	lowMood := strings.Contains(strings.ToLower(mood), "tired") ||
		strings.Contains(strings.ToLower(mood), "drained") ||
		strings.Contains(strings.ToLower(mood), "stressed")

	if lowMood {
		return []Suggestion{
			{Title: "Clear two small inbox items", Energy: EnergyLow, Category: "Admin"},
			{Title: "Ten-minute walk", Energy: EnergyLow, Category: "Health"},
			{Title: "Review tomorrow's schedule", Energy: EnergyMedium, Category: "Planning"},
		}, nil
	}

	focus := "current project"
	if trimmed := strings.TrimSpace(userContext); trimmed != "" {
		focus = trimmed
	}
	return []Suggestion{
		{Title: "Deep work block: " + focus, Energy: EnergyHigh, Category: "Work"},
		{Title: "Plan next milestone", Energy: EnergyMedium, Category: "Planning"},
		{Title: "Tidy notes from today", Energy: EnergyLow, Category: "Admin"},
	}, nil
}
