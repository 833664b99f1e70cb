package suggest

import (
	"context"
	"testing"
)

func TestTaskStubsDefaults(t *testing.T) {
	stubs := TaskStubs([]Suggestion{
		{Title: "Deep work block", Energy: EnergyHigh, Category: "Work"},
		{Title: "   ", Energy: EnergyLow, Category: "Admin"},
	})
	if len(stubs) != 1 {
		t.Fatalf("expected blank-titled suggestion dropped, got %d stubs", len(stubs))
	}
	stub := stubs[0]
	if stub.Completed {
		t.Fatal("expected stub to start incomplete")
	}
	if stub.ID == "" {
		t.Fatal("expected stub to receive an id")
	}
	if stub.Importance != 5 || stub.Urgency != 5 || stub.Duration != 30 {
		t.Fatalf("unexpected stub defaults: %#v", stub)
	}
	if stub.PriorityScore != 5.0 {
		t.Fatalf("expected derived score 5.0, got %v", stub.PriorityScore)
	}
	if stub.StartTime != "" || stub.Date != "" {
		t.Fatalf("stub must start unscheduled: %#v", stub)
	}
}

func TestHeuristicPlannerMoodSplit(t *testing.T) {
	planner := HeuristicPlanner{}

	rested, err := planner.SuggestPlan(context.Background(), "launch prep", "energized")
	if err != nil {
		t.Fatalf("suggest rested plan: %v", err)
	}
	if len(rested) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(rested))
	}
	if rested[0].Energy != EnergyHigh {
		t.Fatalf("expected a high-energy lead suggestion, got %q", rested[0].Energy)
	}

	tired, err := planner.SuggestPlan(context.Background(), "", "tired after travel")
	if err != nil {
		t.Fatalf("suggest tired plan: %v", err)
	}
	for _, s := range tired {
		if s.Energy == EnergyHigh {
			t.Fatalf("expected no high-energy suggestions when tired, got %q", s.Title)
		}
		if !s.Energy.IsValid() {
			t.Fatalf("invalid energy %q", s.Energy)
		}
	}
}
