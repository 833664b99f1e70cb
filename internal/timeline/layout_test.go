package timeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/nukecore/internal/clock"
	"github.com/sandeepkv93/nukecore/internal/model"
)

const day = "2024-05-10"

func scheduledTask(id, startTime string, duration int) model.Task {
	return model.Task{
		ID:         id,
		Title:      id,
		Importance: 5,
		Urgency:    5,
		Duration:   duration,
		StartTime:  startTime,
		Date:       day,
	}
}

func TestLayoutFiltersToSelectedDay(t *testing.T) {
	completed := scheduledTask("done", "10:00", 30)
	completed.Completed = true

	unscheduled := scheduledTask("floating", "", 30)
	unscheduled.StartTime = ""

	otherDay := scheduledTask("tomorrow", "10:00", 30)
	otherDay.Date = "2024-05-11"

	undated := scheduledTask("undated", "10:00", 30)
	undated.Date = ""

	kept := scheduledTask("kept", "10:00", 30)

	out := Layout([]model.Task{completed, unscheduled, otherDay, undated, kept}, day, 2.0)
	if len(out) != 1 || out[0].ID != "kept" {
		t.Fatalf("expected only the kept task, got %#v", out)
	}
}

func TestLayoutPositions(t *testing.T) {
	out := Layout([]model.Task{scheduledTask("a", "09:30", 45)}, day, 2.0)
	if len(out) != 1 {
		t.Fatalf("expected one positioned task, got %d", len(out))
	}
	// 09:30 is 210 minutes past the 06:00 grid start.
	if out[0].Top != 420 {
		t.Fatalf("expected top 420, got %v", out[0].Top)
	}
	if out[0].Bottom != 420+90 {
		t.Fatalf("expected bottom 510, got %v", out[0].Bottom)
	}
}

func TestLayoutLaneAssignment(t *testing.T) {
	// A 09:00-09:30 and B 09:15-09:45 overlap; B and C 09:40-10:00
	// overlap; A and C do not.
	tasks := []model.Task{
		scheduledTask("a", "09:00", 30),
		scheduledTask("b", "09:15", 30),
		scheduledTask("c", "09:40", 20),
	}
	out := Layout(tasks, day, 1.0)
	byID := make(map[string]PositionedTask, len(out))
	for _, p := range out {
		byID[p.ID] = p
	}

	if byID["a"].Lane == byID["b"].Lane {
		t.Fatalf("overlapping a and b share lane %d", byID["a"].Lane)
	}
	if byID["b"].Lane == byID["c"].Lane {
		t.Fatalf("overlapping b and c share lane %d", byID["b"].Lane)
	}
	// a and c are free to share; the chain still forms one cluster with a
	// single shared lane count.
	for _, id := range []string{"a", "b", "c"} {
		if byID[id].TotalLanes != 2 {
			t.Fatalf("expected shared lane count 2 for %s, got %d", id, byID[id].TotalLanes)
		}
	}
}

func TestLayoutNoOverlappingTasksShareALane(t *testing.T) {
	tasks := []model.Task{
		scheduledTask("a", "08:00", 120),
		scheduledTask("b", "08:30", 30),
		scheduledTask("c", "08:45", 90),
		scheduledTask("d", "09:05", 60),
		scheduledTask("e", "11:00", 30),
		scheduledTask("f", "11:10", 30),
	}
	out := Layout(tasks, day, 1.5)
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			if out[i].Overlaps(out[j]) && out[i].Lane == out[j].Lane {
				t.Fatalf("overlapping %s and %s share lane %d", out[i].ID, out[j].ID, out[i].Lane)
			}
		}
	}
}

func TestLayoutSeparateClustersKeepIndependentLaneCounts(t *testing.T) {
	tasks := []model.Task{
		scheduledTask("m1", "08:00", 60),
		scheduledTask("m2", "08:20", 60),
		scheduledTask("m3", "08:40", 60),
		scheduledTask("solo", "14:00", 30),
	}
	out := Layout(tasks, day, 1.0)
	byID := make(map[string]PositionedTask, len(out))
	for _, p := range out {
		byID[p.ID] = p
	}
	for _, id := range []string{"m1", "m2", "m3"} {
		if byID[id].TotalLanes != 3 {
			t.Fatalf("expected 3 lanes in the morning cluster for %s, got %d", id, byID[id].TotalLanes)
		}
	}
	if byID["solo"].TotalLanes != 1 || byID["solo"].Lane != 0 {
		t.Fatalf("expected solo task in its own full-width lane, got %#v", byID["solo"])
	}
}

func TestLayoutStableOrderForEqualStarts(t *testing.T) {
	tasks := []model.Task{
		scheduledTask("first", "10:00", 30),
		scheduledTask("second", "10:00", 30),
	}
	out := Layout(tasks, day, 1.0)
	if out[0].ID != "first" || out[1].ID != "second" {
		t.Fatalf("expected original order preserved for equal starts, got %s, %s", out[0].ID, out[1].ID)
	}
	if out[0].Lane != 0 || out[1].Lane != 1 {
		t.Fatalf("expected lanes 0 and 1, got %d and %d", out[0].Lane, out[1].Lane)
	}
}

func TestLayoutIdempotent(t *testing.T) {
	tasks := []model.Task{
		scheduledTask("a", "09:00", 30),
		scheduledTask("b", "09:15", 30),
		scheduledTask("c", "09:40", 20),
		scheduledTask("d", "12:00", 45),
	}
	first := Layout(tasks, day, 2.5)
	second := Layout(tasks, day, 2.5)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("layout is not idempotent:\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

func TestLayoutClampsScale(t *testing.T) {
	out := Layout([]model.Task{scheduledTask("a", "07:00", 60)}, day, 9.0)
	if out[0].Top != 60*MaxScale {
		t.Fatalf("expected scale clamped to %v, got top %v", MaxScale, out[0].Top)
	}
	out = Layout([]model.Task{scheduledTask("a", "07:00", 60)}, day, 0.1)
	if out[0].Top != 60*MinScale {
		t.Fatalf("expected scale clamped to %v, got top %v", MinScale, out[0].Top)
	}
}

func TestPositionedTaskMinimumHeight(t *testing.T) {
	zero := scheduledTask("zero", "10:00", 30)
	zero.Duration = 0
	out := Layout([]model.Task{zero}, day, 1.0)
	if got := out[0].Height(); got != MinRenderHeight {
		t.Fatalf("expected clamped height %v, got %v", MinRenderHeight, got)
	}
}

func TestWidthAndLeftFractions(t *testing.T) {
	p := PositionedTask{Lane: 1, TotalLanes: 2}
	if p.WidthFraction() != 0.5 {
		t.Fatalf("expected width 0.5, got %v", p.WidthFraction())
	}
	if p.LeftFraction() != 0.5 {
		t.Fatalf("expected left 0.5, got %v", p.LeftFraction())
	}
}

func TestSleepBlock(t *testing.T) {
	top, height := SleepBlock(2.0)
	if top != float64(23-StartHour)*60*2 {
		t.Fatalf("unexpected sleep block top %v", top)
	}
	if height != 60*2 {
		t.Fatalf("unexpected sleep block height %v", height)
	}
}

func TestNowOffset(t *testing.T) {
	at := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	clk := clock.Fixed{At: at}

	top, visible := NowOffset(clk, day, 2.0)
	if !visible {
		t.Fatal("expected now indicator on today's grid")
	}
	if top != 420 {
		t.Fatalf("expected offset 420, got %v", top)
	}

	if _, visible := NowOffset(clk, "2024-05-11", 2.0); visible {
		t.Fatal("expected no indicator on another day")
	}

	early := clock.Fixed{At: time.Date(2024, 5, 10, 5, 0, 0, 0, time.UTC)}
	if _, visible := NowOffset(early, day, 2.0); visible {
		t.Fatal("expected no indicator before the grid start")
	}
}
