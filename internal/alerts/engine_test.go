package alerts

import (
	"testing"
	"time"
)

func TestEngineEmitsInDueOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Alert{ID: "later", Kind: KindGoalDeadline, DueAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Alert{ID: "sooner", Kind: KindTaskStart, DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitAlert(t, engine.C(), time.Second)
	second := waitAlert(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	due := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Alert{ID: "alert", Kind: KindTaskStart, DueAt: due}); err != nil {
			t.Fatalf("schedule alert: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped alerts > 0, got %d", engine.Dropped())
	}
}

func TestScheduleRejectsZeroDueTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Alert{ID: "bad"}); err != ErrInvalidDueTime {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
}

func TestPendingCount(t *testing.T) {
	engine := NewEngine(4)
	due := time.Now().Add(time.Hour)
	for i := 0; i < 3; i++ {
		if err := engine.Schedule(Alert{ID: "pending", Kind: KindTaskStart, DueAt: due}); err != nil {
			t.Fatalf("schedule: %v", err)
		}
	}
	if got := engine.Pending(); got != 3 {
		t.Fatalf("expected 3 pending alerts, got %d", got)
	}
}

func waitAlert(t *testing.T, ch <-chan Alert, timeout time.Duration) Alert {
	t.Helper()
	select {
	case a := <-ch:
		return a
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for alert")
		return Alert{}
	}
}
