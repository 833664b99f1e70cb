package schedule

import (
	"testing"
	"time"

	"github.com/sandeepkv93/nukecore/internal/clock"
)

func fixedClock(t *testing.T, value string) clock.Fixed {
	t.Helper()
	at, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("parse clock instant: %v", err)
	}
	return clock.Fixed{At: at}
}

func TestValidateUnscheduledIsAlwaysOk(t *testing.T) {
	clk := fixedClock(t, "2024-05-10 12:00")
	if got := Validate("", "23:30", clk); got != Ok {
		t.Fatalf("expected Ok without a date, got %q", got)
	}
}

func TestValidatePastDate(t *testing.T) {
	clk := fixedClock(t, "2024-05-10 05:00")
	if got := Validate("2024-05-09", "10:00", clk); got != PastDate {
		t.Fatalf("expected PastDate, got %q", got)
	}
	if got := Validate("2023-12-31", "", clk); got != PastDate {
		t.Fatalf("expected PastDate without a time, got %q", got)
	}
}

func TestValidatePastTimeToday(t *testing.T) {
	clk := fixedClock(t, "2024-05-10 14:30")
	if got := Validate("2024-05-10", "14:29", clk); got != PastTimeToday {
		t.Fatalf("expected PastTimeToday, got %q", got)
	}
	if got := Validate("2024-05-10", "14:30", clk); got != Ok {
		t.Fatalf("expected Ok at the current minute, got %q", got)
	}
	// Same clock time tomorrow is fine.
	if got := Validate("2024-05-11", "14:29", clk); got != Ok {
		t.Fatalf("expected Ok for tomorrow, got %q", got)
	}
}

func TestValidateSleepWindow(t *testing.T) {
	clk := fixedClock(t, "2024-05-10 05:00")

	if got := Validate("2024-05-10", "23:30", clk); got != SleepWindow {
		t.Fatalf("expected SleepWindow at 23:30, got %q", got)
	}
	if got := Validate("2024-05-10", "05:59", clk); got != SleepWindow {
		t.Fatalf("expected SleepWindow at 05:59, got %q", got)
	}
	if got := Validate("2024-05-10", "06:00", clk); got != Ok {
		t.Fatalf("expected Ok at 06:00, got %q", got)
	}
	// Future dates do not exempt the blackout.
	if got := Validate("2024-05-11", "23:30", clk); got != SleepWindow {
		t.Fatalf("expected SleepWindow on a future date, got %q", got)
	}
	if got := Validate("2024-06-01", "02:00", clk); got != SleepWindow {
		t.Fatalf("expected SleepWindow in early morning, got %q", got)
	}
}

func TestValidateOrderFirstFailureWins(t *testing.T) {
	clk := fixedClock(t, "2024-05-10 12:00")

	// Past date wins over a sleep-window time.
	if got := Validate("2024-05-09", "23:30", clk); got != PastDate {
		t.Fatalf("expected PastDate to win, got %q", got)
	}
	// Past time today wins over the sleep window when both apply.
	clkLate := fixedClock(t, "2024-05-10 23:45")
	if got := Validate("2024-05-10", "23:30", clkLate); got != PastTimeToday {
		t.Fatalf("expected PastTimeToday to win, got %q", got)
	}
}

func TestResultMessages(t *testing.T) {
	if Ok.Message() != "" {
		t.Fatalf("expected empty message for Ok, got %q", Ok.Message())
	}
	if !Ok.OK() || PastDate.OK() {
		t.Fatal("OK() predicate inconsistent")
	}
	if SleepWindow.Message() != "Restricted: Sleep Cycle (23:00 - 06:00)" {
		t.Fatalf("unexpected sleep-window message: %q", SleepWindow.Message())
	}
}
