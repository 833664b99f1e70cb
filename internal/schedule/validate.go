// Package schedule enforces the constraints on when a task may be placed:
// not in the past, and never inside the nightly sleep window. It runs at
// create/edit time only; already-stored tasks are not re-checked.
package schedule

import (
	"github.com/sandeepkv93/nukecore/internal/clock"
	"github.com/sandeepkv93/nukecore/internal/model"
)

type Result string

const (
	Ok            Result = "ok"
	PastDate      Result = "past_date"
	PastTimeToday Result = "past_time_today"
	SleepWindow   Result = "sleep_window"
)

const (
	// SleepStartHour..SleepEndHour is the 23:00-06:00 blackout. The block
	// applies to every date, future ones included; it is a global policy,
	// not a past-time rule.
	SleepStartHour = 23
	SleepEndHour   = 6
)

func (r Result) OK() bool { return r == Ok }

// Message returns the user-facing text surfaced for a failing result.
func (r Result) Message() string {
	switch r {
	case PastDate:
		return "Cannot schedule in the past"
	case PastTimeToday:
		return "Cannot schedule time in the past"
	case SleepWindow:
		return "Restricted: Sleep Cycle (23:00 - 06:00)"
	default:
		return ""
	}
}

// InSleepWindow reports whether an "HH:MM" time falls inside the blackout.
// Malformed times are not the validator's concern and pass through.
func InSleepWindow(startTime string) bool {
	if startTime == "" {
		return false
	}
	hour, _, err := model.ParseClock(startTime)
	if err != nil {
		return false
	}
	return hour >= SleepStartHour || hour < SleepEndHour
}

// Validate checks a (date, startTime) pair against the current clock.
// The check order is fixed because the first failure is what the user
// sees: past date, then past time on the current day, then sleep window.
// An empty date short-circuits to Ok; unscheduled tasks are always legal.
func Validate(date, startTime string, clk clock.Clock) Result {
	if date == "" {
		return Ok
	}

	today := clock.DateString(clk)
	if date < today {
		return PastDate
	}

	if date == today && startTime != "" {
		hour, minute, err := model.ParseClock(startTime)
		if err == nil && hour*60+minute < clock.MinutesIntoDay(clk) {
			return PastTimeToday
		}
	}

	if InSleepWindow(startTime) {
		return SleepWindow
	}

	return Ok
}
