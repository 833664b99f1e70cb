// Package timeline lays scheduled tasks out on a single-day grid: it
// filters the working set to the selected date, converts clock times to
// vertical offsets, and splits time-overlapping tasks into side-by-side
// lanes. It is a pure presentation derivation with no error channel;
// callers hand it already-validated tasks.
package timeline

import (
	"sort"

	"github.com/sandeepkv93/nukecore/internal/clock"
	"github.com/sandeepkv93/nukecore/internal/model"
)

const (
	StartHour = 6
	EndHour   = 24

	MinScale = 1.0
	MaxScale = 4.0
	ZoomStep = 0.5

	// MinRenderHeight keeps degenerate zero/negative-duration tasks
	// visible and clickable.
	MinRenderHeight = 30.0

	SleepBlockHour = 23
)

// PositionedTask is a task augmented with its render geometry for one
// layout pass. It is recomputed on every pass, never stored.
type PositionedTask struct {
	model.Task
	Top        float64
	Bottom     float64
	Lane       int
	TotalLanes int
}

// Height is the rendered extent, clamped so short tasks stay visible.
func (p PositionedTask) Height() float64 {
	h := p.Bottom - p.Top
	if h < MinRenderHeight {
		return MinRenderHeight
	}
	return h
}

// WidthFraction is the horizontal share of the grid this task occupies.
func (p PositionedTask) WidthFraction() float64 {
	if p.TotalLanes <= 0 {
		return 1
	}
	return 1 / float64(p.TotalLanes)
}

// LeftFraction is the horizontal offset of this task's lane, in [0, 1).
func (p PositionedTask) LeftFraction() float64 {
	if p.TotalLanes <= 0 {
		return 0
	}
	return float64(p.Lane) / float64(p.TotalLanes)
}

// Overlaps reports whether two positioned tasks share any vertical span.
// Intervals are half-open: [Top, Bottom).
func (p PositionedTask) Overlaps(other PositionedTask) bool {
	return p.Top < other.Bottom && other.Top < p.Bottom
}

// ClampScale bounds the pixels-per-minute zoom factor.
func ClampScale(scale float64) float64 {
	if scale < MinScale {
		return MinScale
	}
	if scale > MaxScale {
		return MaxScale
	}
	return scale
}

// GridHeight is the full day-grid extent at the given scale.
func GridHeight(scale float64) float64 {
	return float64(EndHour-StartHour) * 60 * ClampScale(scale)
}

// HourOffset is the vertical offset of a whole hour on the grid.
func HourOffset(hour int, scale float64) float64 {
	return float64(hour-StartHour) * 60 * ClampScale(scale)
}

// Offset converts an "HH:MM" clock time to its vertical grid offset.
func Offset(startTime string, scale float64) (float64, bool) {
	hour, minute, err := model.ParseClock(startTime)
	if err != nil {
		return 0, false
	}
	minutes := (hour-StartHour)*60 + minute
	return float64(minutes) * ClampScale(scale), true
}

// SleepBlock returns the top and height of the fixed 23:00-to-day-end
// visual obstruction. It is purely visual; only the schedule validator
// stops tasks from being placed under it.
func SleepBlock(scale float64) (top, height float64) {
	scale = ClampScale(scale)
	top = float64(SleepBlockHour-StartHour) * 60 * scale
	height = float64(EndHour-SleepBlockHour) * 60 * scale
	return top, height
}

// NowOffset computes the live-clock indicator position for the selected
// date. It is exposed only when the selected date is today and the offset
// falls within [0, GridHeight).
func NowOffset(clk clock.Clock, selectedDate string, scale float64) (float64, bool) {
	if clock.DateString(clk) != selectedDate {
		return 0, false
	}
	scale = ClampScale(scale)
	now := clk.Now()
	minutes := (now.Hour()-StartHour)*60 + now.Minute()
	top := float64(minutes) * scale
	if top < 0 || top >= GridHeight(scale) {
		return 0, false
	}
	return top, true
}

// Layout runs one full pass: filter to the selected date, position,
// sort, and split overlapping tasks into lanes. The same inputs always
// produce the same output; the engine keeps no state between passes.
//
// Lane packing works per connected overlap component: tasks are processed
// in ascending start order and each takes the smallest lane not held by
// an overlapping member of its component, and every member of a component
// shares one TotalLanes value. This replaces an earlier order-dependent
// single-pass increment that could both double-book a lane and report
// different lane counts inside one visual cluster.
func Layout(tasks []model.Task, selectedDate string, scale float64) []PositionedTask {
	scale = ClampScale(scale)

	positioned := make([]PositionedTask, 0, len(tasks))
	for _, task := range tasks {
		if task.StartTime == "" || task.Completed || task.Date != selectedDate {
			continue
		}
		top, ok := Offset(task.StartTime, scale)
		if !ok {
			continue
		}
		positioned = append(positioned, PositionedTask{
			Task:       task,
			Top:        top,
			Bottom:     top + float64(task.Duration)*scale,
			TotalLanes: 1,
		})
	}

	sort.SliceStable(positioned, func(i, j int) bool {
		return positioned[i].Top < positioned[j].Top
	})

	assignLanes(positioned)
	return positioned
}

func assignLanes(tasks []PositionedTask) {
	componentStart := 0
	maxBottom := 0.0
	for i := range tasks {
		// A gap in start order closes the current overlap component:
		// nothing later can reach back across it.
		if i > 0 && tasks[i].Top >= maxBottom {
			finishComponent(tasks[componentStart:i])
			componentStart = i
		}
		if tasks[i].Bottom > maxBottom || i == componentStart {
			maxBottom = tasks[i].Bottom
		}

		taken := make(map[int]bool)
		for j := componentStart; j < i; j++ {
			if tasks[i].Overlaps(tasks[j]) {
				taken[tasks[j].Lane] = true
			}
		}
		lane := 0
		for taken[lane] {
			lane++
		}
		tasks[i].Lane = lane
	}
	if componentStart < len(tasks) {
		finishComponent(tasks[componentStart:])
	}
}

// finishComponent stamps one shared lane count across a component so
// every member of a cluster divides the width identically.
func finishComponent(component []PositionedTask) {
	maxLane := 0
	for _, task := range component {
		if task.Lane > maxLane {
			maxLane = task.Lane
		}
	}
	for i := range component {
		component[i].TotalLanes = maxLane + 1
	}
}
