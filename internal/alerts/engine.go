// Package alerts delivers due-time notifications for the app: a task's
// scheduled start arriving, or a goal's deadline day beginning. Alerts
// are held in a min-heap keyed on due time and emitted on a channel the
// TUI event loop drains.
package alerts

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidDueTime = errors.New("alerts: invalid due time")

type Kind string

const (
	KindTaskStart    Kind = "task_start"
	KindGoalDeadline Kind = "goal_deadline"
)

// Alert is one pending notification. RefID points at the task or goal
// it belongs to.
type Alert struct {
	ID    string
	RefID string
	Kind  Kind
	Title string
	DueAt time.Time
}

type alertHeap []Alert

func (h alertHeap) Len() int            { return len(h) }
func (h alertHeap) Less(i, j int) bool  { return h[i].DueAt.Before(h[j].DueAt) }
func (h alertHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *alertHeap) Push(x any)         { *h = append(*h, x.(Alert)) }
func (h *alertHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   alertHeap
	out     chan Alert
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(alertHeap, 0),
		out:    make(chan Alert, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// C is the delivery channel. It closes when the engine stops.
func (e *Engine) C() <-chan Alert {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(a Alert) error {
	if a.DueAt.IsZero() {
		return ErrInvalidDueTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("alerts: engine stopped")
	}

	heap.Push(&e.queue, a)
	e.signalWakeup()
	return nil
}

// Pending reports how many alerts are still queued.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// Dropped counts alerts discarded because the consumer lagged behind the
// output buffer; delivery is best-effort and never blocks the loop.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.DueAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, a := range e.popDue(time.Now()) {
				select {
				case e.out <- a:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Alert, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Alert{}, false
	}
	return e.queue[0], true
}

func (e *Engine) popDue(now time.Time) []Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Alert, 0)
	for len(e.queue) > 0 {
		if e.queue[0].DueAt.After(now) {
			break
		}
		out = append(out, heap.Pop(&e.queue).(Alert))
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
