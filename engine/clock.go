// clock.go implements the wall-clock time allocator of spec.md §4.6:
// a moves-to-go / time-remaining budget, polled cooperatively from
// inside the search every polling_stride nodes, with a safety margin
// and a one-way "finished" latch.
//
// Grounded on original_source/src/clock.rs (start/poll/stop shape,
// the 25ms safety margin, and is_finished as an AtomicBool so a
// "stop" command from one thread is visible to every search thread
// polling the same clock) adapted to Go's time.Time/time.Duration
// instead of a hand-rolled millisecond counter. Once §4.7's parallel
// root search shares one Clock across worker goroutines, a plain
// bool latch would race; finished/stopped are sync/atomic fields for
// the same reason clock.rs wraps is_finished in an AtomicBool.
//
// Stop is a durable, externally-requested halt (the "stop" command in
// clock.rs): Start resets the per-depth polling latch for a new move
// but must not undo a Stop that was already requested, the same way
// an engine shouldn't un-stop itself just because it begins thinking
// about its next move.

package engine

import (
	"sync/atomic"
	"time"
)

// PollingStride is how many search nodes must elapse between two
// polls of the clock (spec.md §4.6's "e.g. 100").
const PollingStride = 100

// SafetyMargin is added to elapsed time before comparing against the
// allocation, so a poll never fires right at the wire.
const SafetyMargin = 25 * time.Millisecond

// Clock allocates a wall-clock budget for one move and reports,
// when polled, whether that budget has been exhausted.
type Clock struct {
	allocated time.Duration
	started   time.Time
	finished  atomic.Bool
	stopped   atomic.Bool
	lastPoll  atomic.Int64
}

// NewClock computes the time allocated to the move to come: the
// remaining time split evenly across the moves still expected
// before the next time control.
func NewClock(movesToGo int, timeRemaining time.Duration) *Clock {
	if movesToGo < 1 {
		movesToGo = 1
	}
	return &Clock{allocated: timeRemaining / time.Duration(movesToGo)}
}

// Start records the search's starting instant and clears the polling
// latch, unless Stop has already been called: an externally
// requested stop stays in effect until a fresh Clock is built for
// the next move.
func (c *Clock) Start() {
	c.started = time.Now()
	c.lastPoll.Store(0)
	if !c.stopped.Load() {
		c.finished.Store(false)
	}
}

// Poll reports whether the clock has run out, given the total node
// count searched so far. It only re-checks elapsed time once at
// least PollingStride nodes have passed since the previous check,
// to keep the check itself cheap; once finished it latches true.
func (c *Clock) Poll(nodes int) bool {
	if c.finished.Load() {
		return true
	}
	last := c.lastPoll.Load()
	if int64(nodes)-last < PollingStride {
		return false
	}
	c.lastPoll.Store(int64(nodes))
	if time.Since(c.started)+SafetyMargin >= c.allocated {
		c.finished.Store(true)
	}
	return c.finished.Load()
}

// Stop unconditionally and durably latches the clock as finished,
// surviving any later Start on the same Clock.
func (c *Clock) Stop() {
	c.stopped.Store(true)
	c.finished.Store(true)
}

// Finished reports the latch without polling.
func (c *Clock) Finished() bool { return c.finished.Load() }
