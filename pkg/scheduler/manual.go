package scheduler

import (
	"container/heap"
	"time"
)

// ManualClock is a deterministic virtual clock. Time only moves when Advance is called.
// Timers due at the same instant fire in the order they were armed.
//
// ManualClock is not safe for concurrent use; drive it from the goroutine that owns
// the animator system.
type ManualClock struct {
	epoch time.Time
	now   time.Time
	seq   uint64
	queue timerQueue
}

// NewManualClock creates a virtual clock starting at the Unix epoch.
func NewManualClock() *ManualClock {
	epoch := time.Unix(0, 0).UTC()
	return &ManualClock{epoch: epoch, now: epoch}
}

// Now returns the virtual time.
func (c *ManualClock) Now() time.Time { return c.now }

// Elapsed returns the virtual time elapsed since the clock was created.
func (c *ManualClock) Elapsed() time.Duration { return c.now.Sub(c.epoch) }

// Pending returns the number of armed timers.
func (c *ManualClock) Pending() int { return len(c.queue) }

// AfterFunc arms fn to run when the virtual time reaches Now()+d.
func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &manualTimer{clock: c, at: c.now.Add(d), seq: c.seq, fn: fn, index: -1}
	heap.Push(&c.queue, t)
	return t
}

// Advance moves the virtual time forward by d, firing every timer that becomes due.
// Timers armed by callbacks also fire if they are due before the target time.
func (c *ManualClock) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	target := c.now.Add(d)
	for len(c.queue) > 0 && !c.queue[0].at.After(target) {
		t := heap.Pop(&c.queue).(*manualTimer)
		c.now = t.at
		t.fired = true
		t.fn()
	}
	c.now = target
}

// AdvanceSeconds is Advance expressed in seconds, the unit of animator durations.
func (c *ManualClock) AdvanceSeconds(s float64) { c.Advance(Seconds(s)) }

// Update advances the clock by a frame delta in seconds, for frame-driven hosts.
func (c *ManualClock) Update(dt float32) { c.Advance(Seconds(float64(dt))) }

type manualTimer struct {
	clock *ManualClock
	at    time.Time
	seq   uint64
	fn    func()
	index int
	fired bool
}

func (t *manualTimer) Stop() bool {
	if t.fired || t.index < 0 {
		return false
	}
	heap.Remove(&t.clock.queue, t.index)
	return true
}

// timerQueue is a min-heap ordered by due time, then arming order.
type timerQueue []*manualTimer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*manualTimer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
