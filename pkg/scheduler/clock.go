package scheduler

import (
	"math"
	"time"
)

// Clock arms delayed callbacks.
type Clock interface {
	// AfterFunc calls fn once d has elapsed. Negative durations are treated as zero.
	AfterFunc(d time.Duration, fn func()) Timer
	// Now returns the current time as seen by the clock.
	Now() time.Time
}

// Timer is a pending callback armed on a Clock.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, false if it already ran or was stopped.
	Stop() bool
}

// Seconds converts a duration in seconds into a time.Duration, rounded to the nanosecond.
func Seconds(s float64) time.Duration {
	if s <= 0 || math.IsNaN(s) {
		return 0
	}
	return time.Duration(math.Round(s * float64(time.Second)))
}

// NopClock is the clock of headless environments: timers are accepted and never fire.
type NopClock struct{}

type nopTimer struct{}

func (nopTimer) Stop() bool { return false }

// AfterFunc never calls fn.
func (NopClock) AfterFunc(time.Duration, func()) Timer { return nopTimer{} }

// Now returns the wall clock time.
func (NopClock) Now() time.Time { return time.Now() }
