package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualClock_FiresInDueOrder(t *testing.T) {
	c := NewManualClock()
	var got []string

	c.AfterFunc(2*time.Second, func() { got = append(got, "b") })
	c.AfterFunc(1*time.Second, func() { got = append(got, "a") })
	c.AfterFunc(2*time.Second, func() { got = append(got, "c") })

	c.Advance(1500 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, 1500*time.Millisecond, c.Elapsed())

	c.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, got, "ties fire in arming order")
	assert.Equal(t, 0, c.Pending())
}

func TestManualClock_CallbackSeesDueTime(t *testing.T) {
	c := NewManualClock()
	var seen time.Duration
	c.AfterFunc(300*time.Millisecond, func() { seen = c.Elapsed() })

	c.Advance(time.Second)
	assert.Equal(t, 300*time.Millisecond, seen)
	assert.Equal(t, time.Second, c.Elapsed())
}

func TestManualClock_TimersArmedDuringAdvance(t *testing.T) {
	c := NewManualClock()
	var at []time.Duration

	c.AfterFunc(time.Second, func() {
		at = append(at, c.Elapsed())
		c.AfterFunc(time.Second, func() { at = append(at, c.Elapsed()) })
	})

	c.Advance(3 * time.Second)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, at)
}

func TestManualClock_Stop(t *testing.T) {
	c := NewManualClock()
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	require.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop is a no-op")

	c.Advance(2 * time.Second)
	assert.False(t, fired)
}

func TestManualClock_ZeroDelayFiresOnNextAdvance(t *testing.T) {
	c := NewManualClock()
	fired := false
	c.AfterFunc(0, func() { fired = true })
	assert.False(t, fired)

	c.Advance(0)
	assert.True(t, fired)
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, Seconds(0.1))
	assert.Equal(t, 300*time.Millisecond, Seconds(0.1*3))
	assert.Equal(t, time.Duration(0), Seconds(-1))
}
