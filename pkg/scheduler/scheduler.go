package scheduler

// Scheduler keeps at most one pending timer. Starting a new timer cancels the
// previous one without invoking it.
type Scheduler struct {
	clock Clock
	timer Timer
}

// New creates a single-slot scheduler on clock. A nil clock behaves as NopClock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = NopClock{}
	}
	return &Scheduler{clock: clock}
}

// Start arms fn to run after the given number of seconds, replacing any pending timer.
func (s *Scheduler) Start(seconds float64, fn func()) {
	s.Stop()
	var t Timer
	t = s.clock.AfterFunc(Seconds(seconds), func() {
		if s.timer == t {
			s.timer = nil
		}
		fn()
	})
	s.timer = t
}

// Stop cancels the pending timer, if any.
func (s *Scheduler) Stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Pending reports whether a timer is armed.
func (s *Scheduler) Pending() bool { return s.timer != nil }

// Group keeps one pending timer per key.
type Group struct {
	clock  Clock
	timers map[string]Timer
}

// NewGroup creates a keyed scheduler on clock. A nil clock behaves as NopClock.
func NewGroup(clock Clock) *Group {
	if clock == nil {
		clock = NopClock{}
	}
	return &Group{clock: clock, timers: make(map[string]Timer)}
}

// Start arms fn under key, replacing the timer previously armed under that key.
func (g *Group) Start(key string, seconds float64, fn func()) {
	g.Stop(key)
	var t Timer
	t = g.clock.AfterFunc(Seconds(seconds), func() {
		if g.timers[key] == t {
			delete(g.timers, key)
		}
		fn()
	})
	g.timers[key] = t
}

// Stop cancels the timer armed under key.
func (g *Group) Stop(key string) {
	if t, ok := g.timers[key]; ok {
		t.Stop()
		delete(g.timers, key)
	}
}

// StopAll cancels every pending timer.
func (g *Group) StopAll() {
	for key, t := range g.timers {
		t.Stop()
		delete(g.timers, key)
	}
}

// Pending returns the number of armed timers.
func (g *Group) Pending() int { return len(g.timers) }
