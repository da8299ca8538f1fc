package manager

import (
	"slices"

	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/scheduler"
)

// delaysFunc computes the start delay, in seconds, of each ordered child.
type delaysFunc func(settings domain.Settings, children []domain.Animator) []float64

// timed enters children at increasing delays (sequence and stagger).
// Exiting is immediate for all children and cancels their pending enters.
type timed struct {
	name    domain.ManagerName
	host    Host
	reverse bool
	delays  delaysFunc
	timers  *scheduler.Group
}

func newTimed(name domain.ManagerName, host Host, reverse bool, delays delaysFunc) *timed {
	return &timed{
		name:    name,
		host:    host,
		reverse: reverse,
		delays:  delays,
		timers:  scheduler.NewGroup(host.Clock()),
	}
}

func (m *timed) Name() domain.ManagerName { return m.name }

func (m *timed) ordered(children []domain.Animator) []domain.Animator {
	if !m.reverse {
		return children
	}
	out := slices.Clone(children)
	slices.Reverse(out)
	return out
}

func (m *timed) DurationEnter(children []domain.Animator) float64 {
	ordered := m.ordered(orAll(m.host, children))
	delays := m.delays(m.host.UserSettings(), ordered)

	total := 0.0
	for i, child := range ordered {
		total = max(total, delays[i]+enterDuration(child))
	}
	return total
}

func (m *timed) EnterChildren(children []domain.Animator) {
	if len(children) == 0 {
		return
	}
	ordered := m.ordered(children)
	delays := m.delays(m.host.UserSettings(), ordered)

	for i, child := range ordered {
		key := string(child.ID())
		if delays[i] <= 0 {
			m.timers.Stop(key)
			child.Send(domain.ActionEnter)
			continue
		}
		m.timers.Start(key, delays[i], func() {
			child.Send(domain.ActionEnter)
		})
	}
}

func (m *timed) ExitChildren(children []domain.Animator) {
	for _, child := range children {
		m.timers.Stop(string(child.ID()))
		child.Send(domain.ActionExit)
	}
}

func (m *timed) Destroy() {
	m.timers.StopAll()
}

// sequenceDelays starts each child once the previous ones have entered,
// leaving duration.offset seconds between consecutive children.
func sequenceDelays(settings domain.Settings, children []domain.Animator) []float64 {
	delays := make([]float64, len(children))
	acc := 0.0
	for i, child := range children {
		delays[i] = acc
		acc += enterDuration(child) + settings.Duration.Offset
	}
	return delays
}

// staggerDelays starts child i at i*duration.stagger. When duration.limit is set
// and there are more children than the limit, the stagger is shrunk so the whole
// wave spans at most limit*stagger seconds.
func staggerDelays(settings domain.Settings, children []domain.Animator) []float64 {
	stagger := settings.Duration.Stagger
	limit := settings.Duration.Limit
	if n := float64(len(children)); limit > 0 && n > limit {
		stagger = limit * stagger / n
	}

	delays := make([]float64, len(children))
	for i := range children {
		delays[i] = float64(i) * stagger
	}
	return delays
}
