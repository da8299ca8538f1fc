package manager

import (
	"time"

	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/scheduler"
)

const switchEnterKey = "enter"

// switcher treats children as mutually exclusive alternatives: entering one
// first exits every visible sibling, and the entry waits until the last of
// them has left, including siblings already exiting.
type switcher struct {
	host   Host
	timers *scheduler.Group
	// leaving holds when each exiting child is expected to be exited.
	leaving map[domain.NodeID]time.Time
}

func newSwitcher(host Host) *switcher {
	return &switcher{
		host:    host,
		timers:  scheduler.NewGroup(host.Clock()),
		leaving: make(map[domain.NodeID]time.Time),
	}
}

func (m *switcher) Name() domain.ManagerName { return domain.ManagerSwitch }

func pick(children []domain.Animator) domain.Animator {
	for _, child := range children {
		if child.Settings().Allows(child) {
			return child
		}
	}
	return nil
}

func (m *switcher) DurationEnter(children []domain.Animator) float64 {
	next := pick(orAll(m.host, children))
	if next == nil {
		return 0
	}
	return enterDuration(next)
}

// exit sends exit to child and records when it will be gone.
func (m *switcher) exit(child domain.Animator) {
	m.leaving[child.ID()] = m.host.Clock().Now().Add(scheduler.Seconds(exitDuration(child)))
	child.Send(domain.ActionExit)
}

// remaining returns how long an exiting child still needs, falling back to
// its full exit duration when the exit was not sent through this manager.
func (m *switcher) remaining(child domain.Animator) float64 {
	deadline, ok := m.leaving[child.ID()]
	if !ok {
		return exitDuration(child)
	}
	return max(0, deadline.Sub(m.host.Clock().Now()).Seconds())
}

func (m *switcher) EnterChildren(children []domain.Animator) {
	if len(children) == 0 {
		return
	}
	next := pick(children)

	wait := 0.0
	for _, sibling := range m.host.Children() {
		if next != nil && sibling.ID() == next.ID() {
			continue
		}
		switch state := sibling.State(); {
		case state == domain.StateExiting:
			wait = max(wait, m.remaining(sibling))
		case state.Visible():
			wait = max(wait, exitDuration(sibling))
			m.exit(sibling)
		default:
			delete(m.leaving, sibling.ID())
		}
	}

	if next == nil || next.State().Visible() {
		return
	}
	delete(m.leaving, next.ID())

	if wait <= 0 {
		m.timers.Stop(switchEnterKey)
		next.Send(domain.ActionEnter)
		return
	}
	m.timers.Start(switchEnterKey, wait, func() {
		next.Send(domain.ActionEnter)
	})
}

func (m *switcher) ExitChildren(children []domain.Animator) {
	if len(children) > 0 {
		m.timers.StopAll()
	}
	for _, child := range children {
		m.exit(child)
	}
}

func (m *switcher) Destroy() {
	m.timers.StopAll()
	clear(m.leaving)
}
