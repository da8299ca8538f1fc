package runtime

import (
	"github.com/aretw0/animator/internal/manager"
	"github.com/aretw0/animator/pkg/domain"
)

// outcome is what an action procedure asks the machine to do.
// A zero outcome means stay; a positive delay defers the transition through
// the node scheduler.
type outcome struct {
	state domain.State
	delay float64
}

func goTo(s domain.State) outcome { return outcome{state: s} }

type procedure func(n *Node) outcome

type onEntry struct {
	execute  func(n *Node)
	schedule func(n *Node) (seconds float64, action domain.Action)
}

type stateSpec struct {
	entry   onEntry
	actions map[domain.Action]procedure
}

// states is the transition table. Actions absent from a state are ignored.
var states = map[domain.State]stateSpec{
	domain.StateExited: {
		actions: map[domain.Action]procedure{
			domain.ActionEnter: func(*Node) outcome { return goTo(domain.StateEntering) },
			domain.ActionSetup: setup,
		},
	},
	domain.StateEntering: {
		entry: onEntry{
			execute: func(n *Node) {
				combine := n.UserSettings().Combine
				n.manager.EnterChildren(n.filterChildren(func(c *Node, cs domain.Settings) bool {
					return (combine || cs.Merge) && cs.Allows(c)
				}))
			},
			schedule: func(n *Node) (float64, domain.Action) {
				return n.Settings().Duration.Enter, domain.ActionEnterEnd
			},
		},
		actions: map[domain.Action]procedure{
			domain.ActionEnterEnd: func(*Node) outcome { return goTo(domain.StateEntered) },
			domain.ActionExit:     func(*Node) outcome { return goTo(domain.StateExiting) },
		},
	},
	domain.StateEntered: {
		entry: onEntry{
			execute: func(n *Node) {
				if n.UserSettings().Combine {
					return
				}
				n.manager.EnterChildren(n.filterChildren(func(c *Node, cs domain.Settings) bool {
					return !cs.Merge && cs.Allows(c)
				}))
			},
		},
		actions: map[domain.Action]procedure{
			domain.ActionExit: func(*Node) outcome { return goTo(domain.StateExiting) },
		},
	},
	domain.StateExiting: {
		entry: onEntry{
			execute: func(n *Node) {
				n.manager.ExitChildren(n.Children())
			},
			schedule: func(n *Node) (float64, domain.Action) {
				return n.Settings().Duration.Exit, domain.ActionExitEnd
			},
		},
		actions: map[domain.Action]procedure{
			domain.ActionExitEnd: func(*Node) outcome { return goTo(domain.StateExited) },
			domain.ActionEnter:   func(*Node) outcome { return goTo(domain.StateEntering) },
		},
	},
}

// anyState holds the actions accepted in every state, processed after the
// state's own handler.
var anyState = map[domain.Action]procedure{
	domain.ActionUpdate:  update,
	domain.ActionRefresh: refresh,
}

// setup joins a parent that is already running, or activates the root.
func setup(n *Node) outcome {
	s := n.UserSettings()

	if !n.IsRoot() {
		parent := n.Parent()
		if parent == nil {
			return outcome{}
		}
		switch parent.state {
		case domain.StateEntering:
			if (parent.UserSettings().Combine || s.Merge) && s.Allows(n) {
				parent.manager.EnterChildren([]domain.Animator{n})
			}
		case domain.StateEntered:
			if s.Allows(n) {
				parent.manager.EnterChildren([]domain.Animator{n})
			}
		}
		return outcome{}
	}

	if s.Active {
		return outcome{state: domain.StateEntering, delay: s.Duration.Delay}
	}
	return outcome{}
}

// update swaps the manager when its name changed and reconciles the root
// with its active setting.
func update(n *Node) outcome {
	s := n.UserSettings()

	if s.Manager != n.manager.Name() {
		m, err := manager.New(s.Manager, n)
		if err != nil {
			n.tree.logger.Warn("animator manager not changed", "node", n.id, "error", err)
		} else {
			n.manager.Destroy()
			n.manager = m
		}
	}

	if !n.IsRoot() {
		return outcome{}
	}
	switch {
	case !n.state.Visible() && s.Active:
		return outcome{state: domain.StateEntering, delay: s.Duration.Delay}
	case n.state.Visible() && !s.Active:
		return goTo(domain.StateExiting)
	}
	return outcome{}
}

// refresh re-evaluates the children conditions of a visible node.
func refresh(n *Node) outcome {
	if !n.state.Visible() {
		return outcome{}
	}
	combine := n.UserSettings().Combine
	entering := n.state == domain.StateEntering

	toExit := n.filterChildren(func(c *Node, cs domain.Settings) bool {
		if !c.state.Visible() {
			return false
		}
		if entering && !combine && !cs.Merge {
			return false
		}
		return !cs.Allows(c)
	})
	toEnter := n.filterChildren(func(c *Node, cs domain.Settings) bool {
		return !c.state.Visible() && cs.Allows(c)
	})

	n.manager.ExitChildren(toExit)
	n.manager.EnterChildren(toEnter)
	return outcome{}
}

// Send dispatches an action: first the current state's handler, then the
// handler shared by every state. Unknown actions and actions sent to an
// unregistered node are ignored.
func (n *Node) Send(action domain.Action) {
	if n.removed {
		n.tree.logger.Debug("animator action ignored on removed node", "node", n.id, "action", action)
		return
	}
	if proc, ok := states[n.state].actions[action]; ok {
		n.process(proc, action)
	}
	if n.removed {
		return
	}
	if proc, ok := anyState[action]; ok {
		n.process(proc, action)
	}
}

func (n *Node) process(proc procedure, action domain.Action) {
	out := proc(n)
	if out.state == "" {
		return
	}
	if out.delay > 0 {
		target := out.state
		n.sched.Start(out.delay, func() { n.transition(target, action) })
		return
	}
	n.transition(out.state, action)
}

func (n *Node) transition(to domain.State, action domain.Action) {
	if n.removed || n.state == to {
		return
	}
	from := n.state
	n.state = to
	n.sched.Stop()

	entry := states[to].entry
	if entry.execute != nil {
		entry.execute(n)
		// A child callback moved this node again; the newer transition owns
		// the timer and notifications.
		if n.removed || n.state != to {
			return
		}
	}
	if entry.schedule != nil {
		seconds, next := entry.schedule(n)
		n.sched.Start(seconds, func() { n.Send(next) })
	}

	if fn := n.UserSettings().OnTransition; fn != nil {
		fn(n)
	}

	subs := append([]subscription(nil), n.subs...)
	for _, sub := range subs {
		if n.removed {
			break
		}
		sub.fn(n)
	}

	n.tree.logger.Debug("animator transition", "node", n.id, "from", from, "to", to, "action", action)
	if n.tree.hooks.OnTransition != nil {
		n.tree.hooks.OnTransition(&domain.TransitionEvent{
			EventBase: n.tree.eventBase(domain.EventTransition),
			NodeID:    n.id,
			From:      from,
			To:        to,
			Action:    action,
		})
	}
}
