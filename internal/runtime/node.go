package runtime

import (
	"slices"

	"github.com/aretw0/animator/internal/manager"
	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/scheduler"
	"github.com/aretw0/animator/pkg/settings"
)

type subscription struct {
	id uint64
	fn domain.Subscriber
}

// Node is one animator state machine. It implements domain.Animator and is the
// manager.Host of its own manager.
type Node struct {
	tree     *Tree
	id       domain.NodeID
	parentID domain.NodeID
	children []domain.NodeID

	provider settings.Provider
	dynamic  domain.SettingsPartial
	foreign  any

	subs   []subscription
	subSeq uint64

	sched   *scheduler.Scheduler
	manager manager.Manager
	state   domain.State
	removed bool
}

// ID returns the node identifier.
func (n *Node) ID() domain.NodeID { return n.id }

// State returns the current state.
func (n *Node) State() domain.State { return n.state }

// Removed reports whether the node was unregistered.
func (n *Node) Removed() bool { return n.removed }

// IsRoot reports whether the node was registered without a parent.
func (n *Node) IsRoot() bool { return n.parentID == "" }

// ParentID returns the parent identifier, empty for the root.
func (n *Node) ParentID() domain.NodeID { return n.parentID }

// Parent returns the parent node, or nil for the root and for orphans.
func (n *Node) Parent() *Node {
	if n.parentID == "" {
		return nil
	}
	p, _ := n.tree.nodes[n.parentID]
	return p
}

// ChildNodes returns the registered children in insertion order.
func (n *Node) ChildNodes() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, id := range n.children {
		if c, ok := n.tree.nodes[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Children implements manager.Host.
func (n *Node) Children() []domain.Animator {
	nodes := n.ChildNodes()
	out := make([]domain.Animator, len(nodes))
	for i, c := range nodes {
		out[i] = c
	}
	return out
}

// Clock implements manager.Host.
func (n *Node) Clock() scheduler.Clock { return n.tree.clock }

// ManagerName returns the name of the active manager.
func (n *Node) ManagerName() domain.ManagerName { return n.manager.Name() }

// UserSettings resolves defaults, general, provided and dynamic settings, in that order.
// It is evaluated on every call and never cached.
func (n *Node) UserSettings() domain.Settings {
	return settings.Resolve(n.tree.general, n.provider.Resolve(), n.dynamic)
}

// Settings returns UserSettings, with the enter duration of combine nodes
// replaced by the time their manager needs to enter the eligible children.
func (n *Node) Settings() domain.Settings {
	s := n.UserSettings()
	if !s.Combine || n.manager == nil {
		return s
	}
	eligible := n.filterChildren(func(c *Node, cs domain.Settings) bool {
		return cs.Allows(c)
	})
	if len(eligible) > 0 {
		s.Duration.Enter = n.manager.DurationEnter(eligible)
	}
	return s
}

// DynamicSettings returns the overlay set with SetDynamicSettings.
func (n *Node) DynamicSettings() domain.SettingsPartial { return n.dynamic }

// SetDynamicSettings replaces the dynamic overlay. The zero value clears it.
// Changes take effect on the next read; send ActionUpdate to re-evaluate the
// manager or the root activation.
func (n *Node) SetDynamicSettings(p domain.SettingsPartial) { n.dynamic = p }

// Foreign returns the caller-attached value.
func (n *Node) Foreign() any { return n.foreign }

// SetForeign attaches an opaque value to the node.
func (n *Node) SetForeign(v any) { n.foreign = v }

// Subscribe registers fn to be called after every transition and returns a
// function that removes it.
func (n *Node) Subscribe(fn domain.Subscriber) (unsubscribe func()) {
	if fn == nil || n.removed {
		return func() {}
	}
	n.subSeq++
	id := n.subSeq
	n.subs = append(n.subs, subscription{id: id, fn: fn})
	return func() { n.unsubscribe(id) }
}

func (n *Node) unsubscribe(id uint64) {
	n.subs = slices.DeleteFunc(n.subs, func(s subscription) bool { return s.id == id })
}

// Subscribers returns the number of active subscribers.
func (n *Node) Subscribers() int { return len(n.subs) }

// filterChildren returns the children accepted by keep, in insertion order.
func (n *Node) filterChildren(keep func(c *Node, cs domain.Settings) bool) []domain.Animator {
	var out []domain.Animator
	for _, c := range n.ChildNodes() {
		if keep(c, c.UserSettings()) {
			out = append(out, c)
		}
	}
	return out
}

func (n *Node) dispose() {
	n.removed = true
	n.sched.Stop()
	if n.manager != nil {
		n.manager.Destroy()
	}
	n.subs = nil
}
