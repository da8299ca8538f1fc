package animator

import (
	"github.com/aretw0/animator/internal/runtime"
	"github.com/aretw0/animator/pkg/domain"
)

// Node is a handle to one registered animator.
type Node struct {
	system *System
	node   *runtime.Node
	name   string
}

// ID returns the node identifier.
func (n *Node) ID() domain.NodeID { return n.node.ID() }

// Name returns the label set with SetName, if any.
func (n *Node) Name() string { return n.name }

// SetName attaches a human readable label used by renderers and adapters.
func (n *Node) SetName(name string) { n.name = name }

// State returns the current state.
func (n *Node) State() domain.State { return n.node.State() }

// Settings returns the resolved settings, with combine durations applied.
func (n *Node) Settings() domain.Settings { return n.node.Settings() }

// Foreign returns the value attached through Control().SetForeign.
func (n *Node) Foreign() any { return n.node.Foreign() }

// Send dispatches an action to the node's state machine.
func (n *Node) Send(action domain.Action) { n.node.Send(action) }

// Removed reports whether the node was unregistered.
func (n *Node) Removed() bool { return n.node.Removed() }

// Manager returns the name of the node's active manager.
func (n *Node) Manager() domain.ManagerName { return n.node.ManagerName() }

// Subscribe calls fn after every transition of the node.
// Subscribers run in subscription order; the returned function removes fn.
func (n *Node) Subscribe(fn func(*Node)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	return n.node.Subscribe(func(domain.Animator) { fn(n) })
}

// Parent returns the parent node, or nil for the root and detached nodes.
func (n *Node) Parent() *Node {
	p := n.node.Parent()
	if p == nil {
		return nil
	}
	return n.system.nodes[p.ID()]
}

// Children returns the node's children in registration order.
func (n *Node) Children() []*Node {
	kids := n.node.ChildNodes()
	out := make([]*Node, 0, len(kids))
	for _, c := range kids {
		out = append(out, n.system.nodes[c.ID()])
	}
	return out
}

// Control returns the mutable side of the node.
func (n *Node) Control() Control { return Control{node: n.node} }

func (n *Node) snapshot(depth int) domain.NodeSnapshot {
	s := n.Settings()
	snap := domain.NodeSnapshot{
		ID:       n.ID(),
		Name:     n.name,
		ParentID: n.node.ParentID(),
		Depth:    depth,
		State:    n.State(),
		Manager:  n.Manager(),
		Merge:    s.Merge,
		Combine:  s.Combine,
		Allowed:  s.Allows(n.node),
		Enter:    s.Duration.Enter,
		Exit:     s.Duration.Exit,
	}
	for _, c := range n.node.ChildNodes() {
		snap.Children = append(snap.Children, c.ID())
	}
	return snap
}

// Control gives owners of a node access to its dynamic settings and foreign value.
type Control struct {
	node *runtime.Node
}

// GetSettings returns the dynamic settings overlay.
func (c Control) GetSettings() domain.SettingsPartial { return c.node.DynamicSettings() }

// SetSettings replaces the dynamic settings overlay, the highest priority layer.
// Send domain.ActionUpdate afterwards to apply manager or active changes.
func (c Control) SetSettings(p domain.SettingsPartial) { c.node.SetDynamicSettings(p) }

// GetForeign returns the attached opaque value.
func (c Control) GetForeign() any { return c.node.Foreign() }

// SetForeign attaches an opaque value, typically a view element.
func (c Control) SetForeign(v any) { c.node.SetForeign(v) }
