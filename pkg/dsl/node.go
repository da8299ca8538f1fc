package dsl

import (
	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/scene"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	id       string
	preset   string
	props    map[string]any
	children []*NodeBuilder
}

func newNode(id string) *NodeBuilder {
	return &NodeBuilder{id: id, props: make(map[string]any)}
}

func (n *NodeBuilder) duration(key string, seconds float64) *NodeBuilder {
	d, ok := n.props["duration"].(map[string]any)
	if !ok {
		d = make(map[string]any)
		n.props["duration"] = d
	}
	d[key] = seconds
	return n
}

// Child appends a child node and returns its builder.
func (n *NodeBuilder) Child(id string) *NodeBuilder {
	c := newNode(id)
	n.children = append(n.children, c)
	return c
}

// Children appends several leaf children.
func (n *NodeBuilder) Children(ids ...string) *NodeBuilder {
	for _, id := range ids {
		n.Child(id)
	}
	return n
}

// Preset applies named builder presets under the node's own settings.
func (n *NodeBuilder) Preset(name string) *NodeBuilder {
	n.preset = name
	return n
}

// Manager sets the strategy used to enter the node's children.
func (n *NodeBuilder) Manager(name domain.ManagerName) *NodeBuilder {
	n.props["manager"] = string(name)
	return n
}

// Active toggles root activation.
func (n *NodeBuilder) Active(active bool) *NodeBuilder {
	n.props["active"] = active
	return n
}

// Merge makes the node enter together with its parent.
func (n *NodeBuilder) Merge() *NodeBuilder {
	n.props["merge"] = true
	return n
}

// Combine makes the node's entering span the entering of its children.
func (n *NodeBuilder) Combine() *NodeBuilder {
	n.props["combine"] = true
	return n
}

// Condition sets the static enter condition.
func (n *NodeBuilder) Condition(allowed bool) *NodeBuilder {
	n.props["condition"] = allowed
	return n
}

// InitialState sets the state the node is registered in.
func (n *NodeBuilder) InitialState(state domain.State) *NodeBuilder {
	n.props["initialState"] = string(state)
	return n
}

// Enter sets duration.enter in seconds.
func (n *NodeBuilder) Enter(seconds float64) *NodeBuilder { return n.duration("enter", seconds) }

// Exit sets duration.exit in seconds.
func (n *NodeBuilder) Exit(seconds float64) *NodeBuilder { return n.duration("exit", seconds) }

// Delay sets duration.delay in seconds.
func (n *NodeBuilder) Delay(seconds float64) *NodeBuilder { return n.duration("delay", seconds) }

// Offset sets duration.offset in seconds.
func (n *NodeBuilder) Offset(seconds float64) *NodeBuilder { return n.duration("offset", seconds) }

// Stagger sets duration.stagger in seconds.
func (n *NodeBuilder) Stagger(seconds float64) *NodeBuilder { return n.duration("stagger", seconds) }

// Limit sets duration.limit.
func (n *NodeBuilder) Limit(count float64) *NodeBuilder { return n.duration("limit", count) }

// Duration sets a custom named duration.
func (n *NodeBuilder) Duration(name string, seconds float64) *NodeBuilder {
	return n.duration(name, seconds)
}

// Build returns the underlying scene.NodeSpec.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() scene.NodeSpec {
	spec := scene.NodeSpec{ID: n.id, Preset: n.preset}
	if len(n.props) > 0 {
		spec.Settings = n.props
	}
	for _, c := range n.children {
		spec.Children = append(spec.Children, c.Build())
	}
	return spec
}
