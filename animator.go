package animator

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/animator/internal/logging"
	"github.com/aretw0/animator/internal/runtime"
	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/scheduler"
	"github.com/aretw0/animator/pkg/settings"
)

// System is the registry of one animator tree.
// It wraps the internal runtime and hands out stable *Node handles.
//
// A System is not safe for concurrent use: register, send and timer callbacks
// must all run on the same goroutine. Use a scheduler.Loop clock and its Do
// method to drive a system from several goroutines.
type System struct {
	tree   *runtime.Tree
	nodes  map[domain.NodeID]*Node
	logger *slog.Logger

	clock   scheduler.Clock
	hooks   domain.LifecycleHooks
	general domain.SettingsPartial
	id      string
}

// Option defines a functional option for configuring the System.
type Option func(*System)

// WithClock sets the clock driving timed transitions.
// The default NopClock never fires, which suits headless rendering.
func WithClock(clock scheduler.Clock) Option {
	return func(s *System) {
		s.clock = clock
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *System) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *System) {
		s.hooks = hooks
	}
}

// WithGeneralSettings sets the settings layer shared by every node.
func WithGeneralSettings(general domain.SettingsPartial) Option {
	return func(s *System) {
		s.general = general
	}
}

// WithID names the system. Node IDs are prefixed with it.
func WithID(id string) Option {
	return func(s *System) {
		s.id = id
	}
}

// New creates an empty system.
func New(opts ...Option) *System {
	s := &System{nodes: make(map[domain.NodeID]*Node)}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.id != "" {
		s.logger = s.logger.With("system", s.id)
	}

	s.tree = runtime.NewTree(
		runtime.WithID(s.id),
		runtime.WithClock(s.clock),
		runtime.WithLogger(s.logger),
		runtime.WithLifecycleHooks(s.hooks),
		runtime.WithGeneralSettings(s.general),
	)
	return s
}

// ID returns the system identifier.
func (s *System) ID() string { return s.tree.ID() }

// Clock returns the clock driving the system.
func (s *System) Clock() scheduler.Clock { return s.tree.Clock() }

// Register adds a node under parent, or the root when parent is nil.
// The provider is consulted on every settings read; nil means no own settings.
// The node stays idle until it receives domain.ActionSetup.
func (s *System) Register(parent *Node, provider settings.Provider) (*Node, error) {
	var parentID domain.NodeID
	if parent != nil {
		if parent.system != s || parent.Removed() {
			return nil, fmt.Errorf("parent %s: %w", parent.ID(), domain.ErrNodeNotFound)
		}
		parentID = parent.ID()
	}

	rn, err := s.tree.Register(parentID, provider)
	if err != nil {
		return nil, err
	}

	n := &Node{system: s, node: rn}
	s.nodes[rn.ID()] = n
	return n, nil
}

// RegisterChild is Register for components that cannot be roots.
func (s *System) RegisterChild(parent *Node, provider settings.Provider) (*Node, error) {
	if parent == nil {
		return nil, domain.ErrParentRequired
	}
	return s.Register(parent, provider)
}

// Unregister removes the node. Its children are left in place, detached.
func (s *System) Unregister(n *Node) error {
	if n == nil || n.system != s {
		return domain.ErrNodeNotFound
	}
	if err := s.tree.Unregister(n.ID()); err != nil {
		return err
	}
	delete(s.nodes, n.ID())
	return nil
}

// Root returns the root node, or nil when none is registered.
func (s *System) Root() *Node {
	rn := s.tree.Root()
	if rn == nil {
		return nil
	}
	return s.nodes[rn.ID()]
}

// Node returns the registered node with the given id.
func (s *System) Node(id domain.NodeID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Len returns the number of registered nodes, orphans included.
func (s *System) Len() int { return s.tree.Len() }

// Nodes returns the root subtree, parents before children.
func (s *System) Nodes() []*Node {
	var out []*Node
	s.tree.Walk(func(rn *runtime.Node, _ int) {
		out = append(out, s.nodes[rn.ID()])
	})
	return out
}

// Snapshot returns a read-only view of the root subtree, parents first.
func (s *System) Snapshot() []domain.NodeSnapshot {
	var out []domain.NodeSnapshot
	s.tree.Walk(func(rn *runtime.Node, depth int) {
		out = append(out, s.nodes[rn.ID()].snapshot(depth))
	})
	return out
}
