package runtime

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/aretw0/animator/internal/logging"
	"github.com/aretw0/animator/internal/manager"
	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/scheduler"
	"github.com/aretw0/animator/pkg/settings"
)

// Tree is the arena owning every node of one animator system.
// Nodes reference their parent and children by ID only; the tree is the sole
// owner of node lifetime, so teardown order never matters.
//
// A Tree is not safe for concurrent use. All calls, including timer callbacks,
// must happen on one goroutine (see scheduler.Loop for real-time hosts).
type Tree struct {
	id      string
	clock   scheduler.Clock
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	general domain.SettingsPartial

	nodes map[domain.NodeID]*Node
	root  domain.NodeID
	seq   uint64
}

// TreeOption configures a Tree.
type TreeOption func(*Tree)

// WithClock sets the clock used by node schedulers and managers.
func WithClock(clock scheduler.Clock) TreeOption {
	return func(t *Tree) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) TreeOption {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) TreeOption {
	return func(t *Tree) {
		t.hooks = hooks
	}
}

// WithGeneralSettings sets the settings shared by every node, below each node's own.
func WithGeneralSettings(general domain.SettingsPartial) TreeOption {
	return func(t *Tree) {
		t.general = general
	}
}

// WithID sets the system identifier used in events and node IDs.
func WithID(id string) TreeOption {
	return func(t *Tree) {
		if id != "" {
			t.id = id
		}
	}
}

// NewTree creates an empty tree. Without WithClock nodes run headless.
func NewTree(opts ...TreeOption) *Tree {
	t := &Tree{
		id:     "animator",
		clock:  scheduler.NopClock{},
		logger: logging.NewNop(),
		nodes:  make(map[domain.NodeID]*Node),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the system identifier.
func (t *Tree) ID() string { return t.id }

// Clock returns the clock shared by the tree's nodes.
func (t *Tree) Clock() scheduler.Clock { return t.clock }

// Register creates a node under parentID, or as the root when parentID is empty.
// The node starts in its configured initial state and does nothing until it
// receives ActionSetup.
func (t *Tree) Register(parentID domain.NodeID, provider settings.Provider) (*Node, error) {
	var parent *Node
	if parentID == "" {
		if t.root != "" {
			return nil, domain.ErrRootExists
		}
	} else {
		p, ok := t.nodes[parentID]
		if !ok {
			return nil, fmt.Errorf("parent %s: %w", parentID, domain.ErrNodeNotFound)
		}
		parent = p
	}

	if provider == nil {
		provider = settings.Empty
	}

	t.seq++
	n := &Node{
		tree:     t,
		id:       domain.NodeID(fmt.Sprintf("%s:%d", t.id, t.seq)),
		parentID: parentID,
		provider: provider,
		sched:    scheduler.New(t.clock),
	}

	s := n.UserSettings()
	if err := settings.Validate(s); err != nil {
		return nil, fmt.Errorf("invalid settings for new node: %w", err)
	}

	m, err := manager.New(s.Manager, n)
	if err != nil {
		return nil, err
	}
	n.manager = m
	n.state = s.InitialState

	t.nodes[n.id] = n
	if parent != nil {
		parent.children = append(parent.children, n.id)
	} else {
		t.root = n.id
	}

	t.logger.Debug("animator node registered", "node", n.id, "parent", parentID, "state", n.state)
	if t.hooks.OnRegister != nil {
		t.hooks.OnRegister(&domain.NodeEvent{
			EventBase: t.eventBase(domain.EventRegister),
			NodeID:    n.id,
			ParentID:  parentID,
		})
	}

	return n, nil
}

// Unregister detaches the node from its parent and releases its timer, manager
// and subscribers. Children are not unregistered; they stay in the tree as
// orphans until their owners unregister them.
func (t *Tree) Unregister(id domain.NodeID) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("node %s: %w", id, domain.ErrNodeNotFound)
	}

	if parent, ok := t.nodes[n.parentID]; ok {
		parent.children = slices.DeleteFunc(parent.children, func(c domain.NodeID) bool { return c == id })
	}
	if t.root == id {
		t.root = ""
	}
	delete(t.nodes, id)
	n.dispose()

	t.logger.Debug("animator node unregistered", "node", id)
	if t.hooks.OnUnregister != nil {
		t.hooks.OnUnregister(&domain.NodeEvent{
			EventBase: t.eventBase(domain.EventUnregister),
			NodeID:    id,
			ParentID:  n.parentID,
		})
	}
	return nil
}

// Node returns a registered node.
func (t *Tree) Node(id domain.NodeID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Root returns the root node, or nil before one is registered.
func (t *Tree) Root() *Node {
	if t.root == "" {
		return nil
	}
	return t.nodes[t.root]
}

// Len returns the number of registered nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Walk visits the root subtree depth-first, parents before children.
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	root := t.Root()
	if root == nil {
		return
	}
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		fn(n, depth)
		for _, child := range n.ChildNodes() {
			visit(child, depth+1)
		}
	}
	visit(root, 0)
}

func (t *Tree) eventBase(kind domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: t.clock.Now(),
		Type:      kind,
		SystemID:  t.id,
	}
}
