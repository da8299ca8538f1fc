package scene

import (
	"fmt"

	"github.com/aretw0/animator"
	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/settings"
)

// Mounted is a scene registered on a system.
type Mounted struct {
	System *animator.System
	// Nodes maps scene ids to registered nodes.
	Nodes map[string]*animator.Node
	// Order lists scene ids parents first.
	Order []string
}

// Node returns the node registered for a scene id.
func (m *Mounted) Node(id string) (*animator.Node, bool) {
	n, ok := m.Nodes[id]
	return n, ok
}

// Root returns the scene root.
func (m *Mounted) Root() *animator.Node { return m.System.Root() }

// NewSystem creates a system named after the scene, using its general
// settings, and mounts the scene on it.
func NewSystem(s *Scene, opts ...animator.Option) (*Mounted, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	general, err := s.GeneralSettings()
	if err != nil {
		return nil, err
	}

	base := []animator.Option{animator.WithID(s.Name), animator.WithGeneralSettings(general)}
	sys := animator.New(append(base, opts...)...)
	return Build(sys, s)
}

// Build registers the scene tree on sys and sends setup to every node,
// children before their parents, the order in which a mounted view tree
// settles. The root enters on its own when active. On failure the nodes
// registered so far are unregistered again, leaving sys as it was.
func Build(sys *animator.System, s *Scene) (*Mounted, error) {
	m := &Mounted{System: sys, Nodes: make(map[string]*animator.Node)}

	var err error
	s.Walk(func(spec NodeSpec, parent string, _ int) {
		if err != nil {
			return
		}
		if _, dup := m.Nodes[spec.ID]; dup {
			err = fmt.Errorf("node %s: duplicate id", spec.ID)
			return
		}

		var p domain.SettingsPartial
		p, err = s.NodeSettings(spec)
		if err != nil {
			return
		}

		var parentNode *animator.Node
		if parent != "" {
			parentNode = m.Nodes[parent]
		}
		var n *animator.Node
		n, err = sys.Register(parentNode, settings.Static(p))
		if err != nil {
			err = fmt.Errorf("node %s: %w", spec.ID, err)
			return
		}
		n.SetName(spec.ID)
		m.Nodes[spec.ID] = n
		m.Order = append(m.Order, spec.ID)
	})
	if err != nil {
		m.rollback()
		return nil, err
	}

	for i := len(m.Order) - 1; i >= 0; i-- {
		m.Nodes[m.Order[i]].Send(domain.ActionSetup)
	}
	return m, nil
}

// rollback unregisters the mounted nodes, children first.
func (m *Mounted) rollback() {
	for i := len(m.Order) - 1; i >= 0; i-- {
		_ = m.System.Unregister(m.Nodes[m.Order[i]])
	}
	m.Nodes = nil
	m.Order = nil
}
