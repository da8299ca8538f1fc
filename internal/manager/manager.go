// Package manager implements the strategies a node uses to propagate enter and
// exit signals to its children: parallel, sequence, stagger (both with reversed
// variants) and switch.
package manager

import (
	"fmt"

	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/scheduler"
)

// Host is the node owning a manager.
type Host interface {
	// UserSettings returns the node's settings without combine adjustments.
	UserSettings() domain.Settings
	// Children returns the node's children in insertion order.
	Children() []domain.Animator
	// Clock is used by strategies that delay their children.
	Clock() scheduler.Clock
}

// Manager decides the order and delay at which children receive enter/exit.
type Manager interface {
	Name() domain.ManagerName
	// DurationEnter returns the time needed to fully enter children.
	// A nil slice means all the host's children.
	DurationEnter(children []domain.Animator) float64
	EnterChildren(children []domain.Animator)
	ExitChildren(children []domain.Animator)
	// Destroy cancels every timer owned by the manager.
	Destroy()
}

// New creates the strategy named name for host.
func New(name domain.ManagerName, host Host) (Manager, error) {
	switch name {
	case domain.ManagerParallel:
		return &parallel{host: host}, nil
	case domain.ManagerSequence:
		return newTimed(name, host, false, sequenceDelays), nil
	case domain.ManagerSequenceReverse:
		return newTimed(name, host, true, sequenceDelays), nil
	case domain.ManagerStagger:
		return newTimed(name, host, false, staggerDelays), nil
	case domain.ManagerStaggerReverse:
		return newTimed(name, host, true, staggerDelays), nil
	case domain.ManagerSwitch:
		return newSwitcher(host), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownManager, name)
	}
}

func orAll(host Host, children []domain.Animator) []domain.Animator {
	if children == nil {
		return host.Children()
	}
	return children
}

func enterDuration(child domain.Animator) float64 {
	return child.Settings().Duration.Enter
}

func exitDuration(child domain.Animator) float64 {
	return child.Settings().Duration.Exit
}
