/*
Package animator orchestrates enter and exit transitions across a tree of nested
interface elements.

Each registered node is a small state machine moving between exited, entering,
entered and exiting. A parent decides when and in which order its children
enter through a manager strategy (parallel, sequence, stagger and their
reversed variants, or switch), and a per-node scheduler fires the timed
completions. The package never renders anything: hosts observe transitions
through subscribers and drive their own views.

# Concept

A System owns one tree. Nodes are registered top-down with a settings
provider, then receive the setup action. The root enters on its own when it is
active; every other node follows its parent.

Settings are resolved on every read, from lowest to highest priority: the
built-in defaults, the system's general settings, the node's provider, and the
dynamic overlay set through Control. Durations are expressed in seconds.

# Usage

	clock := scheduler.NewManualClock()
	sys := animator.New(animator.WithClock(clock))

	root, _ := sys.Register(nil, settings.Static(domain.SettingsPartial{
		Manager: domain.Ptr(domain.ManagerStagger),
	}))
	item, _ := sys.Register(root, nil)

	item.Subscribe(func(n *animator.Node) {
		fmt.Println(n.State())
	})

	root.Send(domain.ActionSetup)
	item.Send(domain.ActionSetup)
	clock.AdvanceSeconds(1)

# Clocks

Timed transitions go through a scheduler.Clock. NopClock (the default) never
fires timers, ManualClock advances virtual time for tests and frame-driven
hosts, and Loop runs timers in real time on a single goroutine.

A System is not safe for concurrent use.
*/
package animator
