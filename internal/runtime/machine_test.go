package runtime_test

import (
	"testing"

	"github.com/aretw0/animator/internal/runtime"
	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManualTree() (*runtime.Tree, *scheduler.ManualClock) {
	clock := scheduler.NewManualClock()
	return runtime.NewTree(runtime.WithClock(clock)), clock
}

func record(n *runtime.Node) *[]domain.State {
	var states []domain.State
	n.Subscribe(func(a domain.Animator) { states = append(states, a.State()) })
	return &states
}

func manager(name domain.ManagerName) *domain.ManagerName { return &name }

func TestMachine_RootLifecycle(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})
	states := record(root)

	root.Send(domain.ActionSetup)
	assert.Equal(t, domain.StateEntering, root.State())

	clock.AdvanceSeconds(0.39)
	assert.Equal(t, domain.StateEntering, root.State())
	clock.AdvanceSeconds(0.01)
	assert.Equal(t, domain.StateEntered, root.State())

	root.Send(domain.ActionExit)
	assert.Equal(t, domain.StateExiting, root.State())
	clock.AdvanceSeconds(0.4)
	assert.Equal(t, domain.StateExited, root.State())

	assert.Equal(t, []domain.State{
		domain.StateEntering, domain.StateEntered, domain.StateExiting, domain.StateExited,
	}, *states)
}

func TestMachine_RootDelay(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{
		Duration: &domain.DurationPartial{Delay: domain.Ptr(0.2)},
	})

	root.Send(domain.ActionSetup)
	assert.Equal(t, domain.StateExited, root.State())

	clock.AdvanceSeconds(0.2)
	assert.Equal(t, domain.StateEntering, root.State())
	clock.AdvanceSeconds(0.4)
	assert.Equal(t, domain.StateEntered, root.State())
}

func TestMachine_InactiveRoot(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{Active: domain.Ptr(false)})

	root.Send(domain.ActionSetup)
	clock.AdvanceSeconds(1)
	assert.Equal(t, domain.StateExited, root.State())

	root.SetDynamicSettings(domain.SettingsPartial{Active: domain.Ptr(true)})
	root.Send(domain.ActionUpdate)
	assert.Equal(t, domain.StateEntering, root.State())
	clock.AdvanceSeconds(0.4)
	assert.Equal(t, domain.StateEntered, root.State())

	root.SetDynamicSettings(domain.SettingsPartial{Active: domain.Ptr(false)})
	root.Send(domain.ActionUpdate)
	assert.Equal(t, domain.StateExiting, root.State())
	clock.AdvanceSeconds(0.4)
	assert.Equal(t, domain.StateExited, root.State())
}

func TestMachine_IgnoredActions(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})
	states := record(root)

	root.Send(domain.ActionExit)
	root.Send(domain.ActionEnterEnd)
	root.Send(domain.ActionExitEnd)
	root.Send(domain.Action("jump"))
	assert.Empty(t, *states)

	root.Send(domain.ActionEnter)
	root.Send(domain.ActionEnter)
	clock.AdvanceSeconds(0.4)
	root.Send(domain.ActionEnter)
	root.Send(domain.ActionSetup)
	assert.Equal(t, []domain.State{domain.StateEntering, domain.StateEntered}, *states)
	assert.Equal(t, 0, clock.Pending())
}

func TestMachine_InterruptEntering(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})

	root.Send(domain.ActionEnter)
	clock.AdvanceSeconds(0.2)
	root.Send(domain.ActionExit)
	assert.Equal(t, domain.StateExiting, root.State())

	// The cancelled enterEnd never fires.
	clock.AdvanceSeconds(0.3)
	assert.Equal(t, domain.StateExiting, root.State())

	root.Send(domain.ActionEnter)
	assert.Equal(t, domain.StateEntering, root.State())
	clock.AdvanceSeconds(0.4)
	assert.Equal(t, domain.StateEntered, root.State())
}

func TestMachine_InitialEntered(t *testing.T) {
	tree, _ := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{InitialState: domain.Ptr(domain.StateEntered)})
	assert.Equal(t, domain.StateEntered, root.State())

	root.Send(domain.ActionExit)
	assert.Equal(t, domain.StateExiting, root.State())
}

func TestMachine_Headless(t *testing.T) {
	tree := runtime.NewTree()
	root := register(t, tree, nil, domain.SettingsPartial{})

	root.Send(domain.ActionSetup)
	assert.Equal(t, domain.StateEntering, root.State())
}

func TestMachine_ChildrenEnterAfterParent(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})
	a := register(t, tree, root, domain.SettingsPartial{})
	b := register(t, tree, root, domain.SettingsPartial{})

	root.Send(domain.ActionSetup)
	a.Send(domain.ActionSetup)
	b.Send(domain.ActionSetup)
	assert.Equal(t, domain.StateExited, a.State())

	clock.AdvanceSeconds(0.4)
	assert.Equal(t, domain.StateEntered, root.State())
	assert.Equal(t, domain.StateEntering, a.State())
	assert.Equal(t, domain.StateEntering, b.State())

	clock.AdvanceSeconds(0.4)
	assert.Equal(t, domain.StateEntered, a.State())
	assert.Equal(t, domain.StateEntered, b.State())

	// Exiting propagates immediately.
	root.Send(domain.ActionExit)
	assert.Equal(t, domain.StateExiting, a.State())
	assert.Equal(t, domain.StateExiting, b.State())
	clock.AdvanceSeconds(0.4)
	assert.Equal(t, domain.StateExited, root.State())
	assert.Equal(t, domain.StateExited, a.State())
}

func TestMachine_PlainChildWaitsForParentEntered(t *testing.T) {
	tree, clock := newManualTree()
	second := &domain.DurationPartial{Enter: domain.Ptr(1.0), Exit: domain.Ptr(1.0)}
	root := register(t, tree, nil, domain.SettingsPartial{Duration: second})
	child := register(t, tree, root, domain.SettingsPartial{Duration: second})

	root.Send(domain.ActionSetup)
	assert.Equal(t, domain.StateEntering, root.State())
	assert.Equal(t, domain.StateExited, child.State())

	clock.AdvanceSeconds(0.99)
	assert.Equal(t, domain.StateExited, child.State())

	clock.AdvanceSeconds(0.01)
	assert.Equal(t, domain.StateEntered, root.State())
	assert.Equal(t, domain.StateEntering, child.State())

	clock.AdvanceSeconds(1)
	assert.Equal(t, domain.StateEntered, child.State())
}

func TestMachine_MergeChildEntersWithParent(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})
	merged := register(t, tree, root, domain.SettingsPartial{Merge: domain.Ptr(true)})
	plain := register(t, tree, root, domain.SettingsPartial{})

	root.Send(domain.ActionSetup)
	assert.Equal(t, domain.StateEntering, merged.State())
	assert.Equal(t, domain.StateExited, plain.State())

	clock.AdvanceSeconds(0.4)
	assert.Equal(t, domain.StateEntered, merged.State())
	assert.Equal(t, domain.StateEntering, plain.State())
}

func TestMachine_CombineSequence(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{
		Combine: domain.Ptr(true),
		Manager: manager(domain.ManagerSequence),
	})
	a := register(t, tree, root, domain.SettingsPartial{Duration: &domain.DurationPartial{Enter: domain.Ptr(0.2)}})
	b := register(t, tree, root, domain.SettingsPartial{Duration: &domain.DurationPartial{Enter: domain.Ptr(0.3)}})

	assert.InDelta(t, 0.5, root.Settings().Duration.Enter, 1e-9)
	assert.Equal(t, 0.4, root.UserSettings().Duration.Enter)

	root.Send(domain.ActionSetup)
	assert.Equal(t, domain.StateEntering, a.State())
	assert.Equal(t, domain.StateExited, b.State())

	clock.AdvanceSeconds(0.2)
	assert.Equal(t, domain.StateEntered, a.State())
	assert.Equal(t, domain.StateEntering, b.State())
	assert.Equal(t, domain.StateEntering, root.State())

	clock.AdvanceSeconds(0.3)
	assert.Equal(t, domain.StateEntered, b.State())
	assert.Equal(t, domain.StateEntered, root.State())
}

func TestMachine_CombineWithoutEligibleChildren(t *testing.T) {
	tree, _ := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{
		Combine:  domain.Ptr(true),
		Duration: &domain.DurationPartial{Enter: domain.Ptr(0.7)},
	})
	register(t, tree, root, domain.SettingsPartial{Condition: domain.Allow(false)})

	assert.Equal(t, 0.7, root.Settings().Duration.Enter)
}

func TestMachine_LateJoin(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})
	root.Send(domain.ActionSetup)
	clock.AdvanceSeconds(0.4)
	require.Equal(t, domain.StateEntered, root.State())

	late := register(t, tree, root, domain.SettingsPartial{})
	late.Send(domain.ActionSetup)
	assert.Equal(t, domain.StateEntering, late.State())

	denied := register(t, tree, root, domain.SettingsPartial{Condition: domain.Allow(false)})
	denied.Send(domain.ActionSetup)
	assert.Equal(t, domain.StateExited, denied.State())
}

func TestMachine_LateJoinWhileParentEntering(t *testing.T) {
	tree, _ := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})
	root.Send(domain.ActionSetup)
	require.Equal(t, domain.StateEntering, root.State())

	plain := register(t, tree, root, domain.SettingsPartial{})
	plain.Send(domain.ActionSetup)
	assert.Equal(t, domain.StateExited, plain.State())

	merged := register(t, tree, root, domain.SettingsPartial{Merge: domain.Ptr(true)})
	merged.Send(domain.ActionSetup)
	assert.Equal(t, domain.StateEntering, merged.State())
}

func TestMachine_Refresh(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})
	allowed := true
	child := register(t, tree, root, domain.SettingsPartial{
		Condition: func(domain.Animator) bool { return allowed },
	})

	root.Send(domain.ActionSetup)
	clock.AdvanceSeconds(0.8)
	require.Equal(t, domain.StateEntered, child.State())

	allowed = false
	root.Send(domain.ActionRefresh)
	assert.Equal(t, domain.StateExiting, child.State())
	clock.AdvanceSeconds(0.4)
	assert.Equal(t, domain.StateExited, child.State())

	// Refresh of a stable tree changes nothing.
	root.Send(domain.ActionRefresh)
	assert.Equal(t, domain.StateExited, child.State())

	allowed = true
	root.Send(domain.ActionRefresh)
	assert.Equal(t, domain.StateEntering, child.State())
}

func TestMachine_RefreshWhileEntering(t *testing.T) {
	tree, _ := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{Combine: domain.Ptr(true)})
	allowed := true
	combined := register(t, tree, root, domain.SettingsPartial{
		Condition: func(domain.Animator) bool { return allowed },
	})

	root.Send(domain.ActionSetup)
	require.Equal(t, domain.StateEntering, combined.State())

	allowed = false
	root.Send(domain.ActionRefresh)
	assert.Equal(t, domain.StateExiting, combined.State())
}

func TestMachine_RefreshNonCombineEntering(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})
	allowed := false
	child := register(t, tree, root, domain.SettingsPartial{
		Condition: func(domain.Animator) bool { return allowed },
	})

	root.Send(domain.ActionSetup)
	require.Equal(t, domain.StateEntering, root.State())
	require.Equal(t, domain.StateExited, child.State())

	// A plain child allowed mid-entry starts entering right away; refresh
	// does not hold it back until the parent is entered.
	allowed = true
	root.Send(domain.ActionRefresh)
	assert.Equal(t, domain.StateEntering, root.State())
	assert.Equal(t, domain.StateEntering, child.State())

	// The parent's own entered step leaves the already visible child alone.
	clock.AdvanceSeconds(0.4)
	assert.Equal(t, domain.StateEntered, root.State())
	assert.Equal(t, domain.StateEntered, child.State())
}

func TestMachine_RefreshIgnoredWhenHidden(t *testing.T) {
	tree, _ := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})
	child := register(t, tree, root, domain.SettingsPartial{})

	root.Send(domain.ActionRefresh)
	assert.Equal(t, domain.StateExited, child.State())
}

func TestMachine_UpdateSwapsManager(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})
	a := register(t, tree, root, domain.SettingsPartial{})
	b := register(t, tree, root, domain.SettingsPartial{})
	require.Equal(t, domain.ManagerParallel, root.ManagerName())

	root.SetDynamicSettings(domain.SettingsPartial{
		Manager:  manager(domain.ManagerStagger),
		Duration: &domain.DurationPartial{Stagger: domain.Ptr(0.1)},
	})
	root.Send(domain.ActionUpdate)
	assert.Equal(t, domain.ManagerStagger, root.ManagerName())
	// An active root that is not visible is entered by update as well.
	assert.Equal(t, domain.StateEntering, root.State())

	clock.AdvanceSeconds(0.4)
	assert.Equal(t, domain.StateEntering, a.State())
	assert.Equal(t, domain.StateExited, b.State())
	clock.AdvanceSeconds(0.1)
	assert.Equal(t, domain.StateEntering, b.State())
}

func TestMachine_UpdateKeepsManagerOnUnknownName(t *testing.T) {
	tree, _ := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})

	root.SetDynamicSettings(domain.SettingsPartial{Manager: manager("bogus")})
	root.Send(domain.ActionUpdate)
	assert.Equal(t, domain.ManagerParallel, root.ManagerName())
}

func TestMachine_UpdateOnChildIgnoresActive(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})
	child := register(t, tree, root, domain.SettingsPartial{})
	root.Send(domain.ActionSetup)
	clock.AdvanceSeconds(0.8)

	child.SetDynamicSettings(domain.SettingsPartial{Active: domain.Ptr(false)})
	child.Send(domain.ActionUpdate)
	assert.Equal(t, domain.StateEntered, child.State())
}

func TestMachine_NotificationOrder(t *testing.T) {
	tree, _ := newManualTree()
	var calls []string
	root := register(t, tree, nil, domain.SettingsPartial{
		OnTransition: func(domain.Animator) { calls = append(calls, "onTransition") },
	})
	root.Subscribe(func(domain.Animator) { calls = append(calls, "first") })
	root.Subscribe(func(domain.Animator) { calls = append(calls, "second") })

	root.Send(domain.ActionSetup)
	assert.Equal(t, []string{"onTransition", "first", "second"}, calls)
}

func TestMachine_Unsubscribe(t *testing.T) {
	tree, _ := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})

	calls := 0
	var unsubscribe func()
	unsubscribe = root.Subscribe(func(domain.Animator) {
		calls++
		unsubscribe()
	})
	other := 0
	root.Subscribe(func(domain.Animator) { other++ })

	root.Send(domain.ActionEnter)
	root.Send(domain.ActionExit)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
	assert.Equal(t, 1, root.Subscribers())

	unsubscribe()
	assert.Equal(t, 1, root.Subscribers())
}

func TestMachine_SwitchEntersOneChild(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{Manager: manager(domain.ManagerSwitch)})
	hidden := register(t, tree, root, domain.SettingsPartial{Condition: domain.Allow(false)})
	first := register(t, tree, root, domain.SettingsPartial{})
	second := register(t, tree, root, domain.SettingsPartial{})

	root.Send(domain.ActionSetup)
	clock.AdvanceSeconds(0.4)
	assert.Equal(t, domain.StateExited, hidden.State())
	assert.Equal(t, domain.StateEntering, first.State())
	assert.Equal(t, domain.StateExited, second.State())
}

func TestMachine_ForeignValue(t *testing.T) {
	tree, _ := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{})
	assert.Nil(t, root.Foreign())

	root.SetForeign("element")
	assert.Equal(t, "element", root.Foreign())
}

func TestMachine_SwitchRefreshWaitsForOutgoing(t *testing.T) {
	tree, clock := newManualTree()
	root := register(t, tree, nil, domain.SettingsPartial{Manager: manager(domain.ManagerSwitch)})
	showA := true
	a := register(t, tree, root, domain.SettingsPartial{
		Condition: func(domain.Animator) bool { return showA },
	})
	b := register(t, tree, root, domain.SettingsPartial{
		Condition: func(domain.Animator) bool { return !showA },
	})

	root.Send(domain.ActionSetup)
	clock.AdvanceSeconds(0.8)
	require.Equal(t, domain.StateEntered, a.State())
	require.Equal(t, domain.StateExited, b.State())

	showA = false
	root.Send(domain.ActionRefresh)
	assert.Equal(t, domain.StateExiting, a.State())
	assert.Equal(t, domain.StateExited, b.State())

	clock.AdvanceSeconds(0.39)
	assert.Equal(t, domain.StateExiting, a.State())
	assert.Equal(t, domain.StateExited, b.State())

	clock.AdvanceSeconds(0.01)
	assert.Equal(t, domain.StateExited, a.State())
	assert.Equal(t, domain.StateEntering, b.State())
}
