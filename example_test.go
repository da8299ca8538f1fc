package animator_test

import (
	"fmt"

	"github.com/aretw0/animator"
	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/scheduler"
	"github.com/aretw0/animator/pkg/settings"
)

// ExampleNew shows a root staggering its items on a virtual clock.
func ExampleNew() {
	clock := scheduler.NewManualClock()
	sys := animator.New(animator.WithClock(clock))

	root, err := sys.Register(nil, settings.Static(domain.SettingsPartial{
		Manager:  domain.Ptr(domain.ManagerStagger),
		Duration: &domain.DurationPartial{Stagger: domain.Ptr(0.1)},
	}))
	if err != nil {
		panic(err)
	}

	for _, label := range []string{"a", "b"} {
		item, err := sys.Register(root, nil)
		if err != nil {
			panic(err)
		}
		item.Subscribe(func(n *animator.Node) {
			fmt.Printf("%.1fs %s %s\n", clock.Elapsed().Seconds(), label, n.State())
		})
		item.Send(domain.ActionSetup)
	}

	root.Send(domain.ActionSetup)
	clock.AdvanceSeconds(1)

	// Output:
	// 0.4s a entering
	// 0.5s b entering
	// 0.8s a entered
	// 0.9s b entered
}
