package main

import (
	"log/slog"

	"github.com/aretw0/animator"
	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/observability"
	"github.com/aretw0/animator/pkg/scene"
	"github.com/aretw0/animator/pkg/scheduler"
)

// loadScene reads and validates a scene file.
func loadScene(path string) (*scene.Scene, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	if err := scene.Validate(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// mount creates a system for sc and mounts it. The transition callback, when
// set, receives the scene name of the node together with the event.
func mount(sc *scene.Scene, clock scheduler.Clock, logger *slog.Logger, onTransition func(name string, e *domain.TransitionEvent), extra ...domain.LifecycleHooks) (*scene.Mounted, error) {
	general, err := sc.GeneralSettings()
	if err != nil {
		return nil, err
	}

	var sys *animator.System
	hooks := domain.LifecycleHooks{}
	if onTransition != nil {
		hooks.OnTransition = func(e *domain.TransitionEvent) {
			name := string(e.NodeID)
			if n, ok := sys.Node(e.NodeID); ok && n.Name() != "" {
				name = n.Name()
			}
			onTransition(name, e)
		}
	}

	sys = animator.New(
		animator.WithID(sc.Name),
		animator.WithClock(clock),
		animator.WithLogger(logger),
		animator.WithGeneralSettings(general),
		animator.WithLifecycleHooks(observability.Combine(append([]domain.LifecycleHooks{hooks}, extra...)...)),
	)
	return scene.Build(sys, sc)
}
