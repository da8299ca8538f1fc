package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/animator/pkg/adapters/loam"
	"github.com/aretw0/animator/pkg/adapters/memory"
	"github.com/aretw0/animator/pkg/adapters/redis"
	"github.com/aretw0/animator/pkg/persistence"
	"github.com/aretw0/animator/pkg/persistence/middleware"
	"github.com/aretw0/animator/pkg/ports"
	"github.com/aretw0/animator/pkg/scene"
	"github.com/aretw0/animator/pkg/scheduler"
	"github.com/spf13/cobra"
)

const (
	lockTTL     = 12 * time.Hour
	lockTimeout = 5 * time.Second
)

// openStore builds the override store selected by --store. With redis, the
// scene is also locked so a second server on the same store fails fast; the
// lock expiry bounds how long a crashed server keeps the scene.
// release must be called on shutdown.
func openStore(ctx context.Context, cmd *cobra.Command, sceneName string, logger *slog.Logger) (ports.OverrideStore, func(), error) {
	kind, _ := cmd.Flags().GetString("store")
	release := func() {}

	var store ports.OverrideStore
	switch kind {
	case "memory", "":
		store = memory.NewStore()
	case "file":
		dir, _ := cmd.Flags().GetString("store-dir")
		s, err := loam.Open(dir)
		if err != nil {
			return nil, nil, err
		}
		store = s
	case "redis":
		addr, _ := cmd.Flags().GetString("redis-addr")
		s := redis.New(addr)

		lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
		defer cancel()
		unlock, err := redis.NewLocker(s.Client(), "animator:").Lock(lockCtx, "serve:"+sceneName, lockTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("scene %s is served elsewhere: %w", sceneName, err)
		}
		release = func() {
			if err := unlock(context.Background()); err != nil {
				logger.Warn("failed to release scene lock", "scene", sceneName, "error", err)
			}
		}
		store = s
	default:
		return nil, nil, fmt.Errorf("unknown store %q", kind)
	}

	return middleware.Chain(store,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewValidationMiddleware(),
	), release, nil
}

// restore loads the stored overrides and applies them on the loop.
func restore(ctx context.Context, loop *scheduler.Loop, store ports.OverrideStore, m *scene.Mounted, logger *slog.Logger) error {
	o, err := persistence.Load(ctx, store, m.System.ID())
	if err != nil {
		return err
	}
	if len(o) == 0 {
		return nil
	}

	var unknown []string
	var applyErr error
	if err := loop.Do(ctx, func() {
		unknown, applyErr = persistence.Apply(m.System, o)
	}); err != nil {
		return err
	}
	for _, k := range unknown {
		logger.Warn("stored override for unknown node", "node", k)
	}
	if applyErr != nil {
		logger.Warn("some stored overrides were not applied", "error", applyErr)
	}
	logger.Info("restored overrides", "nodes", len(o)-len(unknown))
	return nil
}
