package persistence_test

import (
	"context"
	"testing"

	"github.com/aretw0/animator"
	"github.com/aretw0/animator/pkg/adapters/memory"
	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/dsl"
	"github.com/aretw0/animator/pkg/persistence"
	"github.com/aretw0/animator/pkg/ports"
	"github.com/aretw0/animator/pkg/scene"
	"github.com/aretw0/animator/pkg/scheduler"
	"github.com/aretw0/animator/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountPanel(t *testing.T) (*scene.Mounted, *scheduler.ManualClock) {
	t.Helper()
	b := dsl.New("panel")
	root := b.Root("panel")
	root.Child("header")
	root.Child("footer").Condition(false)
	sc, err := b.Build()
	require.NoError(t, err)

	clock := scheduler.NewManualClock()
	m, err := scene.NewSystem(sc, animator.WithClock(clock))
	require.NoError(t, err)
	clock.AdvanceSeconds(1)
	return m, clock
}

func TestOverride(t *testing.T) {
	m, _ := mountPanel(t)
	footer, _ := m.Node("footer")
	require.Equal(t, domain.StateExited, footer.State())

	require.NoError(t, persistence.Override(footer, map[string]any{"condition": true}))
	assert.Equal(t, domain.StateEntering, footer.State(), "parent refresh enters the allowed node")

	err := persistence.Override(footer, map[string]any{"duration": map[string]any{"exit": -1}})
	require.Error(t, err)
	assert.True(t, footer.Settings().Allows(footer), "rejected props keep the previous override")

	require.NoError(t, persistence.Clear(footer))
	assert.Equal(t, domain.StateExiting, footer.State(), "clearing restores the declared condition")
}

func TestClear_KeepsOverrideWhenBaseInvalid(t *testing.T) {
	sys := animator.New()
	exit := 0.2
	n, err := sys.Register(nil, settings.ProviderFunc(func() domain.SettingsPartial {
		return domain.SettingsPartial{Duration: &domain.DurationPartial{Exit: domain.Ptr(exit)}}
	}))
	require.NoError(t, err)

	require.NoError(t, persistence.Override(n, map[string]any{"duration": map[string]any{"exit": 0.5}}))
	exit = -1

	err = persistence.Clear(n)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	assert.Equal(t, 0.5, n.Settings().Duration.Exit)
}

func TestKey(t *testing.T) {
	sys := animator.New()
	root, err := sys.Register(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, string(root.ID()), persistence.Key(root))

	root.SetName("menu")
	assert.Equal(t, "menu", persistence.Key(root))
}

func TestApply(t *testing.T) {
	m, _ := mountPanel(t)

	unknown, err := persistence.Apply(m.System, ports.Overrides{
		"footer": {"condition": true},
		"header": {"manager": "zigzag"},
		"ghost":  {"merge": true},
	})
	assert.Equal(t, []string{"ghost"}, unknown)
	require.Error(t, err)
	errs := settings.ValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "header")

	footer, _ := m.Node("footer")
	assert.Equal(t, domain.StateEntering, footer.State())
}

func TestLoad_RoundTrip(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "panel", "footer", map[string]any{"condition": true}))

	o, err := persistence.Load(ctx, store, "panel")
	require.NoError(t, err)

	m, _ := mountPanel(t)
	unknown, err := persistence.Apply(m.System, o)
	require.NoError(t, err)
	assert.Empty(t, unknown)
}
