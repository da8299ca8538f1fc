package settings

import "github.com/aretw0/animator/pkg/domain"

// Provider supplies the caller-declared settings of a node. It is called on
// every read, so it may reflect configuration that changes over time.
type Provider interface {
	Resolve() domain.SettingsPartial
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func() domain.SettingsPartial

// Resolve calls f.
func (f ProviderFunc) Resolve() domain.SettingsPartial { return f() }

type static domain.SettingsPartial

func (s static) Resolve() domain.SettingsPartial { return domain.SettingsPartial(s) }

// Static returns a Provider that always yields p.
func Static(p domain.SettingsPartial) Provider { return static(p) }

// Empty is a Provider with no declared settings.
var Empty Provider = static{}
