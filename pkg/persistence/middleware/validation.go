package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/animator/pkg/ports"
	"github.com/aretw0/animator/pkg/settings"
)

type validationMiddleware struct {
	next ports.OverrideStore
}

// NewValidationMiddleware rejects props that do not decode into valid
// settings, so a store never holds overrides a later restore would refuse.
func NewValidationMiddleware() Middleware {
	return func(next ports.OverrideStore) ports.OverrideStore {
		return &validationMiddleware{next: next}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, systemID, node string, props map[string]any) error {
	p, err := settings.Decode(props)
	if err != nil {
		return fmt.Errorf("refusing overrides for %s: %w", node, err)
	}
	if err := settings.Validate(settings.Resolve(p)); err != nil {
		return fmt.Errorf("refusing overrides for %s: %w", node, err)
	}
	return m.next.Save(ctx, systemID, node, props)
}

func (m *validationMiddleware) Load(ctx context.Context, systemID string) (ports.Overrides, error) {
	return m.next.Load(ctx, systemID)
}

func (m *validationMiddleware) Delete(ctx context.Context, systemID, node string) error {
	return m.next.Delete(ctx, systemID, node)
}
