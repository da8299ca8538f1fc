package middleware

import (
	"context"
	"log/slog"

	"github.com/aretw0/animator/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.OverrideStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at Debug and failures at Warn.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.OverrideStore) ports.OverrideStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(op, systemID, node string, err error) {
	if err != nil {
		m.logger.Warn("override store failed", "op", op, "system", systemID, "node", node, "err", err)
		return
	}
	m.logger.Debug("override store", "op", op, "system", systemID, "node", node)
}

func (m *loggingMiddleware) Save(ctx context.Context, systemID, node string, props map[string]any) error {
	err := m.next.Save(ctx, systemID, node, props)
	m.log("save", systemID, node, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, systemID string) (ports.Overrides, error) {
	o, err := m.next.Load(ctx, systemID)
	m.log("load", systemID, "", err)
	return o, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, systemID, node string) error {
	err := m.next.Delete(ctx, systemID, node)
	m.log("delete", systemID, node, err)
	return err
}
