package observability

import (
	"log/slog"

	"github.com/aretw0/animator/pkg/domain"
)

// Combine returns hooks that call every non-nil callback of hooks, in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range hooks {
		if fn := h.OnRegister; fn != nil {
			prev := out.OnRegister
			out.OnRegister = func(e *domain.NodeEvent) {
				if prev != nil {
					prev(e)
				}
				fn(e)
			}
		}
		if fn := h.OnUnregister; fn != nil {
			prev := out.OnUnregister
			out.OnUnregister = func(e *domain.NodeEvent) {
				if prev != nil {
					prev(e)
				}
				fn(e)
			}
		}
		if fn := h.OnTransition; fn != nil {
			prev := out.OnTransition
			out.OnTransition = func(e *domain.TransitionEvent) {
				if prev != nil {
					prev(e)
				}
				fn(e)
			}
		}
	}
	return out
}

// LogHooks logs registrations at Debug and transitions at Info.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRegister: func(e *domain.NodeEvent) {
			logger.Debug("node_register", "system", e.SystemID, "node_id", e.NodeID, "parent_id", e.ParentID)
		},
		OnUnregister: func(e *domain.NodeEvent) {
			logger.Debug("node_unregister", "system", e.SystemID, "node_id", e.NodeID)
		},
		OnTransition: func(e *domain.TransitionEvent) {
			logger.Info("node_transition",
				"system", e.SystemID,
				"node_id", e.NodeID,
				"from", e.From,
				"to", e.To,
				"action", e.Action,
			)
		},
	}
}
