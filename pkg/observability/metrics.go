package observability

import (
	"fmt"
	"time"

	"github.com/aretw0/animator/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors fed by animator events.
type Metrics struct {
	Transitions   *prometheus.CounterVec
	StateDuration *prometheus.HistogramVec
	Registrations *prometheus.CounterVec
	Nodes         *prometheus.GaugeVec

	since map[domain.NodeID]time.Time
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animator_transitions_total",
				Help: "Total number of node state transitions",
			},
			[]string{"system", "from", "to"},
		),
		StateDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "animator_state_duration_seconds",
				Help:    "Time spent by nodes in a state before leaving it",
				Buckets: []float64{0.05, 0.1, 0.2, 0.4, 0.8, 1.6, 3.2},
			},
			[]string{"system", "state"},
		),
		Registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animator_registrations_total",
				Help: "Total number of node registrations",
			},
			[]string{"system"},
		),
		Nodes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "animator_nodes",
				Help: "Number of registered nodes",
			},
			[]string{"system"},
		),
		since: make(map[domain.NodeID]time.Time),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Transitions, m.StateDuration, m.Registrations, m.Nodes} {
			if err := reg.Register(c); err != nil {
				return nil, fmt.Errorf("failed to register animator metrics: %w", err)
			}
		}
	}
	return m, nil
}

// Hooks returns the lifecycle hooks recording into m.
// Like the system they observe, they must be called from a single goroutine.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRegister: func(e *domain.NodeEvent) {
			m.Registrations.WithLabelValues(e.SystemID).Inc()
			m.Nodes.WithLabelValues(e.SystemID).Inc()
			m.since[e.NodeID] = e.Timestamp
		},
		OnUnregister: func(e *domain.NodeEvent) {
			m.Nodes.WithLabelValues(e.SystemID).Dec()
			delete(m.since, e.NodeID)
		},
		OnTransition: func(e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(e.SystemID, string(e.From), string(e.To)).Inc()
			if at, ok := m.since[e.NodeID]; ok {
				m.StateDuration.WithLabelValues(e.SystemID, string(e.From)).Observe(e.Timestamp.Sub(at).Seconds())
			}
			m.since[e.NodeID] = e.Timestamp
		},
	}
}
