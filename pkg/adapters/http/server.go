// Package http exposes a running animator system over HTTP for live inspection
// and remote control.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/animator"
	"github.com/aretw0/animator/internal/presentation/graph"
	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/persistence"
	"github.com/aretw0/animator/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// Executor runs fn on the goroutine that owns the system.
// scheduler.Loop implements it.
type Executor interface {
	Do(ctx context.Context, fn func()) error
}

// Server serves one animator system.
type Server struct {
	System   *animator.System
	Executor Executor
	Streams  *StreamManager
	Metrics  http.Handler
	Store    ports.OverrideStore
	Logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithStreams enables GET /events, fed by the manager's hooks.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) { s.Streams = sm }
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.Metrics = h }
}

// WithStore persists settings changes made through the API.
func WithStore(store ports.OverrideStore) Option {
	return func(s *Server) { s.Store = store }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// NewHandler creates the HTTP handler for sys. Every access to sys goes through exec.
func NewHandler(sys *animator.System, exec Executor, opts ...Option) http.Handler {
	s := &Server{System: sys, Executor: exec, Logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/nodes", s.ListNodes)
	r.Get("/graph", s.GetGraph)
	r.Route("/nodes/{id}", func(r chi.Router) {
		r.Get("/", s.GetNode)
		r.Post("/actions/{action}", s.SendAction)
		r.Put("/settings", s.PutSettings)
		r.Delete("/settings", s.DeleteSettings)
	})
	if s.Streams != nil {
		r.Get("/events", s.SubscribeEvents)
	}
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

var (
	errNodeNotFound = errors.New("node not found")
	errPersist      = errors.New("failed to persist settings")
)

// lookup finds a node by ID or by scene name. Must run on the executor.
func (s *Server) lookup(key string) (*animator.Node, error) {
	if n, ok := s.System.Node(domain.NodeID(key)); ok {
		return n, nil
	}
	for _, n := range s.System.Nodes() {
		if n.Name() == key {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", errNodeNotFound, key)
}

func (s *Server) snapshotOf(id domain.NodeID) (domain.NodeSnapshot, bool) {
	for _, snap := range s.System.Snapshot() {
		if snap.ID == id {
			return snap, true
		}
	}
	return domain.NodeSnapshot{}, false
}

// withNode runs fn on the executor with the node named in the URL and writes
// the node snapshot taken right after fn.
func (s *Server) withNode(w http.ResponseWriter, r *http.Request, fn func(n *animator.Node) error) {
	key := chi.URLParam(r, "id")

	var (
		snap  domain.NodeSnapshot
		found bool
		opErr error
	)
	err := s.Executor.Do(r.Context(), func() {
		n, err := s.lookup(key)
		if err != nil {
			opErr = err
			return
		}
		if fn != nil {
			if opErr = fn(n); opErr != nil {
				return
			}
		}
		snap, found = s.snapshotOf(n.ID())
	})

	switch {
	case err != nil:
		http.Error(w, fmt.Sprintf("System unavailable: %v", err), http.StatusServiceUnavailable)
		s.Logger.Error("executor failed", "error", err)
		return
	case errors.Is(opErr, errNodeNotFound):
		http.Error(w, opErr.Error(), http.StatusNotFound)
		return
	case errors.Is(opErr, errPersist):
		http.Error(w, opErr.Error(), http.StatusInternalServerError)
		s.Logger.Error("request not persisted", "node", key, "error", opErr)
		return
	case opErr != nil:
		http.Error(w, opErr.Error(), http.StatusBadRequest)
		s.Logger.Warn("request rejected", "node", key, "error", opErr)
		return
	case !found:
		// Detached nodes are outside the root subtree.
		http.Error(w, "node is detached", http.StatusGone)
		return
	}
	writeJSON(w, s.Logger, snap)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, map[string]string{"status": "ok", "system": s.System.ID()})
}

// ListNodes handles GET /nodes.
func (s *Server) ListNodes(w http.ResponseWriter, r *http.Request) {
	var nodes []domain.NodeSnapshot
	if err := s.Executor.Do(r.Context(), func() { nodes = s.System.Snapshot() }); err != nil {
		http.Error(w, fmt.Sprintf("System unavailable: %v", err), http.StatusServiceUnavailable)
		return
	}
	if nodes == nil {
		nodes = []domain.NodeSnapshot{}
	}
	writeJSON(w, s.Logger, nodes)
}

// GetGraph handles GET /graph, returning a Mermaid flowchart with state classes.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var nodes []domain.NodeSnapshot
	if err := s.Executor.Do(r.Context(), func() { nodes = s.System.Snapshot() }); err != nil {
		http.Error(w, fmt.Sprintf("System unavailable: %v", err), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(nodes, true))
}

// GetNode handles GET /nodes/{id}.
func (s *Server) GetNode(w http.ResponseWriter, r *http.Request) {
	s.withNode(w, r, nil)
}

// SendAction handles POST /nodes/{id}/actions/{action}.
func (s *Server) SendAction(w http.ResponseWriter, r *http.Request) {
	action, err := domain.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.withNode(w, r, func(n *animator.Node) error {
		n.Send(action)
		return nil
	})
}

// PutSettings handles PUT /nodes/{id}/settings.
// The body replaces the node's dynamic settings. The node then receives
// update and its parent refresh, so manager, activation and condition
// changes take effect immediately. With a store, the body is saved under the
// node's name once applied.
func (s *Server) PutSettings(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("PutSettings: Invalid request body", "error", err)
		return
	}

	s.withNode(w, r, func(n *animator.Node) error {
		if err := persistence.Override(n, body); err != nil {
			return err
		}
		return s.persist(r.Context(), n, body)
	})
}

// DeleteSettings handles DELETE /nodes/{id}/settings, dropping the node's
// dynamic settings and their stored copy.
func (s *Server) DeleteSettings(w http.ResponseWriter, r *http.Request) {
	s.withNode(w, r, func(n *animator.Node) error {
		if err := persistence.Clear(n); err != nil {
			return err
		}
		return s.persist(r.Context(), n, nil)
	})
}

// persist runs on the executor so the store sees changes in request order.
func (s *Server) persist(ctx context.Context, n *animator.Node, props map[string]any) error {
	if s.Store == nil {
		return nil
	}
	var err error
	if len(props) == 0 {
		err = s.Store.Delete(ctx, s.System.ID(), persistence.Key(n))
	} else {
		err = s.Store.Save(ctx, s.System.ID(), persistence.Key(n), props)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", errPersist, err)
	}
	return nil
}

// SubscribeEvents handles GET /events (SSE). The optional node query
// parameter restricts the stream to one node ID.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	filter := domain.NodeID(r.URL.Query().Get("node"))
	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if filter != "" {
				var e domain.TransitionEvent
				if err := json.Unmarshal(msg, &e); err == nil && e.NodeID != filter {
					continue
				}
			}
			fmt.Fprintf(w, "event: transition\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
