// Package memory provides an in-process OverrideStore.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/animator/pkg/ports"
)

// Store implements ports.OverrideStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]ports.Overrides
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]ports.Overrides),
	}
}

// Save stores a deep copy of props.
func (s *Store) Save(ctx context.Context, systemID, node string, props map[string]any) error {
	copied := deepCopyMap(props)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[systemID] == nil {
		s.data[systemID] = make(ports.Overrides)
	}
	s.data[systemID][node] = copied
	return nil
}

// Load returns copies so callers can't mutate the store through them.
func (s *Store) Load(ctx context.Context, systemID string) (ports.Overrides, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(ports.Overrides, len(s.data[systemID]))
	for node, props := range s.data[systemID] {
		out[node] = deepCopyMap(props)
	}
	return out, nil
}

// Delete removes the overrides of one node.
func (s *Store) Delete(ctx context.Context, systemID, node string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[systemID], node)
	return nil
}

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			out[k] = deepCopyMap(nested)
			continue
		}
		out[k] = v
	}
	return out
}
