package middleware_test

import (
	"context"
	"errors"

	"github.com/aretw0/animator/pkg/ports"
)

var errBackend = errors.New("backend down")

// MockStore is a simple map-based store for testing middleware.
type MockStore struct {
	data  map[string]ports.Overrides
	fail  bool
	saves int
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]ports.Overrides),
	}
}

func (s *MockStore) Save(ctx context.Context, systemID, node string, props map[string]any) error {
	if s.fail {
		return errBackend
	}
	s.saves++
	if s.data[systemID] == nil {
		s.data[systemID] = make(ports.Overrides)
	}
	s.data[systemID][node] = props
	return nil
}

func (s *MockStore) Load(ctx context.Context, systemID string) (ports.Overrides, error) {
	if s.fail {
		return nil, errBackend
	}
	out := make(ports.Overrides)
	for k, v := range s.data[systemID] {
		out[k] = v
	}
	return out, nil
}

func (s *MockStore) Delete(ctx context.Context, systemID, node string) error {
	if s.fail {
		return errBackend
	}
	delete(s.data[systemID], node)
	return nil
}

var _ ports.OverrideStore = (*MockStore)(nil)
