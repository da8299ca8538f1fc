// Package redis provides an OverrideStore and a DistributedLocker on Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/animator/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "animator:"

// Store implements ports.OverrideStore with one Redis hash per system.
// Each field is a node name and holds the node's props as JSON.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the store.
type Option func(*Store)

// WithTTL expires a system's overrides ttl after its last save.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithPrefix sets the key prefix. Defaults to "animator:".
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New connects to the Redis server at addr.
func New(addr string, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Client returns the underlying client, e.g. to build a Locker on it.
func (s *Store) Client() *backend.Client { return s.client }

func (s *Store) key(systemID string) string {
	return s.prefix + "overrides:" + systemID
}

// Save writes the node field and refreshes the TTL of the system hash.
func (s *Store) Save(ctx context.Context, systemID, node string, props map[string]any) error {
	data, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("failed to marshal overrides: %w", err)
	}

	key := s.key(systemID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, node, data)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis error saving overrides: %w", err)
	}
	return nil
}

// Load reads the whole system hash.
func (s *Store) Load(ctx context.Context, systemID string) (ports.Overrides, error) {
	fields, err := s.client.HGetAll(ctx, s.key(systemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error loading overrides: %w", err)
	}

	out := make(ports.Overrides, len(fields))
	for node, raw := range fields {
		var props map[string]any
		if err := json.Unmarshal([]byte(raw), &props); err != nil {
			return nil, fmt.Errorf("corrupt overrides for node %s: %w", node, err)
		}
		out[node] = props
	}
	return out, nil
}

// Delete removes the node field.
func (s *Store) Delete(ctx context.Context, systemID, node string) error {
	if err := s.client.HDel(ctx, s.key(systemID), node).Err(); err != nil {
		return fmt.Errorf("redis error deleting overrides: %w", err)
	}
	return nil
}
