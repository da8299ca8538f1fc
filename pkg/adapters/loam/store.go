// Package loam stores runtime settings overrides as documents in a Loam
// repository, one file per node, so they can be reviewed and versioned next
// to the scene files.
package loam

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/animator/pkg/ports"
	"github.com/aretw0/loam"
)

// Store adapts a Loam repository to the ports.OverrideStore interface.
type Store struct {
	Repo *loam.TypedRepository[OverrideDocument]
}

// New creates a store over an existing typed repository.
func New(repo *loam.TypedRepository[OverrideDocument]) *Store {
	return &Store{Repo: repo}
}

// Open initializes an unversioned Loam repository in dir.
func Open(dir string) (*Store, error) {
	repo, err := loam.Init(dir, loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("failed to init loam repository: %w", err)
	}
	return New(loam.NewTypedRepository[OverrideDocument](repo)), nil
}

// docID keeps ids free of separators and dots, which Loam reads as paths
// and extensions.
func docID(systemID, node string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ".", "_", ":", "_")
	return r.Replace(systemID) + "__" + r.Replace(node)
}

// Save writes the node document.
func (s *Store) Save(ctx context.Context, systemID, node string, props map[string]any) error {
	err := s.Repo.Save(ctx, &loam.DocumentModel[OverrideDocument]{
		ID: docID(systemID, node),
		Data: OverrideDocument{
			System:   systemID,
			Node:     node,
			Settings: props,
		},
	})
	if err != nil {
		return fmt.Errorf("loam save failed for %s/%s: %w", systemID, node, err)
	}
	return nil
}

// Load lists the repository and keeps the documents of systemID.
func (s *Store) Load(ctx context.Context, systemID string) (ports.Overrides, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	out := make(ports.Overrides)
	for _, doc := range docs {
		if doc.Data.System != systemID || len(doc.Data.Settings) == 0 {
			continue
		}
		out[doc.Data.Node] = doc.Data.Settings
	}
	return out, nil
}

// Delete empties the node document. Load skips empty documents.
func (s *Store) Delete(ctx context.Context, systemID, node string) error {
	return s.Save(ctx, systemID, node, nil)
}
