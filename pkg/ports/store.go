package ports

import "context"

// Overrides maps node names to the raw settings props set on them at runtime.
// Props use the same keys as scene files and are decoded with settings.Decode.
type Overrides map[string]map[string]any

// OverrideStore persists runtime settings overrides per system.
type OverrideStore interface {
	// Save replaces the overrides of one node.
	Save(ctx context.Context, systemID, node string, props map[string]any) error

	// Load returns every override of a system.
	// A system without overrides yields an empty map and no error.
	Load(ctx context.Context, systemID string) (Overrides, error)

	// Delete removes the overrides of one node. Deleting a missing entry is not an error.
	Delete(ctx context.Context, systemID, node string) error
}
