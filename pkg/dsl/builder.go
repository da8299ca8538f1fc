package dsl

import (
	"fmt"
	"maps"

	"github.com/aretw0/animator/pkg/scene"
	"github.com/aretw0/animator/pkg/settings"
)

// Builder manages the scene construction.
type Builder struct {
	name    string
	general map[string]any
	presets map[string]map[string]any
	root    *NodeBuilder
}

// New creates a new scene builder.
func New(name string) *Builder {
	return &Builder{
		name:    name,
		presets: make(map[string]map[string]any),
	}
}

// General sets the settings shared by every node, using settings.Decode keys.
func (b *Builder) General(props map[string]any) *Builder {
	b.general = maps.Clone(props)
	return b
}

// Preset registers named settings that nodes can reference with NodeBuilder.Preset.
func (b *Builder) Preset(name string, props map[string]any) *Builder {
	b.presets[name] = maps.Clone(props)
	return b
}

// Root creates the root node.
// If the root already exists, it returns the existing builder.
func (b *Builder) Root(id string) *NodeBuilder {
	if b.root == nil {
		b.root = newNode(id)
	}
	return b.root
}

// Build compiles the tree into a validated scene.
func (b *Builder) Build() (*scene.Scene, error) {
	if b.root == nil {
		return nil, fmt.Errorf("scene %s has no root", b.name)
	}

	sc := &scene.Scene{
		Name: b.name,
		FileConfig: settings.FileConfig{
			General: b.general,
			Presets: b.presets,
		},
		Root: b.root.Build(),
	}
	if err := scene.Validate(sc); err != nil {
		return nil, fmt.Errorf("failed to build scene %s: %w", b.name, err)
	}
	return sc, nil
}
