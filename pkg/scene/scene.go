// Package scene describes animator trees declaratively, as YAML or JSON files
// or through pkg/dsl, and mounts them on an animator.System.
package scene

import (
	"fmt"
	"os"

	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/settings"
)

// Scene is a named animator tree with its shared settings.
//
//	name: menu
//	general:
//	  duration: { enter: 0.3 }
//	presets:
//	  list: { manager: stagger, combine: true }
//	root:
//	  id: menu
//	  preset: list
//	  children:
//	    - id: item-1
//	    - id: item-2
//	      settings: { condition: false }
type Scene struct {
	Name                string `yaml:"name" json:"name"`
	settings.FileConfig `yaml:",inline"`
	Root                NodeSpec `yaml:"root" json:"root"`
}

// NodeSpec is one node of a scene. Settings use the keys accepted by settings.Decode
// and are applied over the named preset.
type NodeSpec struct {
	ID       string         `yaml:"id" json:"id"`
	Preset   string         `yaml:"preset,omitempty" json:"preset,omitempty"`
	Settings map[string]any `yaml:"settings,omitempty" json:"settings,omitempty"`
	Children []NodeSpec     `yaml:"children,omitempty" json:"children,omitempty"`
}

// Load reads a scene file. The format is picked by extension: .json is JSON,
// anything else YAML.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes a scene already read into memory.
func Parse(path string, data []byte) (*Scene, error) {
	var sc Scene
	if err := settings.Unmarshal(path, data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// GeneralSettings decodes the general section.
func (s *Scene) GeneralSettings() (domain.SettingsPartial, error) {
	p, err := settings.Decode(s.General)
	if err != nil {
		return p, fmt.Errorf("general: %w", err)
	}
	return p, nil
}

// NodeSettings decodes the settings of spec, layered over its preset.
func (s *Scene) NodeSettings(spec NodeSpec) (domain.SettingsPartial, error) {
	var layers []domain.SettingsPartial
	if spec.Preset != "" {
		raw, ok := s.Presets[spec.Preset]
		if !ok {
			return domain.SettingsPartial{}, fmt.Errorf("node %s: unknown preset %q", spec.ID, spec.Preset)
		}
		p, err := settings.Decode(raw)
		if err != nil {
			return domain.SettingsPartial{}, fmt.Errorf("preset %s: %w", spec.Preset, err)
		}
		layers = append(layers, p)
	}

	own, err := settings.Decode(spec.Settings)
	if err != nil {
		return domain.SettingsPartial{}, fmt.Errorf("node %s: %w", spec.ID, err)
	}
	layers = append(layers, own)

	return settings.Merge(layers...), nil
}

// Walk visits every node spec depth-first, parents before children.
func (s *Scene) Walk(fn func(spec NodeSpec, parent string, depth int)) {
	var visit func(spec NodeSpec, parent string, depth int)
	visit = func(spec NodeSpec, parent string, depth int) {
		fn(spec, parent, depth)
		for _, child := range spec.Children {
			visit(child, spec.ID, depth+1)
		}
	}
	visit(s.Root, "", 0)
}
