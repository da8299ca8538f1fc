package scene

import (
	"errors"

	"github.com/aretw0/animator/pkg/settings"
)

// ErrInvalidScene wraps every problem reported by Validate.
var ErrInvalidScene = errors.New("invalid scene")

// Validate checks node ids, presets and settings, resolving each node as the
// system would: defaults, general, then the node's own settings.
// Every problem is reported in one *settings.AggregateError.
func Validate(s *Scene) error {
	var errs []error
	add := func(key, reason string, value any, err error) {
		if err == nil {
			err = ErrInvalidScene
		}
		errs = append(errs, &settings.ValidationError{Key: key, Reason: reason, Value: value, Err: err})
	}

	general, err := s.GeneralSettings()
	if err != nil {
		add("general", "cannot decode", nil, err)
	} else if err := settings.Validate(settings.Resolve(general)); err != nil {
		add("general", "invalid settings", nil, err)
	}

	if s.Root.ID == "" {
		add("root.id", "root node must have an id", nil, nil)
	}

	for name, raw := range s.Presets {
		if _, err := settings.Decode(raw); err != nil {
			add("presets."+name, "cannot decode", nil, err)
		}
	}

	seen := make(map[string]bool)
	s.Walk(func(spec NodeSpec, parent string, depth int) {
		key := spec.ID
		switch {
		case spec.ID == "":
			key = parent + ".children"
			add(key, "node must have an id", nil, nil)
		case seen[spec.ID]:
			add(key, "duplicate node id", spec.ID, nil)
		}
		seen[spec.ID] = true

		if spec.Preset != "" {
			if _, ok := s.Presets[spec.Preset]; !ok {
				add(key, "unknown preset", spec.Preset, nil)
				return
			}
		}

		own, err := s.NodeSettings(spec)
		if err != nil {
			add(key, "cannot decode settings", nil, err)
			return
		}
		if err := settings.Validate(settings.Resolve(general, own)); err != nil {
			add(key, "invalid settings", nil, err)
		}
	})

	if len(errs) > 0 {
		return &settings.AggregateError{Errors: errs}
	}
	return nil
}
