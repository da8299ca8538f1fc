package settings

import (
	"fmt"
	"sort"

	"github.com/aretw0/animator/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// rawSettings mirrors domain.SettingsPartial with the keys used in scene files,
// HTTP payloads and general settings files.
type rawSettings struct {
	Active       *bool        `mapstructure:"active"`
	Duration     *rawDuration `mapstructure:"duration"`
	Manager      *string      `mapstructure:"manager"`
	Merge        *bool        `mapstructure:"merge"`
	Combine      *bool        `mapstructure:"combine"`
	InitialState *string      `mapstructure:"initialState"`
	// Condition only supports the boolean form in maps.
	Condition *bool `mapstructure:"condition"`
}

type rawDuration struct {
	Enter   *float64       `mapstructure:"enter"`
	Exit    *float64       `mapstructure:"exit"`
	Delay   *float64       `mapstructure:"delay"`
	Offset  *float64       `mapstructure:"offset"`
	Stagger *float64       `mapstructure:"stagger"`
	Limit   *float64       `mapstructure:"limit"`
	Custom  map[string]any `mapstructure:",remain"`
}

// Decode converts a loosely typed settings map into an overlay.
// Unknown keys, wrong types and unknown manager or state names are reported.
func Decode(input map[string]any) (domain.SettingsPartial, error) {
	var out domain.SettingsPartial
	if len(input) == 0 {
		return out, nil
	}

	var raw rawSettings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &raw,
		ErrorUnused: true,
		ZeroFields:  true,
	})
	if err != nil {
		return out, fmt.Errorf("failed to create settings decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return out, fmt.Errorf("failed to decode settings: %w", err)
	}

	var errs []error

	out.Active = raw.Active
	out.Merge = raw.Merge
	out.Combine = raw.Combine
	if raw.Condition != nil {
		out.Condition = domain.Allow(*raw.Condition)
	}

	if raw.Manager != nil {
		m, err := domain.ParseManagerName(*raw.Manager)
		if err != nil {
			errs = append(errs, &ValidationError{Key: "manager", Reason: "unknown manager", Value: *raw.Manager, Err: domain.ErrUnknownManager})
		} else {
			out.Manager = &m
		}
	}

	if raw.InitialState != nil {
		st := domain.State(*raw.InitialState)
		if st != domain.StateExited && st != domain.StateEntered {
			errs = append(errs, &ValidationError{Key: "initialState", Reason: "must be exited or entered", Value: *raw.InitialState, Err: domain.ErrInvalidInitialState})
		} else {
			out.InitialState = &st
		}
	}

	if raw.Duration != nil {
		d := &domain.DurationPartial{
			Enter:   raw.Duration.Enter,
			Exit:    raw.Duration.Exit,
			Delay:   raw.Duration.Delay,
			Offset:  raw.Duration.Offset,
			Stagger: raw.Duration.Stagger,
			Limit:   raw.Duration.Limit,
		}
		keys := make([]string, 0, len(raw.Duration.Custom))
		for k := range raw.Duration.Custom {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v, ok := toFloat(raw.Duration.Custom[k])
			if !ok {
				errs = append(errs, &ValidationError{Key: "duration." + k, Reason: "expected a number of seconds", Value: raw.Duration.Custom[k], Err: domain.ErrInvalidDuration})
				continue
			}
			if d.Custom == nil {
				d.Custom = make(map[string]float64)
			}
			d.Custom[k] = v
		}
		out.Duration = d
	}

	if len(errs) > 0 {
		return domain.SettingsPartial{}, &AggregateError{Errors: errs}
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
