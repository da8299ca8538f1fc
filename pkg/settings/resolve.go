package settings

import (
	"maps"
	"math"

	"github.com/aretw0/animator/pkg/domain"
)

// Default durations, in seconds.
const (
	DefaultEnter   = 0.4
	DefaultExit    = 0.4
	DefaultStagger = 0.04
)

// Defaults returns the settings every node starts from.
func Defaults() domain.Settings {
	return domain.Settings{
		Active: true,
		Duration: domain.Duration{
			Enter:   DefaultEnter,
			Exit:    DefaultExit,
			Stagger: DefaultStagger,
		},
		Manager:      domain.ManagerParallel,
		InitialState: domain.StateExited,
	}
}

// Resolve merges the layers onto Defaults. Later layers win; durations are
// merged field by field, custom durations key by key.
func Resolve(layers ...domain.SettingsPartial) domain.Settings {
	s := Defaults()
	for _, layer := range layers {
		Apply(&s, layer)
	}
	return s
}

// Apply overlays p onto s in place.
func Apply(s *domain.Settings, p domain.SettingsPartial) {
	if p.Active != nil {
		s.Active = *p.Active
	}
	if p.Duration != nil {
		applyDuration(&s.Duration, *p.Duration)
	}
	if p.Manager != nil {
		s.Manager = *p.Manager
	}
	if p.Merge != nil {
		s.Merge = *p.Merge
	}
	if p.Combine != nil {
		s.Combine = *p.Combine
	}
	if p.InitialState != nil {
		s.InitialState = *p.InitialState
	}
	if p.Condition != nil {
		s.Condition = p.Condition
	}
	if p.OnTransition != nil {
		s.OnTransition = p.OnTransition
	}
}

func applyDuration(d *domain.Duration, p domain.DurationPartial) {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&d.Enter, p.Enter)
	set(&d.Exit, p.Exit)
	set(&d.Delay, p.Delay)
	set(&d.Offset, p.Offset)
	set(&d.Stagger, p.Stagger)
	set(&d.Limit, p.Limit)

	if len(p.Custom) > 0 {
		custom := make(map[string]float64, len(d.Custom)+len(p.Custom))
		maps.Copy(custom, d.Custom)
		maps.Copy(custom, p.Custom)
		d.Custom = custom
	}
}

// Merge folds several overlays into one, later overlays winning.
func Merge(layers ...domain.SettingsPartial) domain.SettingsPartial {
	var out domain.SettingsPartial
	for _, p := range layers {
		if p.Active != nil {
			out.Active = p.Active
		}
		if p.Duration != nil {
			if out.Duration == nil {
				out.Duration = &domain.DurationPartial{}
			}
			mergeDuration(out.Duration, *p.Duration)
		}
		if p.Manager != nil {
			out.Manager = p.Manager
		}
		if p.Merge != nil {
			out.Merge = p.Merge
		}
		if p.Combine != nil {
			out.Combine = p.Combine
		}
		if p.InitialState != nil {
			out.InitialState = p.InitialState
		}
		if p.Condition != nil {
			out.Condition = p.Condition
		}
		if p.OnTransition != nil {
			out.OnTransition = p.OnTransition
		}
	}
	return out
}

func mergeDuration(dst *domain.DurationPartial, src domain.DurationPartial) {
	pick := func(a, b *float64) *float64 {
		if b != nil {
			return b
		}
		return a
	}
	dst.Enter = pick(dst.Enter, src.Enter)
	dst.Exit = pick(dst.Exit, src.Exit)
	dst.Delay = pick(dst.Delay, src.Delay)
	dst.Offset = pick(dst.Offset, src.Offset)
	dst.Stagger = pick(dst.Stagger, src.Stagger)
	dst.Limit = pick(dst.Limit, src.Limit)
	if len(src.Custom) > 0 {
		custom := make(map[string]float64, len(dst.Custom)+len(src.Custom))
		maps.Copy(custom, dst.Custom)
		maps.Copy(custom, src.Custom)
		dst.Custom = custom
	}
}

// Validate checks resolved settings and returns an *AggregateError listing every problem.
func Validate(s domain.Settings) error {
	var errs []error

	if !s.Manager.Valid() {
		errs = append(errs, &ValidationError{
			Key:    "manager",
			Reason: "unknown manager",
			Value:  string(s.Manager),
			Err:    domain.ErrUnknownManager,
		})
	}

	if s.InitialState != domain.StateExited && s.InitialState != domain.StateEntered {
		errs = append(errs, &ValidationError{
			Key:    "initialState",
			Reason: "must be exited or entered",
			Value:  string(s.InitialState),
			Err:    domain.ErrInvalidInitialState,
		})
	}

	check := func(key string, v float64) {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, &ValidationError{
				Key:    "duration." + key,
				Reason: "must be a finite, non-negative number of seconds",
				Value:  v,
				Err:    domain.ErrInvalidDuration,
			})
		}
	}
	check("enter", s.Duration.Enter)
	check("exit", s.Duration.Exit)
	check("delay", s.Duration.Delay)
	check("offset", s.Duration.Offset)
	check("stagger", s.Duration.Stagger)
	check("limit", s.Duration.Limit)
	for name, v := range s.Duration.Custom {
		check(name, v)
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
