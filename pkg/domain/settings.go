package domain

// Duration holds the timing settings of a node, in seconds.
type Duration struct {
	Enter   float64 `json:"enter" yaml:"enter" mapstructure:"enter"`
	Exit    float64 `json:"exit" yaml:"exit" mapstructure:"exit"`
	Delay   float64 `json:"delay" yaml:"delay" mapstructure:"delay"`
	Offset  float64 `json:"offset" yaml:"offset" mapstructure:"offset"`
	Stagger float64 `json:"stagger" yaml:"stagger" mapstructure:"stagger"`
	Limit   float64 `json:"limit" yaml:"limit" mapstructure:"limit"`

	// Custom holds named durations for collaborators (e.g. "typing").
	Custom map[string]float64 `json:"custom,omitempty" yaml:"custom,omitempty" mapstructure:"custom"`
}

// Get returns a built-in or custom duration by name, and whether it exists.
func (d Duration) Get(name string) (float64, bool) {
	switch name {
	case "enter":
		return d.Enter, true
	case "exit":
		return d.Exit, true
	case "delay":
		return d.Delay, true
	case "offset":
		return d.Offset, true
	case "stagger":
		return d.Stagger, true
	case "limit":
		return d.Limit, true
	}
	v, ok := d.Custom[name]
	return v, ok
}

// Settings is the resolved configuration of a node.
type Settings struct {
	Active       bool
	Duration     Duration
	Manager      ManagerName
	Merge        bool
	Combine      bool
	InitialState State
	Condition    Condition
	OnTransition func(node Animator)
}

// Allows evaluates the condition of these settings against node.
func (s Settings) Allows(node Animator) bool {
	if s.Condition == nil {
		return true
	}
	return s.Condition(node)
}

// DurationPartial overlays only the durations that are set.
type DurationPartial struct {
	Enter   *float64
	Exit    *float64
	Delay   *float64
	Offset  *float64
	Stagger *float64
	Limit   *float64
	Custom  map[string]float64
}

// SettingsPartial is a sparse settings overlay. Nil fields mean "inherit".
type SettingsPartial struct {
	Active       *bool
	Duration     *DurationPartial
	Manager      *ManagerName
	Merge        *bool
	Combine      *bool
	InitialState *State
	Condition    Condition
	OnTransition func(node Animator)
}

// Ptr returns a pointer to v, handy for building partial settings.
func Ptr[T any](v T) *T { return &v }
