package domain

// NodeID identifies a node inside one animator system.
// It is stable for the lifetime of the registration.
type NodeID string

// Animator is the surface of a node handed to conditions, subscribers and
// transition callbacks. It never exposes the tree itself.
type Animator interface {
	ID() NodeID
	State() State
	// Settings returns the fully resolved settings. For combine nodes the
	// enter duration accounts for the combined children.
	Settings() Settings
	Foreign() any
	Send(action Action)
}

// Subscriber is notified synchronously after every transition of a node.
type Subscriber func(node Animator)

// Condition gates whether a node may be entered by its parent's fan-out.
// A nil Condition always allows.
type Condition func(node Animator) bool

// Allow returns the boolean form of a Condition.
func Allow(allowed bool) Condition {
	return func(Animator) bool { return allowed }
}
