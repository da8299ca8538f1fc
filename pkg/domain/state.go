package domain

// State is the visibility lifecycle state of an animator node.
type State string

const (
	StateExited   State = "exited"   // Initial/terminal, invisible
	StateEntering State = "entering" // Transitional, becoming visible
	StateEntered  State = "entered"  // Terminal, visible
	StateExiting  State = "exiting"  // Transitional, becoming invisible
)

// States lists every valid state in lifecycle order.
var States = []State{StateExited, StateEntering, StateEntered, StateExiting}

// Valid reports whether s is one of the four lifecycle states.
func (s State) Valid() bool {
	switch s {
	case StateExited, StateEntering, StateEntered, StateExiting:
		return true
	}
	return false
}

// Visible reports whether the node is visually present (entering or entered).
func (s State) Visible() bool {
	return s == StateEntering || s == StateEntered
}

func (s State) String() string { return string(s) }
