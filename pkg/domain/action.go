package domain

// Action is a signal processed by a node's state machine.
type Action string

const (
	// ActionSetup begins evaluating the activation of a freshly registered node.
	ActionSetup Action = "setup"
	// ActionEnter requests the node to start entering.
	ActionEnter Action = "enter"
	// ActionEnterEnd finishes an entering transition (usually scheduled).
	ActionEnterEnd Action = "enterEnd"
	// ActionExit requests the node to start exiting.
	ActionExit Action = "exit"
	// ActionExitEnd finishes an exiting transition (usually scheduled).
	ActionExitEnd Action = "exitEnd"
	// ActionUpdate re-evaluates the manager and, for the root, the active flag.
	ActionUpdate Action = "update"
	// ActionRefresh reconciles children against their current conditions.
	ActionRefresh Action = "refresh"
)

// Actions lists every action understood by the machine.
var Actions = []Action{
	ActionSetup,
	ActionEnter,
	ActionEnterEnd,
	ActionExit,
	ActionExitEnd,
	ActionUpdate,
	ActionRefresh,
}

// ParseAction returns the Action named s.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", ErrUnknownAction
}
