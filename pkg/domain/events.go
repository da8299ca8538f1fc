package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventRegister   EventType = "node_register"
	EventUnregister EventType = "node_unregister"
	EventTransition EventType = "node_transition"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SystemID  string    `json:"system_id"`
}

// NodeEvent represents the registration or removal of a node.
type NodeEvent struct {
	EventBase
	NodeID   NodeID `json:"node_id"`
	ParentID NodeID `json:"parent_id,omitempty"`
}

// TransitionEvent represents a state change of a node.
type TransitionEvent struct {
	EventBase
	NodeID NodeID `json:"node_id"`
	From   State  `json:"from"`
	To     State  `json:"to"`
	// Action is the action being processed when the transition happened.
	// Delayed activations report the action that armed the delay.
	Action Action `json:"action"`
}

// LifecycleHooks defines callbacks for system observability.
// They run synchronously after subscribers and must not block.
type LifecycleHooks struct {
	OnRegister   func(*NodeEvent)
	OnUnregister func(*NodeEvent)
	OnTransition func(*TransitionEvent)
}
