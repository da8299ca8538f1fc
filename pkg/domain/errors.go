package domain

import "errors"

// ErrRootExists is returned when a second parentless node is registered in one system.
var ErrRootExists = errors.New("animator system already has a root node")

// ErrNodeNotFound is returned when a node is not registered in the system.
var ErrNodeNotFound = errors.New("animator node not found")

// ErrParentRequired is returned when a node that must live under a parent is registered without one.
var ErrParentRequired = errors.New("animator node requires a parent")

// ErrUnknownManager is returned for manager names outside the supported set.
var ErrUnknownManager = errors.New("unknown animator manager")

// ErrUnknownAction is returned when parsing an action name fails.
var ErrUnknownAction = errors.New("unknown animator action")

// ErrInvalidInitialState is returned when the initial state is neither exited nor entered.
var ErrInvalidInitialState = errors.New("invalid initial state")

// ErrInvalidDuration is returned for negative durations.
var ErrInvalidDuration = errors.New("invalid duration")
