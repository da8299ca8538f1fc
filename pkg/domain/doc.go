/*
Package domain contains the core domain models of the animator orchestration engine.

It defines the fundamental entities of the animator state machine, such as States,
Actions, Settings and the lifecycle events emitted while nodes transition. This package
is kept pure and free of scheduling, logging or I/O concerns, so that the runtime, the
managers and every adapter can share one vocabulary.

# Key Entities

  - State: The visibility lifecycle of a node (exited, entering, entered, exiting).
  - Action: A signal sent to a node's machine (setup, enter, exit, update, refresh...).
  - Settings: The resolved configuration of a node (durations, manager, merge/combine).
  - Animator: The read/send surface handed to conditions, subscribers and callbacks.
*/
package domain
