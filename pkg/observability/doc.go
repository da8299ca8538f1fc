/*
Package observability turns animator lifecycle events into logs and metrics.

Every helper returns a domain.LifecycleHooks value, so they can be stacked with
Combine and passed to animator.WithLifecycleHooks.
*/
package observability
