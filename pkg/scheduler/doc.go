/*
Package scheduler provides the timing capabilities used by animator nodes and managers.

Nodes never read the wall clock nor branch on the runtime environment. Instead they are
given a Clock, which decides when (and on which goroutine) delayed callbacks run:

  - NopClock: headless hosts (server-side rendering, batch tools). Timers never fire.
  - ManualClock: a deterministic virtual clock advanced explicitly, either by tests or by
    a frame loop calling Advance(dt).
  - Loop: a real-time clock that serializes every callback onto the goroutine running
    Loop.Run, mimicking a single UI thread.

On top of a Clock, Scheduler keeps at most one pending timer (starting a new one cancels
the previous) and Group keeps one pending timer per key.
*/
package scheduler
