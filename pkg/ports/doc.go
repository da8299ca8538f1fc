/*
Package ports defines the driven ports (interfaces) of the animator servers.

The core runtime needs none of them: they decouple the long-running surfaces
(the HTTP adapter, the serve command) from storage backends.

# Key Interfaces

  - OverrideStore: persists the settings tuned on nodes at runtime, so a
    restarted server comes back with them (memory, Redis or Loam backed).
  - DistributedLocker: lets several serve instances sharing one store agree
    on which of them drives a system.
*/
package ports
