// Package settings resolves animator node settings.
//
// A node never caches its settings: every time the runtime needs them it asks the
// node's Provider for a sparse overlay and merges it, together with the system-wide
// general settings and the node's dynamic settings, onto Defaults with Resolve.
// Resolve is a pure function so the precedence rules can be tested in isolation.
//
// Settings can also be described in loosely typed maps (scene files, HTTP payloads),
// which Decode turns into overlays, and general settings plus named presets can be
// loaded from YAML or JSON files with LoadFile.
package settings
