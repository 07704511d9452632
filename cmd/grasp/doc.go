// Package main hosts the grasp CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into hand
// controller operations: issuing joint-position commands, running the demo
// sequence, shutting a running server down, inspecting the command journal,
// and scaffolding configuration. It centralizes configuration resolution,
// structured logging setup, and signal-driven teardown so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: new behavior belongs in the internal packages
// first and is surfaced here through dedicated commands or flags.
package main
