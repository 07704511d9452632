// Package config loads, normalizes, and validates grasp configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI and the hand controller need: the server endpoint, executable
// resolution, retry and teardown timing, journal placement, and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
