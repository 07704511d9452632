// Package logging builds the slog loggers used across grasp.
//
// It offers a human-oriented console handler (with TTY-gated color) and a
// JSON handler for machine consumption, selected through configuration.
// NewNop supplies a silent logger for tests.
package logging
