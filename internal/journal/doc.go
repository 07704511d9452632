// Package journal records every command issued to the hand controller in a
// local SQLite database: session identity, wire command, acknowledgment,
// success flag, and round-trip latency. The CLI reads it back for
// inspection. A nil store disables journaling without branching at call
// sites.
package journal
