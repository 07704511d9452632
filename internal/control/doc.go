// Package control owns the TCP control channel to the hand controller
// server.
//
// Connection establishment retries with a fixed delay up to a bounded
// attempt count. Commands are single newline-terminated text lines answered
// by single newline-terminated acknowledgments, read through a buffered
// line reader with a hard maximum line length.
package control
