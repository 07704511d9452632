// Package hand composes the process supervisor and the control channel into
// the hand controller facade.
//
// Construction spawns (or attaches to) the server, waits for its socket,
// and connects with bounded retries; failure at any point unwinds whatever
// was acquired. SetJointPositions speaks the SET_JOINTS/OK protocol and
// reports non-success through a boolean rather than an error so callers
// decide whether to retry. Close is idempotent and ordered: QUIT, socket,
// process, journal, lock.
package hand
