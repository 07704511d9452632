// Package supervisor locates, launches, and terminates the hand controller
// server process.
//
// The child runs detached in its own process group with discarded output
// streams. Stop performs two-phase termination: SIGTERM to the group, then
// SIGKILL after a grace period, tolerating processes that already exited so
// cleanup paths can invoke it unconditionally.
package supervisor
