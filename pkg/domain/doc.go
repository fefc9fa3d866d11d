/*
Package domain contains the core types of the Sequent proof-session model.

A session is an append-only tree of checkpoints (Node), each pairing an
opaque engine Snapshot with the step text that produced it. The engine
exposes a single mutable context; branching is simulated by restoring the
Snapshot of the node an operation targets before acting on it.
*/
package domain
