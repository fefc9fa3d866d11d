/*
Package session implements the proof-session state machine.

A Tree holds the append-only array of checkpoints; the Service implements
the operation set (apply a step, inspect state, resolve a name, unify,
abandon, finish) against a ports.Engine. Every operation that touches
goal state restores the snapshot of the node it targets before acting,
because the engine's current context is a single mutable global.
*/
package session
