package domain

// Snapshot is an opaque, restorable capture of the engine's mutable state
// at one checkpoint. It is produced by the engine, owned by the Node that
// holds it, and never mutated after capture. Restoring a Snapshot is the
// only legal way to change the engine's current context.
type Snapshot any

// NodeID identifies a checkpoint in a session tree. IDs are zero-based
// sequential indices into the session's node array and are never reused
// or reassigned.
type NodeID int

// RootID is the id of the root node of every session. The root is its own
// parent.
const RootID NodeID = 0

// Node is one checkpoint in the proof-construction tree.
type Node struct {
	// Snapshot captures the engine state at this checkpoint.
	Snapshot Snapshot

	// Parent is the id of the node this one was produced from. The parent
	// of any non-root node precedes it in the session.
	Parent NodeID

	// Step is the text of the action that produced this node. Empty for
	// the root and for administrative transitions (newState, giveUp).
	Step string
}
