/*
Package sandbox provides an in-memory reference engine implementing
ports.Engine.

It is a toy assumption prover: goals are simple types built from named
atoms and arrows, steps are a small fixed tactic set (exact, intro,
admit, skip, log), and unification is first-order over ?metavariables.
Snapshots are deep copies of the whole engine state, so restoring one is
always a full restore.

The sandbox backs the CLI by default and gives the test suite a real
engine to drive; production deployments are expected to plug in an
external prover behind the same interface.
*/
package sandbox
