package ports

import (
	"context"

	"github.com/sequentlabs/sequent/pkg/domain"
)

// StepAST is an engine-private representation of a parsed step. The core
// only carries it from ParseStep to ExecuteStep.
type StepAST = any

// ExprAST is an engine-private representation of a parsed expression.
type ExprAST = any

// Engine is the capability interface a proof-construction engine must
// provide. The engine owns a single mutable "current" context; it is not
// implicitly reset between calls. Callers must Restore the intended
// Snapshot before any call that reads or mutates goal state.
//
// Engines are used from a single goroutine; implementations need no
// internal locking.
type Engine interface {
	// Restore makes snap the engine's current context.
	Restore(snap domain.Snapshot)

	// Capture returns an immutable snapshot of the current context.
	Capture() domain.Snapshot

	// CurrentGoals returns pretty-printed views of the open goals of the
	// current context.
	CurrentGoals() []domain.Goal

	// ParseStep parses step text in the current context.
	ParseStep(text string) (StepAST, error)

	// ExecuteStep runs a parsed step against the current context. The
	// budget is a cooperative ceiling on engine-internal computation
	// steps; exceeding it aborts the step with an error. Failures carry
	// the engine's diagnostic messages.
	ExecuteStep(ctx context.Context, ast StepAST, budget uint64) error

	// Diagnostics returns the message log accumulated in the current
	// context, including errors the engine recorded without failing.
	Diagnostics() []domain.Diagnostic

	// AdmitAll marks every open goal of the current context as admitted,
	// discharging it without proof.
	AdmitAll()

	// BuildContext creates a fresh context from named, typed obligations
	// with no ambient local context, and returns its snapshot.
	BuildContext(specs []domain.GoalSpec) (domain.Snapshot, error)

	// ResolveName resolves a global name in the current context.
	ResolveName(name string) []domain.Candidate

	// ParseExpr parses an expression in the current context.
	ParseExpr(text string) (ExprAST, error)

	// Unify attempts to unify two parsed expressions. A nil Unifier with
	// a nil error means no unifier exists; an error means elaboration
	// failed.
	Unify(a, b ExprAST) (domain.Unifier, error)

	// Position reports the ambient source position, when one exists.
	Position() *domain.Position
}
