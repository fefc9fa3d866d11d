package session

import (
	"context"
	"log/slog"

	"github.com/sequentlabs/sequent/internal/logging"
	"github.com/sequentlabs/sequent/pkg/domain"
	"github.com/sequentlabs/sequent/pkg/ports"
)

// DefaultBudget bounds step execution when a request does not carry an
// explicit budget.
const DefaultBudget uint64 = 100000

// Service implements the session operation set over a ports.Engine.
// It is the unit of mutation for the whole subsystem: the node tree and
// the running flag evolve only through its methods. A Service is owned by
// a single goroutine; the protocol is strictly one-in-one-out.
type Service struct {
	engine  ports.Engine
	tree    *Tree
	running bool

	defaultBudget uint64
	logger        *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger configures a logger for internal events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithDefaultBudget sets the step budget applied when a request omits one.
func WithDefaultBudget(budget uint64) Option {
	return func(s *Service) {
		if budget > 0 {
			s.defaultBudget = budget
		}
	}
}

// NewService attaches to an engine and creates the session with a root
// node captured from the engine's ambient starting state.
func NewService(engine ports.Engine, opts ...Option) *Service {
	s := &Service{
		engine:        engine,
		running:       true,
		defaultBudget: DefaultBudget,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tree = NewTree(domain.Node{Snapshot: engine.Capture()})
	return s
}

// Running reports whether the session is still accepting operations. It
// transitions true -> false exactly once, via Commit.
func (s *Service) Running() bool {
	return s.running
}

// Lookup returns the node with the given id.
func (s *Service) Lookup(id domain.NodeID) (domain.Node, error) {
	return s.tree.Lookup(id)
}

// Len returns the session's node count.
func (s *Service) Len() int {
	return s.tree.Len()
}

// restore makes the snapshot of node sid the engine's current context.
// Every operation that reads or mutates goal state goes through here
// first; the ambient context is a single global and is not implicitly
// reset between calls.
func (s *Service) restore(sid domain.NodeID) (domain.Node, error) {
	node, err := s.tree.Lookup(sid)
	if err != nil {
		return domain.Node{}, err
	}
	s.engine.Restore(node.Snapshot)
	return node, nil
}

// ApplyStep restores the context of sid, parses and executes one step
// under the given budget, and appends the resulting checkpoint.
//
// ApplyStep is atomic: on any failure the pre-step snapshot is restored
// and no node is appended, so the tree never contains a checkpoint for a
// partially-applied or erroring step. A step that succeeds but leaves
// error diagnostics behind is void and reported as an execution failure.
func (s *Service) ApplyStep(ctx context.Context, sid domain.NodeID, step string, budget uint64) (domain.NodeID, error) {
	node, err := s.restore(sid)
	if err != nil {
		return 0, err
	}

	ast, err := s.engine.ParseStep(step)
	if err != nil {
		return 0, domain.Coerce(err, domain.KindStepParse)
	}
	inherited := len(errorMessages(s.engine.Diagnostics()))

	if budget == 0 {
		budget = s.defaultBudget
	}
	if err := s.engine.ExecuteStep(ctx, ast, budget); err != nil {
		s.engine.Restore(node.Snapshot)
		return 0, domain.Coerce(err, domain.KindStepExecution)
	}

	// A step may record error diagnostics without failing outright.
	// Only errors the step itself produced void it.
	if msgs := errorMessages(s.engine.Diagnostics()); len(msgs) > inherited {
		s.engine.Restore(node.Snapshot)
		return 0, domain.NewStepExecutionError(msgs[inherited:]...)
	}

	id := s.tree.Append(domain.Node{
		Snapshot: s.engine.Capture(),
		Parent:   sid,
		Step:     step,
	})
	s.logger.Debug("step applied", "parent", int(sid), "state", int(id), "step", step)
	return id, nil
}

// Goals restores the context of sid and returns its open goals. It never
// mutates the tree.
func (s *Service) Goals(sid domain.NodeID) ([]domain.Goal, error) {
	if _, err := s.restore(sid); err != nil {
		return nil, err
	}
	return s.engine.CurrentGoals(), nil
}

// Messages restores the context of sid and returns its accumulated
// diagnostic log.
func (s *Service) Messages(sid domain.NodeID) ([]domain.Diagnostic, error) {
	if _, err := s.restore(sid); err != nil {
		return nil, err
	}
	return s.engine.Diagnostics(), nil
}

// ResolveName restores the context of sid and resolves a global name.
func (s *Service) ResolveName(sid domain.NodeID, name string) ([]domain.Candidate, error) {
	if _, err := s.restore(sid); err != nil {
		return nil, err
	}
	return s.engine.ResolveName(name), nil
}

// Unify restores the context of sid, parses both expressions, and
// attempts to unify them. A nil Unifier means no unifier exists.
func (s *Service) Unify(sid domain.NodeID, exprA, exprB string) (domain.Unifier, error) {
	if _, err := s.restore(sid); err != nil {
		return nil, err
	}

	astA, err := s.engine.ParseExpr(exprA)
	if err != nil {
		return nil, domain.Coerce(err, domain.KindExpressionParse)
	}
	astB, err := s.engine.ParseExpr(exprB)
	if err != nil {
		return nil, domain.Coerce(err, domain.KindExpressionParse)
	}

	unifier, err := s.engine.Unify(astA, astB)
	if err != nil {
		return nil, domain.Coerce(err, domain.KindElaboration)
	}
	return unifier, nil
}

// NewState builds a fresh context from named, typed obligations with no
// ambient local context and appends it as a child of the root.
func (s *Service) NewState(specs []domain.GoalSpec) (domain.NodeID, error) {
	snap, err := s.engine.BuildContext(specs)
	if err != nil {
		return 0, domain.Coerce(err, domain.KindElaboration)
	}
	id := s.tree.Append(domain.Node{
		Snapshot: snap,
		Parent:   domain.RootID,
		Step:     "",
	})
	s.logger.Debug("context created", "state", int(id), "goals", len(specs))
	return id, nil
}

// GiveUp restores the context of sid, admits every open goal, and
// appends the resulting checkpoint with empty step text.
func (s *Service) GiveUp(sid domain.NodeID) (domain.NodeID, error) {
	if _, err := s.restore(sid); err != nil {
		return 0, err
	}
	s.engine.AdmitAll()
	id := s.tree.Append(domain.Node{
		Snapshot: s.engine.Capture(),
		Parent:   sid,
		Step:     "",
	})
	s.logger.Debug("goals admitted", "parent", int(sid), "state", int(id))
	return id, nil
}

// Commit restores the context of sid (validating it exists) and stops the
// session. No node is appended; the running flag never reverses.
func (s *Service) Commit(sid domain.NodeID) error {
	if _, err := s.restore(sid); err != nil {
		return err
	}
	s.running = false
	s.logger.Debug("session committed", "state", int(sid), "states", s.tree.Len())
	return nil
}

// Position reports the ambient source position. Pure query: no snapshot
// restore, no session interaction.
func (s *Service) Position() *domain.Position {
	return s.engine.Position()
}

func errorMessages(diags []domain.Diagnostic) []string {
	var msgs []string
	for _, d := range diags {
		if d.Severity == domain.SeverityError {
			msgs = append(msgs, d.Message)
		}
	}
	return msgs
}
