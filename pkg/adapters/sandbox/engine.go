package sandbox

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sequentlabs/sequent/pkg/domain"
	"github.com/sequentlabs/sequent/pkg/ports"
)

// hypothesis is one local assumption of a goal.
type hypothesis struct {
	name string
	ty   *term
}

// goalState is one obligation of the current context.
type goalState struct {
	name     string
	ty       *term
	hyps     []hypothesis
	open     bool
	admitted bool
}

// engineState is the whole mutable context: obligations plus the
// accumulated diagnostic log.
type engineState struct {
	goals []goalState
	diags []domain.Diagnostic
	pos   *domain.Position
}

func (s engineState) clone() engineState {
	out := engineState{
		goals: make([]goalState, len(s.goals)),
		diags: append([]domain.Diagnostic(nil), s.diags...),
		pos:   s.pos,
	}
	for i, g := range s.goals {
		g.hyps = append([]hypothesis(nil), g.hyps...)
		out.goals[i] = g
	}
	return out
}

// snapshot is the sandbox's domain.Snapshot payload: a deep copy of the
// state at capture time.
type snapshot struct {
	st engineState
}

// Engine is the in-memory reference engine. It is not safe for
// concurrent use; the session core drives it from one goroutine.
type Engine struct {
	st  engineState
	env map[string]*term
}

var _ ports.Engine = (*Engine)(nil)

// Option configures the Engine.
type Option func(*Engine)

// WithConstant adds a global constant to the environment. It panics on an
// invalid type, mirroring template.Must: constants are configuration.
func WithConstant(name, ty string) Option {
	return func(e *Engine) {
		e.env[name] = mustTerm(ty)
	}
}

// WithPosition sets the ambient source position the engine reports.
func WithPosition(pos domain.Position) Option {
	return func(e *Engine) {
		e.st.pos = &pos
	}
}

// New creates a sandbox engine with a small standard environment.
func New(opts ...Option) *Engine {
	e := &Engine{
		env: map[string]*term{
			"Prop":       mustTerm("Type"),
			"Nat":        mustTerm("Type"),
			"Bool":       mustTerm("Type"),
			"Nat.zero":   mustTerm("Nat"),
			"Nat.succ":   mustTerm("Nat -> Nat"),
			"Nat.add":    mustTerm("Nat -> Nat -> Nat"),
			"Bool.true":  mustTerm("Bool"),
			"Bool.false": mustTerm("Bool"),
			"True":       mustTerm("Prop"),
			"True.intro": mustTerm("True"),
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Restore makes snap the current context. Always a full deep restore; the
// sandbox does no structural sharing of mutable state.
func (e *Engine) Restore(snap domain.Snapshot) {
	sn, ok := snap.(*snapshot)
	if !ok {
		panic(fmt.Sprintf("sandbox: foreign snapshot %T", snap))
	}
	e.st = sn.st.clone()
}

// Capture returns a deep copy of the current context.
func (e *Engine) Capture() domain.Snapshot {
	return &snapshot{st: e.st.clone()}
}

// CurrentGoals renders the open goals of the current context.
func (e *Engine) CurrentGoals() []domain.Goal {
	var goals []domain.Goal
	for _, g := range e.st.goals {
		if !g.open {
			continue
		}
		var b strings.Builder
		for _, h := range g.hyps {
			fmt.Fprintf(&b, "%s : %s\n", h.name, h.ty)
		}
		fmt.Fprintf(&b, "⊢ %s", g.ty)
		goals = append(goals, domain.Goal{Name: g.name, Pretty: b.String()})
	}
	return goals
}

// ParseStep parses tactic text.
func (e *Engine) ParseStep(text string) (ports.StepAST, error) {
	return parseStep(text)
}

// ExecuteStep runs one tactic against the current context, charging the
// budget one unit per elementary operation.
func (e *Engine) ExecuteStep(ctx context.Context, ast ports.StepAST, budget uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st, ok := ast.(*step)
	if !ok {
		return domain.NewError(domain.KindStepParse, fmt.Sprintf("foreign step AST %T", ast))
	}
	meter := &budgetMeter{left: budget}

	switch st.verb {
	case verbLog:
		e.st.diags = append(e.st.diags, domain.Diagnostic{
			Severity: domain.SeverityInfo, Message: st.msg, Pos: e.st.pos,
		})
		return nil
	case verbSkip:
		return meter.charge()
	}

	g := e.firstOpen()
	if g == nil {
		return domain.NewStepExecutionError("no open goals")
	}

	switch st.verb {
	case verbExact:
		ty, err := e.elaborate(st.expr, g, meter)
		if err != nil {
			return err
		}
		if !ty.equal(g.ty) {
			return domain.NewStepExecutionError(fmt.Sprintf(
				"type mismatch: %s has type %s, goal expects %s", st.expr, ty, g.ty))
		}
		g.open = false
	case verbIntro:
		if err := meter.charge(); err != nil {
			return err
		}
		if g.ty.op != opArrow {
			return domain.NewStepExecutionError(fmt.Sprintf(
				"cannot intro %s: goal %s is not an arrow", st.name, g.ty))
		}
		for _, h := range g.hyps {
			if h.name == st.name {
				return domain.NewStepExecutionError(fmt.Sprintf("hypothesis %s already exists", st.name))
			}
		}
		g.hyps = append(g.hyps, hypothesis{name: st.name, ty: g.ty.l})
		g.ty = g.ty.r
	case verbAdmit:
		e.admit(g)
	}
	return nil
}

// Diagnostics returns the accumulated message log of the current context.
func (e *Engine) Diagnostics() []domain.Diagnostic {
	return append([]domain.Diagnostic(nil), e.st.diags...)
}

// AdmitAll discharges every open goal without proof.
func (e *Engine) AdmitAll() {
	for i := range e.st.goals {
		if e.st.goals[i].open {
			e.admit(&e.st.goals[i])
		}
	}
}

// BuildContext creates a fresh context from named, typed obligations and
// makes it current.
func (e *Engine) BuildContext(specs []domain.GoalSpec) (domain.Snapshot, error) {
	st := engineState{pos: e.st.pos}
	seen := map[string]bool{}
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, domain.NewError(domain.KindElaboration, "obligation without a name")
		}
		if seen[spec.Name] {
			return nil, domain.NewError(domain.KindElaboration, "duplicate obligation name "+spec.Name)
		}
		seen[spec.Name] = true
		ty, err := parseTerm(spec.Type)
		if err != nil {
			return nil, domain.NewError(domain.KindExpressionParse,
				fmt.Sprintf("obligation %s: %v", spec.Name, err))
		}
		st.goals = append(st.goals, goalState{name: spec.Name, ty: ty, open: true})
	}
	e.st = st
	return e.Capture(), nil
}

// ResolveName resolves a global name against the environment: exact
// matches and dot-suffix matches.
func (e *Engine) ResolveName(name string) []domain.Candidate {
	var out []domain.Candidate
	for full := range e.env {
		if full != name && !strings.HasSuffix(full, "."+name) {
			continue
		}
		parts := strings.Split(full, ".")
		out = append(out, domain.Candidate{Name: full, Fields: parts[:len(parts)-1]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ParseExpr parses expression text.
func (e *Engine) ParseExpr(text string) (ports.ExprAST, error) {
	return parseTerm(text)
}

// Unify attempts first-order unification of two parsed expressions.
func (e *Engine) Unify(a, b ports.ExprAST) (domain.Unifier, error) {
	ta, ok := a.(*term)
	if !ok {
		return nil, domain.NewError(domain.KindElaboration, fmt.Sprintf("foreign expression AST %T", a))
	}
	tb, ok := b.(*term)
	if !ok {
		return nil, domain.NewError(domain.KindElaboration, fmt.Sprintf("foreign expression AST %T", b))
	}

	subst := map[string]*term{}
	if !unify(ta, tb, subst) {
		return nil, nil
	}

	out := domain.Unifier{}
	for _, name := range collectMvars(ta, tb) {
		if bound, ok := subst[name]; ok {
			text := resolve(bound, subst).String()
			out[name] = &text
		} else {
			out[name] = nil
		}
	}
	return out, nil
}

// Position reports the ambient source position.
func (e *Engine) Position() *domain.Position {
	if e.st.pos == nil {
		return nil
	}
	pos := *e.st.pos
	return &pos
}

func (e *Engine) firstOpen() *goalState {
	for i := range e.st.goals {
		if e.st.goals[i].open {
			return &e.st.goals[i]
		}
	}
	return nil
}

func (e *Engine) admit(g *goalState) {
	g.open = false
	g.admitted = true
	e.st.diags = append(e.st.diags, domain.Diagnostic{
		Severity: domain.SeverityWarning,
		Message:  fmt.Sprintf("goal %s admitted without proof", g.name),
		Pos:      e.st.pos,
	})
}

// elaborate infers the type of an expression against a goal's local
// context. Resolution order: hypotheses, sibling obligations (an
// obligation may assume itself or its siblings), then the global
// environment.
func (e *Engine) elaborate(t *term, g *goalState, meter *budgetMeter) (*term, error) {
	if err := meter.charge(); err != nil {
		return nil, err
	}
	switch t.op {
	case opMvar:
		return nil, domain.NewStepExecutionError("metavariable ?" + t.name + " in exact argument")
	case opAtom:
		for _, h := range g.hyps {
			if h.name == t.name {
				return h.ty, nil
			}
		}
		for i := range e.st.goals {
			if e.st.goals[i].name == t.name {
				return e.st.goals[i].ty, nil
			}
		}
		if ty, ok := e.env[t.name]; ok {
			return ty, nil
		}
		return nil, domain.NewStepExecutionError("unknown identifier " + t.name)
	case opArrow:
		return &term{op: opAtom, name: "Type"}, nil
	case opApp:
		fnTy, err := e.elaborate(t.l, g, meter)
		if err != nil {
			return nil, err
		}
		if fnTy.op != opArrow {
			return nil, domain.NewStepExecutionError(fmt.Sprintf(
				"%s is not a function (type %s)", t.l, fnTy))
		}
		argTy, err := e.elaborate(t.r, g, meter)
		if err != nil {
			return nil, err
		}
		if !argTy.equal(fnTy.l) {
			return nil, domain.NewStepExecutionError(fmt.Sprintf(
				"argument %s has type %s, expected %s", t.r, argTy, fnTy.l))
		}
		return fnTy.r, nil
	}
	return nil, domain.NewStepExecutionError("unsupported expression")
}

// budgetMeter is a cooperative cap on engine-internal computation steps.
type budgetMeter struct {
	left uint64
}

func (m *budgetMeter) charge() error {
	if m.left == 0 {
		return domain.NewStepExecutionError("step budget exhausted")
	}
	m.left--
	return nil
}
