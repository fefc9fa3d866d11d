// Package testutils provides test doubles for the session core.
package testutils

import (
	"context"

	"github.com/sequentlabs/sequent/pkg/domain"
	"github.com/sequentlabs/sequent/pkg/ports"
)

// StubEngine implements ports.Engine with overridable behavior per call.
// The zero value is a usable engine with no goals and no diagnostics;
// tests set only the function fields they care about.
type StubEngine struct {
	RestoreFunc      func(domain.Snapshot)
	CaptureFunc      func() domain.Snapshot
	GoalsFunc        func() []domain.Goal
	ParseStepFunc    func(string) (ports.StepAST, error)
	ExecuteStepFunc  func(context.Context, ports.StepAST, uint64) error
	DiagnosticsFunc  func() []domain.Diagnostic
	AdmitAllFunc     func()
	BuildContextFunc func([]domain.GoalSpec) (domain.Snapshot, error)
	ResolveNameFunc  func(string) []domain.Candidate
	ParseExprFunc    func(string) (ports.ExprAST, error)
	UnifyFunc        func(a, b ports.ExprAST) (domain.Unifier, error)
	PositionFunc     func() *domain.Position

	// Restores records every snapshot passed to Restore, in order.
	Restores []domain.Snapshot
}

var _ ports.Engine = (*StubEngine)(nil)

func (s *StubEngine) Restore(snap domain.Snapshot) {
	s.Restores = append(s.Restores, snap)
	if s.RestoreFunc != nil {
		s.RestoreFunc(snap)
	}
}

func (s *StubEngine) Capture() domain.Snapshot {
	if s.CaptureFunc != nil {
		return s.CaptureFunc()
	}
	return struct{}{}
}

func (s *StubEngine) CurrentGoals() []domain.Goal {
	if s.GoalsFunc != nil {
		return s.GoalsFunc()
	}
	return nil
}

func (s *StubEngine) ParseStep(text string) (ports.StepAST, error) {
	if s.ParseStepFunc != nil {
		return s.ParseStepFunc(text)
	}
	return text, nil
}

func (s *StubEngine) ExecuteStep(ctx context.Context, ast ports.StepAST, budget uint64) error {
	if s.ExecuteStepFunc != nil {
		return s.ExecuteStepFunc(ctx, ast, budget)
	}
	return nil
}

func (s *StubEngine) Diagnostics() []domain.Diagnostic {
	if s.DiagnosticsFunc != nil {
		return s.DiagnosticsFunc()
	}
	return nil
}

func (s *StubEngine) AdmitAll() {
	if s.AdmitAllFunc != nil {
		s.AdmitAllFunc()
	}
}

func (s *StubEngine) BuildContext(specs []domain.GoalSpec) (domain.Snapshot, error) {
	if s.BuildContextFunc != nil {
		return s.BuildContextFunc(specs)
	}
	return struct{}{}, nil
}

func (s *StubEngine) ResolveName(name string) []domain.Candidate {
	if s.ResolveNameFunc != nil {
		return s.ResolveNameFunc(name)
	}
	return nil
}

func (s *StubEngine) ParseExpr(text string) (ports.ExprAST, error) {
	if s.ParseExprFunc != nil {
		return s.ParseExprFunc(text)
	}
	return text, nil
}

func (s *StubEngine) Unify(a, b ports.ExprAST) (domain.Unifier, error) {
	if s.UnifyFunc != nil {
		return s.UnifyFunc(a, b)
	}
	return nil, nil
}

func (s *StubEngine) Position() *domain.Position {
	if s.PositionFunc != nil {
		return s.PositionFunc()
	}
	return nil
}
