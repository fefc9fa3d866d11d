package sandbox

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequentlabs/sequent/pkg/domain"
)

func buildNat(t *testing.T, e *Engine) {
	t.Helper()
	_, err := e.BuildContext([]domain.GoalSpec{{Name: "h", Type: "Nat"}})
	require.NoError(t, err)
}

func apply(t *testing.T, e *Engine, text string, budget uint64) error {
	t.Helper()
	ast, err := e.ParseStep(text)
	require.NoError(t, err)
	return e.ExecuteStep(context.Background(), ast, budget)
}

func TestParseTerm(t *testing.T) {
	cases := map[string]string{
		"Nat":                  "Nat",
		"Nat -> Nat":           "Nat -> Nat",
		"(Nat -> Nat) -> Bool": "(Nat -> Nat) -> Bool",
		"Nat -> Nat -> Bool":   "Nat -> Nat -> Bool",
		"f x y":                "f x y",
		"f (g x)":              "f (g x)",
		"?m -> Nat":            "?m -> Nat",
	}
	for input, want := range cases {
		got, err := parseTerm(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got.String(), "input %q", input)
	}
}

func TestParseTerm_Malformed(t *testing.T) {
	for _, input := range []string{"", "(((", "a -> ", "-> b", "a b)", "a @ b", "?"} {
		_, err := parseTerm(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseStep_UnknownTactic(t *testing.T) {
	e := New()
	_, err := e.ParseStep("malformed(((")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tactic")
}

func TestExactClosesGoalViaSelfAssumption(t *testing.T) {
	e := New()
	buildNat(t, e)

	require.NoError(t, apply(t, e, "exact h", 100))
	assert.Empty(t, e.CurrentGoals())
}

func TestExactTypeMismatch(t *testing.T) {
	e := New()
	buildNat(t, e)

	err := apply(t, e, "exact Bool.true", 100)
	require.Error(t, err)

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindStepExecution, de.Kind)
	assert.Len(t, e.CurrentGoals(), 1)
}

func TestExactApplication(t *testing.T) {
	e := New()
	buildNat(t, e)

	require.NoError(t, apply(t, e, "exact Nat.succ (Nat.add Nat.zero Nat.zero)", 100))
	assert.Empty(t, e.CurrentGoals())
}

func TestIntroThenExact(t *testing.T) {
	e := New()
	_, err := e.BuildContext([]domain.GoalSpec{{Name: "imp", Type: "Nat -> Nat"}})
	require.NoError(t, err)

	require.NoError(t, apply(t, e, "intro n", 100))
	goals := e.CurrentGoals()
	require.Len(t, goals, 1)
	assert.Contains(t, goals[0].Pretty, "n : Nat")

	require.NoError(t, apply(t, e, "exact n", 100))
	assert.Empty(t, e.CurrentGoals())
}

func TestBudgetExhaustion(t *testing.T) {
	e := New()
	buildNat(t, e)

	err := apply(t, e, "exact Nat.succ Nat.zero", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget")
}

func TestSnapshotRestoreIsolation(t *testing.T) {
	e := New()
	buildNat(t, e)
	snap := e.Capture()

	require.NoError(t, apply(t, e, "admit", 100))
	assert.Empty(t, e.CurrentGoals())
	assert.NotEmpty(t, e.Diagnostics())

	// Restoring rewinds goals and diagnostics alike.
	e.Restore(snap)
	assert.Len(t, e.CurrentGoals(), 1)
	assert.Empty(t, e.Diagnostics())

	// The held snapshot is unaffected by later mutation.
	require.NoError(t, apply(t, e, "log checkpoint reached", 100))
	e.Restore(snap)
	assert.Empty(t, e.Diagnostics())
}

func TestBuildContextRejectsBadSpecs(t *testing.T) {
	e := New()

	_, err := e.BuildContext([]domain.GoalSpec{{Name: "h", Type: "((("}})
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindExpressionParse, de.Kind)

	_, err = e.BuildContext([]domain.GoalSpec{
		{Name: "h", Type: "Nat"},
		{Name: "h", Type: "Bool"},
	})
	require.Error(t, err)

	_, err = e.BuildContext([]domain.GoalSpec{{Name: "", Type: "Nat"}})
	require.Error(t, err)
}

func TestUnify(t *testing.T) {
	e := New()

	parse := func(s string) any {
		ast, err := e.ParseExpr(s)
		require.NoError(t, err)
		return ast
	}

	// Unrelated rigid names: no unifier.
	u, err := e.Unify(parse("x"), parse("y"))
	require.NoError(t, err)
	assert.Nil(t, u)

	// Identical terms: empty unifier, not nil.
	u, err = e.Unify(parse("f x"), parse("f x"))
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Empty(t, u)

	// Metavariable binding through structure.
	u, err = e.Unify(parse("f ?m Nat"), parse("f Bool ?n"))
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotNil(t, u["m"])
	require.NotNil(t, u["n"])
	assert.Equal(t, "Bool", *u["m"])
	assert.Equal(t, "Nat", *u["n"])

	// Occurs check.
	u, err = e.Unify(parse("?m"), parse("f ?m"))
	require.NoError(t, err)
	assert.Nil(t, u)

	// Unconstrained metavariables are reported with a nil solution.
	u, err = e.Unify(parse("f ?a"), parse("f ?a"))
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Contains(t, u, "a")
	assert.Nil(t, u["a"])
}

func TestResolveName(t *testing.T) {
	e := New()

	candidates := e.ResolveName("zero")
	require.Len(t, candidates, 1)
	assert.Equal(t, "Nat.zero", candidates[0].Name)
	assert.Equal(t, []string{"Nat"}, candidates[0].Fields)

	assert.Empty(t, e.ResolveName("nonexistent"))

	e2 := New(WithConstant("List.zero", "Nat"))
	names := e2.ResolveName("zero")
	require.Len(t, names, 2)
	assert.Equal(t, "List.zero", names[0].Name)
	assert.Equal(t, "Nat.zero", names[1].Name)
}

func TestPosition(t *testing.T) {
	e := New()
	assert.Nil(t, e.Position())

	e2 := New(WithPosition(domain.Position{File: "Main.lean", Line: 12, Column: 4}))
	pos := e2.Position()
	require.NotNil(t, pos)
	assert.Equal(t, 12, pos.Line)

	// BuildContext keeps the ambient position.
	_, err := e2.BuildContext(nil)
	require.NoError(t, err)
	require.NotNil(t, e2.Position())
}
