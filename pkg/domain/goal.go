package domain

// Goal is a read-only view of one open proof obligation, as reported by
// the engine for the currently restored context.
type Goal struct {
	// Name is the obligation's label, when it has one.
	Name string `json:"name,omitempty"`

	// Pretty is the engine's pretty-printed rendering of the goal,
	// including its local hypotheses.
	Pretty string `json:"pretty"`
}

// GoalSpec describes one named, typed obligation used to build a fresh
// context (the newState operation).
type GoalSpec struct {
	Name string `json:"name" mapstructure:"name"`
	Type string `json:"type" mapstructure:"type"`
}

// Severity levels for diagnostics.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Diagnostic is one entry of the engine's accumulated message log.
type Diagnostic struct {
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Pos      *Position `json:"pos,omitempty"`
}

// Candidate is one resolution of a global name, together with the field
// names that disambiguate it from its siblings.
type Candidate struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// Unifier maps metavariable names to their solution text. A nil value for
// a key means the metavariable was left unconstrained by unification. A
// nil Unifier altogether means no unifier exists.
type Unifier map[string]*string

// Position is a location in a source file.
type Position struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}
