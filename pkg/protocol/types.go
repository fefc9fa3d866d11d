package protocol

import "github.com/sequentlabs/sequent/pkg/domain"

// Request is one decoded protocol request.
type Request struct {
	// ID is the client's correlation value, echoed back verbatim.
	ID     any            `json:"id,omitempty"`
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

// Response is the reply to one input line. At most one of Result and
// Error is set; ID echoes the request's id when one could be decoded.
type Response struct {
	ID     any        `json:"id,omitempty"`
	Result any        `json:"result,omitempty"`
	Error  *WireError `json:"error,omitempty"`
}

// WireError is the wire encoding of a failed operation.
type WireError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// toWire converts a handler failure into its wire encoding. Untagged
// errors are classed as internal.
func toWire(err error) *WireError {
	de := domain.Coerce(err, domain.KindInternal)
	we := &WireError{
		Code:    de.Kind.Code(),
		Message: de.Message,
	}
	if len(de.Details) > 0 {
		we.Data = de.Details
	}
	return we
}

// Result payloads. Results are always objects, never bare null, so that
// every success response carries a "result" member.

// StateResult carries the id of a newly appended checkpoint.
type StateResult struct {
	StateID int `json:"stateId"`
}

// GoalsResult carries the open goals of a checkpoint.
type GoalsResult struct {
	Goals []domain.Goal `json:"goals"`
}

// MessagesResult carries a checkpoint's accumulated diagnostic log.
type MessagesResult struct {
	Messages []domain.Diagnostic `json:"messages"`
}

// CandidatesResult carries the resolutions of a global name.
type CandidatesResult struct {
	Candidates []domain.Candidate `json:"candidates"`
}

// UnifyResult carries the outcome of a unification attempt. A null
// unifier means none exists.
type UnifyResult struct {
	Unifier domain.Unifier `json:"unifier"`
}

// PositionResult carries the ambient source position, if any.
type PositionResult struct {
	Position *domain.Position `json:"position"`
}
