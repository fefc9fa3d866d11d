package domain

import (
	"errors"
	"strings"
)

// ErrorKind classifies a failure across the three layers of the protocol:
// transport, request validation, and operation execution.
type ErrorKind int

const (
	// KindStepParse: the step text could not be parsed in the current context.
	KindStepParse ErrorKind = iota
	// KindStepExecution: the step parsed but failed to execute (or left
	// error diagnostics behind). Details carries the engine's messages.
	KindStepExecution
	// KindExpressionParse: an expression argument could not be parsed.
	KindExpressionParse
	// KindElaboration: an expression parsed but failed to elaborate or unify.
	KindElaboration
	// KindInvalidParams: the params object was malformed, e.g. an unknown
	// node id or a field of the wrong shape.
	KindInvalidParams
	// KindMethodNotFound: the request named a method absent from the registry.
	KindMethodNotFound
	// KindInvalidRequest: the line decoded as JSON but is not a valid request.
	KindInvalidRequest
	// KindTransportParse: the input line is not valid JSON at all.
	KindTransportParse
	// KindInternal: an unclassified handler failure.
	KindInternal
)

// Wire codes are stable per kind. Operation-level codes follow the
// engine's numbering; transport-level codes follow the JSON-RPC
// convention the wire format mirrors.
const (
	codeStepParse       = 0
	codeStepExecution   = 1
	codeExpressionParse = 2
	codeElaboration     = 3
	codeTransportParse  = -32700
	codeInvalidRequest  = -32600
	codeMethodNotFound  = -32601
	codeInvalidParams   = -32602
	codeInternal        = -32603
)

// Code returns the stable wire code for the kind.
func (k ErrorKind) Code() int {
	switch k {
	case KindStepParse:
		return codeStepParse
	case KindStepExecution:
		return codeStepExecution
	case KindExpressionParse:
		return codeExpressionParse
	case KindElaboration:
		return codeElaboration
	case KindInvalidParams:
		return codeInvalidParams
	case KindMethodNotFound:
		return codeMethodNotFound
	case KindInvalidRequest:
		return codeInvalidRequest
	case KindTransportParse:
		return codeTransportParse
	default:
		return codeInternal
	}
}

// Error is the single tagged failure type used throughout the session
// core. Handlers return it as an ordinary error; the dispatcher converts
// it to the wire schema at the boundary.
type Error struct {
	Kind    ErrorKind
	Message string
	// Details carries the engine's diagnostic message list for step
	// execution failures.
	Details []string
}

func (e *Error) Error() string {
	if len(e.Details) > 0 {
		return e.Message + ": " + strings.Join(e.Details, "; ")
	}
	return e.Message
}

// NewError builds a tagged error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewStepExecutionError builds a step execution failure carrying the
// engine's message list.
func NewStepExecutionError(messages ...string) *Error {
	msg := "step execution failed"
	if len(messages) == 1 {
		msg = messages[0]
	}
	return &Error{Kind: KindStepExecution, Message: msg, Details: messages}
}

// Coerce tags err with kind unless it already carries a tag of its own.
// Engines are free to return plain errors; the session layer knows which
// kind each call site maps to.
func Coerce(err error, kind ErrorKind) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return &Error{Kind: kind, Message: err.Error()}
}
