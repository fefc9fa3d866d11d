package protocol

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/sequentlabs/sequent/internal/logging"
	"github.com/sequentlabs/sequent/internal/metrics"
	"github.com/sequentlabs/sequent/pkg/domain"
	"github.com/sequentlabs/sequent/pkg/session"
)

// Dispatcher decodes one input line into a Request, invokes the
// registered operation, and converts success or failure into a Response.
// All handler failures are caught here and encoded; nothing is fatal to
// the caller.
type Dispatcher struct {
	svc      *session.Service
	registry *Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// DispatcherOption configures the Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger configures a logger for dispatch events.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics enables request/error counters and step timing.
func WithMetrics(m *metrics.Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// NewDispatcher builds the dispatcher and its fixed method table, each
// entry a closure over the session service.
func NewDispatcher(svc *session.Service, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		svc:      svc,
		registry: NewRegistry(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.registerOperations()
	return d
}

// Registry exposes the method table, so alternate transports (HTTP, MCP)
// can route through the same operations.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Invoke runs a single operation by method name. It is the entry point
// shared by every transport; the line protocol wraps it in Handle.
func (d *Dispatcher) Invoke(ctx context.Context, method string, params map[string]any) (any, error) {
	fn, err := d.registry.Lookup(method)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	result, err := fn(ctx, params)
	if method == methodApplyStep {
		d.metrics.ObserveStep(time.Since(start))
	}
	return result, err
}

// Handle processes one input line and returns exactly one response.
//
// Three outcomes: the line is not JSON (parse error, no id); it is JSON
// but not a valid request (invalid request, no id); it is a valid request
// (result or error, correlated by id).
func (d *Dispatcher) Handle(ctx context.Context, line []byte) Response {
	var raw any
	if err := json.Unmarshal(line, &raw); err != nil {
		d.metrics.CountError(domain.KindTransportParse.Code())
		return Response{Error: &WireError{
			Code:    domain.KindTransportParse.Code(),
			Message: "parse error: " + err.Error(),
		}}
	}

	req, err := validateRequest(raw)
	if err != nil {
		d.metrics.CountError(domain.KindInvalidRequest.Code())
		return Response{Error: toWire(err)}
	}

	d.metrics.CountRequest(req.Method)
	result, err := d.Invoke(ctx, req.Method, req.Params)
	d.metrics.SetNodes(d.svc.Len())
	if err != nil {
		we := toWire(err)
		d.metrics.CountError(we.Code)
		d.logger.Debug("request failed", "method", req.Method, "code", we.Code, "err", we.Message)
		return Response{ID: req.ID, Error: we}
	}
	return Response{ID: req.ID, Result: result}
}

// validateRequest checks the decoded JSON value against the request
// schema: an object with a string "method" and an optional object
// "params".
func validateRequest(raw any) (Request, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Request{}, domain.NewError(domain.KindInvalidRequest, "request must be a JSON object")
	}
	method, ok := obj["method"].(string)
	if !ok || method == "" {
		return Request{}, domain.NewError(domain.KindInvalidRequest, "request is missing a method name")
	}
	params := map[string]any{}
	if p, present := obj["params"]; present && p != nil {
		params, ok = p.(map[string]any)
		if !ok {
			return Request{}, domain.NewError(domain.KindInvalidRequest, "params must be a JSON object")
		}
	}
	return Request{ID: obj["id"], Method: method, Params: params}, nil
}

// bindParams decodes the params object into a typed, per-method struct.
func bindParams(params map[string]any, out any) error {
	if err := mapstructure.Decode(params, out); err != nil {
		return domain.NewError(domain.KindInvalidParams, "invalid params: "+err.Error())
	}
	return nil
}

// Method names of the operation registry.
const (
	methodApplyStep     = "applyStep"
	methodQueryState    = "queryState"
	methodQueryMessages = "queryMessages"
	methodResolveName   = "resolveName"
	methodUnify         = "unify"
	methodNewState      = "newState"
	methodGiveUp        = "giveUp"
	methodCommit        = "commit"
	methodPosition      = "position"
)

type stateParams struct {
	StateID int64 `mapstructure:"stateId"`
}

type applyStepParams struct {
	StateID int64  `mapstructure:"stateId"`
	Step    string `mapstructure:"step"`
	Budget  uint64 `mapstructure:"budget"`
}

type resolveNameParams struct {
	StateID int64  `mapstructure:"stateId"`
	Name    string `mapstructure:"name"`
}

type unifyParams struct {
	StateID int64  `mapstructure:"stateId"`
	ExprA   string `mapstructure:"exprA"`
	ExprB   string `mapstructure:"exprB"`
}

type newStateParams struct {
	Goals []domain.GoalSpec `mapstructure:"goals"`
}

func (d *Dispatcher) registerOperations() {
	d.registry.Register(methodApplyStep, func(ctx context.Context, params map[string]any) (any, error) {
		var p applyStepParams
		if err := bindParams(params, &p); err != nil {
			return nil, err
		}
		id, err := d.svc.ApplyStep(ctx, domain.NodeID(p.StateID), p.Step, p.Budget)
		if err != nil {
			return nil, err
		}
		return StateResult{StateID: int(id)}, nil
	})

	d.registry.Register(methodQueryState, func(ctx context.Context, params map[string]any) (any, error) {
		var p stateParams
		if err := bindParams(params, &p); err != nil {
			return nil, err
		}
		goals, err := d.svc.Goals(domain.NodeID(p.StateID))
		if err != nil {
			return nil, err
		}
		if goals == nil {
			goals = []domain.Goal{}
		}
		return GoalsResult{Goals: goals}, nil
	})

	d.registry.Register(methodQueryMessages, func(ctx context.Context, params map[string]any) (any, error) {
		var p stateParams
		if err := bindParams(params, &p); err != nil {
			return nil, err
		}
		msgs, err := d.svc.Messages(domain.NodeID(p.StateID))
		if err != nil {
			return nil, err
		}
		if msgs == nil {
			msgs = []domain.Diagnostic{}
		}
		return MessagesResult{Messages: msgs}, nil
	})

	d.registry.Register(methodResolveName, func(ctx context.Context, params map[string]any) (any, error) {
		var p resolveNameParams
		if err := bindParams(params, &p); err != nil {
			return nil, err
		}
		candidates, err := d.svc.ResolveName(domain.NodeID(p.StateID), p.Name)
		if err != nil {
			return nil, err
		}
		if candidates == nil {
			candidates = []domain.Candidate{}
		}
		return CandidatesResult{Candidates: candidates}, nil
	})

	d.registry.Register(methodUnify, func(ctx context.Context, params map[string]any) (any, error) {
		var p unifyParams
		if err := bindParams(params, &p); err != nil {
			return nil, err
		}
		unifier, err := d.svc.Unify(domain.NodeID(p.StateID), p.ExprA, p.ExprB)
		if err != nil {
			return nil, err
		}
		return UnifyResult{Unifier: unifier}, nil
	})

	d.registry.Register(methodNewState, func(ctx context.Context, params map[string]any) (any, error) {
		var p newStateParams
		if err := bindParams(params, &p); err != nil {
			return nil, err
		}
		id, err := d.svc.NewState(p.Goals)
		if err != nil {
			return nil, err
		}
		return StateResult{StateID: int(id)}, nil
	})

	d.registry.Register(methodGiveUp, func(ctx context.Context, params map[string]any) (any, error) {
		var p stateParams
		if err := bindParams(params, &p); err != nil {
			return nil, err
		}
		id, err := d.svc.GiveUp(domain.NodeID(p.StateID))
		if err != nil {
			return nil, err
		}
		return StateResult{StateID: int(id)}, nil
	})

	d.registry.Register(methodCommit, func(ctx context.Context, params map[string]any) (any, error) {
		var p stateParams
		if err := bindParams(params, &p); err != nil {
			return nil, err
		}
		if err := d.svc.Commit(domain.NodeID(p.StateID)); err != nil {
			return nil, err
		}
		return struct{}{}, nil
	})

	d.registry.Register(methodPosition, func(ctx context.Context, params map[string]any) (any, error) {
		return PositionResult{Position: d.svc.Position()}, nil
	})
}
