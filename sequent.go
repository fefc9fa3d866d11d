// Package sequent is the high-level entry point for the Sequent library:
// an interactive proof-session driver speaking a line-oriented JSON
// protocol over a snapshot/restore proof-construction engine.
package sequent

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/sequentlabs/sequent/internal/logging"
	"github.com/sequentlabs/sequent/internal/metrics"
	"github.com/sequentlabs/sequent/pkg/ports"
	"github.com/sequentlabs/sequent/pkg/protocol"
	"github.com/sequentlabs/sequent/pkg/session"
)

// Version is the current Sequent release.
var Version = "0.3.0"

// Driver bundles one session over one engine: the session service, the
// protocol dispatcher, and the loop that serves them.
type Driver struct {
	svc    *session.Service
	disp   *protocol.Dispatcher
	logger *slog.Logger
}

// Option configures the Driver.
type Option func(*driverOptions)

type driverOptions struct {
	logger  *slog.Logger
	budget  uint64
	metrics *metrics.Metrics
}

// WithLogger sets a structured logger for the driver and its parts.
func WithLogger(logger *slog.Logger) Option {
	return func(o *driverOptions) {
		o.logger = logger
	}
}

// WithDefaultBudget sets the step budget applied when requests omit one.
func WithDefaultBudget(budget uint64) Option {
	return func(o *driverOptions) {
		o.budget = budget
	}
}

// WithMetrics enables Prometheus instrumentation on the dispatcher.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *driverOptions) {
		o.metrics = m
	}
}

// New attaches a session to an engine. The session's root checkpoint is
// captured from the engine's ambient starting state.
func New(engine ports.Engine, opts ...Option) *Driver {
	o := driverOptions{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	svcOpts := []session.Option{session.WithLogger(o.logger)}
	if o.budget > 0 {
		svcOpts = append(svcOpts, session.WithDefaultBudget(o.budget))
	}
	svc := session.NewService(engine, svcOpts...)

	dispOpts := []protocol.DispatcherOption{protocol.WithLogger(o.logger)}
	if o.metrics != nil {
		dispOpts = append(dispOpts, protocol.WithMetrics(o.metrics))
	}

	return &Driver{
		svc:    svc,
		disp:   protocol.NewDispatcher(svc, dispOpts...),
		logger: o.logger,
	}
}

// Service returns the session service.
func (d *Driver) Service() *session.Service {
	return d.svc
}

// Dispatcher returns the protocol dispatcher, for alternate transports.
func (d *Driver) Dispatcher() *protocol.Dispatcher {
	return d.disp
}

// Serve runs the session loop over the given streams until the session
// commits or input ends.
func (d *Driver) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	loop := protocol.NewLoop(d.svc, d.disp, in, out, protocol.WithLoopLogger(d.logger))
	return loop.Run(ctx)
}

// ServeStdio runs the session loop over Stdin/Stdout. Logs go to Stderr.
func (d *Driver) ServeStdio(ctx context.Context) error {
	return d.Serve(ctx, os.Stdin, os.Stdout)
}
