package protocol

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/sequentlabs/sequent/internal/logging"
	"github.com/sequentlabs/sequent/pkg/session"
)

// Loop drives the dispatcher over a pair of streams: one request line in,
// one compact response line out, flushed before the next read. It exits
// when the session stops running (a successful commit), when input
// reaches EOF, or when the context is cancelled between requests.
type Loop struct {
	svc    *session.Service
	disp   *Dispatcher
	in     *bufio.Reader
	out    *bufio.Writer
	logger *slog.Logger
}

// LoopOption configures the Loop.
type LoopOption func(*Loop)

// WithLoopLogger configures a logger for loop lifecycle events.
func WithLoopLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		l.logger = logger
	}
}

// NewLoop creates a session loop over the given streams.
func NewLoop(svc *session.Service, disp *Dispatcher, in io.Reader, out io.Writer, opts ...LoopOption) *Loop {
	l := &Loop{
		svc:    svc,
		disp:   disp,
		in:     bufio.NewReader(in),
		out:    bufio.NewWriter(out),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run processes requests until the session commits or input ends. One
// request is fully processed, and its response flushed, before the next
// line is read.
func (l *Loop) Run(ctx context.Context) error {
	for l.svc.Running() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, readErr := l.in.ReadBytes('\n')
		if len(line) > 0 && !blank(line) {
			resp := l.disp.Handle(ctx, line)
			if err := l.write(resp); err != nil {
				return err
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				l.logger.Debug("input closed", "states", l.svc.Len())
				return nil
			}
			return readErr
		}
	}
	l.logger.Debug("session stopped", "states", l.svc.Len())
	return nil
}

func (l *Loop) write(resp Response) error {
	buf, err := json.Marshal(resp)
	if err != nil {
		// Result payloads are plain data; this should not happen.
		l.logger.Error("response encoding failed", "err", err)
		buf, _ = json.Marshal(Response{Error: toWire(err)})
	}
	if _, err := l.out.Write(buf); err != nil {
		return err
	}
	if err := l.out.WriteByte('\n'); err != nil {
		return err
	}
	return l.out.Flush()
}

func blank(line []byte) bool {
	for _, c := range line {
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			return false
		}
	}
	return true
}
