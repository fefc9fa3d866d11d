// Package http exposes a Sequent session over HTTP: one protocol request
// per POST body, same dispatcher, same wire schema as the line protocol.
package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sequentlabs/sequent/internal/logging"
	"github.com/sequentlabs/sequent/pkg/protocol"
)

// Server adapts the protocol dispatcher to HTTP.
type Server struct {
	disp   *protocol.Dispatcher
	logger *slog.Logger
	gather prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for request handling.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer mounts /metrics for the given Prometheus gatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gather = g
	}
}

// NewHandler creates the HTTP handler for a session.
//
// POST /rpc carries one protocol request per body and returns one
// response; GET /healthz reports liveness; GET /metrics is mounted when
// a gatherer is configured.
func NewHandler(disp *protocol.Dispatcher, opts ...Option) http.Handler {
	s := &Server{disp: disp, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/rpc", s.handleRPC)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if s.gather != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gather, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	// Same outcome taxonomy as the line protocol; HTTP status stays 200
	// for protocol-level errors, which travel in the response body.
	resp := s.disp.Handle(r.Context(), body)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("response encoding failed", "err", err)
	}
}
