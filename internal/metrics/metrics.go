// Package metrics exposes Prometheus instrumentation for the protocol
// dispatcher. A nil *Metrics is a valid no-op receiver, so the dispatcher
// does not need to guard every observation.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the instrument set of one session process.
type Metrics struct {
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	stepTime prometheus.Histogram
	nodes    prometheus.Gauge
}

// New registers the instrument set on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sequent",
			Name:      "requests_total",
			Help:      "Protocol requests processed, by method.",
		}, []string{"method"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sequent",
			Name:      "errors_total",
			Help:      "Error responses emitted, by wire code.",
		}, []string{"code"}),
		stepTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sequent",
			Name:      "step_duration_seconds",
			Help:      "Wall time of applyStep execution, including snapshot restore.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		nodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "sequent",
			Name:      "session_nodes",
			Help:      "Checkpoints held by the session tree.",
		}),
	}
}

// CountRequest increments the request counter for a method.
func (m *Metrics) CountRequest(method string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method).Inc()
}

// CountError increments the error counter for a wire code.
func (m *Metrics) CountError(code int) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(strconv.Itoa(code)).Inc()
}

// ObserveStep records the duration of one applyStep invocation.
func (m *Metrics) ObserveStep(d time.Duration) {
	if m == nil {
		return
	}
	m.stepTime.Observe(d.Seconds())
}

// SetNodes records the current size of the session tree.
func (m *Metrics) SetNodes(n int) {
	if m == nil {
		return
	}
	m.nodes.Set(float64(n))
}
