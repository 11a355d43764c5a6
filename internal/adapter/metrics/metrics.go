// Package metrics exposes fulfillment and ledger counters to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"fulfillment-ledger/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fulfillment"

// Recorder implements ports.Metrics and records HTTP request metrics.
type Recorder struct {
	transitions  *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	postings     *prometheus.CounterVec
	postedAmount *prometheus.CounterVec
	arrivals     *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "orders",
				Name:      "transitions_total",
				Help:      "Applied order status transitions.",
			},
			[]string{"from", "to"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "orders",
				Name:      "transition_rejections_total",
				Help:      "Rejected order status transition requests.",
			},
			[]string{"to", "code"},
		),
		postings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "postings_total",
				Help:      "Wallet transactions written.",
			},
			[]string{"wallet_kind", "type"},
		),
		postedAmount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "posted_paise_total",
				Help:      "Absolute amount moved by wallet transactions, in paise.",
			},
			[]string{"wallet_kind", "type"},
		),
		arrivals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "arrival",
				Name:      "escalations_total",
				Help:      "Arrival alerts raised for newly pending orders.",
			},
			[]string{"role"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}

	reg.MustRegister(
		r.transitions, r.rejections, r.postings, r.postedAmount,
		r.arrivals, r.httpRequests, r.httpDuration,
	)
	return r
}

func (r *Recorder) TransitionApplied(from, to domain.OrderStatus) {
	r.transitions.WithLabelValues(string(from), string(to)).Inc()
}

func (r *Recorder) TransitionRejected(to domain.OrderStatus, code string) {
	r.rejections.WithLabelValues(string(to), code).Inc()
}

func (r *Recorder) LedgerPosted(kind domain.WalletKind, txType domain.TxType, amount int64) {
	if amount < 0 {
		amount = -amount
	}
	r.postings.WithLabelValues(string(kind), string(txType)).Inc()
	r.postedAmount.WithLabelValues(string(kind), string(txType)).Add(float64(amount))
}

func (r *Recorder) ArrivalEscalated(role domain.Role, count int) {
	r.arrivals.WithLabelValues(string(role)).Add(float64(count))
}

// ObserveHTTP records one served request. path should be the route
// template, not the raw URL, to keep label cardinality bounded.
func (r *Recorder) ObserveHTTP(method, path string, status int, duration time.Duration) {
	statusLabel := strconv.Itoa(status)
	r.httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	r.httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

// Nop discards every observation.
type Nop struct{}

func (Nop) TransitionApplied(domain.OrderStatus, domain.OrderStatus) {}
func (Nop) TransitionRejected(domain.OrderStatus, string)           {}
func (Nop) LedgerPosted(domain.WalletKind, domain.TxType, int64)    {}
func (Nop) ArrivalEscalated(domain.Role, int)                       {}
func (Nop) ObserveHTTP(string, string, int, time.Duration)          {}
