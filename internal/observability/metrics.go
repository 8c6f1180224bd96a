package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LeadMetrics holds the Prometheus metrics for the leads API.
type LeadMetrics struct {
	Submissions *prometheus.CounterVec
	Lists       prometheus.Counter
}

// NewLeadMetrics initializes and registers the metrics on the default
// registry. Call once per process.
func NewLeadMetrics() *LeadMetrics {
	return &LeadMetrics{
		Submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadcapture",
			Subsystem: "api",
			Name:      "submissions_total",
			Help:      "Lead submissions by outcome.",
		}, []string{"outcome"}), // outcome: accepted, invalid_body, validation_error, store_error
		Lists: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "leadcapture",
			Subsystem: "api",
			Name:      "lists_total",
			Help:      "Total number of lead list reads served.",
		}),
	}
}

// Submission records one submit outcome. Safe on a nil receiver so handlers
// can run without metrics in tests.
func (m *LeadMetrics) Submission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

// ListServed records one successful list read.
func (m *LeadMetrics) ListServed() {
	if m == nil {
		return
	}
	m.Lists.Inc()
}
