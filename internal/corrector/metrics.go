package corrector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"prefixcorrector/internal/editdist"
)

const (
	resultOK       = "ok"
	resultRejected = "rejected"
)

type Metrics struct {
	// CorrectionsTotal counts prefix corrections by result
	CorrectionsTotal *prometheus.CounterVec
	// OperationsTotal counts applied word edit operations by type
	OperationsTotal *prometheus.CounterVec
	// CorrectionDuration tracks correction latency
	CorrectionDuration prometheus.Histogram
}

// NewMetrics registers the corrector metrics with reg. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CorrectionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "prefix_corrections_total",
			Help: "Total prefix corrections by result",
		}, []string{"result"}),
		OperationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "prefix_correction_operations_total",
			Help: "Word edit operations applied to hypotheses by type",
		}, []string{"op"}),
		CorrectionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "prefix_correction_duration_seconds",
			Help:    "Prefix correction duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs to ~80ms
		}),
	}
}

func (m *Metrics) observe(start time.Time, ops []editdist.Op, err error) {
	if m == nil {
		return
	}
	m.CorrectionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.CorrectionsTotal.WithLabelValues(resultRejected).Inc()
		return
	}
	m.CorrectionsTotal.WithLabelValues(resultOK).Inc()
	for _, op := range ops {
		m.OperationsTotal.WithLabelValues(op.String()).Inc()
	}
}
