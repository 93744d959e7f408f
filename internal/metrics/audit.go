package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	auditFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "audit",
		Name:      "flush_total",
		Help:      "Count of validation audit flushes.",
	}, []string{"status"})

	auditRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "audit",
		Name:      "rows_total",
		Help:      "Count of validation audit rows handed to the writer.",
	}, []string{"status"})

	auditFlushDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "audit",
		Name:      "flush_duration_seconds",
		Help:      "Duration of validation audit flushes.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Audit tracks metrics for the validation audit writer.
type Audit struct{}

func NewAudit() *Audit {
	return &Audit{}
}

func (Audit) ObserveFlush(err error, rows int, started time.Time) {
	status := statusOf(err)
	auditFlushTotal.WithLabelValues(status).Inc()
	auditRowsTotal.WithLabelValues(status).Add(float64(rows))
	auditFlushDuration.Observe(time.Since(started).Seconds())
}
