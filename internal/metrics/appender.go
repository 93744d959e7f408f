package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	appendTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "appender",
		Name:      "append_total",
		Help:      "Count of local blocks appended.",
	}, []string{"linked", "status"})

	appendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "appender",
		Name:      "append_duration_seconds",
		Help:      "Duration of creating, signing and storing a block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
)

// Appender tracks metrics for local chain appends.
type Appender struct{}

func NewAppender() *Appender {
	return &Appender{}
}

// ObserveAppend records the outcome of one append.
func (Appender) ObserveAppend(err error, linked bool, started time.Time) {
	status := statusOf(err)
	appendTotal.WithLabelValues(strconv.FormatBool(linked), status).Inc()
	appendDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}
