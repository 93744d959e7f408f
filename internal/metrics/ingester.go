package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/model"
)

var (
	ingesterEnvelopesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "envelopes_total",
		Help:      "Count of processed envelopes by outcome.",
	}, []string{"outcome", "status"})

	ingesterEnvelopeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "envelope_duration_seconds",
		Help:      "Duration of processing one envelope.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	ingesterEnvelopeBlocks = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "envelope_blocks",
		Help:      "Number of blocks carried by an envelope.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})

	ingesterBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "blocks_total",
		Help:      "Count of ingested blocks by verdict.",
	}, []string{"verdict"})

	ingesterDuplicatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "duplicates_total",
		Help:      "Count of blocks skipped because they were seen recently.",
	})
)

// Ingester tracks metrics for the spool ingester.
type Ingester struct{}

func NewIngester() *Ingester {
	return &Ingester{}
}

// ObserveEnvelope records one envelope. Outcome is empty when the envelope failed and stays pending.
func (Ingester) ObserveEnvelope(outcome model.Outcome, blocks int, err error, started time.Time) {
	status := statusOf(err)
	ingesterEnvelopesTotal.WithLabelValues(string(outcome), status).Inc()
	ingesterEnvelopeDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if blocks > 0 {
		ingesterEnvelopeBlocks.Observe(float64(blocks))
	}
}

func (Ingester) ObserveBlock(verdict model.Verdict) {
	ingesterBlocksTotal.WithLabelValues(string(verdict)).Inc()
}

func (Ingester) ObserveDuplicate() {
	ingesterDuplicatesTotal.Inc()
}
