package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/model"
)

var (
	validationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "validator",
		Name:      "validations_total",
		Help:      "Count of block validations by verdict.",
	}, []string{"verdict"})

	validationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "validator",
		Name:      "validation_duration_seconds",
		Help:      "Duration of a block validation including store lookups.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	validationViolations = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "validator",
		Name:      "violations",
		Help:      "Number of violations reported per invalid block.",
		Buckets:   prometheus.LinearBuckets(1, 1, 6),
	})
)

// Validator tracks metrics for chain validation.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ObserveValidation records the verdict and duration of one validation.
// A failed validation carries no verdict and is only counted as an error.
func (Validator) ObserveValidation(verdict model.Verdict, violations int, err error, started time.Time) {
	validationDuration.WithLabelValues(statusOf(err)).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	validationsTotal.WithLabelValues(string(verdict)).Inc()
	if verdict == model.VerdictInvalid {
		validationViolations.Observe(float64(violations))
	}
}
