package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "cache",
	Name:      "lookups_total",
	Help:      "Count of block cache lookups by result.",
}, []string{"operation", "result"})

// Cache tracks hit ratio of the block cache.
type Cache struct{}

func NewCache() *Cache {
	return &Cache{}
}

// ObserveLookup records a cache hit or miss.
func (Cache) ObserveLookup(operation string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(operation, result).Inc()
}
