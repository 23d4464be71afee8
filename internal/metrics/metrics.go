// Package metrics holds the Prometheus collectors for the data layer.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vomadrid"

// Metrics holds all Prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	UpstreamFetches  *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	CacheLookups     *prometheus.CounterVec
	Resolved         *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UpstreamFetches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_fetches_total",
			Help:      "Fetches against the upstream tabular API, by table and outcome.",
		}, []string{"table", "outcome"}),
		UpstreamDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_fetch_duration_seconds",
			Help:      "Duration of complete upstream fetches, all pages included.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"table"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by keyspace and result.",
		}, []string{"keyspace", "result"}),
		Resolved: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolved_references_total",
			Help:      "Distinct linked records looked up while resolving screenings.",
		}, []string{"kind"}),
	}
}

// ObserveFetch records one upstream fetch.
func (m *Metrics) ObserveFetch(table, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamFetches.WithLabelValues(table, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(table).Observe(d.Seconds())
}

// CacheLookup records a hit or miss. The keyspace is the key up to its
// first colon, so per-ID keys do not explode label cardinality.
func (m *Metrics) CacheLookup(key string, hit bool) {
	if m == nil {
		return
	}
	keyspace, _, _ := strings.Cut(key, ":")
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(keyspace, result).Inc()
}

// ObserveResolved records how many distinct references of kind were looked up.
func (m *Metrics) ObserveResolved(kind string, n int) {
	if m == nil {
		return
	}
	m.Resolved.WithLabelValues(kind).Add(float64(n))
}
