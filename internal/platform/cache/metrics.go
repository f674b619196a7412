package cache

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the Prometheus collectors of a SeriesStore.
type Metrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions *prometheus.CounterVec
	fetchErr  *prometheus.CounterVec
	entries   prometheus.Gauge
}

// NewMetrics creates the store collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stock", Subsystem: "series_store", Name: "hits_total",
			Help: "Lookups served from a live cache entry.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stock", Subsystem: "series_store", Name: "misses_total",
			Help: "Lookups that required an upstream fetch.",
		}),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stock", Subsystem: "series_store", Name: "evictions_total",
			Help: "Entries removed by maintenance, by reason.",
		}, []string{"reason"}),
		fetchErr: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stock", Subsystem: "series_store", Name: "fetch_errors_total",
			Help: "Failed upstream fetches, by kind.",
		}, []string{"kind"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stock", Subsystem: "series_store", Name: "entries",
			Help: "Entries currently held.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.hits, m.misses, m.evictions, m.fetchErr, m.entries)
	}
	return m
}
