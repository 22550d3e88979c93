package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the prometheus collectors of a store.
type Metrics struct {
	Merges       *prometheus.CounterVec
	Commits      *prometheus.CounterVec
	Compactions  prometheus.Counter
	ArenaNodes   prometheus.Gauge
	LiveNodes    prometheus.Gauge
	FetchSeconds *prometheus.HistogramVec
	PrefetchHits prometheus.Counter
}

// NewMetrics creates the store collectors and registers them with reg. A
// nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Merges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flightcache_merges_total",
			Help: "Flight data paths merged, by result (applied, skipped, error).",
		}, []string{"result"}),
		Commits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flightcache_commits_total",
			Help: "Merge commits, by result (published, superseded).",
		}, []string{"result"}),
		Compactions: f.NewCounter(prometheus.CounterOpts{
			Name: "flightcache_compactions_total",
			Help: "Arena compactions.",
		}),
		ArenaNodes: f.NewGauge(prometheus.GaugeOpts{
			Name: "flightcache_arena_nodes",
			Help: "Nodes in the arena of the published snapshot.",
		}),
		LiveNodes: f.NewGauge(prometheus.GaugeOpts{
			Name: "flightcache_live_nodes",
			Help: "Nodes reachable from the root of the published snapshot.",
		}),
		FetchSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flightcache_fetch_seconds",
			Help:    "Latency of flight data fetches, by kind (navigate, prefetch).",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		PrefetchHits: f.NewCounter(prometheus.CounterOpts{
			Name: "flightcache_prefetch_hits_total",
			Help: "Navigations served from prefetched data.",
		}),
	}
}
