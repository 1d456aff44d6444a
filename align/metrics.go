package align

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tableBuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blockalign_table_builds_total",
		Help: "Weight tables built from scratch after a store miss",
	})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blockalign_cache_lookups_total",
		Help: "Weight table store lookups on a block length change, by result (hit, miss, stale)",
	}, []string{"result"})

	weightExtensions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blockalign_weight_extensions_total",
		Help: "Block pairs added to the active table after its build",
	})

	blockDPSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "blockalign_block_dp_seconds",
		Help:    "Wall-clock time of the block-level dynamic program",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
	})
)
