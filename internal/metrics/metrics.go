package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "protest_tracker"

// Registry holds every collector exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	HTTPRequestsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Buckets: 1ms .. 5s
	HTTPRequestDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// EngagementTotal counts like/unlike and follow/unfollow toggles that hit an existing row.
	EngagementTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engagement_toggles_total",
			Help:      "Like and follow toggles by kind and direction",
		},
		[]string{"kind", "direction"},
	)

	ListCacheLookups = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "protest_list_cache_lookups_total",
			Help:      "Protest listing cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	SchemaReady = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "schema_ready",
			Help:      "1 once the database schema has been ensured, 0 before or after a failure",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RegisterPool exposes pgxpool statistics as gauges read at scrape time.
func RegisterPool(pool *pgxpool.Pool) {
	gauge := func(name, help string, read func(*pgxpool.Stat) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, func() float64 { return read(pool.Stat()) })
	}

	for _, c := range []prometheus.Collector{
		gauge("db_connections_total", "Total connections in the pool", func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) }),
		gauge("db_connections_in_use", "Connections currently acquired", func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }),
		gauge("db_connections_idle", "Idle connections", func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }),
		gauge("db_connections_max", "Maximum pool size", func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) }),
	} {
		// a second registration for the same process is harmless
		if err := Registry.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
}
