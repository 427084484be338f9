package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ServiceMetrics struct {
	RouteRequestsTotal     *prometheus.CounterVec
	CandidatesDroppedTotal *prometheus.CounterVec
	OptimizeDuration       prometheus.Histogram
	QuotesCreatedTotal     prometheus.Counter
	QuotesExecutedTotal    prometheus.Counter
	ExecutionFailedTotal   *prometheus.CounterVec
	RateCacheHitsTotal     prometheus.Counter
	RateCacheMissesTotal   prometheus.Counter
}

func New(reg prometheus.Registerer) *ServiceMetrics {
	factory := promauto.With(reg)

	return &ServiceMetrics{
		RouteRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "remitroute_route_requests_total",
			Help: "Route optimization requests by corridor and outcome",
		}, []string{"corridor", "outcome"}),
		CandidatesDroppedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "remitroute_candidates_dropped_total",
			Help: "Route candidates dropped during enrichment by reason",
		}, []string{"reason"}),
		OptimizeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "remitroute_optimize_duration_seconds",
			Help:    "End-to-end route optimization duration",
			Buckets: prometheus.DefBuckets,
		}),
		QuotesCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "remitroute_quotes_created_total",
			Help: "Quotes issued",
		}),
		QuotesExecutedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "remitroute_quotes_executed_total",
			Help: "Quotes executed into transactions",
		}),
		ExecutionFailedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "remitroute_quote_execution_failed_total",
			Help: "Failed quote executions by reason",
		}, []string{"reason"}),
		RateCacheHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "remitroute_rate_cache_hits_total",
			Help: "Rate cache hits",
		}),
		RateCacheMissesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "remitroute_rate_cache_misses_total",
			Help: "Rate cache misses",
		}),
	}
}
