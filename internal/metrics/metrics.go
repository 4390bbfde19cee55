package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CodesRequestsTotal      prometheus.Counter
	RateRequestsTotal       prometheus.Counter
	ConversionRequestsTotal prometheus.Counter

	CacheLookupsTotal    *prometheus.CounterVec
	CacheEvictionsTotal  prometheus.Counter
	UpstreamFetchesTotal *prometheus.CounterVec
	UpstreamDuration     *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg. Pass prometheus.DefaultRegisterer
// to expose them on the default /metrics handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		CodesRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "codes_requests_total",
				Help: "Total number of currency code list requests",
			},
		),

		RateRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_requests_total",
				Help: "Total number of mid rate requests",
			},
		),

		ConversionRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "conversion_requests_total",
				Help: "Total number of currency conversion requests",
			},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nbp_cache_lookups_total",
				Help: "Total number of rate cache lookups by key and result",
			},
			[]string{"key", "result"},
		),

		CacheEvictionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nbp_cache_evictions_total",
				Help: "Total number of expired rate cache entries removed",
			},
		),

		UpstreamFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nbp_upstream_fetches_total",
				Help: "Total number of NBP table fetches by table and result",
			},
			[]string{"table", "result"},
		),

		UpstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nbp_upstream_fetch_duration_seconds",
				Help:    "NBP table fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"table"},
		),
	}
}
