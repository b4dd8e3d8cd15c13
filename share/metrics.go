package share

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	Calculations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wcl_check_calculations_total",
		Help: "Attribute replays run against a fight.",
	})
	CacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wcl_check_cache_requests_total",
		Help: "Cache lookups by result.",
	}, []string{"result"})
	APIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wcl_check_api_requests_total",
		Help: "Warcraft Logs API calls by HTTP status.",
	}, []string{"status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wcl_check_http_request_duration_seconds",
		Help:    "Served request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	Registry = prometheus.NewRegistry()
)

func init() {
	Registry.MustRegister(Calculations, CacheRequests, APIRequests, HTTPDuration)
	Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}
