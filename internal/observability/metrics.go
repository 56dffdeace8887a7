package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts calls to external services by service name and outcome.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "julie_upstream_requests_total",
		Help: "Total number of requests to external services by outcome",
	}, []string{"service", "outcome"})

	// UpstreamLatency records external-call latency by service name.
	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "julie_upstream_latency_seconds",
		Help:    "External service call latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"service"})

	// AnalysisFallbacks counts colour-analysis runs that ended in a fallback
	// substitution, by cause ("unknown_result" or "upstream_failure").
	AnalysisFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "julie_colour_analysis_fallbacks_total",
		Help: "Total number of colour analyses that applied the fallback palette",
	}, []string{"cause"})
)

// ObserveUpstream records one external call: its latency and outcome
// ("success" or "error"). Intended to be deferred at call sites.
func ObserveUpstream(service string, start time.Time, err error) {
	UpstreamLatency.WithLabelValues(service).Observe(time.Since(start).Seconds())
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequests.WithLabelValues(service, outcome).Inc()
}
