package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	UpstreamRequestsTotal *prometheus.CounterVec
	ScrapesTotal          *prometheus.CounterVec
	ScrapeDuration        prometheus.Histogram
	ScrapeSectionFailures *prometheus.CounterVec
)

func Init() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests to upstream data sources.",
		},
		[]string{"service", "status"}, // service: assessor, znet, opendata
	)

	ScrapesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_scrapes_total",
			Help: "Total number of portal scrape attempts.",
		},
		[]string{"status"}, // status: success, failure
	)

	ScrapeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portal_scrape_duration_seconds",
			Help:    "Duration of portal scrape sessions.",
			Buckets: []float64{5, 10, 15, 30, 60, 120, 240},
		},
	)

	ScrapeSectionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_scrape_section_failures_total",
			Help: "Portal sections that could not be located or extracted.",
		},
		[]string{"section"},
	)
}
