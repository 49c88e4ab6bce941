package client

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blog_client",
			Name:      "http_requests_total",
			Help:      "HTTP requests sent to the blog backend, by status code and method.",
		},
		[]string{"code", "method"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "blog_client",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests sent to the blog backend.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "blog_client",
			Name:      "http_in_flight_requests",
			Help:      "HTTP requests to the blog backend currently in flight.",
		},
	)
)

// instrumentTransport records request counts, latency and in-flight requests
// for every round trip made through next.
func instrumentTransport(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperInFlight(httpInFlight,
		promhttp.InstrumentRoundTripperCounter(httpRequestsTotal,
			promhttp.InstrumentRoundTripperDuration(httpRequestDuration, next),
		),
	)
}
