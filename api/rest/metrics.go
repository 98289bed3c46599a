package rest

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/txchain/internal/custompromauto"
)

var (
	httpRequests = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace(),
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, route and response status",
	}, []string{"method", "path", "status"})

	httpRequestDuration = custompromauto.Auto().NewHistogramVec(prometheus.HistogramOpts{
		Namespace: custompromauto.Namespace(),
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	rateLimitedRequests = custompromauto.Auto().NewCounter(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace(),
		Name:      "http_rate_limited_requests_total",
		Help:      "Total number of requests refused by the rate limiter",
	})

	streamClients = custompromauto.Auto().NewGauge(prometheus.GaugeOpts{
		Namespace: custompromauto.Namespace(),
		Name:      "stream_clients",
		Help:      "Number of connected transaction stream clients",
	})
)
