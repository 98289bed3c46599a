package custompromauto

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "txchain"

var registry *prometheus.Registry
var auto promauto.Factory

func init() {
	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto = promauto.With(registry)
}

// Auto returns a factory registering every metric it creates with the service registry.
func Auto() promauto.Factory {
	return auto
}

func Registry() *prometheus.Registry {
	return registry
}

// Namespace is the metric name prefix shared by every txchain metric.
func Namespace() string {
	return namespace
}

// Handler exposes the service registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}
