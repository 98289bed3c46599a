package feed

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/txchain/internal/custompromauto"
)

var (
	subscribers = custompromauto.Auto().NewGauge(prometheus.GaugeOpts{
		Namespace: custompromauto.Namespace(),
		Name:      "feed_subscribers",
		Help:      "Number of live record feed subscribers",
	})

	publishedRecords = custompromauto.Auto().NewCounter(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace(),
		Name:      "feed_published_records_total",
		Help:      "Total number of accepted records published to the feed",
	})
	droppedRecords = custompromauto.Auto().NewCounter(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace(),
		Name:      "feed_dropped_records_total",
		Help:      "Total number of records not delivered to a slow subscriber",
	})
)
