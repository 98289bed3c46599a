package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/txchain/internal/custompromauto"
)

const (
	outcomeAccepted          = "accepted"
	outcomeInsufficientFunds = "insufficient_funds"
	outcomeLinkage           = "linkage_mismatch"
	outcomeSignature         = "invalid_signature"
	outcomeMalformed         = "malformed"
	outcomeError             = "error"
)

var (
	submissions = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace(),
		Name:      "submissions_total",
		Help:      "Total number of submitted transactions by outcome",
	}, []string{"outcome"})

	deriveDuration = custompromauto.Auto().NewHistogram(prometheus.HistogramOpts{
		Namespace: custompromauto.Namespace(),
		Name:      "derive_duration_seconds",
		Help:      "Time spent validating the stored records into a chain",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	})

	chainLength = custompromauto.Auto().NewGauge(prometheus.GaugeOpts{
		Namespace: custompromauto.Namespace(),
		Name:      "chain_length",
		Help:      "Number of accepted records in the last derived chain",
	})
	rejectedRecords = custompromauto.Auto().NewGauge(prometheus.GaugeOpts{
		Namespace: custompromauto.Namespace(),
		Name:      "rejected_history_records",
		Help:      "Number of stored records left out of the last derived chain",
	})
)
