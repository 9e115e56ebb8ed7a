package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pressrate",
		Subsystem: "pricing",
		Name:      "quotes_total",
		Help:      "Price quote calculations by outcome.",
	}, []string{"outcome"})

	quoteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pressrate",
		Subsystem: "pricing",
		Name:      "quote_duration_seconds",
		Help:      "End-to-end quote latency including rate and tax lookups.",
		Buckets:   prometheus.DefBuckets,
	})
)

func observeQuote(elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	quotesTotal.WithLabelValues(outcome).Inc()
	quoteDuration.Observe(elapsed.Seconds())
}
