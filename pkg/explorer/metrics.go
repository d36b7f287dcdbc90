package explorer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bitcoinecho",
		Subsystem: "explorer",
		Name:      "requests_total",
		Help:      "Explorer HTTP requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bitcoinecho",
		Subsystem: "explorer",
		Name:      "request_duration_seconds",
		Help:      "Explorer HTTP request latency by endpoint.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

func observeRequest(endpoint string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	requestsTotal.WithLabelValues(endpoint, outcome).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
