package trackapi

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for page fetches.
var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playlog_track_fetches_total",
		Help: "Total track page fetches by outcome",
	}, []string{"outcome"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "playlog_track_fetch_duration_seconds",
		Help:    "Track page fetch duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})
)

const outcomeOK = "ok"

// observeFetch records the outcome of a single FetchPage call.
func observeFetch(err error, elapsed time.Duration) {
	fetchDuration.Observe(elapsed.Seconds())
	fetchesTotal.WithLabelValues(outcomeOf(err)).Inc()
}

func outcomeOf(err error) string {
	if err == nil {
		return outcomeOK
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind.String()
	}
	return "unknown"
}
