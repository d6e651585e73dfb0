// Package metrics exposes Prometheus counters for playback requests.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vidload/vidload/media"
)

// Request outcomes.
const (
	OutcomeLoaded               = "loaded"
	OutcomeFailed               = "failed"
	OutcomeEmptyInput           = "empty_input"
	OutcomeUnsupportedFormat    = "unsupported_format"
	OutcomeUnsupportedContainer = "unsupported_container"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidload_requests_total",
		Help: "Playback requests by outcome",
	}, []string{"outcome"})

	dispatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidload_dispatches_total",
		Help: "Sources handed to the media surface by container extension",
	}, []string{"format"})
)

// RecordOutcome counts a terminal request outcome.
func RecordOutcome(outcome string) {
	requestsTotal.WithLabelValues(outcome).Inc()
}

// RecordDispatch counts a source attached to the surface.
func RecordDispatch(format media.Format) {
	dispatchesTotal.WithLabelValues(string(format)).Inc()
}
