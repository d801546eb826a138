// Package metrics exposes Prometheus counters for storage configuration
// decoding and resolution.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decodesTotal     *prometheus.CounterVec
	resolutionsTotal *prometheus.CounterVec

	// Registration guard
	metricsOnce       sync.Once
	metricsRegistered bool
)

// Init registers all Prometheus metrics. Call once at startup when metrics
// are enabled; recording is a no-op otherwise.
func Init() {
	metricsOnce.Do(func() {
		decodesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_storage_decodes_total",
				Help: "Total number of storage definition decode attempts",
			},
			[]string{"type", "outcome"},
		)

		resolutionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_storage_resolutions_total",
				Help: "Total number of connection parameter resolutions",
			},
			[]string{"backend"},
		)

		metricsRegistered = true
	})
}

// RecordDecode counts a decode attempt for the given storage type.
func RecordDecode(storageType, outcome string) {
	if !metricsRegistered {
		return
	}
	decodesTotal.WithLabelValues(storageType, outcome).Inc()
}

// RecordResolution counts a resolution for the given backend.
func RecordResolution(backend string) {
	if !metricsRegistered {
		return
	}
	resolutionsTotal.WithLabelValues(backend).Inc()
}
