// Package metrics exposes prometheus collectors for the report generator.
// Collectors are package-level vars registered once via Register.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var once sync.Once

var (
	// GenerationsTotal counts report generations by variant and result.
	GenerationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reportgen",
		Subsystem: "engine",
		Name:      "generations_total",
		Help:      "Total number of report generation requests, labeled by variant and result.",
	}, []string{"variant", "result"})

	// GenerationDurationSeconds is end-to-end generation time per variant.
	GenerationDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "reportgen",
		Subsystem: "engine",
		Name:      "generation_duration_seconds",
		Help:      "End-to-end time to generate one report document.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60},
	}, []string{"variant"})

	// PagesRendered counts pages written to the output document.
	PagesRendered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "reportgen",
		Subsystem: "engine",
		Name:      "pages_rendered_total",
		Help:      "Total number of document pages rendered.",
	})

	// AssetFetchTotal counts photo fetches by outcome.
	AssetFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reportgen",
		Subsystem: "assets",
		Name:      "fetch_total",
		Help:      "Total number of photo asset fetches, labeled by result.",
	}, []string{"result"})

	// AssetFetchDurationSeconds is per-photo fetch+normalize time.
	AssetFetchDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "reportgen",
		Subsystem: "assets",
		Name:      "fetch_duration_seconds",
		Help:      "Time to fetch and normalize one photo asset.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
	})

	// PlaceholderSubstitutions counts photos replaced by the placeholder.
	PlaceholderSubstitutions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "reportgen",
		Subsystem: "assets",
		Name:      "placeholder_substitutions_total",
		Help:      "Total number of unresolvable photos replaced with the placeholder image.",
	})
)

// Register registers all collectors with the default registry. Safe to call
// more than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			GenerationsTotal,
			GenerationDurationSeconds,
			PagesRendered,
			AssetFetchTotal,
			AssetFetchDurationSeconds,
			PlaceholderSubstitutions,
		)
	})
}
