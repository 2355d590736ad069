package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyage_recommendation_requests_total",
			Help: "Total number of recommendation pipeline runs",
		},
		[]string{"outcome"},
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "voyage_pipeline_duration_seconds",
			Help: "End-to-end duration of the recommendation pipeline",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyage_cache_lookups_total",
			Help: "Search cache lookups partitioned by result",
		},
		[]string{"result"},
	)
)

// Outcome label values for RecommendationRequests.
const (
	OutcomeOK         = "ok"
	OutcomeRejected   = "rejected"
	OutcomeExtraction = "extraction_error"
	OutcomeFetch      = "fetch_error"
	OutcomeNoResults  = "no_results"
)
