package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "munidocs_generations_total",
			Help: "Generation requests by document type and outcome",
		},
		[]string{"document_type", "outcome"},
	)

	TokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "munidocs_llm_tokens_total",
			Help: "LLM tokens consumed by document type and direction",
		},
		[]string{"document_type", "direction"},
	)

	CostUSDTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "munidocs_llm_cost_usd_total",
			Help: "Estimated LLM cost in USD by document type",
		},
		[]string{"document_type"},
	)

	LLMDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "munidocs_llm_call_duration_seconds",
			Help:    "Duration of LLM calls in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		},
		[]string{"document_type"},
	)

	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "munidocs_persistence_failures_total",
			Help: "Failed storage writes that degraded a response to saved=false",
		},
		[]string{"op"},
	)
)

// Generation outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeConfig     = "configuration_error"
	OutcomeUpstream   = "upstream_error"
	OutcomeTransport  = "transport_error"
	OutcomeUnknown    = "unknown_error"
)
