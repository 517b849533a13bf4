package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP surface
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentsaas",
			Subsystem: "content_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contentsaas",
			Subsystem: "content_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Generation pipeline
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentsaas",
			Subsystem: "content_api",
			Name:      "generations_total",
			Help:      "Completed generation requests by format and outcome",
		},
		[]string{"format", "outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contentsaas",
			Subsystem: "content_api",
			Name:      "generation_duration_seconds",
			Help:      "End-to-end generation pipeline duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"format"},
	)

	// Provider calls
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentsaas",
			Subsystem: "content_api",
			Name:      "provider_calls_total",
			Help:      "Provider calls by purpose and outcome",
		},
		[]string{"provider", "model", "purpose", "outcome"},
	)

	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contentsaas",
			Subsystem: "content_api",
			Name:      "provider_call_duration_seconds",
			Help:      "Provider call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"provider", "purpose"},
	)

	// Token accounting
	TokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentsaas",
			Subsystem: "content_api",
			Name:      "tokens_total",
			Help:      "Tokens consumed by purpose, provider and direction",
		},
		[]string{"purpose", "provider", "direction"},
	)

	CostUSDTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentsaas",
			Subsystem: "content_api",
			Name:      "cost_usd_total",
			Help:      "Estimated provider cost in USD by purpose and provider",
		},
		[]string{"purpose", "provider"},
	)

	// Reconciliation
	ReconcileStagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentsaas",
			Subsystem: "content_api",
			Name:      "reconcile_stages_total",
			Help:      "Which parsing stage finalized post_content",
		},
		[]string{"stage"},
	)

	LeakGuardHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "contentsaas",
			Subsystem: "content_api",
			Name:      "leak_guard_hits_total",
			Help:      "Responses where the leak guard had to strip or replace content",
		},
	)

	// Credits
	CreditRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "contentsaas",
			Subsystem: "content_api",
			Name:      "credit_rejections_total",
			Help:      "Generation requests rejected for insufficient credits",
		},
	)

	// Conversations
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "contentsaas",
			Subsystem: "content_api",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)
)

// RecordRequest records one HTTP request.
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordGeneration records one completed pipeline run.
func RecordGeneration(format, outcome string, durationSec float64) {
	GenerationsTotal.WithLabelValues(format, outcome).Inc()
	GenerationDuration.WithLabelValues(format).Observe(durationSec)
}

// RecordProviderCall records one provider invocation.
func RecordProviderCall(provider, model, purpose, outcome string, durationSec float64) {
	ProviderCallsTotal.WithLabelValues(provider, model, purpose, outcome).Inc()
	ProviderCallDuration.WithLabelValues(provider, purpose).Observe(durationSec)
}

// RecordTokens records the token counts of one provider call.
func RecordTokens(purpose, provider string, inputTokens, outputTokens int) {
	TokensTotal.WithLabelValues(purpose, provider, "input").Add(float64(inputTokens))
	TokensTotal.WithLabelValues(purpose, provider, "output").Add(float64(outputTokens))
}

// RecordCost records the priced cost of one usage segment.
func RecordCost(purpose, provider string, costUSD float64) {
	if costUSD <= 0 {
		return
	}
	CostUSDTotal.WithLabelValues(purpose, provider).Add(costUSD)
}

// RecordReconcile records which fallback stage produced the artifact and
// whether the leak guard fired.
func RecordReconcile(stage string, leakGuardHit bool) {
	if stage == "" {
		stage = "unknown"
	}
	ReconcileStagesTotal.WithLabelValues(stage).Inc()
	if leakGuardHit {
		LeakGuardHitsTotal.Inc()
	}
}

// RecordCreditRejection records one insufficient-credits rejection.
func RecordCreditRejection() {
	CreditRejectionsTotal.Inc()
}

// RecordConversationCreated records one newly created conversation.
func RecordConversationCreated() {
	ConversationsCreatedTotal.Inc()
}
