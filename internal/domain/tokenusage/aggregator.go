package tokenusage

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
)

// PurposeSegment is the cost/token slice of one purpose within a request.
// Segments keep their own provider/model because purposes may be routed to
// different providers within the same request.
type PurposeSegment struct {
	Purpose      llm.Purpose     `json:"purpose"`
	Provider     string          `json:"provider"`
	Model        string          `json:"model"`
	InputTokens  int             `json:"input_tokens"`
	OutputTokens int             `json:"output_tokens"`
	Cost         decimal.Decimal `json:"cost_usd"`
}

// TotalTokens returns the derived token total for this segment.
func (s PurposeSegment) TotalTokens() int {
	return s.InputTokens + s.OutputTokens
}

// CostSummary is the reconciled accounting for one request: every call's cost
// computed from its own provider/model rate, summed into request totals.
type CostSummary struct {
	Segments          []PurposeSegment `json:"segments"`
	TotalInputTokens  int              `json:"total_input_tokens"`
	TotalOutputTokens int              `json:"total_output_tokens"`
	TotalCost         decimal.Decimal  `json:"total_cost_usd"`
}

// TotalTokens returns the derived grand token total.
func (s CostSummary) TotalTokens() int {
	return s.TotalInputTokens + s.TotalOutputTokens
}

// Segment returns the first segment recorded for a purpose.
func (s CostSummary) Segment(purpose llm.Purpose) (PurposeSegment, bool) {
	for _, seg := range s.Segments {
		if seg.Purpose == purpose {
			return seg, true
		}
	}
	return PurposeSegment{}, false
}

// segmentOrder fixes the display order of purposes so aggregation output is
// stable across runs.
var segmentOrder = map[llm.Purpose]int{
	llm.PurposePostGeneration:    0,
	llm.PurposeConversationTitle: 1,
	llm.PurposeImagePrompt:       2,
	llm.PurposeCarouselPrompts:   3,
}

// Aggregator converts the usage records collected during one request into a
// CostSummary. It is pure: no I/O, and identical input yields identical output.
type Aggregator struct {
	pricing *PricingTable
}

// NewAggregator creates an aggregator over the given pricing table.
func NewAggregator(pricing *PricingTable) *Aggregator {
	return &Aggregator{pricing: pricing}
}

// Aggregate computes each record's cost independently from that record's own
// provider/model, merges records sharing purpose+provider+model, and sums the
// totals.
func (a *Aggregator) Aggregate(records []llm.Usage) CostSummary {
	summary := CostSummary{
		Segments:  make([]PurposeSegment, 0, len(records)),
		TotalCost: decimal.Zero,
	}

	type segmentKey struct {
		purpose  llm.Purpose
		provider string
		model    string
	}
	index := make(map[segmentKey]int)

	for _, record := range records {
		cost := a.pricing.PriceOf(record.Provider, record.Model, record.InputTokens, record.OutputTokens)

		key := segmentKey{purpose: record.Purpose, provider: record.Provider, model: record.Model}
		if i, ok := index[key]; ok {
			seg := &summary.Segments[i]
			seg.InputTokens += record.InputTokens
			seg.OutputTokens += record.OutputTokens
			seg.Cost = seg.Cost.Add(cost)
		} else {
			index[key] = len(summary.Segments)
			summary.Segments = append(summary.Segments, PurposeSegment{
				Purpose:      record.Purpose,
				Provider:     record.Provider,
				Model:        record.Model,
				InputTokens:  record.InputTokens,
				OutputTokens: record.OutputTokens,
				Cost:         cost,
			})
		}

		summary.TotalInputTokens += record.InputTokens
		summary.TotalOutputTokens += record.OutputTokens
		summary.TotalCost = summary.TotalCost.Add(cost)
	}

	sort.SliceStable(summary.Segments, func(i, j int) bool {
		a, b := summary.Segments[i], summary.Segments[j]
		if segmentOrder[a.Purpose] != segmentOrder[b.Purpose] {
			return segmentOrder[a.Purpose] < segmentOrder[b.Purpose]
		}
		if a.Provider != b.Provider {
			return a.Provider < b.Provider
		}
		return a.Model < b.Model
	})

	return summary
}
