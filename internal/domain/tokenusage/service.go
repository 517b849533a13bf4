package tokenusage

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
)

// Service provides token usage business logic
type Service struct {
	repo    Repository
	pricing *PricingTable
}

// NewService creates a new token usage service
func NewService(repo Repository, pricing *PricingTable) *Service {
	return &Service{repo: repo, pricing: pricing}
}

// RecordUsage records a single token usage event, pricing it when the caller
// did not.
func (s *Service) RecordUsage(ctx context.Context, usage *TokenUsage) error {
	if usage.EstimatedCostUSD.IsZero() {
		usage.EstimatedCostUSD = s.pricing.PriceOf(usage.Provider, usage.Model, usage.InputTokens, usage.OutputTokens)
	}
	usage.TotalTokens = usage.InputTokens + usage.OutputTokens

	return s.repo.Create(ctx, usage)
}

// RecordRequestUsage persists every call usage collected during one request in
// a single batch. Records join the ambient transaction when one is present so
// accounting commits atomically with the post and conversation turn.
func (s *Service) RecordRequestUsage(ctx context.Context, userID string, postID *uint, conversationID *uint, requestID string, records []llm.Usage) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]*TokenUsage, 0, len(records))
	for _, record := range records {
		row := FromCallUsage(userID, record)
		row.PostID = postID
		row.ConversationID = conversationID
		if requestID != "" {
			rid := requestID
			row.RequestID = &rid
		}
		row.EstimatedCostUSD = s.pricing.PriceOf(record.Provider, record.Model, record.InputTokens, record.OutputTokens)
		rows = append(rows, row)
	}

	return s.repo.CreateBatch(ctx, rows)
}

// GetMyUsage retrieves usage summary for a user within a date range
func (s *Service) GetMyUsage(ctx context.Context, userID string, startDate, endDate time.Time) (*UsageResponse, error) {
	summaries, err := s.repo.GetUserUsage(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return s.buildUsageResponse(summaries, startDate, endDate), nil
}

// GetMyDailyUsage retrieves daily aggregated usage for a user
func (s *Service) GetMyDailyUsage(ctx context.Context, userID string, startDate, endDate time.Time) ([]DailyAggregate, error) {
	filter := UsageFilter{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	return s.repo.GetDailyAggregates(ctx, filter)
}

// RollupDay aggregates one calendar day of raw usage into the daily table.
// Runs from the nightly cron; re-running a day replaces its rollup rows.
func (s *Service) RollupDay(ctx context.Context, day time.Time) error {
	rows, err := s.repo.SummarizeDay(ctx, day)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	upserts := make([]*TokenUsageDaily, 0, len(rows))
	for i := range rows {
		upserts = append(upserts, &rows[i])
	}
	if err := s.repo.UpsertDaily(ctx, upserts); err != nil {
		return err
	}

	log.Info().
		Time("day", day).
		Int("groups", len(rows)).
		Msg("token usage rollup complete")
	return nil
}

// buildUsageResponse constructs a usage response from grouped summaries
func (s *Service) buildUsageResponse(summaries []UsageSummary, startDate, endDate time.Time) *UsageResponse {
	response := &UsageResponse{
		Period: Period{
			StartDate: startDate,
			EndDate:   endDate,
		},
		ByPurpose:  make([]UsageSummary, 0),
		ByModel:    make([]UsageSummary, 0),
		ByProvider: make([]UsageSummary, 0),
	}

	totalInput := int64(0)
	totalOutput := int64(0)
	totalTokens := int64(0)
	totalCost := decimal.Zero
	totalRequests := int64(0)

	purposeMap := make(map[string]*UsageSummary)
	modelMap := make(map[string]*UsageSummary)
	providerMap := make(map[string]*UsageSummary)

	for _, summary := range summaries {
		totalInput += summary.TotalInputTokens
		totalOutput += summary.TotalOutputTokens
		totalTokens += summary.TotalTokens
		totalCost = totalCost.Add(summary.EstimatedCostUSD)
		totalRequests += summary.RequestCount

		accumulate(purposeMap, summary.Purpose, summary, func(u *UsageSummary) {
			u.Model = ""
			u.Provider = ""
		})
		accumulate(modelMap, summary.Model, summary, func(u *UsageSummary) {
			u.Purpose = ""
			u.Provider = ""
		})
		accumulate(providerMap, summary.Provider, summary, func(u *UsageSummary) {
			u.Purpose = ""
			u.Model = ""
		})
	}

	response.TotalUsage = UsageSummary{
		TotalInputTokens:  totalInput,
		TotalOutputTokens: totalOutput,
		TotalTokens:       totalTokens,
		EstimatedCostUSD:  totalCost,
		RequestCount:      totalRequests,
	}

	for _, v := range purposeMap {
		response.ByPurpose = append(response.ByPurpose, *v)
	}
	for _, v := range modelMap {
		response.ByModel = append(response.ByModel, *v)
	}
	for _, v := range providerMap {
		response.ByProvider = append(response.ByProvider, *v)
	}

	return response
}

func accumulate(dst map[string]*UsageSummary, key string, summary UsageSummary, clear func(*UsageSummary)) {
	if key == "" {
		return
	}
	if existing, ok := dst[key]; ok {
		existing.TotalInputTokens += summary.TotalInputTokens
		existing.TotalOutputTokens += summary.TotalOutputTokens
		existing.TotalTokens += summary.TotalTokens
		existing.EstimatedCostUSD = existing.EstimatedCostUSD.Add(summary.EstimatedCostUSD)
		existing.RequestCount += summary.RequestCount
		return
	}
	copied := summary
	clear(&copied)
	dst[key] = &copied
}

// UsageResponse represents the API response for usage queries
type UsageResponse struct {
	Period     Period         `json:"period"`
	TotalUsage UsageSummary   `json:"total_usage"`
	ByPurpose  []UsageSummary `json:"by_purpose"`
	ByModel    []UsageSummary `json:"by_model"`
	ByProvider []UsageSummary `json:"by_provider"`
}

// Period represents a date range for usage queries
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}
