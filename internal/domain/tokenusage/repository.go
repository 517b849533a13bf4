package tokenusage

import (
	"context"
	"time"
)

// Repository defines the interface for token usage data access
type Repository interface {
	// Create stores a new token usage record
	Create(ctx context.Context, usage *TokenUsage) error

	// CreateBatch stores all of one request's usage records together. When the
	// context carries a transaction the rows join it.
	CreateBatch(ctx context.Context, usages []*TokenUsage) error

	// GetByID retrieves a token usage record by ID
	GetByID(ctx context.Context, id int64) (*TokenUsage, error)

	// GetUserUsage retrieves usage grouped by purpose/provider/model for a user
	// within a date range
	GetUserUsage(ctx context.Context, userID string, startDate, endDate time.Time) ([]UsageSummary, error)

	// GetDailyAggregates retrieves daily aggregated usage based on filters
	GetDailyAggregates(ctx context.Context, filter UsageFilter) ([]DailyAggregate, error)

	// GetTotalUsage retrieves total usage within a date range
	GetTotalUsage(ctx context.Context, startDate, endDate time.Time) (*UsageSummary, error)

	// SummarizeDay groups one calendar day's raw rows for the rollup job
	SummarizeDay(ctx context.Context, day time.Time) ([]TokenUsageDaily, error)

	// UpsertDaily writes rollup rows, replacing any prior rollup for the same
	// day/user/purpose/provider/model
	UpsertDaily(ctx context.Context, rows []*TokenUsageDaily) error
}
