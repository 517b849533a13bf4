package tokenusagerepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/tokenusage"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/transaction"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// TokenUsageGormRepository implements tokenusage.Repository using GORM
type TokenUsageGormRepository struct {
	db *transaction.Database
}

var _ tokenusage.Repository = (*TokenUsageGormRepository)(nil)

// NewTokenUsageGormRepository creates a new GORM-based token usage repository
func NewTokenUsageGormRepository(db *transaction.Database) tokenusage.Repository {
	return &TokenUsageGormRepository{db: db}
}

// Create stores a new token usage record
func (r *TokenUsageGormRepository) Create(ctx context.Context, usage *tokenusage.TokenUsage) error {
	tx := r.db.GetTx(ctx)
	if err := tx.Create(usage).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to create token usage", err, "5d3e1f4a-6a7b-4c8d-0e1f-2a3b4c5d6e7f")
	}
	return nil
}

// CreateBatch stores all of one request's usage records together. Joins the
// ambient transaction when the context carries one.
func (r *TokenUsageGormRepository) CreateBatch(ctx context.Context, usages []*tokenusage.TokenUsage) error {
	if len(usages) == 0 {
		return nil
	}
	tx := r.db.GetTx(ctx)
	if err := tx.Create(usages).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to create token usage batch", err, "6e4f2a5b-7b8c-4d9e-1f2a-3b4c5d6e7f8a")
	}
	return nil
}

// GetByID retrieves a token usage record by ID
func (r *TokenUsageGormRepository) GetByID(ctx context.Context, id int64) (*tokenusage.TokenUsage, error) {
	var usage tokenusage.TokenUsage
	tx := r.db.GetTx(ctx)
	if err := tx.First(&usage, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "token usage not found", err, "7f5a3b6c-8c9d-4e0f-2a3b-4c5d6e7f8a9b")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find token usage", err, "8a6b4c7d-9d0e-4f1a-3b4c-5d6e7f8a9b0c")
	}
	return &usage, nil
}

// GetUserUsage retrieves usage grouped by purpose/provider/model for a user
// within a date range
func (r *TokenUsageGormRepository) GetUserUsage(ctx context.Context, userID string, startDate, endDate time.Time) ([]tokenusage.UsageSummary, error) {
	var summaries []tokenusage.UsageSummary

	err := r.db.GetTx(ctx).
		Model(&tokenusage.TokenUsage{}).
		Select(`
			purpose,
			model,
			provider,
			SUM(input_tokens) as total_input_tokens,
			SUM(output_tokens) as total_output_tokens,
			SUM(total_tokens) as total_tokens,
			SUM(estimated_cost_usd) as estimated_cost_usd,
			COUNT(*) as request_count
		`).
		Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, startDate, endDate).
		Group("purpose, model, provider").
		Scan(&summaries).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to aggregate user usage", err, "9b7c5d8e-0e1f-4a2b-4c5d-6e7f8a9b0c1d")
	}

	return summaries, nil
}

// GetDailyAggregates retrieves daily aggregated usage based on filters
func (r *TokenUsageGormRepository) GetDailyAggregates(ctx context.Context, filter tokenusage.UsageFilter) ([]tokenusage.DailyAggregate, error) {
	var aggregates []tokenusage.DailyAggregate

	tx := r.db.GetTx(ctx).Model(&tokenusage.TokenUsageDaily{})

	if filter.UserID != "" {
		tx = tx.Where("user_id = ?", filter.UserID)
	}
	if filter.Purpose != "" {
		tx = tx.Where("purpose = ?", filter.Purpose)
	}
	if filter.Model != "" {
		tx = tx.Where("model = ?", filter.Model)
	}
	if filter.Provider != "" {
		tx = tx.Where("provider = ?", filter.Provider)
	}
	if !filter.StartDate.IsZero() {
		tx = tx.Where("date >= ?", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		tx = tx.Where("date <= ?", filter.EndDate)
	}

	err := tx.
		Select(`
			date,
			SUM(total_input_tokens) as total_input_tokens,
			SUM(total_output_tokens) as total_output_tokens,
			SUM(total_tokens) as total_tokens,
			SUM(estimated_cost_usd) as estimated_cost_usd,
			SUM(request_count) as request_count
		`).
		Group("date").
		Order("date DESC").
		Scan(&aggregates).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to aggregate daily usage", err, "0c8d6e9f-1f2a-4b3c-5d6e-7f8a9b0c1d2e")
	}

	return aggregates, nil
}

// GetTotalUsage retrieves total usage within a date range
func (r *TokenUsageGormRepository) GetTotalUsage(ctx context.Context, startDate, endDate time.Time) (*tokenusage.UsageSummary, error) {
	var summary tokenusage.UsageSummary

	err := r.db.GetTx(ctx).
		Model(&tokenusage.TokenUsage{}).
		Select(`
			SUM(input_tokens) as total_input_tokens,
			SUM(output_tokens) as total_output_tokens,
			SUM(total_tokens) as total_tokens,
			SUM(estimated_cost_usd) as estimated_cost_usd,
			COUNT(*) as request_count
		`).
		Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Scan(&summary).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to aggregate total usage", err, "1d9e7f0a-2a3b-4c4d-6e7f-8a9b0c1d2e3f")
	}

	return &summary, nil
}

// SummarizeDay groups one calendar day's raw rows for the rollup job
func (r *TokenUsageGormRepository) SummarizeDay(ctx context.Context, day time.Time) ([]tokenusage.TokenUsageDaily, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var rows []tokenusage.TokenUsageDaily
	err := r.db.GetTx(ctx).
		Model(&tokenusage.TokenUsage{}).
		Select(`
			? as date,
			user_id,
			purpose,
			model,
			provider,
			SUM(input_tokens) as total_input_tokens,
			SUM(output_tokens) as total_output_tokens,
			SUM(total_tokens) as total_tokens,
			SUM(estimated_cost_usd) as estimated_cost_usd,
			COUNT(*) as request_count
		`, start).
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("user_id, purpose, model, provider").
		Scan(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to summarize day", err, "2e0f8a1b-3b4c-4d5e-7f8a-9b0c1d2e3f4a")
	}

	return rows, nil
}

// UpsertDaily writes rollup rows, replacing any prior rollup for the same
// day/user/purpose/provider/model
func (r *TokenUsageGormRepository) UpsertDaily(ctx context.Context, rows []*tokenusage.TokenUsageDaily) error {
	if len(rows) == 0 {
		return nil
	}

	tx := r.db.GetTx(ctx)
	for _, row := range rows {
		result := tx.Model(&tokenusage.TokenUsageDaily{}).
			Where("date = ? AND user_id = ? AND purpose = ? AND model = ? AND provider = ?",
				row.Date, row.UserID, row.Purpose, row.Model, row.Provider).
			Updates(map[string]interface{}{
				"total_input_tokens":  row.TotalInputTokens,
				"total_output_tokens": row.TotalOutputTokens,
				"total_tokens":        row.TotalTokens,
				"request_count":       row.RequestCount,
				"estimated_cost_usd":  row.EstimatedCostUSD,
			})
		if result.Error != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to upsert daily usage", result.Error, "3f1a9b2c-4c5d-4e6f-8a9b-0c1d2e3f4a5b")
		}
		if result.RowsAffected == 0 {
			if err := tx.Create(row).Error; err != nil {
				return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to insert daily usage", err, "4a2b0c3d-5d6e-4f7a-9b0c-1d2e3f4a5b6c")
			}
		}
	}
	return nil
}
