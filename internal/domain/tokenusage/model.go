package tokenusage

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
)

// TokenUsage represents a single provider call's token accounting, tagged with
// the purpose of the call so cost stays auditable per call type.
type TokenUsage struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	UserID           string          `gorm:"column:user_id;not null;index"`
	PostID           *uint           `gorm:"column:post_id;index"`
	ConversationID   *uint           `gorm:"column:conversation_id"`
	Purpose          string          `gorm:"column:purpose;not null;index"`
	Model            string          `gorm:"column:model;not null;index"`
	Provider         string          `gorm:"column:provider;not null;index"`
	InputTokens      int             `gorm:"column:input_tokens;not null;default:0"`
	OutputTokens     int             `gorm:"column:output_tokens;not null;default:0"`
	TotalTokens      int             `gorm:"column:total_tokens;not null;default:0"`
	EstimatedCostUSD decimal.Decimal `gorm:"column:estimated_cost_usd;type:decimal(10,6)"`
	RequestID        *string         `gorm:"column:request_id"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for TokenUsage
func (TokenUsage) TableName() string {
	return "content_api.token_usage"
}

// FromCallUsage builds a persistable record from one call's usage.
// TotalTokens is derived here; callers never set it.
func FromCallUsage(userID string, usage llm.Usage) *TokenUsage {
	return &TokenUsage{
		UserID:       userID,
		Purpose:      string(usage.Purpose),
		Model:        usage.Model,
		Provider:     usage.Provider,
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
		TotalTokens:  usage.TotalTokens(),
	}
}

// TokenUsageDaily represents aggregated daily token usage
type TokenUsageDaily struct {
	ID                int64           `gorm:"primaryKey;autoIncrement"`
	Date              time.Time       `gorm:"column:date;not null;index"`
	UserID            string          `gorm:"column:user_id;not null;index"`
	Purpose           string          `gorm:"column:purpose;not null"`
	Model             string          `gorm:"column:model;not null"`
	Provider          string          `gorm:"column:provider;not null"`
	TotalInputTokens  int64           `gorm:"column:total_input_tokens;not null;default:0"`
	TotalOutputTokens int64           `gorm:"column:total_output_tokens;not null;default:0"`
	TotalTokens       int64           `gorm:"column:total_tokens;not null;default:0"`
	RequestCount      int             `gorm:"column:request_count;not null;default:0"`
	EstimatedCostUSD  decimal.Decimal `gorm:"column:estimated_cost_usd;type:decimal(12,6)"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for TokenUsageDaily
func (TokenUsageDaily) TableName() string {
	return "content_api.token_usage_daily"
}

// UsageSummary represents aggregated usage statistics
type UsageSummary struct {
	Purpose           string          `json:"purpose,omitempty"`
	Model             string          `json:"model,omitempty"`
	Provider          string          `json:"provider,omitempty"`
	TotalInputTokens  int64           `json:"total_input_tokens"`
	TotalOutputTokens int64           `json:"total_output_tokens"`
	TotalTokens       int64           `json:"total_tokens"`
	RequestCount      int64           `json:"request_count"`
	EstimatedCostUSD  decimal.Decimal `json:"estimated_cost_usd"`
}

// DailyAggregate represents daily aggregated usage
type DailyAggregate struct {
	Date              time.Time       `json:"date"`
	TotalInputTokens  int64           `json:"total_input_tokens"`
	TotalOutputTokens int64           `json:"total_output_tokens"`
	TotalTokens       int64           `json:"total_tokens"`
	RequestCount      int64           `json:"request_count"`
	EstimatedCostUSD  decimal.Decimal `json:"estimated_cost_usd"`
}

// UsageFilter represents filter options for querying usage
type UsageFilter struct {
	UserID    string
	Purpose   string
	Model     string
	Provider  string
	StartDate time.Time
	EndDate   time.Time
}
