package post

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/query"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/idgen"
)

// ===============================================
// Post Types
// ===============================================

// Format is the output shape of a generated post.
type Format string

const (
	FormatText        Format = "text"
	FormatImage       Format = "image"
	FormatCarousel    Format = "carousel"
	FormatVideoScript Format = "video_script"
	// FormatAuto lets the model pick; it is resolved to a concrete format
	// before reconciliation and never stored.
	FormatAuto Format = "auto"
)

// ParseFormat normalizes a user or provider supplied format string.
// Unknown values resolve to FormatAuto rather than failing the request.
func ParseFormat(raw string) Format {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "text", "text_only", "plain":
		return FormatText
	case "image", "single_image":
		return FormatImage
	case "carousel", "slides", "slideshow":
		return FormatCarousel
	case "video_script", "video", "script":
		return FormatVideoScript
	default:
		return FormatAuto
	}
}

// Concrete reports whether the format names a storable variant.
func (f Format) Concrete() bool {
	switch f {
	case FormatText, FormatImage, FormatCarousel, FormatVideoScript:
		return true
	}
	return false
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"
)

// Carousel slide-count bounds enforced during reconciliation.
const (
	CarouselMinSlides = 4
	CarouselMaxSlides = 15
)

// ===============================================
// Post Structure
// ===============================================

// Post is the persisted, billable result of one generation request together
// with its provenance (which provider/model produced it and what it cost).
type Post struct {
	ID             uint      `json:"-"`
	PublicID       string    `json:"id"`
	UserID         string    `json:"-"`
	ConversationID *uint     `json:"-"`
	Content        string    `json:"content"`
	Format         Format    `json:"format"`
	Title          *string   `json:"title,omitempty"`
	ImagePrompt    *string   `json:"image_prompt,omitempty"`
	ImagePrompts   []string  `json:"image_prompts,omitempty"`
	Hashtags       []string  `json:"hashtags,omitempty"`
	Status         Status    `json:"status"`

	// Provenance of the main generation call plus request-level totals.
	Provider          string          `json:"provider"`
	Model             string          `json:"model"`
	TotalInputTokens  int             `json:"total_input_tokens"`
	TotalOutputTokens int             `json:"total_output_tokens"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	UsageBreakdown    []UsageSlice    `json:"usage_breakdown,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UsageSlice is one purpose's share of the generation cost, denormalized onto
// the post row so provenance reads need no join against the usage table.
type UsageSlice struct {
	Purpose      string          `json:"purpose"`
	Provider     string          `json:"provider"`
	Model        string          `json:"model"`
	InputTokens  int             `json:"input_tokens"`
	OutputTokens int             `json:"output_tokens"`
	CostUSD      decimal.Decimal `json:"cost_usd"`
}

// NewPost creates a draft post with a fresh public ID.
func NewPost(userID string) (*Post, error) {
	publicID, err := idgen.GenerateSecureID("post", 16)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Post{
		PublicID:  publicID,
		UserID:    userID,
		Status:    StatusDraft,
		TotalCost: decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ===============================================
// Post Repository
// ===============================================

type Filter struct {
	ID             *uint
	PublicID       *string
	UserID         *string
	ConversationID *uint
	Status         *Status
}

type Repository interface {
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
	FindByFilter(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*Post, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	FindByPublicID(ctx context.Context, publicID string) (*Post, error)
	// RecentTitles returns titles of the user's posts created since the cutoff,
	// newest first. Feeds the avoid-duplicate-topic prompt block.
	RecentTitles(ctx context.Context, userID string, since time.Time) ([]string, error)
	Delete(ctx context.Context, id uint) error
}
