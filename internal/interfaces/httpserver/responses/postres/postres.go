// Package postres holds the response DTOs of the post endpoints.
package postres

import (
	"github.com/shopspring/decimal"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/generation"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
)

// PostResponse represents a persisted post on the wire.
type PostResponse struct {
	ID           string       `json:"id"`
	Object       string       `json:"object"`
	Content      string       `json:"content"`
	Format       string       `json:"format"`
	Title        *string      `json:"title,omitempty"`
	ImagePrompt  *string      `json:"image_prompt,omitempty"`
	ImagePrompts []string     `json:"image_prompts,omitempty"`
	Hashtags     []string     `json:"hashtags,omitempty"`
	Status       string       `json:"status"`
	Usage        UsageSummary `json:"usage"`
	CreatedAt    int64        `json:"created_at"`
}

// UsageSummary is the cost breakdown rendered with every post.
type UsageSummary struct {
	Provider          string          `json:"provider"`
	Model             string          `json:"model"`
	TotalInputTokens  int             `json:"total_input_tokens"`
	TotalOutputTokens int             `json:"total_output_tokens"`
	TotalTokens       int             `json:"total_tokens"`
	TotalCostUSD      decimal.Decimal `json:"total_cost_usd"`
	Segments          []UsageSegment  `json:"segments,omitempty"`
}

// UsageSegment is one purpose's share of the cost.
type UsageSegment struct {
	Purpose      string          `json:"purpose"`
	Provider     string          `json:"provider"`
	Model        string          `json:"model"`
	InputTokens  int             `json:"input_tokens"`
	OutputTokens int             `json:"output_tokens"`
	CostUSD      decimal.Decimal `json:"cost_usd"`
}

// GenerateResponse is the body returned by POST /v1/posts/generate.
type GenerateResponse struct {
	Post                PostResponse `json:"post"`
	ConversationID      string       `json:"conversation_id"`
	ConversationCreated bool         `json:"conversation_created"`
	ConversationTitle   *string      `json:"conversation_title,omitempty"`
}

// PostListResponse represents a paginated list of posts.
type PostListResponse struct {
	Object  string         `json:"object"`
	Data    []PostResponse `json:"data"`
	FirstID string         `json:"first_id"`
	LastID  string         `json:"last_id"`
	HasMore bool           `json:"has_more"`
	Total   int64          `json:"total"`
}

// NewPostResponse creates a response from a domain post.
func NewPostResponse(p *post.Post) *PostResponse {
	response := &PostResponse{
		ID:           p.PublicID,
		Object:       "post",
		Content:      p.Content,
		Format:       string(p.Format),
		Title:        p.Title,
		ImagePrompt:  p.ImagePrompt,
		ImagePrompts: p.ImagePrompts,
		Hashtags:     p.Hashtags,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt.Unix(),
		Usage: UsageSummary{
			Provider:          p.Provider,
			Model:             p.Model,
			TotalInputTokens:  p.TotalInputTokens,
			TotalOutputTokens: p.TotalOutputTokens,
			TotalTokens:       p.TotalInputTokens + p.TotalOutputTokens,
			TotalCostUSD:      p.TotalCost,
		},
	}
	for _, slice := range p.UsageBreakdown {
		response.Usage.Segments = append(response.Usage.Segments, UsageSegment{
			Purpose:      slice.Purpose,
			Provider:     slice.Provider,
			Model:        slice.Model,
			InputTokens:  slice.InputTokens,
			OutputTokens: slice.OutputTokens,
			CostUSD:      slice.CostUSD,
		})
	}
	return response
}

// NewGenerateResponse creates the generate endpoint body from a pipeline result.
func NewGenerateResponse(result *generation.Result) *GenerateResponse {
	return &GenerateResponse{
		Post:                *NewPostResponse(result.Post),
		ConversationID:      result.Conversation.PublicID,
		ConversationCreated: result.ConversationCreated,
		ConversationTitle:   result.Conversation.Title,
	}
}

// NewPostListResponse creates a post list response.
func NewPostListResponse(posts []*post.Post, hasMore bool, total int64) *PostListResponse {
	data := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		if p == nil {
			continue
		}
		data = append(data, *NewPostResponse(p))
	}

	firstID := ""
	lastID := ""
	if len(data) > 0 {
		firstID = data[0].ID
		lastID = data[len(data)-1].ID
	}

	return &PostListResponse{
		Object:  "list",
		Data:    data,
		FirstID: firstID,
		LastID:  lastID,
		HasMore: hasMore,
		Total:   total,
	}
}
