package conversationresponses

import (
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/conversation"
)

// ConversationResponse represents a conversation on the wire.
type ConversationResponse struct {
	ID        string         `json:"id"`
	Object    string         `json:"object"`
	Title     *string        `json:"title,omitempty"`
	Status    string         `json:"status"`
	Items     []ItemResponse `json:"items,omitempty"`
	CreatedAt int64          `json:"created_at"`
	UpdatedAt int64          `json:"updated_at"`
}

// ItemResponse represents one conversation turn on the wire.
type ItemResponse struct {
	ID        string  `json:"id"`
	Object    string  `json:"object"`
	Role      string  `json:"role"`
	Content   string  `json:"content"`
	PostID    *string `json:"post_id,omitempty"`
	CreatedAt int64   `json:"created_at"`
}

// ConversationListResponse represents a paginated list of conversations
type ConversationListResponse struct {
	Object  string                 `json:"object"`
	Data    []ConversationResponse `json:"data"`
	FirstID string                 `json:"first_id"`
	LastID  string                 `json:"last_id"`
	HasMore bool                   `json:"has_more"`
	Total   int64                  `json:"total"`
}

// ConversationDeletedResponse represents the delete confirmation response
type ConversationDeletedResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// NewConversationResponse creates a response from a domain conversation
func NewConversationResponse(conv *conversation.Conversation) *ConversationResponse {
	return &ConversationResponse{
		ID:        conv.PublicID,
		Object:    "conversation",
		Title:     conv.Title,
		Status:    string(conv.Status),
		CreatedAt: conv.CreatedAt.Unix(),
		UpdatedAt: conv.UpdatedAt.Unix(),
	}
}

// NewConversationWithItemsResponse creates a response carrying the turns.
func NewConversationWithItemsResponse(conv *conversation.Conversation, items []conversation.Item) *ConversationResponse {
	response := NewConversationResponse(conv)
	response.Items = make([]ItemResponse, 0, len(items))
	for _, item := range items {
		response.Items = append(response.Items, NewItemResponse(item))
	}
	return response
}

// NewItemResponse creates a response from a domain conversation item
func NewItemResponse(item conversation.Item) ItemResponse {
	return ItemResponse{
		ID:        item.PublicID,
		Object:    "conversation.item",
		Role:      string(item.Role),
		Content:   item.Content,
		PostID:    item.PostPublicID,
		CreatedAt: item.CreatedAt.Unix(),
	}
}

// NewConversationListResponse creates a conversation list response
func NewConversationListResponse(conversations []*conversation.Conversation, hasMore bool, total int64) *ConversationListResponse {
	data := make([]ConversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		if conv == nil {
			continue
		}
		data = append(data, *NewConversationResponse(conv))
	}

	firstID := ""
	lastID := ""
	if len(data) > 0 {
		firstID = data[0].ID
		lastID = data[len(data)-1].ID
	}

	return &ConversationListResponse{
		Object:  "list",
		Data:    data,
		FirstID: firstID,
		LastID:  lastID,
		HasMore: hasMore,
		Total:   total,
	}
}

// NewConversationDeletedResponse creates a delete response
func NewConversationDeletedResponse(publicID string) *ConversationDeletedResponse {
	return &ConversationDeletedResponse{
		ID:      publicID,
		Object:  "conversation.deleted",
		Deleted: true,
	}
}
