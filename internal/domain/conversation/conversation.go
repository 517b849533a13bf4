// Package conversation is the ledger tying generated posts to the exchanges
// that produced them. Every generation appends one user turn and one assistant
// turn; the assistant turn references the persisted post.
package conversation

import (
	"context"
	"time"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/query"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Conversation groups a user's generation exchanges. Title starts empty and is
// settled on the first commit; later commits may overwrite it when the
// generated artifact carries a non-empty title.
type Conversation struct {
	ID        uint      `json:"-"`
	PublicID  string    `json:"id"`
	UserID    string    `json:"-"`
	Title     *string   `json:"title,omitempty"`
	Status    Status    `json:"status"`
	Items     []Item    `json:"items,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item is one turn of a conversation. Assistant turns produced by a
// generation carry the persisted post's ID.
type Item struct {
	ID             uint      `json:"-"`
	PublicID       string    `json:"id"`
	ConversationID uint      `json:"-"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	PostID         *uint     `json:"-"`
	PostPublicID   *string   `json:"post_id,omitempty"`
	SequenceNumber int       `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// New builds an active conversation without a title; the ledger settles the
// title on the first commit.
func New(publicID, userID string) *Conversation {
	now := time.Now()
	return &Conversation{
		PublicID:  publicID,
		UserID:    userID,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasTitle reports whether a non-empty title has been settled.
func (c *Conversation) HasTitle() bool {
	return c.Title != nil && *c.Title != ""
}

func (c *Conversation) SetTitle(title string) {
	c.Title = &title
}

type Filter struct {
	ID       *uint
	PublicID *string
	UserID   *string
}

type Repository interface {
	Create(ctx context.Context, conversation *Conversation) error
	FindByFilter(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*Conversation, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	FindByPublicID(ctx context.Context, publicID string) (*Conversation, error)
	Update(ctx context.Context, conversation *Conversation) error
	Delete(ctx context.Context, id uint) error

	AddItems(ctx context.Context, conversationID uint, items []*Item) error
	ListItems(ctx context.Context, conversationID uint, pagination *query.Pagination) ([]*Item, error)
	CountItems(ctx context.Context, conversationID uint) (int, error)
}
