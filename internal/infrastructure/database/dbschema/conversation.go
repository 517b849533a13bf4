package dbschema

import (
	"time"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/conversation"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Conversation{})
	database.RegisterSchemaForAutoMigrate(ConversationItem{})
}

// Conversation represents the database schema for conversations
type Conversation struct {
	BaseModel
	PublicID string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID   string  `gorm:"type:varchar(64);index:idx_conversation_user_status;not null"`
	Title    *string `gorm:"type:varchar(256)"`
	Status   string  `gorm:"type:varchar(20);index:idx_conversation_user_status;not null;default:'active'"`

	Items []ConversationItem `gorm:"foreignKey:ConversationID"`
}

// TableName specifies the table name for Conversation.
func (Conversation) TableName() string {
	return "content_api.conversations"
}

// ConversationItem represents the database schema for conversation turns.
// Assistant turns link to the post the turn produced.
type ConversationItem struct {
	ID             uint      `gorm:"primaryKey"`
	ConversationID uint      `gorm:"index:idx_item_conversation_sequence;not null"`
	PublicID       string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Role           string    `gorm:"type:varchar(20);not null"`
	Content        string    `gorm:"type:text;not null"`
	PostID         *uint     `gorm:"index"`
	PostPublicID   *string   `gorm:"type:varchar(50)"`
	SequenceNumber int       `gorm:"index:idx_item_conversation_sequence;not null"`
	CreatedAt      time.Time `gorm:"not null;default:now()"`
}

// TableName specifies the table name for ConversationItem.
func (ConversationItem) TableName() string {
	return "content_api.conversation_items"
}

// NewSchemaConversation creates a database schema from domain conversation
func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	return &Conversation{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		PublicID: c.PublicID,
		UserID:   c.UserID,
		Title:    c.Title,
		Status:   string(c.Status),
	}
}

// EtoD converts database schema to domain conversation (Entity to Domain)
func (c *Conversation) EtoD() *conversation.Conversation {
	conv := &conversation.Conversation{
		ID:        c.ID,
		PublicID:  c.PublicID,
		UserID:    c.UserID,
		Title:     c.Title,
		Status:    conversation.Status(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	if len(c.Items) > 0 {
		conv.Items = make([]conversation.Item, 0, len(c.Items))
		for _, item := range c.Items {
			conv.Items = append(conv.Items, *item.EtoD())
		}
	}

	return conv
}

// NewSchemaConversationItem creates a database schema from domain item
func NewSchemaConversationItem(item *conversation.Item) *ConversationItem {
	return &ConversationItem{
		ID:             item.ID,
		ConversationID: item.ConversationID,
		PublicID:       item.PublicID,
		Role:           string(item.Role),
		Content:        item.Content,
		PostID:         item.PostID,
		PostPublicID:   item.PostPublicID,
		SequenceNumber: item.SequenceNumber,
		CreatedAt:      item.CreatedAt,
	}
}

// EtoD converts database schema to domain item (Entity to Domain)
func (i *ConversationItem) EtoD() *conversation.Item {
	return &conversation.Item{
		ID:             i.ID,
		PublicID:       i.PublicID,
		ConversationID: i.ConversationID,
		Role:           conversation.Role(i.Role),
		Content:        i.Content,
		PostID:         i.PostID,
		PostPublicID:   i.PostPublicID,
		SequenceNumber: i.SequenceNumber,
		CreatedAt:      i.CreatedAt,
	}
}
