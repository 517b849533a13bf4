package dbschema

import (
	"encoding/json"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Post{})
}

// Post is the database schema for generated posts.
type Post struct {
	BaseModel
	PublicID       string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID         string  `gorm:"type:varchar(64);index:idx_posts_user_created;not null"`
	ConversationID *uint   `gorm:"index"`
	Content        string  `gorm:"type:text;not null"`
	Format         string  `gorm:"type:varchar(20);not null"`
	Title          *string `gorm:"type:varchar(256)"`
	ImagePrompt    *string `gorm:"type:text"`

	ImagePrompts pq.StringArray `gorm:"type:text[]"`
	Hashtags     pq.StringArray `gorm:"type:text[]"`

	Status string `gorm:"type:varchar(20);not null;default:'draft'"`

	Provider          string          `gorm:"type:varchar(50);not null"`
	Model             string          `gorm:"type:varchar(100);not null"`
	TotalInputTokens  int             `gorm:"not null;default:0"`
	TotalOutputTokens int             `gorm:"not null;default:0"`
	TotalCost         decimal.Decimal `gorm:"type:decimal(10,6);not null;default:0"`
	UsageBreakdown    datatypes.JSON  `gorm:"type:jsonb"`
}

// TableName specifies the table name for Post.
func (Post) TableName() string {
	return "content_api.posts"
}

// NewSchemaPost creates a database schema from a domain post.
func NewSchemaPost(p *post.Post) (*Post, error) {
	var breakdown datatypes.JSON
	if len(p.UsageBreakdown) > 0 {
		data, err := json.Marshal(p.UsageBreakdown)
		if err != nil {
			return nil, err
		}
		breakdown = datatypes.JSON(data)
	}

	return &Post{
		BaseModel: BaseModel{
			ID:        p.ID,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
		PublicID:          p.PublicID,
		UserID:            p.UserID,
		ConversationID:    p.ConversationID,
		Content:           p.Content,
		Format:            string(p.Format),
		Title:             p.Title,
		ImagePrompt:       p.ImagePrompt,
		ImagePrompts:      pq.StringArray(p.ImagePrompts),
		Hashtags:          pq.StringArray(p.Hashtags),
		Status:            string(p.Status),
		Provider:          p.Provider,
		Model:             p.Model,
		TotalInputTokens:  p.TotalInputTokens,
		TotalOutputTokens: p.TotalOutputTokens,
		TotalCost:         p.TotalCost,
		UsageBreakdown:    breakdown,
	}, nil
}

// EtoD converts database schema to domain post (Entity to Domain).
func (p *Post) EtoD() (*post.Post, error) {
	var breakdown []post.UsageSlice
	if len(p.UsageBreakdown) > 0 {
		if err := json.Unmarshal(p.UsageBreakdown, &breakdown); err != nil {
			return nil, err
		}
	}

	return &post.Post{
		ID:                p.ID,
		PublicID:          p.PublicID,
		UserID:            p.UserID,
		ConversationID:    p.ConversationID,
		Content:           p.Content,
		Format:            post.Format(p.Format),
		Title:             p.Title,
		ImagePrompt:       p.ImagePrompt,
		ImagePrompts:      []string(p.ImagePrompts),
		Hashtags:          []string(p.Hashtags),
		Status:            post.Status(p.Status),
		Provider:          p.Provider,
		Model:             p.Model,
		TotalInputTokens:  p.TotalInputTokens,
		TotalOutputTokens: p.TotalOutputTokens,
		TotalCost:         p.TotalCost,
		UsageBreakdown:    breakdown,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}, nil
}
