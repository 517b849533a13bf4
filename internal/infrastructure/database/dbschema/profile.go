package dbschema

import (
	"github.com/lib/pq"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/profile"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Profile{})
}

// Profile is the database schema for the onboarding profile.
type Profile struct {
	BaseModel
	UserID string `gorm:"type:varchar(64);uniqueIndex;not null"`

	FullName string `gorm:"type:varchar(256)"`
	Headline string `gorm:"type:varchar(256)"`
	Industry string `gorm:"type:varchar(100)"`
	Company  string `gorm:"type:varchar(256)"`

	TargetAudience string         `gorm:"type:text"`
	Goals          string         `gorm:"type:text"`
	Topics         pq.StringArray `gorm:"type:text[]"`
	PreferredTone  string         `gorm:"type:varchar(50)"`

	AboutYou string `gorm:"type:text"`
}

// TableName specifies the table name for Profile.
func (Profile) TableName() string {
	return "content_api.profiles"
}

// NewSchemaProfile creates a database schema from a domain profile.
func NewSchemaProfile(p *profile.Profile) *Profile {
	return &Profile{
		BaseModel: BaseModel{
			ID:        p.ID,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
		UserID:         p.UserID,
		FullName:       p.FullName,
		Headline:       p.Headline,
		Industry:       p.Industry,
		Company:        p.Company,
		TargetAudience: p.TargetAudience,
		Goals:          p.Goals,
		Topics:         pq.StringArray(p.Topics),
		PreferredTone:  p.PreferredTone,
		AboutYou:       p.AboutYou,
	}
}

// EtoD converts database schema to domain profile (Entity to Domain).
func (p *Profile) EtoD() *profile.Profile {
	return &profile.Profile{
		ID:             p.ID,
		UserID:         p.UserID,
		FullName:       p.FullName,
		Headline:       p.Headline,
		Industry:       p.Industry,
		Company:        p.Company,
		TargetAudience: p.TargetAudience,
		Goals:          p.Goals,
		Topics:         []string(p.Topics),
		PreferredTone:  p.PreferredTone,
		AboutYou:       p.AboutYou,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
