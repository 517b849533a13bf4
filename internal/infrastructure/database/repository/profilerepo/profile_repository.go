package profilerepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/profile"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/dbschema"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/transaction"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// ProfileGormRepository implements profile.Repository using GORM
type ProfileGormRepository struct {
	db *transaction.Database
}

var _ profile.Repository = (*ProfileGormRepository)(nil)

// NewProfileGormRepository creates a new GORM-based profile repository
func NewProfileGormRepository(db *transaction.Database) profile.Repository {
	return &ProfileGormRepository{db: db}
}

// FindByUserID returns the user's profile, or nil when onboarding never
// completed. Absence is not an error here; callers decide what it means.
func (r *ProfileGormRepository) FindByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	var schema dbschema.Profile
	tx := r.db.GetTx(ctx)
	if err := tx.Where("user_id = ?", userID).First(&schema).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find profile", err, "2c0d8e1f-3f4a-4b5c-7d8e-9f0a1b2c3d4f")
	}
	return schema.EtoD(), nil
}

// Upsert creates or replaces the user's profile in one statement.
func (r *ProfileGormRepository) Upsert(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	schema := dbschema.NewSchemaProfile(p)
	schema.UpdatedAt = time.Now()
	if schema.CreatedAt.IsZero() {
		schema.CreatedAt = schema.UpdatedAt
	}

	tx := r.db.GetTx(ctx)
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "headline", "industry", "company",
			"target_audience", "goals", "topics", "preferred_tone",
			"about_you", "updated_at",
		}),
	}).Create(schema).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to upsert profile", err, "3d1e9f2a-4a5b-4c6d-8e9f-0a1b2c3d4e5a")
	}

	return schema.EtoD(), nil
}
