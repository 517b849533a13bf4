package postrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/query"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/dbschema"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/transaction"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// PostGormRepository implements post.Repository using GORM
type PostGormRepository struct {
	db *transaction.Database
}

var _ post.Repository = (*PostGormRepository)(nil)

// NewPostGormRepository creates a new GORM-based post repository
func NewPostGormRepository(db *transaction.Database) post.Repository {
	return &PostGormRepository{db: db}
}

// Create persists a new post and backfills the generated id and timestamps.
func (r *PostGormRepository) Create(ctx context.Context, p *post.Post) error {
	schema, err := dbschema.NewSchemaPost(p)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeValidation, "failed to convert post to schema", err, "3e1f9b2a-4c5d-4e6f-8a9b-0c1d2e3f4a5b")
	}

	tx := r.db.GetTx(ctx)
	if err := tx.Create(schema).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to create post", err, "4f2a0c3b-5d6e-4f7a-9b0c-1d2e3f4a5b6c")
	}

	p.ID = schema.ID
	p.CreatedAt = schema.CreatedAt
	p.UpdatedAt = schema.UpdatedAt

	return nil
}

// Update persists changed post fields.
func (r *PostGormRepository) Update(ctx context.Context, p *post.Post) error {
	schema, err := dbschema.NewSchemaPost(p)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeValidation, "failed to convert post to schema", err, "5a3b1d4c-6e7f-4a8b-0c1d-2e3f4a5b6c7d")
	}

	schema.UpdatedAt = time.Now()

	tx := r.db.GetTx(ctx)
	result := tx.Model(&dbschema.Post{}).
		Where("id = ?", schema.ID).
		Updates(map[string]interface{}{
			"content":      schema.Content,
			"format":       schema.Format,
			"title":        schema.Title,
			"image_prompt": schema.ImagePrompt,
			"hashtags":     schema.Hashtags,
			"status":       schema.Status,
			"updated_at":   schema.UpdatedAt,
		})
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to update post", result.Error, "6b4c2e5d-7f8a-4b9c-1d2e-3f4a5b6c7d8e")
	}

	p.UpdatedAt = schema.UpdatedAt

	return nil
}

// FindByFilter returns posts matching the filter, newest first.
func (r *PostGormRepository) FindByFilter(ctx context.Context, filter post.Filter, pagination *query.Pagination) ([]*post.Post, error) {
	tx := r.applyFilter(r.db.GetTx(ctx), filter)
	tx = applyPagination(tx, pagination)

	var rows []*dbschema.Post
	if err := tx.Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find posts", err, "7c5d3f6e-8a9b-4c0d-2e3f-4a5b6c7d8e9f")
	}

	result := make([]*post.Post, 0, len(rows))
	for _, row := range rows {
		p, err := row.EtoD()
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal, "failed to convert post row", err, "8d6e4a7f-9b0c-4d1e-3f4a-5b6c7d8e9f0a")
		}
		result = append(result, p)
	}
	return result, nil
}

// Count returns how many posts match the filter.
func (r *PostGormRepository) Count(ctx context.Context, filter post.Filter) (int64, error) {
	var count int64
	tx := r.applyFilter(r.db.GetTx(ctx), filter)
	if err := tx.Count(&count).Error; err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to count posts", err, "9e7f5b8a-0c1d-4e2f-4a5b-6c7d8e9f0a1b")
	}
	return count, nil
}

// FindByPublicID returns the post with the given public id.
func (r *PostGormRepository) FindByPublicID(ctx context.Context, publicID string) (*post.Post, error) {
	var schema dbschema.Post
	tx := r.db.GetTx(ctx)
	if err := tx.Where("public_id = ?", publicID).First(&schema).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "post not found", err, "0a8b6c9d-1d2e-4f3a-5b6c-7d8e9f0a1b2c")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find post", err, "1b9c7d0e-2e3f-4a4b-6c7d-8e9f0a1b2c3d")
	}
	return schema.EtoD()
}

// RecentTitles returns the titles of the user's posts created since the
// cutoff, newest first. Untitled posts are skipped.
func (r *PostGormRepository) RecentTitles(ctx context.Context, userID string, since time.Time) ([]string, error) {
	var titles []string
	tx := r.db.GetTx(ctx)
	err := tx.Model(&dbschema.Post{}).
		Where("user_id = ? AND created_at >= ? AND title IS NOT NULL", userID, since).
		Order("created_at DESC").
		Pluck("title", &titles).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to load recent titles", err, "2c0d8e1f-3f4a-4b5c-7d8e-9f0a1b2c3d4e")
	}
	return titles, nil
}

// Delete removes a post by internal id.
func (r *PostGormRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.GetTx(ctx)
	if err := tx.Delete(&dbschema.Post{}, "id = ?", id).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to delete post", err, "3d1e9f2a-4a5b-4c6d-8e9f-0a1b2c3d4e5f")
	}
	return nil
}

func (r *PostGormRepository) applyFilter(tx *gorm.DB, filter post.Filter) *gorm.DB {
	tx = tx.Model(&dbschema.Post{})
	if filter.ID != nil {
		tx = tx.Where("id = ?", *filter.ID)
	}
	if filter.PublicID != nil {
		tx = tx.Where("public_id = ?", *filter.PublicID)
	}
	if filter.UserID != nil {
		tx = tx.Where("user_id = ?", *filter.UserID)
	}
	if filter.ConversationID != nil {
		tx = tx.Where("conversation_id = ?", *filter.ConversationID)
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", *filter.Status)
	}
	return tx
}

func applyPagination(tx *gorm.DB, p *query.Pagination) *gorm.DB {
	if p == nil {
		return tx.Order("id DESC")
	}
	if p.Order == "desc" {
		tx = tx.Order("id DESC")
		if p.After != nil {
			tx = tx.Where("id < ?", *p.After)
		}
	} else {
		tx = tx.Order("id ASC")
		if p.After != nil {
			tx = tx.Where("id > ?", *p.After)
		}
	}
	if p.Limit != nil {
		tx = tx.Limit(*p.Limit)
	}
	return tx
}
