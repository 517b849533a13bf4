package conversationrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/conversation"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/query"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/dbschema"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/transaction"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/functional"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// ConversationGormRepository implements conversation.Repository using GORM
type ConversationGormRepository struct {
	db *transaction.Database
}

var _ conversation.Repository = (*ConversationGormRepository)(nil)

// NewConversationGormRepository creates a new GORM-based conversation repository
func NewConversationGormRepository(db *transaction.Database) conversation.Repository {
	return &ConversationGormRepository{db: db}
}

// Create persists a new conversation and backfills the generated id.
func (r *ConversationGormRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	schema := dbschema.NewSchemaConversation(conv)

	tx := r.db.GetTx(ctx)
	if err := tx.Create(schema).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to create conversation", err, "4e2f0a3b-5b6c-4d7e-9f0a-1b2c3d4e5f6a")
	}

	conv.ID = schema.ID
	conv.CreatedAt = schema.CreatedAt
	conv.UpdatedAt = schema.UpdatedAt

	return nil
}

// FindByFilter returns conversations matching the filter, newest first.
func (r *ConversationGormRepository) FindByFilter(ctx context.Context, filter conversation.Filter, pagination *query.Pagination) ([]*conversation.Conversation, error) {
	tx := r.applyFilter(r.db.GetTx(ctx), filter)
	tx = applyPagination(tx, pagination)

	var rows []*dbschema.Conversation
	if err := tx.Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find conversations", err, "5f3a1b4c-6c7d-4e8f-0a1b-2c3d4e5f6a7b")
	}

	return functional.Map(rows, func(row *dbschema.Conversation) *conversation.Conversation {
		return row.EtoD()
	}), nil
}

// Count returns how many conversations match the filter.
func (r *ConversationGormRepository) Count(ctx context.Context, filter conversation.Filter) (int64, error) {
	var count int64
	tx := r.applyFilter(r.db.GetTx(ctx), filter)
	if err := tx.Count(&count).Error; err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to count conversations", err, "6a4b2c5d-7d8e-4f9a-1b2c-3d4e5f6a7b8c")
	}
	return count, nil
}

// FindByPublicID returns the conversation with the given public id.
func (r *ConversationGormRepository) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	var schema dbschema.Conversation
	tx := r.db.GetTx(ctx)
	if err := tx.Where("public_id = ?", publicID).First(&schema).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "conversation not found", err, "7b5c3d6e-8e9f-4a0b-2c3d-4e5f6a7b8c9d")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find conversation", err, "8c6d4e7f-9f0a-4b1c-3d4e-5f6a7b8c9d0e")
	}
	return schema.EtoD(), nil
}

// Update persists changed conversation fields.
func (r *ConversationGormRepository) Update(ctx context.Context, conv *conversation.Conversation) error {
	schema := dbschema.NewSchemaConversation(conv)
	schema.UpdatedAt = time.Now()

	tx := r.db.GetTx(ctx)
	result := tx.Model(&dbschema.Conversation{}).
		Where("id = ?", schema.ID).
		Updates(map[string]interface{}{
			"title":      schema.Title,
			"status":     schema.Status,
			"updated_at": schema.UpdatedAt,
		})
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to update conversation", result.Error, "9d7e5f8a-0a1b-4c2d-4e5f-6a7b8c9d0e1f")
	}

	conv.UpdatedAt = schema.UpdatedAt

	return nil
}

// Delete removes a conversation and its items.
func (r *ConversationGormRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.GetTx(ctx)
	if err := tx.Where("conversation_id = ?", id).Delete(&dbschema.ConversationItem{}).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to delete conversation items", err, "0e8f6a9b-1b2c-4d3e-5f6a-7b8c9d0e1f2a")
	}
	if err := tx.Delete(&dbschema.Conversation{}, "id = ?", id).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to delete conversation", err, "1f9a7b0c-2c3d-4e4f-6a7b-8c9d0e1f2a3b")
	}
	return nil
}

// AddItems appends turns to a conversation in one write.
func (r *ConversationGormRepository) AddItems(ctx context.Context, conversationID uint, items []*conversation.Item) error {
	if len(items) == 0 {
		return nil
	}

	rows := functional.Map(items, func(item *conversation.Item) *dbschema.ConversationItem {
		item.ConversationID = conversationID
		return dbschema.NewSchemaConversationItem(item)
	})

	tx := r.db.GetTx(ctx)
	if err := tx.Create(rows).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to add conversation items", err, "2a0b8c1d-3d4e-4f5a-7b8c-9d0e1f2a3b4c")
	}

	for i, row := range rows {
		items[i].ID = row.ID
	}
	return nil
}

// ListItems returns a conversation's turns ordered by sequence number.
func (r *ConversationGormRepository) ListItems(ctx context.Context, conversationID uint, pagination *query.Pagination) ([]*conversation.Item, error) {
	tx := r.db.GetTx(ctx).
		Model(&dbschema.ConversationItem{}).
		Where("conversation_id = ?", conversationID)
	tx = applyItemPagination(tx, pagination)

	var rows []*dbschema.ConversationItem
	if err := tx.Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to list conversation items", err, "3b1c9d2e-4e5f-4a6b-8c9d-0e1f2a3b4c5d")
	}

	return functional.Map(rows, func(row *dbschema.ConversationItem) *conversation.Item {
		return row.EtoD()
	}), nil
}

// CountItems returns how many turns a conversation holds.
func (r *ConversationGormRepository) CountItems(ctx context.Context, conversationID uint) (int, error) {
	var count int64
	tx := r.db.GetTx(ctx)
	err := tx.Model(&dbschema.ConversationItem{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	if err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to count conversation items", err, "4c2d0e3f-5f6a-4b7c-9d0e-1f2a3b4c5d6e")
	}
	return int(count), nil
}

func (r *ConversationGormRepository) applyFilter(tx *gorm.DB, filter conversation.Filter) *gorm.DB {
	tx = tx.Model(&dbschema.Conversation{})
	if filter.ID != nil {
		tx = tx.Where("id = ?", *filter.ID)
	}
	if filter.PublicID != nil {
		tx = tx.Where("public_id = ?", *filter.PublicID)
	}
	if filter.UserID != nil {
		tx = tx.Where("user_id = ?", *filter.UserID)
	}
	return tx
}

func applyPagination(tx *gorm.DB, p *query.Pagination) *gorm.DB {
	if p == nil {
		return tx.Order("updated_at DESC")
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

// applyItemPagination orders by sequence number so history windows stay
// stable even if two turns share a commit timestamp.
func applyItemPagination(tx *gorm.DB, p *query.Pagination) *gorm.DB {
	if p == nil {
		return tx.Order("sequence_number ASC")
	}
	if p.Order == "desc" {
		tx = tx.Order("sequence_number DESC")
	} else {
		tx = tx.Order("sequence_number ASC")
	}
	if p.Limit != nil {
		tx = tx.Limit(*p.Limit)
	}
	return tx
}
