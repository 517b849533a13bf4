package creditrepo

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/credit"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/dbschema"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/transaction"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// CreditGormRepository implements credit.Store using GORM
type CreditGormRepository struct {
	db *transaction.Database
}

var _ credit.Store = (*CreditGormRepository)(nil)

// NewCreditGormRepository creates a new GORM-based credit store
func NewCreditGormRepository(db *transaction.Database) credit.Store {
	return &CreditGormRepository{db: db}
}

// EnsureAccount creates the balance row with the signup amount if the user
// has none yet. Concurrent calls are safe: the conflict clause makes the
// second insert a no-op.
func (r *CreditGormRepository) EnsureAccount(ctx context.Context, userID string, initial decimal.Decimal) error {
	row := &dbschema.CreditBalance{UserID: userID, Balance: initial}

	tx := r.db.GetTx(ctx)
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(row).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to ensure credit account", err, "5b3c1d4e-6e7f-4a8b-0c1d-2e3f4a5b6c7d")
	}
	return nil
}

// DeductIfSufficient atomically spends amount when the balance covers it.
// The guarded UPDATE is the double-spend barrier: of two concurrent requests
// against a one-credit balance, exactly one sees a row affected.
func (r *CreditGormRepository) DeductIfSufficient(ctx context.Context, userID string, amount decimal.Decimal) (bool, error) {
	tx := r.db.GetTx(ctx)
	result := tx.Model(&dbschema.CreditBalance{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": gorm.Expr("now()"),
		})
	if result.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to deduct credits", result.Error, "6c4d2e5f-7f8a-4b9c-1d2e-3f4a5b6c7d8e")
	}
	return result.RowsAffected > 0, nil
}

// Credit adds amount back to the balance.
func (r *CreditGormRepository) Credit(ctx context.Context, userID string, amount decimal.Decimal) error {
	tx := r.db.GetTx(ctx)
	result := tx.Model(&dbschema.CreditBalance{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": gorm.Expr("now()"),
		})
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to credit account", result.Error, "7d5e3f6a-8a9b-4c0d-2e3f-4a5b6c7d8e9f")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "credit account not found", nil, "8e6f4a7b-9b0c-4d1e-3f4a-5b6c7d8e9f0a")
	}
	return nil
}

// Balance returns the user's current balance.
func (r *CreditGormRepository) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var row dbschema.CreditBalance
	tx := r.db.GetTx(ctx)
	if err := tx.Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "credit account not found", err, "9f7a5b8c-0c1d-4e2f-4a5b-6c7d8e9f0a1b")
		}
		return decimal.Zero, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to read balance", err, "0a8b6c9d-1d2e-4f3a-5b6c-7d8e9f0a1b2d")
	}
	return row.Balance, nil
}

// AppendEntry writes one ledger row.
func (r *CreditGormRepository) AppendEntry(ctx context.Context, entry *credit.Entry) error {
	row := dbschema.NewSchemaCreditEntry(entry)

	tx := r.db.GetTx(ctx)
	if err := tx.Create(row).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to append credit entry", err, "1b9c7d0e-2e3f-4a4b-6c7d-8e9f0a1b2c3e")
	}

	entry.ID = row.ID
	entry.CreatedAt = row.CreatedAt
	return nil
}
