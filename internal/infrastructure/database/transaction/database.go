package transaction

import (
	"context"

	"gorm.io/gorm"
)

type TransactionContextKey struct{}

func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, TransactionContextKey{}, tx)
}

// Database hands repositories the ambient transaction when the context
// carries one and the root connection otherwise.
type Database struct {
	db *gorm.DB
}

func (t *Database) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TransactionContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return t.db
}

// Transaction runs fn inside one database transaction. The context passed to
// fn carries the transaction, so repository calls made through GetTx join it
// and commit or roll back together.
func (t *Database) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.GetTx(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db}
}
