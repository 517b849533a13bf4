package dbschema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/credit"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(CreditBalance{})
	database.RegisterSchemaForAutoMigrate(CreditEntry{})
}

// CreditBalance holds one user's spendable balance. Deduction happens through
// a guarded UPDATE (balance >= amount) so concurrent requests cannot spend
// the same credit twice.
type CreditBalance struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    string          `gorm:"type:varchar(64);uniqueIndex;not null"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	CreatedAt time.Time       `gorm:"not null;default:now()"`
	UpdatedAt time.Time       `gorm:"not null;default:now()"`
}

// TableName specifies the table name for CreditBalance.
func (CreditBalance) TableName() string {
	return "content_api.credit_balances"
}

// CreditEntry is one row of the append-only credit ledger.
type CreditEntry struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    string          `gorm:"type:varchar(64);index;not null"`
	Kind      string          `gorm:"type:varchar(20);not null"`
	Action    string          `gorm:"type:varchar(50);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	PostID    *uint           `gorm:"index"`
	CreatedAt time.Time       `gorm:"not null;default:now()"`
}

// TableName specifies the table name for CreditEntry.
func (CreditEntry) TableName() string {
	return "content_api.credit_entries"
}

// NewSchemaCreditEntry creates a database schema from a domain ledger entry.
func NewSchemaCreditEntry(e *credit.Entry) *CreditEntry {
	return &CreditEntry{
		ID:        e.ID,
		UserID:    e.UserID,
		Kind:      string(e.Kind),
		Action:    string(e.Action),
		Amount:    e.Amount,
		PostID:    e.PostID,
		CreatedAt: e.CreatedAt,
	}
}

// EtoD converts database schema to domain ledger entry (Entity to Domain).
func (e *CreditEntry) EtoD() *credit.Entry {
	return &credit.Entry{
		ID:        e.ID,
		UserID:    e.UserID,
		Kind:      credit.EntryKind(e.Kind),
		Action:    credit.ActionType(e.Action),
		Amount:    e.Amount,
		PostID:    e.PostID,
		CreatedAt: e.CreatedAt,
	}
}
