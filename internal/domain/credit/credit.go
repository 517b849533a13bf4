// Package credit meters billable actions. Funds are reserved with one atomic
// guarded deduction before any provider call is issued, settled against the
// persisted post afterwards, and refunded when the pipeline fails in between.
package credit

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ActionType names a billable action.
type ActionType string

const ActionPostGeneration ActionType = "post_generation"

// EntryKind distinguishes ledger movements.
type EntryKind string

const (
	EntryReserve EntryKind = "reserve"
	EntrySettle  EntryKind = "settle"
	EntryRefund  EntryKind = "refund"
)

// Entry is one row of the credit ledger. Settle entries carry the post the
// spend paid for.
type Entry struct {
	ID        uint            `json:"-"`
	UserID    string          `json:"-"`
	Kind      EntryKind       `json:"kind"`
	Action    ActionType      `json:"action"`
	Amount    decimal.Decimal `json:"amount"`
	PostID    *uint           `json:"-"`
	CreatedAt time.Time       `json:"created_at"`
}

// Meter is the contract the generation pipeline consumes. CheckAndReserve
// must be atomic against concurrent requests from the same user: two requests
// may not both pass on a balance that covers only one.
type Meter interface {
	CheckAndReserve(ctx context.Context, userID string, amount decimal.Decimal) error
	Settle(ctx context.Context, userID string, amount decimal.Decimal, action ActionType, postID uint) error
	Refund(ctx context.Context, userID string, amount decimal.Decimal) error
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
}

// Store is the persistence surface behind the meter. DeductIfSufficient is
// the atomicity point: a single guarded update that only applies when the
// balance covers the amount.
type Store interface {
	EnsureAccount(ctx context.Context, userID string, initial decimal.Decimal) error
	DeductIfSufficient(ctx context.Context, userID string, amount decimal.Decimal) (bool, error)
	Credit(ctx context.Context, userID string, amount decimal.Decimal) error
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
	AppendEntry(ctx context.Context, entry *Entry) error
}

var generationCost = decimal.NewFromInt(1)

// Configure sets the credit price of a generation. Called once at wiring time
// from configuration; the default is one credit per post.
func Configure(perGeneration decimal.Decimal) {
	if perGeneration.IsPositive() {
		generationCost = perGeneration
	}
}

// CostOf returns the credit price of an action.
func CostOf(action ActionType) decimal.Decimal {
	switch action {
	case ActionPostGeneration:
		return generationCost
	}
	return decimal.Zero
}
