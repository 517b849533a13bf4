package credit

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// Service implements Meter over a Store. New accounts are seeded with a
// configurable signup balance the first time they are touched.
type Service struct {
	store         Store
	signupBalance decimal.Decimal
}

func NewService(store Store, signupBalance decimal.Decimal) *Service {
	return &Service{store: store, signupBalance: signupBalance}
}

// CheckAndReserve deducts amount from the user's balance, failing with a
// payment-required error when the balance does not cover it. Must run before
// any billable provider call.
func (s *Service) CheckAndReserve(ctx context.Context, userID string, amount decimal.Decimal) error {
	if err := s.store.EnsureAccount(ctx, userID, s.signupBalance); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to ensure credit account")
	}

	ok, err := s.store.DeductIfSufficient(ctx, userID, amount)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to reserve credits")
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypePaymentRequired, "insufficient credits", nil, "2f8c1a4d-6b3e-4d9f-8a2c-5e7b0d1f3a9c")
	}

	return s.store.AppendEntry(ctx, &Entry{
		UserID: userID,
		Kind:   EntryReserve,
		Action: ActionPostGeneration,
		Amount: amount,
	})
}

// Settle records what a reservation paid for. The funds already moved at
// reservation time; this writes the audit entry bound to the post.
func (s *Service) Settle(ctx context.Context, userID string, amount decimal.Decimal, action ActionType, postID uint) error {
	entry := &Entry{
		UserID: userID,
		Kind:   EntrySettle,
		Action: action,
		Amount: amount,
		PostID: &postID,
	}
	if err := s.store.AppendEntry(ctx, entry); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to settle credits")
	}
	return nil
}

// Refund returns a reservation when the pipeline fails after reserving.
func (s *Service) Refund(ctx context.Context, userID string, amount decimal.Decimal) error {
	if err := s.store.Credit(ctx, userID, amount); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to refund credits")
	}
	return s.store.AppendEntry(ctx, &Entry{
		UserID: userID,
		Kind:   EntryRefund,
		Action: ActionPostGeneration,
		Amount: amount,
	})
}

// Balance reports the user's current balance, seeding the account first so
// new users see their signup credits.
func (s *Service) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	if err := s.store.EnsureAccount(ctx, userID, s.signupBalance); err != nil {
		return decimal.Zero, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to ensure credit account")
	}
	balance, err := s.store.Balance(ctx, userID)
	if err != nil {
		return decimal.Zero, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to read credit balance")
	}
	return balance, nil
}
