package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/query"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/idgen"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/stringutils"
)

// fallbackTitleMaxLength caps titles derived by truncating the user message.
const fallbackTitleMaxLength = 50

// Service is the conversation ledger. It decides create-vs-continue, settles
// titles, and appends the user/assistant turn pair a generation produces.
// Persistence atomicity comes from the caller's transaction context.
type Service struct {
	repo   Repository
	caller llm.Caller
}

func NewService(repo Repository, caller llm.Caller) *Service {
	return &Service{repo: repo, caller: caller}
}

// Ensure resolves the conversation a generation appends to: an
// ownership-checked lookup when publicID is set, otherwise a fresh entity
// that AppendExchange persists. The second return reports whether one was
// built. New conversations stay unpersisted so a failed pipeline leaves no
// empty row behind.
func (s *Service) Ensure(ctx context.Context, userID, publicID string) (*Conversation, bool, error) {
	if publicID != "" {
		conv, err := s.GetByPublicID(ctx, userID, publicID)
		if err != nil {
			return nil, false, err
		}
		return conv, false, nil
	}

	id, err := idgen.GenerateSecureID("conv", 16)
	if err != nil {
		return nil, false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate conversation ID")
	}
	return New(id, userID), true, nil
}

// GetByPublicID retrieves a conversation and verifies ownership. Foreign
// conversations surface as not found.
func (s *Service) GetByPublicID(ctx context.Context, userID, publicID string) (*Conversation, error) {
	if !idgen.ValidateIDFormat(publicID, "conv") {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid conversation ID", nil, "7d1f4c3a-9e82-4b6d-a05f-3c8e1b2d4a6f")
	}

	conv, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "conversation not found")
	}
	if conv.UserID != userID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "conversation not found", nil, "4b9a2e7c-1d5f-4c8a-b3e6-9f0d2a7c5e1b")
	}
	return conv, nil
}

// List returns a user's conversations with the total count.
func (s *Service) List(ctx context.Context, userID string, pagination *query.Pagination) ([]*Conversation, int64, error) {
	filter := Filter{UserID: &userID}

	conversations, err := s.repo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count conversations")
	}
	return conversations, total, nil
}

// Delete removes a conversation after verifying ownership.
func (s *Service) Delete(ctx context.Context, userID, publicID string) error {
	conv, err := s.GetByPublicID(ctx, userID, publicID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, conv.ID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete conversation")
	}
	return nil
}

// History returns the most recent turns in chronological order, capped at
// maxItems.
func (s *Service) History(ctx context.Context, conversationID uint, maxItems int) ([]Item, error) {
	pagination := query.NewPagination(&maxItems, nil, "desc")
	items, err := s.repo.ListItems(ctx, conversationID, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation history")
	}

	// Repo returns newest-first; flip to oldest-first for prompt assembly.
	out := make([]Item, len(items))
	for i, item := range items {
		out[len(items)-1-i] = *item
	}
	return out, nil
}

// SettleTitle applies the title rules after a generation: a non-empty
// artifact title always wins, a new still-untitled conversation gets one
// auxiliary title call, and on failure the user message is truncated into a
// title. Returned usages cover the auxiliary call, zeroed when it degraded.
func (s *Service) SettleTitle(ctx context.Context, conv *Conversation, artifactTitle, userMessage string) []llm.Usage {
	if trimmed := strings.TrimSpace(artifactTitle); trimmed != "" {
		conv.SetTitle(stringutils.TruncateTitle(trimmed, fallbackTitleMaxLength))
		return nil
	}
	if conv.HasTitle() {
		return nil
	}

	req := llm.GenerateRequest{
		SystemPrompt: "You name conversations. Respond with a short title only, no quotes, six words at most.",
		UserMessage:  fmt.Sprintf("Title this LinkedIn post request:\n%s", userMessage),
	}

	result, err := s.caller.GenerateFor(ctx, llm.PurposeConversationTitle, req)
	if err != nil {
		conv.SetTitle(stringutils.GenerateTitle(userMessage, fallbackTitleMaxLength))
		provider, model, _ := s.caller.RouteFor(llm.PurposeConversationTitle)
		return []llm.Usage{{Provider: provider, Model: model, Purpose: llm.PurposeConversationTitle}}
	}

	title := stringutils.GenerateTitle(result.Text, fallbackTitleMaxLength)
	if title == "" {
		title = stringutils.GenerateTitle(userMessage, fallbackTitleMaxLength)
	}
	conv.SetTitle(title)
	return []llm.Usage{result.Usage}
}

// Persist writes the conversation row: a create when Ensure built a new one,
// otherwise an update bumping updated_at. Runs inside the commit transaction
// before the post is written so the post can reference the conversation.
func (s *Service) Persist(ctx context.Context, conv *Conversation) error {
	conv.UpdatedAt = time.Now()
	if conv.ID == 0 {
		if err := s.repo.Create(ctx, conv); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
		}
		return nil
	}
	if err := s.repo.Update(ctx, conv); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update conversation")
	}
	return nil
}

// AppendExchange writes the user and assistant turns for one generation.
// Requires a persisted conversation; the caller runs this inside the same
// transaction that persisted the post.
func (s *Service) AppendExchange(ctx context.Context, conv *Conversation, userMessage, assistantContent string, postID uint, postPublicID string) (*Item, *Item, error) {
	sequence, err := s.repo.CountItems(ctx, conv.ID)
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count conversation items")
	}

	userItem, err := s.newItem(conv.ID, RoleUser, userMessage, sequence)
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to build user turn")
	}
	assistantItem, err := s.newItem(conv.ID, RoleAssistant, assistantContent, sequence+1)
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to build assistant turn")
	}
	assistantItem.PostID = &postID
	assistantItem.PostPublicID = &postPublicID

	if err := s.repo.AddItems(ctx, conv.ID, []*Item{userItem, assistantItem}); err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to append conversation turns")
	}
	return userItem, assistantItem, nil
}

func (s *Service) newItem(conversationID uint, role Role, content string, sequence int) (*Item, error) {
	publicID, err := idgen.GenerateSecureID("msg", 16)
	if err != nil {
		return nil, err
	}
	return &Item{
		PublicID:       publicID,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		SequenceNumber: sequence,
		CreatedAt:      time.Now(),
	}, nil
}
