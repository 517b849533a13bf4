package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/query"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

type memoryRepo struct {
	conversations map[string]*Conversation
	items         map[uint][]*Item
	nextID        uint
	updateCalls   int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		conversations: make(map[string]*Conversation),
		items:         make(map[uint][]*Item),
	}
}

func (m *memoryRepo) Create(ctx context.Context, conv *Conversation) error {
	m.nextID++
	conv.ID = m.nextID
	m.conversations[conv.PublicID] = conv
	return nil
}

func (m *memoryRepo) FindByFilter(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*Conversation, error) {
	var out []*Conversation
	for _, conv := range m.conversations {
		if filter.UserID != nil && conv.UserID != *filter.UserID {
			continue
		}
		out = append(out, conv)
	}
	return out, nil
}

func (m *memoryRepo) Count(ctx context.Context, filter Filter) (int64, error) {
	convs, _ := m.FindByFilter(ctx, filter, nil)
	return int64(len(convs)), nil
}

func (m *memoryRepo) FindByPublicID(ctx context.Context, publicID string) (*Conversation, error) {
	conv, ok := m.conversations[publicID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return conv, nil
}

func (m *memoryRepo) Update(ctx context.Context, conv *Conversation) error {
	m.updateCalls++
	m.conversations[conv.PublicID] = conv
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id uint) error {
	for publicID, conv := range m.conversations {
		if conv.ID == id {
			delete(m.conversations, publicID)
			return nil
		}
	}
	return errors.New("record not found")
}

func (m *memoryRepo) AddItems(ctx context.Context, conversationID uint, items []*Item) error {
	m.items[conversationID] = append(m.items[conversationID], items...)
	return nil
}

func (m *memoryRepo) ListItems(ctx context.Context, conversationID uint, pagination *query.Pagination) ([]*Item, error) {
	items := m.items[conversationID]
	if pagination != nil && pagination.Order == "desc" {
		reversed := make([]*Item, len(items))
		for i, item := range items {
			reversed[len(items)-1-i] = item
		}
		items = reversed
	}
	if pagination != nil && pagination.Limit != nil && len(items) > *pagination.Limit {
		items = items[:*pagination.Limit]
	}
	return items, nil
}

func (m *memoryRepo) CountItems(ctx context.Context, conversationID uint) (int, error) {
	return len(m.items[conversationID]), nil
}

type titleCaller struct {
	generateFn func(req llm.GenerateRequest) (*llm.Result, error)
	calls      int
}

func (c *titleCaller) GenerateFor(ctx context.Context, purpose llm.Purpose, req llm.GenerateRequest) (*llm.Result, error) {
	c.calls++
	return c.generateFn(req)
}

func (c *titleCaller) RouteFor(purpose llm.Purpose) (string, string, bool) {
	return "openai", "gpt-4o-mini", true
}

func newTestService(caller llm.Caller) (*Service, *memoryRepo) {
	repo := newMemoryRepo()
	return NewService(repo, caller), repo
}

func TestEnsureBuildsUnpersistedConversation(t *testing.T) {
	svc, repo := newTestService(&titleCaller{})

	conv, created, err := svc.Ensure(context.Background(), "user-1", "")
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if !created {
		t.Error("created = false, want true")
	}
	if !strings.HasPrefix(conv.PublicID, "conv_") {
		t.Errorf("PublicID = %q, want conv_ prefix", conv.PublicID)
	}
	if conv.Status != StatusActive {
		t.Errorf("Status = %q", conv.Status)
	}
	if conv.HasTitle() {
		t.Error("new conversation should start untitled")
	}
	// Nothing persists until the exchange commits, so a failed pipeline
	// leaves no empty conversation behind.
	if len(repo.conversations) != 0 {
		t.Errorf("conversations persisted = %d, want 0", len(repo.conversations))
	}
	if conv.ID != 0 {
		t.Errorf("ID = %d, want unassigned", conv.ID)
	}
}

func TestEnsureContinuesOwnConversation(t *testing.T) {
	svc, repo := newTestService(&titleCaller{})

	existing := New("conv_abc123def456abcd", "user-1")
	repo.Create(context.Background(), existing)

	conv, created, err := svc.Ensure(context.Background(), "user-1", existing.PublicID)
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if created {
		t.Error("created = true, want false")
	}
	if conv.ID != existing.ID {
		t.Errorf("ID = %d, want %d", conv.ID, existing.ID)
	}
}

func TestEnsureHidesForeignConversation(t *testing.T) {
	svc, repo := newTestService(&titleCaller{})

	existing := New("conv_abc123def456abcd", "user-1")
	repo.Create(context.Background(), existing)

	_, _, err := svc.Ensure(context.Background(), "user-2", existing.PublicID)
	if err == nil {
		t.Fatal("expected error for foreign conversation")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("error type = %v, want not found", err)
	}
}

func TestEnsureRejectsMalformedID(t *testing.T) {
	svc, _ := newTestService(&titleCaller{})

	_, _, err := svc.Ensure(context.Background(), "user-1", "post_abc123def456abcd")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("error type = %v, want validation", err)
	}
}

func TestSettleTitleArtifactTitleWins(t *testing.T) {
	caller := &titleCaller{generateFn: func(req llm.GenerateRequest) (*llm.Result, error) {
		return nil, errors.New("should not be called")
	}}
	svc, _ := newTestService(caller)

	conv := New("conv_abc123def456abcd", "user-1")
	usages := svc.SettleTitle(context.Background(), conv, "Hiring Lessons", "some message")

	if !conv.HasTitle() || *conv.Title != "Hiring Lessons" {
		t.Errorf("Title = %v", conv.Title)
	}
	if len(usages) != 0 {
		t.Errorf("usages = %v, want none", usages)
	}
	if caller.calls != 0 {
		t.Errorf("caller.calls = %d, want 0", caller.calls)
	}
}

func TestSettleTitleOverwritesOnContinuation(t *testing.T) {
	svc, _ := newTestService(&titleCaller{})

	conv := New("conv_abc123def456abcd", "user-1")
	conv.SetTitle("Old placeholder")

	svc.SettleTitle(context.Background(), conv, "A Better Title", "follow-up message")

	if *conv.Title != "A Better Title" {
		t.Errorf("Title = %q, non-empty artifact titles overwrite", *conv.Title)
	}
}

func TestSettleTitleKeepsExistingWhenArtifactEmpty(t *testing.T) {
	caller := &titleCaller{generateFn: func(req llm.GenerateRequest) (*llm.Result, error) {
		return nil, errors.New("should not be called")
	}}
	svc, _ := newTestService(caller)

	conv := New("conv_abc123def456abcd", "user-1")
	conv.SetTitle("Settled title")

	usages := svc.SettleTitle(context.Background(), conv, "", "follow-up")

	if *conv.Title != "Settled title" {
		t.Errorf("Title = %q, want unchanged", *conv.Title)
	}
	if len(usages) != 0 || caller.calls != 0 {
		t.Error("no auxiliary call expected for a titled conversation")
	}
}

func TestSettleTitleAuxCall(t *testing.T) {
	caller := &titleCaller{generateFn: func(req llm.GenerateRequest) (*llm.Result, error) {
		if !strings.Contains(req.UserMessage, "write about burnout") {
			t.Errorf("user message missing from title prompt: %q", req.UserMessage)
		}
		return &llm.Result{
			Text: "Burnout and Boundaries",
			Usage: llm.Usage{
				Provider: "openai", Model: "gpt-4o-mini",
				Purpose: llm.PurposeConversationTitle, InputTokens: 30, OutputTokens: 6,
			},
		}, nil
	}}
	svc, _ := newTestService(caller)

	conv := New("conv_abc123def456abcd", "user-1")
	usages := svc.SettleTitle(context.Background(), conv, "", "write about burnout")

	if *conv.Title != "Burnout and Boundaries" {
		t.Errorf("Title = %q", *conv.Title)
	}
	if len(usages) != 1 || usages[0].Purpose != llm.PurposeConversationTitle {
		t.Fatalf("usages = %v", usages)
	}
	if usages[0].TotalTokens() != 36 {
		t.Errorf("TotalTokens = %d", usages[0].TotalTokens())
	}
}

func TestSettleTitleDegradesToTruncation(t *testing.T) {
	caller := &titleCaller{generateFn: func(req llm.GenerateRequest) (*llm.Result, error) {
		return nil, errors.New("provider down")
	}}
	svc, _ := newTestService(caller)

	conv := New("conv_abc123def456abcd", "user-1")
	message := "Write a post about how we rebuilt our onboarding flow after losing three enterprise deals in a row"
	usages := svc.SettleTitle(context.Background(), conv, "", message)

	if !conv.HasTitle() {
		t.Fatal("title not settled")
	}
	if len(*conv.Title) > fallbackTitleMaxLength {
		t.Errorf("fallback title too long: %q", *conv.Title)
	}
	if !strings.HasPrefix(*conv.Title, "Write a post about") {
		t.Errorf("Title = %q, want truncated message", *conv.Title)
	}
	if len(usages) != 1 || usages[0].TotalTokens() != 0 {
		t.Fatalf("usages = %v, want one zeroed record", usages)
	}
	if usages[0].Provider != "openai" || usages[0].Model != "gpt-4o-mini" {
		t.Errorf("attribution lost: %+v", usages[0])
	}
}

func TestAppendExchange(t *testing.T) {
	svc, repo := newTestService(&titleCaller{})

	conv, _, err := svc.Ensure(context.Background(), "user-1", "")
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	// Commit order: conversation row first, then the turns.
	if err := svc.Persist(context.Background(), conv); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if conv.ID == 0 {
		t.Fatal("conversation not persisted")
	}
	if len(repo.conversations) != 1 {
		t.Errorf("conversations persisted = %d", len(repo.conversations))
	}

	userItem, assistantItem, err := svc.AppendExchange(context.Background(), conv, "generate a post", "Here is your post.", 42, "post_abc123def456abcd")
	if err != nil {
		t.Fatalf("AppendExchange failed: %v", err)
	}

	if userItem.Role != RoleUser || userItem.SequenceNumber != 0 {
		t.Errorf("user item = %+v", userItem)
	}
	if assistantItem.Role != RoleAssistant || assistantItem.SequenceNumber != 1 {
		t.Errorf("assistant item = %+v", assistantItem)
	}
	if assistantItem.PostID == nil || *assistantItem.PostID != 42 {
		t.Errorf("PostID = %v", assistantItem.PostID)
	}
	if assistantItem.PostPublicID == nil || *assistantItem.PostPublicID != "post_abc123def456abcd" {
		t.Errorf("PostPublicID = %v", assistantItem.PostPublicID)
	}
	if userItem.PostID != nil {
		t.Error("user turns must not reference a post")
	}
	if len(repo.items[conv.ID]) != 2 {
		t.Errorf("items persisted = %d", len(repo.items[conv.ID]))
	}

	// A second exchange updates the row in place and continues the sequence.
	if err := svc.Persist(context.Background(), conv); err != nil {
		t.Fatalf("second Persist failed: %v", err)
	}
	_, assistant2, err := svc.AppendExchange(context.Background(), conv, "make it shorter", "Shorter post.", 43, "post_def456abc123defa")
	if err != nil {
		t.Fatalf("second AppendExchange failed: %v", err)
	}
	if assistant2.SequenceNumber != 3 {
		t.Errorf("SequenceNumber = %d, want 3", assistant2.SequenceNumber)
	}
	if repo.updateCalls != 1 {
		t.Errorf("updateCalls = %d, want 1", repo.updateCalls)
	}
}

func TestHistoryReturnsChronologicalWindow(t *testing.T) {
	svc, repo := newTestService(&titleCaller{})

	conv := New("conv_abc123def456abcd", "user-1")
	repo.Create(context.Background(), conv)
	for i, content := range []string{"first", "second", "third", "fourth"} {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		repo.AddItems(context.Background(), conv.ID, []*Item{{
			PublicID: "msg_x", ConversationID: conv.ID, Role: role, Content: content, SequenceNumber: i,
		}})
	}

	items, err := svc.History(context.Background(), conv.ID, 2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	// Newest two, oldest first.
	if items[0].Content != "third" || items[1].Content != "fourth" {
		t.Errorf("items = %q, %q", items[0].Content, items[1].Content)
	}
}

func TestListScopedToUser(t *testing.T) {
	svc, repo := newTestService(&titleCaller{})

	repo.Create(context.Background(), New("conv_abc123def456abcd", "user-1"))
	repo.Create(context.Background(), New("conv_def456abc123defa", "user-2"))

	conversations, total, err := svc.List(context.Background(), "user-1", nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || len(conversations) != 1 {
		t.Errorf("total = %d, len = %d", total, len(conversations))
	}
	if conversations[0].UserID != "user-1" {
		t.Errorf("UserID = %q", conversations[0].UserID)
	}
}
