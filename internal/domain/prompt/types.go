package prompt

import (
	"context"
	"strings"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/profile"
)

// Input carries everything one assembly run may draw on. The generation
// service builds it once per request; modules read it and never write it.
type Input struct {
	Profile *profile.Profile
	Message string

	Format       post.Format
	Tone         string
	Length       string
	HashtagCount int
	SlideCount   int
	UseSearch    bool

	// OpenEnded marks requests that name no topic of their own. RecentTopics
	// lists titles from the user's last 24 hours of posts the model should
	// avoid repeating.
	OpenEnded    bool
	RecentTopics []string

	// Refinement marks the request as modifying the previous turn's artifact,
	// whose full text rides along in PreviousArtifact.
	Refinement       bool
	PreviousArtifact string

	// AdditionalContext is caller-supplied override context. It outranks
	// every other instruction block.
	AdditionalContext string

	History     []llm.Message
	Attachments []llm.Attachment
}

// AssembledPrompt is the finished provider-ready prompt. Created once per
// request; never mutated afterwards.
type AssembledPrompt struct {
	SystemPrompt string
	UserMessage  string
	Format       post.Format
	History      []llm.Message
	Attachments  []llm.Attachment
}

// Builder accumulates system-prompt sections and user-message rewrites while
// the module chain runs.
type Builder struct {
	sections    []string
	userMessage string
}

// AddSection appends one system-prompt block. Empty blocks are dropped.
func (b *Builder) AddSection(text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}
	b.sections = append(b.sections, trimmed)
}

// SystemPrompt joins the accumulated blocks in registration order.
func (b *Builder) SystemPrompt() string {
	return strings.Join(b.sections, "\n\n")
}

// UserMessage returns the current user message text.
func (b *Builder) UserMessage() string {
	return b.userMessage
}

// SetUserMessage replaces the user message text.
func (b *Builder) SetUserMessage(message string) {
	b.userMessage = message
}

// Module represents one conditional prompt block.
type Module interface {
	// Name returns the module identifier.
	Name() string

	// ShouldApply determines if this module should be applied for this input.
	ShouldApply(ctx context.Context, in *Input) bool

	// Apply contributes the module's block to the builder.
	Apply(ctx context.Context, in *Input, b *Builder) error
}

// Assembler builds the provider prompt by applying modules in fixed
// precedence order.
type Assembler interface {
	Assemble(ctx context.Context, in *Input) (*AssembledPrompt, error)
}
