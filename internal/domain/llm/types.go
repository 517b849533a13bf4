// Package llm defines the provider-agnostic text-generation contract used by
// the generation pipeline. Implementations live in infrastructure/inference.
package llm

import "context"

// Purpose tags why a provider call was made. Every usage record carries one so
// cost can be audited per call type.
type Purpose string

const (
	PurposePostGeneration    Purpose = "post_generation"
	PurposeConversationTitle Purpose = "conversation_title"
	PurposeImagePrompt       Purpose = "image_prompt"
	PurposeCarouselPrompts   Purpose = "carousel_prompts"
)

// Message roles, OpenAI-compatible.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of provider-visible conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Attachment references an input the provider should analyse alongside the
// user message, currently image URLs only.
type Attachment struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

const AttachmentImageURL = "image_url"

// Usage reports the token accounting of a single provider call. TotalTokens is
// always derived from the two stored counts, never carried separately.
type Usage struct {
	Provider     string  `json:"provider"`
	Model        string  `json:"model"`
	Purpose      Purpose `json:"purpose"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
}

// TotalTokens returns the derived total for this call.
func (u Usage) TotalTokens() int {
	return u.InputTokens + u.OutputTokens
}

// GenerateRequest describes one text-generation call.
type GenerateRequest struct {
	Model        string
	SystemPrompt string
	UserMessage  string
	History      []Message
	Attachments  []Attachment
	Temperature  *float64
	UseSearch    bool
}

// Result carries the raw provider text plus the call's usage.
type Result struct {
	Text  string
	Usage Usage
}

// Gateway abstracts one text-generation provider. Implementations must fill
// Usage.Provider and Usage.Model on success and should report token counts as
// returned by the provider, zeroed when the provider omits them.
type Gateway interface {
	Name() string
	Generate(ctx context.Context, req GenerateRequest) (*Result, error)
}

// Caller issues purpose-routed provider calls. The implementation resolves the
// configured provider/model for the purpose, applies the route's temperature
// when the request does not set one, and tags the resulting usage.
type Caller interface {
	GenerateFor(ctx context.Context, purpose Purpose, req GenerateRequest) (*Result, error)
	// RouteFor exposes the provider/model a purpose resolves to, so degraded
	// paths can attribute zeroed usage records to the right provider.
	RouteFor(purpose Purpose) (provider string, model string, ok bool)
}
