package inference

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/config"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
)

// OpenAIGateway serves generation calls through the official OpenAI SDK.
type OpenAIGateway struct {
	name   string
	client *openai.Client
}

func NewOpenAIGateway(entry config.ProviderEntry, timeout time.Duration) *OpenAIGateway {
	clientConfig := openai.DefaultConfig(entry.APIKey)
	if entry.BaseURL != "" {
		clientConfig.BaseURL = entry.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIGateway{
		name:   entry.Name,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (g *OpenAIGateway) Name() string {
	return g.name
}

// Generate issues one chat completion. Attachments ride along as image-url
// content parts on the user turn.
func (g *OpenAIGateway) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.Result, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	for _, turn := range req.History {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	messages = append(messages, userMessage(req))

	completionReq := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
	}
	if req.Temperature != nil {
		completionReq.Temperature = float32(*req.Temperature)
	}

	resp, err := g.client.CreateChatCompletion(ctx, completionReq)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", g.name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("provider %s returned no choices", g.name)
	}

	model := resp.Model
	if model == "" {
		model = req.Model
	}

	return &llm.Result{
		Text: resp.Choices[0].Message.Content,
		Usage: llm.Usage{
			Provider:     g.name,
			Model:        model,
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

func userMessage(req llm.GenerateRequest) openai.ChatCompletionMessage {
	if len(req.Attachments) == 0 {
		return openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: req.UserMessage,
		}
	}

	parts := make([]openai.ChatMessagePart, 0, len(req.Attachments)+1)
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: req.UserMessage,
	})
	for _, attachment := range req.Attachments {
		if attachment.Kind != llm.AttachmentImageURL {
			continue
		}
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: attachment.URL},
		})
	}
	return openai.ChatCompletionMessage{
		Role:         openai.ChatMessageRoleUser,
		MultiContent: parts,
	}
}
