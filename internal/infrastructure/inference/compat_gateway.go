package inference

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/config"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
	httpclients "github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/httpclients"
)

// CompatGateway speaks the OpenAI chat-completions wire shape against any
// compatible endpoint (Gemini's OpenAI surface, self-hosted runtimes).
type CompatGateway struct {
	name   string
	client *resty.Client
}

func NewCompatGateway(entry config.ProviderEntry, timeout time.Duration) *CompatGateway {
	client := httpclients.NewClient(entry.Name)
	client.SetBaseURL(strings.TrimRight(entry.BaseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Content-Type", "application/json")
	if key := strings.TrimSpace(entry.APIKey); key != "" && !strings.EqualFold(key, "none") {
		client.SetHeader("Authorization", "Bearer "+key)
	}
	return &CompatGateway{name: entry.Name, client: client}
}

func (g *CompatGateway) Name() string {
	return g.name
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	// WebSearchOptions enables grounded generation on endpoints that support
	// it; endpoints that do not simply ignore the field.
	WebSearchOptions *struct{} `json:"web_search_options,omitempty"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (g *CompatGateway) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.Result, error) {
	messages := make([]chatMessage, 0, len(req.History)+2)
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: llm.RoleSystem, Content: req.SystemPrompt})
	}
	for _, turn := range req.History {
		messages = append(messages, chatMessage{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, compatUserMessage(req))

	body := chatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
	}
	if req.UseSearch {
		body.WebSearchOptions = &struct{}{}
	}

	var completion chatCompletionResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&completion).
		SetError(&completion).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", g.name, err)
	}
	if resp.IsError() {
		if completion.Error != nil && completion.Error.Message != "" {
			return nil, fmt.Errorf("provider %s: %s (%s)", g.name, completion.Error.Message, resp.Status())
		}
		return nil, fmt.Errorf("provider %s: unexpected status %s", g.name, resp.Status())
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("provider %s returned no choices", g.name)
	}

	model := completion.Model
	if model == "" {
		model = req.Model
	}

	return &llm.Result{
		Text: completion.Choices[0].Message.Content,
		Usage: llm.Usage{
			Provider:     g.name,
			Model:        model,
			InputTokens:  completion.Usage.PromptTokens,
			OutputTokens: completion.Usage.CompletionTokens,
		},
	}, nil
}

func compatUserMessage(req llm.GenerateRequest) chatMessage {
	if len(req.Attachments) == 0 {
		return chatMessage{Role: llm.RoleUser, Content: req.UserMessage}
	}

	parts := make([]contentPart, 0, len(req.Attachments)+1)
	parts = append(parts, contentPart{Type: "text", Text: req.UserMessage})
	for _, attachment := range req.Attachments {
		if attachment.Kind != llm.AttachmentImageURL {
			continue
		}
		parts = append(parts, contentPart{Type: "image_url", ImageURL: &imageURL{URL: attachment.URL}})
	}
	return chatMessage{Role: llm.RoleUser, Content: parts}
}
