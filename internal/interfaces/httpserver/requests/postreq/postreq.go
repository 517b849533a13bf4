// Package postreq holds the request DTOs of the post endpoints.
package postreq

import (
	"strings"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/generation"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
)

// GenerateRequest is the body of POST /v1/posts/generate. The user identity
// always comes from the authenticated principal, never from this body.
type GenerateRequest struct {
	Message           string             `json:"message" binding:"required"`
	ConversationID    string             `json:"conversation_id,omitempty"`
	AdditionalContext string             `json:"additional_context,omitempty"`
	Options           *GenerateOptions   `json:"options,omitempty"`
	Attachments       []AttachmentInput  `json:"attachments,omitempty" binding:"omitempty,dive"`
}

// GenerateOptions are the UI-supplied generation preferences. Message wording
// extracted by the pipeline overrides them.
type GenerateOptions struct {
	Format       string `json:"format,omitempty" binding:"omitempty,post_format"`
	Tone         string `json:"tone,omitempty"`
	Length       string `json:"length,omitempty" binding:"omitempty,oneof=short medium long"`
	HashtagCount *int   `json:"hashtag_count,omitempty" binding:"omitempty,min=0,max=30"`
	SlideCount   int    `json:"slide_count,omitempty" binding:"omitempty,min=0,max=15"`
	UseSearch    bool   `json:"use_search,omitempty"`
}

// AttachmentInput references an image the model should analyse.
type AttachmentInput struct {
	Kind string `json:"kind" binding:"required,oneof=image_url"`
	URL  string `json:"url" binding:"required,url"`
}

// ToDomain maps the DTO onto a pipeline request for the given user.
func (r GenerateRequest) ToDomain(userID, requestID string) generation.Request {
	req := generation.Request{
		UserID:            userID,
		Message:           strings.TrimSpace(r.Message),
		ConversationID:    strings.TrimSpace(r.ConversationID),
		AdditionalContext: strings.TrimSpace(r.AdditionalContext),
		RequestID:         requestID,
		Options:           generation.DefaultOptions(),
	}

	if r.Options != nil {
		opts := generation.DefaultOptions()
		if r.Options.Format != "" {
			opts.Format = post.ParseFormat(r.Options.Format)
		}
		opts.Tone = strings.TrimSpace(r.Options.Tone)
		if r.Options.Length != "" {
			opts.Length = generation.Length(r.Options.Length)
		}
		if r.Options.HashtagCount != nil {
			opts.HashtagCount = *r.Options.HashtagCount
		}
		opts.SlideCount = r.Options.SlideCount
		opts.UseSearch = r.Options.UseSearch
		req.Options = opts
	}

	for _, attachment := range r.Attachments {
		req.Attachments = append(req.Attachments, llm.Attachment{
			Kind: attachment.Kind,
			URL:  attachment.URL,
		})
	}

	return req
}
