package postreq

import (
	"testing"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/generation"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
)

func TestToDomainDefaults(t *testing.T) {
	body := GenerateRequest{Message: "  write about Go  "}
	req := body.ToDomain("user_1", "req_1")

	if req.UserID != "user_1" || req.RequestID != "req_1" {
		t.Errorf("identity not carried: %q/%q", req.UserID, req.RequestID)
	}
	if req.Message != "write about Go" {
		t.Errorf("message not trimmed: %q", req.Message)
	}
	if req.Options != generation.DefaultOptions() {
		t.Errorf("options = %+v, want defaults", req.Options)
	}
	if req.ConversationID != "" || len(req.Attachments) != 0 {
		t.Errorf("unexpected conversation/attachments: %+v", req)
	}
}

func TestToDomainOptionsOverlay(t *testing.T) {
	three := 3
	body := GenerateRequest{
		Message:        "msg",
		ConversationID: " conv_abc ",
		Options: &GenerateOptions{
			Format:       "carousel",
			Tone:         " witty ",
			Length:       "long",
			HashtagCount: &three,
			SlideCount:   6,
			UseSearch:    true,
		},
	}
	req := body.ToDomain("user_1", "req_1")

	if req.ConversationID != "conv_abc" {
		t.Errorf("conversation id = %q", req.ConversationID)
	}
	if req.Options.Format != post.FormatCarousel {
		t.Errorf("format = %q", req.Options.Format)
	}
	if req.Options.Tone != "witty" {
		t.Errorf("tone = %q", req.Options.Tone)
	}
	if req.Options.Length != generation.LengthLong {
		t.Errorf("length = %q", req.Options.Length)
	}
	if req.Options.HashtagCount != 3 {
		t.Errorf("hashtag count = %d", req.Options.HashtagCount)
	}
	if req.Options.SlideCount != 6 || !req.Options.UseSearch {
		t.Errorf("options = %+v", req.Options)
	}
}

func TestToDomainZeroHashtagsIsExplicit(t *testing.T) {
	zero := 0
	body := GenerateRequest{Message: "msg", Options: &GenerateOptions{HashtagCount: &zero}}
	req := body.ToDomain("u", "r")

	if req.Options.HashtagCount != 0 {
		t.Errorf("explicit zero hashtags lost: %d", req.Options.HashtagCount)
	}
}

func TestToDomainUnsetFieldsKeepDefaults(t *testing.T) {
	body := GenerateRequest{Message: "msg", Options: &GenerateOptions{Tone: "direct"}}
	req := body.ToDomain("u", "r")

	defaults := generation.DefaultOptions()
	if req.Options.Format != defaults.Format {
		t.Errorf("format = %q, want %q", req.Options.Format, defaults.Format)
	}
	if req.Options.Length != defaults.Length {
		t.Errorf("length = %q, want %q", req.Options.Length, defaults.Length)
	}
	if req.Options.HashtagCount != defaults.HashtagCount {
		t.Errorf("hashtag count = %d, want %d", req.Options.HashtagCount, defaults.HashtagCount)
	}
}

func TestToDomainAttachments(t *testing.T) {
	body := GenerateRequest{
		Message: "msg",
		Attachments: []AttachmentInput{
			{Kind: "image_url", URL: "https://example.com/a.png"},
			{Kind: "image_url", URL: "https://example.com/b.png"},
		},
	}
	req := body.ToDomain("u", "r")

	if len(req.Attachments) != 2 {
		t.Fatalf("attachments = %d, want 2", len(req.Attachments))
	}
	if req.Attachments[0].Kind != "image_url" || req.Attachments[1].URL != "https://example.com/b.png" {
		t.Errorf("attachments mapped wrong: %+v", req.Attachments)
	}
}
