package prompt

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/profile"
)

func structuredProfile() *profile.Profile {
	return &profile.Profile{
		UserID:         "user-1",
		FullName:       "Dana Fields",
		Headline:       "VP Engineering",
		Industry:       "Developer tooling",
		TargetAudience: "Engineering leaders",
		Goals:          "Grow an audience of hiring managers",
		Topics:         []string{"platform teams", "hiring"},
		PreferredTone:  "direct",
	}
}

func TestProfileContextModule(t *testing.T) {
	module := NewProfileContextModule()
	ctx := context.Background()

	t.Run("compact form with structured profile", func(t *testing.T) {
		in := &Input{Profile: structuredProfile()}
		b := &Builder{}

		if err := module.Apply(ctx, in, b); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}

		got := b.SystemPrompt()
		if !strings.Contains(got, "Author context:") {
			t.Errorf("compact block missing, got:\n%s", got)
		}
		if !strings.Contains(got, "- Industry: Developer tooling") {
			t.Errorf("industry line missing, got:\n%s", got)
		}
		if !strings.Contains(got, "- Topics: platform teams, hiring") {
			t.Errorf("topics line missing, got:\n%s", got)
		}
	})

	t.Run("verbose form without structured fields", func(t *testing.T) {
		in := &Input{Profile: &profile.Profile{
			UserID:   "user-1",
			FullName: "Dana Fields",
			AboutYou: "Former founder, writes about scaling teams.",
		}}
		b := &Builder{}

		if err := module.Apply(ctx, in, b); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}

		got := b.SystemPrompt()
		if strings.Contains(got, "Author context:") {
			t.Errorf("expected verbose form, got compact:\n%s", got)
		}
		if !strings.Contains(got, "writing on behalf of Dana Fields") {
			t.Errorf("author name missing, got:\n%s", got)
		}
		if !strings.Contains(got, "Former founder, writes about scaling teams.") {
			t.Errorf("about text missing, got:\n%s", got)
		}
	})

	t.Run("nil profile yields persona only", func(t *testing.T) {
		b := &Builder{}
		if err := module.Apply(ctx, &Input{}, b); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if b.SystemPrompt() != basePersona {
			t.Errorf("expected bare persona, got:\n%s", b.SystemPrompt())
		}
	})
}

func TestTopicFreshnessModule(t *testing.T) {
	module := NewTopicFreshnessModule()
	ctx := context.Background()

	tests := []struct {
		name        string
		in          *Input
		shouldApply bool
	}{
		{
			name:        "open ended request",
			in:          &Input{OpenEnded: true},
			shouldApply: true,
		},
		{
			name:        "refinement suppresses freshness",
			in:          &Input{OpenEnded: true, Refinement: true},
			shouldApply: false,
		},
		{
			name:        "topic named",
			in:          &Input{OpenEnded: false},
			shouldApply: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := module.ShouldApply(ctx, tt.in); got != tt.shouldApply {
				t.Errorf("ShouldApply = %v, want %v", got, tt.shouldApply)
			}
		})
	}

	t.Run("recent topics listed", func(t *testing.T) {
		in := &Input{OpenEnded: true, RecentTopics: []string{"Hiring senior engineers", "Platform team rituals"}}
		b := &Builder{}
		if err := module.Apply(ctx, in, b); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		got := b.SystemPrompt()
		if !strings.Contains(got, "- Hiring senior engineers") || !strings.Contains(got, "- Platform team rituals") {
			t.Errorf("recent topics missing, got:\n%s", got)
		}
	})
}

func TestRefinementModule(t *testing.T) {
	module := NewRefinementModule()
	ctx := context.Background()

	if module.ShouldApply(ctx, &Input{Refinement: true}) {
		t.Error("should not apply without a previous artifact")
	}

	in := &Input{Refinement: true, PreviousArtifact: "Original post text."}
	if !module.ShouldApply(ctx, in) {
		t.Fatal("should apply with refinement and previous artifact")
	}

	b := &Builder{}
	if err := module.Apply(ctx, in, b); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	got := b.SystemPrompt()
	if !strings.Contains(got, "Original post text.") {
		t.Errorf("previous artifact missing, got:\n%s", got)
	}
	if !strings.Contains(got, "refining their previous post") {
		t.Errorf("refinement instruction missing, got:\n%s", got)
	}
}

func TestStyleDirectivesModule(t *testing.T) {
	module := NewStyleDirectivesModule()
	ctx := context.Background()

	tests := []struct {
		name     string
		in       *Input
		contains []string
		excludes []string
	}{
		{
			name:     "short with hashtags",
			in:       &Input{Length: "short", HashtagCount: 3},
			contains: []string{"Keep it short", "exactly 3 relevant hashtags"},
		},
		{
			name:     "zero hashtags",
			in:       &Input{Length: "medium", HashtagCount: 0},
			contains: []string{"Do not include any hashtags."},
			excludes: []string{"relevant hashtags in metadata.hashtags"},
		},
		{
			name:     "tone requested",
			in:       &Input{Length: "long", Tone: "contrarian", HashtagCount: 4},
			contains: []string{"Requested tone: contrarian."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Builder{}
			if err := module.Apply(ctx, tt.in, b); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			got := b.SystemPrompt()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("missing %q in:\n%s", want, got)
				}
			}
			for _, not := range tt.excludes {
				if strings.Contains(got, not) {
					t.Errorf("unexpected %q in:\n%s", not, got)
				}
			}
		})
	}
}

func TestFormatInstructionsModule(t *testing.T) {
	module := NewFormatInstructionsModule()
	ctx := context.Background()

	tests := []struct {
		name     string
		in       *Input
		contains string
	}{
		{name: "text", in: &Input{Format: post.FormatText}, contains: "plain text ready to paste"},
		{name: "image", in: &Input{Format: post.FormatImage}, contains: "image_prompt"},
		{name: "carousel with count", in: &Input{Format: post.FormatCarousel, SlideCount: 6}, contains: "exactly 6 slides"},
		{name: "carousel without count", in: &Input{Format: post.FormatCarousel}, contains: "between 4 and 15"},
		{name: "video script", in: &Input{Format: post.FormatVideoScript}, contains: "spoken video script"},
		{name: "auto", in: &Input{Format: post.FormatAuto}, contains: "Report your choice in format_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Builder{}
			if err := module.Apply(ctx, tt.in, b); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if !strings.Contains(b.SystemPrompt(), tt.contains) {
				t.Errorf("missing %q in:\n%s", tt.contains, b.SystemPrompt())
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	assembler := NewAssembler(zerolog.Nop())
	ctx := context.Background()

	in := &Input{
		Profile:           structuredProfile(),
		Message:           "Write about onboarding engineers",
		Format:            post.FormatText,
		Length:            "medium",
		HashtagCount:      3,
		AdditionalContext: "The company just closed a Series B.",
		History: []llm.Message{
			{Role: llm.RoleUser, Content: "earlier message"},
		},
	}

	assembled, err := assembler.Assemble(ctx, in)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	system := assembled.SystemPrompt
	if !strings.Contains(system, "Author context:") {
		t.Error("profile context missing from system prompt")
	}
	if !strings.Contains(system, "Series B") {
		t.Error("additional context missing from system prompt")
	}
	if !strings.Contains(system, "Context priority:") {
		t.Error("override priority statement missing")
	}
	if !strings.Contains(system, `"format_type": "text"`) {
		t.Error("response contract missing")
	}

	// Contract must be the last block so it is the most recent instruction.
	if !strings.HasSuffix(system, textContractShape) {
		t.Errorf("response contract is not the final block:\n%s", system)
	}

	if assembled.UserMessage != "Write about onboarding engineers" {
		t.Errorf("user message = %q", assembled.UserMessage)
	}
	if len(assembled.History) != 1 || assembled.History[0].Content != "earlier message" {
		t.Errorf("history snapshot = %+v", assembled.History)
	}
}

func TestAssembleSearchRewritesUserMessage(t *testing.T) {
	assembler := NewAssembler(zerolog.Nop())

	in := &Input{
		Message:   "Post about AI coding assistants",
		Format:    post.FormatText,
		UseSearch: true,
	}

	assembled, err := assembler.Assemble(context.Background(), in)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if !strings.HasPrefix(assembled.UserMessage, "Post about AI coding assistants") {
		t.Errorf("original message lost: %q", assembled.UserMessage)
	}
	if !strings.Contains(assembled.UserMessage, "latest developments") {
		t.Errorf("search augmentation missing: %q", assembled.UserMessage)
	}
}

func TestAssembleHistoryIsSnapshot(t *testing.T) {
	assembler := NewAssembler(zerolog.Nop())

	history := []llm.Message{{Role: llm.RoleUser, Content: "first"}}
	in := &Input{Message: "hello", Format: post.FormatText, History: history}

	assembled, err := assembler.Assemble(context.Background(), in)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	history[0].Content = "mutated"
	if assembled.History[0].Content != "first" {
		t.Error("assembled history shares backing array with input")
	}
}
