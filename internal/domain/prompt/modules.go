package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
)

const (
	profileContextModuleName     = "profile_context"
	contextOverrideModuleName    = "context_override"
	topicFreshnessModuleName     = "topic_freshness"
	refinementModuleName         = "refinement"
	styleDirectivesModuleName    = "style_directives"
	searchAugmentationModuleName = "search_augmentation"
	formatInstructionsModuleName = "format_instructions"
	responseContractModuleName   = "response_contract"
)

const basePersona = "You are a LinkedIn content strategist. You write posts that sound like the author, not like marketing copy."

// ProfileContextModule contributes the author-context block. The compact
// representation is used whenever structured profile fields are available;
// the verbose legacy prose form covers free-text-only profiles.
type ProfileContextModule struct{}

// NewProfileContextModule creates the profile context module.
func NewProfileContextModule() *ProfileContextModule {
	return &ProfileContextModule{}
}

// Name returns the module identifier.
func (m *ProfileContextModule) Name() string {
	return profileContextModuleName
}

// ShouldApply always applies; the persona line is emitted even without a
// profile.
func (m *ProfileContextModule) ShouldApply(ctx context.Context, in *Input) bool {
	return true
}

// Apply writes the persona plus the compact or verbose author context.
func (m *ProfileContextModule) Apply(ctx context.Context, in *Input, b *Builder) error {
	p := in.Profile
	if p == nil {
		b.AddSection(basePersona)
		return nil
	}

	if p.HasStructuredContext() {
		b.AddSection(compactProfileBlock(in))
		return nil
	}

	b.AddSection(verboseProfileBlock(in))
	return nil
}

func compactProfileBlock(in *Input) string {
	p := in.Profile

	var builder strings.Builder
	builder.WriteString(basePersona)
	builder.WriteString("\n\nAuthor context:")

	writeContextLine(&builder, "Name", p.DisplayName())
	writeContextLine(&builder, "Headline", p.Headline)
	writeContextLine(&builder, "Company", p.Company)
	writeContextLine(&builder, "Industry", p.Industry)
	writeContextLine(&builder, "Audience", p.TargetAudience)
	writeContextLine(&builder, "Goals", p.Goals)
	writeContextLine(&builder, "Topics", strings.Join(p.Topics, ", "))
	writeContextLine(&builder, "Preferred tone", p.PreferredTone)

	return builder.String()
}

func writeContextLine(builder *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	builder.WriteString("\n- ")
	builder.WriteString(label)
	builder.WriteString(": ")
	builder.WriteString(value)
}

func verboseProfileBlock(in *Input) string {
	p := in.Profile

	var builder strings.Builder
	builder.WriteString("You are a LinkedIn content strategist")
	if name := p.DisplayName(); name != "" {
		builder.WriteString(" writing on behalf of ")
		builder.WriteString(name)
		if p.Headline != "" {
			builder.WriteString(", ")
			builder.WriteString(p.Headline)
		}
		if p.Company != "" {
			builder.WriteString(" at ")
			builder.WriteString(p.Company)
		}
	}
	builder.WriteString(". Posts must sound like the author, not like marketing copy.")

	if about := strings.TrimSpace(p.AboutYou); about != "" {
		builder.WriteString("\n\nAbout the author: ")
		builder.WriteString(about)
	}

	return builder.String()
}

// ContextOverrideModule injects caller-supplied override context and marks it
// as outranking every other instruction block.
type ContextOverrideModule struct{}

// NewContextOverrideModule creates the context override module.
func NewContextOverrideModule() *ContextOverrideModule {
	return &ContextOverrideModule{}
}

// Name returns the module identifier.
func (m *ContextOverrideModule) Name() string {
	return contextOverrideModuleName
}

// ShouldApply applies only when override context was supplied.
func (m *ContextOverrideModule) ShouldApply(ctx context.Context, in *Input) bool {
	return strings.TrimSpace(in.AdditionalContext) != ""
}

// Apply writes the override block with its explicit priority statement.
func (m *ContextOverrideModule) Apply(ctx context.Context, in *Input, b *Builder) error {
	var builder strings.Builder
	builder.WriteString("Additional context:\n")
	builder.WriteString(strings.TrimSpace(in.AdditionalContext))
	builder.WriteString("\n\n")
	builder.WriteString("Context priority: the additional context above has the highest priority. ")
	builder.WriteString("If any profile detail, style preference, or other instruction conflicts with it, ")
	builder.WriteString("you must follow the additional context.")

	b.AddSection(builder.String())
	return nil
}

// TopicFreshnessModule handles open-ended requests: the model picks the
// topic, steering clear of recently covered ones. Suppressed while refining;
// a refinement stays on the previous topic by definition.
type TopicFreshnessModule struct{}

// NewTopicFreshnessModule creates the topic freshness module.
func NewTopicFreshnessModule() *TopicFreshnessModule {
	return &TopicFreshnessModule{}
}

// Name returns the module identifier.
func (m *TopicFreshnessModule) Name() string {
	return topicFreshnessModuleName
}

// ShouldApply applies to open-ended requests outside of refinement.
func (m *TopicFreshnessModule) ShouldApply(ctx context.Context, in *Input) bool {
	return in.OpenEnded && !in.Refinement
}

// Apply writes the pick-a-fresh-topic instruction with the recent-topics
// list.
func (m *TopicFreshnessModule) Apply(ctx context.Context, in *Input, b *Builder) error {
	var builder strings.Builder
	builder.WriteString("The request names no topic. Pick one fresh, specific topic that fits the author's profile and audience.")

	topics := make([]string, 0, len(in.RecentTopics))
	for _, topic := range in.RecentTopics {
		if trimmed := strings.TrimSpace(topic); trimmed != "" {
			topics = append(topics, trimmed)
		}
	}

	if len(topics) == 0 {
		builder.WriteString(" Choose something the author has not posted about recently.")
	} else {
		builder.WriteString("\nDo not reuse any of these recently covered topics:")
		for _, topic := range topics {
			builder.WriteString("\n- ")
			builder.WriteString(topic)
		}
	}

	log.Debug().
		Int("recent_topics", len(topics)).
		Msg("topic freshness block applied")

	b.AddSection(builder.String())
	return nil
}

// RefinementModule carries the previous artifact into the prompt so the model
// edits it instead of starting over.
type RefinementModule struct{}

// NewRefinementModule creates the refinement module.
func NewRefinementModule() *RefinementModule {
	return &RefinementModule{}
}

// Name returns the module identifier.
func (m *RefinementModule) Name() string {
	return refinementModuleName
}

// ShouldApply applies when refinement was detected and a previous artifact
// exists to refine.
func (m *RefinementModule) ShouldApply(ctx context.Context, in *Input) bool {
	return in.Refinement && strings.TrimSpace(in.PreviousArtifact) != ""
}

// Apply writes the edit-the-previous-post block with the full artifact text.
func (m *RefinementModule) Apply(ctx context.Context, in *Input, b *Builder) error {
	var builder strings.Builder
	builder.WriteString("The user is refining their previous post, not asking for a new one. ")
	builder.WriteString("Apply the requested changes to the post below and keep everything else intact.")
	builder.WriteString("\n\nPrevious post:\n---\n")
	builder.WriteString(strings.TrimSpace(in.PreviousArtifact))
	builder.WriteString("\n---")

	log.Debug().
		Int("previous_artifact_length", len(in.PreviousArtifact)).
		Msg("refinement block applied")

	b.AddSection(builder.String())
	return nil
}

// StyleDirectivesModule emits length, tone and hashtag-count directives.
type StyleDirectivesModule struct{}

// NewStyleDirectivesModule creates the style directives module.
func NewStyleDirectivesModule() *StyleDirectivesModule {
	return &StyleDirectivesModule{}
}

// Name returns the module identifier.
func (m *StyleDirectivesModule) Name() string {
	return styleDirectivesModuleName
}

// ShouldApply always applies; the hashtag directive alone is always present.
func (m *StyleDirectivesModule) ShouldApply(ctx context.Context, in *Input) bool {
	return true
}

// Apply writes the style directive list.
func (m *StyleDirectivesModule) Apply(ctx context.Context, in *Input, b *Builder) error {
	directives := make([]string, 0, 3)

	switch in.Length {
	case "short":
		directives = append(directives, "Keep it short: 2 to 4 punchy sentences.")
	case "medium":
		directives = append(directives, "Aim for a medium-length post of roughly 80 to 150 words.")
	case "long":
		directives = append(directives, "Write a detailed post of 200 to 350 words.")
	}

	if tone := strings.TrimSpace(in.Tone); tone != "" {
		directives = append(directives, fmt.Sprintf("Requested tone: %s.", tone))
	}

	if in.HashtagCount > 0 {
		directives = append(directives, fmt.Sprintf("Provide exactly %d relevant hashtags in metadata.hashtags.", in.HashtagCount))
	} else {
		directives = append(directives, "Do not include any hashtags.")
	}

	var builder strings.Builder
	builder.WriteString("Style directives:")
	for _, directive := range directives {
		builder.WriteString("\n- ")
		builder.WriteString(directive)
	}

	b.AddSection(builder.String())
	return nil
}

// SearchAugmentationModule rewrites the user message to ask for current
// information when the search flag is on.
type SearchAugmentationModule struct{}

// NewSearchAugmentationModule creates the search augmentation module.
func NewSearchAugmentationModule() *SearchAugmentationModule {
	return &SearchAugmentationModule{}
}

// Name returns the module identifier.
func (m *SearchAugmentationModule) Name() string {
	return searchAugmentationModuleName
}

// ShouldApply applies when the request asked for search augmentation.
func (m *SearchAugmentationModule) ShouldApply(ctx context.Context, in *Input) bool {
	return in.UseSearch
}

// Apply appends the latest-information request to the user message rather
// than the system prompt, so providers with native search pick it up as part
// of the query.
func (m *SearchAugmentationModule) Apply(ctx context.Context, in *Input, b *Builder) error {
	message := b.UserMessage()
	if message == "" {
		return nil
	}
	b.SetUserMessage(message + "\n\nInclude the latest developments and current numbers on this topic where they strengthen the post.")
	return nil
}

// FormatInstructionsModule appends instructions for the resolved output
// format.
type FormatInstructionsModule struct{}

// NewFormatInstructionsModule creates the format instructions module.
func NewFormatInstructionsModule() *FormatInstructionsModule {
	return &FormatInstructionsModule{}
}

// Name returns the module identifier.
func (m *FormatInstructionsModule) Name() string {
	return formatInstructionsModuleName
}

// ShouldApply always applies; auto gets the choose-a-format instruction.
func (m *FormatInstructionsModule) ShouldApply(ctx context.Context, in *Input) bool {
	return true
}

// Apply writes the per-format instruction block.
func (m *FormatInstructionsModule) Apply(ctx context.Context, in *Input, b *Builder) error {
	switch in.Format {
	case post.FormatText:
		b.AddSection("Write the post as plain text ready to paste into LinkedIn: short paragraphs with line breaks between ideas, no markdown headings.")
	case post.FormatImage:
		b.AddSection("This post ships with one generated image. Alongside the post text, produce image_prompt: a concrete visual description for an image generator. Make it photographic when the post names specific tools or platforms, illustrated or cartoon-style otherwise.")
	case post.FormatCarousel:
		var builder strings.Builder
		builder.WriteString("This post is a carousel of slides. post_content is the caption. Produce image_prompts with one visual description per slide, all sharing one consistent visual theme.")
		if in.SlideCount > 0 {
			fmt.Fprintf(&builder, " The carousel has exactly %d slides.", in.SlideCount)
		} else {
			builder.WriteString(" Choose a slide count between 4 and 15 that fits the content.")
		}
		b.AddSection(builder.String())
	case post.FormatVideoScript:
		b.AddSection("Write post_content as a spoken video script: open with a hook, introduce the topic, walk through the main points, summarize, and end with a call to action. Write it to be read aloud.")
	default:
		b.AddSection("Choose the format that serves the request best: text, image, carousel or video_script. Report your choice in format_type.")
	}
	return nil
}

const contractPreamble = "Respond with a single JSON object and nothing else. No markdown fences, no commentary before or after. post_content must be plain text, never JSON."

const (
	textContractShape        = `{"post_content": "<the post text>", "format_type": "text", "image_prompt": null, "metadata": {"hashtags": ["#..."]}}`
	imageContractShape       = `{"post_content": "<the post text>", "format_type": "image", "image_prompt": "<visual description>", "metadata": {"hashtags": ["#..."]}}`
	carouselContractShape    = `{"post_content": "<the caption text>", "format_type": "carousel", "image_prompts": ["<slide 1 visual>", "<slide 2 visual>"], "metadata": {"hashtags": ["#..."]}}`
	videoScriptContractShape = `{"post_content": "<the full script>", "format_type": "video_script", "image_prompt": null, "metadata": {"hashtags": ["#..."]}}`
)

// ResponseContractModule appends the JSON response shape. Registered last so
// the shape is the most recent instruction the model reads.
type ResponseContractModule struct{}

// NewResponseContractModule creates the response contract module.
func NewResponseContractModule() *ResponseContractModule {
	return &ResponseContractModule{}
}

// Name returns the module identifier.
func (m *ResponseContractModule) Name() string {
	return responseContractModuleName
}

// ShouldApply always applies.
func (m *ResponseContractModule) ShouldApply(ctx context.Context, in *Input) bool {
	return true
}

// Apply writes the contract block for the resolved format, or all shapes for
// auto.
func (m *ResponseContractModule) Apply(ctx context.Context, in *Input, b *Builder) error {
	var builder strings.Builder
	builder.WriteString(contractPreamble)

	switch in.Format {
	case post.FormatText:
		builder.WriteString("\n\nResponse shape:\n")
		builder.WriteString(textContractShape)
	case post.FormatImage:
		builder.WriteString("\n\nResponse shape:\n")
		builder.WriteString(imageContractShape)
	case post.FormatCarousel:
		builder.WriteString("\n\nResponse shape:\n")
		builder.WriteString(carouselContractShape)
	case post.FormatVideoScript:
		builder.WriteString("\n\nResponse shape:\n")
		builder.WriteString(videoScriptContractShape)
	default:
		builder.WriteString("\n\nResponse shape by chosen format:\n")
		builder.WriteString("text: ")
		builder.WriteString(textContractShape)
		builder.WriteString("\nimage: ")
		builder.WriteString(imageContractShape)
		builder.WriteString("\ncarousel: ")
		builder.WriteString(carouselContractShape)
		builder.WriteString("\nvideo_script: ")
		builder.WriteString(videoScriptContractShape)
	}

	b.AddSection(builder.String())
	return nil
}
