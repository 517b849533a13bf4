package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
)

// Placeholder prompts used when an auxiliary call fails. The post itself is
// fine; only the visual falls back to something generic.
const (
	placeholderImagePrompt = "A clean, modern illustration that captures the post's main theme. Professional color palette, no text in the image."
	placeholderSlidePrompt = "A minimalist slide visual matching the carousel's theme. Consistent flat illustration style, no text in the image."
)

// Complete fills per-format gaps after content is finalized: a missing image
// prompt for IMAGE, missing slide prompts for CAROUSEL. Auxiliary failures
// degrade to placeholders with a zeroed usage record attributed to the routed
// provider; they never fail the request. Returned usages cover the auxiliary
// calls made here.
func (r *Reconciler) Complete(ctx context.Context, artifact *post.Artifact, opts Options) []llm.Usage {
	switch artifact.Format {
	case post.FormatImage:
		return r.completeImage(ctx, artifact)
	case post.FormatCarousel:
		return r.completeCarousel(ctx, artifact, opts)
	}
	return nil
}

func (r *Reconciler) completeImage(ctx context.Context, artifact *post.Artifact) []llm.Usage {
	if artifact.HasImagePrompt() {
		return nil
	}

	req := llm.GenerateRequest{
		SystemPrompt: "You write prompts for an image generator. Respond with the description only, no preamble.",
		UserMessage: fmt.Sprintf(
			"Describe one concrete visual for the LinkedIn post below. Make it photographic if the post names specific tools or platforms, illustrated or cartoon-style otherwise.\n\nPost:\n%s",
			artifact.PostContent,
		),
	}

	result, err := r.caller.GenerateFor(ctx, llm.PurposeImagePrompt, req)
	if err != nil {
		r.log.Warn().Err(err).Msg("image prompt call failed, using placeholder")
		prompt := placeholderImagePrompt
		artifact.ImagePrompt = &prompt
		return []llm.Usage{r.zeroedUsage(llm.PurposeImagePrompt)}
	}

	prompt := stripCodeFences(result.Text)
	if prompt == "" {
		prompt = placeholderImagePrompt
	}
	artifact.ImagePrompt = &prompt
	return []llm.Usage{result.Usage}
}

func (r *Reconciler) completeCarousel(ctx context.Context, artifact *post.Artifact, opts Options) []llm.Usage {
	if len(artifact.ImagePrompts) > 0 {
		artifact.ImagePrompts = clampSlidePrompts(artifact.ImagePrompts)
		return nil
	}

	target := opts.SlideCount
	if target <= 0 {
		target = estimateSlideCount(artifact.PostContent)
	}
	target = clampSlideCount(target)

	req := llm.GenerateRequest{
		SystemPrompt: "You write prompts for an image generator. Respond with a JSON array of strings and nothing else.",
		UserMessage: fmt.Sprintf(
			"Write exactly %d image prompts, one per slide, for a LinkedIn carousel based on the post below. Keep one consistent visual theme across every slide.\n\nPost:\n%s",
			target, artifact.PostContent,
		),
	}

	result, err := r.caller.GenerateFor(ctx, llm.PurposeCarouselPrompts, req)
	if err != nil {
		r.log.Warn().Err(err).Int("target", target).Msg("carousel prompts call failed, using placeholders")
		artifact.ImagePrompts = repeatPrompt(placeholderSlidePrompt, target)
		return []llm.Usage{r.zeroedUsage(llm.PurposeCarouselPrompts)}
	}

	prompts := parseSlidePrompts(result.Text)
	if len(prompts) == 0 {
		prompts = repeatPrompt(placeholderSlidePrompt, target)
	}
	artifact.ImagePrompts = clampSlidePrompts(prompts)
	return []llm.Usage{result.Usage}
}

// zeroedUsage attributes a degraded call to the provider it would have hit,
// with zero token counts.
func (r *Reconciler) zeroedUsage(purpose llm.Purpose) llm.Usage {
	provider, model, _ := r.caller.RouteFor(purpose)
	return llm.Usage{Provider: provider, Model: model, Purpose: purpose}
}

var (
	slidePrefixPattern = regexp.MustCompile(`(?i)^\s*slide\s*\d+\s*:\s*`)
	listPrefixPattern  = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)
	bareNumberPattern  = regexp.MustCompile(`^\d+$`)
)

// parseSlidePrompts reads the auxiliary response as a JSON array of strings,
// falling back to splitting non-empty lines with slide and list markers
// stripped.
func parseSlidePrompts(raw string) []string {
	cleaned := stripCodeFences(raw)

	var parsed []string
	if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil {
		out := make([]string, 0, len(parsed))
		for _, prompt := range parsed {
			if trimmed := strings.TrimSpace(prompt); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	var out []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = slidePrefixPattern.ReplaceAllString(line, "")
		line = listPrefixPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" || bareNumberPattern.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// clampSlidePrompts enforces the slide bounds: under-delivery pads by
// repeating the last prompt up to the minimum, overshoot truncates to the
// maximum. Excess is never an error.
func clampSlidePrompts(prompts []string) []string {
	if len(prompts) == 0 {
		return repeatPrompt(placeholderSlidePrompt, post.CarouselMinSlides)
	}
	if len(prompts) > post.CarouselMaxSlides {
		return prompts[:post.CarouselMaxSlides]
	}
	for len(prompts) < post.CarouselMinSlides {
		prompts = append(prompts, prompts[len(prompts)-1])
	}
	return prompts
}

func repeatPrompt(prompt string, count int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = prompt
	}
	return out
}

func clampSlideCount(count int) int {
	if count < post.CarouselMinSlides {
		return post.CarouselMinSlides
	}
	if count > post.CarouselMaxSlides {
		return post.CarouselMaxSlides
	}
	return count
}

// estimateSlideCount derives a slide count from the content's paragraph
// breaks when the request did not name one.
func estimateSlideCount(content string) int {
	paragraphs := 0
	for _, block := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(block) != "" {
			paragraphs++
		}
	}
	return paragraphs
}
