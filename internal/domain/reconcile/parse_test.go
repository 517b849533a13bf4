package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
)

func newTestReconciler() *Reconciler {
	return NewReconciler(nil, zerolog.Nop())
}

func TestParseCleanJSON(t *testing.T) {
	r := newTestReconciler()
	raw := `{"post_content": "Shipping beats perfection.", "format_type": "text", "image_prompt": null, "metadata": {"hashtags": ["shipping"]}}`

	artifact, report := r.Parse(raw, Options{Format: post.FormatAuto, HashtagCount: 0})

	if artifact.PostContent != "Shipping beats perfection." {
		t.Errorf("PostContent = %q", artifact.PostContent)
	}
	if artifact.Format != post.FormatText {
		t.Errorf("Format = %q, want text", artifact.Format)
	}
	if report.Stage != StageJSON {
		t.Errorf("Stage = %q, want %q", report.Stage, StageJSON)
	}
	if report.UnwrapDepth != 0 {
		t.Errorf("UnwrapDepth = %d, want 0", report.UnwrapDepth)
	}
}

func TestParseFencedJSON(t *testing.T) {
	r := newTestReconciler()
	raw := "```json\n{\"post_content\": \"Fenced text\", \"format_type\": \"text\"}\n```"

	artifact, report := r.Parse(raw, Options{Format: post.FormatText})

	if artifact.PostContent != "Fenced text" {
		t.Errorf("PostContent = %q", artifact.PostContent)
	}
	if report.Stage != StageJSON {
		t.Errorf("Stage = %q, want %q", report.Stage, StageJSON)
	}
}

func TestParseDoubleEncodedContent(t *testing.T) {
	r := newTestReconciler()
	raw := "```json\n{\"post_content\": \"{\\\"post_content\\\": \\\"Hello world\\\", \\\"format_type\\\": \\\"text\\\"}\", \"format_type\": \"text\"}\n```"

	artifact, report := r.Parse(raw, Options{Format: post.FormatAuto})

	if artifact.PostContent != "Hello world" {
		t.Errorf("PostContent = %q, want %q", artifact.PostContent, "Hello world")
	}
	if report.UnwrapDepth != 1 {
		t.Errorf("UnwrapDepth = %d, want 1", report.UnwrapDepth)
	}
}

// nestedPayload wraps an innermost response object in n extra encoding
// layers.
func nestedPayload(n int) string {
	payload := `{"post_content": "Deep", "format_type": "text"}`
	for i := 0; i < n; i++ {
		encoded, _ := json.Marshal(payload)
		payload = fmt.Sprintf(`{"post_content": %s, "format_type": "text"}`, encoded)
	}
	return payload
}

func TestParseUnwrapIsBounded(t *testing.T) {
	r := newTestReconciler()

	tests := []struct {
		name        string
		layers      int
		wantContent string
	}{
		{name: "two extra layers resolved by unwrap", layers: 2, wantContent: "Deep"},
		{name: "three extra layers resolved by leak guard", layers: 3, wantContent: "Deep"},
		{name: "four extra layers yield honest error", layers: 4, wantContent: malformedContentNotice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifact, report := r.Parse(nestedPayload(tt.layers), Options{Format: post.FormatText})

			if artifact.PostContent != tt.wantContent {
				t.Errorf("PostContent = %q, want %q", artifact.PostContent, tt.wantContent)
			}
			if report.UnwrapDepth > maxUnwrapDepth {
				t.Errorf("UnwrapDepth = %d exceeds bound", report.UnwrapDepth)
			}
			assertNoJSONLeak(t, artifact.PostContent)
		})
	}
}

func TestParseNoJSONLeakAcrossDepths(t *testing.T) {
	r := newTestReconciler()

	for layers := 0; layers <= 6; layers++ {
		artifact, _ := r.Parse(nestedPayload(layers), Options{Format: post.FormatText})
		assertNoJSONLeak(t, artifact.PostContent)
	}
}

func assertNoJSONLeak(t *testing.T, content string) {
	t.Helper()
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") &&
		(strings.Contains(trimmed, `"post_content"`) || strings.Contains(trimmed, `"format_type"`)) {
		t.Errorf("content leaks JSON: %q", content)
	}
}

func TestParsePlainTextFallback(t *testing.T) {
	r := newTestReconciler()
	raw := "Shipping beats perfection.\n\nHere's why that matters for small teams."

	artifact, report := r.Parse(raw, Options{Format: post.FormatText})

	if artifact.PostContent != raw {
		t.Errorf("PostContent = %q", artifact.PostContent)
	}
	if report.Stage != StageRawText {
		t.Errorf("Stage = %q, want %q", report.Stage, StageRawText)
	}
}

func TestParseObjectWithoutPostContent(t *testing.T) {
	r := newTestReconciler()
	raw := `{"content": "wrong key", "format_type": "text"}`

	artifact, report := r.Parse(raw, Options{Format: post.FormatText})

	if artifact.PostContent != malformedContentNotice {
		t.Errorf("PostContent = %q, want honest error notice", artifact.PostContent)
	}
	if !report.LeakGuardHit {
		t.Error("LeakGuardHit should be set")
	}
}

func TestParseArrayPostContent(t *testing.T) {
	r := newTestReconciler()
	raw := `{"post_content": ["First paragraph.", "Second paragraph."], "format_type": "text"}`

	artifact, _ := r.Parse(raw, Options{Format: post.FormatText})

	want := "First paragraph.\n\nSecond paragraph."
	if artifact.PostContent != want {
		t.Errorf("PostContent = %q, want %q", artifact.PostContent, want)
	}
}

func TestParseVideoScriptDict(t *testing.T) {
	r := newTestReconciler()
	raw := `{
		"post_content": {
			"hook": "What if your standup took 90 seconds?",
			"introduction": "Most standups drift. Here is the fix.",
			"main_content": [
				{"point": "Timebox ruthlessly", "visual": "A stopwatch on a desk", "script": "Set a visible timer."},
				{"point": "Write it down first", "script": "Updates go in the doc before the call."}
			],
			"summary": "Short standups respect everyone's focus.",
			"cta": "Try the 90-second format tomorrow.",
			"music": "upbeat"
		},
		"format_type": "video_script"
	}`

	artifact, report := r.Parse(raw, Options{Format: post.FormatAuto})

	if artifact.Format != post.FormatVideoScript {
		t.Fatalf("Format = %q, want video_script", artifact.Format)
	}
	if report.Stage != StageStructured {
		t.Errorf("Stage = %q, want %q", report.Stage, StageStructured)
	}

	content := artifact.PostContent
	ordered := []string{
		"What if your standup took 90 seconds?",
		"Most standups drift. Here is the fix.",
		"1. Timebox ruthlessly",
		"(Visual: A stopwatch on a desk)",
		"Set a visible timer.",
		"2. Write it down first",
		"Updates go in the doc before the call.",
		"Short standups respect everyone's focus.",
		"Try the 90-second format tomorrow.",
		"music: upbeat",
	}

	last := -1
	for _, part := range ordered {
		idx := strings.Index(content, part)
		if idx == -1 {
			t.Fatalf("missing %q in:\n%s", part, content)
		}
		if idx < last {
			t.Errorf("%q out of order in:\n%s", part, content)
		}
		last = idx
	}
}

func TestParseDictContentForTextFormat(t *testing.T) {
	r := newTestReconciler()
	raw := `{"post_content": {"intro": "Hello.", "body": "World."}, "format_type": "text"}`

	artifact, report := r.Parse(raw, Options{Format: post.FormatText})

	if report.Stage != StageStructured {
		t.Errorf("Stage = %q, want %q", report.Stage, StageStructured)
	}
	if !strings.Contains(artifact.PostContent, "Hello.") || !strings.Contains(artifact.PostContent, "World.") {
		t.Errorf("flattened content lost values: %q", artifact.PostContent)
	}
	assertNoJSONLeak(t, artifact.PostContent)
}

func TestParseExtractsTitleAndPrompts(t *testing.T) {
	r := newTestReconciler()
	raw := `{
		"post_content": "A post about devtools.",
		"format_type": "image",
		"title": "Devtools momentum",
		"image_prompt": "A photo of a terminal with green output",
		"metadata": {"hashtags": ["devtools", "engineering"]}
	}`

	artifact, _ := r.Parse(raw, Options{Format: post.FormatAuto, HashtagCount: 2})

	if artifact.Title != "Devtools momentum" {
		t.Errorf("Title = %q", artifact.Title)
	}
	if !artifact.HasImagePrompt() || *artifact.ImagePrompt != "A photo of a terminal with green output" {
		t.Errorf("ImagePrompt = %v", artifact.ImagePrompt)
	}
	if artifact.Format != post.FormatImage {
		t.Errorf("Format = %q, want image", artifact.Format)
	}
	if len(artifact.Metadata.Hashtags) != 2 {
		t.Errorf("Hashtags = %v", artifact.Metadata.Hashtags)
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		requested post.Format
		want      post.Format
	}{
		{name: "requested wins over response", response: "carousel", requested: post.FormatText, want: post.FormatText},
		{name: "auto defers to response", response: "carousel", requested: post.FormatAuto, want: post.FormatCarousel},
		{name: "auto with unknown response defaults to text", response: "poem", requested: post.FormatAuto, want: post.FormatText},
		{name: "auto with empty response defaults to text", response: "", requested: post.FormatAuto, want: post.FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveFormat(tt.response, tt.requested); got != tt.want {
				t.Errorf("resolveFormat(%q, %q) = %q, want %q", tt.response, tt.requested, got, tt.want)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "json fence", in: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "bare fence", in: "```\ntext\n```", want: "text"},
		{name: "no fence", in: "plain text", want: "plain text"},
		{name: "inner backticks preserved", in: "use `go test` often", want: "use `go test` often"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.in); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
