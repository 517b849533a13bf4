package reconcile

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
)

// maxUnwrapDepth bounds the double-encoding unwrap loop so a pathological
// payload cannot cause unbounded work.
const maxUnwrapDepth = 2

var codeFencePattern = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")

// Parse runs the fallback chain on raw provider text and returns a draft
// artifact. It never fails: worst case the raw text becomes the content and
// the leak guard decides what is safe to keep. Image prompts may still be
// missing afterwards; Complete fills them.
func (r *Reconciler) Parse(rawText string, opts Options) (*post.Artifact, Report) {
	report := Report{Stage: StageRawText}
	cleaned := stripCodeFences(rawText)

	content := cleaned
	fields := parsedFields{}

	if obj, ok := parseJSONObject(cleaned); ok {
		fields = extractFields(obj)
		fields, report.UnwrapDepth = unwrapNestedContent(fields)

		switch v := fields.content.(type) {
		case string:
			content = v
			report.Stage = StageJSON
		case map[string]interface{}:
			content = proseFromStructured(v, resolveFormat(fields.formatType, opts.Format))
			report.Stage = StageStructured
		case []interface{}:
			if joined, ok := joinStringParts(v); ok {
				content = joined
				report.Stage = StageJSON
			}
		}
		// A parsed object without a usable post_content falls through with
		// the raw text; the leak guard refuses to store it as JSON.
	}

	content, leakGuardHit := scrubContent(content)
	report.LeakGuardHit = leakGuardHit

	format := resolveFormat(fields.formatType, opts.Format)

	content, hashtags, appended := reconcileHashtags(content, fields.hashtags, opts.HashtagCount)
	report.HashtagsAppended = appended

	artifact := &post.Artifact{
		PostContent:  content,
		Format:       format,
		Title:        fields.title,
		ImagePrompts: fields.imagePrompts,
		Metadata:     post.ArtifactMetadata{Hashtags: hashtags},
	}
	if fields.imagePrompt != "" {
		prompt := fields.imagePrompt
		artifact.ImagePrompt = &prompt
	}

	r.log.Debug().
		Str("stage", report.Stage).
		Int("unwrap_depth", report.UnwrapDepth).
		Bool("leak_guard_hit", report.LeakGuardHit).
		Str("format", string(format)).
		Msg("parsed provider response")

	return artifact, report
}

// stripCodeFences removes one wrapping markdown code fence, language tag
// included.
func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if m := codeFencePattern.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

func parseJSONObject(s string) (map[string]interface{}, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// parsedFields is the provider response reduced to the fields reconciliation
// cares about. content stays untyped until the chain decides what it is.
type parsedFields struct {
	content      interface{}
	title        string
	formatType   string
	imagePrompt  string
	imagePrompts []string
	hashtags     []string
}

func extractFields(obj map[string]interface{}) parsedFields {
	fields := parsedFields{content: obj["post_content"]}

	if s, ok := obj["title"].(string); ok {
		fields.title = strings.TrimSpace(s)
	}
	if s, ok := obj["format_type"].(string); ok {
		fields.formatType = strings.TrimSpace(s)
	}
	if s, ok := obj["image_prompt"].(string); ok {
		fields.imagePrompt = strings.TrimSpace(s)
	}
	if parts, ok := obj["image_prompts"].([]interface{}); ok {
		fields.imagePrompts = stringSlice(parts)
	}
	if meta, ok := obj["metadata"].(map[string]interface{}); ok {
		if tags, ok := meta["hashtags"].([]interface{}); ok {
			fields.hashtags = stringSlice(tags)
		}
	}

	return fields
}

// unwrapNestedContent follows double-encoded post_content values, preferring
// the innermost extracted content and filling field gaps from inner layers.
// Bounded at maxUnwrapDepth.
func unwrapNestedContent(fields parsedFields) (parsedFields, int) {
	depth := 0
	for depth < maxUnwrapDepth {
		s, ok := fields.content.(string)
		if !ok || !looksLikeNestedJSON(s) {
			break
		}
		inner, ok := parseJSONObject(s)
		if !ok {
			break
		}
		innerFields := extractFields(inner)
		if innerFields.content == nil {
			break
		}
		fields = mergeFields(fields, innerFields)
		depth++
	}
	return fields, depth
}

// looksLikeNestedJSON spots a post_content value that is itself an encoded
// response object.
func looksLikeNestedJSON(s string) bool {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") {
		return false
	}
	return strings.Contains(trimmed, `"post_content"`) ||
		strings.Contains(trimmed, `"format_type"`) ||
		strings.Contains(trimmed, `"image_prompts"`)
}

// mergeFields takes the inner content and keeps outer fields where set,
// filling gaps from the inner layer.
func mergeFields(outer, inner parsedFields) parsedFields {
	merged := outer
	merged.content = inner.content
	if merged.title == "" {
		merged.title = inner.title
	}
	if merged.formatType == "" {
		merged.formatType = inner.formatType
	}
	if merged.imagePrompt == "" {
		merged.imagePrompt = inner.imagePrompt
	}
	if len(merged.imagePrompts) == 0 {
		merged.imagePrompts = inner.imagePrompts
	}
	if len(merged.hashtags) == 0 {
		merged.hashtags = inner.hashtags
	}
	return merged
}

// resolveFormat decides the artifact's concrete format. The requested format
// wins; auto defers to the response's own format_type, defaulting to text.
func resolveFormat(responseFormat string, requested post.Format) post.Format {
	if requested != "" && requested != post.FormatAuto {
		return requested
	}
	if responseFormat != "" {
		if parsed := post.ParseFormat(responseFormat); parsed != post.FormatAuto {
			return parsed
		}
	}
	return post.FormatText
}

func stringSlice(parts []interface{}) []string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s, ok := part.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// joinStringParts flattens an all-string array into paragraphs.
func joinStringParts(parts []interface{}) (string, bool) {
	strs := stringSlice(parts)
	if len(strs) == 0 || len(strs) != len(parts) {
		return "", false
	}
	return strings.Join(strs, "\n\n"), true
}

// sortedKeys returns map keys in deterministic order for last-resort dumps.
func sortedKeys(obj map[string]interface{}) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
