package reconcile

import (
	"encoding/json"
	"regexp"
	"strings"
)

// malformedContentNotice replaces content that is still machine-readable
// after every repair. An honest error beats persisting JSON as a post.
const malformedContentNotice = "We couldn't format this post correctly. Please try generating it again."

var leakLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*slide\s*\d+\s*:`),
	regexp.MustCompile(`(?i)^\s*image prompt\s*:`),
	regexp.MustCompile(`(?i)^\s*visual description\s*:`),
	regexp.MustCompile(`^\s*\d+\s*$`),
}

var excessBlankLines = regexp.MustCompile(`\n{3,}`)

// scrubContent is the leak guard: it strips slide/prompt marker lines and
// guarantees the result is not a machine-readable JSON document. Returns the
// safe content and whether the guard had to rewrite anything.
func scrubContent(content string) (string, bool) {
	cleaned, stripped := stripLeakLines(content)

	if !looksLikeJSONDocument(cleaned) {
		return cleaned, stripped
	}

	// One last extraction attempt before giving up on the text.
	if extracted, ok := extractContentKey(cleaned); ok {
		cleaned, _ = stripLeakLines(extracted)
		if !looksLikeJSONDocument(cleaned) {
			return cleaned, true
		}
	}

	return malformedContentNotice, true
}

func stripLeakLines(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	stripped := false

	for _, line := range lines {
		if isLeakLine(line) {
			stripped = true
			continue
		}
		kept = append(kept, line)
	}

	cleaned := strings.Join(kept, "\n")
	cleaned = excessBlankLines.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned), stripped
}

func isLeakLine(line string) bool {
	for _, pattern := range leakLinePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// looksLikeJSONDocument reports whether the whole content parses as a JSON
// object or array. Scalars are excluded so ordinary text like "42" survives.
func looksLikeJSONDocument(content string) bool {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return false
	}
	return json.Valid([]byte(trimmed))
}

func extractContentKey(content string) (string, bool) {
	obj, ok := parseJSONObject(content)
	if !ok {
		return "", false
	}
	if s, ok := obj["post_content"].(string); ok && strings.TrimSpace(s) != "" {
		return s, true
	}
	return "", false
}
