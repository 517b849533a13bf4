package reconcile

import (
	"regexp"
	"strings"
)

var inlineHashtagPattern = regexp.MustCompile(`#[\pL\pN_]+`)

// reconcileHashtags enforces the requested count as a ceiling: fewer valid
// tags than requested is accepted, more are truncated. Metadata tags win over
// tags already inline in the content; the chosen set is appended as one
// trailing line only when none of its tags' text already appears in the
// content, so re-running on reconciled content is a no-op. Returns the
// content, the chosen tags and whether a line was appended.
func reconcileHashtags(content string, metadataTags []string, requested int) (string, []string, bool) {
	if requested <= 0 {
		return content, normalizeHashtags(metadataTags, 0), false
	}

	tags := normalizeHashtags(metadataTags, requested)
	if len(tags) == 0 {
		tags = normalizeHashtags(inlineHashtagPattern.FindAllString(content, -1), requested)
	}
	if len(tags) == 0 {
		return content, nil, false
	}

	if anyTagInContent(content, tags) {
		return content, tags, false
	}

	return content + "\n\n" + strings.Join(tags, " "), tags, true
}

// normalizeHashtags trims entries, strips stray '#' prefixes and interior
// whitespace, re-prefixes with '#', drops empties and case-insensitive
// duplicates, and truncates to limit when limit > 0.
func normalizeHashtags(raw []string, limit int) []string {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]bool)

	for _, entry := range raw {
		text := strings.TrimLeft(strings.TrimSpace(entry), "#")
		text = strings.Join(strings.Fields(text), "")
		if text == "" {
			continue
		}
		key := strings.ToLower(text)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, "#"+text)
		if limit > 0 && len(tags) == limit {
			break
		}
	}

	return tags
}

// anyTagInContent reports whether any tag's text, without the '#', already
// appears in the content as a substring.
func anyTagInContent(content string, tags []string) bool {
	lower := strings.ToLower(content)
	for _, tag := range tags {
		text := strings.ToLower(strings.TrimPrefix(tag, "#"))
		if text != "" && strings.Contains(lower, text) {
			return true
		}
	}
	return false
}
