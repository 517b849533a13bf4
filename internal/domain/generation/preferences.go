package generation

import (
	"regexp"
	"strings"
)

// Keyword lists are scanned in declaration order and the first matching list
// wins. Ambiguous wording ("short but detailed") therefore resolves to the
// earlier list; that is an accepted heuristic, not a guarantee.
var (
	longKeywords = []string{
		"long post", "longer", "in-depth", "in depth", "detailed", "comprehensive", "deep dive", "make it long",
	}
	shortKeywords = []string{
		"short post", "shorter", "brief", "concise", "quick post", "make it short", "keep it short",
	}
	mediumKeywords = []string{
		"medium length", "medium post", "moderate length", "medium-length",
	}
)

var (
	hashtagCountPattern  = regexp.MustCompile(`(\d+)\s*hashtags?`)
	hashtagCountPattern2 = regexp.MustCompile(`hashtags?\s*[:\-]?\s*(\d+)`)
	slideCountPattern    = regexp.MustCompile(`(\d+)\s*(?:slides?|pages?|cards?)`)
)

const (
	hashtagAdjustCap   = 10
	hashtagMoreDelta   = 3
	hashtagFewerDelta  = 2
	slideCountMax      = 15
)

// openEndedKeywords mark requests that name no topic of their own.
var openEndedKeywords = []string{"random", "surprise me"}

// ExtractPreferences parses natural-language hints out of the raw message and
// applies them on top of the caller-supplied options. Message wording always
// overrides UI defaults. Pure function; the input options value is not
// modified.
func ExtractPreferences(rawMessage string, current Options) Options {
	opts := current
	lower := strings.ToLower(rawMessage)

	if length, ok := extractLength(lower); ok {
		opts.Length = length
	}
	opts.HashtagCount = extractHashtagCount(lower, current.HashtagCount)
	if slides, ok := extractSlideCount(lower); ok {
		opts.SlideCount = slides
	}
	if IsOpenEnded(rawMessage) {
		opts.OpenEnded = true
	}

	return opts
}

func extractLength(lower string) (Length, bool) {
	for _, kw := range longKeywords {
		if strings.Contains(lower, kw) {
			return LengthLong, true
		}
	}
	for _, kw := range shortKeywords {
		if strings.Contains(lower, kw) {
			return LengthShort, true
		}
	}
	for _, kw := range mediumKeywords {
		if strings.Contains(lower, kw) {
			return LengthMedium, true
		}
	}
	return "", false
}

// extractHashtagCount resolves the hashtag count with one rule firing at most:
// explicit numeric wins over relative adjustments, which win over the caller
// default.
func extractHashtagCount(lower string, current int) int {
	if m := hashtagCountPattern.FindStringSubmatch(lower); m != nil {
		return parseCount(m[1], current)
	}
	if m := hashtagCountPattern2.FindStringSubmatch(lower); m != nil {
		return parseCount(m[1], current)
	}

	switch {
	case strings.Contains(lower, "more hashtags"):
		count := current + hashtagMoreDelta
		if count > hashtagAdjustCap {
			count = hashtagAdjustCap
		}
		return count
	case strings.Contains(lower, "fewer hashtags") || strings.Contains(lower, "less hashtags"):
		count := current - hashtagFewerDelta
		if count < 0 {
			count = 0
		}
		return count
	case strings.Contains(lower, "no hashtags") || strings.Contains(lower, "without hashtags"):
		return 0
	}

	return current
}

func extractSlideCount(lower string) (int, bool) {
	m := slideCountPattern.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	count := parseCount(m[1], 0)
	if count <= 0 {
		return 0, false
	}
	// Over-asks clamp rather than fail; under-asks are raised to the floor
	// during reconciliation.
	if count > slideCountMax {
		count = slideCountMax
	}
	return count, true
}

func parseCount(digits string, fallback int) int {
	count := 0
	for _, c := range digits {
		if c < '0' || c > '9' {
			return fallback
		}
		count = count*10 + int(c-'0')
		if count > 1000 {
			return fallback
		}
	}
	return count
}

// IsOpenEnded reports whether the message asks for a post without naming a
// topic: an explicit "random"/"surprise me", or three words or fewer.
func IsOpenEnded(rawMessage string) bool {
	lower := strings.ToLower(rawMessage)
	for _, kw := range openEndedKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return len(strings.Fields(rawMessage)) <= 3
}
