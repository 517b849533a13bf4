package generation

import "strings"

// newTopicPatterns explicitly reset the conversation topic. An explicit reset
// always wins over implicit refinement signals.
var newTopicPatterns = []string{
	"new topic", "new post", "different topic", "different post",
	"something else", "another topic", "start over", "start fresh",
	"forget that", "unrelated",
}

// refinementKeywords signal that the message modifies the previous turn's
// artifact rather than starting fresh.
var refinementKeywords = []string{
	"make it", "make this", "make that",
	"rewrite", "rephrase", "reword", "redo",
	"shorter", "longer", "instead",
	"change the", "change it", "change this",
	"add a", "add more", "remove the", "remove that",
	"fix the", "adjust", "tweak", "improve it", "improve this",
	"more casual", "more formal", "more professional",
}

var referentialPronouns = map[string]bool{
	"this": true,
	"it":   true,
	"that": true,
}

const refinementShortMessageTokens = 10

// DetectRefinement decides whether the message refines the previous artifact.
// Requires a prior assistant turn; an explicit new-topic pattern always wins;
// otherwise a refinement keyword, or a short message leaning on a referential
// pronoun, marks the request as a refinement.
func DetectRefinement(rawMessage string, hasPriorAssistantTurn bool) bool {
	if !hasPriorAssistantTurn {
		return false
	}

	lower := strings.ToLower(rawMessage)

	for _, pattern := range newTopicPatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}

	for _, kw := range refinementKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	fields := strings.Fields(lower)
	if len(fields) <= refinementShortMessageTokens {
		for _, field := range fields {
			if referentialPronouns[strings.Trim(field, ".,!?;:")] {
				return true
			}
		}
	}

	return false
}
