// Package generation orchestrates the post-generation pipeline: preference
// extraction, prompt assembly, the provider calls, response reconciliation,
// cost aggregation and the conversation commit.
package generation

import (
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
)

// Length of the requested post body.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// DefaultHashtagCount applies when neither the caller nor the message names a
// count. Config may override per deployment.
const DefaultHashtagCount = 4

// Options is the normalized options bag for one generation request. UI-supplied
// values seed it; ExtractPreferences then applies message wording on top, which
// always wins.
type Options struct {
	Format       post.Format
	Tone         string
	Length       Length
	HashtagCount int
	// SlideCount 0 means unspecified; the reconciler estimates from content.
	SlideCount int
	UseSearch   bool
	// OpenEnded marks requests that name no topic ("random", "surprise me").
	// Open-ended requests receive the avoid-duplicate-topic prompt block.
	OpenEnded bool
}

// DefaultOptions returns the options used when the caller supplies nothing.
func DefaultOptions() Options {
	return Options{
		Format:       post.FormatAuto,
		Length:       LengthMedium,
		HashtagCount: DefaultHashtagCount,
	}
}

// withDefaults fills unset format and length. HashtagCount stays as given:
// zero is a meaningful "no hashtags".
func (o Options) withDefaults() Options {
	if o.Format == "" {
		o.Format = post.FormatAuto
	}
	if o.Length == "" {
		o.Length = LengthMedium
	}
	return o
}
