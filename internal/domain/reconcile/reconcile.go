// Package reconcile turns raw provider text into a complete, format-valid
// artifact. Provider output is untrusted: it may be fenced, double-encoded,
// structurally wrong, or plain prose. Parsing runs a fixed fallback chain
// that never fails, a leak guard keeps machine-readable JSON out of
// user-facing content, and per-format completion fills missing image prompts
// with auxiliary provider calls that degrade to placeholders on failure.
package reconcile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
)

// Options carries what reconciliation needs from the request.
type Options struct {
	// Format is the requested output format; FormatAuto lets the response's
	// own format_type decide.
	Format post.Format
	// HashtagCount is a ceiling: fewer valid tags than requested is accepted,
	// more are truncated.
	HashtagCount int
	// SlideCount 0 means unspecified; carousel completion then estimates a
	// count from paragraph breaks.
	SlideCount int
}

// Parse fallback stages, in chain order.
const (
	StageJSON       = "json"
	StageStructured = "structured_prose"
	StageRawText    = "raw_text"
)

// Report describes which repairs one parse needed. The pipeline logs it and
// surfaces it to callers for instrumentation.
type Report struct {
	// Stage is the fallback stage that produced the content.
	Stage string
	// UnwrapDepth counts how many double-encoding layers were removed.
	UnwrapDepth int
	// LeakGuardHit is set when the leak guard had to rewrite the content.
	LeakGuardHit bool
	// HashtagsAppended is set when reconciliation appended a trailing tag line.
	HashtagsAppended bool
}

// Reconciler implements response reconciliation. The caller issues the
// auxiliary provider calls needed for per-format completion.
type Reconciler struct {
	caller llm.Caller
	log    zerolog.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(caller llm.Caller, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		caller: caller,
		log:    log.With().Str("component", "reconciler").Logger(),
	}
}

// Reconcile runs the full reconciliation: parse chain, leak guard, hashtag
// reconciliation, then per-format completion. The returned usages cover the
// auxiliary calls only; the main call's usage stays with its caller. The
// error is only ever a context error; malformed provider output is absorbed
// by the chain.
func (r *Reconciler) Reconcile(ctx context.Context, rawText string, opts Options) (*post.Artifact, []llm.Usage, Report, error) {
	artifact, report := r.Parse(rawText, opts)
	if err := ctx.Err(); err != nil {
		return nil, nil, report, err
	}
	usages := r.Complete(ctx, artifact, opts)
	return artifact, usages, report, nil
}
