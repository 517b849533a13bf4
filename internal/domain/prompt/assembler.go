// Package prompt composes the system prompt for one generation request out of
// conditional modules: profile context, caller overrides, topic freshness,
// refinement, style directives, format instructions and the response
// contract. Modules run in fixed precedence order; later blocks sit closer to
// the end of the prompt.
package prompt

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
)

// AssemblerImpl implements the Assembler interface.
type AssemblerImpl struct {
	modules []Module
	log     zerolog.Logger
}

// NewAssembler creates the assembler with its module chain in precedence
// order. The context-override block is worded as highest priority; the
// response contract always comes last so the shape instruction is the most
// recent thing the model reads.
func NewAssembler(log zerolog.Logger) *AssemblerImpl {
	assembler := &AssemblerImpl{
		modules: make([]Module, 0),
		log:     log.With().Str("component", "context-assembler").Logger(),
	}

	assembler.RegisterModule(NewProfileContextModule())
	assembler.RegisterModule(NewContextOverrideModule())
	assembler.RegisterModule(NewTopicFreshnessModule())
	assembler.RegisterModule(NewRefinementModule())
	assembler.RegisterModule(NewStyleDirectivesModule())
	assembler.RegisterModule(NewSearchAugmentationModule())
	assembler.RegisterModule(NewFormatInstructionsModule())
	assembler.RegisterModule(NewResponseContractModule())

	return assembler
}

// RegisterModule adds a module to the chain.
func (a *AssemblerImpl) RegisterModule(module Module) {
	a.modules = append(a.modules, module)
	a.log.Debug().Str("module", module.Name()).Msg("registered prompt module")
}

// Assemble applies every applicable module and freezes the result.
func (a *AssemblerImpl) Assemble(ctx context.Context, in *Input) (*AssembledPrompt, error) {
	builder := &Builder{userMessage: strings.TrimSpace(in.Message)}
	applied := make([]string, 0, len(a.modules))

	for _, module := range a.modules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !module.ShouldApply(ctx, in) {
			continue
		}
		if err := module.Apply(ctx, in, builder); err != nil {
			a.log.Error().
				Err(err).
				Str("module", module.Name()).
				Msg("failed to apply prompt module")
			return nil, err
		}
		applied = append(applied, module.Name())
	}

	if len(applied) > 0 {
		a.log.Debug().
			Strs("applied_modules", applied).
			Str("format", string(in.Format)).
			Msg("assembled prompt")
	}

	history := make([]llm.Message, len(in.History))
	copy(history, in.History)
	attachments := make([]llm.Attachment, len(in.Attachments))
	copy(attachments, in.Attachments)

	return &AssembledPrompt{
		SystemPrompt: builder.SystemPrompt(),
		UserMessage:  builder.UserMessage(),
		Format:       in.Format,
		History:      history,
		Attachments:  attachments,
	}, nil
}
