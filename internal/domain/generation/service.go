package generation

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/conversation"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/credit"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/profile"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/prompt"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/reconcile"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/tokenusage"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// TopicSource supplies recent post titles for the avoid-duplicate-topic
// prompt block. The infrastructure cache implements it over the post store.
type TopicSource interface {
	RecentTitles(ctx context.Context, userID string) ([]string, error)
}

// TxRunner runs fn inside one storage transaction; repository calls made
// with the inner context join it.
type TxRunner interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// historyWindow bounds how many prior turns ride along to the provider.
const historyWindow = 10

// Request is one generation invocation. UserID always comes from the
// authenticated principal, never from the request body.
type Request struct {
	UserID            string
	Message           string
	ConversationID    string
	AdditionalContext string
	RequestID         string
	Options           Options
	Attachments       []llm.Attachment
}

// Result bundles everything the handler renders after one generation.
type Result struct {
	Post                *post.Post
	Conversation        *conversation.Conversation
	ConversationCreated bool
	Summary             tokenusage.CostSummary
	Report              reconcile.Report
}

// Service runs the generation pipeline end to end: credit gate, context
// loading, prompt assembly, the provider calls, reconciliation, cost
// aggregation and the atomic commit.
type Service struct {
	meter         credit.Meter
	posts         post.Repository
	profiles      *profile.Service
	conversations *conversation.Service
	topics        TopicSource
	assembler     prompt.Assembler
	caller        llm.Caller
	reconciler    *reconcile.Reconciler
	aggregator    *tokenusage.Aggregator
	usage         *tokenusage.Service
	tx            TxRunner
	log           zerolog.Logger
}

func NewService(
	meter credit.Meter,
	posts post.Repository,
	profiles *profile.Service,
	conversations *conversation.Service,
	topics TopicSource,
	assembler prompt.Assembler,
	caller llm.Caller,
	reconciler *reconcile.Reconciler,
	aggregator *tokenusage.Aggregator,
	usage *tokenusage.Service,
	tx TxRunner,
	log zerolog.Logger,
) *Service {
	return &Service{
		meter:         meter,
		posts:         posts,
		profiles:      profiles,
		conversations: conversations,
		topics:        topics,
		assembler:     assembler,
		caller:        caller,
		reconciler:    reconciler,
		aggregator:    aggregator,
		usage:         usage,
		tx:            tx,
		log:           log,
	}
}

// Generate runs one request through the pipeline. Credits are reserved before
// any provider call and refunded if the pipeline fails afterwards; nothing is
// persisted unless the whole commit succeeds.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "message must not be empty", nil, "9a3e5c1b-7f2d-4e8a-b6c4-0d9f1a3e5c7b")
	}

	amount := credit.CostOf(credit.ActionPostGeneration)
	if err := s.meter.CheckAndReserve(ctx, req.UserID, amount); err != nil {
		return nil, err
	}

	result, err := s.run(ctx, req)
	if err != nil {
		// The refund must land even when the caller is gone.
		if refundErr := s.meter.Refund(context.WithoutCancel(ctx), req.UserID, amount); refundErr != nil {
			s.log.Error().Err(refundErr).Str("user_id", req.UserID).Msg("credit refund failed after pipeline error")
		}
		return nil, err
	}
	return result, nil
}

func (s *Service) run(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()
	opts := ExtractPreferences(req.Message, req.Options.withDefaults())

	prof, err := s.profiles.GetProfile(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	conv, created, err := s.conversations.Ensure(ctx, req.UserID, req.ConversationID)
	if err != nil {
		return nil, err
	}

	var history []llm.Message
	var previousArtifact string
	hasAssistantTurn := false
	if !created {
		items, err := s.conversations.History(ctx, conv.ID, historyWindow)
		if err != nil {
			return nil, err
		}
		history = make([]llm.Message, 0, len(items))
		for _, item := range items {
			role := llm.RoleUser
			if item.Role == conversation.RoleAssistant {
				role = llm.RoleAssistant
				previousArtifact = item.Content
				hasAssistantTurn = true
			}
			history = append(history, llm.Message{Role: role, Content: item.Content})
		}
	}

	refinement := DetectRefinement(req.Message, hasAssistantTurn)

	var recentTopics []string
	if opts.OpenEnded && !refinement {
		topics, err := s.topics.RecentTitles(ctx, req.UserID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", req.UserID).Msg("recent topics lookup failed, proceeding without")
		} else {
			recentTopics = topics
		}
	}

	assembled, err := s.assembler.Assemble(ctx, &prompt.Input{
		Profile:           prof,
		Message:           req.Message,
		Format:            opts.Format,
		Tone:              opts.Tone,
		Length:            string(opts.Length),
		HashtagCount:      opts.HashtagCount,
		SlideCount:        opts.SlideCount,
		UseSearch:         opts.UseSearch,
		OpenEnded:         opts.OpenEnded,
		RecentTopics:      recentTopics,
		Refinement:        refinement,
		PreviousArtifact:  previousArtifact,
		AdditionalContext: req.AdditionalContext,
		History:           history,
		Attachments:       req.Attachments,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "prompt assembly failed")
	}

	// Issued provider calls run to completion even when the caller aborts, so
	// their usage is billed; the gateways bound each call with their own
	// timeouts.
	callCtx := context.WithoutCancel(ctx)

	mainResult, err := s.caller.GenerateFor(callCtx, llm.PurposePostGeneration, llm.GenerateRequest{
		SystemPrompt: assembled.SystemPrompt,
		UserMessage:  assembled.UserMessage,
		History:      assembled.History,
		Attachments:  assembled.Attachments,
		UseSearch:    opts.UseSearch,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "generation failed")
	}
	usages := []llm.Usage{mainResult.Usage}

	recOpts := reconcile.Options{
		Format:       opts.Format,
		HashtagCount: opts.HashtagCount,
		SlideCount:   opts.SlideCount,
	}
	artifact, report := s.reconciler.Parse(mainResult.Text, recOpts)

	// post_content is final; the remaining auxiliary calls are independent
	// of each other and run concurrently. Both degrade internally rather
	// than fail.
	var auxUsages, titleUsages []llm.Usage
	group, groupCtx := errgroup.WithContext(callCtx)
	group.Go(func() error {
		auxUsages = s.reconciler.Complete(groupCtx, artifact, recOpts)
		return nil
	})
	group.Go(func() error {
		titleUsages = s.conversations.SettleTitle(groupCtx, conv, artifact.Title, req.Message)
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	usages = append(usages, auxUsages...)
	usages = append(usages, titleUsages...)

	summary := s.aggregator.Aggregate(usages)

	generated, err := post.NewPost(req.UserID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create post")
	}
	generated.Content = artifact.PostContent
	generated.Format = artifact.Format
	if artifact.Title != "" {
		title := artifact.Title
		generated.Title = &title
	}
	generated.ImagePrompt = artifact.ImagePrompt
	generated.ImagePrompts = artifact.ImagePrompts
	generated.Hashtags = artifact.Metadata.Hashtags
	generated.Provider = mainResult.Usage.Provider
	generated.Model = mainResult.Usage.Model
	generated.TotalInputTokens = summary.TotalInputTokens
	generated.TotalOutputTokens = summary.TotalOutputTokens
	generated.TotalCost = summary.TotalCost
	generated.UsageBreakdown = make([]post.UsageSlice, 0, len(summary.Segments))
	for _, seg := range summary.Segments {
		generated.UsageBreakdown = append(generated.UsageBreakdown, post.UsageSlice{
			Purpose:      string(seg.Purpose),
			Provider:     seg.Provider,
			Model:        seg.Model,
			InputTokens:  seg.InputTokens,
			OutputTokens: seg.OutputTokens,
			CostUSD:      seg.Cost,
		})
	}

	// The post, both turns, the usage rows and the credit settlement commit
	// or roll back as one unit. The commit itself is not cancellable: the
	// artifact and usage list are final and paid for.
	err = s.tx.Transaction(context.WithoutCancel(ctx), func(txCtx context.Context) error {
		if err := s.conversations.Persist(txCtx, conv); err != nil {
			return err
		}
		generated.ConversationID = &conv.ID
		if err := s.posts.Create(txCtx, generated); err != nil {
			return err
		}
		if _, _, err := s.conversations.AppendExchange(txCtx, conv, req.Message, artifact.PostContent, generated.ID, generated.PublicID); err != nil {
			return err
		}
		if err := s.usage.RecordRequestUsage(txCtx, req.UserID, &generated.ID, &conv.ID, req.RequestID, usages); err != nil {
			return err
		}
		return s.meter.Settle(txCtx, req.UserID, credit.CostOf(credit.ActionPostGeneration), credit.ActionPostGeneration, generated.ID)
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to persist generation")
	}

	s.log.Info().
		Str("user_id", req.UserID).
		Str("post_id", generated.PublicID).
		Str("conversation_id", conv.PublicID).
		Str("format", string(generated.Format)).
		Str("stage", report.Stage).
		Int("unwrap_depth", report.UnwrapDepth).
		Bool("leak_guard_hit", report.LeakGuardHit).
		Int("total_tokens", summary.TotalTokens()).
		Str("total_cost_usd", summary.TotalCost.String()).
		Dur("duration", time.Since(started)).
		Msg("generation completed")

	return &Result{
		Post:                generated,
		Conversation:        conv,
		ConversationCreated: created,
		Summary:             summary,
		Report:              report,
	}, nil
}
