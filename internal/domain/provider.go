package domain

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/config"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/conversation"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/credit"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/generation"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/profile"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/prompt"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/reconcile"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/tokenusage"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/transaction"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/topiccache"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	ProvidePricingTable,
	ProvideCreditMeter,
	ProvideAssembler,
	reconcile.NewReconciler,
	conversation.NewService,
	profile.NewService,
	tokenusage.NewService,
	tokenusage.NewAggregator,
	ProvideGenerationService,
)

// ProvidePricingTable builds the per-model pricing table from the active
// provider catalog.
func ProvidePricingTable(cfg *config.Config) (*tokenusage.PricingTable, error) {
	return tokenusage.NewPricingTableFromCatalog(cfg.ActiveProviders())
}

// ProvideCreditMeter wires the credit meter with the configured signup balance
// and generation price.
func ProvideCreditMeter(cfg *config.Config, store credit.Store) credit.Meter {
	credit.Configure(decimal.NewFromInt(cfg.CreditsPerGeneration))
	return credit.NewService(store, decimal.NewFromInt(cfg.SignupCredits))
}

// ProvideAssembler exposes the module pipeline behind the Assembler interface.
func ProvideAssembler(log zerolog.Logger) prompt.Assembler {
	return prompt.NewAssembler(log)
}

// ProvideGenerationService binds the pipeline's storage and cache seams to
// their infrastructure implementations.
func ProvideGenerationService(
	meter credit.Meter,
	posts post.Repository,
	profiles *profile.Service,
	conversations *conversation.Service,
	topics *topiccache.Cache,
	assembler prompt.Assembler,
	caller llm.Caller,
	reconciler *reconcile.Reconciler,
	aggregator *tokenusage.Aggregator,
	usage *tokenusage.Service,
	tx *transaction.Database,
	log zerolog.Logger,
) *generation.Service {
	return generation.NewService(meter, posts, profiles, conversations, topics, assembler, caller, reconciler, aggregator, usage, tx, log)
}
