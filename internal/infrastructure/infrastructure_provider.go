package infrastructure

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/config"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/auth"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/crontab"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/repository"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/transaction"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/inference"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/logger"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/topiccache"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideValidator provides the JWT validator backed by the identity
// provider's JWKS endpoint.
func ProvideValidator(cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	ctx := context.Background()
	jwksURL, err := cfg.ResolveJWKSURL(ctx)
	if err != nil {
		return nil, err
	}
	return auth.NewValidator(ctx, jwksURL, cfg.Issuer, cfg.Audience, cfg.RefreshJWKSInterval, log)
}

// ProvideDatabase provides a database connection, registering the read
// replica when one is configured.
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(database.Config{
		DatabaseURL: cfg.DatabaseURL,
		ReplicaURL:  cfg.DBReplicaURL,
		MaxIdle:     10,
		MaxOpen:     25,
		MaxLifetime: database.DefaultConnMaxLifetime,
		LogLevel:    database.DefaultLogLevel,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// ProvideTransactionDatabase provides a transaction database wrapper
func ProvideTransactionDatabase(db *gorm.DB) *transaction.Database {
	return transaction.NewDatabase(db)
}

// ProvideTopicCache fronts recent-topic lookups with the configured TTL.
func ProvideTopicCache(cfg *config.Config, posts post.Repository) (*topiccache.Cache, error) {
	return topiccache.New(posts, cfg.TopicCacheTTL)
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB        *gorm.DB
	Validator *auth.Validator
	Logger    zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(
	db *gorm.DB,
	validator *auth.Validator,
	logger zerolog.Logger,
) *Infrastructure {
	return &Infrastructure{
		DB:        db,
		Validator: validator,
		Logger:    logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,
	ProvideTransactionDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Provider gateways
	inference.NewRegistry,
	inference.NewCaller,

	// Topic cache
	ProvideTopicCache,

	// Logger
	logger.GetLogger,

	// Auth
	ProvideValidator,

	// Crontab for usage rollup
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)
