package main

import (
	"context"

	"gorm.io/gorm"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/config"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/logger"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// DataInitializer prepares storage and logs the provider routing before the
// server starts taking traffic.
type DataInitializer struct {
	db *gorm.DB
}

func (d *DataInitializer) Install(ctx context.Context) error {
	log := logger.GetLogger()
	cfg := config.GetGlobal()

	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.Migration(d.db); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to run database migrations")
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	for _, provider := range cfg.ActiveProviders() {
		log.Info().
			Str("provider", provider.Name).
			Str("vendor", provider.Vendor).
			Bool("active", provider.Active).
			Int("models", len(provider.Models)).
			Msg("provider configured")
	}

	for _, purpose := range []string{"default", "post_generation", "conversation_title", "image_prompt", "carousel_prompts"} {
		if route, ok := cfg.RouteForPurpose(purpose); ok {
			log.Info().
				Str("purpose", purpose).
				Str("provider", route.Provider).
				Str("model", route.Model).
				Msg("purpose route configured")
		}
	}

	return nil
}
