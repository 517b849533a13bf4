// Package crontab runs the service's scheduled jobs: the nightly token-usage
// rollup and the periodic environment reload.
package crontab

import (
	"context"
	"time"

	"github.com/mileusna/crontab"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/config"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/tokenusage"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/logger"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// CronJobTimeout bounds each job execution.
const CronJobTimeout = 10 * time.Minute

type Crontab struct {
	ctab  *crontab.Crontab
	usage *tokenusage.Service
}

func NewCrontab(usage *tokenusage.Service) *Crontab {
	return &Crontab{
		ctab:  crontab.New(),
		usage: usage,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	cfg := config.GetGlobal()
	if cfg != nil && cfg.UsageRollupEnabled {
		// Catch up yesterday's rollup on start, then run nightly at 00:10.
		c.rollupYesterday(ctx)

		if err := c.ctab.AddJob("10 0 * * *", func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.rollupYesterday(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add usage rollup job")
		}
		log.Info().Msg("Token usage rollup scheduled nightly")
	}

	// Schedule environment reload job
	if err := c.ctab.AddJob("* * * * *", func() {
		// Reload config
		config.Load()
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add env reload job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) rollupYesterday(ctx context.Context) {
	log := logger.GetLogger()

	day := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	if err := c.usage.RollupDay(ctx, day); err != nil {
		log.Error().Err(err).Time("day", day).Msg("Failed to roll up token usage")
	}
}
