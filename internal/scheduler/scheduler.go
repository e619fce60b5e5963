package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/Mohan777-G/metrics-whisperer-ai/config"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/metrics"
)

// NewScheduler wires the demo metrics sampler onto a cron schedule so the
// service has live-looking data to answer questions about.
func NewScheduler(lc fx.Lifecycle, cfg *config.Config, sampler *metrics.Sampler) *cron.Cron {
	if !cfg.Sampler.Enabled {
		log.Info().Msg("Sample metrics generation disabled")
		return nil
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.DowOptional | cron.Descriptor)
	c := cron.New(cron.WithParser(parser))

	schedule := cfg.Sampler.Schedule
	_, err := c.AddFunc(schedule, sampler.Tick)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", schedule).Msg("Failed to add cron job")
		return nil
	}
	log.Info().Str("schedule", schedule).Msg("Scheduled sample metrics generation")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msg("Starting cron scheduler")
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Stopping cron scheduler...")
			stopCtx := c.Stop()
			select {
			case <-stopCtx.Done():
				log.Info().Msg("Cron scheduler stopped gracefully.")
				return nil
			case <-ctx.Done():
				log.Error().Msg("Context cancelled while waiting for cron scheduler to stop.")
				return ctx.Err()
			}
		},
	})

	return c
}
