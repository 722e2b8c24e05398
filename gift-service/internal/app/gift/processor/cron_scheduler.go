package processor

import (
	"context"
	"time"

	"giftshop/pkg/logger"

	"github.com/robfig/cron/v3"
)

const warmupTimeout = 30 * time.Second

// CacheWarmer перезаполняет кеш категорий
type CacheWarmer interface {
	WarmCache(ctx context.Context) error
}

// CronScheduler периодически прогревает кеш категорий
type CronScheduler struct {
	cron   *cron.Cron
	warmer CacheWarmer
}

func NewCronScheduler(warmer CacheWarmer) *CronScheduler {
	return &CronScheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		warmer: warmer,
	}
}

// Start регистрирует задачу, запускает планировщик и сразу делает первый прогрев
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() { s.warm(ctx, "scheduled") }); err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Str("schedule", schedule).Msg("Cron scheduler started")

	s.warm(ctx, "initial")
	return nil
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	<-s.cron.Stop().Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}

func (s *CronScheduler) warm(ctx context.Context, trigger string) {
	ctx, cancel := context.WithTimeout(ctx, warmupTimeout)
	defer cancel()

	if err := s.warmer.WarmCache(ctx); err != nil {
		logger.Warn().Err(err).Str("trigger", trigger).Msg("Failed to warm categories cache")
		return
	}
	logger.Debug().Str("trigger", trigger).Msg("Categories cache warmed")
}
