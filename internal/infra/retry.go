package infra

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryUntilSuccess runs fn until it returns nil or ctx is cancelled,
// waiting interval between attempts. Failures are logged, never fatal.
func RetryUntilSuccess(ctx context.Context, name string, interval time.Duration, fn func(ctx context.Context) error) error {
	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				log.Info().Str("task", name).Int("attempt", attempt).Msg("store task succeeded after retries")
			}
			return nil
		}
		log.Warn().Err(err).Str("task", name).Int("attempt", attempt).Dur("retry_in", interval).Msg("store task failed")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
