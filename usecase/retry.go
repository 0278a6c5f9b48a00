package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/speechsuite/domain/entities"
)

// RetryPolicy bounds how often a retryable synthesis failure is repeated.
// Retries is the number of extra attempts; zero disables retrying.
type RetryPolicy struct {
	Retries int
	Backoff time.Duration
}

// Retry runs fn until it succeeds, fails with a non-retryable error, or the
// policy is exhausted. The wait grows linearly with each attempt.
func Retry[T any](ctx context.Context, policy RetryPolicy, logger *zap.Logger, fn func(context.Context) (T, error)) (T, error) {
	var (
		result T
		err    error
	)

	for attempt := 0; ; attempt++ {
		result, err = fn(ctx)
		if err == nil || !entities.IsRetryable(err) || attempt >= policy.Retries {
			return result, err
		}

		wait := time.Duration(attempt+1) * policy.Backoff
		logger.Warn("Synthesis failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
			zap.Error(err))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, err
		case <-timer.C:
		}
	}
}
