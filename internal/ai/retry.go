package ai

import (
	"context"
	"log/slog"
	"time"
)

// attemptResult is the outcome of an attempt loop. err is nil on success,
// otherwise it is the fatal error or the last retryable one.
type attemptResult[T any] struct {
	value    T
	attempts int
	err      error
}

// runAttempts calls fn up to budget times. Only malformed-output failures
// are retried, after a fixed delay; every other error ends the loop at once.
func runAttempts[T any](ctx context.Context, log *slog.Logger, op string, budget int, delay time.Duration,
	fn func(ctx context.Context, attempt int) (T, error),
) attemptResult[T] {
	if budget < 1 {
		budget = 1
	}
	var res attemptResult[T]
	for attempt := 1; attempt <= budget; attempt++ {
		res.attempts = attempt
		v, err := fn(ctx, attempt)
		if err == nil {
			res.value, res.err = v, nil
			return res
		}
		res.err = err
		if !malformed(err) {
			return res
		}
		log.Warn("generation attempt failed", "op", op, "attempt", attempt, "budget", budget, "error", err)
		if attempt == budget {
			break
		}
		if err := sleep(ctx, delay); err != nil {
			res.err = err
			return res
		}
	}
	return res
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
