package retry

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

type Backoff struct {
	b retry.Backoff
}

// RetryableError marks err as transient, allowing Do to attempt the operation again.
// Errors not marked as retryable abort the retry loop immediately.
func RetryableError(err error) error {
	return retry.RetryableError(err)
}

// Fibonacci returns a backoff that sleeps between attempts for durations
// following the Fibonacci sequence, starting at base.
func Fibonacci(base time.Duration) Backoff {
	if base <= 0 {
		base = 1 * time.Second
	}
	b := retry.NewFibonacci(base)

	return Backoff{
		b: b,
	}
}

// WithMaxDuration bounds the total time spent on retries, including the first attempt.
func (in Backoff) WithMaxDuration(timeout time.Duration) Backoff {
	in.b = retry.WithMaxDuration(timeout, in.b)
	return in
}

func (in Backoff) Do(ctx context.Context, f retry.RetryFunc) error {
	return retry.Do(ctx, in.b, f)
}
