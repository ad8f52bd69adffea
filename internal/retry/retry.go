// Package retry holds the bounded exponential-backoff policy applied to
// outbound calls.
package retry

import (
	"context"
	"time"

	backoff "github.com/sethvargo/go-retry"
)

// Policy bounds the attempts of one call site.
type Policy struct {
	MaxAttempts int           // total attempts, including the first
	Base        time.Duration // delay after the first failure; doubles per retry
}

// Policies expected by the prediction service: image uploads get one extra
// attempt over plain JSON calls.
var (
	Auth   = Policy{MaxAttempts: 2, Base: time.Second}
	Upload = Policy{MaxAttempts: 3, Base: time.Second}
)

// Retryable marks err as eligible for another attempt. Unmarked errors stop
// the loop immediately.
func Retryable(err error) error { return backoff.RetryableError(err) }

// Do runs fn until it succeeds, returns a non-retryable error, or the
// attempt budget is spent; the last error is surfaced unwrapped. Delays are
// Base, 2*Base, ... between attempts only, never after the final one.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	retries := uint64(0)
	if p.MaxAttempts > 1 {
		retries = uint64(p.MaxAttempts - 1)
	}
	base := p.Base
	if base <= 0 {
		base = time.Millisecond
	}
	b := backoff.WithMaxRetries(retries, backoff.NewExponential(base))
	return backoff.Do(ctx, b, fn)
}
