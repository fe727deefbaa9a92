package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultAttempts  = 5
	DefaultBaseDelay = time.Second
)

// Policy re-invokes a failing operation with exponential backoff.
// Attempt i (0-based) that fails is followed by a sleep of BaseDelay*2^i
// when another attempt remains. Every error is retryable.
type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	Logger    *slog.Logger
	// Sleep waits for d or until ctx is done. Nil uses a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Default returns the policy used by the update run: 5 attempts, 1s base delay.
func Default() Policy {
	return Policy{Attempts: DefaultAttempts, BaseDelay: DefaultBaseDelay}
}

// Delay returns the backoff after the failed attempt with the given index.
func (p Policy) Delay(attempt int) time.Duration {
	return p.BaseDelay * time.Duration(1<<uint(attempt))
}

func (p Policy) attempts() int {
	if p.Attempts <= 0 {
		return DefaultAttempts
	}
	return p.Attempts
}

func (p Policy) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// backOff yields BaseDelay*2^i for the first n-1 failures, then stops.
func (p Policy) backOff(ctx context.Context, n int) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = time.Duration(math.MaxInt64)
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(n-1)), ctx)
}

// sleepTimer adapts Policy.Sleep to backoff.Timer. Start blocks in Sleep and
// then fires; a failed sleep is kept so the next attempt is not made.
type sleepTimer struct {
	ctx   context.Context
	sleep func(context.Context, time.Duration) error
	c     chan time.Time
	err   error
}

func (t *sleepTimer) Start(d time.Duration) {
	t.c = make(chan time.Time, 1)
	t.err = t.sleep(t.ctx, d)
	t.c <- time.Now()
}

func (t *sleepTimer) Stop() {}

func (t *sleepTimer) C() <-chan time.Time { return t.c }

// Do runs fn until it succeeds or the attempt budget is spent. op and args
// identify the call in the single error line logged on final failure. The
// returned error wraps the error of the last attempt.
func Do[T any](ctx context.Context, p Policy, op string, args []any, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	n := p.attempts()

	var timer backoff.Timer
	var st *sleepTimer
	if p.Sleep != nil {
		st = &sleepTimer{ctx: ctx, sleep: p.Sleep}
		timer = st
	}

	var lastErr error
	made := 0
	attempt := func() (T, error) {
		if st != nil && st.err != nil {
			return zero, backoff.Permanent(st.err)
		}
		made++
		v, err := fn(ctx)
		if err != nil {
			lastErr = err
		}
		return v, err
	}
	notify := func(err error, d time.Duration) {
		p.logger().Debug("retry: attempt failed", "op", op, "attempt", made, "backoff", d, "error", err)
	}

	v, err := backoff.RetryNotifyWithTimerAndData(attempt, p.backOff(ctx, n), notify, timer)
	if err == nil {
		return v, nil
	}
	if lastErr == nil {
		return zero, err
	}
	if made < n {
		// stopped during a backoff sleep
		p.logger().Error("retry: operation cancelled", "op", op, "args", args, "attempts", made, "error", lastErr)
		return zero, errors.Join(err, fmt.Errorf("%s: %w", op, lastErr))
	}
	p.logger().Error("retry: operation failed", "op", op, "args", args, "attempts", n, "error", lastErr)
	return zero, fmt.Errorf("%s failed after %d attempts: %w", op, n, lastErr)
}
