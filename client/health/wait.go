package health

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// DefaultBackOff starts at 500ms, caps single waits at 5s and gives up after
// one minute.
func DefaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = time.Minute
	return b
}

// WaitHealthy blocks until probe succeeds, retrying with b (DefaultBackOff
// when nil). It returns the last probe error once b gives up, or the context
// error when ctx ends first.
func WaitHealthy(ctx context.Context, log zerolog.Logger, probe Prober, b backoff.BackOff) (time.Duration, error) {
	if b == nil {
		b = DefaultBackOff()
	}
	start := time.Now()
	attempts := 0
	op := func() error {
		attempts++
		_, err := probe.Health(ctx)
		return err
	}
	notify := func(err error, next time.Duration) {
		log.Debug().Err(err).Int("attempt", attempts).Dur("retry_in", next).Msg("backend not healthy yet")
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify); err != nil {
		return time.Since(start), err
	}
	log.Debug().Int("attempts", attempts).Dur("elapsed", time.Since(start)).Msg("backend healthy")
	return time.Since(start), nil
}
