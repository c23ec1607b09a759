package embedding

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttled limits how often the wrapped Oracle is called.
type Throttled struct {
	inner   Oracle
	limiter *rate.Limiter
}

// WithRateLimit wraps o so that it is called at most rps times per second
// with the given burst.
func WithRateLimit(o Oracle, rps float64, burst int) *Throttled {
	if burst <= 0 {
		burst = 1
	}
	return &Throttled{inner: o, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (t *Throttled) Encode(ctx context.Context, text string) (Vector, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return t.inner.Encode(ctx, text)
}
