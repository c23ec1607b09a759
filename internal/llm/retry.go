package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

type retryProvider struct {
	Provider
	cfg RetryConfig
}

// WithRetry retries transient Generate failures with jittered
// exponential backoff.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retryProvider{Provider: p, cfg: cfg}
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	return retry(ctx, r.cfg, func(ctx context.Context) (*Response, error) { return r.Provider.Generate(ctx, req) })
}

type retryEmbedder struct {
	Embedder
	cfg RetryConfig
}

// WithEmbedRetry is WithRetry for an Embedder.
func WithEmbedRetry(e Embedder, cfg RetryConfig) Embedder {
	return &retryEmbedder{Embedder: e, cfg: cfg}
}

func (r *retryEmbedder) Embed(ctx context.Context, req EmbedRequest) (*EmbedResponse, error) {
	return retry(ctx, r.cfg, func(ctx context.Context) (*EmbedResponse, error) { return r.Embedder.Embed(ctx, req) })
}

type verdict int

const (
	giveUp verdict = iota
	again
	againOnce // an unparsable reply gets a single second chance
)

func classify(err error) verdict {
	var (
		maxTok  *ErrMaxTokensExceeded
		auth    *ErrAuth
		invalid *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return giveUp
	case errors.As(err, &maxTok), errors.As(err, &auth):
		return giveUp
	case errors.As(err, &invalid):
		return againOnce
	}
	// Rate limits, 5xx and network errors.
	return again
}

func retry[T any](ctx context.Context, cfg RetryConfig, call func(context.Context) (T, error)) (T, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	var out T
	var err error
	usedInvalid := false
	attempts := max(cfg.MaxAttempts, 1)
	for attempt := 0; attempt < attempts; attempt++ {
		if out, err = call(ctx); err == nil {
			return out, nil
		}
		switch classify(err) {
		case giveUp:
			return out, err
		case againOnce:
			if usedInvalid {
				return out, err
			}
			usedInvalid = true
		}
		if attempt == attempts-1 {
			break
		}
		t := time.NewTimer(backoff(cfg, attempt, err))
		select {
		case <-ctx.Done():
			t.Stop()
			return out, ctx.Err()
		case <-t.C:
		}
	}
	return out, err
}

// backoff honours a provider Retry-After, else grows by Multiplier up to
// MaxWait with ±20% jitter.
func backoff(cfg RetryConfig, attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	wait := math.Min(float64(cfg.InitialWait)*math.Pow(cfg.Multiplier, float64(attempt)), float64(cfg.MaxWait))
	wait *= 0.8 + 0.4*rand.Float64()
	return time.Duration(max(wait, 0))
}
