package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/dongwha/internal/logger"
	"github.com/abhisek/dongwha/internal/store"
)

// NewProvider builds the configured chat provider. Calls are recorded in
// events and retried per cfg.Retry; the mock provider is returned bare.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, log *logger.Logger) (Provider, error) {
	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case "anthropic":
		p, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		p, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		p, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		p, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%s provider: %w", cfg.Provider, err)
	}
	// Each retry attempt is its own recorded event.
	return WithRetry(WithLogging(p, cfg.Provider, events, log), cfg.Retry), nil
}

// NewEmbedder is NewProvider for cfg.EmbeddingProvider.
func NewEmbedder(ctx context.Context, cfg Config, events store.EventRepo, log *logger.Logger) (Embedder, error) {
	var (
		e   Embedder
		err error
	)
	switch cfg.EmbeddingProvider {
	case "openai":
		e, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		e, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	case "":
		return nil, fmt.Errorf("no embedding provider configured")
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", cfg.EmbeddingProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("%s embedder: %w", cfg.EmbeddingProvider, err)
	}
	return WithEmbedRetry(WithEmbedLogging(e, cfg.EmbeddingProvider, events, log), cfg.Retry), nil
}
