package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config selects the chat provider used by the LLM tagger and the
// embedding provider used by the remote sentence encoder.
type Config struct {
	// Provider is anthropic, openai, gemini, openrouter or mock.
	Provider string
	// EmbeddingProvider is openai, gemini or mock. Empty means none.
	EmbeddingProvider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	// BaseURL points the client at any OpenAI-compatible endpoint.
	BaseURL string
}

type GeminiConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
	// Timeout bounds one call including all of its retries. Zero means
	// no bound beyond the caller's context.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini", EmbeddingModel: "text-embedding-3-small"},
		Gemini:     GeminiConfig{Model: "gemini-flash", EmbeddingModel: "text-embedding-004"},
		OpenRouter: OpenRouterConfig{Model: defaultOpenRouterModel},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
			Timeout:     30 * time.Second,
		},
	}
}

// envString binds DONGWHA_<name> to a string field.
func envString(name string, dst *string) {
	if v := os.Getenv("DONGWHA_" + name); v != "" {
		*dst = v
	}
}

// ConfigFromEnv overlays DONGWHA_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for name, dst := range map[string]*string{
		"LLM_PROVIDER":           &cfg.Provider,
		"EMBEDDING_PROVIDER":     &cfg.EmbeddingProvider,
		"ANTHROPIC_API_KEY":      &cfg.Anthropic.APIKey,
		"ANTHROPIC_MODEL":        &cfg.Anthropic.Model,
		"ANTHROPIC_BASE_URL":     &cfg.Anthropic.BaseURL,
		"OPENAI_API_KEY":         &cfg.OpenAI.APIKey,
		"OPENAI_MODEL":           &cfg.OpenAI.Model,
		"OPENAI_EMBEDDING_MODEL": &cfg.OpenAI.EmbeddingModel,
		"OPENAI_BASE_URL":        &cfg.OpenAI.BaseURL,
		"GEMINI_API_KEY":         &cfg.Gemini.APIKey,
		"GEMINI_MODEL":           &cfg.Gemini.Model,
		"GEMINI_EMBEDDING_MODEL": &cfg.Gemini.EmbeddingModel,
		"OPENROUTER_API_KEY":     &cfg.OpenRouter.APIKey,
		"OPENROUTER_MODEL":       &cfg.OpenRouter.Model,
		"OPENROUTER_BASE_URL":    &cfg.OpenRouter.BaseURL,
	} {
		envString(name, dst)
	}
	if v := os.Getenv("DONGWHA_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}
	if v := os.Getenv("DONGWHA_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Retry.Timeout = d
		}
	}
	return cfg
}

// vendorKeys lists the vendors' own key variables in probe order.
var vendorKeys = []struct {
	env       string
	provider  string
	embedding string
	set       func(*Config, string)
}{
	{"GEMINI_API_KEY", "gemini", "gemini", func(c *Config, k string) { c.Gemini.APIKey = k }},
	{"OPENAI_API_KEY", "openai", "openai", func(c *Config, k string) { c.OpenAI.APIKey = k }},
	{"ANTHROPIC_API_KEY", "anthropic", "", func(c *Config, k string) { c.Anthropic.APIKey = k }},
	{"OPENROUTER_API_KEY", "openrouter", "", func(c *Config, k string) { c.OpenRouter.APIKey = k }},
}

// DiscoverConfig builds a Config from the first vendor key variable that
// is set. Anthropic and OpenRouter have no embedding endpoint.
func DiscoverConfig() (Config, bool) {
	for _, v := range vendorKeys {
		key := os.Getenv(v.env)
		if key == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider, cfg.EmbeddingProvider = v.provider, v.embedding
		v.set(&cfg, key)
		return cfg, true
	}
	return Config{}, false
}

// Validate checks that the chosen providers have their keys.
func (c Config) Validate() error {
	keys := map[string]string{
		"anthropic":  c.Anthropic.APIKey,
		"openai":     c.OpenAI.APIKey,
		"gemini":     c.Gemini.APIKey,
		"openrouter": c.OpenRouter.APIKey,
	}
	need := func(provider, use string) error {
		if keys[provider] == "" {
			return fmt.Errorf("DONGWHA_%s_API_KEY is required for %s %s", strings.ToUpper(provider), provider, use)
		}
		return nil
	}

	switch c.Provider {
	case "mock":
	case "anthropic", "openai", "gemini", "openrouter":
		if err := need(c.Provider, "generation"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}

	switch c.EmbeddingProvider {
	case "", "mock":
	case "openai", "gemini":
		return need(c.EmbeddingProvider, "embeddings")
	default:
		return fmt.Errorf("unknown embedding provider: %q", c.EmbeddingProvider)
	}
	return nil
}
