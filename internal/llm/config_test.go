package llm

import (
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
		{
			name:    "openai embeddings without key",
			cfg:     Config{Provider: "mock", EmbeddingProvider: "openai"},
			wantErr: true,
		},
		{
			name:    "gemini embeddings with key",
			cfg:     Config{Provider: "mock", EmbeddingProvider: "gemini", Gemini: GeminiConfig{APIKey: "k"}},
			wantErr: false,
		},
		{
			name:    "unknown embedding provider",
			cfg:     Config{Provider: "mock", EmbeddingProvider: "word2vec"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DONGWHA_LLM_PROVIDER", "openrouter")
	t.Setenv("DONGWHA_OPENROUTER_API_KEY", "sk-or")
	t.Setenv("DONGWHA_OPENAI_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("DONGWHA_LLM_TIMEOUT", "5s")
	t.Setenv("DONGWHA_LLM_MAX_ATTEMPTS", "nope")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openrouter" || cfg.OpenRouter.APIKey != "sk-or" {
		t.Fatalf("provider not read: %+v", cfg)
	}
	if cfg.OpenAI.BaseURL != "http://localhost:8080/v1" {
		t.Fatalf("base URL = %q", cfg.OpenAI.BaseURL)
	}
	if cfg.Retry.Timeout != 5*time.Second {
		t.Fatalf("timeout = %s", cfg.Retry.Timeout)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Fatalf("bad attempt count should keep the default, got %d", cfg.Retry.MaxAttempts)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no config without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-oai")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a config")
	}
	if cfg.Provider != "openai" || cfg.EmbeddingProvider != "openai" || cfg.OpenAI.APIKey != "sk-oai" {
		t.Fatalf("openai should win over anthropic: %+v", cfg)
	}
}
