package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-sonnet", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

// anthropicMessage answers with the given text blocks and stop reason.
func anthropicMessage(stop string, texts ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blocks := make([]map[string]any, len(texts))
		for i, text := range texts {
			blocks[i] = map[string]any{"type": "text", "text": text}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     blocks,
			"model":       "claude-sonnet-4-20250514",
			"stop_reason": stop,
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
		})
	}
}

func anthropicFailure(status int, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Stop the SDK's own retries from slowing the test down.
		w.Header().Set("x-should-retry", "false")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": kind, "message": http.StatusText(status)},
		})
	}
}

func ask(content string) Request {
	return Request{Messages: []Message{{Role: RoleUser, Content: content}}, MaxTokens: 100}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	var body map[string]any
	srv := anthropicMessage("end_turn", "토끼/Noun 가/Josa")
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		srv(w, r)
	})

	req := ask("토끼가")
	req.System = "You are a Korean part-of-speech tagger."
	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q", resp.StopReason)
	}
	if body["model"] != "claude-sonnet-4-20250514" {
		t.Errorf("short model name not resolved: %v", body["model"])
	}
	if _, ok := body["system"]; !ok {
		t.Error("system prompt not sent")
	}
}

func TestAnthropicProvider_Errors(t *testing.T) {
	tests := []struct {
		status int
		kind   string
		want   func(error) bool
	}{
		{http.StatusTooManyRequests, "rate_limit_error", func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }},
		{http.StatusUnauthorized, "authentication_error", func(err error) bool { var e *ErrAuth; return errors.As(err, &e) }},
		{http.StatusInternalServerError, "api_error", func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		p := newTestAnthropicProvider(t, anthropicFailure(tt.status, tt.kind))
		_, err := p.Generate(context.Background(), ask("test"))
		if !tt.want(err) {
			t.Errorf("status %d: got %T (%v)", tt.status, err, err)
		}
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, anthropicModels); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAnthropicProvider_JoinsTextBlocks(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicMessage("end_turn", `{"tokens":`, `[]}`))
	req := ask("토끼가")
	req.Messages = append(req.Messages, Message{Role: RoleAssistant, Content: "{"})

	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"tokens":[]}` {
		t.Fatalf("unexpected content %s", resp.Content)
	}
}

func TestAnthropicProvider_TruncatedStructuredOutput(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicMessage("max_tokens", `{"tokens":[{"surface":"토`))

	req := ask("test")
	req.Schema = tagSchema()
	_, err := p.Generate(context.Background(), req)
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}

	resp, err := p.Generate(context.Background(), ask("test"))
	if err != nil {
		t.Fatalf("plain text should pass through: %v", err)
	}
	if resp.StopReason != "max_tokens" {
		t.Fatalf("stop reason = %q", resp.StopReason)
	}
}

func TestAnthropicProvider_FencedJSON(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicMessage("end_turn", "```json\n{\"tokens\":[{\"surface\":\"민지\",\"tag\":\"Noun\"}]}\n```"))

	req := ask("test")
	req.Schema = tagSchema()
	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"tokens":[{"surface":"민지","tag":"Noun"}]}` {
		t.Fatalf("unexpected content %s", resp.Content)
	}
}

func TestAnthropicProvider_NoText(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicMessage("end_turn"))
	_, err := p.Generate(context.Background(), ask("test"))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}
