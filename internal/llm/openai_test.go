package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// chatReply answers a chat completion with one choice.
func chatReply(content, finish string, seen func(body map[string]any)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			seen(body)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "chatcmpl-test",
			"model": "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var got map[string]any
	p := newTestOpenAIProvider(t, chatReply("토끼/Noun 가/Josa", "stop", func(b map[string]any) { got = b }))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a Korean part-of-speech tagger.",
		Messages:  []Message{{Role: RoleUser, Content: "토끼가"}},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q", resp.StopReason)
	}

	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system + user messages, got %v", got["messages"])
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != "system" {
		t.Errorf("first message role = %v", first["role"])
	}
	if _, ok := got["response_format"]; ok {
		t.Error("plain request should not ask for a response format")
	}
}

func TestOpenAIProvider_StructuredOutput(t *testing.T) {
	schema := &Schema{
		Name: "openai-tokens",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"tokens"},
			"properties": map[string]any{
				"tokens": map[string]any{"type": "array"},
			},
		},
	}

	var got map[string]any
	p := newTestOpenAIProvider(t, chatReply(`{"tokens":[{"surface":"토끼","tag":"Noun"}]}`, "stop", func(b map[string]any) { got = b }))
	resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "토끼"}}, Schema: schema})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rf, _ := got["response_format"].(map[string]any)
	if rf["type"] != "json_schema" {
		t.Errorf("response_format = %v", got["response_format"])
	}

	var out struct {
		Tokens []struct{ Surface string } `json:"tokens"`
	}
	if err := resp.Decode(&out); err != nil || len(out.Tokens) != 1 || out.Tokens[0].Surface != "토끼" {
		t.Fatalf("decode = %v, %+v", err, out)
	}

	cut := newTestOpenAIProvider(t, chatReply(`{"tokens":[`, "length", nil))
	_, err = cut.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "토끼"}}, Schema: schema})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		status int
		want   func(error) bool
	}{
		{http.StatusTooManyRequests, func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }},
		{http.StatusUnauthorized, func(err error) bool { var e *ErrAuth; return errors.As(err, &e) }},
		{http.StatusInternalServerError, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tt.status)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"type": "error", "message": http.StatusText(tt.status)},
			})
		})
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "test"}}, MaxTokens: 100})
		if !tt.want(err) {
			t.Errorf("status %d: got %T (%v)", tt.status, err, err)
		}
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{}); err == nil {
		t.Error("expected an error without an API key")
	}
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o", BaseURL: "http://localhost:8080/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestOpenAIProvider_Embed(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["model"] != "text-embedding-3-small" {
			t.Errorf("model = %v", body["model"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  "text-embedding-3-small",
			"data": []map[string]any{
				{"object": "embedding", "index": 1, "embedding": []float32{0, 1}},
				{"object": "embedding", "index": 0, "embedding": []float32{1, 0}},
			},
			"usage": map[string]any{"prompt_tokens": 7, "total_tokens": 7},
		})
	})
	p.embedModel = "text-embedding-3-small"

	resp, err := p.Embed(context.Background(), EmbedRequest{Texts: []string{"토끼가 뛰었다.", "거북이가 걸었다."}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Vectors) != 2 || resp.Vectors[0][0] != 1 || resp.Vectors[1][1] != 1 {
		t.Fatalf("vectors out of order: %v", resp.Vectors)
	}
	if resp.Usage.InputTokens != 7 {
		t.Errorf("input tokens = %d", resp.Usage.InputTokens)
	}
}

func TestOpenAIProvider_EmbedEmpty(t *testing.T) {
	p := &OpenAIProvider{embedModel: "text-embedding-3-small"}
	resp, err := p.Embed(context.Background(), EmbedRequest{})
	if err != nil || len(resp.Vectors) != 0 || resp.Model != "text-embedding-3-small" {
		t.Fatalf("Embed(empty) = %+v, %v", resp, err)
	}
}

func TestOpenAIProvider_EmbedCountMismatch(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   []map[string]any{{"object": "embedding", "index": 0, "embedding": []float32{1}}},
		})
	})
	_, err := p.Embed(context.Background(), EmbedRequest{Texts: []string{"a", "b"}})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}
