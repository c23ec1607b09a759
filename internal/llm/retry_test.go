package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2,
	}
}

var okReply = MockResponse{Content: json.RawMessage(`{"ok":true}`)}

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func TestRetry_Generate(t *testing.T) {
	garbled := MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}

	tests := []struct {
		name      string
		replies   []MockResponse
		wantCalls int
		wantErr   func(error) bool
	}{
		{
			name:      "first attempt",
			replies:   []MockResponse{okReply},
			wantCalls: 1,
		},
		{
			name:      "transient then success",
			replies:   []MockResponse{down(), okReply},
			wantCalls: 2,
		},
		{
			name:      "retry-after honoured",
			replies:   []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}, okReply},
			wantCalls: 2,
		},
		{
			name:      "attempts exhausted",
			replies:   []MockResponse{down(), down(), down(), okReply},
			wantCalls: 3,
			wantErr:   func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) },
		},
		{
			name:      "truncation is final",
			replies:   []MockResponse{{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{}`)}}, okReply},
			wantCalls: 1,
			wantErr:   func(err error) bool { var e *ErrMaxTokensExceeded; return errors.As(err, &e) },
		},
		{
			name:      "invalid reply gets one more chance",
			replies:   []MockResponse{garbled, garbled, okReply},
			wantCalls: 2,
			wantErr:   func(err error) bool { var e *ErrInvalidResponse; return errors.As(err, &e) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.replies...)
			resp, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(resp.Content) != `{"ok":true}` {
					t.Errorf("content = %s", resp.Content)
				}
			} else if !tt.wantErr(err) {
				t.Fatalf("unexpected error: %T (%v)", err, err)
			}
			if got := mock.CallCount(); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(down(), okReply)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, retryConfig()).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_TimeoutBoundsAllAttempts(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Second, Err: errors.New("429")}},
		okReply,
	)
	cfg := retryConfig()
	cfg.Timeout = 20 * time.Millisecond

	start := time.Now()
	_, err := WithRetry(mock, cfg).Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatal("timeout did not cut the Retry-After wait short")
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	if id := WithRetry(NewMockProvider(), retryConfig()).ModelID(); id != "mock" {
		t.Fatalf("ModelID = %q", id)
	}
}

func TestEmbedRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
		MockResponse{Vectors: [][]float32{{0.5, 0.5}}},
	)

	resp, err := WithEmbedRetry(mock, retryConfig()).Embed(context.Background(), EmbedRequest{Texts: []string{"x"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Vectors) != 1 {
		t.Fatalf("expected 1 vector, got %d", len(resp.Vectors))
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}
