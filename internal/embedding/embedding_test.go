package embedding

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abhisek/dongwha/internal/llm"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{"identical", Vector{1, 2, 3}, Vector{1, 2, 3}, 1},
		{"orthogonal", Vector{1, 0}, Vector{0, 1}, 0},
		{"opposite", Vector{1, 0}, Vector{-1, 0}, -1},
		{"length mismatch", Vector{1}, Vector{1, 0}, 0},
		{"zero vector", Vector{0, 0}, Vector{1, 0}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if d := got - tt.want; d > 1e-6 || d < -1e-6 {
				t.Fatalf("Cosine = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestNGram_WordOrderInvariant(t *testing.T) {
	enc := NewNGram(0)
	ctx := context.Background()

	sim, err := Similarity(ctx, enc, "토끼가 숲으로 달려갔다.", "숲으로 토끼가 달려갔다.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim < 0.999 {
		t.Fatalf("permuted sentence similarity = %f, want ~1", sim)
	}

	other, err := Similarity(ctx, enc, "토끼가 숲으로 달려갔다.", "임금님은 성에서 잔치를 열었습니다.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other >= 0.85 {
		t.Fatalf("unrelated sentence similarity = %f, want < 0.85", other)
	}
}

func TestNGram_Deterministic(t *testing.T) {
	enc := NewNGram(64)
	a, _ := enc.Encode(context.Background(), "곰 세 마리")
	b, _ := enc.Encode(context.Background(), "곰 세 마리")
	if len(a) != 64 {
		t.Fatalf("dim = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vectors differ at %d", i)
		}
	}
}

func TestRemote_UsesEmbedder(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Vectors: [][]float32{{0.5, 0.5}}})
	r := NewRemote(mock)

	v, err := r.Encode(context.Background(), "안녕")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 2 {
		t.Fatalf("dim = %d, want 2", len(v))
	}
	if mock.EmbedCalls[0].Texts[0] != "안녕" {
		t.Fatalf("text not forwarded: %+v", mock.EmbedCalls)
	}
}

func TestRemote_PropagatesError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	_, err := NewRemote(mock).Encode(context.Background(), "x")
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}
}

func TestCached_EncodesOnce(t *testing.T) {
	var calls atomic.Int32
	inner := OracleFunc(func(ctx context.Context, text string) (Vector, error) {
		calls.Add(1)
		return Vector{1, 0}, nil
	})
	mem := NewMemoryCache(10)
	c := WithCache(inner, mem)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Encode(context.Background(), "같은 문장"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	if _, err := c.Encode(context.Background(), "같은 문장"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := calls.Load(); n < 1 || n > 8 {
		t.Fatalf("inner calls = %d", n)
	}
	before := calls.Load()
	c.Encode(context.Background(), "같은 문장")
	if calls.Load() != before {
		t.Fatal("cached text re-encoded")
	}
	if mem.Len() != 1 {
		t.Fatalf("cache len = %d, want 1", mem.Len())
	}
}

func TestCached_ErrorNotCached(t *testing.T) {
	fail := true
	inner := OracleFunc(func(ctx context.Context, text string) (Vector, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return Vector{1}, nil
	})
	c := WithCache(inner, NewMemoryCache(10))
	if _, err := c.Encode(context.Background(), "a"); err == nil {
		t.Fatal("expected error")
	}
	fail = false
	if _, err := c.Encode(context.Background(), "a"); err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
}

func TestMemoryCache_ClearsWhenFull(t *testing.T) {
	m := NewMemoryCache(2)
	ctx := context.Background()
	m.Set(ctx, "a", Vector{1})
	m.Set(ctx, "b", Vector{2})
	m.Set(ctx, "c", Vector{3})
	if m.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Len())
	}
	if _, ok, _ := m.Get(ctx, "c"); !ok {
		t.Fatal("latest entry missing")
	}
}

func TestVectorCodec(t *testing.T) {
	v := Vector{0.25, -1.5, 3}
	got, err := decodeVector(encodeVector(v))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range v {
		if got[i] != v[i] {
			t.Fatalf("got %v, want %v", got, v)
		}
	}
	if _, err := decodeVector([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}

func TestThrottled_HonorsContext(t *testing.T) {
	th := WithRateLimit(NewNGram(8), 0.001, 1)
	ctx := context.Background()
	if _, err := th.Encode(ctx, "첫"); err != nil {
		t.Fatalf("first call should use burst: %v", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if _, err := th.Encode(ctx, "둘"); err == nil {
		t.Fatal("expected rate limiter to reject before deadline")
	}
}

func TestCached_CancelledCallerLeavesSharedEncode(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	inner := OracleFunc(func(ctx context.Context, text string) (Vector, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Vector{1, 0}, nil
	})
	c := WithCache(inner, NewMemoryCache(10))

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.Encode(ctxA, "같은 문장")
		errA <- err
	}()
	<-started

	type result struct {
		v   Vector
		err error
	}
	resB := make(chan result, 1)
	go func() {
		v, err := c.Encode(context.Background(), "같은 문장")
		resB <- result{v, err}
	}()

	cancelA()
	select {
	case err := <-errA:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("cancelled caller got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(release)
	select {
	case r := <-resB:
		if r.err != nil {
			t.Fatalf("other caller failed: %v", r.err)
		}
		if len(r.v) != 2 || r.v[0] != 1 {
			t.Fatalf("vector = %v", r.v)
		}
	case <-time.After(time.Second):
		t.Fatal("other caller never returned")
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("inner calls = %d, want 1", n)
	}
}
