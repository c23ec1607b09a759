package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply. Content answers Generate, Vectors
// answers Embed; a set Err is returned instead of either.
type MockResponse struct {
	Content    json.RawMessage
	Vectors    [][]float32
	Usage      Usage
	StopReason string
	Err        error
}

// MockProvider replays scripted replies in order and records what it was
// asked. Generate and Embed draw from the same queue. An empty queue
// answers ErrProviderUnavailable.
type MockProvider struct {
	mu         sync.Mutex
	queue      []MockResponse
	Calls      []Request
	EmbedCalls []EmbedRequest
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// pop must be called with mu held.
func (m *MockProvider) pop(ctx context.Context) (MockResponse, error) {
	if err := ctx.Err(); err != nil {
		return MockResponse{}, err
	}
	if len(m.queue) == 0 {
		return MockResponse{}, &ErrProviderUnavailable{}
	}
	r := m.queue[0]
	m.queue = m.queue[1:]
	return r, r.Err
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)

	r, err := m.pop(ctx)
	if err != nil {
		return nil, err
	}
	stop := r.StopReason
	if stop == "" {
		stop = "end"
	}
	return &Response{Content: r.Content, Usage: r.Usage, Model: "mock", StopReason: stop}, nil
}

func (m *MockProvider) Embed(ctx context.Context, req EmbedRequest) (*EmbedResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmbedCalls = append(m.EmbedCalls, req)

	r, err := m.pop(ctx)
	if err != nil {
		return nil, err
	}
	return &EmbedResponse{Vectors: r.Vectors, Usage: r.Usage, Model: "mock"}, nil
}

func (m *MockProvider) ModelID() string          { return "mock" }
func (m *MockProvider) EmbeddingModelID() string { return "mock" }

// CallCount is the number of Generate and Embed calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls) + len(m.EmbedCalls)
}
