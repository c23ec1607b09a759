// Package llm is the thin client the tagger and the remote sentence
// encoder use to reach a hosted model. Providers share one request shape,
// one error vocabulary and one retry and logging stack.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider generates a completion. When the request carries a Schema the
// returned Content is JSON that has been validated against it.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Embedder turns texts into vectors, one per text, in input order.
type Embedder interface {
	Embed(ctx context.Context, req EmbedRequest) (*EmbedResponse, error)
	EmbeddingModelID() string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

type Request struct {
	System   string
	Messages []Message

	// Schema switches the provider to its structured output mode.
	Schema *Schema

	MaxTokens int
	// Temperature zero leaves the provider default.
	Temperature float64
}

// Schema is a named JSON Schema. Name doubles as the cache key for the
// compiled validator, so two schemas must not share a name.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string
	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Decode unmarshals the structured content into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Content, v); err != nil {
		return &ErrInvalidResponse{Content: r.Content, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

type EmbedRequest struct {
	Texts []string
}

type EmbedResponse struct {
	Vectors [][]float32
	Usage   Usage
	Model   string
}
