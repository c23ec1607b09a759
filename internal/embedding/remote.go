package embedding

import (
	"context"
	"fmt"

	"github.com/abhisek/dongwha/internal/llm"
)

// Remote encodes text with a hosted embedding model.
type Remote struct {
	embedder llm.Embedder
}

// NewRemote wraps an llm.Embedder as an Oracle.
func NewRemote(e llm.Embedder) *Remote {
	return &Remote{embedder: e}
}

func (r *Remote) Encode(ctx context.Context, text string) (Vector, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeEmbedding)
	resp, err := r.embedder.Embed(ctx, llm.EmbedRequest{Texts: []string{text}})
	if err != nil {
		return nil, err
	}
	if len(resp.Vectors) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(resp.Vectors))
	}
	return resp.Vectors[0], nil
}
