// Package embedding provides the sentence-embedding oracle used to score
// puzzle answers, with a local n-gram encoder, a remote encoder backed by
// an LLM provider, and caching and throttling decorators.
package embedding

import (
	"context"
	"fmt"
	"math"
)

// Vector is a dense sentence embedding.
type Vector []float32

// Oracle encodes text into a fixed-length vector.
type Oracle interface {
	Encode(ctx context.Context, text string) (Vector, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, text string) (Vector, error)

func (f OracleFunc) Encode(ctx context.Context, text string) (Vector, error) { return f(ctx, text) }

// Cosine returns the cosine similarity of a and b in [-1, 1]. Vectors of
// different length or with zero magnitude score 0.
func Cosine(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return max(-1, min(1, sim))
}

// Similarity encodes both texts with o and returns their cosine similarity.
func Similarity(ctx context.Context, o Oracle, a, b string) (float64, error) {
	va, err := o.Encode(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("encode: %w", err)
	}
	vb, err := o.Encode(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("encode: %w", err)
	}
	if len(va) != len(vb) {
		return 0, fmt.Errorf("dimension mismatch: %d != %d", len(va), len(vb))
	}
	return Cosine(va, vb), nil
}
