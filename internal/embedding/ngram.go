package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// DefaultNGramDim is the vector width of the local encoder.
const DefaultNGramDim = 512

// NGram is an offline encoder that hashes the character unigrams and
// bigrams of each word into a fixed number of buckets. N-grams never span
// word boundaries, so reordering words leaves the vector unchanged.
type NGram struct {
	Dim int
}

// NewNGram returns a local encoder with dim buckets.
func NewNGram(dim int) *NGram {
	if dim <= 0 {
		dim = DefaultNGramDim
	}
	return &NGram{Dim: dim}
}

func (n *NGram) Encode(_ context.Context, text string) (Vector, error) {
	v := make(Vector, n.Dim)
	for _, w := range strings.Fields(text) {
		w = strings.Trim(w, `.,!?"'`)
		runes := []rune(w)
		for i := range runes {
			v[n.bucket(string(runes[i]))] += 1
			if i+1 < len(runes) {
				v[n.bucket(string(runes[i:i+2]))] += 2
			}
		}
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range v {
			v[i] *= inv
		}
	}
	return v, nil
}

func (n *NGram) bucket(gram string) int {
	h := fnv.New32a()
	h.Write([]byte(gram))
	return int(h.Sum32() % uint32(n.Dim))
}
