// Package wordvec loads pretrained word2vec vectors and answers
// nearest-neighbour queries for quiz distractors.
package wordvec

import (
	"cmp"
	"errors"
	"math"
	"slices"
)

// ErrUnknownWord is returned for words outside the model vocabulary.
var ErrUnknownWord = errors.New("word not in vocabulary")

// Neighbor is a similar word with its cosine score.
type Neighbor struct {
	Word  string
	Score float64
}

// Model is an immutable word→vector table.
type Model struct {
	dim   int
	words []string
	index map[string]int
	vecs  [][]float32 // unit length
}

// New builds a model from parallel word and vector slices. Vectors are
// normalised in place.
func New(words []string, vecs [][]float32) (*Model, error) {
	if len(words) != len(vecs) {
		return nil, errors.New("words and vectors differ in length")
	}
	m := &Model{words: words, vecs: vecs, index: make(map[string]int, len(words))}
	for i, w := range words {
		if m.dim == 0 {
			m.dim = len(vecs[i])
		}
		if len(vecs[i]) != m.dim {
			return nil, errors.New("inconsistent vector dimension for " + w)
		}
		normalize(vecs[i])
		if _, dup := m.index[w]; !dup {
			m.index[w] = i
		}
	}
	return m, nil
}

// Len returns the vocabulary size.
func (m *Model) Len() int { return len(m.words) }

// Dim returns the vector width.
func (m *Model) Dim() int { return m.dim }

// Has reports whether word is in the vocabulary.
func (m *Model) Has(word string) bool {
	_, ok := m.index[word]
	return ok
}

// Similarity returns the cosine similarity of two in-vocabulary words.
func (m *Model) Similarity(a, b string) (float64, error) {
	ia, ok := m.index[a]
	if !ok {
		return 0, ErrUnknownWord
	}
	ib, ok := m.index[b]
	if !ok {
		return 0, ErrUnknownWord
	}
	return dot(m.vecs[ia], m.vecs[ib]), nil
}

// NearestNeighbors returns the topN words most similar to word, best first,
// excluding the word itself.
func (m *Model) NearestNeighbors(word string, topN int) ([]Neighbor, error) {
	i, ok := m.index[word]
	if !ok {
		return nil, ErrUnknownWord
	}
	if topN <= 0 {
		return nil, nil
	}
	q := m.vecs[i]
	out := make([]Neighbor, 0, topN+1)
	for j, v := range m.vecs {
		if j == i || m.words[j] == word {
			continue
		}
		s := dot(q, v)
		if len(out) == topN && s <= out[len(out)-1].Score {
			continue
		}
		pos, _ := slices.BinarySearchFunc(out, s, func(n Neighbor, s float64) int {
			return cmp.Compare(s, n.Score)
		})
		out = slices.Insert(out, pos, Neighbor{Word: m.words[j], Score: s})
		if len(out) > topN {
			out = out[:topN]
		}
	}
	return out, nil
}

func normalize(v []float32) {
	var n float64
	for _, x := range v {
		n += float64(x) * float64(x)
	}
	if n == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(n))
	for i := range v {
		v[i] *= inv
	}
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}
