// Package sampling provides the random draws used by the generators.
//
// The default Source delegates to the math/rand/v2 top-level functions,
// which are safe for concurrent use and carry no per-request state. Tests
// inject a seeded Source to make draws reproducible.
package sampling

import (
	"math/rand/v2"
	"sync"
)

// Source is the randomness capability generators depend on.
type Source interface {
	// IntN returns a uniform int in [0, n). It panics if n <= 0.
	IntN(n int) int
	// Shuffle pseudo-randomizes the order of n elements.
	Shuffle(n int, swap func(i, j int))
}

type globalSource struct{}

func (globalSource) IntN(n int) int                    { return rand.IntN(n) }
func (globalSource) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Default returns the process-wide goroutine-safe source.
func Default() Source { return globalSource{} }

// lockedSource serializes access to a seeded *rand.Rand.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// Seeded returns a deterministic Source. It is safe for concurrent use.
func Seeded(seed uint64) Source {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

func (s *lockedSource) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.Shuffle(n, swap)
}

// Or returns src, or the default source when src is nil.
func Or(src Source) Source {
	if src == nil {
		return Default()
	}
	return src
}

// Choice returns a uniformly chosen element of items.
// The second result is false when items is empty.
func Choice[T any](src Source, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[src.IntN(len(items))], true
}

// Shuffled returns a shuffled copy of items.
func Shuffled[T any](src Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	src.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Sample returns k distinct elements of items chosen uniformly without
// replacement. If k exceeds len(items), all items are returned shuffled.
func Sample[T any](src Source, items []T, k int) []T {
	out := Shuffled(src, items)
	if k < len(out) {
		out = out[:k]
	}
	return out
}
