// Package ident provides the identifier primitives shared by domain modules:
// a random 64-bit candidate source and an allocator that retries against the
// backing store until a free identifier is found.
package ident

import (
	"math/rand/v2"
	"sync"
)

// Source produces candidate identifiers. Generation itself cannot fail;
// uniqueness is the Allocator's concern.
type Source interface {
	Next() uint64
}

// RandomSource draws candidates uniformly from the full 64-bit range.
type RandomSource struct{}

func (RandomSource) Next() uint64 {
	return rand.Uint64()
}

// SequenceSource replays a programmed list of candidates, repeating the final
// value once the list is exhausted. Deterministic stand-in for RandomSource in
// tests that steer the retry loop.
type SequenceSource struct {
	mu     sync.Mutex
	values []uint64
	calls  int
}

func NewSequenceSource(values ...uint64) *SequenceSource {
	return &SequenceSource{values: values}
}

func (s *SequenceSource) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if len(s.values) == 0 {
		return 0
	}
	idx := s.calls - 1
	if idx >= len(s.values) {
		idx = len(s.values) - 1
	}
	return s.values[idx]
}

// Calls reports how many candidates have been drawn so far.
func (s *SequenceSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
