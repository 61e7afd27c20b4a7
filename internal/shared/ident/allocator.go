package ident

import (
	"context"
	"errors"
	"fmt"
)

// DefaultMaxAttempts caps the retry loop when the caller does not configure a
// budget of its own.
const DefaultMaxAttempts = 100

var (
	// ErrSpaceExhausted reports that every candidate within the attempt
	// budget was already registered.
	ErrSpaceExhausted = errors.New("identifier space exhausted")

	// ErrTakenCheck wraps a failure of the taken predicate. A failed check is
	// never treated as a free identifier.
	ErrTakenCheck = errors.New("identifier taken check failed")
)

// TakenFunc reports whether a candidate identifier is already registered.
// Implementations must be pure reads against the backing store.
type TakenFunc func(ctx context.Context, candidate uint64) (bool, error)

// Allocator hands out identifiers the backing store does not know yet. It
// holds no lock across attempts: two concurrent allocations may observe the
// same candidate as free, so the store's own uniqueness constraint stays the
// authoritative guard at registration time.
type Allocator struct {
	Source      Source
	MaxAttempts int
}

// Allocate draws candidates until the predicate reports one as free. It fails
// with ErrSpaceExhausted once the attempt budget is spent and with
// ErrTakenCheck as soon as the predicate itself fails.
func (a Allocator) Allocate(ctx context.Context, taken TakenFunc) (uint64, error) {
	attempts := a.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		candidate := a.Source.Next()
		inUse, err := taken(ctx, candidate)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrTakenCheck, err)
		}
		if !inUse {
			return candidate, nil
		}
	}
	return 0, ErrSpaceExhausted
}
