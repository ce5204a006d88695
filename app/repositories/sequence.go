package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/logimart/storefront/pkg/logger"
	"github.com/logimart/storefront/pkg/store"
)

// Sequence hands out numeric ids that are never reused, even after a
// record is deleted. Counters live under logimart_sequences.
type Sequence struct {
	mu    sync.Mutex
	store store.Store
}

func NewSequence(s store.Store) *Sequence {
	return &Sequence{store: s}
}

// Next returns the next id for name. currentMax is the highest id present
// in the collection; it seeds the counter the first time.
func (q *Sequence) Next(ctx context.Context, name string, currentMax int) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	counters := map[string]int{}
	_, err := q.store.Get(ctx, store.KeySequences, &counters)
	switch {
	case errors.Is(err, store.ErrCorrupt):
		logger.WithCtx(ctx).Warn("sequence: corrupt counters, rebuilding", "error", err)
		counters = map[string]int{}
	case err != nil:
		return 0, fmt.Errorf("sequence %s: %w", name, err)
	}
	if counters == nil {
		counters = map[string]int{}
	}

	next := counters[name]
	if currentMax > next {
		next = currentMax
	}
	next++
	counters[name] = next

	if err := q.store.Set(ctx, store.KeySequences, counters); err != nil {
		return 0, fmt.Errorf("sequence %s: %w", name, err)
	}
	return next, nil
}
