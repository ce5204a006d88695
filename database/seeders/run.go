// Package seeders fills a fresh store with the LogiMart demo catalog.
//
// Usage (define a seeder in any file in this package):
//
//	func init() {
//	    seeders.Register("products", SeedProducts)
//	}
//
//	func SeedProducts(ctx context.Context, s store.Store) error {
//	    // write the collection only when it is absent …
//	    return nil
//	}
//
// RunAll has the store.Seeder signature, so it plugs straight into the
// adapter: store.New(driver, store.WithSeeder(seeders.RunAll)).
package seeders

import (
	"context"
	"fmt"
	"sync"

	"github.com/logimart/storefront/pkg/auth"
	"github.com/logimart/storefront/pkg/logger"
	"github.com/logimart/storefront/pkg/store"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(ctx context.Context, s store.Store) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
	hasher  auth.Hasher = auth.NewBcryptHasher()
)

// Register adds a seeder to the global registry.
// Call this from init() in your seeder files.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// SetHasher replaces the hasher used for seeded passwords.
func SetHasher(h auth.Hasher) {
	mu.Lock()
	defer mu.Unlock()
	hasher = h
}

func currentHasher() auth.Hasher {
	mu.Lock()
	defer mu.Unlock()
	return hasher
}

// RunAll executes every registered seeder in registration order.
// It stops on the first error.
func RunAll(ctx context.Context, s store.Store) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	log := logger.WithCtx(ctx)
	for _, e := range current {
		log.Debug("seeder: running", "name", e.name)
		if err := e.fn(ctx, s); err != nil {
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
	}
	return nil
}
