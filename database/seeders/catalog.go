package seeders

import (
	"context"
	"errors"

	"github.com/logimart/storefront/pkg/logger"
	"github.com/logimart/storefront/pkg/store"
)

func init() {
	Register("users", SeedUsers)
	Register("products", SeedProducts)
	Register("orders", SeedOrders)
	Register("categories", SeedCategories)
}

// SeedProducts writes the baseline catalog when no product collection exists.
func SeedProducts(ctx context.Context, s store.Store) error {
	return seedIfAbsent(ctx, s, store.KeyProducts, Products())
}

// SeedOrders writes the baseline orders when no order collection exists.
func SeedOrders(ctx context.Context, s store.Store) error {
	return seedIfAbsent(ctx, s, store.KeyOrders, Orders())
}

// SeedCategories writes the baseline categories when none exist.
func SeedCategories(ctx context.Context, s store.Store) error {
	return seedIfAbsent(ctx, s, store.KeyCategories, Categories())
}

// seedIfAbsent only writes when key is missing. A present but corrupt
// value is left for the repositories, which read it as empty.
func seedIfAbsent[T any](ctx context.Context, s store.Store, key string, items []T) error {
	var existing []T
	found, err := s.Get(ctx, key, &existing)
	if errors.Is(err, store.ErrCorrupt) {
		logger.WithCtx(ctx).Warn("seeder: keeping corrupt collection", "key", key)
		return nil
	}
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return store.SaveCollection(ctx, s, key, items)
}
