package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/pkg/collection"
	"github.com/logimart/storefront/pkg/store"
)

// CategoryRepository handles catalog categories.
type CategoryRepository struct {
	mu       sync.Mutex
	store    store.Store
	seq      *Sequence
	products *ProductRepository
}

func (r *CategoryRepository) load(ctx context.Context) []models.Category {
	return store.Collection[models.Category](ctx, r.store, store.KeyCategories)
}

func (r *CategoryRepository) loadForUpdate(ctx context.Context) ([]models.Category, error) {
	items, err := store.Load[models.Category](ctx, r.store, store.KeyCategories)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return items, nil
}

func (r *CategoryRepository) save(ctx context.Context, cats []models.Category) error {
	if err := store.SaveCollection(ctx, r.store, store.KeyCategories, cats); err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	return nil
}

func (r *CategoryRepository) All(ctx context.Context) []models.Category {
	return r.load(ctx)
}

// Create adds a category named name. Its count starts from the products
// already filed under the slug.
func (r *CategoryRepository) Create(ctx context.Context, name string) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slug := models.Slugify(name)
	cats, err := r.loadForUpdate(ctx)
	if err != nil {
		return models.Category{}, err
	}
	if collection.Contains(cats, func(c models.Category) bool { return c.Slug == slug }) {
		return models.Category{}, ErrDuplicateCategory
	}

	products, err := r.products.loadForUpdate(ctx)
	if err != nil {
		return models.Category{}, err
	}
	filed := collection.Filter(products, func(p models.Product) bool { return strings.EqualFold(p.Category, slug) })

	maxID := collection.Reduce(cats, 0, func(m int, c models.Category) int { return max(m, c.ID) })
	id, err := r.seq.Next(ctx, "categories", maxID)
	if err != nil {
		return models.Category{}, err
	}

	cat := models.Category{
		ID:    id,
		Name:  strings.TrimSpace(name),
		Slug:  slug,
		Count: len(filed),
	}
	if err := r.save(ctx, append(cats, cat)); err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

// RefreshCounts recomputes every count from the current catalog.
func (r *CategoryRepository) RefreshCounts(ctx context.Context) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.products.loadForUpdate(ctx)
	if err != nil {
		return nil, err
	}
	byCategory := collection.GroupBy(products, func(p models.Product) string { return strings.ToLower(p.Category) })

	cats, err := r.loadForUpdate(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cats {
		cats[i].Count = len(byCategory[cats[i].Slug])
	}
	if err := r.save(ctx, cats); err != nil {
		return nil, err
	}
	return cats, nil
}
