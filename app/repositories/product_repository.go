package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/pkg/collection"
	"github.com/logimart/storefront/pkg/store"
)

// ProductRepository handles the catalog.
type ProductRepository struct {
	mu    sync.Mutex
	store store.Store
	seq   *Sequence
}

func (r *ProductRepository) load(ctx context.Context) []models.Product {
	return store.Collection[models.Product](ctx, r.store, store.KeyProducts)
}

func (r *ProductRepository) loadForUpdate(ctx context.Context) ([]models.Product, error) {
	items, err := store.Load[models.Product](ctx, r.store, store.KeyProducts)
	if err != nil {
		return nil, fmt.Errorf("products: %w", err)
	}
	return items, nil
}

func (r *ProductRepository) save(ctx context.Context, products []models.Product) error {
	if err := store.SaveCollection(ctx, r.store, store.KeyProducts, products); err != nil {
		return fmt.Errorf("products: %w", err)
	}
	return nil
}

func (r *ProductRepository) All(ctx context.Context) []models.Product {
	return r.load(ctx)
}

// FindByID looks up a product. Absence is not an error.
func (r *ProductRepository) FindByID(ctx context.Context, id int) (models.Product, bool) {
	return collection.First(r.load(ctx), func(p models.Product) bool { return p.ID == id })
}

func (r *ProductRepository) BySeller(ctx context.Context, sellerID int) []models.Product {
	return collection.Filter(r.load(ctx), func(p models.Product) bool { return p.SellerID == sellerID })
}

// Create appends a new product with zero rating and reviews.
func (r *ProductRepository) Create(ctx context.Context, in models.ProductInput) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.loadForUpdate(ctx)
	if err != nil {
		return models.Product{}, err
	}
	maxID := collection.Reduce(products, 0, func(m int, p models.Product) int { return max(m, p.ID) })
	id, err := r.seq.Next(ctx, "products", maxID)
	if err != nil {
		return models.Product{}, err
	}

	product := in.NewProduct(id)
	if err := r.save(ctx, append(products, product)); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Update merges upd into the product and re-derives its status.
func (r *ProductRepository) Update(ctx context.Context, id int, upd models.ProductUpdate) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.loadForUpdate(ctx)
	if err != nil {
		return models.Product{}, err
	}
	idx := indexOf(products, func(p models.Product) bool { return p.ID == id })
	if idx == -1 {
		return models.Product{}, ErrNotFound
	}

	upd.Apply(&products[idx])
	if err := r.save(ctx, products); err != nil {
		return models.Product{}, err
	}
	return products[idx], nil
}

// Delete removes the product if present.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.loadForUpdate(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, collection.Reject(products, func(p models.Product) bool { return p.ID == id }))
}
