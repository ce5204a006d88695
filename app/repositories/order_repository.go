package repositories

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/pkg/collection"
	"github.com/logimart/storefront/pkg/store"
)

// isoMillis matches the timestamps the storefront has always written.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// OrderRepository handles order history. Orders are never deleted.
type OrderRepository struct {
	mu    sync.Mutex
	store store.Store
	now   func() time.Time
}

func (r *OrderRepository) load(ctx context.Context) []models.Order {
	return store.Collection[models.Order](ctx, r.store, store.KeyOrders)
}

// loadForUpdate is load for read-modify-write: read failures are
// returned instead of absorbed.
func (r *OrderRepository) loadForUpdate(ctx context.Context) ([]models.Order, error) {
	items, err := store.Load[models.Order](ctx, r.store, store.KeyOrders)
	if err != nil {
		return nil, fmt.Errorf("orders: %w", err)
	}
	return items, nil
}

func (r *OrderRepository) save(ctx context.Context, orders []models.Order) error {
	if err := store.SaveCollection(ctx, r.store, store.KeyOrders, orders); err != nil {
		return fmt.Errorf("orders: %w", err)
	}
	return nil
}

// All returns every order, newest first.
func (r *OrderRepository) All(ctx context.Context) []models.Order {
	return r.load(ctx)
}

func (r *OrderRepository) ByUser(ctx context.Context, userID int) []models.Order {
	return collection.Filter(r.load(ctx), func(o models.Order) bool { return o.UserID == userID })
}

// BySeller returns orders with at least one item sold by sellerID.
func (r *OrderRepository) BySeller(ctx context.Context, sellerID int) []models.Order {
	return collection.Filter(r.load(ctx), func(o models.Order) bool { return o.HasSeller(sellerID) })
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (models.Order, bool) {
	return collection.First(r.load(ctx), func(o models.Order) bool { return o.ID == id })
}

// Place stores a new order at the front of the list with status
// processing.
func (r *OrderRepository) Place(ctx context.Context, in models.OrderInput) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.loadForUpdate(ctx)
	if err != nil {
		return models.Order{}, err
	}
	now := r.now()

	items := in.Items
	if items == nil {
		items = []models.OrderItem{}
	}

	order := models.Order{
		ID:              nextOrderID(orders, now),
		UserID:          in.UserID,
		UserName:        in.UserName,
		UserEmail:       in.UserEmail,
		Items:           items,
		Total:           in.Total,
		Status:          models.OrderProcessing,
		Date:            now.UTC().Format(isoMillis),
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
	}

	if err := r.save(ctx, append([]models.Order{order}, orders...)); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// UpdateStatus overwrites the status of one order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) (models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return models.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.loadForUpdate(ctx)
	if err != nil {
		return models.Order{}, err
	}
	idx := indexOf(orders, func(o models.Order) bool { return o.ID == id })
	if idx == -1 {
		return models.Order{}, ErrNotFound
	}

	orders[idx].Status = status
	if err := r.save(ctx, orders); err != nil {
		return models.Order{}, err
	}
	return orders[idx], nil
}

// nextOrderID is ORD-<unix millis>, bumped a millisecond at a time until
// it is unused.
func nextOrderID(orders []models.Order, now time.Time) string {
	used := make(map[string]bool, len(orders))
	for _, o := range orders {
		used[o.ID] = true
	}
	ms := now.UnixMilli()
	for {
		id := "ORD-" + strconv.FormatInt(ms, 10)
		if !used[id] {
			return id
		}
		ms++
	}
}
