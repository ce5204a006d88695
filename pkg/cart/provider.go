package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/pkg/event"
	"github.com/logimart/storefront/pkg/logger"
	"github.com/logimart/storefront/pkg/metrics"
	"github.com/logimart/storefront/pkg/store"
)

var ErrLoginRequired = errors.New("please login to add items to cart")

// Policy decides which mutations need a signed-in user.
type Policy string

const (
	// PolicyAddOnly gates only AddToCart.
	PolicyAddOnly Policy = "add-only"
	// PolicyAll gates every mutation.
	PolicyAll Policy = "all"
)

// ParsePolicy maps a config value to a Policy, defaulting to add-only.
func ParsePolicy(s string) Policy {
	if Policy(s) == PolicyAll {
		return PolicyAll
	}
	return PolicyAddOnly
}

// UserSource reports the signed-in user, if any.
type UserSource interface {
	Current(ctx context.Context) (models.PublicUser, bool)
}

// Updated is the payload of event.CartUpdated.
type Updated struct {
	Items         []models.CartLineItem
	TotalQuantity int
	TotalPrice    decimal.Decimal
}

type Option func(*Provider)

func WithPolicy(p Policy) Option { return func(c *Provider) { c.policy = p } }

// WithProfile stores the cart under a per-profile key.
func WithProfile(profile string) Option {
	return func(c *Provider) { c.key = store.CartKey(profile) }
}

func WithBus(b *event.Bus) Option { return func(c *Provider) { c.bus = b } }

// Provider owns the cart state and keeps the store in step with it.
type Provider struct {
	mu     sync.Mutex
	state  State
	store  store.Store
	users  UserSource
	key    string
	policy Policy
	bus    *event.Bus
}

// NewProvider hydrates the cart from s. A missing or unreadable cart
// starts empty; stored lines are normalized.
func NewProvider(ctx context.Context, s store.Store, users UserSource, opts ...Option) *Provider {
	p := &Provider{
		store:  s,
		users:  users,
		key:    store.KeyCartItems,
		policy: PolicyAddOnly,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.state = Normalize(store.Collection[models.CartLineItem](ctx, s, p.key))
	return p
}

// Items returns a copy of the current line items.
func (p *Provider) Items() []models.CartLineItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.CartLineItem, len(p.state.Items))
	copy(out, p.state.Items)
	return out
}

func (p *Provider) TotalQuantity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.TotalQuantity()
}

func (p *Provider) TotalPrice() decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.TotalPrice()
}

// Summary prices the current cart.
func (p *Provider) Summary(promo string) (Summary, error) {
	return Summarize(p.TotalPrice(), promo)
}

// AddToCart adds one unit of product. It always needs a signed-in user.
func (p *Provider) AddToCart(ctx context.Context, product models.Product) error {
	return p.Dispatch(ctx, AddItem{ID: product.ID, Name: product.Name, Price: product.Price, Image: product.Image})
}

func (p *Provider) IncreaseQty(ctx context.Context, id int) error {
	return p.Dispatch(ctx, IncreaseQty{ID: id})
}

func (p *Provider) DecreaseQty(ctx context.Context, id int) error {
	return p.Dispatch(ctx, DecreaseQty{ID: id})
}

func (p *Provider) RemoveItem(ctx context.Context, id int) error {
	return p.Dispatch(ctx, RemoveItem{ID: id})
}

func (p *Provider) ClearCart(ctx context.Context) error {
	return p.Dispatch(ctx, ClearCart{})
}

// Dispatch runs a through the policy gate and the reducer.
func (p *Provider) Dispatch(ctx context.Context, a Action) error {
	_, isAdd := a.(AddItem)
	if isAdd || p.policy == PolicyAll {
		if _, ok := p.users.Current(ctx); !ok {
			return ErrLoginRequired
		}
	}
	return p.apply(ctx, a)
}

func (p *Provider) apply(ctx context.Context, a Action) error {
	metrics.CartDispatches.WithLabelValues(a.Kind()).Inc()

	p.mu.Lock()
	next := Reduce(p.state, a)
	if sameItems(p.state.Items, next.Items) {
		p.mu.Unlock()
		return nil
	}
	p.state = next
	err := store.SaveCollection(ctx, p.store, p.key, next.Items)
	p.mu.Unlock()

	if err != nil {
		logger.WithCtx(ctx).Error("cart: persist failed", "key", p.key, "error", err)
		return fmt.Errorf("cart: %w", err)
	}

	p.bus.Fire(event.CartUpdated, Updated{
		Items:         append([]models.CartLineItem{}, next.Items...),
		TotalQuantity: next.TotalQuantity(),
		TotalPrice:    next.TotalPrice(),
	})
	return nil
}

func sameItems(a, b []models.CartLineItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Quantity != b[i].Quantity {
			return false
		}
	}
	return true
}
