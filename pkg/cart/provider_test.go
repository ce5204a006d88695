package cart

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/pkg/event"
	"github.com/logimart/storefront/pkg/metrics"
	"github.com/logimart/storefront/pkg/store"
)

type fakeUsers struct {
	user *models.PublicUser
}

func (f *fakeUsers) Current(context.Context) (models.PublicUser, bool) {
	if f.user == nil {
		return models.PublicUser{}, false
	}
	return *f.user, true
}

func signedIn() *fakeUsers {
	return &fakeUsers{user: &models.PublicUser{ID: 2, Name: "Jane Smith", Role: models.RoleCustomer}}
}

var sonyProduct = models.Product{ID: 5, Name: "Sony WH-1000XM5", Price: decimal.NewFromInt(29990), Image: "sony.jpg"}

func TestProviderSonyScenario(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemory())
	p := NewProvider(ctx, s, signedIn())

	require.NoError(t, p.AddToCart(ctx, sonyProduct))
	require.NoError(t, p.AddToCart(ctx, sonyProduct))
	assert.Equal(t, 2, p.TotalQuantity())

	require.NoError(t, p.DecreaseQty(ctx, 5))
	require.NoError(t, p.DecreaseQty(ctx, 5))

	assert.Equal(t, 1, p.TotalQuantity())
	assert.True(t, decimal.NewFromInt(29990).Equal(p.TotalPrice()))

	stored := store.Collection[models.CartLineItem](ctx, s, store.KeyCartItems)
	require.Len(t, stored, 1)
	assert.Equal(t, 1, stored[0].Quantity)
}

func TestProviderHydratesFromStore(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemory())
	require.NoError(t, s.Set(ctx, store.KeyCartItems, []models.CartLineItem{
		{ID: 1, Name: "iPhone 15 Pro Max", Price: decimal.NewFromInt(159900), Quantity: 2},
	}))

	p := NewProvider(ctx, s, signedIn())
	assert.Equal(t, 2, p.TotalQuantity())
	assert.True(t, decimal.NewFromInt(319800).Equal(p.TotalPrice()))
}

func TestProviderNormalizesHydratedItems(t *testing.T) {
	ctx := context.Background()
	d := store.NewMemory()
	require.NoError(t, d.Write(ctx, store.KeyCartItems, []byte(`[
		{"id":5,"name":"Sony WH-1000XM5","price":29990,"quantity":1},
		{"id":2,"name":"Galaxy S24 Ultra","price":129999,"quantity":0},
		{"id":5,"name":"Sony WH-1000XM5","price":29990,"quantity":2},
		{"id":3,"name":"MacBook Pro 16-inch M3","price":249900,"quantity":-1}
	]`)))

	p := NewProvider(ctx, store.New(d), signedIn())
	items := p.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].ID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 3, p.TotalQuantity())

	require.NoError(t, p.DecreaseQty(ctx, 5))
	assert.Equal(t, 2, p.Items()[0].Quantity)
}

func TestProviderCorruptCartStartsEmpty(t *testing.T) {
	ctx := context.Background()
	d := store.NewMemory()
	require.NoError(t, d.Write(ctx, store.KeyCartItems, []byte("[{oops")))

	p := NewProvider(ctx, store.New(d), signedIn())
	assert.Empty(t, p.Items())
	assert.Zero(t, p.TotalQuantity())
}

func TestAddRequiresLogin(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemory())
	p := NewProvider(ctx, s, &fakeUsers{})

	assert.ErrorIs(t, p.AddToCart(ctx, sonyProduct), ErrLoginRequired)
	assert.Empty(t, p.Items())

	found, err := s.Get(ctx, store.KeyCartItems, &[]models.CartLineItem{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAddOnlyPolicyLetsGuestsEditExistingCart(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemory())
	require.NoError(t, s.Set(ctx, store.KeyCartItems, []models.CartLineItem{
		{ID: 5, Name: "Sony", Price: decimal.NewFromInt(29990), Quantity: 1},
	}))

	p := NewProvider(ctx, s, &fakeUsers{})
	require.NoError(t, p.IncreaseQty(ctx, 5))
	assert.Equal(t, 2, p.TotalQuantity())
	require.NoError(t, p.ClearCart(ctx))
	assert.Empty(t, p.Items())
}

func TestAllPolicyGatesEveryMutation(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemory())
	require.NoError(t, s.Set(ctx, store.KeyCartItems, []models.CartLineItem{
		{ID: 5, Name: "Sony", Price: decimal.NewFromInt(29990), Quantity: 1},
	}))

	p := NewProvider(ctx, s, &fakeUsers{}, WithPolicy(ParsePolicy("all")))
	assert.ErrorIs(t, p.IncreaseQty(ctx, 5), ErrLoginRequired)
	assert.ErrorIs(t, p.RemoveItem(ctx, 5), ErrLoginRequired)
	assert.ErrorIs(t, p.ClearCart(ctx), ErrLoginRequired)
	assert.Equal(t, 1, p.TotalQuantity())
}

func TestProfileCartsAreSeparate(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemory())

	work := NewProvider(ctx, s, signedIn(), WithProfile("work"))
	require.NoError(t, work.AddToCart(ctx, sonyProduct))

	home := NewProvider(ctx, s, signedIn())
	assert.Empty(t, home.Items())

	again := NewProvider(ctx, s, signedIn(), WithProfile("work"))
	assert.Equal(t, 1, again.TotalQuantity())
}

func TestProviderFiresCartUpdated(t *testing.T) {
	ctx := context.Background()
	bus := event.NewBus()
	var got []Updated
	bus.Listen(event.CartUpdated, func(payload interface{}) {
		got = append(got, payload.(Updated))
	})

	p := NewProvider(ctx, store.New(store.NewMemory()), signedIn(), WithBus(bus))
	require.NoError(t, p.AddToCart(ctx, sonyProduct))
	require.NoError(t, p.DecreaseQty(ctx, 5)) // no change, no event
	require.NoError(t, p.IncreaseQty(ctx, 5))

	require.Len(t, got, 2)
	assert.Equal(t, 2, got[1].TotalQuantity)
	assert.True(t, decimal.NewFromInt(59980).Equal(got[1].TotalPrice))
}

func TestDispatchCounted(t *testing.T) {
	ctx := context.Background()
	before := testutil.ToFloat64(metrics.CartDispatches.WithLabelValues("clear_cart"))

	p := NewProvider(ctx, store.New(store.NewMemory()), signedIn())
	require.NoError(t, p.ClearCart(ctx))

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CartDispatches.WithLabelValues("clear_cart")))
}

func TestProviderSummary(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(ctx, store.New(store.NewMemory()), signedIn())
	require.NoError(t, p.AddToCart(ctx, sonyProduct))

	sum, err := p.Summary("SAVE20")
	require.NoError(t, err)
	assert.Equal(t, "5998", sum.Discount.String())
	assert.Equal(t, "SAVE20", sum.Promo)
}
