package store

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logimart/storefront/pkg/metrics"
)

type product struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestGetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory())

	var got []product
	found, err := s.Get(ctx, KeyProducts, &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, KeyProducts, []product{{1, "iPhone"}}))
	found, err = s.Get(ctx, KeyProducts, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []product{{1, "iPhone"}}, got)

	require.NoError(t, s.Remove(ctx, KeyProducts))
	found, err = s.Get(ctx, KeyProducts, &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCorruptValue(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Write(ctx, KeyOrders, []byte("{not json")))
	s := New(mem)

	var out []product
	_, err := s.Get(ctx, KeyOrders, &out)
	assert.ErrorIs(t, err, ErrCorrupt)

	assert.Empty(t, Collection[product](ctx, s, KeyOrders), "collections absorb corruption")
	assert.NotNil(t, Collection[product](ctx, s, KeyOrders))
}

func TestRequire(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory())

	var name string
	assert.ErrorIs(t, Require(ctx, s, KeyUserName, &name), ErrMissing)

	require.NoError(t, s.Set(ctx, KeyUserName, "Jane"))
	require.NoError(t, Require(ctx, s, KeyUserName, &name))
	assert.Equal(t, "Jane", name)
}

type unreachable struct{ *Memory }

func (unreachable) Read(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("dial tcp: connection refused")
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	s := New(mem)

	items, err := Load[product](ctx, s, KeyProducts)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	require.NoError(t, mem.Write(ctx, KeyOrders, []byte("{not json")))
	items, err = Load[product](ctx, s, KeyOrders)
	require.NoError(t, err, "corruption is absorbed")
	assert.Empty(t, items)

	require.NoError(t, s.Set(ctx, KeyProducts, []product{{1, "iPhone"}}))
	items, err = Load[product](ctx, s, KeyProducts)
	require.NoError(t, err)
	assert.Equal(t, []product{{1, "iPhone"}}, items)

	down := New(unreachable{mem})
	_, err = Load[product](ctx, down, KeyProducts)
	assert.ErrorContains(t, err, "connection refused")
	assert.Empty(t, Collection[product](ctx, down, KeyProducts), "read-only queries still absorb")
}

func TestSaveCollectionWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	s := New(mem)

	require.NoError(t, SaveCollection[product](ctx, s, KeyProducts, nil))
	raw, ok, err := mem.Read(ctx, KeyProducts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(raw))
}

func TestInitializeRunsSeeder(t *testing.T) {
	ctx := context.Background()
	calls := 0
	s := New(NewMemory(), WithSeeder(func(ctx context.Context, st Store) error {
		calls++
		return SaveCollection(ctx, st, KeyProducts, []product{{1, "seeded"}})
	}))

	require.NoError(t, s.Initialize(ctx))
	assert.Equal(t, 1, calls)
	assert.Len(t, Collection[product](ctx, s, KeyProducts), 1)

	require.NoError(t, s.Set(ctx, KeyRememberedEmail, "john@example.com"))
	require.NoError(t, s.Reset(ctx))
	assert.Equal(t, 2, calls)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, KeyRememberedEmail, "reset keeps session keys")
}

func TestInitializeWrapsSeederError(t *testing.T) {
	boom := errors.New("boom")
	s := New(NewMemory(), WithSeeder(func(context.Context, Store) error { return boom }))
	assert.ErrorIs(t, s.Initialize(context.Background()), boom)
}

func TestInitializeWithoutSeeder(t *testing.T) {
	assert.NoError(t, New(NewMemory()).Initialize(context.Background()))
}

func TestOperationsAreCounted(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory())
	miss := metrics.StoreOperations.WithLabelValues("memory", "get", "miss")
	ok := metrics.StoreOperations.WithLabelValues("memory", "set", "ok")
	beforeMiss, beforeOK := testutil.ToFloat64(miss), testutil.ToFloat64(ok)

	var v string
	_, _ = s.Get(ctx, "absent", &v)
	require.NoError(t, s.Set(ctx, "present", "x"))

	assert.Equal(t, beforeMiss+1, testutil.ToFloat64(miss))
	assert.Equal(t, beforeOK+1, testutil.ToFloat64(ok))
	assert.Equal(t, "memory", s.DriverName())
}

func TestCartKey(t *testing.T) {
	assert.Equal(t, "cartItems", CartKey(""))
	assert.Equal(t, "cartItems", CartKey("default"))
	assert.Equal(t, "cartItems:work", CartKey("work"))
}
