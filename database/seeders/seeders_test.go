package seeders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/pkg/auth"
	"github.com/logimart/storefront/pkg/store"
)

var fast = auth.BcryptHasher{Cost: bcrypt.MinCost}

func TestMain(m *testing.M) {
	SetHasher(fast)
	m.Run()
}

func newStore() *store.Adapter {
	return store.New(store.NewMemory(), store.WithSeeder(RunAll))
}

func byEmail(users []models.User) map[string]models.User {
	out := map[string]models.User{}
	for _, u := range users {
		out[u.Email] = u
	}
	return out
}

func TestInitializeSeedsEverything(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	require.NoError(t, s.Initialize(ctx))

	users := store.Collection[models.User](ctx, s, store.KeyUsers)
	assert.Len(t, users, 8)
	for _, u := range users {
		assert.NotEmpty(t, u.Password, u.Email)
		assert.True(t, auth.IsHashed(u.Password), u.Email)
	}

	assert.Len(t, store.Collection[models.Product](ctx, s, store.KeyProducts), 6)
	assert.Len(t, store.Collection[models.Order](ctx, s, store.KeyOrders), 4)
	assert.Len(t, store.Collection[models.Category](ctx, s, store.KeyCategories), 5)
}

func TestMergeUsersMatchesCredentials(t *testing.T) {
	at := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	users, err := MergeUsers(context.Background(), Profiles(), Credentials(), "password123", at)
	require.NoError(t, err)
	got := byEmail(users)

	// id 1 matches the customer@example.com credential first
	assert.True(t, fast.Check(got["john@example.com"].Password, "customer123"))
	assert.True(t, fast.Check(got["seller@techstore.com"].Password, "seller123"))
	assert.Equal(t, models.RoleSeller, got["seller@techstore.com"].Role)

	admin := got["admin@logimart.com"]
	assert.Equal(t, 5, admin.ID)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "Admin User", admin.Name, "profile name wins")
	assert.True(t, fast.Check(admin.Password, "admin123"))

	// credential-only logins get free ids
	extra := got["customer@example.com"]
	assert.Equal(t, 6, extra.ID)
	assert.Equal(t, "2026-03-04", extra.JoinDate)
	assert.Equal(t, models.StatusActive, extra.Status)
	assert.Equal(t, 7, got["seller@dell.com"].ID)
	assert.Equal(t, 8, got["seller@google.com"].ID)

	ids := map[int]bool{}
	for _, u := range users {
		assert.False(t, ids[u.ID], "duplicate id %d", u.ID)
		ids[u.ID] = true
	}
}

func TestMergeUsersFallbackPassword(t *testing.T) {
	profiles := []models.User{{ID: 42, Name: "Nobody", Email: "nobody@example.com", Role: models.RoleCustomer}}
	users, err := MergeUsers(context.Background(), profiles, nil, "password123", time.Now())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, fast.Check(users[0].Password, "password123"))
	assert.Equal(t, models.RoleCustomer, users[0].Role)
}

func TestInitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	require.NoError(t, s.Initialize(ctx))

	products := store.Collection[models.Product](ctx, s, store.KeyProducts)
	products = products[:2]
	require.NoError(t, store.SaveCollection(ctx, s, store.KeyProducts, products))
	before := store.Collection[models.User](ctx, s, store.KeyUsers)

	require.NoError(t, s.Initialize(ctx))

	assert.Len(t, store.Collection[models.Product](ctx, s, store.KeyProducts), 2, "existing collections are kept")
	assert.Equal(t, before, store.Collection[models.User](ctx, s, store.KeyUsers))
}

func TestInitializeRepairsUsersWithoutPasswords(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	require.NoError(t, s.Set(ctx, store.KeyUsers, []models.User{{ID: 1, Email: "john@example.com"}}))

	require.NoError(t, s.Initialize(ctx))

	users := store.Collection[models.User](ctx, s, store.KeyUsers)
	assert.Len(t, users, 8)
	assert.NotEmpty(t, users[0].Password)
}

func TestInitializeHashesPlaintextPasswordsInPlace(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	raw := `[{"id":5,"name":"Admin User","email":"admin@logimart.com","password":"admin123","role":"admin"},` +
		`{"id":42,"name":"Kept","email":"kept@example.com","password":"kept1234","role":"customer"}]`
	require.NoError(t, mem.Write(ctx, store.KeyUsers, []byte(raw)))
	s := store.New(mem, store.WithSeeder(RunAll))

	require.NoError(t, s.Initialize(ctx))

	users := store.Collection[models.User](ctx, s, store.KeyUsers)
	require.Len(t, users, 2, "no reseed")
	assert.Equal(t, 42, users[1].ID)
	for _, u := range users {
		assert.True(t, auth.IsHashed(u.Password), u.Email)
	}
	assert.True(t, fast.Check(users[0].Password, "admin123"))
	assert.True(t, fast.Check(users[1].Password, "kept1234"))

	before := store.Collection[models.User](ctx, s, store.KeyUsers)
	require.NoError(t, s.Initialize(ctx))
	assert.Equal(t, before, store.Collection[models.User](ctx, s, store.KeyUsers), "hashes are not re-hashed")
}

func TestInitializeKeepsEmptyUserList(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	require.NoError(t, store.SaveCollection[models.User](ctx, s, store.KeyUsers, nil))

	require.NoError(t, s.Initialize(ctx))
	assert.Empty(t, store.Collection[models.User](ctx, s, store.KeyUsers))
}

func TestInitializeRepairsCorruptUsers(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Write(ctx, store.KeyUsers, []byte("not json")))
	s := store.New(mem, store.WithSeeder(RunAll))

	require.NoError(t, s.Initialize(ctx))
	assert.Len(t, store.Collection[models.User](ctx, s, store.KeyUsers), 8)
}
