package repositories_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/app/repositories"
	"github.com/logimart/storefront/database/seeders"
	"github.com/logimart/storefront/pkg/auth"
	"github.com/logimart/storefront/pkg/store"
)

var (
	fast  = auth.BcryptHasher{Cost: bcrypt.MinCost}
	fixed = time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
)

func TestMain(m *testing.M) {
	seeders.SetHasher(fast)
	m.Run()
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

type repoSuite struct {
	suite.Suite
	ctx   context.Context
	store *store.Adapter
	repos *repositories.Repositories
}

func TestRepositories(t *testing.T) {
	suite.Run(t, new(repoSuite))
}

func (s *repoSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.New(store.NewMemory(), store.WithSeeder(seeders.RunAll))
	s.Require().NoError(s.store.Initialize(s.ctx))
	s.repos = repositories.New(s.store, fast, repositories.WithClock(func() time.Time { return fixed }))
}

// ── Users ───────────────────────────────────────────────────────────────────

func (s *repoSuite) TestLoginAdmin() {
	u, err := s.repos.Users.Login(s.ctx, "admin@logimart.com", "admin123")
	s.Require().NoError(err)
	s.Equal(5, u.ID)
	s.Equal(models.RoleAdmin, u.Role)
}

func (s *repoSuite) TestLoginMergedCredential() {
	u, err := s.repos.Users.Login(s.ctx, "customer@example.com", "customer123")
	s.Require().NoError(err)
	s.Equal(6, u.ID)
	s.Equal(models.RoleCustomer, u.Role)
}

func (s *repoSuite) TestLoginWrongPassword() {
	_, err := s.repos.Users.Login(s.ctx, "admin@logimart.com", "nope")
	s.ErrorIs(err, repositories.ErrInvalidCredentials)

	_, err = s.repos.Users.Login(s.ctx, "ghost@example.com", "admin123")
	s.ErrorIs(err, repositories.ErrInvalidCredentials)
}

func (s *repoSuite) TestRegister() {
	u, err := s.repos.Users.Register(s.ctx, models.RegisterInput{Name: "Ada Lovelace", Email: "ada@example.com", Password: "engine1"})
	s.Require().NoError(err)
	s.Equal(9, u.ID)
	s.Equal(models.RoleCustomer, u.Role)
	s.Equal("2026-05-06", u.JoinDate)
	s.Equal(models.StatusActive, u.Status)
	s.Contains(u.Avatar, "Ada+Lovelace")

	stored := store.Collection[models.User](s.ctx, s.store, store.KeyUsers)
	s.Len(stored, 9)
	s.True(auth.IsHashed(stored[8].Password))

	logged, err := s.repos.Users.Login(s.ctx, "ada@example.com", "engine1")
	s.Require().NoError(err)
	s.Equal(u.ID, logged.ID)
}

func (s *repoSuite) TestRegisterDuplicateLeavesUsersUntouched() {
	before := store.Collection[models.User](s.ctx, s.store, store.KeyUsers)

	_, err := s.repos.Users.Register(s.ctx, models.RegisterInput{Name: "Jane Again", Email: "Jane@Example.com", Password: "secret1"})
	s.ErrorIs(err, repositories.ErrDuplicateUser)

	s.Equal(before, store.Collection[models.User](s.ctx, s.store, store.KeyUsers))
}

func (s *repoSuite) TestIDsAreNotReused() {
	p, err := s.repos.Products.Create(s.ctx, models.ProductInput{Name: "Temp", Price: decimal.NewFromInt(10), Category: "accessories", SellerID: 1})
	s.Require().NoError(err)
	s.Equal(7, p.ID)
	s.Require().NoError(s.repos.Products.Delete(s.ctx, p.ID))

	next, err := s.repos.Products.Create(s.ctx, models.ProductInput{Name: "Next", Price: decimal.NewFromInt(10), Category: "accessories", SellerID: 1})
	s.Require().NoError(err)
	s.Equal(8, next.ID)
}

func (s *repoSuite) TestUpdateProfile() {
	u, err := s.repos.Users.UpdateProfile(s.ctx, 2, models.ProfileUpdate{
		Phone:    strPtr("+91 9000000000"),
		Password: strPtr("fresh-pass"),
	})
	s.Require().NoError(err)
	s.Equal("+91 9000000000", u.Phone)
	s.Equal("Jane Smith", u.Name)

	_, err = s.repos.Users.Login(s.ctx, "jane@example.com", "fresh-pass")
	s.NoError(err)
	_, err = s.repos.Users.Login(s.ctx, "jane@example.com", "customer123")
	s.ErrorIs(err, repositories.ErrInvalidCredentials)
}

func (s *repoSuite) TestUpdateProfileErrors() {
	_, err := s.repos.Users.UpdateProfile(s.ctx, 99, models.ProfileUpdate{Name: strPtr("x")})
	s.ErrorIs(err, repositories.ErrNotFound)

	_, err = s.repos.Users.UpdateProfile(s.ctx, 2, models.ProfileUpdate{Email: strPtr("admin@logimart.com")})
	s.ErrorIs(err, repositories.ErrDuplicateUser)
}

func (s *repoSuite) TestAllAndFindByID() {
	s.Len(s.repos.Users.All(s.ctx), 8)

	u, ok := s.repos.Users.FindByID(s.ctx, 3)
	s.True(ok)
	s.Equal("TechStore Pro", u.Name)

	_, ok = s.repos.Users.FindByID(s.ctx, 42)
	s.False(ok)
}

// ── Products ────────────────────────────────────────────────────────────────

func (s *repoSuite) TestProductQueries() {
	s.Len(s.repos.Products.All(s.ctx), 6)

	p, ok := s.repos.Products.FindByID(s.ctx, 5)
	s.True(ok)
	s.Equal("Sony WH-1000XM5", p.Name)

	_, ok = s.repos.Products.FindByID(s.ctx, 99)
	s.False(ok)

	s.Len(s.repos.Products.BySeller(s.ctx, 1), 2)
	s.Empty(s.repos.Products.BySeller(s.ctx, 77))
}

func (s *repoSuite) TestProductCreateDefaults() {
	p, err := s.repos.Products.Create(s.ctx, models.ProductInput{
		Name: "USB-C Hub", Price: decimal.NewFromInt(2499), Category: "accessories", SellerID: 3, Stock: 0,
	})
	s.Require().NoError(err)
	s.True(p.OriginalPrice.Equal(decimal.NewFromInt(2499)))
	s.Equal(models.ProductOutOfStock, p.Status)
	s.Zero(p.Rating)
	s.Zero(p.Reviews)
	s.NotNil(p.Features)
}

func (s *repoSuite) TestProductUpdateDerivesStatus() {
	p, err := s.repos.Products.Update(s.ctx, 3, models.ProductUpdate{Stock: intPtr(4)})
	s.Require().NoError(err)
	s.Equal(models.ProductActive, p.Status)

	p, err = s.repos.Products.Update(s.ctx, 3, models.ProductUpdate{Stock: intPtr(0)})
	s.Require().NoError(err)
	s.Equal(models.ProductOutOfStock, p.Status)

	_, err = s.repos.Products.Update(s.ctx, 99, models.ProductUpdate{Stock: intPtr(1)})
	s.ErrorIs(err, repositories.ErrNotFound)
}

func (s *repoSuite) TestProductDeleteMissingIsNoop() {
	s.NoError(s.repos.Products.Delete(s.ctx, 99))
	s.Len(s.repos.Products.All(s.ctx), 6)
}

// ── Orders ──────────────────────────────────────────────────────────────────

func (s *repoSuite) orderInput() models.OrderInput {
	return models.OrderInput{
		UserID: 2, UserName: "Jane Smith", UserEmail: "jane@example.com",
		Items: []models.OrderItem{
			{ProductID: 5, Name: "Sony WH-1000XM5", Quantity: 2, Price: decimal.NewFromInt(29990), SellerID: 2},
		},
		Total:           decimal.NewFromInt(64778),
		ShippingAddress: models.ShippingAddress{Name: "Jane Smith", Address: "456 Oak Ave", Phone: "+91 9876543211"},
		PaymentMethod:   models.PayUPI,
	}
}

func (s *repoSuite) TestPlacePrependsProcessingOrder() {
	o, err := s.repos.Orders.Place(s.ctx, s.orderInput())
	s.Require().NoError(err)

	s.Equal("ORD-1778051289000", o.ID)
	s.Equal(models.OrderProcessing, o.Status)
	s.Equal("2026-05-06T07:08:09.000Z", o.Date)

	all := s.repos.Orders.All(s.ctx)
	s.Len(all, 5)
	s.Equal(o.ID, all[0].ID)
}

func (s *repoSuite) TestPlaceSameMillisecondGetsDistinctIDs() {
	a, err := s.repos.Orders.Place(s.ctx, s.orderInput())
	s.Require().NoError(err)
	b, err := s.repos.Orders.Place(s.ctx, s.orderInput())
	s.Require().NoError(err)

	s.NotEqual(a.ID, b.ID)
	s.Equal("ORD-1778051289001", b.ID)
}

func (s *repoSuite) TestOrderQueries() {
	s.Len(s.repos.Orders.ByUser(s.ctx, 1), 2)
	s.Len(s.repos.Orders.BySeller(s.ctx, 2), 2)
	s.Empty(s.repos.Orders.ByUser(s.ctx, 99))

	o, ok := s.repos.Orders.FindByID(s.ctx, "ORD003")
	s.True(ok)
	s.Equal(1, o.UserID)
}

func (s *repoSuite) TestUpdateStatus() {
	o, err := s.repos.Orders.UpdateStatus(s.ctx, "ORD004", models.OrderCancelled)
	s.Require().NoError(err)
	s.Equal(models.OrderCancelled, o.Status)

	_, err = s.repos.Orders.UpdateStatus(s.ctx, "ORD004", "teleported")
	s.ErrorIs(err, repositories.ErrInvalidStatus)

	_, err = s.repos.Orders.UpdateStatus(s.ctx, "ORD999", models.OrderShipped)
	s.ErrorIs(err, repositories.ErrNotFound)
}

// ── Categories ──────────────────────────────────────────────────────────────

func (s *repoSuite) TestCategoryCreate() {
	c, err := s.repos.Categories.Create(s.ctx, "Smart Watches")
	s.Require().NoError(err)
	s.Equal(6, c.ID)
	s.Equal("smart-watches", c.Slug)
	s.Zero(c.Count)

	_, err = s.repos.Categories.Create(s.ctx, "smart watches")
	s.ErrorIs(err, repositories.ErrDuplicateCategory)
}

func (s *repoSuite) TestRefreshCounts() {
	_, err := s.repos.Products.Create(s.ctx, models.ProductInput{Name: "iPad Air", Price: decimal.NewFromInt(59900), Category: "tablets", SellerID: 1, Stock: 3})
	s.Require().NoError(err)

	cats, err := s.repos.Categories.RefreshCounts(s.ctx)
	s.Require().NoError(err)

	counts := map[string]int{}
	for _, c := range cats {
		counts[c.Slug] = c.Count
	}
	s.Equal(3, counts["smartphones"])
	s.Equal(2, counts["laptops"])
	s.Equal(1, counts["tablets"])
	s.Equal(0, counts["accessories"])
}

// ── Concurrency ─────────────────────────────────────────────────────────────

func TestConcurrentRegistrationsKeepEveryUser(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemory(), store.WithSeeder(seeders.RunAll))
	require.NoError(t, s.Initialize(ctx))
	repos := repositories.New(s, fast)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repos.Users.Register(ctx, models.RegisterInput{
				Name: "Buyer", Email: "buyer" + string(rune('a'+i)) + "@example.com", Password: "secret1",
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	users := repos.Users.All(ctx)
	assert.Len(t, users, 18)

	ids := map[int]bool{}
	for _, u := range users {
		ids[u.ID] = true
	}
	assert.Len(t, ids, 18)
}

func TestCorruptCollectionReadsEmpty(t *testing.T) {
	ctx := context.Background()
	d := store.NewMemory()
	require.NoError(t, d.Write(ctx, store.KeyProducts, []byte("{not json")))

	repos := repositories.New(store.New(d), fast)
	assert.Empty(t, repos.Products.All(ctx))
	_, ok := repos.Products.FindByID(ctx, 1)
	assert.False(t, ok)
}

func TestCorruptCollectionIsReplacedOnWrite(t *testing.T) {
	ctx := context.Background()
	d := store.NewMemory()
	require.NoError(t, d.Write(ctx, store.KeyProducts, []byte("{not json")))

	repos := repositories.New(store.New(d), fast)
	p, err := repos.Products.Create(ctx, models.ProductInput{Name: "Tab", Price: decimal.NewFromInt(10), Stock: 1})
	require.NoError(t, err)
	all := repos.Products.All(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, p.ID, all[0].ID)
}

var errConnReset = errors.New("connection reset")

// outageDriver fails every Read while down is set.
type outageDriver struct {
	*store.Memory
	down atomic.Bool
}

func (d *outageDriver) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if d.down.Load() {
		return nil, false, errConnReset
	}
	return d.Memory.Read(ctx, key)
}

func TestReadOutageNeverOverwritesCollections(t *testing.T) {
	ctx := context.Background()
	d := &outageDriver{Memory: store.NewMemory()}
	s := store.New(d, store.WithSeeder(seeders.RunAll))
	require.NoError(t, s.Initialize(ctx))
	repos := repositories.New(s, fast, repositories.WithClock(func() time.Time { return fixed }))

	snapshot := func() map[string][]byte {
		out := map[string][]byte{}
		for _, key := range store.CollectionKeys {
			raw, _, err := d.Memory.Read(ctx, key)
			require.NoError(t, err)
			out[key] = raw
		}
		return out
	}
	before := snapshot()

	d.down.Store(true)
	mutations := map[string]func() error{
		"orders.place": func() error {
			_, err := repos.Orders.Place(ctx, models.OrderInput{UserID: 1, Total: decimal.NewFromInt(1)})
			return err
		},
		"orders.status": func() error {
			_, err := repos.Orders.UpdateStatus(ctx, "ORD004", models.OrderProcessing)
			return err
		},
		"products.create": func() error {
			_, err := repos.Products.Create(ctx, models.ProductInput{Name: "Tab", Price: decimal.NewFromInt(10)})
			return err
		},
		"products.update": func() error {
			_, err := repos.Products.Update(ctx, 1, models.ProductUpdate{Stock: intPtr(0)})
			return err
		},
		"products.delete": func() error { return repos.Products.Delete(ctx, 1) },
		"users.register": func() error {
			_, err := repos.Users.Register(ctx, models.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "engine1"})
			return err
		},
		"users.profile": func() error {
			_, err := repos.Users.UpdateProfile(ctx, 1, models.ProfileUpdate{Name: strPtr("John")})
			return err
		},
		"categories.create": func() error {
			_, err := repos.Categories.Create(ctx, "Smart Watches")
			return err
		},
		"categories.refresh": func() error {
			_, err := repos.Categories.RefreshCounts(ctx)
			return err
		},
	}
	for name, mutate := range mutations {
		assert.ErrorIs(t, mutate(), errConnReset, name)
	}
	d.down.Store(false)

	assert.Equal(t, before, snapshot())
	assert.Len(t, repos.Orders.All(ctx), 4)
}

func TestLoginAfterPlaintextUsersAreRepaired(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Write(ctx, store.KeyUsers,
		[]byte(`[{"id":5,"name":"Admin User","email":"admin@logimart.com","password":"admin123","role":"admin","status":"active"}]`)))
	s := store.New(mem, store.WithSeeder(seeders.RunAll))
	require.NoError(t, s.Initialize(ctx))

	u, err := repositories.New(s, fast).Users.Login(ctx, "admin@logimart.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}
