package store

import (
	"context"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/logimart/storefront/pkg/database"
	"github.com/logimart/storefront/pkg/storage"
)

// driverSuite runs the same contract against every backend.
type driverSuite struct {
	suite.Suite
	newDriver func(t *testing.T) Driver
	d         Driver
	ctx       context.Context
}

func (s *driverSuite) SetupTest() {
	s.ctx = context.Background()
	s.d = s.newDriver(s.T())
}

func (s *driverSuite) TearDownTest() {
	s.NoError(s.d.Close())
}

func (s *driverSuite) TestMissingKey() {
	raw, ok, err := s.d.Read(s.ctx, "nope")
	s.NoError(err)
	s.False(ok)
	s.Nil(raw)
}

func (s *driverSuite) TestWriteOverwriteDelete() {
	s.Require().NoError(s.d.Write(s.ctx, KeyUsers, []byte(`[{"id":1}]`)))
	s.Require().NoError(s.d.Write(s.ctx, KeyUsers, []byte(`[{"id":2}]`)))

	raw, ok, err := s.d.Read(s.ctx, KeyUsers)
	s.Require().NoError(err)
	s.True(ok)
	s.JSONEq(`[{"id":2}]`, string(raw))

	s.Require().NoError(s.d.Delete(s.ctx, KeyUsers))
	s.Require().NoError(s.d.Delete(s.ctx, KeyUsers), "deleting twice is fine")

	_, ok, err = s.d.Read(s.ctx, KeyUsers)
	s.NoError(err)
	s.False(ok)
}

func (s *driverSuite) TestKeys() {
	s.Require().NoError(s.d.Write(s.ctx, KeyOrders, []byte(`[]`)))
	s.Require().NoError(s.d.Write(s.ctx, CartKey("work"), []byte(`[]`)))

	keys, err := s.d.Keys(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"cartItems:work", KeyOrders}, keys)
}

func TestMemoryDriver(t *testing.T) {
	suite.Run(t, &driverSuite{newDriver: func(*testing.T) Driver { return NewMemory() }})
}

func TestDiskDriver(t *testing.T) {
	suite.Run(t, &driverSuite{newDriver: func(t *testing.T) Driver {
		return NewDisk(storage.NewLocal(t.TempDir()), "disk:local")
	}})
}

func TestRedisDriver(t *testing.T) {
	suite.Run(t, &driverSuite{newDriver: func(t *testing.T) Driver {
		mr := miniredis.RunT(t)
		r, err := NewRedis(context.Background(), RedisOptions{Addr: mr.Addr(), Prefix: "test"})
		require.NoError(t, err)
		return r
	}})
}

func TestSQLDriver(t *testing.T) {
	suite.Run(t, &driverSuite{newDriver: func(t *testing.T) Driver {
		db, err := database.Open("sqlite", ":memory:")
		require.NoError(t, err)
		require.NoError(t, db.AutoMigrate(&Entry{}))
		return NewSQL(db, func() error { return database.Close(db) })
	}})
}

func TestMongoDriver(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	suite.Run(t, &driverSuite{newDriver: func(t *testing.T) Driver {
		m, err := NewMongo(context.Background(), uri, "logimart_test")
		require.NoError(t, err)
		require.NoError(t, m.coll.Drop(context.Background()))
		return m
	}})
}

func TestRedisPrefixIsolation(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	r, err := NewRedis(ctx, RedisOptions{Addr: mr.Addr(), Prefix: "logimart:"})
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Write(ctx, KeyProducts, []byte(`[]`)))
	require.True(t, mr.Exists("logimart:"+KeyProducts))

	mr.Set("other:thing", "x")
	keys, err := r.Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{KeyProducts}, keys)
}
