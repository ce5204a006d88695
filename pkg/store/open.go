package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/logimart/storefront/config"
	"github.com/logimart/storefront/pkg/database"
	"github.com/logimart/storefront/pkg/storage"
)

// SQLSetup prepares a freshly opened database, normally by running migrations.
type SQLSetup func(db *gorm.DB) error

// OpenDriver builds the driver named by STORE_DRIVER.
func OpenDriver(ctx context.Context, setup SQLSetup) (Driver, error) {
	switch name := config.StoreDriver(); name {
	case "memory":
		return NewMemory(), nil

	case "disk":
		d, err := storage.Open(ctx)
		if err != nil {
			return nil, err
		}
		return NewDisk(d, "disk:"+config.StorageDisk()), nil

	case "redis":
		return NewRedis(ctx, RedisOptions{
			Addr:     config.RedisAddr(),
			Password: config.RedisPassword(),
			DB:       config.RedisDB(),
			Prefix:   config.StorePrefix(),
		})

	case "sql":
		db, err := database.Connect()
		if err != nil {
			return nil, err
		}
		if setup != nil {
			if err := setup(db); err != nil {
				_ = database.Close(db)
				return nil, fmt.Errorf("store: sql setup: %w", err)
			}
		}
		return NewSQL(db, func() error { return database.Close(db) }), nil

	case "mongo":
		return NewMongo(ctx, config.MongoURI(), config.MongoDatabase())

	default:
		return nil, fmt.Errorf("store: unknown driver %q", name)
	}
}

// Open builds the configured driver and wraps it in an Adapter.
func Open(ctx context.Context, setup SQLSetup, opts ...Option) (*Adapter, error) {
	d, err := OpenDriver(ctx, setup)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", config.StoreDriver(), err)
	}
	return New(d, opts...), nil
}
