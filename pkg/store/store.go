// Package store is the persistent key-value adapter every repository,
// the cart and the session read and write through.
//
// Values are JSON documents stored under string keys on a pluggable
// Driver (memory, disk, redis, sql, mongo). The Adapter owns first-run
// seeding through the Seeder it was built with:
//
//	s := store.New(store.NewMemory(), store.WithSeeder(seeders.RunAll))
//	_ = s.Initialize(ctx)
//	users := store.Collection[models.User](ctx, s, store.KeyUsers)
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/logimart/storefront/pkg/logger"
)

var (
	// ErrCorrupt means the stored value is not valid JSON for the target.
	ErrCorrupt = errors.New("store: corrupt value")
	// ErrMissing is returned by Require when the key is absent.
	ErrMissing = errors.New("store: missing key")
)

// Store is the port the rest of the storefront depends on.
type Store interface {
	// Get decodes the value under key into dest. A missing key reports
	// found=false with a nil error.
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
	// Initialize seeds absent or invalid collections. Safe on every start.
	Initialize(ctx context.Context) error
	Close() error
}

// Driver is a raw byte key-value backend.
type Driver interface {
	Name() string
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Seeder fills the store with baseline data.
type Seeder func(ctx context.Context, s Store) error

// Option configures an Adapter.
type Option func(*Adapter)

// WithSeeder sets the function Initialize runs.
func WithSeeder(fn Seeder) Option {
	return func(a *Adapter) { a.seeder = fn }
}

// WithLogger overrides the base logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

// Adapter implements Store on top of a Driver.
type Adapter struct {
	driver Driver
	seeder Seeder
	log    *slog.Logger
}

var _ Store = (*Adapter)(nil)

// New wraps d with instrumentation and JSON encoding.
func New(d Driver, opts ...Option) *Adapter {
	a := &Adapter{driver: instrument(d)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// DriverName reports which backend is in use.
func (a *Adapter) DriverName() string { return a.driver.Name() }

func (a *Adapter) logFor(ctx context.Context) *slog.Logger {
	if a.log != nil {
		return a.log
	}
	return logger.WithCtx(ctx)
}

func (a *Adapter) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok, err := a.driver.Read(ctx, key)
	if err != nil {
		return false, fmt.Errorf("store: get %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func (a *Adapter) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := a.driver.Write(ctx, key, raw); err != nil {
		return fmt.Errorf("store: set %s: %w", key, err)
	}
	return nil
}

func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.driver.Delete(ctx, key); err != nil {
		return fmt.Errorf("store: remove %s: %w", key, err)
	}
	return nil
}

func (a *Adapter) Initialize(ctx context.Context) error {
	if a.seeder == nil {
		return nil
	}
	if err := a.seeder(ctx, a); err != nil {
		return fmt.Errorf("store: initialize: %w", err)
	}
	a.logFor(ctx).Debug("store initialized", "driver", a.driver.Name())
	return nil
}

// Keys lists every key currently held by the driver.
func (a *Adapter) Keys(ctx context.Context) ([]string, error) {
	return a.driver.Keys(ctx)
}

// Reset drops the seeded collections and runs Initialize again. Cart and
// session keys are left alone.
func (a *Adapter) Reset(ctx context.Context) error {
	for _, key := range CollectionKeys {
		if err := a.Remove(ctx, key); err != nil {
			return err
		}
	}
	return a.Initialize(ctx)
}

func (a *Adapter) Close() error {
	return a.driver.Close()
}

// ── Helpers ─────────────────────────────────────────────────────────────────

// Require is Get that treats an absent key as ErrMissing.
func Require(ctx context.Context, s Store, key string, dest any) error {
	found, err := s.Get(ctx, key, dest)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrMissing, key)
	}
	return nil
}

// Collection reads a JSON array. Missing, unreadable or corrupt values
// yield an empty slice; failures are logged, never returned.
func Collection[T any](ctx context.Context, s Store, key string) []T {
	var items []T
	found, err := s.Get(ctx, key, &items)
	if err != nil {
		logger.WithCtx(ctx).Warn("store: unreadable collection, using empty", "key", key, "error", err)
		return []T{}
	}
	if !found || items == nil {
		return []T{}
	}
	return items
}

// Load reads a JSON array for a read-modify-write. A missing key or a
// corrupt value yields an empty slice; any other failure is returned so
// the caller skips its write instead of replacing the stored collection.
func Load[T any](ctx context.Context, s Store, key string) ([]T, error) {
	var items []T
	err := Require(ctx, s, key, &items)
	switch {
	case errors.Is(err, ErrMissing):
		return []T{}, nil
	case errors.Is(err, ErrCorrupt):
		logger.WithCtx(ctx).Warn("store: corrupt collection, replacing", "key", key, "error", err)
		return []T{}, nil
	case err != nil:
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveCollection writes items as a JSON array (never null).
func SaveCollection[T any](ctx context.Context, s Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return s.Set(ctx, key, items)
}
