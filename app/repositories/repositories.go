// Package repositories is the storefront's data access layer. Every
// mutation reads the whole collection, transforms it in memory and
// writes it back; a per-repository mutex serializes that cycle within
// one process.
package repositories

import (
	"errors"
	"time"

	"github.com/logimart/storefront/pkg/auth"
	"github.com/logimart/storefront/pkg/store"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrDuplicateCategory  = errors.New("category already exists")
	ErrInvalidStatus      = errors.New("invalid order status")
)

// Repositories bundles the repositories over one store. They share an id
// sequence.
type Repositories struct {
	Users      *UserRepository
	Products   *ProductRepository
	Orders     *OrderRepository
	Categories *CategoryRepository
}

// Option configures New.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New wires every repository to s.
func New(s store.Store, h auth.Hasher, opts ...Option) *Repositories {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	seq := NewSequence(s)
	products := &ProductRepository{store: s, seq: seq}
	return &Repositories{
		Users:      &UserRepository{store: s, hasher: h, seq: seq, now: o.now},
		Products:   products,
		Orders:     &OrderRepository{store: s, now: o.now},
		Categories: &CategoryRepository{store: s, seq: seq, products: products},
	}
}
