package store

import (
	"context"
	"time"

	"github.com/logimart/storefront/pkg/metrics"
)

type instrumented struct {
	Driver
}

func instrument(d Driver) Driver {
	if _, ok := d.(instrumented); ok {
		return d
	}
	return instrumented{Driver: d}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (i instrumented) Read(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	raw, ok, err := i.Driver.Read(ctx, key)
	res := result(err)
	if err == nil && !ok {
		res = "miss"
	}
	metrics.ObserveStore(i.Name(), "get", res, start)
	return raw, ok, err
}

func (i instrumented) Write(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := i.Driver.Write(ctx, key, value)
	metrics.ObserveStore(i.Name(), "set", result(err), start)
	return err
}

func (i instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := i.Driver.Delete(ctx, key)
	metrics.ObserveStore(i.Name(), "remove", result(err), start)
	return err
}

func (i instrumented) Keys(ctx context.Context) ([]string, error) {
	start := time.Now()
	keys, err := i.Driver.Keys(ctx)
	metrics.ObserveStore(i.Name(), "keys", result(err), start)
	return keys, err
}
