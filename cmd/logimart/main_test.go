package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logimart/storefront/config"
	"github.com/logimart/storefront/pkg/rbac"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	jsonFlag, promoFlag, rememberFlag = false, "", false
	sellerFilter, orderUserFilter, orderSellerFilter = 0, 0, 0
	metricsPrefix = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "%v: %s", args, out)
	return out
}

func TestShoppingFlow(t *testing.T) {
	config.Set("STORE_DRIVER", "disk")
	config.Set("STORAGE_DISK", "local")
	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())
	config.Set("CART_PROFILE", "default")

	assert.Contains(t, mustRun(t, "seed"), "Store ready")
	assert.Contains(t, mustRun(t, "whoami"), "Not signed in")

	_, err := run(t, "cart", "add", "5")
	assert.Error(t, err)

	assert.Contains(t, mustRun(t, "login", "jane@example.com", "customer123", "--remember"), "Welcome back, Jane Smith")
	assert.Contains(t, mustRun(t, "whoami"), "jane@example.com")

	mustRun(t, "cart", "add", "5")
	mustRun(t, "cart", "add", "5")
	assert.Contains(t, mustRun(t, "cart", "dec", "5"), "1 item(s)")

	_, err = run(t, "cart", "add", "3")
	assert.ErrorContains(t, err, "out of stock")

	show := mustRun(t, "cart", "show", "--promo", "SAVE10")
	assert.Contains(t, show, "Sony WH-1000XM5")
	assert.Contains(t, show, "SAVE10")

	placed := mustRun(t, "checkout", "--address", "456 Oak Ave, Delhi", "--phone", "+91 9876543211", "--payment", "upi")
	assert.Contains(t, placed, "placed")
	assert.Contains(t, mustRun(t, "cart", "show"), "empty")

	_, err = run(t, "orders", "status", "ORD004", "processing")
	assert.ErrorIs(t, err, rbac.ErrForbidden)

	mustRun(t, "logout")
	assert.Contains(t, mustRun(t, "whoami"), "remembered: jane@example.com")

	mustRun(t, "login", "admin@logimart.com", "admin123")
	assert.Contains(t, mustRun(t, "orders", "status", "ORD004", "processing"), "now processing")
	assert.Contains(t, mustRun(t, "orders", "list"), "ORD-")
	assert.Contains(t, mustRun(t, "users", "list"), "seller@google.com")
	assert.Contains(t, mustRun(t, "categories", "list"), "smartphones")

	assert.Contains(t, mustRun(t, "seller", "dashboard", "2"), "Total sales")
	assert.Contains(t, mustRun(t, "metrics", "--prefix", "logimart_"), "logimart_store_operations_total")

	mustRun(t, "reset")
	assert.NotContains(t, mustRun(t, "orders", "list"), "ORD-")
}
