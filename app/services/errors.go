// Package services composes repositories, the cart and the session into
// the storefront's use cases.
package services

import (
	"errors"

	"github.com/logimart/storefront/pkg/rbac"
)

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrForbidden         = rbac.ErrForbidden
	ErrInvalidTransition = errors.New("illegal order status transition")
	ErrNotSignedIn       = errors.New("not signed in")
)
