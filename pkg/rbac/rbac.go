// Package rbac provides role-based access checks for storefront actors.
package rbac

import "errors"

// Roles known to the storefront.
const (
	Customer = "customer"
	Seller   = "seller"
	Admin    = "admin"
)

// ErrForbidden is returned when the actor's role is not allowed.
var ErrForbidden = errors.New("rbac: forbidden")

// HasRole reports whether role is one of roles.
func HasRole(role string, roles ...string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Require returns ErrForbidden unless role is one of roles.
func Require(role string, roles ...string) error {
	if !HasRole(role, roles...) {
		return ErrForbidden
	}
	return nil
}

// Valid reports whether role is part of the vocabulary.
func Valid(role string) bool {
	return HasRole(role, Customer, Seller, Admin)
}

// HomePath is where a signed-in user of the given role lands.
func HomePath(role string) string {
	switch role {
	case Admin:
		return "/admin"
	case Seller:
		return "/seller"
	case Customer:
		return "/customer"
	default:
		return "/"
	}
}
