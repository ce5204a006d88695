package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequire(t *testing.T) {
	assert.NoError(t, Require(Admin, Seller, Admin))
	assert.ErrorIs(t, Require(Customer, Seller, Admin), ErrForbidden)
	assert.ErrorIs(t, Require("", Admin), ErrForbidden)
}

func TestHomePath(t *testing.T) {
	cases := map[string]string{
		Admin:    "/admin",
		Seller:   "/seller",
		Customer: "/customer",
		"guest":  "/",
	}
	for role, want := range cases {
		assert.Equal(t, want, HomePath(role), role)
	}
}
