package models

import (
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/logimart/storefront/pkg/rbac"
)

// Roles.
const (
	RoleCustomer = rbac.Customer
	RoleSeller   = rbac.Seller
	RoleAdmin    = rbac.Admin
)

// StatusActive is the only account status the storefront assigns.
const StatusActive = "active"

// User is a stored account. Password holds a bcrypt hash.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
	JoinDate string `json:"joinDate"`
	Status   string `json:"status"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`

	OrdersCount   int              `json:"ordersCount,omitempty"`
	TotalSpent    *decimal.Decimal `json:"totalSpent,omitempty"`
	ProductsCount int              `json:"productsCount,omitempty"`
	TotalEarnings *decimal.Decimal `json:"totalEarnings,omitempty"`
}

// PublicUser is a User without credentials. It is what callers outside
// the repository layer see.
type PublicUser struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
	JoinDate string `json:"joinDate"`
	Status   string `json:"status"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`

	OrdersCount   int              `json:"ordersCount,omitempty"`
	TotalSpent    *decimal.Decimal `json:"totalSpent,omitempty"`
	ProductsCount int              `json:"productsCount,omitempty"`
	TotalEarnings *decimal.Decimal `json:"totalEarnings,omitempty"`
}

// Public drops the password.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		Avatar:        u.Avatar,
		JoinDate:      u.JoinDate,
		Status:        u.Status,
		Phone:         u.Phone,
		Address:       u.Address,
		OrdersCount:   u.OrdersCount,
		TotalSpent:    u.TotalSpent,
		ProductsCount: u.ProductsCount,
		TotalEarnings: u.TotalEarnings,
	}
}

// AvatarURL is the generated avatar for a newly registered name.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

// RegisterInput is a signup request.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required,max=50"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

// ProfileUpdate changes selected profile fields. Nil fields are left alone.
type ProfileUpdate struct {
	Name     *string `json:"name"     validate:"nullable,max=50"`
	Email    *string `json:"email"    validate:"nullable,email,max=100"`
	Phone    *string `json:"phone"    validate:"nullable,phone"`
	Address  *string `json:"address"  validate:"nullable,max=200"`
	Avatar   *string `json:"avatar"   validate:"nullable,url"`
	Password *string `json:"password" validate:"nullable,min=6"`
}

// Apply merges every non-password field into u. The repository hashes
// Password separately.
func (p ProfileUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
}
