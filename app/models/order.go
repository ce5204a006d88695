package models

import (
	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderPlaced     = "placed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// OrderStatuses is the full status vocabulary.
var OrderStatuses = []string{OrderPlaced, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

var transitions = map[string][]string{
	OrderPlaced:     {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
}

// ValidOrderStatus reports whether s is in the vocabulary.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether an order may move from one status to
// another. Delivered and cancelled orders are final.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Payment methods.
const (
	PayCreditCard   = "credit_card"
	PayDebitCard    = "debit_card"
	PayPal          = "paypal"
	PayCOD          = "cod"
	PayBankTransfer = "bank_transfer"
	PayCard         = "card"
	PayUPI          = "upi"
)

// PaymentMethods is the accepted vocabulary, joined for `in=` validation.
const PaymentMethods = "credit_card|debit_card|paypal|cod|bank_transfer|card|upi"

// OrderItem is one purchased line, priced at checkout time.
type OrderItem struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	SellerID  int             `json:"sellerId"`
}

// Subtotal is price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShippingAddress is where an order goes.
type ShippingAddress struct {
	Name    string `json:"name"    validate:"required,max=50"`
	Address string `json:"address" validate:"required,max=200"`
	Phone   string `json:"phone"   validate:"required,phone"`
}

// Order is a placed purchase. Orders are never deleted.
type Order struct {
	ID              string          `json:"id"`
	UserID          int             `json:"userId"`
	UserName        string          `json:"userName"`
	UserEmail       string          `json:"userEmail"`
	Items           []OrderItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	Date            string          `json:"date"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// HasSeller reports whether any item was sold by sellerID.
func (o Order) HasSeller(sellerID int) bool {
	for _, it := range o.Items {
		if it.SellerID == sellerID {
			return true
		}
	}
	return false
}

// OrderInput is what checkout hands to the repository.
type OrderInput struct {
	UserID          int
	UserName        string
	UserEmail       string
	Items           []OrderItem
	Total           decimal.Decimal
	ShippingAddress ShippingAddress
	PaymentMethod   string
}
