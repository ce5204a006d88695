// Package cart holds the shopping cart: a pure reducer over line items
// and a Provider that persists the reducer state to the store.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/logimart/storefront/app/models"
)

// State is the cart contents. Every item has Quantity >= 1 and ids are
// unique.
type State struct {
	Items []models.CartLineItem
}

// Action is a cart mutation understood by Reduce.
type Action interface {
	Kind() string
}

type AddItem struct {
	ID    int
	Name  string
	Price decimal.Decimal
	Image string
}

type IncreaseQty struct{ ID int }

type DecreaseQty struct{ ID int }

type RemoveItem struct{ ID int }

type ClearCart struct{}

func (AddItem) Kind() string     { return "add_item" }
func (IncreaseQty) Kind() string { return "increase_qty" }
func (DecreaseQty) Kind() string { return "decrease_qty" }
func (RemoveItem) Kind() string  { return "remove_item" }
func (ClearCart) Kind() string   { return "clear_cart" }

// Reduce returns the state after a. The input is never modified; an
// action it does not know returns s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddItem:
		if indexOf(s.Items, a.ID) >= 0 {
			return mapItems(s, a.ID, func(it *models.CartLineItem) { it.Quantity++ })
		}
		items := make([]models.CartLineItem, len(s.Items), len(s.Items)+1)
		copy(items, s.Items)
		items = append(items, models.CartLineItem{ID: a.ID, Name: a.Name, Price: a.Price, Image: a.Image, Quantity: 1})
		return State{Items: items}

	case IncreaseQty:
		return mapItems(s, a.ID, func(it *models.CartLineItem) { it.Quantity++ })

	case DecreaseQty:
		next := mapItems(s, a.ID, func(it *models.CartLineItem) {
			if it.Quantity > 1 {
				it.Quantity--
			}
		})
		return State{Items: keep(next.Items, func(it models.CartLineItem) bool { return it.Quantity > 0 })}

	case RemoveItem:
		return State{Items: keep(s.Items, func(it models.CartLineItem) bool { return it.ID != a.ID })}

	case ClearCart:
		return State{Items: []models.CartLineItem{}}

	default:
		return s
	}
}

// Normalize restores the State invariants on items read from outside the
// reducer: lines with a quantity below 1 are dropped and repeated ids are
// merged into their first line, quantities summed.
func Normalize(items []models.CartLineItem) State {
	out := make([]models.CartLineItem, 0, len(items))
	for _, it := range keep(items, func(it models.CartLineItem) bool { return it.Quantity >= 1 }) {
		if i := indexOf(out, it.ID); i >= 0 {
			out[i].Quantity += it.Quantity
			continue
		}
		out = append(out, it)
	}
	return State{Items: out}
}

func indexOf(items []models.CartLineItem, id int) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func mapItems(s State, id int, fn func(*models.CartLineItem)) State {
	items := make([]models.CartLineItem, len(s.Items))
	copy(items, s.Items)
	for i := range items {
		if items[i].ID == id {
			fn(&items[i])
		}
	}
	return State{Items: items}
}

func keep(items []models.CartLineItem, fn func(models.CartLineItem) bool) []models.CartLineItem {
	out := make([]models.CartLineItem, 0, len(items))
	for _, it := range items {
		if fn(it) {
			out = append(out, it)
		}
	}
	return out
}

// TotalQuantity sums item quantities.
func (s State) TotalQuantity() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

// TotalPrice sums price * quantity over the items.
func (s State) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}
