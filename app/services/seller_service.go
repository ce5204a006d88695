package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/app/repositories"
	"github.com/logimart/storefront/pkg/collection"
)

var (
	pendingShare      = decimal.RequireFromString("0.1")
	withdrawableShare = decimal.RequireFromString("0.9")
)

// Dashboard is a seller's overview.
type Dashboard struct {
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalOrders   int             `json:"totalOrders"`
	TotalProducts int             `json:"totalProducts"`
	PendingOrders int             `json:"pendingOrders"`
	RecentOrders  []models.Order  `json:"recentOrders"`
}

// Earnings splits a seller's revenue.
type Earnings struct {
	Total        decimal.Decimal `json:"total"`
	Monthly      decimal.Decimal `json:"monthly"`
	Pending      decimal.Decimal `json:"pending"`
	Withdrawable decimal.Decimal `json:"withdrawable"`
}

// SellerService reports on a seller's catalog and sales. A seller owns an
// order line when its product belongs to them.
type SellerService struct {
	repos *repositories.Repositories
}

func NewSellerService(repos *repositories.Repositories) *SellerService {
	return &SellerService{repos: repos}
}

type sellerSale struct {
	order  models.Order
	amount decimal.Decimal
}

func (s *SellerService) sales(ctx context.Context, sellerID int) ([]models.Product, []sellerSale) {
	products := s.repos.Products.BySeller(ctx, sellerID)
	owned := sellerProductIDs(ctx, s.repos, sellerID)

	var sales []sellerSale
	for _, o := range s.repos.Orders.All(ctx) {
		if !ownsItem(owned, o) {
			continue
		}
		amount := decimal.Zero
		for _, it := range o.Items {
			if owned[it.ProductID] {
				amount = amount.Add(it.Subtotal())
			}
		}
		sales = append(sales, sellerSale{order: o, amount: amount})
	}
	return products, sales
}

// Dashboard summarizes a seller's sales. RecentOrders holds the five
// newest orders by date.
func (s *SellerService) Dashboard(ctx context.Context, sellerID int) Dashboard {
	products, sales := s.sales(ctx, sellerID)
	orders := collection.Map(sales, func(x sellerSale) models.Order { return x.order })
	newestFirst := collection.SortBy(orders, func(a, b models.Order) bool {
		da, _ := orderDate(a.Date)
		db, _ := orderDate(b.Date)
		return da.After(db)
	})

	return Dashboard{
		TotalSales:    collection.Reduce(sales, decimal.Zero, func(sum decimal.Decimal, x sellerSale) decimal.Decimal { return sum.Add(x.amount) }),
		TotalOrders:   len(sales),
		TotalProducts: len(products),
		PendingOrders: len(collection.Filter(orders, func(o models.Order) bool { return o.Status == models.OrderProcessing })),
		RecentOrders:  collection.Take(newestFirst, 5),
	}
}

// Earnings totals revenue. Monthly covers orders dated in now's calendar
// month; pending and withdrawable are fixed 10/90 shares of the total.
func (s *SellerService) Earnings(ctx context.Context, sellerID int, now time.Time) Earnings {
	_, sales := s.sales(ctx, sellerID)

	e := Earnings{Total: decimal.Zero, Monthly: decimal.Zero}
	for _, x := range sales {
		e.Total = e.Total.Add(x.amount)
		if d, ok := orderDate(x.order.Date); ok && d.Year() == now.Year() && d.Month() == now.Month() {
			e.Monthly = e.Monthly.Add(x.amount)
		}
	}
	e.Pending = e.Total.Mul(pendingShare)
	e.Withdrawable = e.Total.Mul(withdrawableShare)
	return e
}

func orderDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, models.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
