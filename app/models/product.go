package models

import (
	"github.com/shopspring/decimal"
)

// Product statuses. Always derived from stock.
const (
	ProductActive     = "active"
	ProductOutOfStock = "out_of_stock"
)

// Product is a catalog entry.
type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Discount      int             `json:"discount"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand"`
	Stock         int             `json:"stock"`
	Image         string          `json:"image"`
	Rating        float64         `json:"rating"`
	Reviews       int             `json:"reviews"`
	SellerID      int             `json:"sellerId"`
	Status        string          `json:"status"`
	Features      []string        `json:"features"`
}

// StockStatus maps a stock level to a product status.
func StockStatus(stock int) string {
	if stock > 0 {
		return ProductActive
	}
	return ProductOutOfStock
}

// InStock reports whether the product can be bought.
func (p Product) InStock() bool { return p.Stock > 0 }

// ProductInput creates a product.
type ProductInput struct {
	Name          string          `json:"name"          validate:"required,max=100"`
	Description   string          `json:"description"   validate:"nullable,max=1000"`
	Price         decimal.Decimal `json:"price"         validate:"required,gte=0"`
	OriginalPrice decimal.Decimal `json:"originalPrice" validate:"gte=0"`
	Discount      int             `json:"discount"      validate:"gte=0,max=100"`
	Category      string          `json:"category"      validate:"required"`
	Brand         string          `json:"brand"`
	Stock         int             `json:"stock"         validate:"gte=0"`
	Image         string          `json:"image"         validate:"nullable,url"`
	SellerID      int             `json:"sellerId"      validate:"required"`
	Features      []string        `json:"features"`
}

// NewProduct builds a product with zero rating and reviews.
func (in ProductInput) NewProduct(id int) Product {
	features := in.Features
	if features == nil {
		features = []string{}
	}
	original := in.OriginalPrice
	if original.IsZero() {
		original = in.Price
	}
	return Product{
		ID:            id,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		OriginalPrice: original,
		Discount:      in.Discount,
		Category:      in.Category,
		Brand:         in.Brand,
		Stock:         in.Stock,
		Image:         in.Image,
		SellerID:      in.SellerID,
		Status:        StockStatus(in.Stock),
		Features:      features,
	}
}

// ProductUpdate changes selected product fields. Status is not settable;
// it follows Stock.
type ProductUpdate struct {
	Name          *string          `json:"name"          validate:"nullable,max=100"`
	Description   *string          `json:"description"   validate:"nullable,max=1000"`
	Price         *decimal.Decimal `json:"price"         validate:"nullable,gte=0"`
	OriginalPrice *decimal.Decimal `json:"originalPrice" validate:"nullable,gte=0"`
	Discount      *int             `json:"discount"      validate:"nullable,max=100"`
	Category      *string          `json:"category"`
	Brand         *string          `json:"brand"`
	Stock         *int             `json:"stock"         validate:"nullable,gte=0"`
	Image         *string          `json:"image"         validate:"nullable,url"`
	Features      []string         `json:"features"`
}

// Apply merges the set fields into p and re-derives the status.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.OriginalPrice != nil {
		p.OriginalPrice = *u.OriginalPrice
	}
	if u.Discount != nil {
		p.Discount = *u.Discount
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Brand != nil {
		p.Brand = *u.Brand
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Features != nil {
		p.Features = u.Features
	}
	p.Status = StockStatus(p.Stock)
}
