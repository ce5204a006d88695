package services

import (
	"context"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/app/repositories"
	"github.com/logimart/storefront/pkg/cart"
	"github.com/logimart/storefront/pkg/event"
	"github.com/logimart/storefront/pkg/logger"
	"github.com/logimart/storefront/pkg/metrics"
	"github.com/logimart/storefront/pkg/validate"
)

// CheckoutInput is the checkout form.
type CheckoutInput struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required,in=credit_card|debit_card|paypal|cod|bank_transfer|card|upi"`
	Promo           string                 `json:"promo"`
}

type CheckoutService struct {
	repos *repositories.Repositories
	cart  *cart.Provider
	bus   *event.Bus
}

func NewCheckoutService(repos *repositories.Repositories, c *cart.Provider, bus *event.Bus) *CheckoutService {
	return &CheckoutService{repos: repos, cart: c, bus: bus}
}

// Checkout turns the cart into an order for user and empties the cart.
func (s *CheckoutService) Checkout(ctx context.Context, user models.PublicUser, in CheckoutInput) (models.Order, error) {
	ctx = logger.WithOperation(ctx, "checkout")
	log := logger.WithCtx(ctx)

	lines := s.cart.Items()
	if len(lines) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	errs := validate.Struct(in)
	for k, v := range validate.Struct(in.ShippingAddress) {
		errs["shippingAddress."+k] = v
	}
	if validate.HasErrors(errs) {
		return models.Order{}, &validate.Error{Fields: errs}
	}

	summary, err := s.cart.Summary(in.Promo)
	if err != nil {
		return models.Order{}, err
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		item := models.OrderItem{ProductID: line.ID, Name: line.Name, Quantity: line.Quantity, Price: line.Price}
		if p, ok := s.repos.Products.FindByID(ctx, line.ID); ok {
			item.SellerID = p.SellerID
		} else {
			log.Warn("checkout: product no longer listed", "product_id", line.ID)
		}
		items = append(items, item)
	}

	order, err := s.repos.Orders.Place(ctx, models.OrderInput{
		UserID:          user.ID,
		UserName:        user.Name,
		UserEmail:       user.Email,
		Items:           items,
		Total:           summary.Total,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
	})
	if err != nil {
		return models.Order{}, err
	}

	if err := s.cart.ClearCart(ctx); err != nil {
		log.Error("checkout: order placed but cart not cleared", "order_id", order.ID, "error", err)
		return order, err
	}

	metrics.OrdersPlaced.WithLabelValues(order.PaymentMethod).Inc()
	s.bus.Fire(event.OrderPlaced, order)
	log.Info("order placed", "order_id", order.ID, "user_id", user.ID, "total", order.Total.String())
	return order, nil
}
