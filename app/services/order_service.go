package services

import (
	"context"
	"fmt"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/app/repositories"
	"github.com/logimart/storefront/pkg/logger"
	"github.com/logimart/storefront/pkg/rbac"
)

type OrderService struct {
	repos *repositories.Repositories
}

func NewOrderService(repos *repositories.Repositories) *OrderService {
	return &OrderService{repos: repos}
}

// UpdateStatus moves an order forward. Admins may update any order; a
// seller only orders containing one of their products.
func (s *OrderService) UpdateStatus(ctx context.Context, actor models.PublicUser, orderID, status string) (models.Order, error) {
	ctx = logger.WithOperation(ctx, "orders.update_status")

	if err := rbac.Require(actor.Role, rbac.Seller, rbac.Admin); err != nil {
		return models.Order{}, err
	}
	if !models.ValidOrderStatus(status) {
		return models.Order{}, fmt.Errorf("%w: %q", repositories.ErrInvalidStatus, status)
	}

	order, ok := s.repos.Orders.FindByID(ctx, orderID)
	if !ok {
		return models.Order{}, repositories.ErrNotFound
	}

	if actor.Role == rbac.Seller && !ownsItem(sellerProductIDs(ctx, s.repos, actor.ID), order) {
		return models.Order{}, ErrForbidden
	}
	if !models.CanTransition(order.Status, status) {
		return models.Order{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, status)
	}

	updated, err := s.repos.Orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return models.Order{}, err
	}
	logger.WithCtx(ctx).Info("order status changed", "order_id", orderID, "from", order.Status, "to", status, "actor", actor.ID)
	return updated, nil
}

// List returns the orders actor may see: their own as a customer, those
// holding their products as a seller, all as an admin.
func (s *OrderService) List(ctx context.Context, actor models.PublicUser) []models.Order {
	switch actor.Role {
	case rbac.Admin:
		return s.repos.Orders.All(ctx)
	case rbac.Seller:
		owned := sellerProductIDs(ctx, s.repos, actor.ID)
		all := s.repos.Orders.All(ctx)
		out := make([]models.Order, 0, len(all))
		for _, o := range all {
			if ownsItem(owned, o) {
				out = append(out, o)
			}
		}
		return out
	default:
		return s.repos.Orders.ByUser(ctx, actor.ID)
	}
}

func sellerProductIDs(ctx context.Context, repos *repositories.Repositories, sellerID int) map[int]bool {
	ids := map[int]bool{}
	for _, p := range repos.Products.BySeller(ctx, sellerID) {
		ids[p.ID] = true
	}
	return ids
}

func ownsItem(productIDs map[int]bool, o models.Order) bool {
	for _, it := range o.Items {
		if productIDs[it.ProductID] {
			return true
		}
	}
	return false
}
