package services

import (
	"context"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/app/repositories"
	"github.com/logimart/storefront/pkg/logger"
	"github.com/logimart/storefront/pkg/rbac"
	"github.com/logimart/storefront/pkg/validate"
)

// CatalogService manages products on behalf of sellers and admins and
// keeps category counts in step.
type CatalogService struct {
	repos *repositories.Repositories
}

func NewCatalogService(repos *repositories.Repositories) *CatalogService {
	return &CatalogService{repos: repos}
}

// AddProduct lists a new product. Sellers always list under their own id.
func (s *CatalogService) AddProduct(ctx context.Context, actor models.PublicUser, in models.ProductInput) (models.Product, error) {
	ctx = logger.WithOperation(ctx, "catalog.add")
	if err := rbac.Require(actor.Role, rbac.Seller, rbac.Admin); err != nil {
		return models.Product{}, err
	}
	if actor.Role == rbac.Seller {
		in.SellerID = actor.ID
	}
	if err := validate.Check(in); err != nil {
		return models.Product{}, err
	}

	p, err := s.repos.Products.Create(ctx, in)
	if err != nil {
		return models.Product{}, err
	}
	s.refreshCounts(ctx)
	logger.WithCtx(ctx).Info("product listed", "product_id", p.ID, "seller_id", p.SellerID)
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, actor models.PublicUser, id int, upd models.ProductUpdate) (models.Product, error) {
	ctx = logger.WithOperation(ctx, "catalog.update")
	if err := s.authorize(ctx, actor, id); err != nil {
		return models.Product{}, err
	}
	if err := validate.Check(upd); err != nil {
		return models.Product{}, err
	}

	p, err := s.repos.Products.Update(ctx, id, upd)
	if err != nil {
		return models.Product{}, err
	}
	if upd.Category != nil {
		s.refreshCounts(ctx)
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, actor models.PublicUser, id int) error {
	ctx = logger.WithOperation(ctx, "catalog.delete")
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repos.Products.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshCounts(ctx)
	logger.WithCtx(ctx).Info("product removed", "product_id", id, "actor", actor.ID)
	return nil
}

func (s *CatalogService) authorize(ctx context.Context, actor models.PublicUser, id int) error {
	if err := rbac.Require(actor.Role, rbac.Seller, rbac.Admin); err != nil {
		return err
	}
	p, ok := s.repos.Products.FindByID(ctx, id)
	if !ok {
		return repositories.ErrNotFound
	}
	if actor.Role == rbac.Seller && p.SellerID != actor.ID {
		return ErrForbidden
	}
	return nil
}

func (s *CatalogService) refreshCounts(ctx context.Context) {
	if _, err := s.repos.Categories.RefreshCounts(ctx); err != nil {
		logger.WithCtx(ctx).Warn("catalog: category counts not refreshed", "error", err)
	}
}
