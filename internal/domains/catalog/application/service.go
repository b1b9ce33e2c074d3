package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/petcare-api/internal/domains/catalog/domain"
	"github.com/Apurer/petcare-api/internal/domains/catalog/ports"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// Service implements the catalog use cases.
type Service struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
}

func NewService(products ports.ProductRepository, categories ports.CategoryRepository) *Service {
	return &Service{products: products, categories: categories}
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) CreateProduct(ctx context.Context, caller auth.Principal, input ports.ProductInput) (*domain.Product, error) {
	if err := auth.Authorize(caller, auth.CapManageCatalog); err != nil {
		return nil, err
	}
	product, err := domain.NewProduct(input.Name, input.Description, input.CategoryID, input.Price, input.Stock, input.Image)
	if err != nil {
		return nil, mapError(err)
	}
	if err := product.SetStatus(input.Status); err != nil {
		return nil, mapError(err)
	}
	if err := s.ensureCategory(ctx, product.CategoryID); err != nil {
		return nil, mapError(err)
	}
	created, err := s.products.Create(ctx, product)
	return created, mapError(err)
}

func (s *Service) UpdateProduct(ctx context.Context, caller auth.Principal, id string, patch ports.ProductPatch) (*domain.Product, error) {
	if err := auth.Authorize(caller, auth.CapManageCatalog); err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		product.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		product.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.CategoryID != nil {
		product.CategoryID = strings.TrimSpace(*patch.CategoryID)
		if err := s.ensureCategory(ctx, product.CategoryID); err != nil {
			return nil, mapError(err)
		}
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Image != nil {
		product.Image = strings.TrimSpace(*patch.Image)
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	status := domain.ProductStatus("")
	if patch.Status != nil {
		status = *patch.Status
	} else if patch.Stock != nil && product.Status != domain.ProductInactive {
		status = domain.ProductAvailable
		if product.Stock == 0 {
			status = domain.ProductOutOfStock
		}
	}
	if status != "" {
		if err := product.SetStatus(status); err != nil {
			return nil, mapError(err)
		}
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	updated, err := s.products.Update(ctx, product)
	return updated, mapError(err)
}

func (s *Service) DeleteProduct(ctx context.Context, caller auth.Principal, id string) error {
	if err := auth.Authorize(caller, auth.CapManageCatalog); err != nil {
		return err
	}
	return s.products.Delete(ctx, strings.TrimSpace(id))
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) CreateCategory(ctx context.Context, caller auth.Principal, input ports.CategoryInput) (*domain.Category, error) {
	if err := auth.Authorize(caller, auth.CapManageCatalog); err != nil {
		return nil, err
	}
	category, err := domain.NewCategory(input.Name, input.Description, input.Status)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.categories.Create(ctx, category)
	return created, mapError(err)
}

func (s *Service) UpdateCategory(ctx context.Context, caller auth.Principal, id string, patch ports.CategoryPatch) (*domain.Category, error) {
	if err := auth.Authorize(caller, auth.CapManageCatalog); err != nil {
		return nil, err
	}
	category, err := s.categories.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		category.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		category.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		category.Status = *patch.Status
	}
	if err := category.Validate(); err != nil {
		return nil, mapError(err)
	}
	updated, err := s.categories.Update(ctx, category)
	return updated, mapError(err)
}

func (s *Service) DeleteCategory(ctx context.Context, caller auth.Principal, id string) error {
	if err := auth.Authorize(caller, auth.CapManageCatalog); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return err
	}
	inUse, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return mapError(fmt.Errorf("%w: %s has %d products", ErrCategoryInUse, id, inUse))
	}
	return s.categories.Delete(ctx, id)
}

func (s *Service) ensureCategory(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownCategory, id)
		}
		return err
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
