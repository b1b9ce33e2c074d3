package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/catalog/domain"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// ProductInput carries the fields accepted on product create.
type ProductInput struct {
	Name        string
	Description string
	CategoryID  string
	Price       decimal.Decimal
	Stock       int
	Image       string
	Status      domain.ProductStatus
}

// ProductPatch carries optional product changes; nil fields are left alone.
type ProductPatch struct {
	Name        *string
	Description *string
	CategoryID  *string
	Price       *decimal.Decimal
	Stock       *int
	Image       *string
	Status      *domain.ProductStatus
}

// CategoryInput carries category fields.
type CategoryInput struct {
	Name        string
	Description string
	Status      domain.CategoryStatus
}

// CategoryPatch carries optional category changes.
type CategoryPatch struct {
	Name        *string
	Description *string
	Status      *domain.CategoryStatus
}

// Service exposes the catalog use cases. Reads are public; writes require CapManageCatalog.
type Service interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, caller auth.Principal, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, caller auth.Principal, id string, patch ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, caller auth.Principal, id string) error

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, caller auth.Principal, input CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, caller auth.Principal, id string, patch CategoryPatch) (*domain.Category, error)
	DeleteCategory(ctx context.Context, caller auth.Principal, id string) error
}
