package ports

import (
	"context"
	"errors"

	"github.com/Apurer/petcare-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound          = errors.New("catalog entry not found")
	ErrDuplicateCategory = errors.New("category name already exists")
)

// ProductRepository persists products. Create assigns the next PROD identifier.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Delete(ctx context.Context, id string) error
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	// Withdraw decrements stock only when enough units remain, returning domain.ErrInsufficientStock otherwise.
	Withdraw(ctx context.Context, id string, quantity int) (*domain.Product, error)
	// Restock adds quantity units back without touching any other field.
	Restock(ctx context.Context, id string, quantity int) (*domain.Product, error)
}

// CategoryRepository persists categories. Create assigns the next CAT identifier.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
