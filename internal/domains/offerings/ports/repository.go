package ports

import (
	"context"
	"errors"

	"github.com/Apurer/petcare-api/internal/domains/offerings/domain"
)

var ErrNotFound = errors.New("service not found")

// Repository persists offerings. Create assigns the next SRV identifier.
type Repository interface {
	Create(ctx context.Context, offering *domain.Offering) (*domain.Offering, error)
	Update(ctx context.Context, offering *domain.Offering) (*domain.Offering, error)
	GetByID(ctx context.Context, id string) (*domain.Offering, error)
	List(ctx context.Context) ([]*domain.Offering, error)
	Delete(ctx context.Context, id string) error
}
