package ports

import (
	"context"
	"errors"

	"github.com/Apurer/petcare-api/internal/domains/pets/domain"
	"github.com/Apurer/petcare-api/internal/shared/projection"
)

var ErrNotFound = errors.New("pet not found")

// PetProjection is a pet plus persistence timestamps.
type PetProjection = projection.Projection[*domain.Pet]

// Filter narrows List results. Nil fields do not filter.
type Filter struct {
	Approved     *bool
	AddedByAdmin *bool
}

// Repository persists pets. Create assigns the next PET identifier.
type Repository interface {
	Create(ctx context.Context, pet *domain.Pet) (*PetProjection, error)
	Update(ctx context.Context, pet *domain.Pet) (*PetProjection, error)
	GetByID(ctx context.Context, id string) (*PetProjection, error)
	List(ctx context.Context, filter Filter) ([]*PetProjection, error)
	Delete(ctx context.Context, id string) error
	// MarkAdopted flips AVAILABLE to ADOPTED atomically, returning domain.ErrAlreadyAdopted otherwise.
	MarkAdopted(ctx context.Context, id string) (*PetProjection, error)
	SetAdoptionStatus(ctx context.Context, id string, status domain.AdoptionStatus) error
}
