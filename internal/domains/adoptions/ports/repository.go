package ports

import (
	"context"
	"errors"

	"github.com/Apurer/petcare-api/internal/domains/adoptions/domain"
)

var (
	ErrNotFound         = errors.New("adoption request not found")
	ErrPetNotFound      = errors.New("pet not found")
	ErrPetUnavailable   = errors.New("pet is not available for adoption")
	ErrDuplicateRequest = errors.New("an active adoption request for this pet already exists")
)

// Filter narrows List. Empty fields match everything.
type Filter struct {
	UserEmail string
	PetID     string
	Statuses  []domain.Status
	ExcludeID string
}

// Repository persists adoption requests.
type Repository interface {
	Create(ctx context.Context, req *domain.Request) (*domain.Request, error)
	Update(ctx context.Context, req *domain.Request) (*domain.Request, error)
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	// List returns matches oldest first.
	List(ctx context.Context, filter Filter) ([]*domain.Request, error)
	Delete(ctx context.Context, id string) error
}

// PetSummary is what adoptions needs to know about a pet.
type PetSummary struct {
	ID        string
	Name      string
	Species   string
	Image     string
	Available bool
}

// PetGateway reads and flips pet availability in the pets context.
type PetGateway interface {
	Get(ctx context.Context, petID string) (PetSummary, error)
	SetAdopted(ctx context.Context, petID string, adopted bool) error
}
