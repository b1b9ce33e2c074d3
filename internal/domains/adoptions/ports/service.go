package ports

import (
	"context"

	"github.com/Apurer/petcare-api/internal/domains/adoptions/domain"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// ApplyResult pairs a new request with the pet it targets.
type ApplyResult struct {
	Request *domain.Request
	Pet     PetSummary
}

// Service exposes adoption use cases to adapters.
type Service interface {
	Apply(ctx context.Context, caller auth.Principal, app domain.Application) (ApplyResult, error)
	Update(ctx context.Context, caller auth.Principal, id string, patch domain.Patch) (*domain.Request, error)
	Delete(ctx context.Context, caller auth.Principal, id string) error
	UpdateStatus(ctx context.Context, caller auth.Principal, id string, status domain.Status, reason string) (*domain.Request, error)
	Get(ctx context.Context, caller auth.Principal, id string) (*domain.Request, error)
	ListMine(ctx context.Context, caller auth.Principal) ([]*domain.Request, error)
	GetMineForPet(ctx context.Context, caller auth.Principal, petID string) (*domain.Request, error)
	ListAll(ctx context.Context, caller auth.Principal) ([]*domain.Request, error)
	ListByPet(ctx context.Context, caller auth.Principal, petID string) ([]*domain.Request, error)
}
