package ports

import (
	"context"
	"time"

	"github.com/Apurer/petcare-api/internal/domains/pets/domain"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// SubmitPetInput is accepted from administrators and from public submitters.
type SubmitPetInput struct {
	Attributes domain.Attributes
	Submitter  domain.Contact
}

// UpdatePetInput replaces descriptive attributes; a non-nil status also sets availability.
type UpdatePetInput struct {
	Attributes     domain.Attributes
	AdoptionStatus *domain.AdoptionStatus
}

// HealthRecordInput carries a veterinary visit.
type HealthRecordInput struct {
	VisitDate time.Time
	VetName   string
	Type      domain.HealthRecordType
	Notes     string
}

// Service defines the pets use cases exposed to adapters.
type Service interface {
	Submit(ctx context.Context, caller auth.Principal, input SubmitPetInput) (*PetProjection, error)
	ListApproved(ctx context.Context) ([]*PetProjection, error)
	Get(ctx context.Context, id string) (*PetProjection, error)
	Update(ctx context.Context, caller auth.Principal, id string, input UpdatePetInput) (*PetProjection, error)
	Delete(ctx context.Context, caller auth.Principal, id string) error
	Approve(ctx context.Context, caller auth.Principal, id string) (*PetProjection, error)
	Reject(ctx context.Context, caller auth.Principal, id string) error
	ListPending(ctx context.Context, caller auth.Principal) ([]*PetProjection, error)
	ListPendingPublic(ctx context.Context, caller auth.Principal) ([]*PetProjection, error)
	AddHealthRecord(ctx context.Context, caller auth.Principal, id string, input HealthRecordInput) (*PetProjection, error)
	RemoveHealthRecord(ctx context.Context, caller auth.Principal, id string, index int) (*PetProjection, error)
}
