package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/offerings/domain"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

type OfferingInput struct {
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	Duration    string
	Image       string
}

// OfferingPatch carries optional changes; nil fields are left alone.
type OfferingPatch struct {
	Name        *string
	Category    *string
	Description *string
	Price       *decimal.Decimal
	Duration    *string
	Image       *string
}

// Service exposes offering use cases. Writes require CapManageOfferings.
type Service interface {
	List(ctx context.Context) ([]*domain.Offering, error)
	Get(ctx context.Context, id string) (*domain.Offering, error)
	Create(ctx context.Context, caller auth.Principal, input OfferingInput) (*domain.Offering, error)
	Update(ctx context.Context, caller auth.Principal, id string, patch OfferingPatch) (*domain.Offering, error)
	Delete(ctx context.Context, caller auth.Principal, id string) error
}
