package application

import (
	"context"
	"strings"

	"github.com/Apurer/petcare-api/internal/domains/offerings/domain"
	"github.com/Apurer/petcare-api/internal/domains/offerings/ports"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// Service implements the offering use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*domain.Offering, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Offering, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) Create(ctx context.Context, caller auth.Principal, input ports.OfferingInput) (*domain.Offering, error) {
	if err := auth.Authorize(caller, auth.CapManageOfferings); err != nil {
		return nil, err
	}
	offering, err := domain.NewOffering(input.Name, input.Category, input.Description, input.Price, input.Duration, input.Image)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, offering)
	return created, mapError(err)
}

func (s *Service) Update(ctx context.Context, caller auth.Principal, id string, patch ports.OfferingPatch) (*domain.Offering, error) {
	if err := auth.Authorize(caller, auth.CapManageOfferings); err != nil {
		return nil, err
	}
	offering, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&offering.Name, patch.Name)
	apply(&offering.Category, patch.Category)
	apply(&offering.Description, patch.Description)
	apply(&offering.Duration, patch.Duration)
	apply(&offering.Image, patch.Image)
	if patch.Price != nil {
		offering.Price = *patch.Price
	}
	if err := offering.Validate(); err != nil {
		return nil, mapError(err)
	}
	updated, err := s.repo.Update(ctx, offering)
	return updated, mapError(err)
}

func (s *Service) Delete(ctx context.Context, caller auth.Principal, id string) error {
	if err := auth.Authorize(caller, auth.CapManageOfferings); err != nil {
		return err
	}
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

var _ ports.Service = (*Service)(nil)
