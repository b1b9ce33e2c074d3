package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Apurer/petcare-api/internal/domains/adoptions/domain"
	"github.com/Apurer/petcare-api/internal/domains/adoptions/ports"
	platformobs "github.com/Apurer/petcare-api/internal/platform/observability"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

const tracerName = "github.com/Apurer/petcare-api/internal/domains/adoptions/adapters/observability/service"

var (
	WithLogger = platformobs.WithLogger
	WithTracer = platformobs.WithTracer
	WithMeter  = platformobs.WithMeter
)

// Service traces adoption use cases.
type Service struct {
	inner     ports.Service
	obs       *platformobs.Decorator
	submitted metric.Int64Counter
	decisions metric.Int64Counter
}

func New(inner ports.Service, opts ...platformobs.Option) ports.Service {
	obs := platformobs.NewDecorator(tracerName, opts...)
	return &Service{
		inner:     inner,
		obs:       obs,
		submitted: obs.Counter("adoptions.service.submitted", "Number of adoption requests submitted"),
		decisions: obs.Counter("adoptions.service.decisions", "Number of adoption status changes"),
	}
}

func (s *Service) Apply(ctx context.Context, caller auth.Principal, app domain.Application) (ports.ApplyResult, error) {
	ctx, span := s.obs.Start(ctx, "AdoptionService.Apply", attribute.String("pet.id", app.PetID))
	defer span.End()

	result, err := s.inner.Apply(ctx, caller, app)
	if err != nil {
		return ports.ApplyResult{}, s.obs.Fail(ctx, span, err, "failed to submit adoption request", slog.String("pet.id", app.PetID))
	}
	s.submitted.Add(ctx, 1)
	s.obs.Info(ctx, "adoption request submitted", slog.String("adoption.id", result.Request.ID), slog.String("pet.id", app.PetID))
	return result, nil
}

func (s *Service) Update(ctx context.Context, caller auth.Principal, id string, patch domain.Patch) (*domain.Request, error) {
	ctx, span := s.obs.Start(ctx, "AdoptionService.Update", attribute.String("adoption.id", id))
	defer span.End()

	result, err := s.inner.Update(ctx, caller, id, patch)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to update adoption request", slog.String("adoption.id", id))
	}
	return result, nil
}

func (s *Service) Delete(ctx context.Context, caller auth.Principal, id string) error {
	ctx, span := s.obs.Start(ctx, "AdoptionService.Delete", attribute.String("adoption.id", id))
	defer span.End()

	if err := s.inner.Delete(ctx, caller, id); err != nil {
		return s.obs.Fail(ctx, span, err, "failed to delete adoption request", slog.String("adoption.id", id))
	}
	return nil
}

func (s *Service) UpdateStatus(ctx context.Context, caller auth.Principal, id string, status domain.Status, reason string) (*domain.Request, error) {
	ctx, span := s.obs.Start(ctx, "AdoptionService.UpdateStatus",
		attribute.String("adoption.id", id),
		attribute.String("adoption.status", string(status)),
	)
	defer span.End()

	result, err := s.inner.UpdateStatus(ctx, caller, id, status, reason)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to change adoption status", slog.String("adoption.id", id))
	}
	s.decisions.Add(ctx, 1, metric.WithAttributes(attribute.String("adoption.status", string(result.Status))))
	s.obs.Info(ctx, "adoption status changed", slog.String("adoption.id", id), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) Get(ctx context.Context, caller auth.Principal, id string) (*domain.Request, error) {
	ctx, span := s.obs.Start(ctx, "AdoptionService.Get", attribute.String("adoption.id", id))
	defer span.End()

	result, err := s.inner.Get(ctx, caller, id)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to load adoption request", slog.String("adoption.id", id))
	}
	return result, nil
}

func (s *Service) ListMine(ctx context.Context, caller auth.Principal) ([]*domain.Request, error) {
	ctx, span := s.obs.Start(ctx, "AdoptionService.ListMine")
	defer span.End()

	result, err := s.inner.ListMine(ctx, caller)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to list own adoption requests")
	}
	return result, nil
}

func (s *Service) GetMineForPet(ctx context.Context, caller auth.Principal, petID string) (*domain.Request, error) {
	ctx, span := s.obs.Start(ctx, "AdoptionService.GetMineForPet", attribute.String("pet.id", petID))
	defer span.End()

	result, err := s.inner.GetMineForPet(ctx, caller, petID)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to load adoption request for pet", slog.String("pet.id", petID))
	}
	return result, nil
}

func (s *Service) ListAll(ctx context.Context, caller auth.Principal) ([]*domain.Request, error) {
	ctx, span := s.obs.Start(ctx, "AdoptionService.ListAll")
	defer span.End()

	result, err := s.inner.ListAll(ctx, caller)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to list adoption requests")
	}
	span.SetAttributes(attribute.Int("adoptions.count", len(result)))
	return result, nil
}

func (s *Service) ListByPet(ctx context.Context, caller auth.Principal, petID string) ([]*domain.Request, error) {
	ctx, span := s.obs.Start(ctx, "AdoptionService.ListByPet", attribute.String("pet.id", petID))
	defer span.End()

	result, err := s.inner.ListByPet(ctx, caller, petID)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to list adoption requests for pet", slog.String("pet.id", petID))
	}
	return result, nil
}
