package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Apurer/petcare-api/internal/domains/offerings/domain"
	"github.com/Apurer/petcare-api/internal/domains/offerings/ports"
	platformobs "github.com/Apurer/petcare-api/internal/platform/observability"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

const tracerName = "github.com/Apurer/petcare-api/internal/domains/offerings/adapters/observability/service"

var (
	WithLogger = platformobs.WithLogger
	WithTracer = platformobs.WithTracer
	WithMeter  = platformobs.WithMeter
)

// Service traces offering use cases.
type Service struct {
	inner ports.Service
	obs   *platformobs.Decorator
}

func New(inner ports.Service, opts ...platformobs.Option) ports.Service {
	return &Service{inner: inner, obs: platformobs.NewDecorator(tracerName, opts...)}
}

func (s *Service) List(ctx context.Context) ([]*domain.Offering, error) {
	ctx, span := s.obs.Start(ctx, "OfferingService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to list services")
	}
	span.SetAttributes(attribute.Int("services.count", len(result)))
	return result, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Offering, error) {
	ctx, span := s.obs.Start(ctx, "OfferingService.Get", attribute.String("service.id", id))
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to load service", slog.String("service.id", id))
	}
	return result, nil
}

func (s *Service) Create(ctx context.Context, caller auth.Principal, input ports.OfferingInput) (*domain.Offering, error) {
	ctx, span := s.obs.Start(ctx, "OfferingService.Create", attribute.String("service.name", input.Name))
	defer span.End()

	result, err := s.inner.Create(ctx, caller, input)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to create service", slog.String("service.name", input.Name))
	}
	s.obs.Info(ctx, "service created", slog.String("service.id", result.ID))
	return result, nil
}

func (s *Service) Update(ctx context.Context, caller auth.Principal, id string, patch ports.OfferingPatch) (*domain.Offering, error) {
	ctx, span := s.obs.Start(ctx, "OfferingService.Update", attribute.String("service.id", id))
	defer span.End()

	result, err := s.inner.Update(ctx, caller, id, patch)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to update service", slog.String("service.id", id))
	}
	return result, nil
}

func (s *Service) Delete(ctx context.Context, caller auth.Principal, id string) error {
	ctx, span := s.obs.Start(ctx, "OfferingService.Delete", attribute.String("service.id", id))
	defer span.End()

	if err := s.inner.Delete(ctx, caller, id); err != nil {
		return s.obs.Fail(ctx, span, err, "failed to delete service", slog.String("service.id", id))
	}
	s.obs.Info(ctx, "service deleted", slog.String("service.id", id))
	return nil
}
