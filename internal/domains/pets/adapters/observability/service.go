package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Apurer/petcare-api/internal/domains/pets/ports"
	platformobs "github.com/Apurer/petcare-api/internal/platform/observability"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

const tracerName = "github.com/Apurer/petcare-api/internal/domains/pets/adapters/observability/service"

var (
	WithLogger = platformobs.WithLogger
	WithTracer = platformobs.WithTracer
	WithMeter  = platformobs.WithMeter
)

// Service decorates the pets service with tracing, logging, and metrics.
type Service struct {
	inner     ports.Service
	obs       *platformobs.Decorator
	mutations metric.Int64Counter
}

// New wraps the core pets service.
func New(inner ports.Service, opts ...platformobs.Option) ports.Service {
	obs := platformobs.NewDecorator(tracerName, opts...)
	return &Service{
		inner:     inner,
		obs:       obs,
		mutations: obs.Counter("pets.service.mutations", "Number of pet mutations"),
	}
}

func (s *Service) Submit(ctx context.Context, caller auth.Principal, input ports.SubmitPetInput) (*ports.PetProjection, error) {
	ctx, span := s.obs.Start(ctx, "PetService.Submit",
		attribute.String("pet.name", input.Attributes.Name),
		attribute.Bool("caller.admin", caller.IsAdmin()),
	)
	defer span.End()

	result, err := s.inner.Submit(ctx, caller, input)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to submit pet", slog.String("pet.name", input.Attributes.Name))
	}
	span.SetAttributes(attribute.String("pet.id", result.Entity.ID), attribute.Bool("pet.approved", result.Entity.Approved))
	s.record(ctx, "pet.submitted")
	s.obs.Info(ctx, "pet submitted",
		slog.String("pet.id", result.Entity.ID),
		slog.Bool("pet.approved", result.Entity.Approved),
	)
	return result, nil
}

func (s *Service) ListApproved(ctx context.Context) ([]*ports.PetProjection, error) {
	ctx, span := s.obs.Start(ctx, "PetService.ListApproved")
	defer span.End()

	result, err := s.inner.ListApproved(ctx)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to list pets")
	}
	span.SetAttributes(attribute.Int("pets.count", len(result)))
	return result, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ports.PetProjection, error) {
	ctx, span := s.obs.Start(ctx, "PetService.Get", attribute.String("pet.id", id))
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to load pet", slog.String("pet.id", id))
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, caller auth.Principal, id string, input ports.UpdatePetInput) (*ports.PetProjection, error) {
	ctx, span := s.obs.Start(ctx, "PetService.Update", attribute.String("pet.id", id))
	defer span.End()

	result, err := s.inner.Update(ctx, caller, id, input)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to update pet", slog.String("pet.id", id))
	}
	s.record(ctx, "pet.updated")
	return result, nil
}

func (s *Service) Delete(ctx context.Context, caller auth.Principal, id string) error {
	ctx, span := s.obs.Start(ctx, "PetService.Delete", attribute.String("pet.id", id))
	defer span.End()

	if err := s.inner.Delete(ctx, caller, id); err != nil {
		return s.obs.Fail(ctx, span, err, "failed to delete pet", slog.String("pet.id", id))
	}
	s.record(ctx, "pet.deleted")
	s.obs.Info(ctx, "pet deleted", slog.String("pet.id", id))
	return nil
}

func (s *Service) Approve(ctx context.Context, caller auth.Principal, id string) (*ports.PetProjection, error) {
	ctx, span := s.obs.Start(ctx, "PetService.Approve", attribute.String("pet.id", id))
	defer span.End()

	result, err := s.inner.Approve(ctx, caller, id)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to approve pet", slog.String("pet.id", id))
	}
	s.record(ctx, "pet.approved")
	s.obs.Info(ctx, "pet approved", slog.String("pet.id", id))
	return result, nil
}

func (s *Service) Reject(ctx context.Context, caller auth.Principal, id string) error {
	ctx, span := s.obs.Start(ctx, "PetService.Reject", attribute.String("pet.id", id))
	defer span.End()

	if err := s.inner.Reject(ctx, caller, id); err != nil {
		return s.obs.Fail(ctx, span, err, "failed to reject pet", slog.String("pet.id", id))
	}
	s.record(ctx, "pet.rejected")
	return nil
}

func (s *Service) ListPending(ctx context.Context, caller auth.Principal) ([]*ports.PetProjection, error) {
	ctx, span := s.obs.Start(ctx, "PetService.ListPending")
	defer span.End()

	result, err := s.inner.ListPending(ctx, caller)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to list pending pets")
	}
	span.SetAttributes(attribute.Int("pets.count", len(result)))
	return result, nil
}

func (s *Service) ListPendingPublic(ctx context.Context, caller auth.Principal) ([]*ports.PetProjection, error) {
	ctx, span := s.obs.Start(ctx, "PetService.ListPendingPublic")
	defer span.End()

	result, err := s.inner.ListPendingPublic(ctx, caller)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to list public submissions")
	}
	span.SetAttributes(attribute.Int("pets.count", len(result)))
	return result, nil
}

func (s *Service) AddHealthRecord(ctx context.Context, caller auth.Principal, id string, input ports.HealthRecordInput) (*ports.PetProjection, error) {
	ctx, span := s.obs.Start(ctx, "PetService.AddHealthRecord",
		attribute.String("pet.id", id),
		attribute.String("health.type", string(input.Type)),
	)
	defer span.End()

	result, err := s.inner.AddHealthRecord(ctx, caller, id, input)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to add health record", slog.String("pet.id", id))
	}
	s.record(ctx, "pet.health_record.added")
	return result, nil
}

func (s *Service) RemoveHealthRecord(ctx context.Context, caller auth.Principal, id string, index int) (*ports.PetProjection, error) {
	ctx, span := s.obs.Start(ctx, "PetService.RemoveHealthRecord",
		attribute.String("pet.id", id),
		attribute.Int("health.index", index),
	)
	defer span.End()

	result, err := s.inner.RemoveHealthRecord(ctx, caller, id, index)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to remove health record", slog.String("pet.id", id))
	}
	s.record(ctx, "pet.health_record.removed")
	return result, nil
}

func (s *Service) record(ctx context.Context, op string) {
	s.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
}
