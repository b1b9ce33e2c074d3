package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Apurer/petcare-api/internal/domains/bookings/domain"
	"github.com/Apurer/petcare-api/internal/domains/bookings/ports"
	platformobs "github.com/Apurer/petcare-api/internal/platform/observability"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

const tracerName = "github.com/Apurer/petcare-api/internal/domains/bookings/adapters/observability/service"

var (
	WithLogger = platformobs.WithLogger
	WithTracer = platformobs.WithTracer
	WithMeter  = platformobs.WithMeter
)

// Service traces booking use cases.
type Service struct {
	inner     ports.Service
	obs       *platformobs.Decorator
	created   metric.Int64Counter
	confirmed metric.Int64Counter
}

func New(inner ports.Service, opts ...platformobs.Option) ports.Service {
	obs := platformobs.NewDecorator(tracerName, opts...)
	return &Service{
		inner:     inner,
		obs:       obs,
		created:   obs.Counter("bookings.service.created", "Number of bookings created"),
		confirmed: obs.Counter("bookings.service.confirmed", "Number of bookings confirmed by payment"),
	}
}

func (s *Service) Create(ctx context.Context, caller auth.Principal, input ports.CreateInput) (ports.CreateResult, error) {
	ctx, span := s.obs.Start(ctx, "BookingService.Create", attribute.String("service.id", input.ServiceID))
	defer span.End()

	result, err := s.inner.Create(ctx, caller, input)
	if err != nil {
		return ports.CreateResult{}, s.obs.Fail(ctx, span, err, "failed to create booking", slog.String("service.id", input.ServiceID))
	}
	s.created.Add(ctx, 1)
	span.SetAttributes(attribute.String("booking.id", result.Booking.ID))
	s.obs.Info(ctx, "booking created", slog.String("booking.id", result.Booking.ID))
	return result, nil
}

func (s *Service) LinkPayment(ctx context.Context, caller auth.Principal, bookingID, paymentID string) (*domain.Booking, error) {
	ctx, span := s.obs.Start(ctx, "BookingService.LinkPayment",
		attribute.String("booking.id", bookingID),
		attribute.String("payment.id", paymentID),
	)
	defer span.End()

	result, err := s.inner.LinkPayment(ctx, caller, bookingID, paymentID)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to link payment", slog.String("booking.id", bookingID))
	}
	s.confirmed.Add(ctx, 1)
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, caller auth.Principal, id string, status domain.Status) (*domain.Booking, error) {
	ctx, span := s.obs.Start(ctx, "BookingService.UpdateStatus",
		attribute.String("booking.id", id),
		attribute.String("booking.status", string(status)),
	)
	defer span.End()

	result, err := s.inner.UpdateStatus(ctx, caller, id, status)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to update booking status", slog.String("booking.id", id))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context, caller auth.Principal) ([]*domain.Booking, error) {
	ctx, span := s.obs.Start(ctx, "BookingService.List")
	defer span.End()

	result, err := s.inner.List(ctx, caller)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to list bookings")
	}
	span.SetAttributes(attribute.Int("bookings.count", len(result)))
	return result, nil
}

func (s *Service) Get(ctx context.Context, caller auth.Principal, id string) (*domain.Booking, error) {
	ctx, span := s.obs.Start(ctx, "BookingService.Get", attribute.String("booking.id", id))
	defer span.End()

	result, err := s.inner.Get(ctx, caller, id)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to load booking", slog.String("booking.id", id))
	}
	return result, nil
}

func (s *Service) Delete(ctx context.Context, caller auth.Principal, id string) error {
	ctx, span := s.obs.Start(ctx, "BookingService.Delete", attribute.String("booking.id", id))
	defer span.End()

	if err := s.inner.Delete(ctx, caller, id); err != nil {
		return s.obs.Fail(ctx, span, err, "failed to delete booking", slog.String("booking.id", id))
	}
	return nil
}
