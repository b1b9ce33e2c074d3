package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Apurer/petcare-api/internal/domains/payments/domain"
	"github.com/Apurer/petcare-api/internal/domains/payments/ports"
	platformobs "github.com/Apurer/petcare-api/internal/platform/observability"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

const tracerName = "github.com/Apurer/petcare-api/internal/domains/payments/adapters/observability/service"

var (
	WithLogger = platformobs.WithLogger
	WithTracer = platformobs.WithTracer
	WithMeter  = platformobs.WithMeter
)

// Service traces payment use cases.
type Service struct {
	inner    ports.Service
	obs      *platformobs.Decorator
	recorded metric.Int64Counter
	declined metric.Int64Counter
}

func New(inner ports.Service, opts ...platformobs.Option) ports.Service {
	obs := platformobs.NewDecorator(tracerName, opts...)
	return &Service{
		inner:    inner,
		obs:      obs,
		recorded: obs.Counter("payments.service.recorded", "Number of payments recorded"),
		declined: obs.Counter("payments.service.rejected", "Number of payment attempts rejected"),
	}
}

func (s *Service) TestCards() []domain.TestCard {
	return s.inner.TestCards()
}

func (s *Service) Checkout(ctx context.Context, caller auth.Principal, orderID string) (ports.Checkout, error) {
	ctx, span := s.obs.Start(ctx, "PaymentService.Checkout", attribute.String("order.id", orderID))
	defer span.End()

	result, err := s.inner.Checkout(ctx, caller, orderID)
	if err != nil {
		return ports.Checkout{}, s.obs.Fail(ctx, span, err, "failed to load checkout", slog.String("order.id", orderID))
	}
	return result, nil
}

func (s *Service) Process(ctx context.Context, caller auth.Principal, input ports.ProcessInput) (ports.ProcessResult, error) {
	ctx, span := s.obs.Start(ctx, "PaymentService.Process",
		attribute.String("order.id", input.OrderID),
		attribute.String("payment.method", input.Method),
	)
	defer span.End()

	result, err := s.inner.Process(ctx, caller, input)
	if err != nil {
		s.declined.Add(ctx, 1, metric.WithAttributes(attribute.String("payment.method", input.Method)))
		return ports.ProcessResult{}, s.obs.Fail(ctx, span, err, "failed to process payment",
			slog.String("order.id", input.OrderID), slog.String("payment.method", input.Method))
	}
	s.recorded.Add(ctx, 1, metric.WithAttributes(
		attribute.String("payment.method", string(result.Payment.Method)),
		attribute.String("payment.status", string(result.Payment.Status)),
	))
	span.SetAttributes(attribute.String("payment.id", result.Payment.ID))
	s.obs.Info(ctx, "payment recorded",
		slog.String("payment.id", result.Payment.ID),
		slog.String("order.id", result.Payment.OrderID),
		slog.String("status", string(result.Payment.Status)))
	return result, nil
}

func (s *Service) List(ctx context.Context, caller auth.Principal) ([]*domain.Payment, error) {
	ctx, span := s.obs.Start(ctx, "PaymentService.List")
	defer span.End()

	result, err := s.inner.List(ctx, caller)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to list payments")
	}
	span.SetAttributes(attribute.Int("payments.count", len(result)))
	return result, nil
}

func (s *Service) ListMine(ctx context.Context, caller auth.Principal) ([]*domain.Payment, error) {
	ctx, span := s.obs.Start(ctx, "PaymentService.ListMine")
	defer span.End()

	result, err := s.inner.ListMine(ctx, caller)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to list own payments")
	}
	return result, nil
}
