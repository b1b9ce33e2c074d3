package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Apurer/petcare-api/internal/domains/orders/domain"
	"github.com/Apurer/petcare-api/internal/domains/orders/ports"
	platformobs "github.com/Apurer/petcare-api/internal/platform/observability"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

const tracerName = "github.com/Apurer/petcare-api/internal/domains/orders/adapters/observability/service"

var (
	WithLogger = platformobs.WithLogger
	WithTracer = platformobs.WithTracer
	WithMeter  = platformobs.WithMeter
)

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner    ports.Service
	obs      *platformobs.Decorator
	placed   metric.Int64Counter
	failed   metric.Int64Counter
	replayed metric.Int64Counter
}

// New wraps the core orders service.
func New(inner ports.Service, opts ...platformobs.Option) ports.Service {
	obs := platformobs.NewDecorator(tracerName, opts...)
	return &Service{
		inner:    inner,
		obs:      obs,
		placed:   obs.Counter("orders.service.orders_placed", "Number of orders placed"),
		failed:   obs.Counter("orders.service.placement_failures", "Number of rejected checkouts"),
		replayed: obs.Counter("orders.service.idempotent_replays", "Number of checkouts answered from an idempotency key"),
	}
}

func (s *Service) PlaceOrder(ctx context.Context, caller auth.Principal, cmd ports.PlaceOrderCommand) (ports.PlacementResult, error) {
	ctx, span := s.obs.Start(ctx, "OrderService.PlaceOrder",
		attribute.Int("order.lines", len(cmd.Lines)),
		attribute.Bool("order.idempotency_key", cmd.IdempotencyKey != ""),
	)
	defer span.End()

	s.obs.Info(ctx, "placing order", slog.String("customer", caller.Email), slog.Int("order.lines", len(cmd.Lines)))
	result, err := s.inner.PlaceOrder(ctx, caller, cmd)
	if err != nil {
		s.failed.Add(ctx, 1)
		return ports.PlacementResult{}, s.obs.Fail(ctx, span, err, "failed to place order", slog.String("customer", caller.Email))
	}
	span.SetAttributes(
		attribute.String("order.id", result.OrderID),
		attribute.String("order.total", result.Total.StringFixed(2)),
		attribute.Bool("order.replayed", result.Replayed),
	)
	if result.Replayed {
		s.replayed.Add(ctx, 1)
	} else {
		s.placed.Add(ctx, 1)
	}
	s.obs.Info(ctx, "order placed",
		slog.String("order.id", result.OrderID),
		slog.String("order.total", result.Total.StringFixed(2)),
		slog.Bool("order.replayed", result.Replayed),
	)
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, caller auth.Principal) ([]*domain.Order, error) {
	ctx, span := s.obs.Start(ctx, "OrderService.ListOrders", attribute.Bool("caller.admin", caller.IsAdmin()))
	defer span.End()

	orders, err := s.inner.ListOrders(ctx, caller)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}

func (s *Service) GetOrder(ctx context.Context, caller auth.Principal, id string) (*domain.Order, error) {
	ctx, span := s.obs.Start(ctx, "OrderService.GetOrder", attribute.String("order.id", id))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, caller, id)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to get order", slog.String("order.id", id))
	}
	return order, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, caller auth.Principal, id string, status domain.Status) (*domain.Order, error) {
	ctx, span := s.obs.Start(ctx, "OrderService.UpdateOrderStatus",
		attribute.String("order.id", id),
		attribute.String("order.status", string(status)),
	)
	defer span.End()

	order, err := s.inner.UpdateOrderStatus(ctx, caller, id, status)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to update order status", slog.String("order.id", id))
	}
	s.obs.Info(ctx, "order status updated", slog.String("order.id", id), slog.String("order.status", string(order.Status)))
	return order, nil
}

func (s *Service) AttachPayment(ctx context.Context, orderID, paymentID string) (*domain.Order, error) {
	ctx, span := s.obs.Start(ctx, "OrderService.AttachPayment",
		attribute.String("order.id", orderID),
		attribute.String("payment.id", paymentID),
	)
	defer span.End()

	order, err := s.inner.AttachPayment(ctx, orderID, paymentID)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to attach payment", slog.String("order.id", orderID))
	}
	return order, nil
}

func (s *Service) DeleteOrder(ctx context.Context, caller auth.Principal, id string) error {
	ctx, span := s.obs.Start(ctx, "OrderService.DeleteOrder", attribute.String("order.id", id))
	defer span.End()

	if err := s.inner.DeleteOrder(ctx, caller, id); err != nil {
		return s.obs.Fail(ctx, span, err, "failed to delete order", slog.String("order.id", id))
	}
	s.obs.Info(ctx, "order deleted", slog.String("order.id", id))
	return nil
}
