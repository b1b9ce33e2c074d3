package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Apurer/petcare-api/internal/domains/orders/domain"
	"github.com/Apurer/petcare-api/internal/domains/orders/ports"
	"github.com/Apurer/petcare-api/internal/platform/events"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// Service orchestrates checkout and order management.
type Service struct {
	orders      ports.Repository
	uow         ports.UnitOfWork
	idempotency ports.IdempotencyStore
	events      events.Publisher
	logger      *slog.Logger
	now         func() time.Time
}

// NewService wires the orders service. idempotency may be nil, which disables key replay.
func NewService(orders ports.Repository, uow ports.UnitOfWork, idempotency ports.IdempotencyStore, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Noop
	}
	return &Service{orders: orders, uow: uow, idempotency: idempotency, events: publisher, logger: slog.Default(), now: time.Now}
}

// WithLogger sets the logger for failures that do not fail the request.
func (s *Service) WithLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

type requestedLine struct {
	Type     domain.ItemType
	ItemID   string
	Quantity int
}

// PlaceOrder validates the cart, then allocates the order id, applies every line's side effect
// and persists the order inside one unit of work.
func (s *Service) PlaceOrder(ctx context.Context, caller auth.Principal, cmd ports.PlaceOrderCommand) (ports.PlacementResult, error) {
	if err := auth.Authorize(caller, auth.CapPlaceOrder); err != nil {
		return ports.PlacementResult{}, err
	}
	lines, err := normalizeLines(cmd.Lines)
	if err != nil {
		return ports.PlacementResult{}, mapError(err)
	}
	requested := make([]ports.LineRequest, len(cmd.Lines))
	copy(requested, cmd.Lines)
	for i, l := range lines {
		requested[i].Quantity = l.Quantity
	}
	cmd.Lines = requested

	key := strings.TrimSpace(cmd.IdempotencyKey)
	var hash string
	if key != "" && s.idempotency != nil {
		hash, err = Fingerprint(caller.Email, cmd)
		if err != nil {
			return ports.PlacementResult{}, err
		}
		existing, err := s.idempotency.Reserve(ctx, key, hash)
		if err != nil {
			return ports.PlacementResult{}, mapError(err)
		}
		if existing != nil {
			if existing.Pending() {
				return ports.PlacementResult{}, mapError(ports.ErrIdempotencyInProgress)
			}
			return ports.PlacementResult{OrderID: existing.OrderID, Total: existing.Total, Replayed: true}, nil
		}
	}

	var placed *domain.Order
	err = s.uow.Within(ctx, func(ctx context.Context, tx ports.Tx) error {
		id, err := tx.NextOrderID(ctx)
		if err != nil {
			return err
		}
		snapshots := make([]domain.Line, 0, len(lines))
		for i, l := range lines {
			src, err := resolve(ctx, tx, l)
			if err != nil {
				return fmt.Errorf("line %d (%s %s): %w", i+1, l.Type, l.ItemID, err)
			}
			snapshots = append(snapshots, domain.Line{
				Type:      l.Type,
				ItemID:    src.ID,
				Name:      src.Name,
				UnitPrice: src.Price,
				Quantity:  l.Quantity,
				Image:     src.Image,
			})
		}
		order, err := domain.NewOrder(id, caller.Email, snapshots, cmd.Shipping, s.now())
		if err != nil {
			return err
		}
		if err := tx.SaveOrder(ctx, order); err != nil {
			return err
		}
		placed = order
		return nil
	})
	if err != nil {
		if key != "" && s.idempotency != nil {
			if relErr := s.idempotency.Release(context.WithoutCancel(ctx), key, hash); relErr != nil {
				s.logger.WarnContext(ctx, "failed to release idempotency key",
					slog.String("key", key), slog.String("error", relErr.Error()))
			}
		}
		return ports.PlacementResult{}, mapError(err)
	}

	result := ports.PlacementResult{OrderID: placed.ID, Total: placed.Total}
	if key != "" && s.idempotency != nil {
		// The order is committed; a failed completion only leaves the key pending.
		err := s.idempotency.Complete(context.WithoutCancel(ctx), ports.IdempotencyRecord{
			Key:         key,
			RequestHash: hash,
			OrderID:     placed.ID,
			Total:       placed.Total,
			CreatedAt:   placed.CreatedAt,
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to record idempotency key",
				slog.String("key", key), slog.String("order_id", placed.ID), slog.String("error", err.Error()))
		}
	}
	_ = s.events.Publish(ctx, domain.OrderPlaced{
		BaseEvent:     domain.BaseEvent{Timestamp: placed.CreatedAt},
		OrderID:       placed.ID,
		CustomerEmail: placed.CustomerEmail,
		Total:         placed.Total,
		Lines:         placed.Lines,
	})
	return result, nil
}

func resolve(ctx context.Context, tx ports.Tx, l requestedLine) (ports.Source, error) {
	switch l.Type {
	case domain.ItemProduct:
		return tx.ReserveProduct(ctx, l.ItemID, l.Quantity)
	case domain.ItemPet:
		return tx.ReservePet(ctx, l.ItemID)
	case domain.ItemService:
		return tx.LookupService(ctx, l.ItemID)
	default:
		return ports.Source{}, domain.ErrInvalidItemType
	}
}

// normalizeLines performs every structural check before any side effect runs.
func normalizeLines(in []ports.LineRequest) ([]requestedLine, error) {
	if len(in) == 0 {
		return nil, domain.ErrNoLines
	}
	out := make([]requestedLine, 0, len(in))
	for i, l := range in {
		itemType, err := domain.ParseItemType(l.ItemType)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %q", i+1, err, l.ItemType)
		}
		id := strings.TrimSpace(l.ItemID)
		if id == "" {
			return nil, fmt.Errorf("line %d: %w", i+1, domain.ErrMissingItemID)
		}
		qty := l.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 1 {
			return nil, fmt.Errorf("line %d: %w", i+1, domain.ErrInvalidQuantity)
		}
		out = append(out, requestedLine{Type: itemType, ItemID: id, Quantity: qty})
	}
	return out, nil
}

// ListOrders returns every order to administrators and the caller's own orders to customers, newest first.
func (s *Service) ListOrders(ctx context.Context, caller auth.Principal) ([]*domain.Order, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	filter := ports.Filter{}
	if auth.Authorize(caller, auth.CapViewAllOrders) != nil {
		filter.CustomerEmail = caller.Email
	}
	return s.orders.List(ctx, filter)
}

// GetOrder loads an order visible to caller.
func (s *Service) GetOrder(ctx context.Context, caller auth.Principal, id string) (*domain.Order, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeOwner(caller, order.CustomerEmail, auth.CapViewAllOrders); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus moves an order through its lifecycle.
func (s *Service) UpdateOrderStatus(ctx context.Context, caller auth.Principal, id string, status domain.Status) (*domain.Order, error) {
	if err := auth.Authorize(caller, auth.CapManageOrders); err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	previous := order.Status
	if err := order.UpdateStatus(status, s.now()); err != nil {
		return nil, mapError(err)
	}
	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		return nil, err
	}
	if previous != updated.Status {
		s.publishStatusChange(ctx, updated.ID, previous, updated.Status)
	}
	return updated, nil
}

// AttachPayment records a payment against an order and moves it to Processing.
func (s *Service) AttachPayment(ctx context.Context, orderID, paymentID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, strings.TrimSpace(orderID))
	if err != nil {
		return nil, err
	}
	previous := order.Status
	order.AttachPayment(paymentID, s.now())
	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		return nil, err
	}
	if previous != updated.Status {
		s.publishStatusChange(ctx, updated.ID, previous, updated.Status)
	}
	return updated, nil
}

// DeleteOrder removes an order.
func (s *Service) DeleteOrder(ctx context.Context, caller auth.Principal, id string) error {
	if err := auth.Authorize(caller, auth.CapManageOrders); err != nil {
		return err
	}
	return s.orders.Delete(ctx, strings.TrimSpace(id))
}

func (s *Service) publishStatusChange(ctx context.Context, id string, from, to domain.Status) {
	_ = s.events.Publish(ctx, domain.OrderStatusChanged{
		BaseEvent: domain.BaseEvent{Timestamp: s.now()},
		OrderID:   id,
		From:      from,
		To:        to,
	})
}

var _ ports.Service = (*Service)(nil)
