package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/orders/domain"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// LineRequest is one cart entry as submitted by the customer.
type LineRequest struct {
	ItemType string
	ItemID   string
	Quantity int
}

// PlaceOrderCommand is the checkout request.
type PlaceOrderCommand struct {
	Lines          []LineRequest
	Shipping       domain.Contact
	IdempotencyKey string
}

// PlacementResult is returned by a successful checkout.
type PlacementResult struct {
	OrderID  string
	Total    decimal.Decimal
	Replayed bool
}

// Service exposes order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, caller auth.Principal, cmd PlaceOrderCommand) (PlacementResult, error)
	ListOrders(ctx context.Context, caller auth.Principal) ([]*domain.Order, error)
	GetOrder(ctx context.Context, caller auth.Principal, id string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, caller auth.Principal, id string, status domain.Status) (*domain.Order, error)
	AttachPayment(ctx context.Context, orderID, paymentID string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, caller auth.Principal, id string) error
}
