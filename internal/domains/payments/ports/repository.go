package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/payments/domain"
)

var (
	ErrNotFound      = errors.New("payment not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrAlreadyPaid   = errors.New("order already has a payment")
)

// Repository persists payments. At most one payment exists per order.
type Repository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	FindByOrder(ctx context.Context, orderID string) (*domain.Payment, error)
	// List returns payments newest first. An empty email lists everyone's.
	List(ctx context.Context, email string) ([]*domain.Payment, error)
}

// Contact is the delivery contact stored on the order.
type Contact struct {
	Name    string
	Address string
	Phone   string
}

// OrderSummary is what payments needs to know about an order.
type OrderSummary struct {
	ID       string
	Email    string
	Total    decimal.Decimal
	Status   string
	Items    []domain.Item
	Shipping Contact
}

// OrderGateway reads orders and records their payment.
type OrderGateway interface {
	Get(ctx context.Context, orderID string) (OrderSummary, error)
	AttachPayment(ctx context.Context, orderID, paymentID string) error
}
