package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/bookings/domain"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

type CreateInput struct {
	ServiceID string
	Date      time.Time
	Notes     string
}

// CreateResult carries the new booking and the amount the customer must pay.
type CreateResult struct {
	Booking   *domain.Booking
	Service   ServiceSummary
	AmountDue decimal.Decimal
}

// Service exposes booking use cases to adapters.
type Service interface {
	Create(ctx context.Context, caller auth.Principal, input CreateInput) (CreateResult, error)
	LinkPayment(ctx context.Context, caller auth.Principal, bookingID, paymentID string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, caller auth.Principal, id string, status domain.Status) (*domain.Booking, error)
	List(ctx context.Context, caller auth.Principal) ([]*domain.Booking, error)
	Get(ctx context.Context, caller auth.Principal, id string) (*domain.Booking, error)
	Delete(ctx context.Context, caller auth.Principal, id string) error
}
