package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/bookings/domain"
)

var (
	ErrNotFound        = errors.New("booking not found")
	ErrServiceNotFound = errors.New("service not found")
)

// Repository persists bookings.
type Repository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// List returns bookings newest first. An empty owner lists everyone's.
	List(ctx context.Context, ownerEmail string) ([]*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// ServiceSummary is the part of an offering a booking needs.
type ServiceSummary struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// ServiceCatalog resolves bookable services.
type ServiceCatalog interface {
	Lookup(ctx context.Context, serviceID string) (ServiceSummary, error)
}
