package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrItemNotFound reports a line whose product, pet, or service does not exist.
	ErrItemNotFound = errors.New("order item not found")
)

// Filter narrows order listings. An empty CustomerEmail lists every order.
type Filter struct {
	CustomerEmail string
}

// Repository reads and maintains placed orders. New orders are written through a Tx.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter Filter) ([]*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// Source is the catalog data a line snapshots.
type Source struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Image string
}

// Inventory resolves line sources and applies their side effects.
type Inventory interface {
	// ReserveProduct decrements stock, failing with domain.ErrInsufficientStock when quantity exceeds it.
	ReserveProduct(ctx context.Context, id string, quantity int) (Source, error)
	// ReservePet flips an available pet to adopted, failing with domain.ErrPetUnavailable otherwise.
	ReservePet(ctx context.Context, id string) (Source, error)
	LookupService(ctx context.Context, id string) (Source, error)
}

// Tx is the view of storage available inside a placement.
type Tx interface {
	Inventory
	NextOrderID(ctx context.Context) (string, error)
	SaveOrder(ctx context.Context, order *domain.Order) error
}

// UnitOfWork runs fn atomically: every mutation made through tx commits together or not at all.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
