package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	catalogpostgres "github.com/Apurer/petcare-api/internal/domains/catalog/adapters/persistence/postgres"
	offeringspostgres "github.com/Apurer/petcare-api/internal/domains/offerings/adapters/persistence/postgres"
	"github.com/Apurer/petcare-api/internal/domains/orders/adapters/inventory"
	"github.com/Apurer/petcare-api/internal/domains/orders/domain"
	"github.com/Apurer/petcare-api/internal/domains/orders/ports"
	petspostgres "github.com/Apurer/petcare-api/internal/domains/pets/adapters/persistence/postgres"
	"github.com/Apurer/petcare-api/internal/platform/sequence"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

var orderSource = sequence.Source{Table: "orders", Column: "order_id"}

// UnitOfWork runs a placement inside a single database transaction. Stock and
// availability changes are conditional updates, and the order id comes from the
// id_sequences row, so concurrent placements serialize on row locks.
type UnitOfWork struct {
	db        *gorm.DB
	allocator *sequence.Allocator
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db, allocator: sequence.NewAllocator()}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	if u == nil || u.db == nil {
		return errors.New("postgres unit of work not configured")
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &postgresTx{
			Adapter: inventory.New(
				catalogpostgres.NewProductRepository(tx),
				petspostgres.NewRepository(tx),
				offeringspostgres.NewRepository(tx),
			),
			tx:        tx,
			allocator: u.allocator,
		})
	})
}

type postgresTx struct {
	*inventory.Adapter
	tx        *gorm.DB
	allocator *sequence.Allocator
}

func (t *postgresTx) NextOrderID(ctx context.Context) (string, error) {
	return t.allocator.Next(ctx, t.tx, sequence.Orders, orderSource)
}

func (t *postgresTx) SaveOrder(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	record := toRecord(order)
	return t.tx.WithContext(ctx).Create(&record).Error
}
