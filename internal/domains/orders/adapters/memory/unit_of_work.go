package memory

import (
	"context"
	"errors"
	"sync"

	catalogports "github.com/Apurer/petcare-api/internal/domains/catalog/ports"
	offeringsports "github.com/Apurer/petcare-api/internal/domains/offerings/ports"
	"github.com/Apurer/petcare-api/internal/domains/orders/adapters/inventory"
	"github.com/Apurer/petcare-api/internal/domains/orders/domain"
	"github.com/Apurer/petcare-api/internal/domains/orders/ports"
	petsports "github.com/Apurer/petcare-api/internal/domains/pets/ports"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork serializes placements behind one mutex and compensates earlier
// reservations when a later step fails.
type UnitOfWork struct {
	mu        sync.Mutex
	orders    *Repository
	inventory *inventory.Adapter
}

func NewUnitOfWork(orders *Repository, products catalogports.ProductRepository, pets petsports.Repository, offerings offeringsports.Repository) *UnitOfWork {
	return &UnitOfWork{orders: orders, inventory: inventory.New(products, pets, offerings)}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	journal := &inventory.Journal{}
	tx := &memoryTx{Adapter: u.inventory.WithJournal(journal), orders: u.orders}
	if err := fn(ctx, tx); err != nil {
		// Compensation must run even if the request context is already cancelled.
		if rbErr := journal.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return nil
}

type memoryTx struct {
	*inventory.Adapter
	orders *Repository
}

func (t *memoryTx) NextOrderID(context.Context) (string, error) {
	return t.orders.nextID()
}

func (t *memoryTx) SaveOrder(_ context.Context, order *domain.Order) error {
	return t.orders.insert(order)
}
