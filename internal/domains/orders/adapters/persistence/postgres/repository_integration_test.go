//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogpostgres "github.com/Apurer/petcare-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/Apurer/petcare-api/internal/domains/catalog/domain"
	orderspostgres "github.com/Apurer/petcare-api/internal/domains/orders/adapters/persistence/postgres"
	"github.com/Apurer/petcare-api/internal/domains/orders/application"
	"github.com/Apurer/petcare-api/internal/domains/orders/domain"
	"github.com/Apurer/petcare-api/internal/domains/orders/ports"
	petspostgres "github.com/Apurer/petcare-api/internal/domains/pets/adapters/persistence/postgres"
	petsdomain "github.com/Apurer/petcare-api/internal/domains/pets/domain"
	"github.com/Apurer/petcare-api/internal/platform/postgres/pgtest"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

var customer = auth.Principal{Email: "jane@petcare.test", Role: auth.RoleCustomer}

type fixture struct {
	svc      *application.Service
	products *catalogpostgres.ProductRepository
	pets     *petspostgres.Repository
	orders   *orderspostgres.Repository
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := pgtest.Open(t)
	orders := orderspostgres.NewRepository(db)
	svc := application.NewService(orders, orderspostgres.NewUnitOfWork(db), orderspostgres.NewIdempotencyStore(db), nil)
	return fixture{
		svc:      svc,
		products: catalogpostgres.NewProductRepository(db),
		pets:     petspostgres.NewRepository(db),
		orders:   orders,
	}
}

func (f fixture) product(t *testing.T, stock int) *catalogdomain.Product {
	t.Helper()
	p, err := catalogdomain.NewProduct("Kibble", "", "", decimal.RequireFromString("12.50"), stock, "")
	require.NoError(t, err)
	created, err := f.products.Create(context.Background(), p)
	require.NoError(t, err)
	return created
}

func (f fixture) pet(t *testing.T) *petsdomain.Pet {
	t.Helper()
	p, err := petsdomain.NewPet(petsdomain.Attributes{
		Name:    "Rex",
		Species: petsdomain.SpeciesDog,
		Images:  []string{"https://img.petcare.test/rex.jpg"},
		Price:   decimal.NewFromInt(20000),
	})
	require.NoError(t, err)
	p.ListAsAdmin()
	created, err := f.pets.Create(context.Background(), p)
	require.NoError(t, err)
	return created.Entity
}

func TestUnitOfWork_PlacesOrderAtomically(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	kibble := f.product(t, 5)
	rex := f.pet(t)

	result, err := f.svc.PlaceOrder(ctx, customer, ports.PlaceOrderCommand{Lines: []ports.LineRequest{
		{ItemType: "product", ItemID: kibble.ID, Quantity: 3},
		{ItemType: "pet", ItemID: rex.ID, Quantity: 1},
	}})
	require.NoError(t, err)
	assert.Equal(t, "CBC0001", result.OrderID)
	assert.True(t, decimal.RequireFromString("20037.50").Equal(result.Total))

	stored, err := f.orders.GetByID(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Len(t, stored.Lines, 2)

	after, err := f.products.GetByID(ctx, kibble.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.Stock)
}

func TestUnitOfWork_RollsBackEarlierLines(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	kibble := f.product(t, 5)
	rex := f.pet(t)

	_, err := f.svc.PlaceOrder(ctx, customer, ports.PlaceOrderCommand{Lines: []ports.LineRequest{
		{ItemType: "product", ItemID: kibble.ID, Quantity: 2},
		{ItemType: "pet", ItemID: rex.ID},
		{ItemType: "service", ItemID: "SRV0404"},
	}})
	require.ErrorIs(t, err, ports.ErrItemNotFound)

	after, err := f.products.GetByID(ctx, kibble.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, after.Stock)

	pet, err := f.pets.GetByID(ctx, rex.ID)
	require.NoError(t, err)
	assert.True(t, pet.Entity.Available())

	orders, err := f.orders.List(ctx, ports.Filter{})
	require.NoError(t, err)
	assert.Empty(t, orders)

	// The rolled back allocation is reused.
	result, err := f.svc.PlaceOrder(ctx, customer, ports.PlaceOrderCommand{Lines: []ports.LineRequest{
		{ItemType: "product", ItemID: kibble.ID, Quantity: 1},
	}})
	require.NoError(t, err)
	assert.Equal(t, "CBC0001", result.OrderID)
}

func TestUnitOfWork_ConcurrentOrdersNeverOversell(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	kibble := f.product(t, 5)

	const buyers = 8
	var wg sync.WaitGroup
	ids := make(chan string, buyers)
	failures := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := f.svc.PlaceOrder(ctx, customer, ports.PlaceOrderCommand{Lines: []ports.LineRequest{
				{ItemType: "product", ItemID: kibble.ID, Quantity: 1},
			}})
			if err != nil {
				failures <- err
				return
			}
			ids <- result.OrderID
		}()
	}
	wg.Wait()
	close(ids)
	close(failures)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate order id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 5)
	for err := range failures {
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}

	after, err := f.products.GetByID(ctx, kibble.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.Stock)
	assert.Equal(t, catalogdomain.ProductOutOfStock, after.Status)
}

func TestIdempotencyStore_ReserveCompleteRelease(t *testing.T) {
	store := orderspostgres.NewIdempotencyStore(pgtest.Open(t))
	ctx := context.Background()

	claimed, err := store.Reserve(ctx, "k1", "h1")
	require.NoError(t, err)
	assert.Nil(t, claimed)

	pending, err := store.Reserve(ctx, "k1", "h1")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.True(t, pending.Pending())

	_, err = store.Reserve(ctx, "k1", "h2")
	assert.ErrorIs(t, err, ports.ErrIdempotencyConflict)

	require.NoError(t, store.Complete(ctx, ports.IdempotencyRecord{Key: "k1", RequestHash: "h1", OrderID: "CBC0001", Total: decimal.NewFromInt(10)}))
	done, err := store.Reserve(ctx, "k1", "h1")
	require.NoError(t, err)
	assert.Equal(t, "CBC0001", done.OrderID)
	assert.True(t, decimal.NewFromInt(10).Equal(done.Total))

	// A completed key survives release.
	require.NoError(t, store.Release(ctx, "k1", "h1"))
	kept, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "CBC0001", kept.OrderID)

	_, err = store.Reserve(ctx, "k2", "h1")
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "k2", "h1"))
	again, err := store.Reserve(ctx, "k2", "h1")
	require.NoError(t, err)
	assert.Nil(t, again)

	missing, err := store.Get(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
