package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	catalogmemory "github.com/Apurer/petcare-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/petcare-api/internal/domains/catalog/domain"
	offeringsmemory "github.com/Apurer/petcare-api/internal/domains/offerings/adapters/memory"
	offeringsdomain "github.com/Apurer/petcare-api/internal/domains/offerings/domain"
	ordersmemory "github.com/Apurer/petcare-api/internal/domains/orders/adapters/memory"
	"github.com/Apurer/petcare-api/internal/domains/orders/domain"
	"github.com/Apurer/petcare-api/internal/domains/orders/ports"
	petsmemory "github.com/Apurer/petcare-api/internal/domains/pets/adapters/memory"
	petsdomain "github.com/Apurer/petcare-api/internal/domains/pets/domain"
	"github.com/Apurer/petcare-api/internal/platform/events"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

var (
	admin    = auth.Principal{Email: "admin@petcare.test", Role: auth.RoleAdmin}
	customer = auth.Principal{Email: "jane@petcare.test", Role: auth.RoleCustomer}
	other    = auth.Principal{Email: "sam@petcare.test", Role: auth.RoleCustomer}
)

// testingT is satisfied by *testing.T and *rapid.T.
type testingT interface {
	require.TestingT
	Helper()
}

type shop struct {
	svc       *Service
	orders    *ordersmemory.Repository
	products  *catalogmemory.ProductRepository
	pets      *petsmemory.Repository
	offerings *offeringsmemory.Repository
	events    *events.Recorder
}

func newShop(t testingT) *shop {
	t.Helper()
	s := &shop{
		orders:    ordersmemory.NewRepository(),
		products:  catalogmemory.NewProductRepository(),
		pets:      petsmemory.NewRepository(),
		offerings: offeringsmemory.NewRepository(),
		events:    events.NewRecorder(),
	}
	uow := ordersmemory.NewUnitOfWork(s.orders, s.products, s.pets, s.offerings)
	s.svc = NewService(s.orders, uow, ordersmemory.NewIdempotencyStore(), s.events)
	return s
}

func (s *shop) product(t testingT, price string, stock int) *catalogdomain.Product {
	t.Helper()
	p, err := catalogdomain.NewProduct("Kibble", "", "", decimal.RequireFromString(price), stock, "kibble.jpg")
	require.NoError(t, err)
	created, err := s.products.Create(context.Background(), p)
	require.NoError(t, err)
	return created
}

func (s *shop) pet(t testingT, price int64) *petsdomain.Pet {
	t.Helper()
	p, err := petsdomain.NewPet(petsdomain.Attributes{
		Name:    "Rex",
		Species: petsdomain.SpeciesDog,
		Images:  []string{"rex.jpg"},
		Price:   decimal.NewFromInt(price),
	})
	require.NoError(t, err)
	p.ListAsAdmin()
	created, err := s.pets.Create(context.Background(), p)
	require.NoError(t, err)
	return created.Entity
}

func (s *shop) service(t testingT, price int64) *offeringsdomain.Offering {
	t.Helper()
	o, err := offeringsdomain.NewOffering("Grooming", "", "", decimal.NewFromInt(price), "1h", "")
	require.NoError(t, err)
	created, err := s.offerings.Create(context.Background(), o)
	require.NoError(t, err)
	return created
}

func (s *shop) stock(t testingT, id string) int {
	t.Helper()
	p, err := s.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func lines(reqs ...ports.LineRequest) ports.PlaceOrderCommand {
	return ports.PlaceOrderCommand{Lines: reqs}
}

func TestPlaceOrder_DecrementsStockAndSnapshotsLines(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	kibble := s.product(t, "12.50", 5)
	rex := s.pet(t, 20000)
	grooming := s.service(t, 3500)

	result, err := s.svc.PlaceOrder(ctx, customer, ports.PlaceOrderCommand{
		Lines: []ports.LineRequest{
			{ItemType: "product", ItemID: kibble.ID, Quantity: 3},
			{ItemType: "pet", ItemID: rex.ID, Quantity: 1},
			{ItemType: "service", ItemID: grooming.ID},
		},
		Shipping: domain.Contact{Name: "Jane", Address: "12 Lake Rd", Phone: "0771234567"},
	})
	require.NoError(t, err)
	require.Equal(t, "CBC0001", result.OrderID)
	require.True(t, decimal.RequireFromString("23537.50").Equal(result.Total), result.Total.String())

	require.Equal(t, 2, s.stock(t, kibble.ID))
	adopted, err := s.pets.GetByID(ctx, rex.ID)
	require.NoError(t, err)
	require.False(t, adopted.Entity.Available())

	order, err := s.orders.GetByID(ctx, result.OrderID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, order.Status)
	require.Equal(t, customer.Email, order.CustomerEmail)
	require.Equal(t, "12 Lake Rd", order.Shipping.Address)
	require.Len(t, order.Lines, 3)
	require.Equal(t, domain.Line{Type: domain.ItemProduct, ItemID: kibble.ID, Name: "Kibble", UnitPrice: kibble.Price, Quantity: 3, Image: "kibble.jpg"}, order.Lines[0])
	require.Equal(t, 1, order.Lines[2].Quantity)

	require.Equal(t, []string{"orders.order.placed"}, s.events.Names())
}

func TestPlaceOrder_LinesAreSnapshots(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	kibble := s.product(t, "10", 5)

	result, err := s.svc.PlaceOrder(ctx, customer, lines(ports.LineRequest{ItemType: "product", ItemID: kibble.ID, Quantity: 1}))
	require.NoError(t, err)

	repriced := *kibble
	repriced.Price = decimal.NewFromInt(99)
	repriced.Stock = 4
	_, err = s.products.Update(ctx, &repriced)
	require.NoError(t, err)

	order, err := s.orders.GetByID(ctx, result.OrderID)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(10).Equal(order.Lines[0].UnitPrice))
	require.True(t, decimal.NewFromInt(10).Equal(order.Total))
}

func TestPlaceOrder_SequentialIDs(t *testing.T) {
	s := newShop(t)
	kibble := s.product(t, "1", 10)

	for i := 1; i <= 3; i++ {
		result, err := s.svc.PlaceOrder(context.Background(), customer, lines(ports.LineRequest{ItemType: "product", ItemID: kibble.ID, Quantity: 1}))
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("CBC%04d", i), result.OrderID)
	}
}

func TestPlaceOrder_InsufficientStockLeavesStockUnchanged(t *testing.T) {
	s := newShop(t)
	kibble := s.product(t, "5", 2)

	_, err := s.svc.PlaceOrder(context.Background(), customer, lines(ports.LineRequest{ItemType: "product", ItemID: kibble.ID, Quantity: 3}))
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.Equal(t, 2, s.stock(t, kibble.ID))

	all, err := s.orders.List(context.Background(), ports.Filter{})
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestPlaceOrder_AdoptedPetConflicts(t *testing.T) {
	s := newShop(t)
	rex := s.pet(t, 100)
	require.NoError(t, s.pets.SetAdoptionStatus(context.Background(), rex.ID, petsdomain.StatusAdopted))

	_, err := s.svc.PlaceOrder(context.Background(), customer, lines(ports.LineRequest{ItemType: "pet", ItemID: rex.ID}))
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, domain.ErrPetUnavailable)
}

func TestPlaceOrder_MissingItemIsNotFound(t *testing.T) {
	s := newShop(t)
	for _, itemType := range []string{"product", "pet", "service"} {
		_, err := s.svc.PlaceOrder(context.Background(), customer, lines(ports.LineRequest{ItemType: itemType, ItemID: "X0404"}))
		require.ErrorIs(t, err, ports.ErrItemNotFound, itemType)
	}
}

func TestPlaceOrder_InvalidItemTypeMutatesNothing(t *testing.T) {
	s := newShop(t)
	kibble := s.product(t, "5", 5)

	_, err := s.svc.PlaceOrder(context.Background(), customer, lines(
		ports.LineRequest{ItemType: "product", ItemID: kibble.ID, Quantity: 2},
		ports.LineRequest{ItemType: "toy", ItemID: "T1", Quantity: 1},
	))
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidItemType)
	require.Equal(t, 5, s.stock(t, kibble.ID))

	result, err := s.svc.PlaceOrder(context.Background(), customer, lines(ports.LineRequest{ItemType: "product", ItemID: kibble.ID}))
	require.NoError(t, err)
	require.Equal(t, "CBC0001", result.OrderID)
}

func TestPlaceOrder_ItemTypeIsCaseSensitive(t *testing.T) {
	s := newShop(t)
	kibble := s.product(t, "5", 5)

	for _, itemType := range []string{"PRODUCT", "Product", " product"} {
		_, err := s.svc.PlaceOrder(context.Background(), customer, lines(ports.LineRequest{ItemType: itemType, ItemID: kibble.ID, Quantity: 1}))
		require.ErrorIs(t, err, ErrInvalidInput, itemType)
		require.ErrorIs(t, err, domain.ErrInvalidItemType, itemType)
	}
	require.Equal(t, 5, s.stock(t, kibble.ID))
}

func TestPlaceOrder_StructuralValidation(t *testing.T) {
	s := newShop(t)
	cases := map[string]struct {
		cmd  ports.PlaceOrderCommand
		want error
	}{
		"no lines":          {cmd: ports.PlaceOrderCommand{}, want: domain.ErrNoLines},
		"blank id":          {cmd: lines(ports.LineRequest{ItemType: "product", ItemID: " "}), want: domain.ErrMissingItemID},
		"negative quantity": {cmd: lines(ports.LineRequest{ItemType: "product", ItemID: "PROD0001", Quantity: -1}), want: domain.ErrInvalidQuantity},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.svc.PlaceOrder(context.Background(), customer, tc.cmd)
			require.ErrorIs(t, err, ErrInvalidInput)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPlaceOrder_RollsBackEarlierLinesOnFailure(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	kibble := s.product(t, "5", 5)
	rex := s.pet(t, 100)
	taken := s.pet(t, 100)
	require.NoError(t, s.pets.SetAdoptionStatus(ctx, taken.ID, petsdomain.StatusAdopted))

	_, err := s.svc.PlaceOrder(ctx, customer, lines(
		ports.LineRequest{ItemType: "product", ItemID: kibble.ID, Quantity: 4},
		ports.LineRequest{ItemType: "pet", ItemID: rex.ID},
		ports.LineRequest{ItemType: "pet", ItemID: taken.ID},
	))
	require.ErrorIs(t, err, domain.ErrPetUnavailable)

	require.Equal(t, 5, s.stock(t, kibble.ID))
	restored, err := s.pets.GetByID(ctx, rex.ID)
	require.NoError(t, err)
	require.True(t, restored.Entity.Available())
	require.Empty(t, s.events.Names())
}

// editingProducts applies an admin edit right after each withdrawal.
type editingProducts struct {
	*catalogmemory.ProductRepository
	edit func(ctx context.Context, id string)
}

func (e editingProducts) Withdraw(ctx context.Context, id string, quantity int) (*catalogdomain.Product, error) {
	p, err := e.ProductRepository.Withdraw(ctx, id, quantity)
	if err == nil {
		e.edit(ctx, id)
	}
	return p, err
}

func TestPlaceOrder_RollbackKeepsConcurrentProductEdits(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	kibble := s.product(t, "5", 5)
	products := editingProducts{ProductRepository: s.products, edit: func(ctx context.Context, id string) {
		p, err := s.products.GetByID(ctx, id)
		require.NoError(t, err)
		p.Name = "Kibble Plus"
		p.Price = decimal.NewFromInt(7)
		_, err = s.products.Update(ctx, p)
		require.NoError(t, err)
	}}
	svc := NewService(s.orders, ordersmemory.NewUnitOfWork(s.orders, products, s.pets, s.offerings), nil, s.events)

	_, err := svc.PlaceOrder(ctx, customer, lines(
		ports.LineRequest{ItemType: "product", ItemID: kibble.ID, Quantity: 5},
		ports.LineRequest{ItemType: "pet", ItemID: "PET0404"},
	))
	require.ErrorIs(t, err, ports.ErrItemNotFound)

	after, err := s.products.GetByID(ctx, kibble.ID)
	require.NoError(t, err)
	require.Equal(t, 5, after.Stock)
	require.Equal(t, catalogdomain.ProductAvailable, after.Status)
	require.Equal(t, "Kibble Plus", after.Name)
	require.True(t, decimal.NewFromInt(7).Equal(after.Price))
}

func TestPlaceOrder_OutOfStockStatusWhenDrained(t *testing.T) {
	s := newShop(t)
	kibble := s.product(t, "5", 2)

	_, err := s.svc.PlaceOrder(context.Background(), customer, lines(ports.LineRequest{ItemType: "product", ItemID: kibble.ID, Quantity: 2}))
	require.NoError(t, err)

	drained, err := s.products.GetByID(context.Background(), kibble.ID)
	require.NoError(t, err)
	require.Equal(t, catalogdomain.ProductOutOfStock, drained.Status)
}

func TestPlaceOrder_Authorization(t *testing.T) {
	s := newShop(t)
	cmd := lines(ports.LineRequest{ItemType: "product", ItemID: "PROD0001"})

	_, err := s.svc.PlaceOrder(context.Background(), auth.Anonymous, cmd)
	require.ErrorIs(t, err, auth.ErrUnauthenticated)

	_, err = s.svc.PlaceOrder(context.Background(), admin, cmd)
	require.ErrorIs(t, err, auth.ErrForbidden)

	blocked := customer
	blocked.Blocked = true
	_, err = s.svc.PlaceOrder(context.Background(), blocked, cmd)
	require.ErrorIs(t, err, auth.ErrForbidden)
}

func TestPlaceOrder_ConcurrentPlacementsGetUniqueIDs(t *testing.T) {
	s := newShop(t)
	kibble := s.product(t, "1", 15)

	const buyers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	ids := map[string]bool{}
	conflicts := 0
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.svc.PlaceOrder(context.Background(), customer, lines(ports.LineRequest{ItemType: "product", ItemID: kibble.ID, Quantity: 1}))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				conflicts++
				return
			}
			assert.False(t, ids[result.OrderID], "duplicate id %s", result.OrderID)
			ids[result.OrderID] = true
		}()
	}
	wg.Wait()

	require.Len(t, ids, 15)
	require.Equal(t, 5, conflicts)
	require.Equal(t, 0, s.stock(t, kibble.ID))
}

func TestPlaceOrder_IdempotencyKey(t *testing.T) {
	s := newShop(t)
	kibble := s.product(t, "3", 10)
	cmd := lines(ports.LineRequest{ItemType: "product", ItemID: kibble.ID, Quantity: 2})
	cmd.IdempotencyKey = "checkout-42"

	first, err := s.svc.PlaceOrder(context.Background(), customer, cmd)
	require.NoError(t, err)
	require.False(t, first.Replayed)

	replay, err := s.svc.PlaceOrder(context.Background(), customer, cmd)
	require.NoError(t, err)
	require.True(t, replay.Replayed)
	require.Equal(t, first.OrderID, replay.OrderID)
	require.True(t, first.Total.Equal(replay.Total))
	require.Equal(t, 8, s.stock(t, kibble.ID))

	changed := lines(ports.LineRequest{ItemType: "product", ItemID: kibble.ID, Quantity: 5})
	changed.IdempotencyKey = "checkout-42"
	_, err = s.svc.PlaceOrder(context.Background(), customer, changed)
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.Equal(t, 8, s.stock(t, kibble.ID))
}

// barrierStore holds the first parties Reserve calls until all of them have arrived.
type barrierStore struct {
	*ordersmemory.IdempotencyStore
	parties int32
	calls   atomic.Int32
	arrived sync.WaitGroup
}

func newBarrierStore(parties int) *barrierStore {
	b := &barrierStore{IdempotencyStore: ordersmemory.NewIdempotencyStore(), parties: int32(parties)}
	b.arrived.Add(parties)
	return b
}

func (b *barrierStore) Reserve(ctx context.Context, key, requestHash string) (*ports.IdempotencyRecord, error) {
	if b.calls.Add(1) <= b.parties {
		b.arrived.Done()
		b.arrived.Wait()
	}
	return b.IdempotencyStore.Reserve(ctx, key, requestHash)
}

func TestPlaceOrder_ConcurrentSameKeyPlacesOnce(t *testing.T) {
	s := newShop(t)
	kibble := s.product(t, "4", 100)
	svc := NewService(s.orders, ordersmemory.NewUnitOfWork(s.orders, s.products, s.pets, s.offerings), newBarrierStore(2), s.events)
	cmd := lines(ports.LineRequest{ItemType: "product", ItemID: kibble.ID, Quantity: 3})
	cmd.IdempotencyKey = "same-key"

	type outcome struct {
		result ports.PlacementResult
		err    error
	}
	outcomes := make(chan outcome, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.PlaceOrder(context.Background(), customer, cmd)
			outcomes <- outcome{result, err}
		}()
	}
	wg.Wait()
	close(outcomes)

	placed := 0
	var orderID string
	for o := range outcomes {
		if o.err != nil {
			require.ErrorIs(t, o.err, ErrConflict)
			require.ErrorIs(t, o.err, ports.ErrIdempotencyInProgress)
			continue
		}
		if !o.result.Replayed {
			placed++
		}
		if orderID != "" {
			require.Equal(t, orderID, o.result.OrderID)
		}
		orderID = o.result.OrderID
	}
	require.Equal(t, 1, placed)

	all, err := s.orders.List(context.Background(), ports.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, 97, s.stock(t, kibble.ID))

	replay, err := svc.PlaceOrder(context.Background(), customer, cmd)
	require.NoError(t, err)
	require.True(t, replay.Replayed)
	require.Equal(t, all[0].ID, replay.OrderID)
}

func TestPlaceOrder_FailedPlacementReleasesKey(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	kibble := s.product(t, "4", 1)
	cmd := lines(ports.LineRequest{ItemType: "product", ItemID: kibble.ID, Quantity: 2})
	cmd.IdempotencyKey = "retry-me"

	_, err := s.svc.PlaceOrder(ctx, customer, cmd)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	restocked, err := s.products.GetByID(ctx, kibble.ID)
	require.NoError(t, err)
	restocked.Stock = 5
	_, err = s.products.Update(ctx, restocked)
	require.NoError(t, err)

	result, err := s.svc.PlaceOrder(ctx, customer, cmd)
	require.NoError(t, err)
	require.False(t, result.Replayed)
	require.Equal(t, 3, s.stock(t, kibble.ID))
}

// incompleteStore accepts reservations but fails to record results.
type incompleteStore struct {
	*ordersmemory.IdempotencyStore
}

func (incompleteStore) Complete(context.Context, ports.IdempotencyRecord) error {
	return errors.New("store unavailable")
}

func TestPlaceOrder_LogsUnrecordedKey(t *testing.T) {
	s := newShop(t)
	kibble := s.product(t, "4", 10)
	var buf bytes.Buffer
	svc := NewService(s.orders, ordersmemory.NewUnitOfWork(s.orders, s.products, s.pets, s.offerings),
		incompleteStore{ordersmemory.NewIdempotencyStore()}, s.events)
	svc.WithLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	cmd := lines(ports.LineRequest{ItemType: "product", ItemID: kibble.ID, Quantity: 1})
	cmd.IdempotencyKey = "lost-write"

	result, err := svc.PlaceOrder(context.Background(), customer, cmd)
	require.NoError(t, err)
	require.Equal(t, "CBC0001", result.OrderID)
	require.Contains(t, buf.String(), "failed to record idempotency key")
	require.Contains(t, buf.String(), "order_id=CBC0001")
	require.Contains(t, buf.String(), "store unavailable")
}

func TestPlaceOrder_LeavesCallerLinesUntouched(t *testing.T) {
	s := newShop(t)
	kibble := s.product(t, "4", 10)
	requested := []ports.LineRequest{{ItemType: "product", ItemID: kibble.ID}}

	_, err := s.svc.PlaceOrder(context.Background(), customer, ports.PlaceOrderCommand{Lines: requested})
	require.NoError(t, err)
	require.Equal(t, 0, requested[0].Quantity)
	require.Equal(t, 9, s.stock(t, kibble.ID))
}

func TestPlaceOrder_TotalEqualsSumOfLines(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := newShop(rt)
		n := rapid.IntRange(1, 6).Draw(rt, "lines")
		cmd := ports.PlaceOrderCommand{}
		want := decimal.Zero
		for i := 0; i < n; i++ {
			cents := rapid.Int64Range(1, 1_000_000).Draw(rt, "cents")
			qty := rapid.IntRange(1, 20).Draw(rt, "qty")
			price := decimal.New(cents, -2)
			p := s.product(rt, price.String(), qty+rapid.IntRange(0, 5).Draw(rt, "spare"))
			cmd.Lines = append(cmd.Lines, ports.LineRequest{ItemType: "product", ItemID: p.ID, Quantity: qty})
			want = want.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		}
		result, err := s.svc.PlaceOrder(context.Background(), customer, cmd)
		if err != nil {
			rt.Fatalf("place order: %v", err)
		}
		if !result.Total.Equal(want) {
			rt.Fatalf("total %s, want %s", result.Total, want)
		}
	})
}

func TestListAndGetOrders_Visibility(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	s.svc.WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})
	kibble := s.product(t, "1", 10)
	line := lines(ports.LineRequest{ItemType: "product", ItemID: kibble.ID})

	mine1, err := s.svc.PlaceOrder(ctx, customer, line)
	require.NoError(t, err)
	theirs, err := s.svc.PlaceOrder(ctx, other, line)
	require.NoError(t, err)
	mine2, err := s.svc.PlaceOrder(ctx, customer, line)
	require.NoError(t, err)

	own, err := s.svc.ListOrders(ctx, customer)
	require.NoError(t, err)
	require.Len(t, own, 2)
	require.Equal(t, mine2.OrderID, own[0].ID)
	require.Equal(t, mine1.OrderID, own[1].ID)

	all, err := s.svc.ListOrders(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 3)

	_, err = s.svc.ListOrders(ctx, auth.Anonymous)
	require.ErrorIs(t, err, auth.ErrUnauthenticated)

	_, err = s.svc.GetOrder(ctx, customer, theirs.OrderID)
	require.ErrorIs(t, err, auth.ErrForbidden)
	got, err := s.svc.GetOrder(ctx, admin, theirs.OrderID)
	require.NoError(t, err)
	require.Equal(t, other.Email, got.CustomerEmail)
}

func TestUpdateOrderStatusAndAttachPayment(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	kibble := s.product(t, "1", 10)
	placed, err := s.svc.PlaceOrder(ctx, customer, lines(ports.LineRequest{ItemType: "product", ItemID: kibble.ID}))
	require.NoError(t, err)

	_, err = s.svc.UpdateOrderStatus(ctx, customer, placed.OrderID, domain.StatusShipped)
	require.ErrorIs(t, err, auth.ErrForbidden)

	_, err = s.svc.UpdateOrderStatus(ctx, admin, placed.OrderID, "Lost")
	require.ErrorIs(t, err, ErrInvalidInput)

	paid, err := s.svc.AttachPayment(ctx, placed.OrderID, "pay-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusProcessing, paid.Status)
	require.Equal(t, "pay-1", paid.PaymentID)

	shipped, err := s.svc.UpdateOrderStatus(ctx, admin, placed.OrderID, domain.StatusShipped)
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, shipped.Status)

	require.Equal(t, []string{"orders.order.placed", "orders.order.status_changed", "orders.order.status_changed"}, s.events.Names())

	require.ErrorIs(t, s.svc.DeleteOrder(ctx, customer, placed.OrderID), auth.ErrForbidden)
	require.NoError(t, s.svc.DeleteOrder(ctx, admin, placed.OrderID))
	_, err = s.svc.GetOrder(ctx, admin, placed.OrderID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
