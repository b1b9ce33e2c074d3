package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	paymentsmemory "github.com/Apurer/petcare-api/internal/domains/payments/adapters/memory"
	"github.com/Apurer/petcare-api/internal/domains/payments/domain"
	"github.com/Apurer/petcare-api/internal/domains/payments/ports"
	"github.com/Apurer/petcare-api/internal/platform/events"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

var (
	admin = auth.Principal{Email: "admin@petcare.test", Role: auth.RoleAdmin}
	jane  = auth.Principal{Email: "jane@petcare.test", Role: auth.RoleCustomer}
	sam   = auth.Principal{Email: "sam@petcare.test", Role: auth.RoleCustomer}
)

type fakeOrders struct {
	mu       sync.Mutex
	orders   map[string]ports.OrderSummary
	attached map[string]string
}

func (f *fakeOrders) Get(_ context.Context, orderID string) (ports.OrderSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return ports.OrderSummary{}, fmt.Errorf("%w: %s", ports.ErrOrderNotFound, orderID)
	}
	return order, nil
}

func (f *fakeOrders) AttachPayment(_ context.Context, orderID, paymentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attached[orderID] = paymentID
	return nil
}

type till struct {
	svc    *Service
	orders *fakeOrders
	events *events.Recorder
	now    time.Time
}

func newTill(t *testing.T) *till {
	t.Helper()
	tl := &till{
		orders: &fakeOrders{
			orders: map[string]ports.OrderSummary{
				"CBC0001": {
					ID:     "CBC0001",
					Email:  "Jane@petcare.test",
					Total:  decimal.RequireFromString("23537.50"),
					Status: "Pending",
					Items: []domain.Item{
						{ItemType: "product", ItemID: "PRD0001", Name: "Kibble", Price: decimal.RequireFromString("12.50"), Quantity: 3},
					},
					Shipping: ports.Contact{Name: "Jane Perera"},
				},
				"CBC0002": {ID: "CBC0002", Email: jane.Email, Total: decimal.NewFromInt(500), Status: "Pending"},
				"CBC0003": {ID: "CBC0003", Email: sam.Email, Total: decimal.NewFromInt(900), Status: "Pending"},
			},
			attached: map[string]string{},
		},
		events: events.NewRecorder(),
		now:    time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
	}
	tl.svc = NewService(paymentsmemory.NewRepository(), tl.orders, tl.events)
	tl.svc.WithClock(func() time.Time { return tl.now })
	tl.svc.txSuffix = func() string { return "abcdefghi" }
	return tl
}

func card(number string) *domain.CardDetails {
	return &domain.CardDetails{Number: number, CardholderName: " Jane Perera ", Expiry: "12/29", CVV: "123"}
}

func TestCheckout_FillsPlaceholders(t *testing.T) {
	tl := newTill(t)

	view, err := tl.svc.Checkout(context.Background(), jane, "CBC0001")
	require.NoError(t, err)
	require.Equal(t, "CBC0001", view.OrderID)
	require.True(t, decimal.RequireFromString("23537.50").Equal(view.Total))
	require.Len(t, view.Items, 1)
	require.Equal(t, domain.CustomerInfo{
		Name:       "Jane Perera",
		Email:      "Jane@petcare.test",
		Phone:      PlaceholderPhone,
		Address:    PlaceholderAddress,
		City:       PlaceholderCity,
		PostalCode: PlaceholderPostalCode,
		Province:   PlaceholderProvince,
	}, view.Customer)

	view, err = tl.svc.Checkout(context.Background(), jane, "CBC0002")
	require.NoError(t, err)
	require.Equal(t, PlaceholderName, view.Customer.Name)
}

func TestCheckout_Access(t *testing.T) {
	tl := newTill(t)
	ctx := context.Background()

	_, err := tl.svc.Checkout(ctx, sam, "CBC0001")
	require.ErrorIs(t, err, auth.ErrForbidden)
	_, err = tl.svc.Checkout(ctx, admin, "CBC0001")
	require.NoError(t, err)
	_, err = tl.svc.Checkout(ctx, auth.Anonymous, "CBC0001")
	require.ErrorIs(t, err, auth.ErrUnauthenticated)
	_, err = tl.svc.Checkout(ctx, jane, "CBC9999")
	require.ErrorIs(t, err, ports.ErrOrderNotFound)
}

func TestProcess_CashOnDelivery(t *testing.T) {
	tl := newTill(t)

	result, err := tl.svc.Process(context.Background(), jane, ports.ProcessInput{OrderID: "CBC0001", Method: "cod"})
	require.NoError(t, err)
	p := result.Payment
	require.Equal(t, domain.MethodCOD, p.Method)
	require.Equal(t, domain.StatusPending, p.Status)
	require.Equal(t, domain.Currency, p.Currency)
	require.Equal(t, "jane@petcare.test", p.Email)
	require.True(t, decimal.RequireFromString("23537.50").Equal(p.Amount))
	require.Empty(t, p.TransactionID)
	require.Equal(t, "Order confirmed - Cash on Delivery", result.Message)
	require.Equal(t, p.ID, tl.orders.attached["CBC0001"])
	require.Equal(t, []string{"payments.payment.recorded"}, tl.events.Names())
}

func TestProcess_BankTransfer(t *testing.T) {
	tl := newTill(t)

	result, err := tl.svc.Process(context.Background(), jane, ports.ProcessInput{OrderID: "CBC0002", Method: "bank_transfer"})
	require.NoError(t, err)
	require.Equal(t, domain.MethodBankTransfer, result.Payment.Method)
	require.Equal(t, domain.StatusPending, result.Payment.Status)
	require.Equal(t, &ports.BankDetails{AccountNumber: "9535942775533", BankName: "ABC Bank"}, result.Bank)
	require.Contains(t, result.Payment.Details.StatusMessage, "9535942775533")
}

func TestProcess_CardSuccess(t *testing.T) {
	tl := newTill(t)

	result, err := tl.svc.Process(context.Background(), jane, ports.ProcessInput{
		OrderID: "CBC0002",
		Method:  "payhere",
		Card:    card("4916 2175 0161 1292"),
	})
	require.NoError(t, err)
	p := result.Payment
	require.Equal(t, domain.MethodPayHere, p.Method)
	require.Equal(t, domain.StatusCompleted, p.Status)
	require.Equal(t, fmt.Sprintf("PH_%d_abcdefghi", tl.now.UnixMilli()), p.TransactionID)
	require.Equal(t, "1292", p.Details.CardLast4)
	require.Equal(t, "Jane Perera", p.Details.CardholderName)
	require.NotNil(t, p.PaymentDate)
	require.Equal(t, p.ID, tl.orders.attached["CBC0002"])
}

func TestProcess_CardDeclines(t *testing.T) {
	cases := map[string]string{
		"4024007194349121": "Insufficient funds",
		"4929119799365646": "Transaction limit exceeded",
		"4111111111111111": "Card declined",
	}
	for number, message := range cases {
		t.Run(message, func(t *testing.T) {
			tl := newTill(t)
			_, err := tl.svc.Process(context.Background(), jane, ports.ProcessInput{OrderID: "CBC0002", Method: "payhere", Card: card(number)})
			require.ErrorIs(t, err, ErrInvalidInput)
			require.ErrorIs(t, err, domain.ErrCardDeclined)
			var decline *domain.DeclineError
			require.ErrorAs(t, err, &decline)
			require.Equal(t, message, decline.Reason)
			require.Empty(t, tl.orders.attached)
			require.Empty(t, tl.events.Names())
		})
	}
}

func TestProcess_Rejections(t *testing.T) {
	tl := newTill(t)
	ctx := context.Background()

	_, err := tl.svc.Process(ctx, jane, ports.ProcessInput{OrderID: "CBC0002", Method: "crypto"})
	require.ErrorIs(t, err, domain.ErrInvalidMethod)

	_, err = tl.svc.Process(ctx, jane, ports.ProcessInput{OrderID: "CBC0002", Method: "payhere"})
	require.ErrorIs(t, err, domain.ErrInvalidMethod)

	_, err = tl.svc.Process(ctx, jane, ports.ProcessInput{OrderID: "CBC9999", Method: "cod"})
	require.ErrorIs(t, err, ports.ErrOrderNotFound)

	_, err = tl.svc.Process(ctx, jane, ports.ProcessInput{OrderID: "CBC0003", Method: "cod"})
	require.ErrorIs(t, err, auth.ErrForbidden)

	_, err = tl.svc.Process(ctx, jane, ports.ProcessInput{OrderID: "CBC0002", Method: "cod"})
	require.NoError(t, err)
	_, err = tl.svc.Process(ctx, jane, ports.ProcessInput{OrderID: "CBC0002", Method: "bank_transfer"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestListings(t *testing.T) {
	tl := newTill(t)
	ctx := context.Background()

	_, err := tl.svc.Process(ctx, jane, ports.ProcessInput{OrderID: "CBC0001", Method: "cod"})
	require.NoError(t, err)
	_, err = tl.svc.Process(ctx, sam, ports.ProcessInput{OrderID: "CBC0003", Method: "cod"})
	require.NoError(t, err)

	all, err := tl.svc.List(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = tl.svc.List(ctx, jane)
	require.ErrorIs(t, err, auth.ErrForbidden)

	mine, err := tl.svc.ListMine(ctx, jane)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "CBC0001", mine[0].OrderID)

	require.Len(t, tl.svc.TestCards(), 4)
}
