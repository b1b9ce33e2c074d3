package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	bookingsmemory "github.com/Apurer/petcare-api/internal/domains/bookings/adapters/memory"
	"github.com/Apurer/petcare-api/internal/domains/bookings/adapters/offeringgateway"
	"github.com/Apurer/petcare-api/internal/domains/bookings/domain"
	"github.com/Apurer/petcare-api/internal/domains/bookings/ports"
	offeringsmemory "github.com/Apurer/petcare-api/internal/domains/offerings/adapters/memory"
	offeringsdomain "github.com/Apurer/petcare-api/internal/domains/offerings/domain"
	"github.com/Apurer/petcare-api/internal/platform/events"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

var (
	admin = auth.Principal{Email: "admin@petcare.test", Role: auth.RoleAdmin}
	jane  = auth.Principal{Email: "jane@petcare.test", Role: auth.RoleCustomer}
	sam   = auth.Principal{Email: "sam@petcare.test", Role: auth.RoleCustomer}
)

type fixture struct {
	svc       *Service
	events    *events.Recorder
	serviceID string
	clock     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	offerings := offeringsmemory.NewRepository()
	grooming, err := offeringsdomain.NewOffering("Full grooming", "Grooming", "Bath and trim", decimal.RequireFromString("3500.00"), "2h", "")
	require.NoError(t, err)
	created, err := offerings.Create(context.Background(), grooming)
	require.NoError(t, err)

	f := &fixture{
		events:    events.NewRecorder(),
		serviceID: created.ID,
		clock:     time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(bookingsmemory.NewRepository(), offeringgateway.New(offerings), f.events)
	f.svc.WithClock(func() time.Time {
		f.clock = f.clock.Add(time.Minute)
		return f.clock
	})
	return f
}

func (f *fixture) book(t *testing.T, caller auth.Principal) *domain.Booking {
	t.Helper()
	result, err := f.svc.Create(context.Background(), caller, ports.CreateInput{
		ServiceID: f.serviceID,
		Date:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Notes:     "Nervous around dryers",
	})
	require.NoError(t, err)
	return result.Booking
}

func TestCreate_PendingWithAmountDue(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Create(context.Background(), jane, ports.CreateInput{
		ServiceID: f.serviceID,
		Date:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Regexp(t, `^BKG-[0-9A-Z]{26}$`, result.Booking.ID)
	require.Equal(t, domain.StatusPending, result.Booking.Status)
	require.Equal(t, jane.Email, result.Booking.UserEmail)
	require.True(t, decimal.RequireFromString("3500").Equal(result.AmountDue))
	require.Equal(t, "Full grooming", result.Service.Name)
	require.Equal(t, []string{"bookings.booking.created"}, f.events.Names())
}

func TestCreate_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.Create(ctx, auth.Anonymous, ports.CreateInput{ServiceID: f.serviceID, Date: date})
	require.ErrorIs(t, err, auth.ErrUnauthenticated)

	_, err = f.svc.Create(ctx, jane, ports.CreateInput{ServiceID: "SRV9999", Date: date})
	require.ErrorIs(t, err, ports.ErrServiceNotFound)

	_, err = f.svc.Create(ctx, jane, ports.CreateInput{ServiceID: f.serviceID})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrMissingDate)

	_, err = f.svc.Create(ctx, jane, ports.CreateInput{Date: date})
	require.ErrorIs(t, err, domain.ErrMissingService)
	require.Empty(t, f.events.Names())
}

func TestLinkPayment_Confirms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.book(t, jane)

	_, err := f.svc.LinkPayment(ctx, sam, booking.ID, "pay-1")
	require.ErrorIs(t, err, auth.ErrForbidden)

	_, err = f.svc.LinkPayment(ctx, jane, booking.ID, " ")
	require.ErrorIs(t, err, domain.ErrMissingPayment)

	confirmed, err := f.svc.LinkPayment(ctx, jane, booking.ID, "pay-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, confirmed.Status)
	require.Equal(t, "pay-1", confirmed.PaymentID)
	require.Equal(t, []string{"bookings.booking.created", "bookings.booking.status_changed"}, f.events.Names())

	_, err = f.svc.UpdateStatus(ctx, admin, booking.ID, domain.StatusCancelled)
	require.NoError(t, err)
	_, err = f.svc.LinkPayment(ctx, jane, booking.ID, "pay-2")
	require.ErrorIs(t, err, domain.ErrClosed)
}

func TestUpdateStatus_AdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.book(t, jane)

	_, err := f.svc.UpdateStatus(ctx, jane, booking.ID, domain.StatusCompleted)
	require.ErrorIs(t, err, auth.ErrForbidden)

	_, err = f.svc.UpdateStatus(ctx, admin, booking.ID, domain.Status("done"))
	require.ErrorIs(t, err, ErrInvalidInput)

	updated, err := f.svc.UpdateStatus(ctx, admin, booking.ID, domain.Status("Completed"))
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, updated.Status)

	_, err = f.svc.UpdateStatus(ctx, admin, "BKG-missing", domain.StatusCompleted)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestReads_OwnerOrAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.book(t, jane)
	second := f.book(t, jane)
	f.book(t, sam)

	mine, err := f.svc.List(ctx, jane)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, second.ID, mine[0].ID)

	all, err := f.svc.List(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 3)

	_, err = f.svc.List(ctx, auth.Anonymous)
	require.ErrorIs(t, err, auth.ErrUnauthenticated)

	_, err = f.svc.Get(ctx, sam, first.ID)
	require.ErrorIs(t, err, auth.ErrForbidden)
	got, err := f.svc.Get(ctx, admin, first.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)

	require.ErrorIs(t, f.svc.Delete(ctx, sam, first.ID), auth.ErrForbidden)
	require.NoError(t, f.svc.Delete(ctx, jane, first.ID))
	require.NoError(t, f.svc.Delete(ctx, admin, second.ID))
	_, err = f.svc.Get(ctx, jane, second.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
