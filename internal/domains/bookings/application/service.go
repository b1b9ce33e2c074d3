package application

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Apurer/petcare-api/internal/domains/bookings/domain"
	"github.com/Apurer/petcare-api/internal/domains/bookings/ports"
	"github.com/Apurer/petcare-api/internal/platform/events"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// Service implements service bookings.
type Service struct {
	repo     ports.Repository
	services ports.ServiceCatalog
	events   events.Publisher
	now      func() time.Time
	newID    func() string
}

func NewService(repo ports.Repository, services ports.ServiceCatalog, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Noop
	}
	return &Service{
		repo:     repo,
		services: services,
		events:   publisher,
		now:      time.Now,
		newID:    func() string { return domain.IDPrefix + ulid.Make().String() },
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) Create(ctx context.Context, caller auth.Principal, input ports.CreateInput) (ports.CreateResult, error) {
	if err := auth.Authorize(caller, auth.CapCreateBooking); err != nil {
		return ports.CreateResult{}, err
	}
	now := s.now()
	booking, err := domain.NewBooking(s.newID(), caller.Email, input.ServiceID, input.Date, input.Notes, now)
	if err != nil {
		return ports.CreateResult{}, mapError(err)
	}
	service, err := s.services.Lookup(ctx, booking.ServiceID)
	if err != nil {
		return ports.CreateResult{}, err
	}
	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		return ports.CreateResult{}, err
	}
	_ = s.events.Publish(ctx, domain.BookingCreated{
		BaseEvent: domain.BaseEvent{Timestamp: now},
		BookingID: created.ID,
		ServiceID: created.ServiceID,
		UserEmail: created.UserEmail,
		Date:      created.Date,
	})
	return ports.CreateResult{Booking: created, Service: service, AmountDue: service.Price}, nil
}

// LinkPayment confirms a booking once its payment succeeded.
func (s *Service) LinkPayment(ctx context.Context, caller auth.Principal, bookingID, paymentID string) (*domain.Booking, error) {
	booking, err := s.load(ctx, caller, bookingID)
	if err != nil {
		return nil, err
	}
	previous := booking.Status
	now := s.now()
	if err := booking.LinkPayment(paymentID, now); err != nil {
		return nil, mapError(err)
	}
	return s.save(ctx, booking, previous, now)
}

func (s *Service) UpdateStatus(ctx context.Context, caller auth.Principal, id string, status domain.Status) (*domain.Booking, error) {
	if err := auth.Authorize(caller, auth.CapManageBookings); err != nil {
		return nil, err
	}
	booking, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	previous := booking.Status
	now := s.now()
	if err := booking.SetStatus(status, now); err != nil {
		return nil, mapError(err)
	}
	return s.save(ctx, booking, previous, now)
}

func (s *Service) List(ctx context.Context, caller auth.Principal) ([]*domain.Booking, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	if auth.Can(caller.Role, auth.CapManageBookings) {
		return s.repo.List(ctx, "")
	}
	return s.repo.List(ctx, caller.Email)
}

func (s *Service) Get(ctx context.Context, caller auth.Principal, id string) (*domain.Booking, error) {
	return s.load(ctx, caller, id)
}

func (s *Service) Delete(ctx context.Context, caller auth.Principal, id string) error {
	booking, err := s.load(ctx, caller, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, booking.ID)
}

// load returns a booking the caller owns or may manage.
func (s *Service) load(ctx context.Context, caller auth.Principal, id string) (*domain.Booking, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	booking, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeOwner(caller, booking.UserEmail, auth.CapManageBookings); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *Service) save(ctx context.Context, booking *domain.Booking, previous domain.Status, now time.Time) (*domain.Booking, error) {
	updated, err := s.repo.Update(ctx, booking)
	if err != nil {
		return nil, err
	}
	if previous != updated.Status {
		_ = s.events.Publish(ctx, domain.BookingStatusChanged{
			BaseEvent: domain.BaseEvent{Timestamp: now},
			BookingID: updated.ID,
			From:      previous,
			To:        updated.Status,
			PaymentID: updated.PaymentID,
		})
	}
	return updated, nil
}

var _ ports.Service = (*Service)(nil)
