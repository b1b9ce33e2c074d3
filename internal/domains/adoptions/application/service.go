package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Apurer/petcare-api/internal/domains/adoptions/domain"
	"github.com/Apurer/petcare-api/internal/domains/adoptions/ports"
	notificationdomain "github.com/Apurer/petcare-api/internal/domains/notifications/domain"
	notificationports "github.com/Apurer/petcare-api/internal/domains/notifications/ports"
	"github.com/Apurer/petcare-api/internal/platform/events"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// Service implements the adoption workflow.
type Service struct {
	repo     ports.Repository
	pets     ports.PetGateway
	notifier notificationports.Dispatcher
	events   events.Publisher
	now      func() time.Time
	newID    func() string
}

func NewService(repo ports.Repository, pets ports.PetGateway, notifier notificationports.Dispatcher, publisher events.Publisher) *Service {
	if notifier == nil {
		notifier = notificationports.Noop
	}
	if publisher == nil {
		publisher = events.Noop
	}
	return &Service{
		repo:     repo,
		pets:     pets,
		notifier: notifier,
		events:   publisher,
		now:      time.Now,
		newID:    func() string { return ulid.Make().String() },
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) Apply(ctx context.Context, caller auth.Principal, app domain.Application) (ports.ApplyResult, error) {
	if err := auth.Authorize(caller, auth.CapApplyForAdoption); err != nil {
		return ports.ApplyResult{}, err
	}
	req, err := domain.NewRequest(s.newID(), caller.Email, app, s.now())
	if err != nil {
		return ports.ApplyResult{}, mapError(err)
	}
	pet, err := s.pets.Get(ctx, req.PetID)
	if err != nil {
		return ports.ApplyResult{}, err
	}
	if !pet.Available {
		return ports.ApplyResult{}, mapError(ports.ErrPetUnavailable)
	}
	active, err := s.repo.List(ctx, ports.Filter{
		UserEmail: req.UserEmail,
		PetID:     req.PetID,
		Statuses:  []domain.Status{domain.StatusPending, domain.StatusApproved},
	})
	if err != nil {
		return ports.ApplyResult{}, err
	}
	if len(active) > 0 {
		return ports.ApplyResult{}, mapError(ports.ErrDuplicateRequest)
	}
	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return ports.ApplyResult{}, mapError(err)
	}
	_ = s.events.Publish(ctx, domain.RequestSubmitted{
		BaseEvent: domain.BaseEvent{Timestamp: created.ApplyDate},
		RequestID: created.ID,
		PetID:     created.PetID,
		UserEmail: created.UserEmail,
	})
	return ports.ApplyResult{Request: created, Pet: pet}, nil
}

func (s *Service) Update(ctx context.Context, caller auth.Principal, id string, patch domain.Patch) (*domain.Request, error) {
	req, err := s.loadOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := req.Edit(patch, s.now()); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, req)
}

func (s *Service) Delete(ctx context.Context, caller auth.Principal, id string) error {
	req, err := s.loadOwned(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := req.Withdrawable(); err != nil {
		return mapError(err)
	}
	return s.repo.Delete(ctx, req.ID)
}

// UpdateStatus applies an administrator decision and keeps the pet and competing requests consistent.
func (s *Service) UpdateStatus(ctx context.Context, caller auth.Principal, id string, status domain.Status, reason string) (*domain.Request, error) {
	if err := auth.Authorize(caller, auth.CapReviewAdoptions); err != nil {
		return nil, err
	}
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return nil, mapError(err)
	}
	req, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	previous := req.Status
	now := s.now()
	if err := req.SetStatus(status, reason, now); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, req)
	if err != nil {
		return nil, err
	}

	pet, err := s.pets.Get(ctx, saved.PetID)
	petKnown := err == nil
	if err != nil && !errors.Is(err, ports.ErrPetNotFound) {
		return nil, err
	}
	if petKnown {
		if err := s.syncPet(ctx, saved, pet, now); err != nil {
			return nil, err
		}
	}

	switch saved.Status {
	case domain.StatusApproved:
		s.notify(ctx, saved, "Your Pet Adoption Request Has Been Approved!",
			fmt.Sprintf("Dear %s,\n\nCongratulations! Your adoption request for %s has been approved.\nOur team will contact you soon to finalize the adoption.\n",
				applicantName(saved), petName(pet)))
	case domain.StatusRejected:
		s.notify(ctx, saved, "Adoption Request Update",
			fmt.Sprintf("Hello %s,\n\nWe're sorry to inform you that your adoption request for %s has been rejected.\nReason: %s\n",
				applicantName(saved), petName(pet), saved.RejectionReason))
	}
	_ = s.events.Publish(ctx, domain.RequestStatusChanged{
		BaseEvent: domain.BaseEvent{Timestamp: now},
		RequestID: saved.ID,
		PetID:     saved.PetID,
		From:      previous,
		To:        saved.Status,
		Reason:    saved.RejectionReason,
	})
	return saved, nil
}

func (s *Service) syncPet(ctx context.Context, saved *domain.Request, pet ports.PetSummary, now time.Time) error {
	switch {
	case saved.Adopts():
		if err := s.pets.SetAdopted(ctx, saved.PetID, true); err != nil {
			return err
		}
		others, err := s.repo.List(ctx, ports.Filter{
			PetID:     saved.PetID,
			Statuses:  []domain.Status{domain.StatusPending, domain.StatusApproved},
			ExcludeID: saved.ID,
		})
		if err != nil {
			return err
		}
		for _, other := range others {
			from := other.Status
			if err := other.SetStatus(domain.StatusRejected, domain.SupersededReason, now); err != nil {
				return err
			}
			if _, err := s.repo.Update(ctx, other); err != nil {
				return err
			}
			s.notify(ctx, other, "Adoption Request Update",
				fmt.Sprintf("Hello %s,\n\nYour adoption request for %s was not approved. Another applicant has been selected.\n",
					applicantName(other), petName(pet)))
			_ = s.events.Publish(ctx, domain.RequestStatusChanged{
				BaseEvent: domain.BaseEvent{Timestamp: now},
				RequestID: other.ID,
				PetID:     other.PetID,
				From:      from,
				To:        other.Status,
				Reason:    other.RejectionReason,
			})
		}
	case saved.Status == domain.StatusRejected:
		adopting, err := s.repo.List(ctx, ports.Filter{
			PetID:    saved.PetID,
			Statuses: []domain.Status{domain.StatusApproved, domain.StatusCompleted},
		})
		if err != nil {
			return err
		}
		if len(adopting) == 0 {
			return s.pets.SetAdopted(ctx, saved.PetID, false)
		}
	}
	return nil
}

func (s *Service) notify(ctx context.Context, req *domain.Request, subject, body string) {
	_ = s.notifier.Dispatch(ctx, notificationdomain.Email{
		To:        req.Recipient(),
		Subject:   subject,
		Body:      body,
		Reference: fmt.Sprintf("adoption:%s:%s", req.ID, req.Status),
	})
}

func (s *Service) Get(ctx context.Context, caller auth.Principal, id string) (*domain.Request, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	req, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeOwner(caller, req.UserEmail, auth.CapReviewAdoptions); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) ListMine(ctx context.Context, caller auth.Principal) ([]*domain.Request, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.Filter{UserEmail: caller.Email})
}

func (s *Service) GetMineForPet(ctx context.Context, caller auth.Principal, petID string) (*domain.Request, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	list, err := s.repo.List(ctx, ports.Filter{UserEmail: caller.Email, PetID: strings.TrimSpace(petID)})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ports.ErrNotFound
	}
	return list[len(list)-1], nil
}

func (s *Service) ListAll(ctx context.Context, caller auth.Principal) ([]*domain.Request, error) {
	if err := auth.Authorize(caller, auth.CapReviewAdoptions); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.Filter{})
}

func (s *Service) ListByPet(ctx context.Context, caller auth.Principal, petID string) ([]*domain.Request, error) {
	if err := auth.Authorize(caller, auth.CapReviewAdoptions); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.Filter{PetID: strings.TrimSpace(petID)})
}

// loadOwned returns a request the caller applied for. Administrators get no override here.
func (s *Service) loadOwned(ctx context.Context, caller auth.Principal, id string) (*domain.Request, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	req, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(req.UserEmail, caller.Email) {
		return nil, fmt.Errorf("%w: request %s belongs to another user", auth.ErrForbidden, req.ID)
	}
	return req, nil
}

func applicantName(r *domain.Request) string {
	if r.PersonalInfo.FullName != "" {
		return r.PersonalInfo.FullName
	}
	return "Adopter"
}

func petName(p ports.PetSummary) string {
	if p.Name != "" {
		return p.Name
	}
	return "your chosen pet"
}

var _ ports.Service = (*Service)(nil)
