package application

import (
	"context"
	"strings"
	"time"

	"github.com/Apurer/petcare-api/internal/domains/pets/domain"
	"github.com/Apurer/petcare-api/internal/domains/pets/ports"
	"github.com/Apurer/petcare-api/internal/platform/events"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo   ports.Repository
	events events.Publisher
	now    func() time.Time
}

// NewService wires the pets service with its dependencies.
func NewService(repo ports.Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Noop
	}
	return &Service{repo: repo, events: publisher, now: time.Now}
}

// Submit lists a pet. Administrators list approved pets directly; everyone else files a pending submission.
func (s *Service) Submit(ctx context.Context, caller auth.Principal, input ports.SubmitPetInput) (*ports.PetProjection, error) {
	pet, err := domain.NewPet(input.Attributes)
	if err != nil {
		return nil, mapError(err)
	}
	if auth.Authorize(caller, auth.CapManagePets) == nil {
		pet.ListAsAdmin()
	} else {
		contact := input.Submitter
		if caller.Authenticated() {
			if contact.Name == "" {
				contact.Name = strings.TrimSpace(caller.FirstName + " " + caller.LastName)
			}
			if contact.Email == "" {
				contact.Email = caller.Email
			}
		}
		if err := pet.SubmitPublicly(contact); err != nil {
			return nil, mapError(err)
		}
	}
	saved, err := s.repo.Create(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	_ = s.events.Publish(ctx, domain.PetListed{
		BaseEvent:    domain.BaseEvent{Timestamp: s.now()},
		PetID:        saved.Entity.ID,
		Name:         saved.Entity.Name,
		Approved:     saved.Entity.Approved,
		AddedByAdmin: saved.Entity.AddedByAdmin,
	})
	return saved, nil
}

// ListApproved returns the publicly visible pets.
func (s *Service) ListApproved(ctx context.Context) ([]*ports.PetProjection, error) {
	approved := true
	return s.repo.List(ctx, ports.Filter{Approved: &approved})
}

// Get loads a single pet.
func (s *Service) Get(ctx context.Context, id string) (*ports.PetProjection, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// Update replaces the descriptive attributes of a pet.
func (s *Service) Update(ctx context.Context, caller auth.Principal, id string, input ports.UpdatePetInput) (*ports.PetProjection, error) {
	if err := auth.Authorize(caller, auth.CapManagePets); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	pet := current.Entity
	pet.Apply(input.Attributes)
	if input.AdoptionStatus != nil {
		if err := pet.SetAdoptionStatus(*input.AdoptionStatus); err != nil {
			return nil, mapError(err)
		}
	}
	if err := pet.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, pet)
	return saved, mapError(err)
}

// Delete removes a pet.
func (s *Service) Delete(ctx context.Context, caller auth.Principal, id string) error {
	if err := auth.Authorize(caller, auth.CapManagePets); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.events.Publish(ctx, domain.PetRemoved{BaseEvent: domain.BaseEvent{Timestamp: s.now()}, PetID: id})
	return nil
}

// Approve publishes a pending pet.
func (s *Service) Approve(ctx context.Context, caller auth.Principal, id string) (*ports.PetProjection, error) {
	if err := auth.Authorize(caller, auth.CapManagePets); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if current.Entity.Approved {
		return current, nil
	}
	current.Entity.Approve()
	saved, err := s.repo.Update(ctx, current.Entity)
	if err != nil {
		return nil, err
	}
	_ = s.events.Publish(ctx, domain.PetApproved{BaseEvent: domain.BaseEvent{Timestamp: s.now()}, PetID: saved.Entity.ID})
	return saved, nil
}

// Reject deletes a pending submission. Approved pets must be deleted instead.
func (s *Service) Reject(ctx context.Context, caller auth.Principal, id string) error {
	if err := auth.Authorize(caller, auth.CapManagePets); err != nil {
		return err
	}
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if current.Entity.Approved {
		return mapError(domain.ErrAlreadyApproved)
	}
	if err := s.repo.Delete(ctx, current.Entity.ID); err != nil {
		return err
	}
	_ = s.events.Publish(ctx, domain.PetRemoved{BaseEvent: domain.BaseEvent{Timestamp: s.now()}, PetID: current.Entity.ID, Rejected: true})
	return nil
}

// ListPending returns every unapproved pet.
func (s *Service) ListPending(ctx context.Context, caller auth.Principal) ([]*ports.PetProjection, error) {
	if err := auth.Authorize(caller, auth.CapManagePets); err != nil {
		return nil, err
	}
	approved := false
	return s.repo.List(ctx, ports.Filter{Approved: &approved})
}

// ListPendingPublic returns unapproved pets filed by the public.
func (s *Service) ListPendingPublic(ctx context.Context, caller auth.Principal) ([]*ports.PetProjection, error) {
	if err := auth.Authorize(caller, auth.CapManagePets); err != nil {
		return nil, err
	}
	approved, byAdmin := false, false
	return s.repo.List(ctx, ports.Filter{Approved: &approved, AddedByAdmin: &byAdmin})
}

// AddHealthRecord appends a veterinary visit.
func (s *Service) AddHealthRecord(ctx context.Context, caller auth.Principal, id string, input ports.HealthRecordInput) (*ports.PetProjection, error) {
	if err := auth.Authorize(caller, auth.CapManagePets); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	rec := domain.HealthRecord{VisitDate: input.VisitDate, VetName: input.VetName, Type: input.Type, Notes: input.Notes}
	if err := current.Entity.AddHealthRecord(rec); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, current.Entity)
	return saved, mapError(err)
}

// RemoveHealthRecord deletes the record at index.
func (s *Service) RemoveHealthRecord(ctx context.Context, caller auth.Principal, id string, index int) (*ports.PetProjection, error) {
	if err := auth.Authorize(caller, auth.CapManagePets); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if err := current.Entity.RemoveHealthRecord(index); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, current.Entity)
	return saved, mapError(err)
}

var _ ports.Service = (*Service)(nil)
