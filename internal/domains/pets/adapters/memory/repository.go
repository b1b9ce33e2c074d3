package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/petcare-api/internal/domains/pets/domain"
	"github.com/Apurer/petcare-api/internal/domains/pets/ports"
	"github.com/Apurer/petcare-api/internal/platform/sequence"
	"github.com/Apurer/petcare-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu   sync.RWMutex
	pets map[string]*storedPet
	ids  sequence.Counter
	now  func() time.Time
}

type storedPet struct {
	pet      *domain.Pet
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		pets: map[string]*storedPet{},
		ids:  sequence.Counter{Format: sequence.Pets},
		now:  time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Create stores a new pet under the next PET identifier.
func (r *Repository) Create(_ context.Context, pet *domain.Pet) (*ports.PetProjection, error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := pet.Clone()
	if clone.ID == "" {
		ids := make([]string, 0, len(r.pets))
		for id := range r.pets {
			ids = append(ids, id)
		}
		id, err := r.ids.Next(ids)
		if err != nil {
			return nil, err
		}
		clone.ID = id
	}
	timestamp := r.now()
	stored := &storedPet{pet: clone, metadata: projection.Created(timestamp)}
	r.pets[clone.ID] = stored
	r.ids.Observe(clone.ID)
	return projectionCopy(stored), nil
}

// Update replaces an existing pet while keeping its creation time.
func (r *Repository) Update(_ context.Context, pet *domain.Pet) (*ports.PetProjection, error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.pets[pet.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	entry.pet = pet.Clone()
	entry.metadata.Touch(r.now())
	return projectionCopy(entry), nil
}

// GetByID fetches a pet if present.
func (r *Repository) GetByID(_ context.Context, id string) (*ports.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// List returns pets matching filter ordered by id.
func (r *Repository) List(_ context.Context, filter ports.Filter) ([]*ports.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*ports.PetProjection, 0, len(r.pets))
	for _, entry := range r.pets {
		if filter.Approved != nil && entry.pet.Approved != *filter.Approved {
			continue
		}
		if filter.AddedByAdmin != nil && entry.pet.AddedByAdmin != *filter.AddedByAdmin {
			continue
		}
		result = append(result, projectionCopy(entry))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Entity.ID < result[j].Entity.ID })
	return result, nil
}

// Delete removes a pet.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

// MarkAdopted flips an available pet under the write lock.
func (r *Repository) MarkAdopted(_ context.Context, id string) (*ports.PetProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := entry.pet.MarkAdopted(); err != nil {
		return nil, err
	}
	entry.metadata.Touch(r.now())
	return projectionCopy(entry), nil
}

// SetAdoptionStatus overwrites the availability flag.
func (r *Repository) SetAdoptionStatus(_ context.Context, id string, status domain.AdoptionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.pets[id]
	if !ok {
		return ports.ErrNotFound
	}
	if err := entry.pet.SetAdoptionStatus(status); err != nil {
		return err
	}
	entry.metadata.Touch(r.now())
	return nil
}

func projectionCopy(entry *storedPet) *ports.PetProjection {
	return projection.Of(entry.pet.Clone(), entry.metadata)
}
