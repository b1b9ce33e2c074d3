package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/petcare-api/internal/domains/offerings/domain"
	"github.com/Apurer/petcare-api/internal/domains/offerings/ports"
	"github.com/Apurer/petcare-api/internal/platform/sequence"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory offering store.
type Repository struct {
	mu        sync.RWMutex
	offerings map[string]domain.Offering
	ids       sequence.Counter
}

func NewRepository() *Repository {
	return &Repository{offerings: map[string]domain.Offering{}, ids: sequence.Counter{Format: sequence.Offerings}}
}

func (r *Repository) Create(_ context.Context, offering *domain.Offering) (*domain.Offering, error) {
	if offering == nil {
		return nil, errors.New("offering is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *offering
	if clone.ID == "" {
		ids := make([]string, 0, len(r.offerings))
		for id := range r.offerings {
			ids = append(ids, id)
		}
		id, err := r.ids.Next(ids)
		if err != nil {
			return nil, err
		}
		clone.ID = id
	}
	r.offerings[clone.ID] = clone
	r.ids.Observe(clone.ID)
	return &clone, nil
}

func (r *Repository) Update(_ context.Context, offering *domain.Offering) (*domain.Offering, error) {
	if offering == nil {
		return nil, errors.New("offering is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offerings[offering.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.offerings[offering.ID] = *offering
	clone := *offering
	return &clone, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Offering, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	offering, ok := r.offerings[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &offering, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Offering, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Offering, 0, len(r.offerings))
	for _, o := range r.offerings {
		clone := o
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offerings[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.offerings, id)
	return nil
}
