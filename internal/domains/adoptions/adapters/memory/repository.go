package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/petcare-api/internal/domains/adoptions/domain"
	"github.com/Apurer/petcare-api/internal/domains/adoptions/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory adoption request store.
type Repository struct {
	mu       sync.RWMutex
	requests map[string]*domain.Request
}

func NewRepository() *Repository {
	return &Repository{requests: map[string]*domain.Request{}}
}

func (r *Repository) Create(_ context.Context, req *domain.Request) (*domain.Request, error) {
	if req == nil || req.ID == "" {
		return nil, errors.New("adoption request needs an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.requests[req.ID]; exists {
		return nil, errors.New("adoption request id already used")
	}
	r.requests[req.ID] = req.Clone()
	return req.Clone(), nil
}

func (r *Repository) Update(_ context.Context, req *domain.Request) (*domain.Request, error) {
	if req == nil {
		return nil, errors.New("adoption request is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[req.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.requests[req.ID] = req.Clone()
	return req.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return req.Clone(), nil
}

func (r *Repository) List(_ context.Context, filter ports.Filter) ([]*domain.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Request
	for _, req := range r.requests {
		if matches(req, filter) {
			out = append(out, req.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ApplyDate.Equal(out[j].ApplyDate) {
			return out[i].ApplyDate.Before(out[j].ApplyDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

func matches(req *domain.Request, f ports.Filter) bool {
	if f.UserEmail != "" && !strings.EqualFold(req.UserEmail, f.UserEmail) {
		return false
	}
	if f.PetID != "" && req.PetID != f.PetID {
		return false
	}
	if f.ExcludeID != "" && req.ID == f.ExcludeID {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, req.Status) {
		return false
	}
	return true
}
