package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/petcare-api/internal/domains/bookings/domain"
	"github.com/Apurer/petcare-api/internal/domains/bookings/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory booking store.
type Repository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
}

func NewRepository() *Repository {
	return &Repository{bookings: map[string]*domain.Booking{}}
}

func (r *Repository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking == nil || booking.ID == "" {
		return nil, errors.New("booking needs an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bookings[booking.ID]; exists {
		return nil, errors.New("booking id already used")
	}
	r.bookings[booking.ID] = booking.Clone()
	return booking.Clone(), nil
}

func (r *Repository) Update(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking == nil {
		return nil, errors.New("booking is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.bookings[booking.ID] = booking.Clone()
	return booking.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return booking.Clone(), nil
}

func (r *Repository) List(_ context.Context, ownerEmail string) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if ownerEmail != "" && !strings.EqualFold(b.UserEmail, ownerEmail) {
			continue
		}
		out = append(out, b.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}
