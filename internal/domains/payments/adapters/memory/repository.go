package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/petcare-api/internal/domains/payments/domain"
	"github.com/Apurer/petcare-api/internal/domains/payments/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory payment store keyed by id and order.
type Repository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
	byOrder  map[string]string
}

func NewRepository() *Repository {
	return &Repository{payments: map[string]*domain.Payment{}, byOrder: map[string]string{}}
}

func (r *Repository) Create(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if payment == nil || payment.ID == "" {
		return nil, errors.New("payment needs an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byOrder[payment.OrderID]; taken {
		return nil, ports.ErrAlreadyPaid
	}
	r.payments[payment.ID] = payment.Clone()
	r.byOrder[payment.OrderID] = payment.ID
	return payment.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payment, ok := r.payments[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return payment.Clone(), nil
}

func (r *Repository) FindByOrder(_ context.Context, orderID string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byOrder[orderID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.payments[id].Clone(), nil
}

func (r *Repository) List(_ context.Context, email string) ([]*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		if email != "" && !strings.EqualFold(p.Email, email) {
			continue
		}
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
