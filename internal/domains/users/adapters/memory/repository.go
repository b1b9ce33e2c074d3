package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/petcare-api/internal/domains/users/domain"
	"github.com/Apurer/petcare-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory account store keyed by normalized email.
type Repository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewRepository() *Repository {
	return &Repository{users: map[string]domain.User{}}
}

func (r *Repository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	clone.Email = domain.NormalizeEmail(clone.Email)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[clone.Email]; exists {
		return nil, ports.ErrEmailTaken
	}
	r.users[clone.Email] = clone
	return &clone, nil
}

func (r *Repository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	clone.Email = domain.NormalizeEmail(clone.Email)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[clone.Email]; !ok {
		return nil, ports.ErrNotFound
	}
	r.users[clone.Email] = clone
	return &clone, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[domain.NormalizeEmail(email)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &user, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := u
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
	return list, nil
}

func (r *Repository) Delete(_ context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[email]; !ok {
		return ports.ErrNotFound
	}
	delete(r.users, email)
	return nil
}
