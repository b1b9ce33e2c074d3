package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/petcare-api/internal/domains/catalog/domain"
	"github.com/Apurer/petcare-api/internal/domains/catalog/ports"
	"github.com/Apurer/petcare-api/internal/platform/sequence"
)

var (
	_ ports.ProductRepository  = (*ProductRepository)(nil)
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
)

// ProductRepository is an in-memory product store.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	ids      sequence.Counter
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: map[string]*domain.Product{}, ids: sequence.Counter{Format: sequence.Products}}
}

func (r *ProductRepository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == "" {
		id, err := r.ids.Next(keys(r.products))
		if err != nil {
			return nil, err
		}
		clone.ID = id
	}
	r.products[clone.ID] = &clone
	r.ids.Observe(clone.ID)
	out := clone
	return &out, nil
}

func (r *ProductRepository) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[clone.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *ProductRepository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		clone := *p
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *ProductRepository) Withdraw(_ context.Context, id string, quantity int) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	if err := clone.Withdraw(quantity); err != nil {
		return nil, err
	}
	r.products[id] = &clone
	out := clone
	return &out, nil
}

func (r *ProductRepository) Restock(_ context.Context, id string, quantity int) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	if err := clone.Restock(quantity); err != nil {
		return nil, err
	}
	r.products[id] = &clone
	out := clone
	return &out, nil
}

// CategoryRepository is an in-memory category store with unique names.
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category
	ids        sequence.Counter
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: map[string]*domain.Category{}, ids: sequence.Counter{Format: sequence.Categories}}
}

func (r *CategoryRepository) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("category is nil")
	}
	clone := *category
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTakenLocked(clone.Name, "") {
		return nil, ports.ErrDuplicateCategory
	}
	if clone.ID == "" {
		id, err := r.ids.Next(keys(r.categories))
		if err != nil {
			return nil, err
		}
		clone.ID = id
	}
	r.categories[clone.ID] = &clone
	r.ids.Observe(clone.ID)
	out := clone
	return &out, nil
}

func (r *CategoryRepository) Update(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("category is nil")
	}
	clone := *category
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[clone.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	if r.nameTakenLocked(clone.Name, clone.ID) {
		return nil, ports.ErrDuplicateCategory
	}
	r.categories[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *CategoryRepository) List(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		clone := *c
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *CategoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *CategoryRepository) nameTakenLocked(name, exceptID string) bool {
	for id, c := range r.categories {
		if id != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func keys[T any](m map[string]T) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
