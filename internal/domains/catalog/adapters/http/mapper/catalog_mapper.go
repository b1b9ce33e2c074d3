package mapper

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/catalog/application"
	"github.com/Apurer/petcare-api/internal/domains/catalog/domain"
	"github.com/Apurer/petcare-api/internal/domains/catalog/ports"
	sharederrors "github.com/Apurer/petcare-api/internal/shared/errors"
)

// Product is the JSON shape of a product.
type Product struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CategoryID  string          `json:"categoryId,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image,omitempty"`
	Status      string          `json:"status"`
}

// ProductRequest is accepted on create and update; absent fields stay nil.
type ProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	CategoryID  *string          `json:"categoryId"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Image       *string          `json:"image"`
	Status      *string          `json:"status"`
}

// Category is the JSON shape of a category.
type Category struct {
	CategoryID  string `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
}

// CategoryRequest is accepted on create and update.
type CategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func FromDomainProduct(p *domain.Product) Product {
	if p == nil {
		return Product{}
	}
	return Product{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Stock:       p.Stock,
		Image:       p.Image,
		Status:      string(p.Status),
	}
}

func FromDomainProducts(list []*domain.Product) []Product {
	out := make([]Product, 0, len(list))
	for _, p := range list {
		out = append(out, FromDomainProduct(p))
	}
	return out
}

func FromDomainCategory(c *domain.Category) Category {
	if c == nil {
		return Category{}
	}
	return Category{CategoryID: c.ID, Name: c.Name, Description: c.Description, Status: string(c.Status)}
}

func FromDomainCategories(list []*domain.Category) []Category {
	out := make([]Category, 0, len(list))
	for _, c := range list {
		out = append(out, FromDomainCategory(c))
	}
	return out
}

func (r ProductRequest) ToInput() ports.ProductInput {
	in := ports.ProductInput{
		Name:        deref(r.Name),
		Description: deref(r.Description),
		CategoryID:  deref(r.CategoryID),
		Image:       deref(r.Image),
		Status:      domain.ProductStatus(deref(r.Status)),
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	if r.Stock != nil {
		in.Stock = *r.Stock
	}
	return in
}

func (r ProductRequest) ToPatch() ports.ProductPatch {
	patch := ports.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Price:       r.Price,
		Stock:       r.Stock,
		Image:       r.Image,
	}
	if r.Status != nil {
		status := domain.ProductStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

func (r CategoryRequest) ToInput() ports.CategoryInput {
	return ports.CategoryInput{
		Name:        deref(r.Name),
		Description: deref(r.Description),
		Status:      domain.CategoryStatus(deref(r.Status)),
	}
}

func (r CategoryRequest) ToPatch() ports.CategoryPatch {
	patch := ports.CategoryPatch{Name: r.Name, Description: r.Description}
	if r.Status != nil {
		status := domain.CategoryStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// ErrorMapper translates catalog errors to problem details.
func ErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.FromError(sharederrors.ErrNotFound, err), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.FromError(sharederrors.ErrValidation, err), true
	case errors.Is(err, application.ErrConflict):
		return sharederrors.FromError(sharederrors.ErrConflict, err), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
