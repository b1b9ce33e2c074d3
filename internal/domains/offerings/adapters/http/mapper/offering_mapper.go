package mapper

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/offerings/application"
	"github.com/Apurer/petcare-api/internal/domains/offerings/domain"
	"github.com/Apurer/petcare-api/internal/domains/offerings/ports"
	sharederrors "github.com/Apurer/petcare-api/internal/shared/errors"
)

type Offering struct {
	ServiceID   string          `json:"serviceId"`
	Name        string          `json:"name"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Duration    string          `json:"duration,omitempty"`
	Image       string          `json:"image,omitempty"`
}

// OfferingRequest is accepted on create and update; absent fields stay nil.
type OfferingRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Duration    *string          `json:"duration"`
	Image       *string          `json:"image"`
}

func FromDomain(o *domain.Offering) Offering {
	if o == nil {
		return Offering{}
	}
	return Offering{
		ServiceID:   o.ID,
		Name:        o.Name,
		Category:    o.Category,
		Description: o.Description,
		Price:       o.Price,
		Duration:    o.Duration,
		Image:       o.Image,
	}
}

func FromDomainList(list []*domain.Offering) []Offering {
	out := make([]Offering, 0, len(list))
	for _, o := range list {
		out = append(out, FromDomain(o))
	}
	return out
}

func (r OfferingRequest) ToInput() ports.OfferingInput {
	in := ports.OfferingInput{
		Name:        deref(r.Name),
		Category:    deref(r.Category),
		Description: deref(r.Description),
		Duration:    deref(r.Duration),
		Image:       deref(r.Image),
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	return in
}

func (r OfferingRequest) ToPatch() ports.OfferingPatch {
	return ports.OfferingPatch{
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Price:       r.Price,
		Duration:    r.Duration,
		Image:       r.Image,
	}
}

// ErrorMapper translates offering errors to problem details.
func ErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.FromError(sharederrors.ErrNotFound, err), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.FromError(sharederrors.ErrValidation, err), true
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
