package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName    = errors.New("service name is required")
	ErrInvalidPrice = errors.New("service price must be positive")
)

// Offering is a bookable care service such as grooming or a vet check.
type Offering struct {
	ID          string
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	Duration    string
	Image       string
}

// NewOffering trims and validates the supplied fields.
func NewOffering(name, category, description string, price decimal.Decimal, duration, image string) (*Offering, error) {
	o := &Offering{
		Name:        strings.TrimSpace(name),
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
		Price:       price,
		Duration:    strings.TrimSpace(duration),
		Image:       strings.TrimSpace(image),
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Offering) Validate() error {
	if o.Name == "" {
		return ErrEmptyName
	}
	if !o.Price.IsPositive() {
		return ErrInvalidPrice
	}
	return nil
}
