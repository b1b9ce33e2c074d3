package domain

import (
	"errors"
	"strings"
)

// CategoryStatus toggles whether a category is offered.
type CategoryStatus string

const (
	CategoryActive   CategoryStatus = "Active"
	CategoryInactive CategoryStatus = "Inactive"
)

var (
	ErrEmptyCategoryName    = errors.New("category name is required")
	ErrInvalidCategoryState = errors.New("category status is invalid")
)

// Category groups products.
type Category struct {
	ID          string
	Name        string
	Description string
	Status      CategoryStatus
}

// NewCategory builds an active category unless status says otherwise.
func NewCategory(name, description string, status CategoryStatus) (*Category, error) {
	c := &Category{Name: strings.TrimSpace(name), Description: strings.TrimSpace(description), Status: status}
	if c.Status == "" {
		c.Status = CategoryActive
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategoryName
	}
	switch c.Status {
	case CategoryActive, CategoryInactive:
		return nil
	default:
		return ErrInvalidCategoryState
	}
}
