package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductStatus is the sale state shown in the storefront.
type ProductStatus string

const (
	ProductAvailable  ProductStatus = "Available"
	ProductOutOfStock ProductStatus = "OutOfStock"
	ProductInactive   ProductStatus = "Inactive"
)

var (
	ErrEmptyProductName    = errors.New("product name is required")
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrNegativeStock       = errors.New("stock cannot be negative")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidProductState = errors.New("product status is invalid")
)

// Product is a stocked catalog item.
type Product struct {
	ID          string
	Name        string
	Description string
	CategoryID  string
	Price       decimal.Decimal
	Stock       int
	Image       string
	Status      ProductStatus
}

// NewProduct validates and builds a product; the id is assigned on insert.
func NewProduct(name, description, categoryID string, price decimal.Decimal, stock int, image string) (*Product, error) {
	p := &Product{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CategoryID:  strings.TrimSpace(categoryID),
		Price:       price,
		Stock:       stock,
		Image:       strings.TrimSpace(image),
	}
	p.Status = p.derivedStatus("")
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces the product invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyProductName
	}
	if !p.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	if !isProductStatus(p.Status) {
		return ErrInvalidProductState
	}
	return nil
}

// SetStatus applies an explicit status. An empty value re-derives it from stock.
func (p *Product) SetStatus(status ProductStatus) error {
	if status == "" {
		p.Status = p.derivedStatus(p.Status)
		return nil
	}
	if !isProductStatus(status) {
		return ErrInvalidProductState
	}
	p.Status = status
	return nil
}

// CanFulfil reports whether quantity units are in stock.
func (p *Product) CanFulfil(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > p.Stock {
		return ErrInsufficientStock
	}
	return nil
}

// Withdraw removes quantity units and flags the product out of stock at zero.
func (p *Product) Withdraw(quantity int) error {
	if err := p.CanFulfil(quantity); err != nil {
		return err
	}
	p.Stock -= quantity
	if p.Stock == 0 && p.Status != ProductInactive {
		p.Status = ProductOutOfStock
	}
	return nil
}

// Restock returns quantity units and clears the out-of-stock flag.
func (p *Product) Restock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p.Stock += quantity
	p.Status = p.derivedStatus(p.Status)
	return nil
}

func (p *Product) derivedStatus(current ProductStatus) ProductStatus {
	if current == ProductInactive {
		return ProductInactive
	}
	if p.Stock == 0 {
		return ProductOutOfStock
	}
	return ProductAvailable
}

func isProductStatus(status ProductStatus) bool {
	switch status {
	case ProductAvailable, ProductOutOfStock, ProductInactive:
		return true
	default:
		return false
	}
}
