package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/petcare-api/internal/domains/catalog/domain"
	"github.com/Apurer/petcare-api/internal/domains/catalog/ports"
)

var (
	// ErrInvalidInput signals the request violated a catalog invariant.
	ErrInvalidInput = errors.New("invalid catalog input")
	// ErrConflict signals the change clashes with existing catalog state.
	ErrConflict = errors.New("catalog conflict")
	// ErrUnknownCategory is returned when a product references a missing category.
	ErrUnknownCategory = errors.New("category does not exist")
	// ErrCategoryInUse blocks deleting a category that still has products.
	ErrCategoryInUse = errors.New("category still has products")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyProductName) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrNegativeStock) ||
		errors.Is(err, domain.ErrInvalidProductState) ||
		errors.Is(err, domain.ErrEmptyCategoryName) ||
		errors.Is(err, domain.ErrInvalidCategoryState) ||
		errors.Is(err, ErrUnknownCategory) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrDuplicateCategory) || errors.Is(err, ErrCategoryInUse) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
