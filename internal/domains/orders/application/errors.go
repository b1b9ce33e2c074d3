package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/petcare-api/internal/domains/orders/domain"
	"github.com/Apurer/petcare-api/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrConflict signals stock, availability, or an idempotency key prevented the change.
	ErrConflict = errors.New("order conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoLines) ||
		errors.Is(err, domain.ErrMissingItemID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidItemType) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrMissingCustomer) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrPetUnavailable) ||
		errors.Is(err, ports.ErrIdempotencyConflict) ||
		errors.Is(err, ports.ErrIdempotencyInProgress) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
