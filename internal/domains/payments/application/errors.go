package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/petcare-api/internal/domains/payments/domain"
	"github.com/Apurer/petcare-api/internal/domains/payments/ports"
)

var (
	// ErrInvalidInput signals a rejected payment request or a declined card.
	ErrInvalidInput = errors.New("invalid payment input")
	// ErrConflict signals the order was already paid.
	ErrConflict = errors.New("payment conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInvalidMethod),
		errors.Is(err, domain.ErrCardDeclined),
		errors.Is(err, domain.ErrMissingCard),
		errors.Is(err, domain.ErrMissingOrder):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrAlreadyPaid):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
