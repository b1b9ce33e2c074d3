package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/petcare-api/internal/domains/bookings/domain"
)

// ErrInvalidInput signals the request violated a booking invariant.
var ErrInvalidInput = errors.New("invalid booking input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrMissingService),
		errors.Is(err, domain.ErrMissingDate),
		errors.Is(err, domain.ErrMissingUser),
		errors.Is(err, domain.ErrMissingPayment),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrClosed):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
