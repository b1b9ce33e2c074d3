package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/petcare-api/internal/domains/adoptions/domain"
	"github.com/Apurer/petcare-api/internal/domains/adoptions/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid adoption input")
	// ErrConflict signals the request clashes with an existing application.
	ErrConflict = errors.New("adoption conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrMissingPetID),
		errors.Is(err, domain.ErrMissingFullName),
		errors.Is(err, domain.ErrMissingPhone),
		errors.Is(err, domain.ErrMissingAddress),
		errors.Is(err, domain.ErrInvalidAge),
		errors.Is(err, domain.ErrMissingHome),
		errors.Is(err, domain.ErrMissingExperience),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrFinalized),
		errors.Is(err, domain.ErrReviewed),
		errors.Is(err, ports.ErrPetUnavailable):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrDuplicateRequest):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
