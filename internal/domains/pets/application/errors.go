package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/petcare-api/internal/domains/pets/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid pet input")
	// ErrConflict signals the pet is not in a state that allows the change.
	ErrConflict = errors.New("pet state conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyImages) ||
		errors.Is(err, domain.ErrInvalidSpecies) ||
		errors.Is(err, domain.ErrInvalidSex) ||
		errors.Is(err, domain.ErrInvalidSize) ||
		errors.Is(err, domain.ErrNegativeAge) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidAdoptionStatus) ||
		errors.Is(err, domain.ErrMissingSubmitter) ||
		errors.Is(err, domain.ErrInvalidHealthRecord) ||
		errors.Is(err, domain.ErrHealthRecordIndex) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrAlreadyApproved) || errors.Is(err, domain.ErrAlreadyAdopted) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
