package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/petcare-api/internal/domains/offerings/domain"
)

// ErrInvalidInput signals the request violated an offering invariant.
var ErrInvalidInput = errors.New("invalid service input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) || errors.Is(err, domain.ErrInvalidPrice) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
