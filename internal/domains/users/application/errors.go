package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/petcare-api/internal/domains/users/domain"
	"github.com/Apurer/petcare-api/internal/domains/users/ports"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrAuthentication wraps credential and token failures.
	ErrAuthentication = errors.New("authentication failed")
	// ErrConflict wraps uniqueness violations.
	ErrConflict = errors.New("user conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, auth.ErrUnknownRole):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrInvalidCredentials), errors.Is(err, ports.ErrSessionNotFound):
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	case errors.Is(err, ports.ErrEmailTaken):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
