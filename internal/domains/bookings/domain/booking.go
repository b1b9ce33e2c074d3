package domain

import (
	"errors"
	"strings"
	"time"
)

// Status is the lifecycle state of a service booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IDPrefix starts every booking identifier.
const IDPrefix = "BKG-"

var (
	ErrMissingService = errors.New("service id is required")
	ErrMissingDate    = errors.New("booking date is required")
	ErrMissingUser    = errors.New("booking owner is required")
	ErrMissingPayment = errors.New("payment id is required")
	ErrInvalidStatus  = errors.New("booking status must be pending, confirmed, completed or cancelled")
	ErrClosed         = errors.New("booking is already completed or cancelled")
)

// Booking reserves a care service for a date.
type Booking struct {
	ID        string
	ServiceID string
	UserEmail string
	Date      time.Time
	Notes     string
	Status    Status
	PaymentID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBooking validates the fields and builds a pending booking.
func NewBooking(id, userEmail, serviceID string, date time.Time, notes string, now time.Time) (*Booking, error) {
	b := &Booking{
		ID:        id,
		ServiceID: strings.TrimSpace(serviceID),
		UserEmail: strings.TrimSpace(userEmail),
		Date:      date,
		Notes:     strings.TrimSpace(notes),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	switch {
	case b.ServiceID == "":
		return nil, ErrMissingService
	case b.Date.IsZero():
		return nil, ErrMissingDate
	case b.UserEmail == "":
		return nil, ErrMissingUser
	}
	return b, nil
}

// ParseStatus accepts the four lifecycle states, case-insensitively.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

// LinkPayment records a successful payment and confirms the booking.
func (b *Booking) LinkPayment(paymentID string, now time.Time) error {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return ErrMissingPayment
	}
	if b.Closed() {
		return ErrClosed
	}
	b.PaymentID = paymentID
	b.Status = StatusConfirmed
	b.UpdatedAt = now
	return nil
}

// SetStatus applies an administrator status change.
func (b *Booking) SetStatus(status Status, now time.Time) error {
	parsed, err := ParseStatus(string(status))
	if err != nil {
		return err
	}
	b.Status = parsed
	b.UpdatedAt = now
	return nil
}

// Closed reports whether the booking has reached a terminal state.
func (b *Booking) Closed() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}
