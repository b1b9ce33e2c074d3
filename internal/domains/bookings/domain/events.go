package domain

import "time"

type BaseEvent struct {
	Timestamp time.Time `json:"-"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// BookingCreated is raised when a customer books a service.
type BookingCreated struct {
	BaseEvent
	BookingID string    `json:"bookingId"`
	ServiceID string    `json:"serviceId"`
	UserEmail string    `json:"userEmail"`
	Date      time.Time `json:"date"`
}

func (e BookingCreated) EventName() string   { return "bookings.booking.created" }
func (e BookingCreated) AggregateID() string { return e.BookingID }

// BookingStatusChanged is raised when payment linking or an administrator moves the booking.
type BookingStatusChanged struct {
	BaseEvent
	BookingID string `json:"bookingId"`
	From      Status `json:"from"`
	To        Status `json:"to"`
	PaymentID string `json:"paymentId,omitempty"`
}

func (e BookingStatusChanged) EventName() string   { return "bookings.booking.status_changed" }
func (e BookingStatusChanged) AggregateID() string { return e.BookingID }
