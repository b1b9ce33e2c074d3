package domain

import "time"

// BaseEvent carries the occurrence timestamp shared by adoption events.
type BaseEvent struct {
	Timestamp time.Time `json:"-"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// RequestSubmitted is raised when a user applies for a pet.
type RequestSubmitted struct {
	BaseEvent
	RequestID string `json:"requestId"`
	PetID     string `json:"petId"`
	UserEmail string `json:"userEmail"`
}

func (e RequestSubmitted) EventName() string   { return "adoptions.request.submitted" }
func (e RequestSubmitted) AggregateID() string { return e.RequestID }

// RequestStatusChanged is raised on every administrator status change.
type RequestStatusChanged struct {
	BaseEvent
	RequestID string `json:"requestId"`
	PetID     string `json:"petId"`
	From      Status `json:"from"`
	To        Status `json:"to"`
	Reason    string `json:"reason,omitempty"`
}

func (e RequestStatusChanged) EventName() string   { return "adoptions.request.status_changed" }
func (e RequestStatusChanged) AggregateID() string { return e.RequestID }
