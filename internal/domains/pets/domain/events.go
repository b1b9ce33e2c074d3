package domain

import "time"

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time `json:"-"`
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// PetListed is raised when an administrator lists a pet or a public submission arrives.
type PetListed struct {
	BaseEvent
	PetID        string `json:"petId"`
	Name         string `json:"name"`
	Approved     bool   `json:"approved"`
	AddedByAdmin bool   `json:"addedByAdmin"`
}

func (e PetListed) EventName() string   { return "pets.pet.listed" }
func (e PetListed) AggregateID() string { return e.PetID }

// PetApproved is raised when a pending pet goes public.
type PetApproved struct {
	BaseEvent
	PetID string `json:"petId"`
}

func (e PetApproved) EventName() string   { return "pets.pet.approved" }
func (e PetApproved) AggregateID() string { return e.PetID }

// PetRemoved is raised on delete and on rejection of a submission.
type PetRemoved struct {
	BaseEvent
	PetID    string `json:"petId"`
	Rejected bool   `json:"rejected"`
}

func (e PetRemoved) EventName() string   { return "pets.pet.removed" }
func (e PetRemoved) AggregateID() string { return e.PetID }
