package domain

import (
	"errors"
	"strings"
	"time"
)

// Status is the review state of an adoption request.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCompleted Status = "Completed"
)

const (
	DefaultRejectionReason = "Rejected by admin"
	SupersededReason       = "Another applicant was approved"
)

var (
	ErrMissingPetID      = errors.New("pet id is required")
	ErrMissingFullName   = errors.New("full name is required")
	ErrMissingPhone      = errors.New("phone is required")
	ErrMissingAddress    = errors.New("address is required")
	ErrInvalidAge        = errors.New("age must be greater than zero")
	ErrMissingHome       = errors.New("home environment is required")
	ErrMissingExperience = errors.New("experience is required")
	ErrInvalidStatus     = errors.New("invalid adoption status")
	ErrFinalized         = errors.New("adoption request is finalized")
	ErrReviewed          = errors.New("adoption request was already reviewed")
)

// PersonalInfo describes the applicant.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Age      int    `json:"age"`
}

// Application holds the applicant-supplied fields.
type Application struct {
	PetID           string
	AlternateEmail  string
	PersonalInfo    PersonalInfo
	HomeEnvironment string
	Experience      string
}

// Request is one user's application to adopt one pet.
type Request struct {
	ID              string
	PetID           string
	UserEmail       string
	AlternateEmail  string
	PersonalInfo    PersonalInfo
	HomeEnvironment string
	Experience      string
	Status          Status
	RejectionReason string
	ApplyDate       time.Time
	AdoptionDate    *time.Time
	UpdatedAt       time.Time
}

// NewRequest validates app and builds a Pending request.
func NewRequest(id, userEmail string, app Application, now time.Time) (*Request, error) {
	r := &Request{
		ID:              id,
		PetID:           strings.TrimSpace(app.PetID),
		UserEmail:       strings.TrimSpace(userEmail),
		AlternateEmail:  strings.TrimSpace(app.AlternateEmail),
		PersonalInfo:    trimInfo(app.PersonalInfo),
		HomeEnvironment: strings.TrimSpace(app.HomeEnvironment),
		Experience:      strings.TrimSpace(app.Experience),
		Status:          StatusPending,
		ApplyDate:       now,
		UpdatedAt:       now,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func trimInfo(p PersonalInfo) PersonalInfo {
	return PersonalInfo{
		FullName: strings.TrimSpace(p.FullName),
		Phone:    strings.TrimSpace(p.Phone),
		Address:  strings.TrimSpace(p.Address),
		Age:      p.Age,
	}
}

// Validate enforces the required fields.
func (r *Request) Validate() error {
	switch {
	case r.PetID == "":
		return ErrMissingPetID
	case r.PersonalInfo.FullName == "":
		return ErrMissingFullName
	case r.PersonalInfo.Phone == "":
		return ErrMissingPhone
	case r.PersonalInfo.Address == "":
		return ErrMissingAddress
	case r.PersonalInfo.Age <= 0:
		return ErrInvalidAge
	case r.HomeEnvironment == "":
		return ErrMissingHome
	case r.Experience == "":
		return ErrMissingExperience
	}
	return nil
}

// Patch carries applicant edits; nil fields are left unchanged.
type Patch struct {
	AlternateEmail  *string
	FullName        *string
	Phone           *string
	Address         *string
	Age             *int
	HomeEnvironment *string
	Experience      *string
}

// Edit applies p while the request is still open for changes.
func (r *Request) Edit(p Patch, now time.Time) error {
	if r.Status == StatusCompleted || r.Status == StatusRejected {
		return ErrFinalized
	}
	next := *r
	set := func(dst *string, src *string) {
		if src != nil && strings.TrimSpace(*src) != "" {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&next.AlternateEmail, p.AlternateEmail)
	set(&next.PersonalInfo.FullName, p.FullName)
	set(&next.PersonalInfo.Phone, p.Phone)
	set(&next.PersonalInfo.Address, p.Address)
	set(&next.HomeEnvironment, p.HomeEnvironment)
	set(&next.Experience, p.Experience)
	if p.Age != nil {
		next.PersonalInfo.Age = *p.Age
	}
	if err := next.Validate(); err != nil {
		return err
	}
	next.UpdatedAt = now
	*r = next
	return nil
}

// Withdrawable reports whether the applicant may still delete the request.
func (r *Request) Withdrawable() error {
	if r.Status != StatusPending {
		return ErrReviewed
	}
	return nil
}

// ParseStatus accepts the four review states.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.TrimSpace(raw)); s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

// SetStatus applies an administrator decision.
func (r *Request) SetStatus(status Status, reason string, now time.Time) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	r.Status = status
	switch status {
	case StatusRejected:
		r.RejectionReason = strings.TrimSpace(reason)
		if r.RejectionReason == "" {
			r.RejectionReason = DefaultRejectionReason
		}
		r.AdoptionDate = nil
	case StatusCompleted:
		stamp := now
		r.AdoptionDate = &stamp
	}
	r.UpdatedAt = now
	return nil
}

// Active reports whether the request still holds a claim on the pet.
func (r *Request) Active() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// Adopts reports whether the request marks the pet adopted.
func (r *Request) Adopts() bool {
	return r.Status == StatusApproved || r.Status == StatusCompleted
}

// Recipient is where notifications about this request go.
func (r *Request) Recipient() string {
	if r.AlternateEmail != "" {
		return r.AlternateEmail
	}
	return r.UserEmail
}

// Clone returns a deep copy.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	clone := *r
	if r.AdoptionDate != nil {
		d := *r.AdoptionDate
		clone.AdoptionDate = &d
	}
	return &clone
}
