package mapper

import (
	"errors"
	"time"

	"github.com/Apurer/petcare-api/internal/domains/adoptions/application"
	"github.com/Apurer/petcare-api/internal/domains/adoptions/domain"
	"github.com/Apurer/petcare-api/internal/domains/adoptions/ports"
	sharederrors "github.com/Apurer/petcare-api/internal/shared/errors"
)

type Adoption struct {
	ID              string              `json:"id"`
	PetID           string              `json:"petId"`
	UserEmail       string              `json:"userEmail"`
	AlternateEmail  string              `json:"alternateEmail,omitempty"`
	PersonalInfo    domain.PersonalInfo `json:"personalInfo"`
	HomeEnvironment string              `json:"homeEnvironment"`
	Experience      string              `json:"experience"`
	AdoptionStatus  string              `json:"adoptionStatus"`
	RejectionReason string              `json:"rejectionReason,omitempty"`
	ApplyDate       time.Time           `json:"applyDate"`
	AdoptionDate    *time.Time          `json:"adoptionDate,omitempty"`
}

type PetDetails struct {
	PetID   string `json:"petId"`
	Name    string `json:"name"`
	Species string `json:"species,omitempty"`
	Image   string `json:"image,omitempty"`
}

type ApplyRequest struct {
	PetID           string              `json:"petId"`
	AlternateEmail  string              `json:"alternateEmail"`
	PersonalInfo    domain.PersonalInfo `json:"personalInfo"`
	HomeEnvironment string              `json:"homeEnvironment"`
	Experience      string              `json:"experience"`
}

type ApplyResponse struct {
	Message    string     `json:"message"`
	Adoption   Adoption   `json:"adoption"`
	PetDetails PetDetails `json:"petDetails"`
}

// UpdateRequest carries applicant edits; absent fields stay nil.
type UpdateRequest struct {
	AlternateEmail *string `json:"alternateEmail"`
	PersonalInfo   *struct {
		FullName *string `json:"fullName"`
		Phone    *string `json:"phone"`
		Address  *string `json:"address"`
		Age      *int    `json:"age"`
	} `json:"personalInfo"`
	HomeEnvironment *string `json:"homeEnvironment"`
	Experience      *string `json:"experience"`
}

type StatusRequest struct {
	AdoptionStatus  string `json:"adoptionStatus"`
	RejectionReason string `json:"rejectionReason"`
}

func (r ApplyRequest) ToApplication() domain.Application {
	return domain.Application{
		PetID:           r.PetID,
		AlternateEmail:  r.AlternateEmail,
		PersonalInfo:    r.PersonalInfo,
		HomeEnvironment: r.HomeEnvironment,
		Experience:      r.Experience,
	}
}

func (r UpdateRequest) ToPatch() domain.Patch {
	p := domain.Patch{
		AlternateEmail:  r.AlternateEmail,
		HomeEnvironment: r.HomeEnvironment,
		Experience:      r.Experience,
	}
	if r.PersonalInfo != nil {
		p.FullName = r.PersonalInfo.FullName
		p.Phone = r.PersonalInfo.Phone
		p.Address = r.PersonalInfo.Address
		p.Age = r.PersonalInfo.Age
	}
	return p
}

func FromDomain(r *domain.Request) Adoption {
	if r == nil {
		return Adoption{}
	}
	return Adoption{
		ID:              r.ID,
		PetID:           r.PetID,
		UserEmail:       r.UserEmail,
		AlternateEmail:  r.AlternateEmail,
		PersonalInfo:    r.PersonalInfo,
		HomeEnvironment: r.HomeEnvironment,
		Experience:      r.Experience,
		AdoptionStatus:  string(r.Status),
		RejectionReason: r.RejectionReason,
		ApplyDate:       r.ApplyDate,
		AdoptionDate:    r.AdoptionDate,
	}
}

func FromDomainList(list []*domain.Request) []Adoption {
	out := make([]Adoption, 0, len(list))
	for _, r := range list {
		out = append(out, FromDomain(r))
	}
	return out
}

func FromApplyResult(result ports.ApplyResult) ApplyResponse {
	return ApplyResponse{
		Message:  "Adoption request submitted successfully",
		Adoption: FromDomain(result.Request),
		PetDetails: PetDetails{
			PetID:   result.Pet.ID,
			Name:    result.Pet.Name,
			Species: result.Pet.Species,
			Image:   result.Pet.Image,
		},
	}
}

// ErrorMapper translates adoption errors to problem details.
func ErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, ports.ErrPetNotFound):
		return sharederrors.FromError(sharederrors.ErrNotFound, err), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.FromError(sharederrors.ErrValidation, err), true
	case errors.Is(err, application.ErrConflict):
		return sharederrors.FromError(sharederrors.ErrConflict, err), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
