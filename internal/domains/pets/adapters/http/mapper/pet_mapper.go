package mapper

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/petcare-api/internal/domains/pets/application"
	"github.com/Apurer/petcare-api/internal/domains/pets/domain"
	"github.com/Apurer/petcare-api/internal/domains/pets/ports"
	sharederrors "github.com/Apurer/petcare-api/internal/shared/errors"
)

// Contact is the submitter block of a public listing.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// HealthRecord is the HTTP representation of a veterinary visit.
type HealthRecord struct {
	VisitDate time.Time `json:"visitDate"`
	VetName   string    `json:"vetName"`
	Type      string    `json:"type,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// Pet is the HTTP representation of a listed pet.
type Pet struct {
	PetID          string          `json:"petId"`
	Name           string          `json:"name"`
	Species        string          `json:"species"`
	Breed          string          `json:"breed,omitempty"`
	Sex            string          `json:"sex"`
	AgeYears       int             `json:"ageYears"`
	Size           string          `json:"size"`
	Color          string          `json:"color,omitempty"`
	Description    string          `json:"description,omitempty"`
	Images         []string        `json:"images"`
	Price          decimal.Decimal `json:"price"`
	AdoptionStatus string          `json:"adoptionStatus"`
	Approved       bool            `json:"approved"`
	AddedByAdmin   bool            `json:"addedByAdmin"`
	Submitter      *Contact        `json:"submitter,omitempty"`
	HealthRecords  []HealthRecord  `json:"healthRecords"`
	CreatedAt      time.Time       `json:"createdAt,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt,omitempty"`
}

// PetRequest is accepted on submit and update.
type PetRequest struct {
	Name           string          `json:"name"`
	Species        string          `json:"species"`
	Breed          string          `json:"breed"`
	Sex            string          `json:"sex"`
	AgeYears       int             `json:"ageYears"`
	Size           string          `json:"size"`
	Color          string          `json:"color"`
	Description    string          `json:"description"`
	Images         []string        `json:"images"`
	Price          decimal.Decimal `json:"price"`
	AdoptionStatus *string         `json:"adoptionStatus,omitempty"`
	Submitter      *Contact        `json:"submitter,omitempty"`
}

func (r PetRequest) attributes() domain.Attributes {
	return domain.Attributes{
		Name:        r.Name,
		Species:     domain.Species(r.Species),
		Breed:       r.Breed,
		Sex:         domain.Sex(r.Sex),
		AgeYears:    r.AgeYears,
		Size:        domain.Size(r.Size),
		Color:       r.Color,
		Description: r.Description,
		Images:      r.Images,
		Price:       r.Price,
	}
}

// ToSubmitInput maps a listing request.
func (r PetRequest) ToSubmitInput() ports.SubmitPetInput {
	in := ports.SubmitPetInput{Attributes: r.attributes()}
	if r.Submitter != nil {
		in.Submitter = domain.Contact{Name: r.Submitter.Name, Email: r.Submitter.Email, Phone: r.Submitter.Phone}
	}
	return in
}

// ToUpdateInput maps an update request.
func (r PetRequest) ToUpdateInput() ports.UpdatePetInput {
	in := ports.UpdatePetInput{Attributes: r.attributes()}
	if r.AdoptionStatus != nil {
		status := domain.AdoptionStatus(*r.AdoptionStatus)
		in.AdoptionStatus = &status
	}
	return in
}

// ToHealthRecordInput maps a health record payload.
func (h HealthRecord) ToHealthRecordInput() ports.HealthRecordInput {
	return ports.HealthRecordInput{
		VisitDate: h.VisitDate,
		VetName:   h.VetName,
		Type:      domain.HealthRecordType(h.Type),
		Notes:     h.Notes,
	}
}

// FromProjection maps a stored pet into its HTTP shape.
func FromProjection(p *ports.PetProjection) Pet {
	if p == nil || p.Entity == nil {
		return Pet{}
	}
	pet := p.Entity
	out := Pet{
		PetID:          pet.ID,
		Name:           pet.Name,
		Species:        string(pet.Species),
		Breed:          pet.Breed,
		Sex:            string(pet.Sex),
		AgeYears:       pet.AgeYears,
		Size:           string(pet.Size),
		Color:          pet.Color,
		Description:    pet.Description,
		Images:         append([]string{}, pet.Images...),
		Price:          pet.Price,
		AdoptionStatus: string(pet.AdoptionStatus),
		Approved:       pet.Approved,
		AddedByAdmin:   pet.AddedByAdmin,
		HealthRecords:  make([]HealthRecord, 0, len(pet.HealthRecords)),
		CreatedAt:      p.Metadata.CreatedAt,
		UpdatedAt:      p.Metadata.UpdatedAt,
	}
	if pet.Submitter != nil {
		out.Submitter = &Contact{Name: pet.Submitter.Name, Email: pet.Submitter.Email, Phone: pet.Submitter.Phone}
	}
	for _, rec := range pet.HealthRecords {
		out.HealthRecords = append(out.HealthRecords, HealthRecord{
			VisitDate: rec.VisitDate,
			VetName:   rec.VetName,
			Type:      string(rec.Type),
			Notes:     rec.Notes,
		})
	}
	return out
}

func FromProjections(list []*ports.PetProjection) []Pet {
	out := make([]Pet, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}

// ErrorMapper translates pets errors to problem details.
func ErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.FromError(sharederrors.ErrNotFound, err), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.FromError(sharederrors.ErrValidation, err), true
	case errors.Is(err, application.ErrConflict):
		return sharederrors.FromError(sharederrors.ErrConflict, err), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
