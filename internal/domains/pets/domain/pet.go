package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AdoptionStatus tells whether a pet can still be ordered or adopted.
type AdoptionStatus string

const (
	StatusAvailable AdoptionStatus = "AVAILABLE"
	StatusAdopted   AdoptionStatus = "ADOPTED"
)

type Species string

const (
	SpeciesDog   Species = "Dog"
	SpeciesCat   Species = "Cat"
	SpeciesFish  Species = "Fish"
	SpeciesBird  Species = "Bird"
	SpeciesOther Species = "Other"
)

type Sex string

const (
	SexMale    Sex = "Male"
	SexFemale  Sex = "Female"
	SexUnknown Sex = "Unknown"
)

type Size string

const (
	SizeSmall   Size = "Small"
	SizeMedium  Size = "Medium"
	SizeLarge   Size = "Large"
	SizeGiant   Size = "Giant"
	SizeUnknown Size = "Unknown"
)

type HealthRecordType string

const (
	HealthCheckup     HealthRecordType = "Checkup"
	HealthVaccination HealthRecordType = "Vaccination"
	HealthSurgery     HealthRecordType = "Surgery"
	HealthMedication  HealthRecordType = "Medication"
	HealthOther       HealthRecordType = "Other"
)

// MinPrice is the lowest price a pet may be listed at.
var MinPrice = decimal.NewFromInt(1)

var (
	ErrEmptyName             = errors.New("pet name is required")
	ErrEmptyImages           = errors.New("at least one image is required")
	ErrInvalidSpecies        = errors.New("species must be Dog, Cat, Fish, Bird or Other")
	ErrInvalidSex            = errors.New("sex must be Male, Female or Unknown")
	ErrInvalidSize           = errors.New("size must be Small, Medium, Large, Giant or Unknown")
	ErrNegativeAge           = errors.New("age cannot be negative")
	ErrInvalidPrice          = errors.New("price must be at least 1")
	ErrInvalidAdoptionStatus = errors.New("adoption status is invalid")
	ErrAlreadyAdopted        = errors.New("pet is already adopted")
	ErrMissingSubmitter      = errors.New("submitter name and email or phone are required")
	ErrInvalidHealthRecord   = errors.New("health record needs a visit date, vet name and valid type")
	ErrHealthRecordIndex     = errors.New("health record index out of range")
	ErrAlreadyApproved       = errors.New("pet is already approved")
)

// Contact identifies whoever submitted a pet for listing.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// HealthRecord is one veterinary visit.
type HealthRecord struct {
	VisitDate time.Time        `json:"visitDate"`
	VetName   string           `json:"vetName"`
	Type      HealthRecordType `json:"type"`
	Notes     string           `json:"notes,omitempty"`
}

// Pet is the aggregate managed by the pets bounded context.
type Pet struct {
	ID             string
	Name           string
	Species        Species
	Breed          string
	Sex            Sex
	AgeYears       int
	Size           Size
	Color          string
	Description    string
	Images         []string
	Price          decimal.Decimal
	AdoptionStatus AdoptionStatus
	Approved       bool
	AddedByAdmin   bool
	Submitter      *Contact
	HealthRecords  []HealthRecord
}

// Attributes groups the descriptive fields supplied by callers.
type Attributes struct {
	Name        string
	Species     Species
	Breed       string
	Sex         Sex
	AgeYears    int
	Size        Size
	Color       string
	Description string
	Images      []string
	Price       decimal.Decimal
}

// NewPet builds an available pet from attributes.
func NewPet(attrs Attributes) (*Pet, error) {
	p := &Pet{AdoptionStatus: StatusAvailable}
	p.Apply(attrs)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply copies attrs onto the pet, defaulting sex and size to Unknown.
func (p *Pet) Apply(attrs Attributes) {
	p.Name = strings.TrimSpace(attrs.Name)
	p.Species = attrs.Species
	p.Breed = strings.TrimSpace(attrs.Breed)
	p.Sex = attrs.Sex
	if p.Sex == "" {
		p.Sex = SexUnknown
	}
	p.AgeYears = attrs.AgeYears
	p.Size = attrs.Size
	if p.Size == "" {
		p.Size = SizeUnknown
	}
	p.Color = strings.TrimSpace(attrs.Color)
	p.Description = strings.TrimSpace(attrs.Description)
	p.Images = cleanImages(attrs.Images)
	p.Price = attrs.Price
}

// Validate enforces the pet invariants.
func (p *Pet) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	switch p.Species {
	case SpeciesDog, SpeciesCat, SpeciesFish, SpeciesBird, SpeciesOther:
	default:
		return ErrInvalidSpecies
	}
	switch p.Sex {
	case SexMale, SexFemale, SexUnknown:
	default:
		return ErrInvalidSex
	}
	switch p.Size {
	case SizeSmall, SizeMedium, SizeLarge, SizeGiant, SizeUnknown:
	default:
		return ErrInvalidSize
	}
	if p.AgeYears < 0 {
		return ErrNegativeAge
	}
	if len(p.Images) == 0 {
		return ErrEmptyImages
	}
	if p.Price.LessThan(MinPrice) {
		return ErrInvalidPrice
	}
	switch p.AdoptionStatus {
	case StatusAvailable, StatusAdopted:
	default:
		return ErrInvalidAdoptionStatus
	}
	return nil
}

// Available reports whether the pet can still be ordered or adopted.
func (p *Pet) Available() bool {
	return p.AdoptionStatus == StatusAvailable
}

// MarkAdopted flips an available pet to adopted.
func (p *Pet) MarkAdopted() error {
	if !p.Available() {
		return ErrAlreadyAdopted
	}
	p.AdoptionStatus = StatusAdopted
	return nil
}

// SetAdoptionStatus applies a status chosen by an administrator or adoption workflow.
func (p *Pet) SetAdoptionStatus(status AdoptionStatus) error {
	switch status {
	case StatusAvailable, StatusAdopted:
		p.AdoptionStatus = status
		return nil
	default:
		return ErrInvalidAdoptionStatus
	}
}

// ListAsAdmin marks the pet approved and admin-added.
func (p *Pet) ListAsAdmin() {
	p.Approved = true
	p.AddedByAdmin = true
	p.Submitter = nil
}

// SubmitPublicly attaches the submitter contact and leaves the pet pending approval.
func (p *Pet) SubmitPublicly(contact Contact) error {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Email = strings.TrimSpace(contact.Email)
	contact.Phone = strings.TrimSpace(contact.Phone)
	if contact.Name == "" || (contact.Email == "" && contact.Phone == "") {
		return ErrMissingSubmitter
	}
	p.Approved = false
	p.AddedByAdmin = false
	p.Submitter = &contact
	return nil
}

// Approve publishes a pending pet.
func (p *Pet) Approve() {
	p.Approved = true
}

// AddHealthRecord appends a validated record.
func (p *Pet) AddHealthRecord(rec HealthRecord) error {
	rec.VetName = strings.TrimSpace(rec.VetName)
	rec.Notes = strings.TrimSpace(rec.Notes)
	if rec.Type == "" {
		rec.Type = HealthCheckup
	}
	if rec.VisitDate.IsZero() || rec.VetName == "" {
		return ErrInvalidHealthRecord
	}
	switch rec.Type {
	case HealthCheckup, HealthVaccination, HealthSurgery, HealthMedication, HealthOther:
	default:
		return ErrInvalidHealthRecord
	}
	p.HealthRecords = append(p.HealthRecords, rec)
	return nil
}

// RemoveHealthRecord drops the record at index.
func (p *Pet) RemoveHealthRecord(index int) error {
	if index < 0 || index >= len(p.HealthRecords) {
		return ErrHealthRecordIndex
	}
	p.HealthRecords = append(p.HealthRecords[:index:index], p.HealthRecords[index+1:]...)
	return nil
}

// Clone returns a deep copy.
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Images = append([]string(nil), p.Images...)
	clone.HealthRecords = append([]HealthRecord(nil), p.HealthRecords...)
	if p.Submitter != nil {
		contact := *p.Submitter
		clone.Submitter = &contact
	}
	return &clone
}

func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}
