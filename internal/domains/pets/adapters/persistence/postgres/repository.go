package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/petcare-api/internal/domains/pets/domain"
	"github.com/Apurer/petcare-api/internal/domains/pets/ports"
	"github.com/Apurer/petcare-api/internal/platform/sequence"
	"github.com/Apurer/petcare-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Models lists the pets tables for migrations.
func Models() []any {
	return []any{&petRecord{}}
}

// Repository persists pets in PostgreSQL using GORM. It may be bound to a transaction.
type Repository struct {
	db        *gorm.DB
	allocator *sequence.Allocator
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, allocator: sequence.NewAllocator()}
}

type petRecord struct {
	PetID          string                `gorm:"primaryKey;column:pet_id;size:32"`
	Name           string                `gorm:"column:name"`
	Species        string                `gorm:"column:species;type:varchar(16);index"`
	Breed          string                `gorm:"column:breed"`
	Sex            string                `gorm:"column:sex;type:varchar(16)"`
	AgeYears       int                   `gorm:"column:age_years"`
	Size           string                `gorm:"column:size;type:varchar(16)"`
	Color          string                `gorm:"column:color"`
	Description    string                `gorm:"column:description"`
	Images         pq.StringArray        `gorm:"column:images;type:text[]"`
	Price          decimal.Decimal       `gorm:"column:price;type:numeric(12,2)"`
	AdoptionStatus string                `gorm:"column:adoption_status;type:varchar(16);index"`
	Approved       bool                  `gorm:"column:approved;index"`
	AddedByAdmin   bool                  `gorm:"column:added_by_admin"`
	SubmitterName  string                `gorm:"column:submitter_name"`
	SubmitterEmail string                `gorm:"column:submitter_email"`
	SubmitterPhone string                `gorm:"column:submitter_phone"`
	HealthRecords  []domain.HealthRecord `gorm:"column:health_records;serializer:json"`
	CreatedAt      time.Time             `gorm:"column:created_at"`
	UpdatedAt      time.Time             `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

// Create inserts a pet and allocates its identifier in the same transaction.
func (r *Repository) Create(ctx context.Context, pet *domain.Pet) (*ports.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := newPetRecord(pet)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if record.PetID == "" {
			id, err := r.allocator.Next(ctx, tx, sequence.Pets, sequence.Source{Table: "pets", Column: "pet_id"})
			if err != nil {
				return err
			}
			record.PetID = id
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return record.toProjection(), nil
}

// Update rewrites every mutable column of an existing pet.
func (r *Repository) Update(ctx context.Context, pet *domain.Pet) (*ports.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := newPetRecord(pet)
	result := r.db.WithContext(ctx).Model(&petRecord{}).
		Where("pet_id = ?", record.PetID).
		Select("*").Omit("pet_id", "created_at").
		Updates(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.PetID)
}

// GetByID fetches a pet by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*ports.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "pet_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// List returns pets matching filter ordered by identifier.
func (r *Repository) List(ctx context.Context, filter ports.Filter) ([]*ports.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&petRecord{})
	if filter.Approved != nil {
		query = query.Where("approved = ?", *filter.Approved)
	}
	if filter.AddedByAdmin != nil {
		query = query.Where("added_by_admin = ?", *filter.AddedByAdmin)
	}
	var records []petRecord
	if err := query.Order("pet_id").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*ports.PetProjection, 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

// Delete removes a pet.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&petRecord{}, "pet_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// MarkAdopted flips availability only if the row is still AVAILABLE.
func (r *Repository) MarkAdopted(ctx context.Context, id string) (*ports.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&petRecord{}).
		Where("pet_id = ? AND adoption_status = ?", id, string(domain.StatusAvailable)).
		Updates(map[string]any{
			"adoption_status": string(domain.StatusAdopted),
			"updated_at":      gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrAlreadyAdopted
	}
	return r.GetByID(ctx, id)
}

// SetAdoptionStatus overwrites the availability flag.
func (r *Repository) SetAdoptionStatus(ctx context.Context, id string, status domain.AdoptionStatus) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if status != domain.StatusAvailable && status != domain.StatusAdopted {
		return domain.ErrInvalidAdoptionStatus
	}
	result := r.db.WithContext(ctx).Model(&petRecord{}).
		Where("pet_id = ?", id).
		Updates(map[string]any{"adoption_status": string(status), "updated_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres pet repository not configured")
	}
	return nil
}

func newPetRecord(p *domain.Pet) petRecord {
	rec := petRecord{
		PetID:          p.ID,
		Name:           p.Name,
		Species:        string(p.Species),
		Breed:          p.Breed,
		Sex:            string(p.Sex),
		AgeYears:       p.AgeYears,
		Size:           string(p.Size),
		Color:          p.Color,
		Description:    p.Description,
		Images:         pq.StringArray(append([]string(nil), p.Images...)),
		Price:          p.Price,
		AdoptionStatus: string(p.AdoptionStatus),
		Approved:       p.Approved,
		AddedByAdmin:   p.AddedByAdmin,
		HealthRecords:  append([]domain.HealthRecord{}, p.HealthRecords...),
	}
	if p.Submitter != nil {
		rec.SubmitterName = p.Submitter.Name
		rec.SubmitterEmail = p.Submitter.Email
		rec.SubmitterPhone = p.Submitter.Phone
	}
	return rec
}

func (r *petRecord) toProjection() *ports.PetProjection {
	pet := &domain.Pet{
		ID:             r.PetID,
		Name:           r.Name,
		Species:        domain.Species(r.Species),
		Breed:          r.Breed,
		Sex:            domain.Sex(r.Sex),
		AgeYears:       r.AgeYears,
		Size:           domain.Size(r.Size),
		Color:          r.Color,
		Description:    r.Description,
		Images:         append([]string(nil), r.Images...),
		Price:          r.Price,
		AdoptionStatus: domain.AdoptionStatus(r.AdoptionStatus),
		Approved:       r.Approved,
		AddedByAdmin:   r.AddedByAdmin,
		HealthRecords:  append([]domain.HealthRecord(nil), r.HealthRecords...),
	}
	if r.SubmitterName != "" || r.SubmitterEmail != "" || r.SubmitterPhone != "" {
		pet.Submitter = &domain.Contact{Name: r.SubmitterName, Email: r.SubmitterEmail, Phone: r.SubmitterPhone}
	}
	return projection.Of(pet, projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt})
}
