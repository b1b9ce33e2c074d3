package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/petcare-api/internal/domains/adoptions/domain"
	"github.com/Apurer/petcare-api/internal/domains/adoptions/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Models lists the adoptions tables for migrations.
func Models() []any {
	return []any{&requestRecord{}}
}

type requestRecord struct {
	ID              string     `gorm:"primaryKey;column:adoption_id;size:26"`
	PetID           string     `gorm:"column:pet_id;size:32;index"`
	UserEmail       string     `gorm:"column:user_email;size:320;index"`
	AlternateEmail  string     `gorm:"column:alternate_email"`
	FullName        string     `gorm:"column:full_name"`
	Phone           string     `gorm:"column:phone"`
	Address         string     `gorm:"column:address"`
	Age             int        `gorm:"column:age"`
	HomeEnvironment string     `gorm:"column:home_environment"`
	Experience      string     `gorm:"column:experience"`
	Status          string     `gorm:"column:adoption_status;size:16;index"`
	RejectionReason string     `gorm:"column:rejection_reason"`
	ApplyDate       time.Time  `gorm:"column:apply_date"`
	AdoptionDate    *time.Time `gorm:"column:adoption_date"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (requestRecord) TableName() string { return "adoption_requests" }

// Repository persists adoption requests with GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, req *domain.Request) (*domain.Request, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errors.New("adoption request is nil")
	}
	record := toRecord(req)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, req *domain.Request) (*domain.Request, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errors.New("adoption request is nil")
	}
	record := toRecord(req)
	result := r.db.WithContext(ctx).Model(&requestRecord{}).
		Where("adoption_id = ?", record.ID).
		Select("*").Omit("adoption_id", "apply_date").
		Updates(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record requestRecord
	if err := r.db.WithContext(ctx).First(&record, "adoption_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, filter ports.Filter) ([]*domain.Request, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&requestRecord{})
	if filter.UserEmail != "" {
		query = query.Where("LOWER(user_email) = LOWER(?)", filter.UserEmail)
	}
	if filter.PetID != "" {
		query = query.Where("pet_id = ?", filter.PetID)
	}
	if filter.ExcludeID != "" {
		query = query.Where("adoption_id <> ?", filter.ExcludeID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query = query.Where("adoption_status IN ?", statuses)
	}
	var records []requestRecord
	if err := query.Order("apply_date, adoption_id").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Request, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&requestRecord{}, "adoption_id = ?", id)
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
		return errors.New("postgres adoption repository not configured")
	}
	return nil
}

func toRecord(req *domain.Request) requestRecord {
	return requestRecord{
		ID:              req.ID,
		PetID:           req.PetID,
		UserEmail:       req.UserEmail,
		AlternateEmail:  req.AlternateEmail,
		FullName:        req.PersonalInfo.FullName,
		Phone:           req.PersonalInfo.Phone,
		Address:         req.PersonalInfo.Address,
		Age:             req.PersonalInfo.Age,
		HomeEnvironment: req.HomeEnvironment,
		Experience:      req.Experience,
		Status:          string(req.Status),
		RejectionReason: req.RejectionReason,
		ApplyDate:       req.ApplyDate,
		AdoptionDate:    req.AdoptionDate,
		UpdatedAt:       req.UpdatedAt,
	}
}

func (r requestRecord) toDomain() *domain.Request {
	return &domain.Request{
		ID:             r.ID,
		PetID:          r.PetID,
		UserEmail:      r.UserEmail,
		AlternateEmail: r.AlternateEmail,
		PersonalInfo: domain.PersonalInfo{
			FullName: r.FullName,
			Phone:    r.Phone,
			Address:  r.Address,
			Age:      r.Age,
		},
		HomeEnvironment: r.HomeEnvironment,
		Experience:      r.Experience,
		Status:          domain.Status(r.Status),
		RejectionReason: r.RejectionReason,
		ApplyDate:       r.ApplyDate,
		AdoptionDate:    r.AdoptionDate,
		UpdatedAt:       r.UpdatedAt,
	}
}
