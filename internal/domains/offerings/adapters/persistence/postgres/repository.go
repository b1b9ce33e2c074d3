package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/petcare-api/internal/domains/offerings/domain"
	"github.com/Apurer/petcare-api/internal/domains/offerings/ports"
	"github.com/Apurer/petcare-api/internal/platform/sequence"
)

var _ ports.Repository = (*Repository)(nil)

// Models lists the offerings tables for migrations.
func Models() []any {
	return []any{&offeringRecord{}}
}

type offeringRecord struct {
	ServiceID   string          `gorm:"primaryKey;column:service_id;size:32"`
	Name        string          `gorm:"column:name"`
	Category    string          `gorm:"column:category"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Duration    string          `gorm:"column:duration"`
	Image       string          `gorm:"column:image"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (offeringRecord) TableName() string { return "services" }

// Repository persists offerings with GORM.
type Repository struct {
	db        *gorm.DB
	allocator *sequence.Allocator
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, allocator: sequence.NewAllocator()}
}

func (r *Repository) Create(ctx context.Context, offering *domain.Offering) (*domain.Offering, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if offering == nil {
		return nil, errors.New("offering is nil")
	}
	record := toRecord(offering)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if record.ServiceID == "" {
			id, err := r.allocator.Next(ctx, tx, sequence.Offerings, sequence.Source{Table: "services", Column: "service_id"})
			if err != nil {
				return err
			}
			record.ServiceID = id
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, offering *domain.Offering) (*domain.Offering, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if offering == nil {
		return nil, errors.New("offering is nil")
	}
	record := toRecord(offering)
	result := r.db.WithContext(ctx).Model(&offeringRecord{}).
		Where("service_id = ?", record.ServiceID).
		Updates(map[string]any{
			"name":        record.Name,
			"category":    record.Category,
			"description": record.Description,
			"price":       record.Price,
			"duration":    record.Duration,
			"image":       record.Image,
			"updated_at":  gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ServiceID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Offering, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record offeringRecord
	if err := r.db.WithContext(ctx).First(&record, "service_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Offering, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []offeringRecord
	if err := r.db.WithContext(ctx).Order("service_id").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Offering, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&offeringRecord{}, "service_id = ?", id)
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
		return errors.New("postgres offering repository not configured")
	}
	return nil
}

func toRecord(o *domain.Offering) offeringRecord {
	return offeringRecord{
		ServiceID:   o.ID,
		Name:        o.Name,
		Category:    o.Category,
		Description: o.Description,
		Price:       o.Price,
		Duration:    o.Duration,
		Image:       o.Image,
	}
}

func (r *offeringRecord) toDomain() *domain.Offering {
	return &domain.Offering{
		ID:          r.ServiceID,
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Price:       r.Price,
		Duration:    r.Duration,
		Image:       r.Image,
	}
}
