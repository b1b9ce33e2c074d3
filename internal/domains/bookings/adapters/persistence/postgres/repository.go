package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/petcare-api/internal/domains/bookings/domain"
	"github.com/Apurer/petcare-api/internal/domains/bookings/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Models lists the bookings tables for migrations.
func Models() []any {
	return []any{&bookingRecord{}}
}

type bookingRecord struct {
	BookingID string    `gorm:"primaryKey;column:booking_id;size:32"`
	ServiceID string    `gorm:"column:service_id;size:32;index"`
	UserEmail string    `gorm:"column:user_email;size:320;index"`
	Date      time.Time `gorm:"column:booking_date"`
	Notes     string    `gorm:"column:notes"`
	Status    string    `gorm:"column:status;size:16"`
	PaymentID string    `gorm:"column:payment_id;size:64"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingRecord) TableName() string { return "bookings" }

// Repository persists bookings with GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errors.New("booking is nil")
	}
	record := toRecord(booking)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errors.New("booking is nil")
	}
	record := toRecord(booking)
	result := r.db.WithContext(ctx).Model(&bookingRecord{}).
		Where("booking_id = ?", record.BookingID).
		Updates(map[string]any{
			"booking_date": record.Date,
			"notes":        record.Notes,
			"status":       record.Status,
			"payment_id":   record.PaymentID,
			"updated_at":   record.UpdatedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.BookingID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record bookingRecord
	if err := r.db.WithContext(ctx).First(&record, "booking_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, ownerEmail string) ([]*domain.Booking, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&bookingRecord{})
	if ownerEmail != "" {
		query = query.Where("LOWER(user_email) = LOWER(?)", ownerEmail)
	}
	var records []bookingRecord
	if err := query.Order("created_at DESC, booking_id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Booking, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&bookingRecord{}, "booking_id = ?", id)
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
		return errors.New("postgres booking repository not configured")
	}
	return nil
}

func toRecord(b *domain.Booking) bookingRecord {
	return bookingRecord{
		BookingID: b.ID,
		ServiceID: b.ServiceID,
		UserEmail: b.UserEmail,
		Date:      b.Date,
		Notes:     b.Notes,
		Status:    string(b.Status),
		PaymentID: b.PaymentID,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (r bookingRecord) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:        r.BookingID,
		ServiceID: r.ServiceID,
		UserEmail: r.UserEmail,
		Date:      r.Date,
		Notes:     r.Notes,
		Status:    domain.Status(r.Status),
		PaymentID: r.PaymentID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
