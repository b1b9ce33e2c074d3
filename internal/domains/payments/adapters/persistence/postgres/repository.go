package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/petcare-api/internal/domains/payments/domain"
	"github.com/Apurer/petcare-api/internal/domains/payments/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Models lists the payments tables for migrations.
func Models() []any {
	return []any{&paymentRecord{}}
}

// paymentRecord keeps the customer and item snapshots as JSON.
type paymentRecord struct {
	PaymentID     string              `gorm:"primaryKey;column:payment_id;size:36"`
	OrderID       string              `gorm:"column:order_id;size:32;uniqueIndex"`
	Email         string              `gorm:"column:email;size:320;index"`
	Amount        decimal.Decimal     `gorm:"column:amount;type:numeric(12,2)"`
	Currency      string              `gorm:"column:currency;size:3"`
	Method        string              `gorm:"column:method;size:32"`
	Status        string              `gorm:"column:status;size:16"`
	TransactionID *string             `gorm:"column:transaction_id;uniqueIndex"`
	PaymentDate   *time.Time          `gorm:"column:payment_date"`
	Customer      domain.CustomerInfo `gorm:"column:customer_info;serializer:json"`
	Items         []domain.Item       `gorm:"column:items;serializer:json"`
	Details       domain.Details      `gorm:"column:payment_details;serializer:json"`
	CreatedAt     time.Time           `gorm:"column:created_at;index"`
}

func (paymentRecord) TableName() string { return "payments" }

// Repository persists payments with GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, errors.New("payment is nil")
	}
	record := toRecord(payment)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrAlreadyPaid
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return r.first(ctx, "payment_id = ?", id)
}

func (r *Repository) FindByOrder(ctx context.Context, orderID string) (*domain.Payment, error) {
	return r.first(ctx, "order_id = ?", orderID)
}

func (r *Repository) List(ctx context.Context, email string) ([]*domain.Payment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&paymentRecord{})
	if email != "" {
		query = query.Where("LOWER(email) = LOWER(?)", email)
	}
	var records []paymentRecord
	if err := query.Order("created_at DESC").Order("payment_id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Payment, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r *Repository) first(ctx context.Context, query string, arg string) (*domain.Payment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record paymentRecord
	if err := r.db.WithContext(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres payment repository not configured")
	}
	return nil
}

func toRecord(p *domain.Payment) paymentRecord {
	record := paymentRecord{
		PaymentID:   p.ID,
		OrderID:     p.OrderID,
		Email:       p.Email,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Method:      string(p.Method),
		Status:      string(p.Status),
		PaymentDate: p.PaymentDate,
		Customer:    p.Customer,
		Items:       p.Items,
		Details:     p.Details,
		CreatedAt:   p.CreatedAt,
	}
	// NULL keeps the unique index from colliding on payments without a transaction.
	if p.TransactionID != "" {
		tx := p.TransactionID
		record.TransactionID = &tx
	}
	return record
}

func (r paymentRecord) toDomain() *domain.Payment {
	p := &domain.Payment{
		ID:          r.PaymentID,
		OrderID:     r.OrderID,
		Email:       r.Email,
		Amount:      r.Amount,
		Currency:    r.Currency,
		Method:      domain.Method(r.Method),
		Status:      domain.Status(r.Status),
		PaymentDate: r.PaymentDate,
		Customer:    r.Customer,
		Items:       r.Items,
		Details:     r.Details,
		CreatedAt:   r.CreatedAt,
	}
	if r.TransactionID != nil {
		p.TransactionID = *r.TransactionID
	}
	return p
}
