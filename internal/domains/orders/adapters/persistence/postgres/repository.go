package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/petcare-api/internal/domains/orders/domain"
	"github.com/Apurer/petcare-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Models lists the orders tables for migrations.
func Models() []any {
	return []any{&orderRecord{}, &idempotencyRecord{}}
}

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord stores line snapshots as JSON since they never change after checkout.
type orderRecord struct {
	OrderID         string          `gorm:"primaryKey;column:order_id;size:32"`
	CustomerEmail   string          `gorm:"column:customer_email;index"`
	Lines           []domain.Line   `gorm:"column:lines;serializer:json"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	Status          string          `gorm:"column:status;type:varchar(16);index"`
	ShippingName    string          `gorm:"column:shipping_name"`
	ShippingAddress string          `gorm:"column:shipping_address"`
	ShippingPhone   string          `gorm:"column:shipping_phone"`
	PaymentID       string          `gorm:"column:payment_id"`
	CreatedAt       time.Time       `gorm:"column:created_at;index"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "order_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns orders newest first.
func (r *Repository) List(ctx context.Context, filter ports.Filter) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{})
	if filter.CustomerEmail != "" {
		query = query.Where("LOWER(customer_email) = LOWER(?)", filter.CustomerEmail)
	}
	var records []orderRecord
	if err := query.Order("created_at DESC").Order("order_id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// Update persists the mutable order fields: status and payment reference.
func (r *Repository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("order_id = ?", order.ID).
		Updates(map[string]any{
			"status":     string(order.Status),
			"payment_id": order.PaymentID,
			"updated_at": order.UpdatedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, order.ID)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, "order_id = ?", id)
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
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		OrderID:         order.ID,
		CustomerEmail:   order.CustomerEmail,
		Lines:           append([]domain.Line(nil), order.Lines...),
		Total:           order.Total,
		Status:          string(order.Status),
		ShippingName:    order.Shipping.Name,
		ShippingAddress: order.Shipping.Address,
		ShippingPhone:   order.Shipping.Phone,
		PaymentID:       order.PaymentID,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func (r *orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:            r.OrderID,
		CustomerEmail: r.CustomerEmail,
		Lines:         append([]domain.Line(nil), r.Lines...),
		Total:         r.Total,
		Status:        domain.Status(r.Status),
		Shipping: domain.Contact{
			Name:    r.ShippingName,
			Address: r.ShippingAddress,
			Phone:   r.ShippingPhone,
		},
		PaymentID: r.PaymentID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
