package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/petcare-api/internal/domains/catalog/domain"
	"github.com/Apurer/petcare-api/internal/domains/catalog/ports"
	"github.com/Apurer/petcare-api/internal/platform/sequence"
)

var (
	_ ports.ProductRepository  = (*ProductRepository)(nil)
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
)

// Models lists the catalog tables for migrations.
func Models() []any {
	return []any{&categoryRecord{}, &productRecord{}}
}

type productRecord struct {
	ProductID   string          `gorm:"primaryKey;column:product_id;size:32"`
	Name        string          `gorm:"column:name"`
	Description string          `gorm:"column:description"`
	CategoryID  string          `gorm:"column:category_id;size:32;index"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Stock       int             `gorm:"column:stock;check:chk_products_stock,stock >= 0"`
	Image       string          `gorm:"column:image"`
	Status      string          `gorm:"column:status;type:varchar(16);index"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type categoryRecord struct {
	CategoryID  string    `gorm:"primaryKey;column:category_id;size:32"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Description string    `gorm:"column:description"`
	Status      string    `gorm:"column:status;type:varchar(16)"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

// ProductRepository persists products with GORM. It may be bound to a transaction.
type ProductRepository struct {
	db        *gorm.DB
	allocator *sequence.Allocator
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db, allocator: sequence.NewAllocator()}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toProductRecord(product)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if record.ProductID == "" {
			id, err := r.allocator.Next(ctx, tx, sequence.Products, sequence.Source{Table: "products", Column: "product_id"})
			if err != nil {
				return err
			}
			record.ProductID = id
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toProductRecord(product)
	result := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("product_id = ?", record.ProductID).
		Updates(map[string]any{
			"name":        record.Name,
			"description": record.Description,
			"category_id": record.CategoryID,
			"price":       record.Price,
			"stock":       record.Stock,
			"image":       record.Image,
			"status":      record.Status,
			"updated_at":  gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ProductID)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "product_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("product_id").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, "product_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&productRecord{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}

// Withdraw runs a conditional decrement so two concurrent orders cannot drive stock below zero.
func (r *ProductRepository) Withdraw(ctx context.Context, id string, quantity int) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("product_id = ? AND stock >= ?", id, quantity).
		Updates(map[string]any{
			"stock": gorm.Expr("stock - ?", quantity),
			"status": gorm.Expr("CASE WHEN stock - ? = 0 AND status <> ? THEN ? ELSE status END",
				quantity, string(domain.ProductInactive), string(domain.ProductOutOfStock)),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrInsufficientStock
	}
	return r.GetByID(ctx, id)
}

// Restock adds units back with a relative update so concurrent edits to other fields survive.
func (r *ProductRepository) Restock(ctx context.Context, id string, quantity int) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("product_id = ?", id).
		Updates(map[string]any{
			"stock": gorm.Expr("stock + ?", quantity),
			"status": gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END",
				string(domain.ProductOutOfStock), string(domain.ProductAvailable)),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

// CategoryRepository persists categories with GORM.
type CategoryRepository struct {
	db        *gorm.DB
	allocator *sequence.Allocator
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db, allocator: sequence.NewAllocator()}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.New("category is nil")
	}
	record := toCategoryRecord(category)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if record.CategoryID == "" {
			id, err := r.allocator.Next(ctx, tx, sequence.Categories, sequence.Source{Table: "categories", Column: "category_id"})
			if err != nil {
				return err
			}
			record.CategoryID = id
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateCategory
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.New("category is nil")
	}
	record := toCategoryRecord(category)
	result := r.db.WithContext(ctx).Model(&categoryRecord{}).
		Where("category_id = ?", record.CategoryID).
		Updates(map[string]any{
			"name":        record.Name,
			"description": record.Description,
			"status":      record.Status,
			"updated_at":  gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateCategory
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.CategoryID)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record categoryRecord
	if err := r.db.WithContext(ctx).First(&record, "category_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []categoryRecord
	if err := r.db.WithContext(ctx).Order("category_id").Find(&records).Error; err != nil {
		return nil, err
	}
	categories := make([]*domain.Category, 0, len(records))
	for i := range records {
		categories = append(categories, records[i].toDomain())
	}
	return categories, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&categoryRecord{}, "category_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres category repository not configured")
	}
	return nil
}

func toProductRecord(p *domain.Product) productRecord {
	return productRecord{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Stock:       p.Stock,
		Image:       p.Image,
		Status:      string(p.Status),
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ProductID,
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Price:       r.Price,
		Stock:       r.Stock,
		Image:       r.Image,
		Status:      domain.ProductStatus(r.Status),
	}
}

func toCategoryRecord(c *domain.Category) categoryRecord {
	return categoryRecord{
		CategoryID:  c.ID,
		Name:        c.Name,
		Description: c.Description,
		Status:      string(c.Status),
	}
}

func (r categoryRecord) toDomain() *domain.Category {
	return &domain.Category{
		ID:          r.CategoryID,
		Name:        r.Name,
		Description: r.Description,
		Status:      domain.CategoryStatus(r.Status),
	}
}
