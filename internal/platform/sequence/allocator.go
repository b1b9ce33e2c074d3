package sequence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Source names the table and column holding identifiers already minted for a format.
// It seeds the counter the first time a sequence row is needed.
type Source struct {
	Table  string
	Column string
}

// Allocator hands out identifiers from the id_sequences table.
// Every call must run inside the transaction that inserts the identified row.
type Allocator struct{}

// NewAllocator returns a Postgres-backed allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

type sequenceRecord struct {
	Name      string    `gorm:"primaryKey;column:name;size:32"`
	Value     int64     `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sequenceRecord) TableName() string { return "id_sequences" }

// Models lists the tables owned by this package.
func Models() []any {
	return []any{&sequenceRecord{}}
}

// Next increments the counter for f and returns the formatted identifier.
// The UPDATE holds the row lock until tx commits, so concurrent callers queue behind it.
func (a *Allocator) Next(ctx context.Context, tx *gorm.DB, f Format, src Source) (string, error) {
	if tx == nil {
		return "", errors.New("sequence allocator requires a transaction")
	}
	value, ok, err := increment(ctx, tx, f)
	if err != nil {
		return "", err
	}
	if ok {
		return f.Format(value), nil
	}
	if err := seed(ctx, tx, f, src); err != nil {
		return "", err
	}
	value, ok, err = increment(ctx, tx, f)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("sequence %s missing after seeding", f.Name())
	}
	return f.Format(value), nil
}

func increment(ctx context.Context, tx *gorm.DB, f Format) (int64, bool, error) {
	var values []int64
	result := tx.WithContext(ctx).
		Raw("UPDATE id_sequences SET value = value + 1, updated_at = NOW() WHERE name = ? RETURNING value", f.Name()).
		Scan(&values)
	if result.Error != nil {
		return 0, false, result.Error
	}
	if len(values) == 0 {
		return 0, false, nil
	}
	return values[0], true, nil
}

func seed(ctx context.Context, tx *gorm.DB, f Format, src Source) error {
	var highest int64
	if src.Table != "" && src.Column != "" {
		var existing []string
		if err := tx.WithContext(ctx).Table(src.Table).
			Where(fmt.Sprintf("%s LIKE ?", src.Column), f.Prefix+"%").
			Pluck(src.Column, &existing).Error; err != nil {
			return err
		}
		h, err := f.Highest(existing)
		if err != nil {
			return err
		}
		highest = h
	}
	rec := sequenceRecord{Name: f.Name(), Value: highest, UpdatedAt: time.Now()}
	return tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec).Error
}
