// Package migrations creates the PostgreSQL schema of every bounded context.
package migrations

import (
	"fmt"

	"gorm.io/gorm"

	adoptionspostgres "github.com/Apurer/petcare-api/internal/domains/adoptions/adapters/persistence/postgres"
	bookingspostgres "github.com/Apurer/petcare-api/internal/domains/bookings/adapters/persistence/postgres"
	catalogpostgres "github.com/Apurer/petcare-api/internal/domains/catalog/adapters/persistence/postgres"
	offeringspostgres "github.com/Apurer/petcare-api/internal/domains/offerings/adapters/persistence/postgres"
	orderspostgres "github.com/Apurer/petcare-api/internal/domains/orders/adapters/persistence/postgres"
	paymentspostgres "github.com/Apurer/petcare-api/internal/domains/payments/adapters/persistence/postgres"
	petspostgres "github.com/Apurer/petcare-api/internal/domains/pets/adapters/persistence/postgres"
	userspostgres "github.com/Apurer/petcare-api/internal/domains/users/adapters/persistence/postgres"
	"github.com/Apurer/petcare-api/internal/platform/sequence"
)

// Models lists every table, sequence counters first.
func Models() []any {
	groups := [][]any{
		sequence.Models(),
		catalogpostgres.Models(),
		petspostgres.Models(),
		offeringspostgres.Models(),
		orderspostgres.Models(),
		userspostgres.Models(),
		adoptionspostgres.Models(),
		bookingspostgres.Models(),
		paymentspostgres.Models(),
	}
	var out []any
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Run applies the schema. A nil db is a no-op so in-memory runs can call it unconditionally.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
