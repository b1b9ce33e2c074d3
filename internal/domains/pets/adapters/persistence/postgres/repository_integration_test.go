//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	petspostgres "github.com/Apurer/petcare-api/internal/domains/pets/adapters/persistence/postgres"
	"github.com/Apurer/petcare-api/internal/domains/pets/domain"
	"github.com/Apurer/petcare-api/internal/domains/pets/ports"
	"github.com/Apurer/petcare-api/internal/platform/postgres/pgtest"
)

func newPet(t *testing.T, name string) *domain.Pet {
	t.Helper()
	pet, err := domain.NewPet(domain.Attributes{
		Name:    name,
		Species: domain.SpeciesCat,
		Images:  []string{"https://img.petcare.test/" + name + ".jpg"},
		Price:   decimal.RequireFromString("15000.50"),
	})
	require.NoError(t, err)
	return pet
}

func TestPostgresRepository_CreateAndGet(t *testing.T) {
	repo := petspostgres.NewRepository(pgtest.Open(t))
	ctx := context.Background()

	pet := newPet(t, "Milo")
	require.NoError(t, pet.SubmitPublicly(domain.Contact{Name: "Sam", Email: "sam@petcare.test"}))
	require.NoError(t, pet.AddHealthRecord(domain.HealthRecord{
		VisitDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		VetName:   "Dr. Silva",
		Type:      domain.HealthVaccination,
	}))

	saved, err := repo.Create(ctx, pet)
	require.NoError(t, err)
	require.Equal(t, "PET0001", saved.Entity.ID)

	loaded, err := repo.GetByID(ctx, saved.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, "Milo", loaded.Entity.Name)
	require.True(t, decimal.RequireFromString("15000.50").Equal(loaded.Entity.Price))
	require.Equal(t, []string{"https://img.petcare.test/Milo.jpg"}, loaded.Entity.Images)
	require.Equal(t, "sam@petcare.test", loaded.Entity.Submitter.Email)
	require.Len(t, loaded.Entity.HealthRecords, 1)
	require.Equal(t, domain.HealthVaccination, loaded.Entity.HealthRecords[0].Type)

	approved := false
	pending, err := repo.List(ctx, ports.Filter{Approved: &approved})
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = repo.GetByID(ctx, "PET0404")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_MarkAdoptedOnlyOnce(t *testing.T) {
	repo := petspostgres.NewRepository(pgtest.Open(t))
	ctx := context.Background()

	saved, err := repo.Create(ctx, newPet(t, "Luna"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.MarkAdopted(ctx, saved.Entity.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, domain.ErrAlreadyAdopted)
	}
	require.Equal(t, 1, succeeded)

	require.NoError(t, repo.SetAdoptionStatus(ctx, saved.Entity.ID, domain.StatusAvailable))
	loaded, err := repo.GetByID(ctx, saved.Entity.ID)
	require.NoError(t, err)
	require.True(t, loaded.Entity.Available())
}

func TestPostgresRepository_ConcurrentCreatesGetUniqueIDs(t *testing.T) {
	repo := petspostgres.NewRepository(pgtest.Open(t))
	ctx := context.Background()

	const n = 10
	pet := newPet(t, "Kit")
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			saved, err := repo.Create(ctx, pet.Clone())
			if err != nil {
				ids <- "error: " + err.Error()
				return
			}
			ids <- saved.Entity.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		require.NotContains(t, id, "error")
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	require.Len(t, seen, n)
}
