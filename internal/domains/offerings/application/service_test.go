package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petcare-api/internal/domains/offerings/adapters/memory"
	"github.com/Apurer/petcare-api/internal/domains/offerings/domain"
	"github.com/Apurer/petcare-api/internal/domains/offerings/ports"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

var (
	admin    = auth.Principal{Email: "admin@petcare.test", Role: auth.RoleAdmin}
	customer = auth.Principal{Email: "jane@petcare.test", Role: auth.RoleCustomer}
)

func TestCreate_AssignsServiceIDs(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	grooming, err := svc.Create(ctx, admin, ports.OfferingInput{Name: "Grooming", Price: decimal.NewFromInt(3500), Duration: "1 hour"})
	require.NoError(t, err)
	vet, err := svc.Create(ctx, admin, ports.OfferingInput{Name: "Vet check", Price: decimal.NewFromInt(2000)})
	require.NoError(t, err)

	require.Equal(t, "SRV0001", grooming.ID)
	require.Equal(t, "SRV0002", vet.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestCreate_RejectsCustomersAndBadPrices(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, customer, ports.OfferingInput{Name: "Grooming", Price: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, auth.ErrForbidden)

	_, err = svc.Create(ctx, admin, ports.OfferingInput{Name: "Grooming", Price: decimal.Zero})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestUpdateAndDelete(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()
	created, err := svc.Create(ctx, admin, ports.OfferingInput{Name: "Grooming", Price: decimal.NewFromInt(3500)})
	require.NoError(t, err)

	price := decimal.NewFromInt(4000)
	name := "  Full grooming "
	updated, err := svc.Update(ctx, admin, created.ID, ports.OfferingPatch{Name: &name, Price: &price})
	require.NoError(t, err)
	require.Equal(t, "Full grooming", updated.Name)
	require.True(t, price.Equal(updated.Price))

	require.NoError(t, svc.Delete(ctx, admin, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
