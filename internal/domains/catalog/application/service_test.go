package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petcare-api/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/petcare-api/internal/domains/catalog/domain"
	"github.com/Apurer/petcare-api/internal/domains/catalog/ports"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

var (
	admin    = auth.Principal{Email: "admin@petcare.test", Role: auth.RoleAdmin}
	customer = auth.Principal{Email: "jane@petcare.test", Role: auth.RoleCustomer}
)

func newCatalog() *Service {
	return NewService(memory.NewProductRepository(), memory.NewCategoryRepository())
}

func TestCreateProduct_AssignsSequentialIDs(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	first, err := svc.CreateProduct(ctx, admin, ports.ProductInput{Name: "Kibble", Price: decimal.NewFromInt(10), Stock: 5})
	require.NoError(t, err)
	second, err := svc.CreateProduct(ctx, admin, ports.ProductInput{Name: "Leash", Price: decimal.NewFromInt(4), Stock: 0})
	require.NoError(t, err)

	require.Equal(t, "PROD0001", first.ID)
	require.Equal(t, "PROD0002", second.ID)
	require.Equal(t, domain.ProductAvailable, first.Status)
	require.Equal(t, domain.ProductOutOfStock, second.Status)
}

func TestCreateProduct_RequiresAdmin(t *testing.T) {
	svc := newCatalog()
	_, err := svc.CreateProduct(context.Background(), customer, ports.ProductInput{Name: "Kibble", Price: decimal.NewFromInt(10)})
	require.ErrorIs(t, err, auth.ErrForbidden)

	_, err = svc.CreateProduct(context.Background(), auth.Anonymous, ports.ProductInput{Name: "Kibble", Price: decimal.NewFromInt(10)})
	require.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := newCatalog()
	_, err := svc.CreateProduct(context.Background(), admin, ports.ProductInput{Name: "Kibble", Price: decimal.Zero})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.CreateProduct(context.Background(), admin, ports.ProductInput{Name: "Kibble", Price: decimal.NewFromInt(1), CategoryID: "CAT0404"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestUpdateProduct_RestockingClearsOutOfStock(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()
	created, err := svc.CreateProduct(ctx, admin, ports.ProductInput{Name: "Collar", Price: decimal.NewFromInt(3)})
	require.NoError(t, err)
	require.Equal(t, domain.ProductOutOfStock, created.Status)

	stock := 8
	updated, err := svc.UpdateProduct(ctx, admin, created.ID, ports.ProductPatch{Stock: &stock})
	require.NoError(t, err)
	require.Equal(t, 8, updated.Stock)
	require.Equal(t, domain.ProductAvailable, updated.Status)
}

func TestCategories_UniqueNameAndDeleteGuard(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, admin, ports.CategoryInput{Name: "Food"})
	require.NoError(t, err)
	require.Equal(t, "CAT0001", cat.ID)

	_, err = svc.CreateCategory(ctx, admin, ports.CategoryInput{Name: "food"})
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.CreateProduct(ctx, admin, ports.ProductInput{Name: "Kibble", Price: decimal.NewFromInt(10), CategoryID: cat.ID, Stock: 1})
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, admin, cat.ID)
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, ErrCategoryInUse)

	err = svc.DeleteCategory(ctx, admin, "CAT0999")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestProductWithdraw_FlagsOutOfStock(t *testing.T) {
	repo := memory.NewProductRepository()
	ctx := context.Background()
	product, err := domain.NewProduct("Treats", "", "", decimal.NewFromFloat(2.5), 5, "")
	require.NoError(t, err)
	saved, err := repo.Create(ctx, product)
	require.NoError(t, err)

	after, err := repo.Withdraw(ctx, saved.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 2, after.Stock)

	_, err = repo.Withdraw(ctx, saved.ID, 3)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	after, err = repo.Withdraw(ctx, saved.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 0, after.Stock)
	require.Equal(t, domain.ProductOutOfStock, after.Status)
}

func TestProductRestock_ReturnsUnitsOnly(t *testing.T) {
	repo := memory.NewProductRepository()
	ctx := context.Background()
	product, err := domain.NewProduct("Treats", "", "", decimal.NewFromFloat(2.5), 2, "")
	require.NoError(t, err)
	saved, err := repo.Create(ctx, product)
	require.NoError(t, err)
	_, err = repo.Withdraw(ctx, saved.ID, 2)
	require.NoError(t, err)

	edited, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	edited.Name = "Crunchy Treats"
	_, err = repo.Update(ctx, edited)
	require.NoError(t, err)

	after, err := repo.Restock(ctx, saved.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, after.Stock)
	require.Equal(t, domain.ProductAvailable, after.Status)
	require.Equal(t, "Crunchy Treats", after.Name)

	_, err = repo.Restock(ctx, saved.ID, 0)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = repo.Restock(ctx, "PROD0404", 1)
	require.ErrorIs(t, err, ports.ErrNotFound)

	inactive, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NoError(t, inactive.SetStatus(domain.ProductInactive))
	_, err = repo.Update(ctx, inactive)
	require.NoError(t, err)
	after, err = repo.Restock(ctx, saved.ID, 1)
	require.NoError(t, err)
	require.Equal(t, domain.ProductInactive, after.Status)
}
