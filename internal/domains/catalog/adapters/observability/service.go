package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Apurer/petcare-api/internal/domains/catalog/domain"
	"github.com/Apurer/petcare-api/internal/domains/catalog/ports"
	platformobs "github.com/Apurer/petcare-api/internal/platform/observability"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

const tracerName = "github.com/Apurer/petcare-api/internal/domains/catalog/adapters/observability/service"

var (
	WithLogger = platformobs.WithLogger
	WithTracer = platformobs.WithTracer
	WithMeter  = platformobs.WithMeter
)

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	obs     *platformobs.Decorator
	changes metric.Int64Counter
}

// New wraps the core catalog service.
func New(inner ports.Service, opts ...platformobs.Option) ports.Service {
	obs := platformobs.NewDecorator(tracerName, opts...)
	return &Service{
		inner:   inner,
		obs:     obs,
		changes: obs.Counter("catalog.service.changes", "Number of catalog writes"),
	}
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := s.obs.Start(ctx, "CatalogService.ListProducts")
	defer span.End()

	result, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("catalog.products.count", len(result)))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := s.obs.Start(ctx, "CatalogService.GetProduct", attribute.String("product.id", id))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to load product", slog.String("product.id", id))
	}
	return result, nil
}

func (s *Service) CreateProduct(ctx context.Context, caller auth.Principal, input ports.ProductInput) (*domain.Product, error) {
	ctx, span := s.obs.Start(ctx, "CatalogService.CreateProduct", attribute.String("product.name", input.Name))
	defer span.End()

	s.obs.Info(ctx, "creating product", slog.String("product.name", input.Name))
	result, err := s.inner.CreateProduct(ctx, caller, input)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to create product", slog.String("product.name", input.Name))
	}
	s.record(ctx, "product.created")
	s.obs.Info(ctx, "product created", slog.String("product.id", result.ID))
	return result, nil
}

func (s *Service) UpdateProduct(ctx context.Context, caller auth.Principal, id string, patch ports.ProductPatch) (*domain.Product, error) {
	ctx, span := s.obs.Start(ctx, "CatalogService.UpdateProduct", attribute.String("product.id", id))
	defer span.End()

	result, err := s.inner.UpdateProduct(ctx, caller, id, patch)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to update product", slog.String("product.id", id))
	}
	s.record(ctx, "product.updated")
	s.obs.Info(ctx, "product updated", slog.String("product.id", id), slog.Int("product.stock", result.Stock))
	return result, nil
}

func (s *Service) DeleteProduct(ctx context.Context, caller auth.Principal, id string) error {
	ctx, span := s.obs.Start(ctx, "CatalogService.DeleteProduct", attribute.String("product.id", id))
	defer span.End()

	if err := s.inner.DeleteProduct(ctx, caller, id); err != nil {
		return s.obs.Fail(ctx, span, err, "failed to delete product", slog.String("product.id", id))
	}
	s.record(ctx, "product.deleted")
	s.obs.Info(ctx, "product deleted", slog.String("product.id", id))
	return nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	ctx, span := s.obs.Start(ctx, "CatalogService.ListCategories")
	defer span.End()

	result, err := s.inner.ListCategories(ctx)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to list categories")
	}
	return result, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	ctx, span := s.obs.Start(ctx, "CatalogService.GetCategory", attribute.String("category.id", id))
	defer span.End()

	result, err := s.inner.GetCategory(ctx, id)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to load category", slog.String("category.id", id))
	}
	return result, nil
}

func (s *Service) CreateCategory(ctx context.Context, caller auth.Principal, input ports.CategoryInput) (*domain.Category, error) {
	ctx, span := s.obs.Start(ctx, "CatalogService.CreateCategory", attribute.String("category.name", input.Name))
	defer span.End()

	result, err := s.inner.CreateCategory(ctx, caller, input)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to create category", slog.String("category.name", input.Name))
	}
	s.record(ctx, "category.created")
	s.obs.Info(ctx, "category created", slog.String("category.id", result.ID))
	return result, nil
}

func (s *Service) UpdateCategory(ctx context.Context, caller auth.Principal, id string, patch ports.CategoryPatch) (*domain.Category, error) {
	ctx, span := s.obs.Start(ctx, "CatalogService.UpdateCategory", attribute.String("category.id", id))
	defer span.End()

	result, err := s.inner.UpdateCategory(ctx, caller, id, patch)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to update category", slog.String("category.id", id))
	}
	s.record(ctx, "category.updated")
	return result, nil
}

func (s *Service) DeleteCategory(ctx context.Context, caller auth.Principal, id string) error {
	ctx, span := s.obs.Start(ctx, "CatalogService.DeleteCategory", attribute.String("category.id", id))
	defer span.End()

	if err := s.inner.DeleteCategory(ctx, caller, id); err != nil {
		return s.obs.Fail(ctx, span, err, "failed to delete category", slog.String("category.id", id))
	}
	s.record(ctx, "category.deleted")
	s.obs.Info(ctx, "category deleted", slog.String("category.id", id))
	return nil
}

func (s *Service) record(ctx context.Context, change string) {
	s.changes.Add(ctx, 1, metric.WithAttributes(attribute.String("catalog.change", change)))
}

var _ ports.Service = (*Service)(nil)
