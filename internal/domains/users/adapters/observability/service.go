package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Apurer/petcare-api/internal/domains/users/domain"
	"github.com/Apurer/petcare-api/internal/domains/users/ports"
	platformobs "github.com/Apurer/petcare-api/internal/platform/observability"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

const tracerName = "github.com/Apurer/petcare-api/internal/domains/users/adapters/observability/service"

var (
	WithLogger = platformobs.WithLogger
	WithTracer = platformobs.WithTracer
	WithMeter  = platformobs.WithMeter
)

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner    ports.Service
	obs      *platformobs.Decorator
	created  metric.Int64Counter
	logins   metric.Int64Counter
	failures metric.Int64Counter
}

// New wraps the core user service.
func New(inner ports.Service, opts ...platformobs.Option) ports.Service {
	obs := platformobs.NewDecorator(tracerName, opts...)
	return &Service{
		inner:    inner,
		obs:      obs,
		created:  obs.Counter("users.service.created", "Number of users registered"),
		logins:   obs.Counter("users.service.logins", "Number of successful logins"),
		failures: obs.Counter("users.service.login_failures", "Number of rejected logins"),
	}
}

func (s *Service) Register(ctx context.Context, caller auth.Principal, input ports.RegisterInput) (*domain.User, error) {
	ctx, span := s.obs.Start(ctx, "UserService.Register", attribute.String("user.type", input.Type))
	defer span.End()

	user, err := s.inner.Register(ctx, caller, input)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to register user")
	}
	s.created.Add(ctx, 1, metric.WithAttributes(attribute.String("user.type", string(user.Role))))
	s.obs.Info(ctx, "user registered", slog.String("user.email", user.Email))
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (ports.LoginResult, error) {
	ctx, span := s.obs.Start(ctx, "UserService.Login")
	defer span.End()

	result, err := s.inner.Login(ctx, email, password)
	if err != nil {
		s.failures.Add(ctx, 1)
		return ports.LoginResult{}, s.obs.Fail(ctx, span, err, "login failed")
	}
	s.logins.Add(ctx, 1)
	return result, nil
}

func (s *Service) Logout(ctx context.Context, caller auth.Principal) error {
	ctx, span := s.obs.Start(ctx, "UserService.Logout")
	defer span.End()

	if err := s.inner.Logout(ctx, caller); err != nil {
		return s.obs.Fail(ctx, span, err, "logout failed")
	}
	return nil
}

// Authenticate runs on every request, so only failures are logged.
func (s *Service) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	ctx, span := s.obs.Start(ctx, "UserService.Authenticate")
	defer span.End()

	principal, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		return principal, s.obs.Fail(ctx, span, err, "token rejected")
	}
	span.SetAttributes(attribute.String("user.role", string(principal.Role)))
	return principal, nil
}

func (s *Service) Me(ctx context.Context, caller auth.Principal) (*domain.User, error) {
	ctx, span := s.obs.Start(ctx, "UserService.Me")
	defer span.End()

	user, err := s.inner.Me(ctx, caller)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to load current user")
	}
	return user, nil
}

func (s *Service) List(ctx context.Context, caller auth.Principal) ([]*domain.User, error) {
	ctx, span := s.obs.Start(ctx, "UserService.List")
	defer span.End()

	users, err := s.inner.List(ctx, caller)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("users.count", len(users)))
	return users, nil
}

func (s *Service) SetBlocked(ctx context.Context, caller auth.Principal, email string, blocked bool) (*domain.User, error) {
	ctx, span := s.obs.Start(ctx, "UserService.SetBlocked", attribute.Bool("user.blocked", blocked))
	defer span.End()

	user, err := s.inner.SetBlocked(ctx, caller, email, blocked)
	if err != nil {
		return nil, s.obs.Fail(ctx, span, err, "failed to change block status", slog.String("user.email", email))
	}
	s.obs.Info(ctx, "user block status changed", slog.String("user.email", user.Email), slog.Bool("blocked", blocked))
	return user, nil
}

func (s *Service) Delete(ctx context.Context, caller auth.Principal, email string) error {
	ctx, span := s.obs.Start(ctx, "UserService.Delete")
	defer span.End()

	if err := s.inner.Delete(ctx, caller, email); err != nil {
		return s.obs.Fail(ctx, span, err, "failed to delete user", slog.String("user.email", email))
	}
	s.obs.Info(ctx, "user deleted", slog.String("user.email", email))
	return nil
}

var _ ports.Service = (*Service)(nil)
