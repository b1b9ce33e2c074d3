package ports

import (
	"context"
	"time"

	"github.com/Apurer/petcare-api/internal/domains/users/domain"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// RegisterInput carries a sign-up request. Type defaults to customer.
type RegisterInput struct {
	Email    string
	Password string
	Type     string
	domain.Profile
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(p auth.Principal) (string, time.Time, error)
	Verify(raw string) (auth.Principal, error)
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, caller auth.Principal, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Logout(ctx context.Context, caller auth.Principal) error
	// Authenticate verifies a bearer token and checks that its session is still live.
	Authenticate(ctx context.Context, token string) (auth.Principal, error)
	Me(ctx context.Context, caller auth.Principal) (*domain.User, error)
	List(ctx context.Context, caller auth.Principal) ([]*domain.User, error)
	SetBlocked(ctx context.Context, caller auth.Principal, email string, blocked bool) (*domain.User, error)
	Delete(ctx context.Context, caller auth.Principal, email string) error
}
