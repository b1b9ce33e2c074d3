package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/petcare-api/internal/domains/users/domain"
	"github.com/Apurer/petcare-api/internal/domains/users/ports"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
	tokens   ports.TokenIssuer
	cost     int
	now      func() time.Time
}

func NewService(repo ports.Repository, sessions ports.SessionStore, tokens ports.TokenIssuer) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		tokens:   tokens,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// WithHashCost sets the bcrypt work factor. Values outside bcrypt's range are ignored.
func (s *Service) WithHashCost(cost int) {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		s.cost = cost
	}
}

func (s *Service) Register(ctx context.Context, caller auth.Principal, input ports.RegisterInput) (*domain.User, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, mapError(err)
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, mapError(err)
	}
	role, err := auth.ParseRole(input.Type)
	if err != nil {
		return nil, mapError(err)
	}
	if role == auth.RoleAdmin {
		if err := auth.Authorize(caller, auth.CapCreateAdmin); err != nil {
			return nil, err
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := domain.NewUser(input.Email, string(hash), role, input.Profile)
	if err != nil {
		return nil, mapError(err)
	}
	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (ports.LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return ports.LoginResult{}, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, ports.ErrNotFound) {
		return ports.LoginResult{}, mapError(ports.ErrInvalidCredentials)
	}
	if err != nil {
		return ports.LoginResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return ports.LoginResult{}, mapError(ports.ErrInvalidCredentials)
	}

	principal := user.Principal()
	principal.SessionID = uuid.NewString()
	token, expires, err := s.tokens.Issue(principal)
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	session := domain.Session{ID: principal.SessionID, Email: user.Email, ExpiresAt: expires, CreatedAt: s.now()}
	if err := s.sessions.Save(ctx, session); err != nil {
		return ports.LoginResult{}, fmt.Errorf("save session: %w", err)
	}
	return ports.LoginResult{Token: token, ExpiresAt: expires, User: user}, nil
}

func (s *Service) Logout(ctx context.Context, caller auth.Principal) error {
	if !caller.Authenticated() {
		return auth.ErrUnauthenticated
	}
	if caller.SessionID == "" {
		return nil
	}
	err := s.sessions.Delete(ctx, caller.SessionID)
	if errors.Is(err, ports.ErrSessionNotFound) {
		return nil
	}
	return err
}

func (s *Service) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	principal, err := s.tokens.Verify(token)
	if err != nil {
		return auth.Anonymous, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	if principal.SessionID == "" {
		return auth.Anonymous, mapError(ports.ErrSessionNotFound)
	}
	session, err := s.sessions.Get(ctx, principal.SessionID)
	if err != nil {
		return auth.Anonymous, mapError(err)
	}
	if session.Expired(s.now()) || !strings.EqualFold(session.Email, principal.Email) {
		return auth.Anonymous, mapError(ports.ErrSessionNotFound)
	}
	return principal, nil
}

func (s *Service) Me(ctx context.Context, caller auth.Principal) (*domain.User, error) {
	if !caller.Authenticated() {
		return nil, auth.ErrUnauthenticated
	}
	return s.repo.GetByEmail(ctx, domain.NormalizeEmail(caller.Email))
}

func (s *Service) List(ctx context.Context, caller auth.Principal) ([]*domain.User, error) {
	if err := auth.Authorize(caller, auth.CapManageUsers); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// SetBlocked blocks or unblocks an account. Blocking revokes the account's sessions.
func (s *Service) SetBlocked(ctx context.Context, caller auth.Principal, email string, blocked bool) (*domain.User, error) {
	if err := auth.Authorize(caller, auth.CapManageUsers); err != nil {
		return nil, err
	}
	user, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	user.SetBlocked(blocked, s.now())
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	if blocked {
		if err := s.sessions.DeleteByEmail(ctx, updated.Email); err != nil {
			return nil, fmt.Errorf("revoke sessions: %w", err)
		}
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, caller auth.Principal, email string) error {
	if err := auth.Authorize(caller, auth.CapManageUsers); err != nil {
		return err
	}
	email = domain.NormalizeEmail(email)
	if err := s.repo.Delete(ctx, email); err != nil {
		return err
	}
	return s.sessions.DeleteByEmail(ctx, email)
}

var _ ports.Service = (*Service)(nil)
