package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/petcare-api/internal/domains/users/adapters/memory"
	"github.com/Apurer/petcare-api/internal/domains/users/domain"
	"github.com/Apurer/petcare-api/internal/domains/users/ports"
	"github.com/Apurer/petcare-api/internal/platform/tokens"
	"github.com/Apurer/petcare-api/internal/shared/auth"
)

var adminCaller = auth.Principal{Email: "root@petcare.test", Role: auth.RoleAdmin}

type fixture struct {
	svc      *Service
	repo     *memory.Repository
	sessions *memory.SessionStore
	tokens   *tokens.Manager
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	manager, err := tokens.NewManager("test-secret", "petcare", "petcare-web", time.Hour)
	require.NoError(t, err)
	f := &fixture{
		repo:     memory.NewRepository(),
		sessions: memory.NewSessionStore(),
		tokens:   manager,
		now:      time.Now().UTC(),
	}
	f.svc = NewService(f.repo, f.sessions, manager)
	f.svc.WithHashCost(bcrypt.MinCost)
	f.svc.WithClock(func() time.Time { return f.now })
	return f
}

func (f *fixture) register(t *testing.T, email, password string) *domain.User {
	t.Helper()
	user, err := f.svc.Register(context.Background(), auth.Anonymous, ports.RegisterInput{
		Email:    email,
		Password: password,
		Profile:  domain.Profile{FirstName: "Jane", LastName: "Perera"},
	})
	require.NoError(t, err)
	return user
}

func TestRegister_HashesPasswordAndDefaultsToCustomer(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, " Jane@PetCare.test ", "secret")

	require.Equal(t, "jane@petcare.test", user.Email)
	require.Equal(t, auth.RoleCustomer, user.Role)
	require.NotEqual(t, "secret", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	cases := map[string]struct {
		input ports.RegisterInput
		want  error
	}{
		"missing email":  {ports.RegisterInput{Password: "secret"}, domain.ErrEmptyEmail},
		"no at sign":     {ports.RegisterInput{Email: "jane.petcare.test", Password: "secret"}, domain.ErrInvalidEmail},
		"short password": {ports.RegisterInput{Email: "jane@petcare.test", Password: "abc"}, domain.ErrWeakPassword},
		"unknown type":   {ports.RegisterInput{Email: "jane@petcare.test", Password: "secret", Type: "vet"}, auth.ErrUnknownRole},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Register(context.Background(), auth.Anonymous, tc.input)
			require.ErrorIs(t, err, ErrInvalidInput)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@petcare.test", "secret")

	_, err := f.svc.Register(context.Background(), auth.Anonymous, ports.RegisterInput{Email: "JANE@petcare.test", Password: "another"})
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestRegister_AdminRequiresAdminCaller(t *testing.T) {
	f := newFixture(t)
	input := ports.RegisterInput{Email: "ops@petcare.test", Password: "secret", Type: "admin"}

	_, err := f.svc.Register(context.Background(), auth.Anonymous, input)
	require.ErrorIs(t, err, auth.ErrUnauthenticated)

	_, err = f.svc.Register(context.Background(), auth.Principal{Email: "c@petcare.test", Role: auth.RoleCustomer}, input)
	require.ErrorIs(t, err, auth.ErrForbidden)

	created, err := f.svc.Register(context.Background(), adminCaller, input)
	require.NoError(t, err)
	require.Equal(t, auth.RoleAdmin, created.Role)
}

func TestLogin_IssuesTokenBackedBySession(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@petcare.test", "secret")

	result, err := f.svc.Login(context.Background(), "JANE@petcare.test", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "jane@petcare.test", result.User.Email)

	claims, err := f.tokens.Verify(result.Token)
	require.NoError(t, err)
	require.NotEmpty(t, claims.SessionID)
	require.Equal(t, "Jane", claims.FirstName)

	session, err := f.sessions.Get(context.Background(), claims.SessionID)
	require.NoError(t, err)
	require.Equal(t, "jane@petcare.test", session.Email)
	require.Equal(t, result.ExpiresAt, session.ExpiresAt)

	principal, err := f.svc.Authenticate(context.Background(), result.Token)
	require.NoError(t, err)
	require.Equal(t, auth.RoleCustomer, principal.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@petcare.test", "secret")

	for name, creds := range map[string][2]string{
		"unknown email":  {"missing@petcare.test", "secret"},
		"wrong password": {"jane@petcare.test", "nope"},
		"empty":          {"", ""},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Login(context.Background(), creds[0], creds[1])
			require.ErrorIs(t, err, ErrAuthentication)
			require.ErrorIs(t, err, ports.ErrInvalidCredentials)
		})
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@petcare.test", "secret")
	result, err := f.svc.Login(context.Background(), "jane@petcare.test", "secret")
	require.NoError(t, err)

	principal, err := f.svc.Authenticate(context.Background(), result.Token)
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout(context.Background(), principal))

	_, err = f.svc.Authenticate(context.Background(), result.Token)
	require.ErrorIs(t, err, ErrAuthentication)
	require.NoError(t, f.svc.Logout(context.Background(), principal))
	require.ErrorIs(t, f.svc.Logout(context.Background(), auth.Anonymous), auth.ErrUnauthenticated)
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Authenticate(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, ErrAuthentication)

	noSession, _, err := f.tokens.Issue(auth.Principal{Email: "jane@petcare.test", Role: auth.RoleCustomer})
	require.NoError(t, err)
	_, err = f.svc.Authenticate(context.Background(), noSession)
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestAuthenticate_ExpiredSession(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@petcare.test", "secret")
	result, err := f.svc.Login(context.Background(), "jane@petcare.test", "secret")
	require.NoError(t, err)

	f.now = result.ExpiresAt
	_, err = f.svc.Authenticate(context.Background(), result.Token)
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestSetBlocked_RevokesSessions(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@petcare.test", "secret")
	result, err := f.svc.Login(context.Background(), "jane@petcare.test", "secret")
	require.NoError(t, err)

	_, err = f.svc.SetBlocked(context.Background(), auth.Principal{Email: "c@petcare.test", Role: auth.RoleCustomer}, "jane@petcare.test", true)
	require.ErrorIs(t, err, auth.ErrForbidden)

	blocked, err := f.svc.SetBlocked(context.Background(), adminCaller, "jane@petcare.test", true)
	require.NoError(t, err)
	require.True(t, blocked.Blocked)

	_, err = f.svc.Authenticate(context.Background(), result.Token)
	require.ErrorIs(t, err, ErrAuthentication)

	again, err := f.svc.Login(context.Background(), "jane@petcare.test", "secret")
	require.NoError(t, err)
	principal, err := f.svc.Authenticate(context.Background(), again.Token)
	require.NoError(t, err)
	require.True(t, principal.Blocked)
	require.ErrorIs(t, auth.Authorize(principal, auth.CapPlaceOrder), auth.ErrForbidden)

	unblocked, err := f.svc.SetBlocked(context.Background(), adminCaller, "jane@petcare.test", false)
	require.NoError(t, err)
	require.False(t, unblocked.Blocked)

	_, err = f.svc.SetBlocked(context.Background(), adminCaller, "ghost@petcare.test", true)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestMeListAndDelete(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@petcare.test", "secret")
	f.register(t, "amal@petcare.test", "secret")
	jane := auth.Principal{Email: "jane@petcare.test", Role: auth.RoleCustomer}

	me, err := f.svc.Me(context.Background(), jane)
	require.NoError(t, err)
	require.Equal(t, "Jane", me.FirstName)
	_, err = f.svc.Me(context.Background(), auth.Anonymous)
	require.ErrorIs(t, err, auth.ErrUnauthenticated)

	_, err = f.svc.List(context.Background(), jane)
	require.ErrorIs(t, err, auth.ErrForbidden)
	all, err := f.svc.List(context.Background(), adminCaller)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "amal@petcare.test", all[0].Email)

	_, err = f.svc.Login(context.Background(), "amal@petcare.test", "secret")
	require.NoError(t, err)
	require.ErrorIs(t, f.svc.Delete(context.Background(), jane, "amal@petcare.test"), auth.ErrForbidden)
	require.NoError(t, f.svc.Delete(context.Background(), adminCaller, "AMAL@petcare.test"))
	require.ErrorIs(t, f.svc.Delete(context.Background(), adminCaller, "amal@petcare.test"), ports.ErrNotFound)

	purged, err := f.sessions.PurgeExpired(context.Background(), f.now.Add(365*24*time.Hour))
	require.NoError(t, err)
	require.Zero(t, purged)
}
