package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petcare-api/internal/shared/auth"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager("test-secret", "petcare-api", "petcare-clients", time.Hour)
	require.NoError(t, err)
	return m
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager(t)
	principal := auth.Principal{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      auth.RoleCustomer,
		SessionID: "sess-1",
	}

	token, expires, err := m.Issue(principal)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	got, err := m.Verify(token)
	require.NoError(t, err)
	require.Equal(t, principal, got)
}

func TestVerify_Expired(t *testing.T) {
	m := newTestManager(t)
	issuedAt := time.Now().Add(-3 * time.Hour)
	m.WithClock(func() time.Time { return issuedAt })
	token, _, err := m.Issue(auth.Principal{Email: "a@example.com", Role: auth.RoleAdmin})
	require.NoError(t, err)

	m.WithClock(time.Now)
	_, err = m.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_WrongSecretAndAudience(t *testing.T) {
	m := newTestManager(t)
	token, _, err := m.Issue(auth.Principal{Email: "a@example.com", Role: auth.RoleCustomer})
	require.NoError(t, err)

	other, err := NewManager("different", "petcare-api", "petcare-clients", time.Hour)
	require.NoError(t, err)
	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	wrongAudience, err := NewManager("test-secret", "petcare-api", "someone-else", time.Hour)
	require.NoError(t, err)
	_, err = wrongAudience.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	m := newTestManager(t)
	claims := Claims{
		Email: "a@example.com",
		Type:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "petcare-api",
			Audience:  jwt.ClaimStrings{"petcare-clients"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager("  ", "", "", 0)
	require.ErrorIs(t, err, ErrEmptySecret)
}
