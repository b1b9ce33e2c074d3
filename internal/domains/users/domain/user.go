package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// MinPasswordLength is the shortest accepted plaintext password.
const MinPasswordLength = 4

var (
	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 4 characters")
	ErrMissingHash   = errors.New("password hash is required")
)

// Profile groups the self-service fields of an account.
type Profile struct {
	FirstName      string
	LastName       string
	Phone          string
	ProfilePicture string
}

// User is a registered account. Email is the identity and is stored lower-cased.
type User struct {
	Email        string
	PasswordHash string
	Profile
	Role      auth.Role
	Blocked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser builds an active account from an already hashed password.
func NewUser(email, passwordHash string, role auth.Role, profile Profile) (*User, error) {
	u := &User{
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
	}
	u.SetProfile(profile)
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the minimal address shape.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// SetProfile replaces the profile fields with trimmed values.
func (u *User) SetProfile(p Profile) {
	u.FirstName = strings.TrimSpace(p.FirstName)
	u.LastName = strings.TrimSpace(p.LastName)
	u.Phone = strings.TrimSpace(p.Phone)
	u.ProfilePicture = strings.TrimSpace(p.ProfilePicture)
}

// SetBlocked toggles the blocked flag.
func (u *User) SetBlocked(blocked bool, now time.Time) {
	u.Blocked = blocked
	u.UpdatedAt = now
}

// Validate re-applies the account invariants before persistence.
func (u *User) Validate() error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if strings.TrimSpace(u.PasswordHash) == "" {
		return ErrMissingHash
	}
	if _, err := auth.ParseRole(string(u.Role)); err != nil {
		return err
	}
	return nil
}

// Principal returns the identity carried in tokens for this account.
func (u *User) Principal() auth.Principal {
	return auth.Principal{
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Role:           u.Role,
		Blocked:        u.Blocked,
		ProfilePicture: u.ProfilePicture,
	}
}

// Session is one issued login. A token is accepted only while its session exists and has not expired.
type Session struct {
	ID        string
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
