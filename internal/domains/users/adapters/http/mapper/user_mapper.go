package mapper

import (
	"errors"
	"time"

	"github.com/Apurer/petcare-api/internal/domains/users/application"
	"github.com/Apurer/petcare-api/internal/domains/users/domain"
	"github.com/Apurer/petcare-api/internal/domains/users/ports"
	sharederrors "github.com/Apurer/petcare-api/internal/shared/errors"
)

// User is the public account view. The password hash is never serialized.
type User struct {
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Phone          string    `json:"phone,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Type           string    `json:"type"`
	IsBlocked      bool      `json:"isBlocked"`
	CreatedAt      time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profilePicture"`
	Type           string `json:"type"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

type BlockRequest struct {
	IsBlocked bool `json:"isBlocked"`
}

func (r RegisterRequest) ToInput() ports.RegisterInput {
	return ports.RegisterInput{
		Email:    r.Email,
		Password: r.Password,
		Type:     r.Type,
		Profile: domain.Profile{
			FirstName:      r.FirstName,
			LastName:       r.LastName,
			Phone:          r.Phone,
			ProfilePicture: r.ProfilePicture,
		},
	}
}

func FromDomain(u *domain.User) User {
	if u == nil {
		return User{}
	}
	return User{
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
		Type:           string(u.Role),
		IsBlocked:      u.Blocked,
		CreatedAt:      u.CreatedAt,
	}
}

func FromDomainList(users []*domain.User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, FromDomain(u))
	}
	return out
}

func FromLogin(result ports.LoginResult) LoginResponse {
	return LoginResponse{
		Message:   "Login successful",
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      FromDomain(result.User),
	}
}

// ErrorMapper translates user errors to problem details.
func ErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.FromError(sharederrors.ErrNotFound, err), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.FromError(sharederrors.ErrValidation, err), true
	case errors.Is(err, application.ErrConflict):
		return sharederrors.FromError(sharederrors.ErrConflict, err), true
	case errors.Is(err, application.ErrAuthentication):
		return sharederrors.FromError(sharederrors.ErrUnauthorized, err), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
