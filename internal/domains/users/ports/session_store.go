package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/petcare-api/internal/domains/users/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore tracks issued logins so tokens can be revoked before they expire.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByEmail(ctx context.Context, email string) error
	// PurgeExpired removes sessions that expired at or before now and reports how many went.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
