package ports

import (
	"context"
	"errors"

	"github.com/Apurer/petcare-api/internal/domains/notifications/domain"
)

// ErrDispatcherClosed is returned once a dispatcher stopped accepting messages.
var ErrDispatcherClosed = errors.New("notification dispatcher is closed")

// Dispatcher hands an email off for delivery. Implementations return before the message is sent.
type Dispatcher interface {
	Dispatch(ctx context.Context, email domain.Email) error
}

// Mailer delivers one email synchronously.
type Mailer interface {
	Send(ctx context.Context, email domain.Email) error
}

// Noop drops every message.
var Noop Dispatcher = noopDispatcher{}

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(context.Context, domain.Email) error { return nil }
