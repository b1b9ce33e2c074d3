package notifications

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/petcare-api/internal/domains/notifications/domain"
	"github.com/Apurer/petcare-api/internal/domains/notifications/ports"
)

// SendEmailActivityName is the registered name of the delivery activity.
const SendEmailActivityName = "notifications.activities.SendEmail"

// Activities groups the notification activities.
type Activities struct {
	mailer ports.Mailer
}

func NewActivities(mailer ports.Mailer) *Activities {
	return &Activities{mailer: mailer}
}

// SendEmail delivers one message. Invalid messages fail without retry.
func (a *Activities) SendEmail(ctx context.Context, email domain.Email) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.mailer == nil {
		logger.Error("email activity not initialized", "reference", email.Reference)
		return errors.New("email activity not initialized")
	}
	if err := email.Validate(); err != nil {
		return temporal.NewNonRetryableApplicationError("invalid email", "InvalidEmail", err)
	}
	logger.Info("SendEmail activity started", "to", email.To, "reference", email.Reference)
	if err := a.mailer.Send(ctx, email); err != nil {
		logger.Error("SendEmail activity failed", "to", email.To, "error", err)
		return err
	}
	logger.Info("SendEmail activity completed", "to", email.To)
	return nil
}
