package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	"github.com/Apurer/petcare-api/internal/domains/notifications/domain"
	emailactivities "github.com/Apurer/petcare-api/internal/platform/temporal/activities/notifications"
)

type flakyMailer struct {
	mu       sync.Mutex
	failures int
	attempts int
	sent     []domain.Email
}

func (m *flakyMailer) Send(_ context.Context, email domain.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if m.attempts <= m.failures {
		return errors.New("relay busy")
	}
	m.sent = append(m.sent, email)
	return nil
}

func runDelivery(t *testing.T, mailer *flakyMailer, email domain.Email) error {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterActivityWithOptions(emailactivities.NewActivities(mailer).SendEmail, activity.RegisterOptions{Name: emailactivities.SendEmailActivityName})
	env.ExecuteWorkflow(EmailDeliveryWorkflow, EmailDeliveryInput{Email: email})
	require.True(t, env.IsWorkflowCompleted())
	return env.GetWorkflowError()
}

func TestEmailDeliveryWorkflow_RetriesUntilDelivered(t *testing.T) {
	mailer := &flakyMailer{failures: 2}
	err := runDelivery(t, mailer, domain.Email{To: "jane@petcare.test", Subject: "Approved", Reference: "adoption:1"})
	require.NoError(t, err)
	require.Equal(t, 3, mailer.attempts)
	require.Len(t, mailer.sent, 1)
}

func TestEmailDeliveryWorkflow_GivesUpAfterMaxAttempts(t *testing.T) {
	mailer := &flakyMailer{failures: 10}
	err := runDelivery(t, mailer, domain.Email{To: "jane@petcare.test", Subject: "Approved"})
	require.Error(t, err)
	require.Equal(t, 5, mailer.attempts)
}

func TestEmailDeliveryWorkflow_InvalidEmailIsNotRetried(t *testing.T) {
	mailer := &flakyMailer{}
	err := runDelivery(t, mailer, domain.Email{Subject: "no recipient"})
	require.Error(t, err)
	require.Zero(t, mailer.attempts)
}
