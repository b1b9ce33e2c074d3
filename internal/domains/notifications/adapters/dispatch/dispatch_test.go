package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"
	"go.uber.org/goleak"

	"github.com/Apurer/petcare-api/internal/domains/notifications/domain"
	"github.com/Apurer/petcare-api/internal/domains/notifications/ports"
	emailworkflows "github.com/Apurer/petcare-api/internal/platform/temporal/workflows/notifications"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingMailer struct {
	mu    sync.Mutex
	sent  []domain.Email
	gate  chan struct{}
	err   error
	calls int
}

func (m *recordingMailer) Send(ctx context.Context, email domain.Email) error {
	if m.gate != nil {
		select {
		case <-m.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInlineDispatcher_CloseWaitsForInFlightSends(t *testing.T) {
	mailer := &recordingMailer{gate: make(chan struct{})}
	d := NewInlineDispatcher(mailer, quietLogger(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.Dispatch(ctx, domain.Email{To: "jane@petcare.test", Subject: "Approved"}))
	cancel()

	closed := make(chan error, 1)
	go func() { closed <- d.Close(context.Background()) }()
	select {
	case <-closed:
		t.Fatal("Close returned before the send finished")
	case <-time.After(20 * time.Millisecond):
	}
	close(mailer.gate)
	require.NoError(t, <-closed)
	require.Len(t, mailer.sent, 1)

	err := d.Dispatch(context.Background(), domain.Email{To: "jane@petcare.test", Subject: "Again"})
	require.ErrorIs(t, err, ports.ErrDispatcherClosed)
}

func TestInlineDispatcher_SendTimeoutAndFailuresDoNotLeak(t *testing.T) {
	slow := &recordingMailer{gate: make(chan struct{})}
	d := NewInlineDispatcher(slow, quietLogger(), 10*time.Millisecond)
	require.NoError(t, d.Dispatch(context.Background(), domain.Email{To: "a@petcare.test", Subject: "x"}))
	require.NoError(t, d.Close(context.Background()))
	require.Empty(t, slow.sent)

	failing := &recordingMailer{err: errors.New("relay down")}
	d = NewInlineDispatcher(failing, quietLogger(), time.Second)
	require.NoError(t, d.Dispatch(context.Background(), domain.Email{To: "a@petcare.test", Subject: "x"}))
	require.NoError(t, d.Close(context.Background()))
	require.Equal(t, 1, failing.calls)
}

func TestInlineDispatcher_RejectsInvalidEmail(t *testing.T) {
	d := NewInlineDispatcher(&recordingMailer{}, quietLogger(), time.Second)
	require.ErrorIs(t, d.Dispatch(context.Background(), domain.Email{Subject: "x"}), domain.ErrMissingRecipient)
	require.NoError(t, d.Close(context.Background()))
}

func TestWorkflowID_DeterministicPerReference(t *testing.T) {
	email := domain.Email{To: "Jane@petcare.test", Subject: "Approved", Reference: "adoption:42:Approved"}
	same := domain.Email{To: "jane@petcare.test ", Subject: "Approved", Reference: "adoption:42:Approved", Body: "different body"}
	other := domain.Email{To: "jane@petcare.test", Subject: "Approved", Reference: "adoption:43:Approved"}

	require.Equal(t, WorkflowID(email, "t1"), WorkflowID(same, "t2"))
	require.NotEqual(t, WorkflowID(email, ""), WorkflowID(other, ""))
	require.Regexp(t, `^notification-email-[0-9a-f]{16}$`, WorkflowID(email, ""))

	noRef := domain.Email{To: "jane@petcare.test", Subject: "Approved"}
	require.NotEqual(t, WorkflowID(noRef, "trace-a"), WorkflowID(noRef, "trace-b"))
}

func TestTemporalDispatcher_StartsWorkflowWithoutWaiting(t *testing.T) {
	c := &mocks.Client{}
	email := domain.Email{To: "jane@petcare.test", Subject: "Approved", Reference: "adoption:42"}
	c.On("ExecuteWorkflow", mock.Anything,
		mock.MatchedBy(func(o client.StartWorkflowOptions) bool {
			return o.TaskQueue == emailworkflows.TaskQueue && o.ID == WorkflowID(email, "")
		}),
		emailworkflows.EmailDeliveryWorkflowName,
		mock.MatchedBy(func(in emailworkflows.EmailDeliveryInput) bool { return in.Email.To == email.To }),
	).Return(&mocks.WorkflowRun{}, nil).Once()

	require.NoError(t, NewTemporalDispatcher(c).Dispatch(context.Background(), email))
	c.AssertExpectations(t)
}

func TestTemporalDispatcher_DuplicateIsNotAnError(t *testing.T) {
	c := &mocks.Client{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("started", "req", "run")).Once()
	require.NoError(t, NewTemporalDispatcher(c).Dispatch(context.Background(), domain.Email{To: "a@petcare.test", Subject: "x", Reference: "r"}))

	c = &mocks.Client{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("frontend unavailable")).Once()
	require.ErrorContains(t, NewTemporalDispatcher(c).Dispatch(context.Background(), domain.Email{To: "a@petcare.test", Subject: "x", Reference: "r"}), "frontend unavailable")
}
