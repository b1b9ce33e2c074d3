package api

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/petcare-api/internal/domains/notifications/adapters/mail"
	usersmemory "github.com/Apurer/petcare-api/internal/domains/users/adapters/memory"
	usersdomain "github.com/Apurer/petcare-api/internal/domains/users/domain"
	"github.com/Apurer/petcare-api/internal/platform/events"
)

func TestPurgeSessions_RemovesOnlyExpired(t *testing.T) {
	ctx := context.Background()
	store := usersmemory.NewSessionStore()
	now := time.Now()
	require.NoError(t, store.Save(ctx, usersdomain.Session{ID: "old", Email: "a@example.com", ExpiresAt: now.Add(-time.Hour)}))
	require.NoError(t, store.Save(ctx, usersdomain.Session{ID: "live", Email: "a@example.com", ExpiresAt: now.Add(time.Hour)}))

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		purgeSessions(runCtx, store, 5*time.Millisecond, slog.New(slog.DiscardHandler))
		close(done)
	}()
	require.Eventually(t, func() bool {
		_, err := store.Get(ctx, "old")
		return err != nil
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	_, err := store.Get(ctx, "live")
	require.NoError(t, err)
}

func TestBuildPublisher_NoBrokerIsNoop(t *testing.T) {
	var cfg Config
	publisher, closeFn := buildPublisher(cfg, slog.New(slog.DiscardHandler))
	defer closeFn()
	require.NotNil(t, publisher)
	require.NoError(t, publisher.Publish(context.Background(), testEvent{}))
}

func TestNewMailer_FallsBackToLog(t *testing.T) {
	var cfg Config
	require.IsType(t, &mail.LogMailer{}, NewMailer(cfg, slog.New(slog.DiscardHandler)))

	cfg.SMTP.Host = "smtp.example.com"
	require.IsType(t, &mail.SMTPMailer{}, NewMailer(cfg, slog.New(slog.DiscardHandler)))
}

func TestConnectTemporal_Disabled(t *testing.T) {
	var cfg Config
	cfg.Temporal.Disabled = true
	_, err := ConnectTemporal(cfg, nil, "test")
	require.ErrorContains(t, err, "disabled")
}

type testEvent struct{}

func (testEvent) EventName() string     { return "test.event" }
func (testEvent) OccurredAt() time.Time { return time.Unix(0, 0) }
func (testEvent) AggregateID() string   { return "agg-1" }

var _ events.Event = testEvent{}
