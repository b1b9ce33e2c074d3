package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sampleEvent struct {
	ID string `json:"id"`
	At time.Time
}

func (e sampleEvent) EventName() string     { return "samples.sample.created" }
func (e sampleEvent) OccurredAt() time.Time { return e.At }
func (e sampleEvent) AggregateID() string   { return e.ID }

type failingPublisher struct{ err error }

func (f failingPublisher) Publish(context.Context, Event) error { return f.err }

func TestEncode_WrapsPayload(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	body, err := Encode(sampleEvent{ID: "S-1", At: at})
	require.NoError(t, err)

	var decoded struct {
		Name        string          `json:"name"`
		OccurredAt  time.Time       `json:"occurredAt"`
		AggregateID string          `json:"aggregateId"`
		Payload     json.RawMessage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Equal(t, "samples.sample.created", decoded.Name)
	require.Equal(t, at, decoded.OccurredAt)
	require.Equal(t, "S-1", decoded.AggregateID)
	require.Contains(t, string(decoded.Payload), `"id":"S-1"`)
}

func TestLogged_ReportsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	boom := errors.New("broker down")

	err := Logged(failingPublisher{err: boom}, logger).Publish(context.Background(), sampleEvent{ID: "S-2", At: time.Now()})
	require.ErrorIs(t, err, boom)
	require.Contains(t, buf.String(), "failed to publish event")
	require.Contains(t, buf.String(), "S-2")
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	require.NoError(t, rec.Publish(context.Background(), sampleEvent{ID: "a"}))
	require.NoError(t, rec.Publish(context.Background(), sampleEvent{ID: "b"}))
	require.Len(t, rec.Events(), 2)
	require.Equal(t, []string{"samples.sample.created", "samples.sample.created"}, rec.Names())
}
