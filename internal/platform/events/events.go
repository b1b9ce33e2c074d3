// Package events carries domain events from application services to a message broker.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Event is implemented by every domain event published on the bus.
type Event interface {
	EventName() string
	OccurredAt() time.Time
	AggregateID() string
}

// Publisher delivers events to subscribers outside the process.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Envelope is the wire format shared by all brokers.
type Envelope struct {
	Name        string    `json:"name"`
	OccurredAt  time.Time `json:"occurredAt"`
	AggregateID string    `json:"aggregateId"`
	Payload     any       `json:"payload"`
}

// Encode wraps the event in an Envelope and marshals it.
func Encode(event Event) ([]byte, error) {
	return json.Marshal(Envelope{
		Name:        event.EventName(),
		OccurredAt:  event.OccurredAt().UTC(),
		AggregateID: event.AggregateID(),
		Payload:     event,
	})
}

// Noop drops every event.
var Noop Publisher = noopPublisher{}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

// Logged reports publish failures through logger and returns the inner error unchanged.
func Logged(inner Publisher, logger *slog.Logger) Publisher {
	if inner == nil {
		inner = Noop
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &loggedPublisher{inner: inner, logger: logger}
}

type loggedPublisher struct {
	inner  Publisher
	logger *slog.Logger
}

func (p *loggedPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err != nil {
		p.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish event",
			slog.String("event.name", event.EventName()),
			slog.String("event.aggregate_id", event.AggregateID()),
			slog.String("error", err.Error()))
		return err
	}
	p.logger.LogAttrs(ctx, slog.LevelDebug, "event published", slog.String("event.name", event.EventName()))
	return nil
}

// Recorder keeps published events in memory for tests and local runs.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Names lists the names of the recorded events in publish order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.events))
	for _, e := range r.events {
		names = append(names, e.EventName())
	}
	return names
}
