// Package kafka publishes events to a single topic keyed by aggregate id.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/Apurer/petcare-api/internal/platform/events"
)

var _ events.Publisher = (*Publisher)(nil)

// Publisher wraps a synchronous sarama producer.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewConfig returns the producer settings used by the API.
func NewConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_6_0_0
	cfg.ClientID = "petcare-api"
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	cfg.Net.DialTimeout = 5 * time.Second
	return cfg
}

// Dial connects a producer to brokers.
func Dial(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	producer, err := sarama.NewSyncProducer(brokers, NewConfig())
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewPublisher(producer, topic)
}

// NewPublisher publishes through an existing producer.
func NewPublisher(producer sarama.SyncProducer, topic string) (*Publisher, error) {
	if producer == nil {
		return nil, errors.New("kafka producer is nil")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	return &Publisher{producer: producer, topic: topic}, nil
}

// Publish sends the envelope; events of one aggregate land on one partition.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := events.Encode(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.AggregateID()),
		Value:     sarama.ByteEncoder(body),
		Timestamp: event.OccurredAt(),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-name"), Value: []byte(event.EventName())},
		},
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("send %s: %w", event.EventName(), err)
	}
	return nil
}

// Close flushes and closes the producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
