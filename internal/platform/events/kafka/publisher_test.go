package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petcare-api/internal/platform/events"
)

type orderPlaced struct {
	OrderID string    `json:"orderId"`
	At      time.Time `json:"-"`
}

func (e orderPlaced) EventName() string     { return "orders.order.placed" }
func (e orderPlaced) OccurredAt() time.Time { return e.At }
func (e orderPlaced) AggregateID() string   { return e.OrderID }

func TestPublish_SendsEnvelope(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var env events.Envelope
		if err := json.Unmarshal(val, &env); err != nil {
			return err
		}
		if env.Name != "orders.order.placed" || env.AggregateID != "CBC0001" {
			return errors.New("unexpected envelope")
		}
		return nil
	})

	pub, err := NewPublisher(producer, "petcare.events")
	require.NoError(t, err)
	require.NoError(t, pub.Publish(context.Background(), orderPlaced{OrderID: "CBC0001", At: time.Now()}))
	require.NoError(t, pub.Close())
}

func TestPublish_PropagatesProducerFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub, err := NewPublisher(producer, "petcare.events")
	require.NoError(t, err)
	err = pub.Publish(context.Background(), orderPlaced{OrderID: "CBC0002", At: time.Now()})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}

func TestNewPublisher_RequiresTopic(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	_, err := NewPublisher(producer, "")
	require.Error(t, err)
	require.NoError(t, producer.Close())
}
